package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/vocabtracker/backend/internal/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// exportSheet is the worksheet name used for vocabulary exports
const exportSheet = "Vocabulary"

// exportService implements ExportService
type exportService struct {
	vocabRepo VocabRepository
	logger    *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(vocabRepo VocabRepository, logger *zap.Logger) *exportService {
	return &exportService{
		vocabRepo: vocabRepo,
		logger:    logger,
	}
}

// Export builds an xlsx workbook with all entries of the user, ordered as
// returned by the store (newest first)
func (s *exportService) Export(ctx context.Context, userID int) ([]byte, error) {
	vocabularies, err := s.vocabRepo.List(ctx, userID, models.Date{}, "")
	if err != nil {
		s.logger.Error("failed to list vocabularies for export", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to list vocabularies for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Date", "Word", "Meaning", "Example", "Status"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, vocab := range vocabularies {
		values := []any{vocab.Date.Key(), vocab.Word, vocab.Meaning, vocab.Example, string(vocab.Status)}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}
