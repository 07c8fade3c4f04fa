package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vocabtracker/backend/internal/models"
	"go.uber.org/zap"
)

// VocabRepository is the interface that wraps methods for Vocabulary table data access
type VocabRepository interface {
	// Method Create inserts a new vocabulary entry; its ID is assigned on success.
	//
	// "vocab" parameter is used to create a new entry.
	//
	// If some error occurs during creation, the error will be returned.
	Create(ctx context.Context, vocab *models.Vocabulary) error
	// Method GetByID retrieves an entry by id, scoped to the owning user.
	//
	// "id" parameter identifies the entry, "userID" the owner.
	//
	// If such entry does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, id, userID int) (*models.Vocabulary, error)
	// Method List retrieves all entries matching the optional filters.
	//
	// "date" parameter filters entries by day; a zero date means all dates.
	// "search" parameter filters by word or meaning substring; empty means no filter.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	List(ctx context.Context, userID int, date models.Date, search string) ([]models.Vocabulary, error)
	// Method Update persists the mutable fields of an existing entry.
	//
	// "vocab" parameter carries the full desired state of the entry.
	//
	// If such entry does not exist, or some error occurs, the error will be returned.
	Update(ctx context.Context, vocab *models.Vocabulary) error
	// Method Delete removes an entry by id, scoped to the owning user.
	//
	// If such entry does not exist, or some error occurs, the error will be returned.
	Delete(ctx context.Context, id, userID int) error
}

// vocabService implements VocabService
type vocabService struct {
	vocabRepo VocabRepository
	logger    *zap.Logger
}

// NewVocabService creates a new vocabulary service
func NewVocabService(vocabRepo VocabRepository, logger *zap.Logger) *vocabService {
	return &vocabService{
		vocabRepo: vocabRepo,
		logger:    logger,
	}
}

// List retrieves the user's entries for the given date and search filters.
// An unparsable date string falls back to no date filter, matching the
// behavior of treating it as absent.
func (s *vocabService) List(ctx context.Context, userID int, dateStr, search string) ([]models.Vocabulary, error) {
	var date models.Date
	if dateStr != "" {
		if parsed, err := models.ParseDate(dateStr); err == nil {
			date = parsed
		}
	}

	vocabularies, err := s.vocabRepo.List(ctx, userID, date, search)
	if err != nil {
		s.logger.Error("failed to list vocabularies", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to list vocabularies: %w", err)
	}

	return vocabularies, nil
}

// Create validates and stores a new entry scoped to the request's date
func (s *vocabService) Create(ctx context.Context, userID int, req *models.CreateVocabRequest) (*models.Vocabulary, error) {
	if strings.TrimSpace(req.Word) == "" {
		return nil, fmt.Errorf("word is required")
	}
	if strings.TrimSpace(req.Meaning) == "" {
		return nil, fmt.Errorf("meaning is required")
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}

	status := req.Status
	if status == "" {
		status = models.StatusReviewNeeded
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	vocab := &models.Vocabulary{
		UserID:  userID,
		Word:    req.Word,
		Meaning: req.Meaning,
		Example: req.Example,
		Status:  status,
		Date:    date,
	}

	if err := s.vocabRepo.Create(ctx, vocab); err != nil {
		s.logger.Error("failed to create vocabulary", zap.Error(err), zap.Int("userId", userID))
		return nil, err
	}

	// Re-read so the response carries database-assigned timestamps
	created, err := s.vocabRepo.GetByID(ctx, vocab.ID, userID)
	if err != nil {
		s.logger.Error("failed to load created vocabulary", zap.Error(err), zap.Int("vocabId", vocab.ID))
		return nil, err
	}

	return created, nil
}

// Update applies a partial update to an existing entry. Empty request fields
// leave the stored values unchanged.
func (s *vocabService) Update(ctx context.Context, userID, id int, req *models.UpdateVocabRequest) (*models.Vocabulary, error) {
	vocab, err := s.vocabRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Word != "" {
		vocab.Word = req.Word
	}
	if req.Meaning != "" {
		vocab.Meaning = req.Meaning
	}
	if req.Example != "" {
		vocab.Example = req.Example
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("invalid status %q", req.Status)
		}
		vocab.Status = req.Status
	}

	if err := s.vocabRepo.Update(ctx, vocab); err != nil {
		s.logger.Error("failed to update vocabulary", zap.Error(err), zap.Int("vocabId", id))
		return nil, err
	}

	return vocab, nil
}

// Delete removes an entry by id
func (s *vocabService) Delete(ctx context.Context, userID, id int) error {
	if err := s.vocabRepo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("failed to delete vocabulary", zap.Error(err), zap.Int("vocabId", id))
		return err
	}
	return nil
}
