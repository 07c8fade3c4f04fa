package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabtracker/backend/internal/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestExportService_Export(t *testing.T) {
	logger := zap.NewNop()
	date, _ := models.ParseDate("2024-03-15")

	t.Run("workbook contains header and all entries", func(t *testing.T) {
		repo := &mockVocabRepository{entries: []models.Vocabulary{
			{ID: 1, Word: "ephemeral", Meaning: "short-lived", Example: "an ephemeral stream", Status: models.StatusReviewNeeded, Date: date},
			{ID: 2, Word: "lucid", Meaning: "clear", Status: models.StatusMastered, Date: date},
		}}
		svc := NewExportService(repo, logger)

		data, err := svc.Export(context.Background(), 1)
		require.NoError(t, err)
		require.NotEmpty(t, data)

		// Export always scans the full unfiltered collection
		assert.True(t, repo.lastListDate.IsZero())
		assert.Empty(t, repo.lastListSearch)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Vocabulary")
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, []string{"Date", "Word", "Meaning", "Example", "Status"}, rows[0])
		assert.Equal(t, []string{"2024-03-15", "ephemeral", "short-lived", "an ephemeral stream", "review_needed"}, rows[1])
		assert.Equal(t, "lucid", rows[2][1])
		assert.Equal(t, "mastered", rows[2][4])
	})

	t.Run("empty collection yields header-only workbook", func(t *testing.T) {
		repo := &mockVocabRepository{entries: []models.Vocabulary{}}
		svc := NewExportService(repo, logger)

		data, err := svc.Export(context.Background(), 1)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Vocabulary")
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mockVocabRepository{listErr: errors.New("database error")}
		svc := NewExportService(repo, logger)

		data, err := svc.Export(context.Background(), 1)

		assert.Error(t, err)
		assert.Nil(t, data)
	})
}
