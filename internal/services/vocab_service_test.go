package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabtracker/backend/internal/models"
	"go.uber.org/zap"
)

// mockVocabRepository is a mock implementation of VocabRepository
type mockVocabRepository struct {
	entries   []models.Vocabulary
	entry     *models.Vocabulary
	createErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error

	lastListDate   models.Date
	lastListSearch string
	updated        *models.Vocabulary
	deletedID      int
}

func (m *mockVocabRepository) Create(ctx context.Context, vocab *models.Vocabulary) error {
	if m.createErr != nil {
		return m.createErr
	}
	vocab.ID = 7
	return nil
}

func (m *mockVocabRepository) GetByID(ctx context.Context, id, userID int) (*models.Vocabulary, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.entry != nil {
		v := *m.entry
		return &v, nil
	}
	return &models.Vocabulary{ID: id, UserID: userID}, nil
}

func (m *mockVocabRepository) List(ctx context.Context, userID int, date models.Date, search string) ([]models.Vocabulary, error) {
	m.lastListDate = date
	m.lastListSearch = search
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}

func (m *mockVocabRepository) Update(ctx context.Context, vocab *models.Vocabulary) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	v := *vocab
	m.updated = &v
	return nil
}

func (m *mockVocabRepository) Delete(ctx context.Context, id, userID int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

func TestVocabService_List(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		dateStr        string
		search         string
		repo           *mockVocabRepository
		expectedError  bool
		expectedCount  int
		expectedDate   string
		expectedSearch string
	}{
		{
			name:    "all entries",
			dateStr: "",
			search:  "",
			repo: &mockVocabRepository{entries: []models.Vocabulary{
				{ID: 1, Word: "ephemeral"},
				{ID: 2, Word: "lucid"},
			}},
			expectedError: false,
			expectedCount: 2,
			expectedDate:  "",
		},
		{
			name:          "date filter is forwarded",
			dateStr:       "2024-03-15",
			search:        "",
			repo:          &mockVocabRepository{entries: []models.Vocabulary{}},
			expectedError: false,
			expectedCount: 0,
			expectedDate:  "2024-03-15",
		},
		{
			name:           "search filter is forwarded",
			dateStr:        "",
			search:         "ephe",
			repo:           &mockVocabRepository{entries: []models.Vocabulary{}},
			expectedError:  false,
			expectedCount:  0,
			expectedSearch: "ephe",
		},
		{
			name:          "invalid date falls back to no date filter",
			dateStr:       "not-a-date",
			search:        "",
			repo:          &mockVocabRepository{entries: []models.Vocabulary{}},
			expectedError: false,
			expectedCount: 0,
			expectedDate:  "",
		},
		{
			name:          "repository error",
			dateStr:       "",
			search:        "",
			repo:          &mockVocabRepository{listErr: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewVocabService(tt.repo, logger)

			result, err := svc.List(context.Background(), 1, tt.dateStr, tt.search)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, result, tt.expectedCount)
			if tt.expectedDate == "" {
				assert.True(t, tt.repo.lastListDate.IsZero())
			} else {
				assert.Equal(t, tt.expectedDate, tt.repo.lastListDate.Key())
			}
			assert.Equal(t, tt.expectedSearch, tt.repo.lastListSearch)
		})
	}
}

func TestVocabService_Create(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		req            *models.CreateVocabRequest
		repo           *mockVocabRepository
		expectedError  bool
		errorContains  string
		expectedStatus models.Status
	}{
		{
			name: "success with default status",
			req: &models.CreateVocabRequest{
				Word:    "ephemeral",
				Meaning: "short-lived",
				Date:    "2024-03-15",
			},
			repo:           &mockVocabRepository{},
			expectedError:  false,
			expectedStatus: models.StatusReviewNeeded,
		},
		{
			name: "success with explicit status",
			req: &models.CreateVocabRequest{
				Word:    "lucid",
				Meaning: "clear",
				Status:  models.StatusMastered,
				Date:    "2024-03-15",
			},
			repo:           &mockVocabRepository{},
			expectedError:  false,
			expectedStatus: models.StatusMastered,
		},
		{
			name: "word only whitespace",
			req: &models.CreateVocabRequest{
				Word:    "   ",
				Meaning: "short-lived",
				Date:    "2024-03-15",
			},
			repo:          &mockVocabRepository{},
			expectedError: true,
			errorContains: "word is required",
		},
		{
			name: "meaning only whitespace",
			req: &models.CreateVocabRequest{
				Word:    "ephemeral",
				Meaning: "\t",
				Date:    "2024-03-15",
			},
			repo:          &mockVocabRepository{},
			expectedError: true,
			errorContains: "meaning is required",
		},
		{
			name: "invalid date",
			req: &models.CreateVocabRequest{
				Word:    "ephemeral",
				Meaning: "short-lived",
				Date:    "15/03/2024",
			},
			repo:          &mockVocabRepository{},
			expectedError: true,
			errorContains: "invalid date",
		},
		{
			name: "invalid status",
			req: &models.CreateVocabRequest{
				Word:    "ephemeral",
				Meaning: "short-lived",
				Status:  "learned",
				Date:    "2024-03-15",
			},
			repo:          &mockVocabRepository{},
			expectedError: true,
			errorContains: "invalid status",
		},
		{
			name: "repository error",
			req: &models.CreateVocabRequest{
				Word:    "ephemeral",
				Meaning: "short-lived",
				Date:    "2024-03-15",
			},
			repo:          &mockVocabRepository{createErr: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, _ := models.ParseDate("2024-03-15")
			tt.repo.entry = &models.Vocabulary{
				ID:      7,
				UserID:  1,
				Word:    tt.req.Word,
				Meaning: tt.req.Meaning,
				Example: tt.req.Example,
				Status:  tt.expectedStatus,
				Date:    date,
			}

			svc := NewVocabService(tt.repo, logger)

			created, err := svc.Create(context.Background(), 1, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, created)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, created)
			assert.Equal(t, 7, created.ID)
			assert.Equal(t, tt.expectedStatus, created.Status)
			assert.Equal(t, "2024-03-15", created.Date.Key())
		})
	}
}

func TestVocabService_Update(t *testing.T) {
	logger := zap.NewNop()
	date, _ := models.ParseDate("2024-03-15")

	existing := models.Vocabulary{
		ID:      7,
		UserID:  1,
		Word:    "ephemeral",
		Meaning: "short-lived",
		Example: "an ephemeral stream",
		Status:  models.StatusReviewNeeded,
		Date:    date,
	}

	tests := []struct {
		name          string
		req           *models.UpdateVocabRequest
		repo          *mockVocabRepository
		expectedError bool
		verify        func(t *testing.T, updated *models.Vocabulary)
	}{
		{
			name: "partial update keeps omitted fields",
			req:  &models.UpdateVocabRequest{Meaning: "lasting a very short time"},
			repo: &mockVocabRepository{entry: &existing},
			verify: func(t *testing.T, updated *models.Vocabulary) {
				assert.Equal(t, "ephemeral", updated.Word)
				assert.Equal(t, "lasting a very short time", updated.Meaning)
				assert.Equal(t, "an ephemeral stream", updated.Example)
				assert.Equal(t, models.StatusReviewNeeded, updated.Status)
			},
		},
		{
			name: "status-only update",
			req:  &models.UpdateVocabRequest{Status: models.StatusMastered},
			repo: &mockVocabRepository{entry: &existing},
			verify: func(t *testing.T, updated *models.Vocabulary) {
				assert.Equal(t, models.StatusMastered, updated.Status)
				assert.Equal(t, "ephemeral", updated.Word)
			},
		},
		{
			name:          "invalid status",
			req:           &models.UpdateVocabRequest{Status: "forgotten"},
			repo:          &mockVocabRepository{entry: &existing},
			expectedError: true,
		},
		{
			name:          "entry not found",
			req:           &models.UpdateVocabRequest{Word: "other"},
			repo:          &mockVocabRepository{getErr: errors.New("vocabulary not found")},
			expectedError: true,
		},
		{
			name:          "repository update error",
			req:           &models.UpdateVocabRequest{Word: "other"},
			repo:          &mockVocabRepository{entry: &existing, updateErr: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewVocabService(tt.repo, logger)

			updated, err := svc.Update(context.Background(), 1, 7, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, updated)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, updated)
			assert.Equal(t, 7, updated.ID)
			if tt.verify != nil {
				tt.verify(t, updated)
			}
		})
	}
}

func TestVocabService_Delete(t *testing.T) {
	logger := zap.NewNop()

	t.Run("success", func(t *testing.T) {
		repo := &mockVocabRepository{}
		svc := NewVocabService(repo, logger)

		err := svc.Delete(context.Background(), 1, 7)

		assert.NoError(t, err)
		assert.Equal(t, 7, repo.deletedID)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mockVocabRepository{deleteErr: errors.New("vocabulary not found")}
		svc := NewVocabService(repo, logger)

		err := svc.Delete(context.Background(), 1, 999)

		assert.Error(t, err)
	})
}
