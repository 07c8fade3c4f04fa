package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabtracker/backend/internal/models"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var req models.AuthRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.AuthResponse{
			Token: "token-123",
			User:  models.User{ID: 1, Email: req.Email},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), "test@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "token-123", resp.Token)
	assert.Equal(t, "token-123", c.Token())
}

func TestListVocabulariesQueryParams(t *testing.T) {
	tests := []struct {
		name       string
		date       models.Date
		search     string
		wantDate   string
		wantSearch string
	}{
		{
			name:       "date and search",
			date:       mustDate(t, "2024-03-15"),
			search:     "hello",
			wantDate:   "2024-03-15",
			wantSearch: "hello",
		},
		{
			name:       "zero date omits date param",
			date:       models.Date{},
			search:     "",
			wantDate:   "",
			wantSearch: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/vocab", r.URL.Path)
				assert.Equal(t, tt.wantDate, r.URL.Query().Get("date"))
				assert.Equal(t, tt.wantSearch, r.URL.Query().Get("search"))
				assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

				json.NewEncoder(w).Encode(models.VocabListResponse{
					Vocabularies: []models.Vocabulary{{ID: 1, Word: "hello"}},
					Count:        1,
				})
			}))
			defer srv.Close()

			c := New(srv.URL)
			c.SetToken("token-123")

			vocabs, err := c.ListVocabularies(context.Background(), tt.date, tt.search)

			require.NoError(t, err)
			assert.Len(t, vocabs, 1)
			assert.Equal(t, "hello", vocabs[0].Word)
		})
	}
}

func TestUnauthorizedFiresCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid or expired token"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("stale-token")

	fired := 0
	c.OnUnauthorized = func() { fired++ }

	_, err := c.ListVocabularies(context.Background(), models.Date{}, "")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, fired)

	err = c.DeleteVocabulary(context.Background(), 5)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 2, fired)
}

func TestCreateVocabulary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/vocab", r.URL.Path)

		var req models.CreateVocabRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Word)
		assert.Equal(t, "2024-03-15", req.Date)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Vocabulary{
			ID:      7,
			Word:    req.Word,
			Meaning: req.Meaning,
			Status:  models.StatusReviewNeeded,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("token-123")

	vocab, err := c.CreateVocabulary(context.Background(), &models.CreateVocabRequest{
		Word:    "hello",
		Meaning: "greeting",
		Date:    "2024-03-15",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, vocab.ID)
	assert.Equal(t, models.StatusReviewNeeded, vocab.Status)
}

func TestServerErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "word is required"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("token-123")

	_, err := c.CreateVocabulary(context.Background(), &models.CreateVocabRequest{})

	require.Error(t, err)
	assert.Equal(t, "word is required", err.Error())
}

func TestUpdateAndDeletePaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			assert.Equal(t, "/vocab/42", r.URL.Path)
			json.NewEncoder(w).Encode(models.Vocabulary{ID: 42, Status: models.StatusMastered})
		case http.MethodDelete:
			assert.Equal(t, "/vocab/42", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]string{"message": "vocabulary deleted successfully"})
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("token-123")

	vocab, err := c.UpdateVocabulary(context.Background(), 42, &models.UpdateVocabRequest{Status: models.StatusMastered})
	require.NoError(t, err)
	assert.Equal(t, models.StatusMastered, vocab.Status)

	require.NoError(t, c.DeleteVocabulary(context.Background(), 42))
}
