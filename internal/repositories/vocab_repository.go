package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vocabtracker/backend/internal/models"
)

// vocabRepository implements VocabRepository
type vocabRepository struct {
	db *sql.DB
}

// NewVocabRepository creates a new vocabulary repository
func NewVocabRepository(db *sql.DB) *vocabRepository {
	return &vocabRepository{
		db: db,
	}
}

// Create inserts a new vocabulary entry and assigns its ID
func (r *vocabRepository) Create(ctx context.Context, vocab *models.Vocabulary) error {
	query := `
		INSERT INTO vocabularies (user_id, word, meaning, example, status, date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		vocab.UserID,
		vocab.Word,
		vocab.Meaning,
		vocab.Example,
		vocab.Status,
		vocab.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to create vocabulary: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	vocab.ID = int(id)
	return nil
}

// GetByID retrieves a vocabulary entry by id, scoped to the owning user
func (r *vocabRepository) GetByID(ctx context.Context, id, userID int) (*models.Vocabulary, error) {
	query := `
		SELECT id, user_id, word, meaning, example, status, date, created_at, updated_at
		FROM vocabularies
		WHERE id = ? AND user_id = ?
		LIMIT 1
	`

	vocab := &models.Vocabulary{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&vocab.ID,
		&vocab.UserID,
		&vocab.Word,
		&vocab.Meaning,
		&vocab.Example,
		&vocab.Status,
		&vocab.Date,
		&vocab.CreatedAt,
		&vocab.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("vocabulary not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary by id: %w", err)
	}

	return vocab, nil
}

// List retrieves all entries of a user matching the optional date and search
// filters. A zero date means all dates, an empty search means no text filter.
func (r *vocabRepository) List(ctx context.Context, userID int, date models.Date, search string) ([]models.Vocabulary, error) {
	query := `
		SELECT id, user_id, word, meaning, example, status, date, created_at, updated_at
		FROM vocabularies
		WHERE user_id = ?
	`
	args := []any{userID}

	if !date.IsZero() {
		query += ` AND date = ?`
		args = append(args, date)
	}

	if search != "" {
		query += ` AND (LOWER(word) LIKE ? OR LOWER(meaning) LIKE ?)`
		term := "%" + strings.ToLower(search) + "%"
		args = append(args, term, term)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vocabularies: %w", err)
	}
	defer rows.Close()

	vocabularies := []models.Vocabulary{}
	for rows.Next() {
		var vocab models.Vocabulary
		err := rows.Scan(
			&vocab.ID,
			&vocab.UserID,
			&vocab.Word,
			&vocab.Meaning,
			&vocab.Example,
			&vocab.Status,
			&vocab.Date,
			&vocab.CreatedAt,
			&vocab.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vocabulary: %w", err)
		}
		vocabularies = append(vocabularies, vocab)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return vocabularies, nil
}

// Update persists the mutable fields of an existing entry
func (r *vocabRepository) Update(ctx context.Context, vocab *models.Vocabulary) error {
	query := `
		UPDATE vocabularies
		SET word = ?, meaning = ?, example = ?, status = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		vocab.Word,
		vocab.Meaning,
		vocab.Example,
		vocab.Status,
		vocab.ID,
		vocab.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vocabulary: %w", err)
	}

	// The DSN sets clientFoundRows, so zero here means no matching row
	// rather than an update that changed nothing
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("vocabulary not found")
	}

	return nil
}

// Delete removes an entry by id, scoped to the owning user
func (r *vocabRepository) Delete(ctx context.Context, id, userID int) error {
	query := `DELETE FROM vocabularies WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete vocabulary: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("vocabulary not found")
	}

	return nil
}
