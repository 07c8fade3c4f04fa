package models

import "time"

// Status marks how well a vocabulary entry is learned
type Status string

// Status constants
const (
	StatusMastered     Status = "mastered"
	StatusReviewNeeded Status = "review_needed"
)

// Valid reports whether s is one of the known status values
func (s Status) Valid() bool {
	return s == StatusMastered || s == StatusReviewNeeded
}

// Toggled returns the opposite status
func (s Status) Toggled() Status {
	if s == StatusMastered {
		return StatusReviewNeeded
	}
	return StatusMastered
}

// Vocabulary represents a single vocabulary entry owned by a user
type Vocabulary struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Word      string    `json:"word"`
	Meaning   string    `json:"meaning"`
	Example   string    `json:"example"`
	Status    Status    `json:"status"` // default: review_needed
	Date      Date      `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateVocabRequest represents a vocabulary creation request
type CreateVocabRequest struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
	Example string `json:"example"`
	Status  Status `json:"status"`
	Date    string `json:"date"`
}

// UpdateVocabRequest represents a partial vocabulary update.
// Empty fields leave the stored value unchanged.
type UpdateVocabRequest struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
	Example string `json:"example"`
	Status  Status `json:"status"`
}

// VocabListResponse is the payload of GET /vocab
type VocabListResponse struct {
	Vocabularies []Vocabulary `json:"vocabularies"`
	Count        int          `json:"count"`
}
