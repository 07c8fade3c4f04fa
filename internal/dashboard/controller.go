// Package dashboard coordinates vocabulary state for interactive clients.
//
// The controller owns the selected date, the search term, the visible
// entries, the per-day count map and the derived statistics. All reads go
// through Snapshot and all mutations through the exported methods, so the
// package is safe for use from concurrent fetch goroutines.
package dashboard

import (
	"context"
	"sync"

	"github.com/vocabtracker/backend/internal/models"
	"go.uber.org/zap"
)

// Store is the interface that wraps the vocabulary API calls the controller depends on
type Store interface {
	// Method ListVocabularies retrieves entries for the given filters.
	//
	// "date" parameter filters entries by calendar day; a zero date requests all entries.
	// "search" parameter filters by word or meaning substring; empty means no filter.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	ListVocabularies(ctx context.Context, date models.Date, search string) ([]models.Vocabulary, error)
	// Method CreateVocabulary stores a new entry.
	//
	// If some error occurs during creation, the error will be returned together with "nil" value.
	CreateVocabulary(ctx context.Context, req *models.CreateVocabRequest) (*models.Vocabulary, error)
	// Method UpdateVocabulary applies a partial update to an existing entry.
	//
	// If some error occurs during the update, the error will be returned together with "nil" value.
	UpdateVocabulary(ctx context.Context, id int, req *models.UpdateVocabRequest) (*models.Vocabulary, error)
	// Method DeleteVocabulary removes an entry by id.
	//
	// If some error occurs during deletion, the error will be returned.
	DeleteVocabulary(ctx context.Context, id int) error
}

// Stats summarizes the visible entries. Total is always the sum of
// Mastered and ReviewNeeded.
type Stats struct {
	Total        int
	Mastered     int
	ReviewNeeded int
}

// Snapshot is a consistent copy of the controller state for rendering
type Snapshot struct {
	SelectedDate models.Date
	SearchTerm   string
	Vocabularies []models.Vocabulary
	VocabCounts  map[string]int
	Stats        Stats
	Loading      bool
	ShowForm     bool
	Editing      *models.Vocabulary
	DeletingID   int
}

// Controller coordinates vocabulary view state against a Store.
//
// Each fetch stream (entries, counts) carries a sequence number. A new
// fetch bumps the sequence and cancels the in-flight request, and a
// response is applied only if its sequence is still current, so a slow
// response for an old date can never overwrite a newer one.
type Controller struct {
	store  Store
	logger *zap.Logger

	mu           sync.Mutex
	selectedDate models.Date
	searchTerm   string
	vocabularies []models.Vocabulary
	vocabCounts  map[string]int
	stats        Stats
	loading      bool
	showForm     bool
	editing      *models.Vocabulary
	deletingID   int

	entriesSeq    uint64
	entriesCancel context.CancelFunc
	countsSeq     uint64
	countsCancel  context.CancelFunc
}

// NewController creates a controller starting on today's date
func NewController(store Store, logger *zap.Logger) *Controller {
	return &Controller{
		store:        store,
		logger:       logger,
		selectedDate: models.Today(),
		vocabularies: []models.Vocabulary{},
		vocabCounts:  map[string]int{},
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	vocabs := make([]models.Vocabulary, len(c.vocabularies))
	copy(vocabs, c.vocabularies)

	counts := make(map[string]int, len(c.vocabCounts))
	for k, v := range c.vocabCounts {
		counts[k] = v
	}

	var editing *models.Vocabulary
	if c.editing != nil {
		e := *c.editing
		editing = &e
	}

	return Snapshot{
		SelectedDate: c.selectedDate,
		SearchTerm:   c.searchTerm,
		Vocabularies: vocabs,
		VocabCounts:  counts,
		Stats:        c.stats,
		Loading:      c.loading,
		ShowForm:     c.showForm,
		Editing:      editing,
		DeletingID:   c.deletingID,
	}
}

// SelectDate switches the dashboard to another day. The search term is
// reset and the visible entries are refetched for the new date.
func (c *Controller) SelectDate(ctx context.Context, date models.Date) error {
	c.mu.Lock()
	c.selectedDate = date
	c.searchTerm = ""
	c.mu.Unlock()

	return c.RefreshEntries(ctx)
}

// SetSearchTerm updates the search filter and refetches the visible entries
func (c *Controller) SetSearchTerm(ctx context.Context, term string) error {
	c.mu.Lock()
	c.searchTerm = term
	c.mu.Unlock()

	return c.RefreshEntries(ctx)
}

// RefreshEntries refetches the entries for the selected date and search
// term and recomputes the statistics. A refresh started after this one
// supersedes it: the stale response is dropped and its context cancelled.
func (c *Controller) RefreshEntries(ctx context.Context) error {
	c.mu.Lock()
	c.entriesSeq++
	seq := c.entriesSeq
	if c.entriesCancel != nil {
		c.entriesCancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.entriesCancel = cancel
	date := c.selectedDate
	search := c.searchTerm
	c.loading = true
	c.mu.Unlock()

	vocabs, err := c.store.ListVocabularies(fetchCtx, date, search)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.entriesSeq {
		// Superseded by a newer refresh
		return nil
	}
	cancel()
	c.loading = false
	c.entriesCancel = nil
	if err != nil {
		c.logger.Error("failed to refresh entries", zap.Error(err), zap.String("date", date.Key()))
		return err
	}
	c.vocabularies = vocabs
	c.stats = computeStats(vocabs)
	return nil
}

// RefreshCounts refetches all entries and rebuilds the per-day count map
// used for calendar badges. Entries without a date are skipped.
func (c *Controller) RefreshCounts(ctx context.Context) error {
	c.mu.Lock()
	c.countsSeq++
	seq := c.countsSeq
	if c.countsCancel != nil {
		c.countsCancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.countsCancel = cancel
	c.mu.Unlock()

	vocabs, err := c.store.ListVocabularies(fetchCtx, models.Date{}, "")

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.countsSeq {
		return nil
	}
	cancel()
	c.countsCancel = nil
	if err != nil {
		c.logger.Error("failed to refresh counts", zap.Error(err))
		return err
	}
	counts := make(map[string]int)
	for _, v := range vocabs {
		if v.Date.IsZero() {
			continue
		}
		counts[v.Date.Key()]++
	}
	c.vocabCounts = counts
	return nil
}

// Invalidate refetches both the visible entries and the count map
func (c *Controller) Invalidate(ctx context.Context) error {
	if err := c.RefreshEntries(ctx); err != nil {
		return err
	}
	return c.RefreshCounts(ctx)
}

// OpenForm shows the entry form. A nil "editing" parameter opens the form
// in create mode for the selected date.
func (c *Controller) OpenForm(editing *models.Vocabulary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showForm = true
	c.editing = editing
}

// CloseForm hides the entry form without saving
func (c *Controller) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showForm = false
	c.editing = nil
}

// SaveEntry creates or updates an entry from the form fields. In create
// mode the entry lands on the selected date. On success the form closes
// and both the entries and the counts are refreshed; on failure the form
// stays open so the input is not lost.
func (c *Controller) SaveEntry(ctx context.Context, word, meaning, example string, status models.Status) error {
	c.mu.Lock()
	editing := c.editing
	date := c.selectedDate
	c.mu.Unlock()

	var err error
	if editing == nil {
		_, err = c.store.CreateVocabulary(ctx, &models.CreateVocabRequest{
			Word:    word,
			Meaning: meaning,
			Example: example,
			Status:  status,
			Date:    date.Key(),
		})
	} else {
		_, err = c.store.UpdateVocabulary(ctx, editing.ID, &models.UpdateVocabRequest{
			Word:    word,
			Meaning: meaning,
			Example: example,
			Status:  status,
		})
	}
	if err != nil {
		c.logger.Error("failed to save entry", zap.Error(err))
		return err
	}

	c.CloseForm()
	return c.Invalidate(ctx)
}

// DeleteEntry removes an entry and refreshes both the entries and the
// counts. The entry stays visible but marked as deleting until the
// refresh lands.
func (c *Controller) DeleteEntry(ctx context.Context, id int) error {
	c.mu.Lock()
	c.deletingID = id
	c.mu.Unlock()

	err := c.store.DeleteVocabulary(ctx, id)

	c.mu.Lock()
	c.deletingID = 0
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("failed to delete entry", zap.Error(err), zap.Int("vocabId", id))
		return err
	}
	return c.Invalidate(ctx)
}

// ToggleStatus flips an entry between mastered and review_needed and
// refreshes the visible entries. The count map is untouched since a status
// change never moves an entry between days.
func (c *Controller) ToggleStatus(ctx context.Context, id int) error {
	c.mu.Lock()
	var current models.Status
	found := false
	for _, v := range c.vocabularies {
		if v.ID == id {
			current = v.Status
			found = true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		c.logger.Warn("toggle requested for unknown entry", zap.Int("vocabId", id))
		return nil
	}

	if _, err := c.store.UpdateVocabulary(ctx, id, &models.UpdateVocabRequest{
		Status: current.Toggled(),
	}); err != nil {
		c.logger.Error("failed to toggle status", zap.Error(err), zap.Int("vocabId", id))
		return err
	}

	return c.RefreshEntries(ctx)
}

func computeStats(vocabs []models.Vocabulary) Stats {
	stats := Stats{Total: len(vocabs)}
	for _, v := range vocabs {
		if v.Status == models.StatusMastered {
			stats.Mastered++
		} else {
			stats.ReviewNeeded++
		}
	}
	return stats
}
