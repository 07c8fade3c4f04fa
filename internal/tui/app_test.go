package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabtracker/backend/internal/dashboard"
	"github.com/vocabtracker/backend/internal/models"
	"go.uber.org/zap"
)

// stubStore serves a fixed entry list and lets tests hold a delete open
type stubStore struct {
	entries       []models.Vocabulary
	deleteStarted chan struct{}
	deleteRelease chan struct{}
}

func (s *stubStore) ListVocabularies(ctx context.Context, date models.Date, search string) ([]models.Vocabulary, error) {
	return s.entries, nil
}

func (s *stubStore) CreateVocabulary(ctx context.Context, req *models.CreateVocabRequest) (*models.Vocabulary, error) {
	return &models.Vocabulary{ID: 1}, nil
}

func (s *stubStore) UpdateVocabulary(ctx context.Context, id int, req *models.UpdateVocabRequest) (*models.Vocabulary, error) {
	return &models.Vocabulary{ID: id}, nil
}

func (s *stubStore) DeleteVocabulary(ctx context.Context, id int) error {
	if s.deleteStarted != nil {
		close(s.deleteStarted)
		<-s.deleteRelease
	}
	return nil
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes a command tree and returns every message it produces
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var msgs []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			msgs = append(msgs, runCmd(sub)...)
		}
	default:
		msgs = append(msgs, msg)
	}
	return msgs
}

func TestDeleteKeyIgnoredWhileDeleteInFlight(t *testing.T) {
	store := &stubStore{
		entries:       []models.Vocabulary{{ID: 1, Word: "hello", Meaning: "greeting"}},
		deleteStarted: make(chan struct{}),
		deleteRelease: make(chan struct{}),
	}
	ctrl := dashboard.NewController(store, zap.NewNop())
	require.NoError(t, ctrl.RefreshEntries(context.Background()))

	app := NewApp(nil, ctrl)
	app.view = viewDashboard

	done := make(chan error, 1)
	go func() {
		done <- ctrl.DeleteEntry(context.Background(), 1)
	}()
	<-store.deleteStarted
	require.Equal(t, 1, ctrl.Snapshot().DeletingID)

	// A second press must not fire another delete for the same entry
	_, cmd := app.Update(keyMsg("d"))
	assert.Nil(t, cmd)

	close(store.deleteRelease)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("delete did not finish")
	}

	// With nothing in flight the key works again
	assert.Equal(t, 0, ctrl.Snapshot().DeletingID)
	_, cmd = app.Update(keyMsg("d"))
	assert.NotNil(t, cmd)
}

func TestSearchAppliesPerKeystroke(t *testing.T) {
	store := &stubStore{}
	ctrl := dashboard.NewController(store, zap.NewNop())

	app := NewApp(nil, ctrl)
	app.view = viewSearch
	app.search.Focus()

	model, cmd := app.Update(keyMsg("h"))
	app = model.(App)

	require.NotNil(t, cmd, "a keystroke must trigger a refetch without waiting for enter")

	found := false
	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(refreshDoneMsg); ok {
			found = true
		}
	}
	assert.True(t, found, "keystroke command must include an entries refetch")
	assert.Equal(t, "h", ctrl.Snapshot().SearchTerm)

	// Keys that do not change the input do not refetch
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyLeft})
	for _, msg := range runCmd(cmd) {
		_, ok := msg.(refreshDoneMsg)
		assert.False(t, ok, "cursor movement must not refetch")
	}
}
