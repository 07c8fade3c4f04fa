package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vocabtracker/backend/internal/dashboard"
	"github.com/vocabtracker/backend/internal/models"
)

const skeletonRows = 3

var (
	listTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	entryStyle = lipgloss.NewStyle()

	entrySelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true)

	entryDeletingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Strikethrough(true)

	skeletonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	masteredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	reviewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// EmptyListMessage explains why the list has no rows. The wording depends
// on whether a search filter hid the entries or the day is simply empty.
func EmptyListMessage(searchTerm string) string {
	if searchTerm != "" {
		return "No vocabulary matches your search."
	}
	return "No vocabulary entries for this date."
}

func statusLabel(status models.Status) string {
	if status == models.StatusMastered {
		return masteredStyle.Render("mastered")
	}
	return reviewStyle.Render("review needed")
}

// RenderList renders the entries for the selected day. While a fetch is in
// flight it shows skeleton rows instead of the stale list, and the entry
// being deleted is struck through until the refresh lands.
func RenderList(snap dashboard.Snapshot, cursor int) string {
	var s strings.Builder

	s.WriteString(listTitleStyle.Render(fmt.Sprintf("Entries for %s", snap.SelectedDate.Key())))
	if snap.SearchTerm != "" {
		s.WriteString(fmt.Sprintf("  (search: %q)", snap.SearchTerm))
	}
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Total: %d  Mastered: %d  Review needed: %d\n\n",
		snap.Stats.Total, snap.Stats.Mastered, snap.Stats.ReviewNeeded))

	if snap.Loading {
		for i := 0; i < skeletonRows; i++ {
			s.WriteString(skeletonStyle.Render("░░░░░░░░░░░░░░░░░░░░░░░░░░░░"))
			s.WriteString("\n")
		}
		return s.String()
	}

	if len(snap.Vocabularies) == 0 {
		s.WriteString(emptyStyle.Render(EmptyListMessage(snap.SearchTerm)))
		s.WriteString("\n")
		return s.String()
	}

	for i, v := range snap.Vocabularies {
		line := fmt.Sprintf("%s - %s", v.Word, v.Meaning)
		if v.Example != "" {
			line += fmt.Sprintf("  (%s)", v.Example)
		}
		line += "  [" + statusLabel(v.Status) + "]"

		switch {
		case v.ID == snap.DeletingID:
			s.WriteString(entryDeletingStyle.Render("  " + line))
		case i == cursor:
			s.WriteString(entrySelectedStyle.Render("> " + line))
		default:
			s.WriteString(entryStyle.Render("  " + line))
		}
		s.WriteString("\n")
	}

	return s.String()
}
