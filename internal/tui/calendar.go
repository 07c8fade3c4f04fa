// Package tui implements the terminal interface for the vocabulary dashboard
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vocabtracker/backend/internal/models"
)

const maxBadgeCount = 9

var (
	calendarHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	dayStyle = lipgloss.NewStyle().
			Width(7)

	selectedDayStyle = lipgloss.NewStyle().
				Width(7).
				Foreground(lipgloss.Color("170")).
				Bold(true)

	todayStyle = lipgloss.NewStyle().
			Width(7).
			Foreground(lipgloss.Color("42")).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))
)

// Calendar renders one month with per-day entry count badges
type Calendar struct {
	Year     int
	Month    time.Month
	Selected models.Date
	Today    models.Date
	Counts   map[string]int
}

// NewCalendar creates a calendar showing the month of the selected date
func NewCalendar(selected models.Date, counts map[string]int) Calendar {
	return Calendar{
		Year:     selected.Year(),
		Month:    selected.Month(),
		Selected: selected,
		Today:    models.Today(),
		Counts:   counts,
	}
}

// PrevMonth moves the displayed month back without changing the selection
func (c Calendar) PrevMonth() Calendar {
	first := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	c.Year, c.Month = first.Year(), first.Month()
	return c
}

// NextMonth moves the displayed month forward without changing the selection
func (c Calendar) NextMonth() Calendar {
	first := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	c.Year, c.Month = first.Year(), first.Month()
	return c
}

// LeadingBlanks returns the number of empty cells before day 1, with
// Sunday as the first column.
func (c Calendar) LeadingBlanks() int {
	first := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
	return int(first.Weekday())
}

// DaysInMonth returns the number of days in the displayed month
func (c Calendar) DaysInMonth() int {
	return time.Date(c.Year, c.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOf returns the Date for a day number in the displayed month
func (c Calendar) DateOf(day int) models.Date {
	return models.NewDate(time.Date(c.Year, c.Month, day, 0, 0, 0, 0, time.UTC))
}

// BadgeLabel formats an entry count for a day cell. Zero counts render
// nothing and counts above nine render as "9+".
func BadgeLabel(count int) string {
	if count <= 0 {
		return ""
	}
	if count > maxBadgeCount {
		return strconv.Itoa(maxBadgeCount) + "+"
	}
	return strconv.Itoa(count)
}

// View renders the month grid
func (c Calendar) View() string {
	var s strings.Builder

	s.WriteString(calendarHeaderStyle.Render(fmt.Sprintf("%s %d", c.Month, c.Year)))
	s.WriteString("\n")
	s.WriteString("Sun    Mon    Tue    Wed    Thu    Fri    Sat\n")

	col := 0
	for i := 0; i < c.LeadingBlanks(); i++ {
		s.WriteString(dayStyle.Render(""))
		col++
	}

	for day := 1; day <= c.DaysInMonth(); day++ {
		date := c.DateOf(day)
		cell := strconv.Itoa(day)
		if badge := BadgeLabel(c.Counts[date.Key()]); badge != "" {
			cell += badgeStyle.Render("·" + badge)
		}

		switch {
		case date.Equal(c.Selected):
			s.WriteString(selectedDayStyle.Render("[" + cell + "]"))
		case date.Equal(c.Today):
			s.WriteString(todayStyle.Render(cell))
		default:
			s.WriteString(dayStyle.Render(cell))
		}

		col++
		if col%7 == 0 {
			s.WriteString("\n")
		}
	}
	if col%7 != 0 {
		s.WriteString("\n")
	}

	return s.String()
}
