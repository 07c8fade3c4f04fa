package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vocabtracker/backend/internal/client"
	"github.com/vocabtracker/backend/internal/dashboard"
	"github.com/vocabtracker/backend/internal/models"
)

type view int

const (
	viewLogin view = iota
	viewDashboard
	viewForm
	viewSearch
)

// refreshDoneMsg carries the result of an async dashboard refresh
type refreshDoneMsg struct {
	err error
}

// saveDoneMsg carries the result of an async form save
type saveDoneMsg struct {
	err error
}

// authDoneMsg carries the result of an async login or register call
type authDoneMsg struct {
	err error
}

// UnauthorizedMsg is sent when the server rejects the session token.
// The app drops the session and returns to the login view.
type UnauthorizedMsg struct{}

var (
	appTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	appStyle = lipgloss.NewStyle().
			Padding(1, 2)

	appErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// App is the root bubbletea model for the vocabulary dashboard
type App struct {
	client *client.Client
	ctrl   *dashboard.Controller

	view     view
	calendar Calendar
	form     Form
	cursor   int
	spinner  spinner.Model
	err      error

	email       textinput.Model
	password    textinput.Model
	loginFocus  int
	registering bool
	authBusy    bool

	search textinput.Model
}

// NewApp creates the root model
func NewApp(apiClient *client.Client, ctrl *dashboard.Controller) App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	email := textinput.New()
	email.Placeholder = "Email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword

	search := textinput.New()
	search.Placeholder = "Search word or meaning"

	return App{
		client:   apiClient,
		ctrl:     ctrl,
		view:     viewLogin,
		spinner:  s,
		email:    email,
		password: password,
		search:   search,
	}
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func (a App) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: a.ctrl.Invalidate(context.Background())}
	}
}

func (a App) selectDateCmd(date models.Date) tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: a.ctrl.SelectDate(context.Background(), date)}
	}
}

func (a App) searchCmd(term string) tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: a.ctrl.SetSearchTerm(context.Background(), term)}
	}
}

func (a App) toggleCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: a.ctrl.ToggleStatus(context.Background(), id)}
	}
}

func (a App) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: a.ctrl.DeleteEntry(context.Background(), id)}
	}
}

func (a App) saveCmd(word, meaning, example string, status models.Status) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: a.ctrl.SaveEntry(context.Background(), word, meaning, example, status)}
	}
}

func (a App) authCmd(email, password string, register bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if register {
			_, err = a.client.Register(context.Background(), email, password)
		} else {
			_, err = a.client.Login(context.Background(), email, password)
		}
		return authDoneMsg{err: err}
	}
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UnauthorizedMsg:
		a.client.SetToken("")
		a.view = viewLogin
		a.err = fmt.Errorf("session expired, please log in again")
		a.email.Focus()
		a.password.Blur()
		a.loginFocus = 0
		return a, textinput.Blink

	case authDoneMsg:
		a.authBusy = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.view = viewDashboard
		snap := a.ctrl.Snapshot()
		a.calendar = NewCalendar(snap.SelectedDate, snap.VocabCounts)
		return a, tea.Batch(a.refreshCmd(), a.spinner.Tick)

	case refreshDoneMsg:
		if msg.err != nil && msg.err != client.ErrUnauthorized {
			a.err = msg.err
		} else if msg.err == nil {
			a.err = nil
		}
		snap := a.ctrl.Snapshot()
		a.calendar.Counts = snap.VocabCounts
		if a.cursor >= len(snap.Vocabularies) {
			a.cursor = 0
		}
		return a, nil

	case saveDoneMsg:
		a.form.SetSubmitting(false)
		if msg.err != nil {
			// Keep the form open so the input is not lost
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.view = viewDashboard
		snap := a.ctrl.Snapshot()
		a.calendar.Counts = snap.VocabCounts
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch a.view {
		case viewLogin:
			return a.updateLogin(msg)
		case viewDashboard:
			return a.updateDashboard(msg)
		case viewForm:
			return a.updateForm(msg)
		case viewSearch:
			return a.updateSearch(msg)
		}
	}

	return a, nil
}

func (a App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "tab", "shift+tab", "up", "down":
		a.loginFocus = 1 - a.loginFocus
		if a.loginFocus == 0 {
			a.email.Focus()
			a.password.Blur()
		} else {
			a.password.Focus()
			a.email.Blur()
		}
		return a, textinput.Blink

	case "ctrl+r":
		a.registering = !a.registering
		return a, nil

	case "enter":
		if a.authBusy {
			return a, nil
		}
		email := strings.TrimSpace(a.email.Value())
		password := a.password.Value()
		if email == "" || password == "" {
			a.err = fmt.Errorf("email and password are required")
			return a, nil
		}
		a.authBusy = true
		a.err = nil
		return a, tea.Batch(a.authCmd(email, password, a.registering), a.spinner.Tick)
	}

	var cmd tea.Cmd
	if a.loginFocus == 0 {
		a.email, cmd = a.email.Update(msg)
	} else {
		a.password, cmd = a.password.Update(msg)
	}
	return a, cmd
}

func (a App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := a.ctrl.Snapshot()

	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit

	case "left", "h":
		return a.selectDate(snap.SelectedDate.AddDays(-1))

	case "right", "l":
		return a.selectDate(snap.SelectedDate.AddDays(1))

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "down", "j":
		if a.cursor < len(snap.Vocabularies)-1 {
			a.cursor++
		}
		return a, nil

	case "p":
		a.calendar = a.calendar.PrevMonth()
		return a, nil

	case "n":
		a.calendar = a.calendar.NextMonth()
		return a, nil

	case "a":
		a.ctrl.OpenForm(nil)
		a.form = NewForm(nil)
		a.view = viewForm
		return a, textinput.Blink

	case "e":
		if a.cursor < len(snap.Vocabularies) {
			editing := snap.Vocabularies[a.cursor]
			a.ctrl.OpenForm(&editing)
			a.form = NewForm(&editing)
			a.view = viewForm
			return a, textinput.Blink
		}
		return a, nil

	case "d":
		if snap.DeletingID != 0 {
			// A delete is already in flight
			return a, nil
		}
		if a.cursor < len(snap.Vocabularies) {
			id := snap.Vocabularies[a.cursor].ID
			return a, tea.Batch(a.deleteCmd(id), a.spinner.Tick)
		}
		return a, nil

	case "t":
		if a.cursor < len(snap.Vocabularies) {
			id := snap.Vocabularies[a.cursor].ID
			return a, tea.Batch(a.toggleCmd(id), a.spinner.Tick)
		}
		return a, nil

	case "/":
		a.search.SetValue(snap.SearchTerm)
		a.search.Focus()
		a.view = viewSearch
		return a, textinput.Blink

	case "r":
		return a, tea.Batch(a.refreshCmd(), a.spinner.Tick)
	}

	return a, nil
}

func (a App) selectDate(date models.Date) (tea.Model, tea.Cmd) {
	a.cursor = 0
	a.calendar.Selected = date
	a.calendar.Year = date.Year()
	a.calendar.Month = date.Month()
	return a, tea.Batch(a.selectDateCmd(date), a.spinner.Tick)
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form.Submitting() {
		return a, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.ctrl.CloseForm()
		a.view = viewDashboard
		a.err = nil
		return a, nil

	case "tab", "down":
		a.form.NextField()
		return a, nil

	case "shift+tab", "up":
		a.form.PrevField()
		return a, nil

	case " ":
		if a.form.OnStatusRow() {
			a.form.ToggleStatus()
			return a, nil
		}

	case "enter":
		if !a.form.Validate() {
			return a, nil
		}
		a.form.SetSubmitting(true)
		return a, tea.Batch(
			a.saveCmd(a.form.Word(), a.form.Meaning(), a.form.Example(), a.form.Status()),
			a.spinner.Tick,
		)
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return a, cmd
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.view = viewDashboard
		return a, nil

	case "enter":
		a.view = viewDashboard
		return a, nil
	}

	// Every edit refetches immediately; the controller's sequencing drops
	// responses that arrive after a later keystroke
	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if a.search.Value() != before {
		a.cursor = 0
		return a, tea.Batch(cmd, a.searchCmd(strings.TrimSpace(a.search.Value())), a.spinner.Tick)
	}
	return a, cmd
}

// View implements tea.Model
func (a App) View() string {
	switch a.view {
	case viewLogin:
		return a.renderLogin()
	case viewForm:
		return appStyle.Render(a.renderHeader() + a.form.View())
	case viewSearch:
		return appStyle.Render(a.renderHeader() + "Search: " + a.search.View() + "\n\n" +
			hintStyle.Render("Enter to apply, Esc to cancel"))
	default:
		return a.renderDashboard()
	}
}

func (a App) renderHeader() string {
	var s strings.Builder
	s.WriteString(appTitleStyle.Render("VocabTracker"))
	s.WriteString("\n")
	if a.err != nil {
		s.WriteString(appErrorStyle.Render("Error: " + a.err.Error()))
		s.WriteString("\n")
	}
	s.WriteString("\n")
	return s.String()
}

func (a App) renderLogin() string {
	var s strings.Builder

	s.WriteString(appTitleStyle.Render("VocabTracker"))
	s.WriteString("\n\n")

	mode := "Log in"
	if a.registering {
		mode = "Register"
	}
	s.WriteString(mode + "\n\n")
	s.WriteString("Email:    " + a.email.View() + "\n")
	s.WriteString("Password: " + a.password.View() + "\n\n")

	if a.authBusy {
		s.WriteString(a.spinner.View() + " Signing in...\n\n")
	}
	if a.err != nil {
		s.WriteString(appErrorStyle.Render("Error: " + a.err.Error()))
		s.WriteString("\n\n")
	}

	s.WriteString(hintStyle.Render("Enter to submit, Ctrl+R to switch login/register, Ctrl+C to quit"))

	return appStyle.Render(s.String())
}

func (a App) renderDashboard() string {
	snap := a.ctrl.Snapshot()

	var s strings.Builder
	s.WriteString(a.renderHeader())
	s.WriteString(a.calendar.View())
	s.WriteString("\n")
	s.WriteString(RenderList(snap, a.cursor))
	s.WriteString("\n")
	s.WriteString(hintStyle.Render(
		"←/→ day  p/n month  ↑/↓ select  a add  e edit  d delete  t toggle  / search  r refresh  q quit"))

	return appStyle.Render(s.String())
}
