// Package tui is the terminal front end: a login form, a session
// bootstrap screen, and per-role dashboards, all driven by the session
// store through a Handle.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	punchlog "github.com/punchlog/go-punchlog"
	"github.com/punchlog/go-punchlog/client"
)

// Screen identifies which view is active.
type Screen int

const (
	// ScreenChecking shows the bootstrap spinner while the stored
	// credential is verified.
	ScreenChecking Screen = iota
	// ScreenLogin shows the credential form.
	ScreenLogin
	// ScreenDashboard shows the signed-in view.
	ScreenDashboard
	// ScreenDenied shows the access refusal for authenticated users
	// without the required role.
	ScreenDenied
)

// sessionChangedMsg is delivered whenever the store completes an
// operation; the model re-reads the handle snapshot.
type sessionChangedMsg struct{}

// guardMsg carries a resolved route decision.
type guardMsg struct {
	decision punchlog.Decision
}

// loginDoneMsg carries the outcome of a submitted login form.
type loginDoneMsg struct {
	result punchlog.LoginResult
}

// recordsMsg carries the user's clock records.
type recordsMsg struct {
	records []client.ClockRecord
	err     error
}

// summaryMsg carries the worked-hours summary.
type summaryMsg struct {
	summary *client.Summary
	err     error
}

// punchedMsg is sent after a clock-in or clock-out attempt.
type punchedMsg struct {
	record *client.ClockRecord
	err    error
}

// Model is the bubbletea application state.
type Model struct {
	handle  *punchlog.Handle
	guard   *punchlog.Guard
	records *client.ClockRecords

	screen  Screen
	session punchlog.Session

	email    textinput.Model
	password textinput.Model
	focus    int
	spin     spinner.Model

	list    []client.ClockRecord
	summary *client.Summary
	notice  string
	errText string

	width  int
	height int
}

// New builds the TUI model. The guard decides the landing screen once
// the stored credential has been checked.
func New(handle *punchlog.Handle, guard *punchlog.Guard, records *client.ClockRecords) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 100
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		handle:   handle,
		guard:    guard,
		records:  records,
		screen:   ScreenChecking,
		session:  handle.Snapshot(),
		email:    email,
		password: password,
		spin:     spin,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		m.listenChanged(),
		m.resolveGuard(),
	)
}

// listenChanged blocks on the handle's change channel and converts the
// signal into a message.
func (m Model) listenChanged() tea.Cmd {
	return func() tea.Msg {
		<-m.handle.Changed()
		return sessionChangedMsg{}
	}
}

func (m Model) resolveGuard() tea.Cmd {
	return func() tea.Msg {
		return guardMsg{decision: m.guard.Resolve(context.Background())}
	}
}

func (m Model) submitLogin() tea.Cmd {
	creds := punchlog.Credentials{
		Email:    m.email.Value(),
		Password: m.password.Value(),
	}
	return func() tea.Msg {
		return loginDoneMsg{result: m.handle.Login(context.Background(), creds)}
	}
}

func (m Model) loadRecords() tea.Cmd {
	return func() tea.Msg {
		list, err := m.records.Mine(context.Background(), client.RecordFilter{})
		return recordsMsg{records: list, err: err}
	}
}

func (m Model) loadSummary() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.records.Summarize(context.Background(), client.PeriodWeek, "", "", "")
		return summaryMsg{summary: summary, err: err}
	}
}

func (m Model) punch(entryType string) tea.Cmd {
	return func() tea.Msg {
		record, err := m.records.Create(context.Background(), client.NewClockRecord{Type: entryType})
		return punchedMsg{record: record, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionChangedMsg:
		m.session = m.handle.Snapshot()
		if !m.session.IsAuthenticated && m.screen == ScreenDashboard {
			m.screen = ScreenLogin
			m.list = nil
			m.summary = nil
		}
		return m, m.listenChanged()

	case guardMsg:
		return m.applyDecision(msg.decision)

	case loginDoneMsg:
		if !msg.result.Success {
			m.errText = msg.result.Error
			return m, nil
		}
		m.errText = ""
		m.password.SetValue("")
		return m, m.resolveGuard()

	case recordsMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.list = msg.records
		return m, nil

	case summaryMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.summary = msg.summary
		return m, nil

	case punchedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		if msg.record.Type == client.ClockOut {
			m.notice = "Clocked out"
		} else {
			m.notice = "Clocked in"
		}
		return m, tea.Batch(m.loadRecords(), m.loadSummary())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) applyDecision(decision punchlog.Decision) (tea.Model, tea.Cmd) {
	m.session = m.handle.Snapshot()

	switch decision.State {
	case punchlog.GuardAuthorized:
		m.screen = ScreenDashboard
		m.errText = ""
		return m, tea.Batch(m.loadRecords(), m.loadSummary())
	case punchlog.GuardDenied:
		if decision.Redirect == punchlog.AccessDeniedRedirect {
			m.screen = ScreenDenied
		} else {
			m.screen = ScreenLogin
		}
		return m, nil
	}

	m.screen = ScreenChecking
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenLogin:
		return m.handleLoginKey(msg)
	case ScreenDashboard:
		return m.handleDashboardKey(msg)
	case ScreenDenied:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "l":
			m.handle.Logout()
			m.screen = ScreenLogin
			return m, nil
		}
	}

	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.focus = (m.focus + 1) % 2
		if m.focus == 0 {
			m.email.Focus()
			m.password.Blur()
		} else {
			m.password.Focus()
			m.email.Blur()
		}
		return m, nil

	case tea.KeyEnter:
		if m.focus == 0 {
			m.focus = 1
			m.email.Blur()
			m.password.Focus()
			return m, nil
		}
		return m, m.submitLogin()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "i":
		return m, m.punch(client.ClockIn)
	case "o":
		return m, m.punch(client.ClockOut)
	case "r":
		return m, tea.Batch(m.loadRecords(), m.loadSummary())
	case "l":
		m.handle.Logout()
		m.screen = ScreenLogin
		m.list = nil
		m.summary = nil
		m.notice = ""
		return m, nil
	}
	return m, nil
}

// Run starts the program on the alternate screen.
func Run(handle *punchlog.Handle, guard *punchlog.Guard, records *client.ClockRecords) error {
	program := tea.NewProgram(New(handle, guard, records), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
