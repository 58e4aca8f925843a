package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	punchlog "github.com/punchlog/go-punchlog"
	"github.com/punchlog/go-punchlog/client"
)

func (m Model) View() string {
	var body string

	switch m.screen {
	case ScreenChecking:
		body = m.checkingView()
	case ScreenLogin:
		body = m.loginView()
	case ScreenDashboard:
		body = m.dashboardView()
	case ScreenDenied:
		body = m.deniedView()
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) checkingView() string {
	return boxStyle.Render(
		titleStyle.Render("punchlog") + "\n" +
			m.spin.View() + " checking session...",
	)
}

func (m Model) loginView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("punchlog · sign in"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab: switch · enter: submit · esc: quit"))

	return boxStyle.Render(b.String())
}

func (m Model) dashboardView() string {
	var b strings.Builder

	name := ""
	role := punchlog.Role("")
	if m.session.User != nil {
		name = m.session.User.Name
		role = m.session.User.Role
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("punchlog · %s (%s)", name, role)))
	b.WriteString("\n")

	if m.summary != nil {
		b.WriteString(labelStyle.Render("This week: "))
		b.WriteString(okStyle.Render(fmt.Sprintf("%.2f h", m.summary.TotalHours)))
		b.WriteString(labelStyle.Render(fmt.Sprintf("  (%d entries, %s to %s)",
			m.summary.Records, m.summary.StartDate, m.summary.EndDate)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.recordsView())

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(okStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("i: clock in · o: clock out · r: refresh · l: logout · q: quit"))

	return boxStyle.Render(b.String())
}

func (m Model) recordsView() string {
	if len(m.list) == 0 {
		return labelStyle.Render("No clock records yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s %-10s %-10s %s", "Date", "Time", "Type", "Status")))
	b.WriteString("\n")

	// latest entries first, cap the list to keep the box small
	shown := 0
	for i := len(m.list) - 1; i >= 0 && shown < 10; i-- {
		rec := m.list[i]
		kind := "in"
		if rec.Type == client.ClockOut {
			kind = "out"
		}
		line := fmt.Sprintf("%-12s %-10s %-10s %s", rec.Date, rec.Time, kind, rec.Status)
		b.WriteString(statusStyle(rec.Status).Render(line))
		b.WriteString("\n")
		shown++
	}

	return b.String()
}

func (m Model) deniedView() string {
	var b strings.Builder
	b.WriteString(deniedStyle.Render("Access denied"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Your account does not have the required role for this area."))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("l: sign in as someone else · q: quit"))
	return boxStyle.Render(b.String())
}
