package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebwray/portal/internal/session"
)

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "shift+tab", "up", "down":
		m.loginInputs[m.loginFocus].Blur()
		m.loginFocus = (m.loginFocus + 1) % 2
		return m, m.loginInputs[m.loginFocus].Focus()

	case "enter":
		if m.loggingIn {
			return m, nil
		}
		username := strings.TrimSpace(m.loginInputs[0].Value())
		password := m.loginInputs[1].Value()

		m.fieldErrs[0] = ""
		m.fieldErrs[1] = ""
		m.authErr = ""
		if verr := session.ValidateUsername(username); verr != nil {
			m.fieldErrs[0] = verr.(*session.ValidationError).Message
		}
		if verr := session.ValidatePassword(password); verr != nil {
			m.fieldErrs[1] = verr.(*session.ValidationError).Message
		}
		if m.fieldErrs[0] != "" || m.fieldErrs[1] != "" {
			return m, nil
		}

		m.loggingIn = true
		return m, tea.Batch(m.spin.Tick, m.loginCmd(username, password))
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	// Editing a field clears its validation error.
	m.fieldErrs[m.loginFocus] = ""
	return m, cmd
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loggingIn = false
	if msg.err != nil {
		m.authErr = "login failed: " + msg.err.Error()
		return m, nil
	}
	if !msg.ok {
		m.authErr = "invalid username or password"
		return m, nil
	}

	m.authErr = ""
	m.loginInputs[1].SetValue("")
	m.currentView = ViewCharacters
	return m, m.fetchListCmd(m.params, false)
}

func (m Model) renderLogin() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("portal"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render("sign in to browse the catalog"))
	b.WriteString("\n\n")

	labels := [2]string{"Username", "Password"}
	for i := range m.loginInputs {
		b.WriteString(m.styles.Text.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(m.loginInputs[i].View())
		b.WriteString("\n")
		if m.fieldErrs[i] != "" {
			b.WriteString(m.styles.DangerText.Render(m.fieldErrs[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.loggingIn {
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.MutedText.Render(" signing in..."))
		b.WriteString("\n")
	} else if m.authErr != "" {
		b.WriteString(m.styles.DangerText.Render(m.authErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("enter sign in • tab switch field • ctrl+c quit"))

	return m.styles.Panel.Render(b.String())
}
