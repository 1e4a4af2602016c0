package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebwray/portal/internal/catalog"
	"github.com/calebwray/portal/internal/query"
)

func (m Model) openFavorites() (Model, tea.Cmd) {
	m.currentView = ViewFavorites
	m.favIDs = m.favorites.IDs()
	m.favRes = query.Result{}
	m.selectedRow = 0
	if len(m.favIDs) == 0 {
		return m, nil
	}
	return m, tea.Batch(m.spin.Tick, m.fetchFavoritesCmd(m.favIDs, false))
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.favoriteCharacters()

	switch msg.String() {
	case "esc", "backspace":
		m.currentView = ViewCharacters
		m.selectedRow = 0
		return m, nil

	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case "down", "j":
		if m.selectedRow < len(rows)-1 {
			m.selectedRow++
		}
		return m, nil

	case "f":
		if m.selectedRow < len(rows) {
			id := rows[m.selectedRow].ID
			if _, err := m.favorites.Toggle(id); err != nil {
				m.logger.Error("toggle favorite failed", "id", id, "error", err)
			}
			// Removing from the set refreshes the list against the new ids.
			return m.openFavorites()
		}
		return m, nil

	case "r":
		m.favRes = query.Result{}
		return m, tea.Batch(m.spin.Tick, m.fetchFavoritesCmd(m.favIDs, true))

	case "enter":
		if m.selectedRow < len(rows) {
			return m.openDetail(rows[m.selectedRow].URL)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) favoriteCharacters() []catalog.Character {
	chars, ok := m.favRes.Data.([]catalog.Character)
	if !ok {
		return nil
	}
	return chars
}

func (m Model) renderFavorites() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("portal — favorites"))
	b.WriteString("\n\n")

	switch {
	case len(m.favIDs) == 0:
		b.WriteString(m.styles.MutedText.Render("no favorites yet — press f on a character to add one"))
		b.WriteString("\n")
	case m.favRes.Status == query.StatusFetching || m.favRes.Status == query.StatusIdle:
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.MutedText.Render(" loading favorites..."))
		b.WriteString("\n")
	case m.favRes.Status == query.StatusFailed:
		b.WriteString(m.styles.DangerText.Render(errorLine(m.favRes.Err)))
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("press r to retry"))
		b.WriteString("\n")
	default:
		rows := m.favoriteCharacters()
		for i, ch := range rows {
			line := "★ " + truncate(ch.Name, 24) + "  " + ch.Status + " · " + ch.Species
			style := m.styles.Text
			if i == m.selectedRow {
				style = m.styles.Selected
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("esc back • f unfavorite • enter detail • r retry"))

	return b.String()
}
