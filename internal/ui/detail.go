package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebwray/portal/internal/catalog"
	"github.com/calebwray/portal/internal/query"
)

func (m Model) openDetail(target string) (Model, tea.Cmd) {
	m.currentView = ViewDetail
	m.detailTarget = target
	m.detail = query.Result{}
	m.location = query.Result{}
	m.episodes = query.Result{}
	return m, tea.Batch(m.spin.Tick, m.fetchDetailCmd(target, false))
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.currentView = ViewCharacters
		return m, nil

	case "f":
		if ch, ok := m.detail.Data.(catalog.Character); ok {
			if _, err := m.favorites.Toggle(ch.ID); err != nil {
				m.logger.Error("toggle favorite failed", "id", ch.ID, "error", err)
			}
		}
		return m, nil

	case "r":
		// Retry whichever section failed; each query retries on its own.
		var cmds []tea.Cmd
		if m.detail.Status == query.StatusFailed {
			m.detail = query.Result{}
			cmds = append(cmds, m.fetchDetailCmd(m.detailTarget, true))
		}
		if m.location.Status == query.StatusFailed {
			m.location = query.Result{}
			cmds = append(cmds, m.fetchLocationCmd(m.detailLocationURL(), true))
		}
		if m.episodes.Status == query.StatusFailed {
			m.episodes = query.Result{}
			cmds = append(cmds, m.fetchEpisodesCmd(m.detailEpisodeURLs(), true))
		}
		if len(cmds) == 0 {
			return m, nil
		}
		return m, tea.Batch(append(cmds, m.spin.Tick)...)
	}

	return m, nil
}

func (m Model) handleDetailResult(msg detailResultMsg) (tea.Model, tea.Cmd) {
	if msg.key != characterKey(m.detailTarget) {
		return m, nil
	}
	m.detail = msg.res

	// Enrichment queries start only once the primary record is in hand.
	if ch, ok := msg.res.Data.(catalog.Character); ok && msg.res.Status == query.StatusSuccess {
		var cmds []tea.Cmd
		if ch.Location.URL != "" {
			cmds = append(cmds, m.fetchLocationCmd(ch.Location.URL, false))
		}
		if len(ch.Episodes) > 0 {
			cmds = append(cmds, m.fetchEpisodesCmd(ch.Episodes, false))
		}
		if len(cmds) > 0 {
			return m, tea.Batch(append(cmds, m.spin.Tick)...)
		}
	}
	return m, nil
}

func (m Model) renderDetail() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("portal — character"))
	b.WriteString("\n\n")

	switch m.detail.Status {
	case query.StatusFetching, query.StatusIdle:
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.MutedText.Render(" loading..."))
		b.WriteString("\n")
	case query.StatusFailed:
		b.WriteString(m.styles.DangerText.Render(errorLine(m.detail.Err)))
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("press r to retry"))
		b.WriteString("\n")
	case query.StatusSuccess:
		if ch, ok := m.detail.Data.(catalog.Character); ok {
			b.WriteString(m.renderCharacterCard(ch))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("esc back • f favorite • r retry failed"))

	return b.String()
}

func (m Model) renderCharacterCard(ch catalog.Character) string {
	var b strings.Builder

	name := ch.Name
	if m.favorites != nil && m.favorites.Contains(ch.ID) {
		name += " ★"
	}
	b.WriteString(m.styles.AccentText.Render(name))
	b.WriteString("  ")
	b.WriteString(m.styles.StatusStyle(ch.Status).Render(ch.Status))
	b.WriteString("\n\n")

	b.WriteString(m.detailRow("Species", ch.Species))
	if ch.Type != "" {
		b.WriteString(m.detailRow("Type", ch.Type))
	}
	b.WriteString(m.detailRow("Gender", ch.Gender))
	b.WriteString(m.detailRow("Origin", ch.Origin.Name))
	b.WriteString(m.detailRow("Episodes", fmt.Sprintf("%d", len(ch.Episodes))))
	b.WriteString("\n")

	b.WriteString(m.styles.AccentText.Render("Last known location"))
	b.WriteString("\n")
	b.WriteString(m.renderLocationSection(ch))
	b.WriteString("\n")

	b.WriteString(m.styles.AccentText.Render("Episodes"))
	b.WriteString("\n")
	b.WriteString(m.renderEpisodesSection())

	return b.String()
}

func (m Model) detailRow(label, value string) string {
	return fmt.Sprintf("%s %s\n",
		m.styles.MutedText.Render(fmt.Sprintf("%-10s", label)),
		m.styles.Text.Render(value))
}

func (m Model) renderLocationSection(ch catalog.Character) string {
	if ch.Location.URL == "" {
		return m.styles.MutedText.Render(ch.Location.Name) + "\n"
	}

	switch m.location.Status {
	case query.StatusFetching, query.StatusIdle:
		return m.spin.View() + m.styles.MutedText.Render(" loading "+ch.Location.Name+"...") + "\n"
	case query.StatusFailed:
		return m.styles.DangerText.Render(errorLine(m.location.Err)) + "\n"
	}

	loc, ok := m.location.Data.(catalog.Location)
	if !ok {
		return m.styles.MutedText.Render(ch.Location.Name) + "\n"
	}
	var b strings.Builder
	b.WriteString(m.styles.Text.Render(loc.Name))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("%s · %s · %d residents", loc.Type, loc.Dimension, len(loc.Residents))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderEpisodesSection() string {
	switch m.episodes.Status {
	case query.StatusFetching, query.StatusIdle:
		return m.spin.View() + m.styles.MutedText.Render(" loading episodes...") + "\n"
	case query.StatusFailed:
		return m.styles.DangerText.Render(errorLine(m.episodes.Err)) + "\n"
	}

	eps, ok := m.episodes.Data.([]catalog.Episode)
	if !ok {
		return m.styles.MutedText.Render("no episodes") + "\n"
	}

	var b strings.Builder
	shown := eps
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, ep := range shown {
		b.WriteString(m.styles.Text.Render(fmt.Sprintf("%-7s %s", ep.Code, ep.Name)))
		b.WriteString("\n")
	}
	if len(eps) > len(shown) {
		b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("… and %d more", len(eps)-len(shown))))
		b.WriteString("\n")
	}
	return b.String()
}
