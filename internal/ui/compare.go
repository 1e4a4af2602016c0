package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebwray/portal/internal/catalog"
	"github.com/calebwray/portal/internal/compare"
	"github.com/calebwray/portal/internal/query"
)

func (m Model) openCompare(leftID, rightID int) (Model, tea.Cmd) {
	m.currentView = ViewCompare
	m.comparePick = 0
	m.compareIDs = [2]int{leftID, rightID}
	m.compareRes = [2]query.Result{}
	return m, tea.Batch(
		m.spin.Tick,
		m.fetchCompareCmd(0, strconv.Itoa(leftID), false),
		m.fetchCompareCmd(1, strconv.Itoa(rightID), false),
	)
}

func (m Model) handleCompareKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.currentView = ViewCharacters
		return m, nil

	case "r":
		var cmds []tea.Cmd
		for slot := range m.compareRes {
			if m.compareRes[slot].Status == query.StatusFailed {
				m.compareRes[slot] = query.Result{}
				cmds = append(cmds, m.fetchCompareCmd(slot, strconv.Itoa(m.compareIDs[slot]), true))
			}
		}
		if len(cmds) == 0 {
			return m, nil
		}
		return m, tea.Batch(append(cmds, m.spin.Tick)...)
	}

	return m, nil
}

func (m Model) handleCompareResult(msg compareResultMsg) (tea.Model, tea.Cmd) {
	if msg.slot < 0 || msg.slot > 1 {
		return m, nil
	}
	if msg.key != characterKey(strconv.Itoa(m.compareIDs[msg.slot])) {
		return m, nil
	}
	m.compareRes[msg.slot] = msg.res
	return m, nil
}

func (m Model) renderCompare() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("portal — compare"))
	b.WriteString("\n\n")

	var chars [2]catalog.Character
	loaded := true
	for slot, res := range m.compareRes {
		switch res.Status {
		case query.StatusFailed:
			b.WriteString(m.styles.DangerText.Render(fmt.Sprintf("character %d: %s", m.compareIDs[slot], errorLine(res.Err))))
			b.WriteString("\n")
			b.WriteString(m.styles.MutedText.Render("press r to retry"))
			b.WriteString("\n")
			loaded = false
		case query.StatusSuccess:
			if ch, ok := res.Data.(catalog.Character); ok {
				chars[slot] = ch
			} else {
				loaded = false
			}
		default:
			loaded = false
		}
	}

	if !loaded {
		if m.compareRes[0].Status != query.StatusFailed && m.compareRes[1].Status != query.StatusFailed {
			b.WriteString(m.spin.View())
			b.WriteString(m.styles.MutedText.Render(" loading..."))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render("esc back"))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%-12s %-24s %-24s\n", "",
		m.styles.AccentText.Render(truncate(chars[0].Name, 24)),
		m.styles.AccentText.Render(truncate(chars[1].Name, 24))))

	for _, row := range compare.Characters(chars[0], chars[1]) {
		marker := m.styles.DangerText.Render("✗")
		if row.Match {
			marker = m.styles.SuccessText.Render("✓")
		}
		b.WriteString(fmt.Sprintf("%s %s %-24s %-24s\n",
			marker,
			m.styles.MutedText.Render(fmt.Sprintf("%-10s", row.Label)),
			m.styles.Text.Render(truncate(row.ValueA, 24)),
			m.styles.Text.Render(truncate(row.ValueB, 24))))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("esc back • r retry failed"))

	return b.String()
}
