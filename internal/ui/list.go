package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebwray/portal/internal/catalog"
	"github.com/calebwray/portal/internal/query"
	"github.com/calebwray/portal/internal/viewstate"
)

// setParams commits a new listing state, keeping the last successful
// page around so the table does not blank while the new key loads.
func (m Model) setParams(p viewstate.Params) (Model, tea.Cmd) {
	key := listKey(p)
	if key == m.listKey {
		m.params = p
		return m, nil
	}
	if m.list.Status == query.StatusSuccess {
		m.prevList = m.list
	}
	m.params = p
	m.listKey = key
	m.list = query.Result{}
	m.selectedRow = 0
	return m, tea.Batch(m.spin.Tick, m.fetchListCmd(p, false))
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows, _ := m.currentCharacters()

	switch msg.String() {
	case "/":
		m.searchFocus = true
		return m, m.searchInput.Focus()

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

	case "left", "h":
		return m.setParams(m.params.SetPage(m.params.Page - 1))

	case "right", "l":
		if m.params.Page < m.totalPages() {
			return m.setParams(m.params.SetPage(m.params.Page + 1))
		}
		return m, nil

	case "1", "2", "3", "4":
		fields := []string{viewstate.SortName, viewstate.SortStatus, viewstate.SortSpecies, viewstate.SortGender}
		idx := int(msg.String()[0] - '1')
		// Sorting is client-side; the cache key is untouched.
		m.params = m.params.ToggleSort(fields[idx])
		return m, nil

	case "f":
		if m.selectedRow < len(rows) {
			id := rows[m.selectedRow].ID
			if _, err := m.favorites.Toggle(id); err != nil {
				m.logger.Error("toggle favorite failed", "id", id, "error", err)
			}
		}
		return m, nil

	case "c":
		if m.selectedRow >= len(rows) {
			return m, nil
		}
		id := rows[m.selectedRow].ID
		if m.comparePick == 0 || m.comparePick == id {
			m.comparePick = id
			return m, nil
		}
		return m.openCompare(m.comparePick, id)

	case "F":
		return m.openFavorites()

	case "r":
		if m.list.Status == query.StatusSuccess {
			m.prevList = m.list
		}
		m.list = query.Result{}
		return m, tea.Batch(m.spin.Tick, m.fetchListCmd(m.params, true))

	case "enter":
		if m.selectedRow < len(rows) {
			return m.openDetail(rows[m.selectedRow].URL)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "enter":
		m.searchFocus = false
		m.searchInput.Blur()
		if msg.String() == "enter" {
			// Enter commits immediately, skipping the debounce window.
			return m.setParams(m.params.SetSearch(strings.TrimSpace(m.searchInput.Value())))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	seq := m.debounce.Type(strings.TrimSpace(m.searchInput.Value()))
	return m, tea.Batch(cmd, m.debounceCmd(seq))
}

func (m Model) handleDebounce(msg debounceMsg) (tea.Model, tea.Cmd) {
	text, ok := m.debounce.Fire(msg.seq, m.params.Search)
	if !ok {
		return m, nil
	}
	return m.setParams(m.params.SetSearch(text))
}

func (m Model) handleListResult(msg listResultMsg) (tea.Model, tea.Cmd) {
	if msg.key != m.listKey {
		return m, nil
	}
	m.list = msg.res
	if rows, _ := m.currentCharacters(); m.selectedRow >= len(rows) && len(rows) > 0 {
		m.selectedRow = len(rows) - 1
	}
	return m, nil
}

func (m Model) totalPages() int {
	page, ok := m.list.Data.(catalog.CharacterPage)
	if !ok {
		if page, ok = m.prevList.Data.(catalog.CharacterPage); !ok {
			return 1
		}
	}
	if page.Info.Pages < 1 {
		return 1
	}
	return page.Info.Pages
}

func (m Model) renderList() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("portal — characters"))
	b.WriteString("\n\n")

	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	rows, stale := m.currentCharacters()

	switch {
	case m.list.Status == query.StatusFetching && len(rows) == 0:
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.MutedText.Render(" loading characters..."))
		b.WriteString("\n")
	case m.list.Status == query.StatusFailed && len(rows) == 0:
		b.WriteString(m.styles.DangerText.Render(errorLine(m.list.Err)))
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("press r to retry"))
		b.WriteString("\n")
	case len(rows) == 0 && m.list.Status == query.StatusSuccess:
		b.WriteString(m.styles.MutedText.Render("no characters match this search"))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderListTable(rows, stale))
	}

	b.WriteString("\n")
	m.pager.SetTotalPages(m.totalPages())
	m.pager.Page = m.params.Page - 1
	b.WriteString(m.styles.MutedText.Render("page " + m.pager.View()))
	if stale || (m.list.Status == query.StatusFetching && len(rows) > 0) {
		b.WriteString("  " + m.spin.View() + m.styles.MutedText.Render(" refreshing"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Footer.Render("/ search • 1-4 sort • ←/→ page • f favorite • c compare • F favorites • enter detail • ? help"))

	return b.String()
}

func (m Model) renderListTable(rows []catalog.Character, stale bool) string {
	var b strings.Builder

	header := fmt.Sprintf("  %-4s %-24s %-10s %-16s %-10s", "#", sortHeading(m.params, viewstate.SortName, "Name"),
		sortHeading(m.params, viewstate.SortStatus, "Status"),
		sortHeading(m.params, viewstate.SortSpecies, "Species"),
		sortHeading(m.params, viewstate.SortGender, "Gender"))
	b.WriteString(m.styles.AccentText.Render(header))
	b.WriteString("\n")

	for i, ch := range rows {
		marker := "  "
		if m.favorites != nil && m.favorites.Contains(ch.ID) {
			marker = "★ "
		}
		if m.comparePick == ch.ID {
			marker = "◆ "
		}
		line := fmt.Sprintf("%s%-4d %-24s %-10s %-16s %-10s",
			marker, ch.ID, truncate(ch.Name, 24), ch.Status, truncate(ch.Species, 16), ch.Gender)
		style := m.styles.Text
		if stale {
			style = m.styles.MutedText
		}
		if i == m.selectedRow {
			style = m.styles.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func sortHeading(p viewstate.Params, field, label string) string {
	if p.Sort != field {
		return label
	}
	if p.Order == viewstate.OrderDesc {
		return label + " ↓"
	}
	return label + " ↑"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

func errorLine(err error) string {
	if err == nil {
		return "request failed"
	}
	return "request failed: " + err.Error()
}
