package ui

import "strings"

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("portal — keys"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Characters", [][2]string{
			{"/", "search (debounced, commits after a pause)"},
			{"enter", "open selected character"},
			{"1-4", "sort by name / status / species / gender"},
			{"←/→", "previous / next page"},
			{"f", "toggle favorite"},
			{"c", "mark for compare (twice to open)"},
			{"F", "favorites view"},
			{"r", "refetch current page"},
		}},
		{"Everywhere", [][2]string{
			{"T", "cycle theme"},
			{"L", "sign out"},
			{"?", "this help"},
			{"q", "quit"},
		}},
	}

	for _, sec := range sections {
		b.WriteString(m.styles.AccentText.Render(sec.title))
		b.WriteString("\n")
		for _, k := range sec.keys {
			b.WriteString("  ")
			b.WriteString(m.styles.Text.Render(pad(k[0], 7)))
			b.WriteString(m.styles.MutedText.Render(k[1]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("press any key to close"))
	return m.styles.Panel.Render(b.String())
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
