// Package compare derives per-field match rows between two characters.
package compare

import (
	"strconv"

	"github.com/calebwray/portal/internal/catalog"
)

// Row is one compared field. Match uses strict string equality,
// case-sensitive, after normalizing the episode count to its decimal
// string form. A field absent on one side compares as the empty string.
type Row struct {
	Label  string
	ValueA string
	ValueB string
	Match  bool
}

// fields is the fixed, ordered list of comparable attributes.
var fields = []struct {
	label string
	value func(catalog.Character) string
}{
	{"Status", func(c catalog.Character) string { return c.Status }},
	{"Species", func(c catalog.Character) string { return c.Species }},
	{"Gender", func(c catalog.Character) string { return c.Gender }},
	{"Origin", func(c catalog.Character) string { return c.Origin.Name }},
	{"Location", func(c catalog.Character) string { return c.Location.Name }},
	{"Episodes", func(c catalog.Character) string { return strconv.Itoa(len(c.Episodes)) }},
}

// Characters produces the comparison rows for a and b in display order.
func Characters(a, b catalog.Character) []Row {
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		va, vb := f.value(a), f.value(b)
		rows = append(rows, Row{
			Label:  f.label,
			ValueA: va,
			ValueB: vb,
			Match:  va == vb,
		})
	}
	return rows
}
