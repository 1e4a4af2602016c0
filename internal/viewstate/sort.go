package viewstate

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/calebwray/portal/internal/catalog"
)

// collator gives locale-aware string ordering for sort fields. Collation
// tables are immutable after construction, but Compare is not documented
// as goroutine-safe, so sorting serializes on the UI loop.
var collator = collate.New(language.English, collate.IgnoreCase)

// SortCharacters orders the current page's results by p.Sort and p.Order.
// The sort is stable and applies to the fetched page only; it never
// reaches the server. Unknown fields leave the slice in fetched order.
func SortCharacters(records []catalog.Character, p Params) []catalog.Character {
	if len(records) < 2 {
		return records
	}
	sorted := make([]catalog.Character, len(records))
	copy(sorted, records)

	field := characterField(p.Sort)
	if field == nil {
		return sorted
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := collator.CompareString(field(sorted[i]), field(sorted[j]))
		if p.Order == OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

func characterField(name string) func(catalog.Character) string {
	switch name {
	case SortName:
		return func(c catalog.Character) string { return c.Name }
	case SortStatus:
		return func(c catalog.Character) string { return c.Status }
	case SortSpecies:
		return func(c catalog.Character) string { return c.Species }
	case SortGender:
		return func(c catalog.Character) string { return c.Gender }
	default:
		return nil
	}
}
