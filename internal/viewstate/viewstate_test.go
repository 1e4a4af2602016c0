package viewstate

import (
	"net/url"
	"testing"

	"github.com/calebwray/portal/internal/catalog"
)

func TestParseQuery_DefaultsAndRoundTrip(t *testing.T) {
	t.Parallel()

	p := ParseQuery(url.Values{})
	if p.Page != 1 || p.Search != "" || p.Sort != SortName || p.Order != OrderAsc {
		t.Fatalf("defaults = %+v, want page=1 search=\"\" sort=name order=asc", p)
	}

	p = ParseState("page=3&search=rick&sort=status&order=desc")
	if p.Page != 3 || p.Search != "rick" || p.Sort != SortStatus || p.Order != OrderDesc {
		t.Fatalf("parsed = %+v", p)
	}

	back := ParseState(p.Encode())
	if back != p {
		t.Fatalf("round trip = %+v, want %+v", back, p)
	}
}

func TestParseQuery_RejectsMalformedValues(t *testing.T) {
	t.Parallel()

	p := ParseState("page=0&sort=bogus&order=sideways")
	if p.Page != 1 || p.Sort != SortName || p.Order != OrderAsc {
		t.Fatalf("parsed = %+v, want defaults for malformed values", p)
	}
}

func TestSetSearch_ResetsPage(t *testing.T) {
	t.Parallel()

	p := DefaultParams().SetPage(5)
	p = p.SetSearch("morty")
	if p.Page != 1 || p.Search != "morty" {
		t.Fatalf("after search change = %+v, want page reset to 1", p)
	}
	if got := p.Values().Get("page"); got != "1" {
		t.Fatalf("encoded page = %q, want \"1\"", got)
	}

	// Re-committing the same value must not reset the page.
	p = p.SetPage(4).SetSearch("morty")
	if p.Page != 4 {
		t.Fatalf("page = %d after no-op search commit, want 4", p.Page)
	}
}

func TestToggleSort(t *testing.T) {
	t.Parallel()

	p := DefaultParams()

	p = p.ToggleSort(SortName)
	if p.Sort != SortName || p.Order != OrderDesc {
		t.Fatalf("same-field toggle = %+v, want order flipped to desc", p)
	}
	p = p.ToggleSort(SortName)
	if p.Order != OrderAsc {
		t.Fatalf("second toggle order = %v, want asc", p.Order)
	}

	p = p.ToggleSort(SortSpecies)
	if p.Sort != SortSpecies || p.Order != OrderAsc {
		t.Fatalf("new-field toggle = %+v, want species ascending", p)
	}

	if got := p.ToggleSort("bogus"); got != p {
		t.Fatalf("unknown field changed state: %+v", got)
	}
}

func TestSortCharacters(t *testing.T) {
	t.Parallel()

	records := []catalog.Character{
		{ID: 1, Name: "morty", Status: "Alive"},
		{ID: 2, Name: "Beth", Status: "Alive"},
		{ID: 3, Name: "Rick", Status: "Dead"},
	}

	sorted := SortCharacters(records, Params{Sort: SortName, Order: OrderAsc})
	if sorted[0].Name != "Beth" || sorted[1].Name != "morty" || sorted[2].Name != "Rick" {
		t.Fatalf("asc by name = %v, want case-insensitive Beth, morty, Rick", names(sorted))
	}

	sorted = SortCharacters(records, Params{Sort: SortName, Order: OrderDesc})
	if sorted[0].Name != "Rick" || sorted[2].Name != "Beth" {
		t.Fatalf("desc by name = %v", names(sorted))
	}

	// Equal keys keep fetched order (stable sort).
	sorted = SortCharacters(records, Params{Sort: SortStatus, Order: OrderAsc})
	if sorted[0].ID != 1 || sorted[1].ID != 2 || sorted[2].ID != 3 {
		t.Fatalf("stable sort by status = %v", names(sorted))
	}

	// Unknown field leaves fetched order untouched.
	sorted = SortCharacters(records, Params{Sort: "created", Order: OrderDesc})
	if sorted[0].ID != 1 || sorted[2].ID != 3 {
		t.Fatalf("unknown field reordered: %v", names(sorted))
	}

	// Input slice is never mutated.
	if records[0].Name != "morty" {
		t.Fatalf("input mutated: %v", names(records))
	}
}

func names(records []catalog.Character) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}
