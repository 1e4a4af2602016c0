package viewstate

import (
	"net/url"
	"strconv"
	"strings"
)

// Order is a sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Sortable fields of the character listing. Non-string fields are not
// offered: they would compare equal and never reorder.
const (
	SortName    = "name"
	SortStatus  = "status"
	SortSpecies = "species"
	SortGender  = "gender"
)

// SortFields lists the selectable sort fields in display order.
var SortFields = []string{SortName, SortStatus, SortSpecies, SortGender}

const (
	defaultPage  = 1
	defaultSort  = SortName
	defaultOrder = OrderAsc
)

// Params is the shareable listing state: page, search text, sort field
// and order. It round-trips through a query string so a session can be
// bookmarked and restored.
type Params struct {
	Page   int
	Search string
	Sort   string
	Order  Order
}

// DefaultParams returns the state of a first visit.
func DefaultParams() Params {
	return Params{Page: defaultPage, Sort: defaultSort, Order: defaultOrder}
}

// ParseQuery reads Params from query-string values. Absent or malformed
// parameters fall back to their defaults.
func ParseQuery(values url.Values) Params {
	p := DefaultParams()
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		p.Page = page
	}
	p.Search = values.Get("search")
	if sort := values.Get("sort"); isSortField(sort) {
		p.Sort = sort
	}
	switch Order(values.Get("order")) {
	case OrderAsc, OrderDesc:
		p.Order = Order(values.Get("order"))
	}
	return p
}

// ParseState parses a raw query string, e.g. "page=3&search=rick".
func ParseState(raw string) Params {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return DefaultParams()
	}
	return ParseQuery(values)
}

// Values encodes Params as query-string values. Defaults are written out
// explicitly so an encoded state is self-describing.
func (p Params) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(p.Page))
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	values.Set("sort", p.Sort)
	values.Set("order", string(p.Order))
	return values
}

// Encode renders Params as a query string.
func (p Params) Encode() string {
	return p.Values().Encode()
}

// SetPage moves to page n, clamped to 1.
func (p Params) SetPage(n int) Params {
	if n < 1 {
		n = 1
	}
	p.Page = n
	return p
}

// SetSearch commits new search text. A net change resets the page to 1;
// re-committing the current value is a no-op.
func (p Params) SetSearch(s string) Params {
	if s == p.Search {
		return p
	}
	p.Search = s
	p.Page = 1
	return p
}

// ToggleSort selects a sort field. Re-selecting the active field flips the
// order; a different field resets the order to ascending.
func (p Params) ToggleSort(field string) Params {
	if !isSortField(field) {
		return p
	}
	if p.Sort == field {
		if p.Order == OrderAsc {
			p.Order = OrderDesc
		} else {
			p.Order = OrderAsc
		}
		return p
	}
	p.Sort = field
	p.Order = OrderAsc
	return p
}

func isSortField(field string) bool {
	for _, f := range SortFields {
		if f == field {
			return true
		}
	}
	return false
}
