// Package viewstate holds the shareable listing state: page, search,
// sort field and order.
//
// Params round-trips through a query string (the terminal stand-in for a
// shareable URL), so `--state "page=3&search=rick&sort=name&order=desc"`
// restores a session exactly. The mutation rules are small but strict:
// committing new search text resets the page to 1, re-selecting the
// active sort field flips the order, and selecting a different field
// resets the order to ascending.
//
// Search input is debounced before it affects the query key: keystrokes
// buffer in a Debouncer and commit only after the input has been idle for
// the debounce window, and only when the buffered text differs from the
// committed value.
//
// Sorting is a client-side view concern applied to the fetched page only,
// with locale-aware string comparison.
package viewstate
