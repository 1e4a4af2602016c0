// Package ui implements the portal terminal interface.
//
// The interface is a single Bubble Tea model with a small set of
// views: login, character listing, character detail, compare, and
// favorites. Remote data flows through the query cache; every fetch
// command tags its result message with the cache key it was issued
// for, and the update loop drops messages whose key no longer matches
// the current state, so stale responses from abandoned navigation
// never overwrite the screen.
//
// Listing state (page, search, sort) lives in a viewstate.Params value
// that encodes to a query string, which is how a session's position is
// restored on the next launch.
package ui
