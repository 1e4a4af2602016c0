// Package catalog provides an HTTP client for the remote character
// catalog API.
//
// # Overview
//
// The package defines the typed records the application browses
// (characters, locations, episodes), the paginated envelopes the list
// endpoints return, and a Client that performs read-only fetches against
// the upstream service. The client does no caching; every call hits the
// network. Caching and request coalescing live in the query package.
//
// # Architecture
//
//   - client.go: HTTP client, URL-or-id normalization, batch handling
//   - types.go: record and envelope structs mirroring the upstream schema
//   - errors.go: the error taxonomy surfaced to callers
//
// # Client Usage
//
// Create a client with the base URL from configuration:
//
//	client, err := catalog.NewClient(cfg.BaseURL)
//	if err != nil {
//		return err
//	}
//
//	page, err := client.ListCharacters(ctx, 1, "rick")
//	ch, err := client.GetCharacter(ctx, "42")
//	loc, err := client.GetLocation(ctx, "https://.../location/3")
//	eps, err := client.GetEpisodesBatch(ctx, []string{"1", "2", "3"})
//
// Detail fetches accept either a bare numeric id or a canonical record
// URL; the trailing digits of the URL path identify the record. Batch
// fetches always return a slice: the upstream collapses a one-element id
// list to a bare object, and the client re-wraps it before decoding.
//
// # Errors
//
// Failures decode into two inspectable kinds. *NotFoundError means the
// upstream has no such record or page (a 404, or a listing page past the
// end). *NetworkError covers transport failures, timeouts, and upstream
// 5xx responses; these are the only errors worth retrying.
//
// # Politeness
//
// The upstream is a public, unauthenticated service. Outgoing requests
// pass through a rate limiter (4 req/s by default) so rapid pagination
// cannot flood it.
package catalog
