// Package query coalesces and caches remote catalog fetches.
//
// # Overview
//
// Every distinct request the UI can make — a listing page, a single
// record, a batch of ids — is identified by a Key. The Cache holds one
// entry per key with the last-known data, error state, and fetch
// timestamp. Resolving a key either serves the cached entry (when it is
// younger than the staleness window), attaches to an already outstanding
// fetch, or starts a new one. At most one network request per key is ever
// in flight; concurrent subscribers share its result.
//
// # Retry policy
//
// Transport failures (catalog.NetworkError) retry automatically with a
// short backoff, up to the attempt budget in Options. Primary queries
// (listings, record detail) use three attempts; enrichment queries
// (location and episode lookups nested under a character) use one and
// rely on the user-facing retry action. Not-found and decode errors never
// retry.
//
// # Generations
//
// Each started fetch carries a per-key generation number. Retry starts a
// new generation even while an older fetch is outstanding; when both
// resolve, only the later-started generation's result is stored. A slow,
// superseded response can therefore never overwrite a newer one.
package query
