// Package baseline fetches and caches the remote vanilla translation dataset.
//
// The baseline is large and rarely changes, so each locale's content is
// persisted to a local cache directory alongside a small metadata record
// carrying the fetch timestamp. A cached locale is served without network I/O
// while it is younger than the freshness window (24 hours by default). After
// that a re-fetch is attempted, but a fetch failure never leaves the caller
// empty-handed if any cached content exists: the stale copy is served
// instead. Only a cold miss (no cache, fetch failed) yields an empty table,
// and even that is reported through the load status rather than an error, so
// the engine remains usable offline.
//
// Cache corruption is tolerated by construction: unreadable or unparseable
// metadata simply classifies the locale as not fresh, forcing a re-fetch.
//
// # Usage
//
//	client, err := baseline.New(
//	    baseline.WithCacheDir(dir),
//	    baseline.WithTTL(24*time.Hour),
//	)
//	if err != nil { ... }
//
//	table, status := client.Load(ctx, "en_US")
package baseline
