// Package langres resolves human-readable text for translation keys by
// layering key-value datasets: a remote vanilla baseline underneath zero or
// more local resource-pack overrides.
//
// The Engine owns one merged lookup table for the currently selected locale.
// A refresh rebuilds the table from scratch into a private accumulator —
// baseline first, then each discovered override source in discovery order,
// later sources overwriting earlier ones by key — and installs it atomically,
// so concurrent lookups always observe either the previous table or the new
// one, never a mix. Subscribers are notified exactly once per completed
// refresh, after the swap.
//
// Every query operation is total: bad input, missing sources, and network
// failures degrade to empty results, never to errors. The engine is designed
// to keep serving the last known good data offline.
//
//	client, _ := baseline.New(baseline.WithCacheDir(dir))
//	engine, err := langres.New(
//	    langres.WithBaseline(client),
//	    langres.WithLocale("en_US"),
//	    langres.WithCandidateRoots(workspacePacks...),
//	)
//	if err != nil { ... }
//
//	if err := engine.Refresh(ctx); err != nil { ... }
//	entry, ok := engine.Lookup("item.apple.name")
package langres
