package baseline

import (
	"encoding/json"
	"os"
	"time"
)

// schemaVersion tags persisted metadata records. A version mismatch
// classifies the record as not fresh rather than as an error.
const schemaVersion = 1

// metadata is the small persisted record accompanying each locale's raw
// content blob.
type metadata struct {
	SchemaVersion int    `json:"schema_version"`
	Locale        string `json:"locale"`
	FetchedAtMS   int64  `json:"fetched_at_ms"`
}

// cacheState is the three-way freshness classification of one locale's cache.
type cacheState int

const (
	// cacheAbsent: no content blob exists; nothing to serve.
	cacheAbsent cacheState = iota

	// cacheStale: content exists but cannot be trusted as fresh, either
	// because the freshness window elapsed or because the metadata is
	// missing, unparseable, or from another schema version.
	cacheStale

	// cacheFresh: content exists and was fetched within the freshness window.
	cacheFresh
)

// classifyCache is the pure freshness predicate: it folds content existence,
// the metadata parse result, and the clock into one state. Any metadata
// problem degrades to stale, never to an error, so a half-written cache pair
// forces a re-fetch instead of poisoning the load path.
func classifyCache(contentExists bool, meta metadata, metaErr error, now time.Time, ttl time.Duration) cacheState {
	if !contentExists {
		return cacheAbsent
	}
	if metaErr != nil || meta.SchemaVersion != schemaVersion {
		return cacheStale
	}
	if now.Sub(time.UnixMilli(meta.FetchedAtMS)) < ttl {
		return cacheFresh
	}
	return cacheStale
}

// readMetadata loads and decodes one locale's metadata record.
func readMetadata(path string) (metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return metadata{}, err
	}
	var meta metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return metadata{}, err
	}
	return meta, nil
}
