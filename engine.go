package langres

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/packsmith/langres/pkg/baseline"
	"github.com/packsmith/langres/pkg/discovery"
	"github.com/packsmith/langres/pkg/langfile"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en_US"

// snapshot is one fully-built resolution state. Snapshots are immutable;
// refreshes build a new one and swap it in.
type snapshot struct {
	locale  string
	table   langfile.Table
	keys    []string // table keys, ascending; drives deterministic search
	locales []string // available locales, ascending
	sources []discovery.SourceInfo
}

// Engine is the translation resolution orchestrator. It is safe for
// concurrent use: queries read an atomically-swapped snapshot, and
// overlapping refreshes of the same locale coalesce into one rebuild.
type Engine struct {
	baseline *baseline.Client
	log      *slog.Logger

	mu              sync.RWMutex
	locale          string
	candidateRoots  []string
	configuredRoots []string
	baselineEnabled bool

	current atomic.Pointer[snapshot]
	group   singleflight.Group

	subMu sync.Mutex
	subs  map[string]func()
}

// New creates an Engine. A baseline client is constructed with defaults when
// none is supplied.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		locale:          DefaultLocale,
		baselineEnabled: true,
		log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		subs:            make(map[string]func()),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.baseline == nil {
		client, err := baseline.New()
		if err != nil {
			return nil, err
		}
		e.baseline = client
	}

	e.current.Store(&snapshot{
		locale: e.locale,
		table:  make(langfile.Table),
	})

	return e, nil
}

// Refresh rebuilds the merged table for the active locale. Failures of
// individual sources are isolated and logged; the only returned error is
// context cancellation. Concurrent refreshes of one locale share a single
// rebuild, and when locales differ the last rebuild to complete installs its
// table.
func (e *Engine) Refresh(ctx context.Context) error {
	locale := e.Locale()

	_, err, _ := e.group.Do("refresh:"+locale, func() (any, error) {
		return nil, e.refresh(ctx, locale)
	})
	return err
}

func (e *Engine) refresh(ctx context.Context, locale string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.RLock()
	candidates := e.candidateRoots
	configured := e.configuredRoots
	useBaseline := e.baselineEnabled
	e.mu.RUnlock()

	table := make(langfile.Table)

	if useBaseline {
		base, status := e.baseline.Load(ctx, locale)
		e.log.Debug("baseline loaded",
			slog.String("locale", locale),
			slog.String("status", string(status)),
			slog.Int("entries", len(base)))
		langfile.Merge(table, base)
	}

	localeSet := make(map[string]bool)
	for _, l := range e.baseline.KnownLocales() {
		localeSet[l] = true
	}

	sources := discovery.Discover(candidates, configured)
	for _, src := range sources {
		if !src.HasOverrideData {
			continue
		}
		overrides := langfile.ParseFile(discovery.LocaleFile(src.DataPath, locale))
		langfile.Merge(table, overrides)
		for _, l := range discovery.ListLocales(src.DataPath) {
			localeSet[l] = true
		}
		e.log.Debug("override source merged",
			slog.String("source", src.DisplayName),
			slog.Int("entries", len(overrides)))
	}

	locales := make([]string, 0, len(localeSet))
	for l := range localeSet {
		locales = append(locales, l)
	}
	sort.Strings(locales)

	e.current.Store(&snapshot{
		locale:  locale,
		table:   table,
		keys:    table.Keys(),
		locales: locales,
		sources: sources,
	})

	e.log.Info("translation table rebuilt",
		slog.String("locale", locale),
		slog.Int("keys", len(table)),
		slog.Int("sources", len(sources)))

	e.notify()
	return nil
}

// SetLocale switches the active locale and performs a full refresh before
// returning.
func (e *Engine) SetLocale(ctx context.Context, locale string) error {
	if locale == "" {
		locale = DefaultLocale
	}

	e.mu.Lock()
	e.locale = locale
	e.mu.Unlock()

	return e.Refresh(ctx)
}

// Locale returns the active locale.
func (e *Engine) Locale() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.locale
}

// SetBaselineEnabled toggles the baseline layer for subsequent refreshes.
func (e *Engine) SetBaselineEnabled(enabled bool) {
	e.mu.Lock()
	e.baselineEnabled = enabled
	e.mu.Unlock()
}

// Lookup returns the resolved entry for an exact key.
func (e *Engine) Lookup(key string) (langfile.Entry, bool) {
	entry, ok := e.current.Load().table[key]
	return entry, ok
}

// Exists reports whether a key resolves in the current table.
func (e *Engine) Exists(key string) bool {
	_, ok := e.current.Load().table[key]
	return ok
}

// Search returns up to limit entries whose key or value contains the query,
// case-insensitively. Results are ordered by key ascending, so a fixed table
// always yields the same sequence. An empty query or non-positive limit
// yields no results.
func (e *Engine) Search(query string, limit int) []langfile.Entry {
	if query == "" || limit <= 0 {
		return nil
	}

	snap := e.current.Load()
	needle := strings.ToLower(query)

	var matches []langfile.Entry
	for _, key := range snap.keys {
		entry := snap.table[key]
		if strings.Contains(strings.ToLower(entry.Key), needle) ||
			strings.Contains(strings.ToLower(entry.Value), needle) {
			matches = append(matches, entry)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

// Table returns the current merged table. The returned map is the live
// snapshot and must not be mutated; it is replaced wholesale on refresh.
func (e *Engine) Table() langfile.Table {
	return e.current.Load().table
}

// Locales returns the available locales: the union of the baseline provider's
// known list and every override source's enumerated locales, ascending.
// Populated by Refresh.
func (e *Engine) Locales() []string {
	return append([]string(nil), e.current.Load().locales...)
}

// Sources returns the override sources found by the last refresh.
func (e *Engine) Sources() []discovery.SourceInfo {
	return append([]discovery.SourceInfo(nil), e.current.Load().sources...)
}

// Subscribe registers a callback invoked after every completed refresh. It
// returns a token for Unsubscribe. A nil callback is ignored.
func (e *Engine) Subscribe(fn func()) string {
	if fn == nil {
		return ""
	}

	token := uuid.NewString()
	e.subMu.Lock()
	e.subs[token] = fn
	e.subMu.Unlock()
	return token
}

// Unsubscribe removes a subscription. Unknown tokens are ignored.
func (e *Engine) Unsubscribe(token string) {
	e.subMu.Lock()
	delete(e.subs, token)
	e.subMu.Unlock()
}

// notify invokes subscribers after a snapshot swap. Callbacks run
// synchronously on the refreshing goroutine and see the new table.
func (e *Engine) notify() {
	e.subMu.Lock()
	callbacks := make([]func(), 0, len(e.subs))
	for _, fn := range e.subs {
		callbacks = append(callbacks, fn)
	}
	e.subMu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// ClearBaselineCache removes cached baseline content for the given locales,
// or all of them when none are given. It does not trigger a refresh.
func (e *Engine) ClearBaselineCache(locales ...string) error {
	return e.baseline.ClearCache(locales...)
}
