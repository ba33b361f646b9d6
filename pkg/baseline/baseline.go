package baseline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/packsmith/langres/pkg/langfile"
)

const (
	// DefaultBaseURL serves the vanilla texts straight from the published
	// sample resource pack.
	DefaultBaseURL = "https://raw.githubusercontent.com/Mojang/bedrock-samples/main/resource_pack/texts/%s.lang"

	// DefaultTTL is the freshness window for cached content.
	DefaultTTL = 24 * time.Hour

	// DefaultTimeout bounds a single fetch attempt.
	DefaultTimeout = 10 * time.Second

	// maxResponseSize caps a fetched body; vanilla files are well under 1MB.
	maxResponseSize = 16 << 20
)

// Status reports how a Load call was satisfied.
type Status string

const (
	// StatusDisabled: the client is disabled; no I/O was performed.
	StatusDisabled Status = "disabled"

	// StatusHit: fresh cached content was served without network I/O.
	StatusHit Status = "cache-hit"

	// StatusRefreshed: a fetch succeeded and the cache was rewritten.
	StatusRefreshed Status = "cache-refreshed"

	// StatusStaleFallback: the fetch failed but stale cached content exists
	// and was served instead.
	StatusStaleFallback Status = "stale-fallback"

	// StatusColdMiss: the fetch failed and no cache exists; an empty table
	// was served.
	StatusColdMiss Status = "cold-miss"
)

// defaultKnownLocales is the set of locales the vanilla dataset ships.
var defaultKnownLocales = []string{
	"bg_BG", "cs_CZ", "da_DK", "de_DE", "el_GR", "en_GB", "en_US",
	"es_ES", "es_MX", "fi_FI", "fr_CA", "fr_FR", "hu_HU", "id_ID",
	"it_IT", "ja_JP", "ko_KR", "nb_NO", "nl_NL", "pl_PL", "pt_BR",
	"pt_PT", "ru_RU", "sk_SK", "sv_SE", "tr_TR", "uk_UA", "zh_CN",
	"zh_TW",
}

// Client loads the baseline dataset per locale, caching fetched content on
// disk. It is safe for concurrent use; concurrent loads of the same locale
// are coalesced into one.
type Client struct {
	baseURL    string
	cacheDir   string
	ttl        time.Duration
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
	known      []string

	group singleflight.Group

	mu       sync.Mutex
	disabled bool
}

// New creates a baseline client. It validates the base URL template and
// resolves the default cache directory if none was configured.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		ttl:     DefaultTTL,
		timeout: DefaultTimeout,
		known:   defaultKnownLocales,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if strings.Count(c.baseURL, "%s") != 1 {
		return nil, ErrInvalidBaseURL
	}

	if c.cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("baseline: resolving cache dir: %w", err)
		}
		c.cacheDir = filepath.Join(base, "langres", "baseline")
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// SetEnabled toggles the client. Disabled clients serve empty tables with no
// I/O; already-cached files are left in place.
func (c *Client) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = !enabled
}

// Enabled reports whether loads perform any work.
func (c *Client) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.disabled
}

// KnownLocales returns the locale codes the remote endpoint is known to
// serve, sorted as configured.
func (c *Client) KnownLocales() []string {
	return append([]string(nil), c.known...)
}

type loadResult struct {
	table  langfile.Table
	status Status
}

// Load returns the baseline table for a locale. It never returns an error:
// fetch failures degrade to stale cache content when any exists, and to an
// empty table otherwise. The returned status reports which path was taken.
func (c *Client) Load(ctx context.Context, locale string) (langfile.Table, Status) {
	if !c.Enabled() {
		return make(langfile.Table), StatusDisabled
	}
	if locale == "" {
		return make(langfile.Table), StatusColdMiss
	}

	v, _, _ := c.group.Do(locale, func() (any, error) {
		return c.load(ctx, locale), nil
	})

	r := v.(loadResult)
	return r.table, r.status
}

func (c *Client) load(ctx context.Context, locale string) loadResult {
	contentPath := c.contentPath(locale)
	metaPath := c.metaPath(locale)

	_, statErr := os.Stat(contentPath)
	contentExists := statErr == nil

	meta, metaErr := readMetadata(metaPath)

	if classifyCache(contentExists, meta, metaErr, time.Now(), c.ttl) == cacheFresh {
		if table, ok := c.parseCached(contentPath, locale); ok {
			c.log.Debug("baseline cache hit", slog.String("locale", locale))
			return loadResult{table: table, status: StatusHit}
		}
		// Content disappeared or became unreadable between Stat and read;
		// fall through to a fetch.
		contentExists = false
	}

	content, err := c.fetch(ctx, locale)
	if err == nil {
		c.persist(locale, contentPath, metaPath, content)
		c.log.Info("baseline refreshed", slog.String("locale", locale))
		return loadResult{
			table:  langfile.Parse(content, remoteSource(locale)),
			status: StatusRefreshed,
		}
	}

	if contentExists {
		if table, ok := c.parseCached(contentPath, locale); ok {
			c.log.Warn("baseline fetch failed, serving stale cache",
				slog.String("locale", locale),
				slog.String("error", err.Error()))
			return loadResult{table: table, status: StatusStaleFallback}
		}
	}

	c.log.Warn("baseline fetch failed with no cache to fall back on",
		slog.String("locale", locale),
		slog.String("error", err.Error()))
	return loadResult{table: make(langfile.Table), status: StatusColdMiss}
}

// parseCached reads and parses the cached content blob.
func (c *Client) parseCached(contentPath, locale string) (langfile.Table, bool) {
	data, err := os.ReadFile(contentPath)
	if err != nil {
		return nil, false
	}
	return langfile.Parse(string(data), remoteSource(locale)), true
}

// fetch performs one HTTP GET of the locale's baseline content. Redirects are
// followed by the HTTP client (capped at 10 by net/http); a redirect loop or
// a missing target therefore surfaces as an ordinary fetch error.
func (c *Client) fetch(ctx context.Context, locale string) (string, error) {
	url := fmt.Sprintf(c.baseURL, locale)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("baseline: building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("baseline: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("baseline: reading response: %w", err)
	}

	return string(body), nil
}

// persist overwrites the locale's cache pair: content blob first, metadata
// second, so a crash between the two leaves a stale-classified pair rather
// than fresh metadata pointing at missing content. Write failures are logged
// and swallowed; the fetched content is still served to the caller.
func (c *Client) persist(locale, contentPath, metaPath, content string) {
	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		c.log.Error("baseline cache dir", slog.String("error", err.Error()))
		return
	}

	if err := os.WriteFile(contentPath, []byte(content), 0o644); err != nil {
		c.log.Error("baseline cache write", slog.String("locale", locale), slog.String("error", err.Error()))
		return
	}

	meta := metadata{
		SchemaVersion: schemaVersion,
		Locale:        locale,
		FetchedAtMS:   time.Now().UnixMilli(),
	}
	data, err := json.Marshal(meta)
	if err == nil {
		err = os.WriteFile(metaPath, data, 0o644)
	}
	if err != nil {
		c.log.Error("baseline metadata write", slog.String("locale", locale), slog.String("error", err.Error()))
	}
}

// ClearCache removes the content+metadata pair for the given locales, or for
// every cached locale when none are given. It does not trigger a re-fetch.
func (c *Client) ClearCache(locales ...string) error {
	if len(locales) == 0 {
		cached, err := c.cachedLocales()
		if err != nil {
			return err
		}
		locales = cached
	}

	var errs []error
	for _, locale := range locales {
		for _, path := range []string{c.contentPath(locale), c.metaPath(locale)} {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// cachedLocales lists locales present in the cache directory, derived from
// content blob names.
func (c *Client) cachedLocales() ([]string, error) {
	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("baseline: reading cache dir: %w", err)
	}

	var locales []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), ".lang"); ok {
			locales = append(locales, name)
		}
	}
	return locales, nil
}

func (c *Client) contentPath(locale string) string {
	return filepath.Join(c.cacheDir, locale+".lang")
}

func (c *Client) metaPath(locale string) string {
	return filepath.Join(c.cacheDir, locale+".json")
}

// remoteSource is the provenance marker recorded on baseline entries.
func remoteSource(locale string) string {
	return "remote:" + locale
}
