package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/packsmith/langres"
	"github.com/packsmith/langres/internal/api"
	"github.com/packsmith/langres/pkg/baseline"
	"github.com/packsmith/langres/pkg/logger"
)

// newServer builds an engine over one temp pack (baseline layer disabled)
// and serves it through the API router.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	root := t.TempDir()
	manifest := `{"header":{"name":"Test Pack"},"modules":[{"type":"resources"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "manifest.json"), []byte(manifest), 0o644))
	texts := filepath.Join(root, "texts")
	require.NoError(t, os.Mkdir(texts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(texts, "en_US.lang"),
		[]byte("item.apple=Apple\nitem.apple.desc=A crisp apple\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(texts, "de_DE.lang"),
		[]byte("item.apple=Apfel\n"), 0o644))

	client, err := baseline.New(
		baseline.WithBaseURL("http://127.0.0.1:0/%s"),
		baseline.WithCacheDir(t.TempDir()),
		baseline.WithKnownLocales("en_US", "de_DE"),
	)
	require.NoError(t, err)

	engine, err := langres.New(
		langres.WithBaseline(client),
		langres.WithBaselineEnabled(false),
		langres.WithCandidateRoots(root),
		langres.WithLocale("en_US"),
	)
	require.NoError(t, err)
	require.NoError(t, engine.Refresh(context.Background()))

	srv := httptest.NewServer(api.New(engine, logger.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestLookup(t *testing.T) {
	t.Parallel()

	srv := newServer(t)

	t.Run("resolves an existing key", func(t *testing.T) {
		t.Parallel()

		var entry struct {
			Key    string `json:"key"`
			Value  string `json:"value"`
			Source string `json:"source"`
			Line   int    `json:"line"`
		}
		status := getJSON(t, srv.URL+"/v1/entries/item.apple", &entry)

		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "item.apple", entry.Key)
		require.Equal(t, "Apple", entry.Value)
		require.Equal(t, 1, entry.Line)
		require.Contains(t, entry.Source, "en_US.lang")
	})

	t.Run("404 for a missing key", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/v1/entries/nope", nil))
	})
}

func TestSearch(t *testing.T) {
	t.Parallel()

	srv := newServer(t)

	type searchResponse struct {
		Results []struct {
			Key string `json:"key"`
		} `json:"results"`
	}

	t.Run("case-insensitive with limit", func(t *testing.T) {
		t.Parallel()

		var resp searchResponse
		status := getJSON(t, srv.URL+"/v1/search?q=APPLE&limit=1", &resp)

		require.Equal(t, http.StatusOK, status)
		require.Len(t, resp.Results, 1)
		require.Equal(t, "item.apple", resp.Results[0].Key)
	})

	t.Run("invalid limit yields empty results", func(t *testing.T) {
		t.Parallel()

		var resp searchResponse
		status := getJSON(t, srv.URL+"/v1/search?q=apple&limit=many", &resp)

		require.Equal(t, http.StatusOK, status)
		require.Empty(t, resp.Results)
	})

	t.Run("missing query yields empty results", func(t *testing.T) {
		t.Parallel()

		var resp searchResponse
		status := getJSON(t, srv.URL+"/v1/search", &resp)

		require.Equal(t, http.StatusOK, status)
		require.Empty(t, resp.Results)
	})
}

func TestLocales(t *testing.T) {
	t.Parallel()

	srv := newServer(t)

	t.Run("lists current and available", func(t *testing.T) {
		t.Parallel()

		var resp struct {
			Current   string   `json:"current"`
			Available []string `json:"available"`
		}
		status := getJSON(t, srv.URL+"/v1/locales", &resp)

		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "en_US", resp.Current)
		require.Equal(t, []string{"de_DE", "en_US"}, resp.Available)
	})

	t.Run("suggests a locale from Accept-Language", func(t *testing.T) {
		t.Parallel()

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/locales", nil)
		require.NoError(t, err)
		req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.5")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body struct {
			Suggested string `json:"suggested"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "de_DE", body.Suggested)
	})
}

func TestSetLocale(t *testing.T) {
	t.Parallel()

	srv := newServer(t)

	t.Run("switches and refreshes", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPut, srv.URL+"/v1/locale",
			strings.NewReader(`{"locale":"de_DE"}`))
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var entry struct {
			Value string `json:"value"`
		}
		status := getJSON(t, srv.URL+"/v1/entries/item.apple", &entry)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "Apfel", entry.Value)
	})

	t.Run("rejects a missing locale field", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPut, srv.URL+"/v1/locale", strings.NewReader(`{}`))
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRefreshAndClearCache(t *testing.T) {
	t.Parallel()

	srv := newServer(t)

	t.Run("refresh reports the rebuilt table", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Post(srv.URL+"/v1/refresh", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Locale string `json:"locale"`
			Keys   int    `json:"keys"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotZero(t, body.Keys)
	})

	t.Run("cache clear succeeds with nothing cached", func(t *testing.T) {
		t.Parallel()

		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/v1/cache?locale=en_US", nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}
