package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/packsmith/langres/pkg/discovery"
)

// writePack creates a candidate root with the given manifest content and,
// optionally, a texts directory.
func writePack(t *testing.T, manifest string, withTexts bool) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "manifest.json"), []byte(manifest), 0o644))
	if withTexts {
		require.NoError(t, os.Mkdir(filepath.Join(root, "texts"), 0o755))
	}
	return root
}

const resourceManifest = `{
	"header": {"name": "My Pack"},
	"modules": [{"type": "resources"}]
}`

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("finds a pack with a resources module", func(t *testing.T) {
		t.Parallel()

		root := writePack(t, resourceManifest, true)

		sources := discovery.Discover([]string{root})

		require.Len(t, sources, 1)
		require.Equal(t, root, sources[0].RootPath)
		require.Equal(t, "My Pack", sources[0].DisplayName)
		require.True(t, sources[0].HasOverrideData)
		require.Equal(t, filepath.Join(root, "texts"), sources[0].DataPath)
	})

	t.Run("falls back to directory name without header name", func(t *testing.T) {
		t.Parallel()

		root := writePack(t, `{"modules": [{"type": "resources"}]}`, false)

		sources := discovery.Discover([]string{root})

		require.Len(t, sources, 1)
		require.Equal(t, filepath.Base(root), sources[0].DisplayName)
		require.False(t, sources[0].HasOverrideData)
	})

	t.Run("skips roots without a qualifying module", func(t *testing.T) {
		t.Parallel()

		behavior := writePack(t, `{"modules": [{"type": "data"}]}`, true)
		empty := writePack(t, `{}`, true)

		require.Empty(t, discovery.Discover([]string{behavior, empty}))
	})

	t.Run("skips roots with invalid or missing manifest", func(t *testing.T) {
		t.Parallel()

		broken := writePack(t, `{not json`, true)
		bare := t.TempDir()

		require.Empty(t, discovery.Discover([]string{broken, bare}))
	})

	t.Run("does not scan subdirectories for manifests", func(t *testing.T) {
		t.Parallel()

		outer := t.TempDir()
		nested := filepath.Join(outer, "inner")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(nested, "manifest.json"), []byte(resourceManifest), 0o644))

		require.Empty(t, discovery.Discover([]string{outer}))
	})

	t.Run("deduplicates by root path across lists, first wins", func(t *testing.T) {
		t.Parallel()

		a := writePack(t, resourceManifest, true)
		b := writePack(t, `{"header":{"name":"Other"},"modules":[{"type":"resources"}]}`, false)

		sources := discovery.Discover([]string{a, b}, []string{b, a})

		require.Len(t, sources, 2)
		require.Equal(t, a, sources[0].RootPath)
		require.Equal(t, b, sources[1].RootPath)
	})

	t.Run("is idempotent over unchanged roots", func(t *testing.T) {
		t.Parallel()

		roots := []string{writePack(t, resourceManifest, true), writePack(t, resourceManifest, false)}

		first := discovery.Discover(roots)
		second := discovery.Discover(roots)

		require.Equal(t, first, second)
	})
}

func TestListLocales(t *testing.T) {
	t.Parallel()

	t.Run("collects sorted locale codes from lang files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		for _, name := range []string{"en_US.lang", "de_DE.lang", "notes.txt"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "fr_FR.lang"), 0o755))

		require.Equal(t, []string{"de_DE", "en_US"}, discovery.ListLocales(dir))
	})

	t.Run("missing directory yields empty list", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, discovery.ListLocales(filepath.Join(t.TempDir(), "missing")))
	})
}
