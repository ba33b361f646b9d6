package discovery

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// manifestName is the marker file checked at each candidate root.
	manifestName = "manifest.json"

	// dataDirName is the fixed subdirectory holding .lang files.
	dataDirName = "texts"

	// moduleTypeResources is the manifest module type that qualifies a
	// directory as an override source.
	moduleTypeResources = "resources"

	// langExt is the file extension of key-value sources.
	langExt = ".lang"
)

// SourceInfo describes one discovered override source. Instances are created
// fresh on every scan and never mutated; identity is RootPath.
type SourceInfo struct {
	// RootPath is the source's root directory (the one holding the manifest).
	RootPath string

	// DisplayName is the manifest's header name, or the root directory's
	// base name when the manifest declares none.
	DisplayName string

	// HasOverrideData reports whether the texts subdirectory exists.
	// Callers must check it before reading DataPath.
	HasOverrideData bool

	// DataPath is the texts subdirectory path, set regardless of existence.
	DataPath string
}

// manifest mirrors just the fields discovery cares about. Unknown fields are
// ignored and any decode failure collapses into "not a source".
type manifest struct {
	Header struct {
		Name string `json:"name"`
	} `json:"header"`
	Modules []struct {
		Type string `json:"type"`
	} `json:"modules"`
}

// Discover scans the given candidate-root lists in order and returns the
// qualifying sources. Roots appearing in more than one list (or more than
// once) are deduplicated by path with the first occurrence retained, so
// discovery is idempotent and order-stable no matter how many overlapping
// lists callers supply.
func Discover(rootLists ...[]string) []SourceInfo {
	var sources []SourceInfo
	seen := make(map[string]bool)

	for _, roots := range rootLists {
		for _, root := range roots {
			if root == "" || seen[root] {
				continue
			}
			seen[root] = true

			info, ok := inspect(root)
			if !ok {
				continue
			}
			sources = append(sources, info)
		}
	}

	return sources
}

// inspect checks a single candidate root. Only the root itself is examined
// for a manifest; subdirectories are intentionally not scanned.
func inspect(root string) (SourceInfo, bool) {
	m, ok := readManifest(filepath.Join(root, manifestName))
	if !ok {
		return SourceInfo{}, false
	}

	declaresResources := false
	for _, mod := range m.Modules {
		if mod.Type == moduleTypeResources {
			declaresResources = true
			break
		}
	}
	if !declaresResources {
		return SourceInfo{}, false
	}

	name := m.Header.Name
	if name == "" {
		name = filepath.Base(root)
	}

	dataPath := filepath.Join(root, dataDirName)
	stat, err := os.Stat(dataPath)

	return SourceInfo{
		RootPath:        root,
		DisplayName:     name,
		HasOverrideData: err == nil && stat.IsDir(),
		DataPath:        dataPath,
	}, true
}

// readManifest decodes a manifest file, treating every failure as absence.
func readManifest(path string) (manifest, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return manifest{}, false
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return manifest{}, false
	}
	return m, true
}

// ListLocales enumerates the locale codes available in a data directory by
// collecting .lang file names with the extension stripped. The result is
// sorted ascending and deduplicated. A missing or unreadable directory yields
// an empty list.
func ListLocales(dataPath string) []string {
	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return nil
	}

	set := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, langExt) {
			continue
		}
		locale := strings.TrimSuffix(name, langExt)
		if locale == "" {
			continue
		}
		set[locale] = true
	}

	locales := make([]string, 0, len(set))
	for locale := range set {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// LocaleFile returns the path of one locale's .lang file inside a data
// directory. It does not check existence; ParseFile tolerates absence.
func LocaleFile(dataPath, locale string) string {
	return filepath.Join(dataPath, locale+langExt)
}
