package langfile

import (
	"os"
	"sort"
	"strings"
)

// Entry is one resolved translation: the key's value plus its provenance.
// Entries are immutable; a higher-precedence source replaces the whole entry
// rather than mutating it.
type Entry struct {
	// Key is the translation key exactly as written in the source line.
	Key string

	// Value is everything after the first '=' on the line, verbatim.
	// May be empty.
	Value string

	// Source identifies where the entry came from: a file path for local
	// sources, or a remote marker such as "remote:en_US" for the baseline.
	Source string

	// Line is the 1-based line number within Source.
	Line int
}

// Table maps translation keys to their resolved entries.
// Insertion order is irrelevant; use Keys for deterministic iteration.
type Table map[string]Entry

// Parse decodes content in the .lang format into a Table. The source string
// is recorded as provenance on every entry. Parse never fails: lines that are
// blank, comments, missing an '=', or missing a key are skipped, and
// duplicate keys resolve to the last occurrence in the content.
func Parse(content, source string) Table {
	table := make(Table)

	for i, line := range strings.Split(content, "\n") {
		// A trailing \r is part of the line terminator, not the value.
		line = strings.TrimSuffix(line, "\r")

		// Comment and blank detection works on a trimmed view of the line;
		// the key/value split below still uses the untrimmed text.
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			// No separator, or an empty key.
			continue
		}

		key := line[:eq]
		table[key] = Entry{
			Key:    key,
			Value:  line[eq+1:],
			Source: source,
			Line:   i + 1,
		}
	}

	return table
}

// ParseFile reads and parses one .lang file. A missing or unreadable file is
// not an error: it simply contributes no entries.
func ParseFile(path string) Table {
	data, err := os.ReadFile(path)
	if err != nil {
		return make(Table)
	}
	return Parse(string(data), path)
}

// Merge copies every entry of src into dst, overwriting dst entries that
// share a key. It implements one layer of the precedence chain: callers apply
// lower-precedence tables first.
func Merge(dst, src Table) {
	for key, entry := range src {
		dst[key] = entry
	}
}

// Keys returns the table's keys sorted ascending. Query operations iterate
// this slice so that results are deterministic for a fixed table.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the table. Entries are value objects, so a
// shallow copy is a full copy.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for key, entry := range t {
		out[key] = entry
	}
	return out
}
