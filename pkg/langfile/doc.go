// Package langfile parses the line-oriented .lang key-value format used by
// resource packs and the remote vanilla baseline.
//
// The format is deliberately minimal: UTF-8 text, one entry per line, split at
// the first '=' character. There are no escaping rules; everything after the
// first '=' belongs to the value verbatim, including further '=' characters.
// Lines that are empty or start with '#' (after trimming surrounding
// whitespace) are comments. Keys are taken verbatim and never trimmed.
//
// Parsing is a total function. Malformed lines contribute nothing, duplicate
// keys resolve last-wins within one file, and a missing file yields an empty
// table. Callers never have to handle a parse error; the worst outcome is
// fewer entries.
//
// Every entry records its provenance (the originating file path or a remote
// marker) and its 1-based line number so that consumers can offer
// go-to-definition style navigation.
package langfile
