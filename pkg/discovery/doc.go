// Package discovery locates override sources (resource packs) on disk.
//
// A candidate directory qualifies as an override source when it carries a
// manifest.json at its root declaring at least one module of type
// "resources". The scan is deliberately shallow: only the candidate root
// itself is inspected, never its subdirectories, so nesting a pack inside
// another directory does not change how many sources exist or their
// precedence.
//
// Any manifest problem (missing file, unreadable file, invalid JSON, no
// qualifying module) silently disqualifies the candidate. Discovery never
// returns an error; a directory either is a source or it is not.
package discovery
