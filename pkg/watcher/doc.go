// Package watcher triggers refreshes when override source files change.
//
// It watches manifest files and texts directories of discovered sources and
// invokes a single callback after a short debounce window, so an editor
// saving several .lang files in a burst produces one refresh instead of many.
package watcher
