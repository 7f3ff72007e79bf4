// Package file provides filesystem adapters: a YAML/JSON history source and a
// JSON batch store.
package file
