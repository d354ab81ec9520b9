// Package inventory enumerates candidate source files under an audit root and
// snapshots them as FileRecord values.
//
// Discovery is deterministic: directories are walked in lexical order, excluded
// directory names and glob patterns are pruned, and only files carrying one of
// the configured suffixes are returned.
package inventory
