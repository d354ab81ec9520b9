// Package manifest decides which on-disk files a build-project manifest references.
//
// The manifest is treated as opaque text. A ReferenceExtractor pulls path-like
// fragments out of it and a MembershipStrategy tests individual files against
// the resulting ReferenceSet. Both are interfaces so a structural parser or a
// stricter matcher can replace the textual heuristics without touching callers.
package manifest
