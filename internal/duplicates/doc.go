// Package duplicates finds candidate files that share an identity key and compares
// every pair of copies inside each group.
//
// The identity key is pluggable through KeyStrategy. FilenameKey, the default,
// deliberately ignores directory structure so same-named files in unrelated
// subtrees are flagged together.
package duplicates
