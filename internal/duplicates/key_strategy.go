package duplicates

import (
	"fmt"
	"strings"

	"github.com/temirov/srcaudit/internal/inventory"
)

const (
	keyStrategyFilenameConstant       = "filename"
	keyStrategyFoldedFilenameConstant = "filename-fold"
	unsupportedKeyStrategyTemplate    = "unsupported duplicate key strategy: %s"
)

// KeyStrategy derives the grouping key of a file record.
type KeyStrategy interface {
	Key(record inventory.FileRecord) string
}

// FilenameKey groups by the exact, case-sensitive final path component.
type FilenameKey struct{}

// Key returns the record's filename.
func (FilenameKey) Key(record inventory.FileRecord) string {
	return record.Filename
}

// FoldedFilenameKey groups by filename ignoring case, which surfaces copies that collide on
// case-insensitive filesystems.
type FoldedFilenameKey struct{}

// Key returns the lower-cased filename.
func (FoldedFilenameKey) Key(record inventory.FileRecord) string {
	return strings.ToLower(record.Filename)
}

// KeyStrategyNames lists the accepted strategy names, default first.
func KeyStrategyNames() []string {
	return []string{keyStrategyFilenameConstant, keyStrategyFoldedFilenameConstant}
}

// NewKeyStrategy resolves a strategy by name.
func NewKeyStrategy(name string) (KeyStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case keyStrategyFilenameConstant, "":
		return FilenameKey{}, nil
	case keyStrategyFoldedFilenameConstant:
		return FoldedFilenameKey{}, nil
	default:
		return nil, fmt.Errorf(unsupportedKeyStrategyTemplate, name)
	}
}
