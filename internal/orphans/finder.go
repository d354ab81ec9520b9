// Package orphans reports candidate files that the project manifest never references.
package orphans

import (
	"go.uber.org/zap"

	"github.com/temirov/srcaudit/internal/inventory"
	"github.com/temirov/srcaudit/internal/manifest"
)

const (
	outsideRootMessageConstant = "skipping file outside audit root"
	logFieldPathConstant       = "path"
	logFieldRootConstant       = "root"
)

// Record is an unreferenced file together with its root-relative, slash-separated path.
type Record struct {
	inventory.FileRecord
	RelativePath string
}

// Finder filters candidate records down to orphans.
type Finder struct {
	root     string
	strategy manifest.MembershipStrategy
	logger   *zap.Logger
}

// NewFinder constructs a Finder for files under root. A nil strategy falls back to SubstringMembership.
func NewFinder(root string, strategy manifest.MembershipStrategy, logger *zap.Logger) Finder {
	if strategy == nil {
		strategy = manifest.SubstringMembership{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return Finder{root: root, strategy: strategy, logger: logger}
}

// Find returns the records not referenced by references, in input order. Files that cannot be
// expressed relative to the root are logged and left out. With an empty reference set every
// remaining record is an orphan.
func (finder Finder) Find(records []inventory.FileRecord, references manifest.ReferenceSet) []Record {
	orphanRecords := make([]Record, 0)
	for _, record := range records {
		relativePath, relativeError := inventory.RelativePath(finder.root, record.AbsolutePath)
		if relativeError != nil {
			finder.logger.Warn(outsideRootMessageConstant, zap.String(logFieldPathConstant, record.AbsolutePath), zap.String(logFieldRootConstant, finder.root), zap.Error(relativeError))
			continue
		}

		if finder.strategy.IsReferenced(record.Filename, relativePath, references) {
			continue
		}

		orphanRecords = append(orphanRecords, Record{FileRecord: record, RelativePath: relativePath})
	}
	return orphanRecords
}
