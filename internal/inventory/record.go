package inventory

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/srcaudit/internal/fingerprint"
)

const (
	forwardSlashConstant                 = "/"
	parentDirectoryReferenceConstant     = ".."
	pathOutsideRootErrorTemplateConstant = "%s is outside audit root %s"
)

// ErrOutsideRoot indicates a file cannot be expressed relative to the audit root.
var ErrOutsideRoot = errors.New("path outside audit root")

// FileRecord is an immutable snapshot of one candidate file taken at scan time.
type FileRecord struct {
	AbsolutePath string
	Filename     string
	SizeBytes    int64
	LineCount    int
	ContentHash  string
	Depth        int
}

// HasContentHash reports whether the file content was hashed successfully.
func (record FileRecord) HasContentHash() bool {
	return len(record.ContentHash) > 0
}

// MetricsProvider fingerprints a file.
type MetricsProvider interface {
	Fingerprint(path string) fingerprint.Metrics
}

// NewFileRecord builds a record for absolutePath from the supplied metrics.
func NewFileRecord(absolutePath string, metrics fingerprint.Metrics) FileRecord {
	cleanedPath := filepath.Clean(absolutePath)
	return FileRecord{
		AbsolutePath: cleanedPath,
		Filename:     filepath.Base(cleanedPath),
		SizeBytes:    metrics.SizeBytes,
		LineCount:    metrics.LineCount,
		ContentHash:  metrics.ContentHash,
		Depth:        PathDepth(cleanedPath),
	}
}

// BuildRecords fingerprints every path, preserving input order.
func BuildRecords(absolutePaths []string, metricsProvider MetricsProvider) []FileRecord {
	records := make([]FileRecord, 0, len(absolutePaths))
	for _, absolutePath := range absolutePaths {
		records = append(records, NewFileRecord(absolutePath, metricsProvider.Fingerprint(absolutePath)))
	}
	return records
}

// PathDepth counts the path segments between the filesystem root and the file, the file itself included.
func PathDepth(absolutePath string) int {
	trimmedPath := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(absolutePath)), filepath.ToSlash(filepath.VolumeName(absolutePath)))
	depth := 0
	for _, segment := range strings.Split(trimmedPath, forwardSlashConstant) {
		if len(segment) > 0 {
			depth++
		}
	}
	return depth
}

// RelativePath expresses absolutePath relative to root using forward slashes.
// Files outside root yield an error wrapping ErrOutsideRoot.
func RelativePath(root string, absolutePath string) (string, error) {
	relativePath, relativeError := filepath.Rel(root, absolutePath)
	if relativeError != nil {
		return "", fmt.Errorf("%w: %w", ErrOutsideRoot, relativeError)
	}

	slashPath := filepath.ToSlash(relativePath)
	if slashPath == parentDirectoryReferenceConstant || strings.HasPrefix(slashPath, parentDirectoryReferenceConstant+forwardSlashConstant) {
		return "", fmt.Errorf("%w: "+pathOutsideRootErrorTemplateConstant, ErrOutsideRoot, absolutePath, root)
	}
	return slashPath, nil
}
