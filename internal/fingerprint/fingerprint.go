package fingerprint

import (
	"io"
	"io/fs"

	"go.uber.org/zap"
)

const (
	sizeUnavailableMessageConstant  = "file size unavailable; recording zero"
	linesUnavailableMessageConstant = "line count unavailable; recording zero"
	hashUnavailableMessageConstant  = "content hash unavailable; file cannot be proven identical"
	logFieldPathConstant            = "path"
)

// FileSystem exposes the read-only primitives needed to fingerprint a file.
type FileSystem interface {
	FileOpener
	Stat(path string) (fs.FileInfo, error)
}

// Metrics captures the content metrics of one file. ContentHash is empty when the file could not be hashed.
type Metrics struct {
	SizeBytes   int64
	LineCount   int
	ContentHash string
}

// HasContentHash reports whether a digest was computed.
func (metrics Metrics) HasContentHash() bool {
	return len(metrics.ContentHash) > 0
}

// Fingerprinter gathers Metrics for individual files.
type Fingerprinter struct {
	fileSystem FileSystem
	hasher     Hasher
	logger     *zap.Logger
}

// NewFingerprinter constructs a Fingerprinter. A nil logger discards warnings.
func NewFingerprinter(fileSystem FileSystem, hasher Hasher, logger *zap.Logger) *Fingerprinter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fingerprinter{fileSystem: fileSystem, hasher: hasher, logger: logger}
}

// Fingerprint returns the metrics for path. It never fails: unreadable metrics are zero and logged.
func (fingerprinter *Fingerprinter) Fingerprint(path string) Metrics {
	return Metrics{
		SizeBytes:   fingerprinter.sizeOf(path),
		LineCount:   fingerprinter.linesOf(path),
		ContentHash: fingerprinter.hashOf(path),
	}
}

func (fingerprinter *Fingerprinter) sizeOf(path string) int64 {
	fileInfo, statError := fingerprinter.fileSystem.Stat(path)
	if statError != nil {
		fingerprinter.logger.Warn(sizeUnavailableMessageConstant, zap.String(logFieldPathConstant, path), zap.Error(statError))
		return 0
	}
	return fileInfo.Size()
}

func (fingerprinter *Fingerprinter) linesOf(path string) int {
	lineCount, countError := fingerprinter.countLines(path)
	if countError != nil {
		fingerprinter.logger.Warn(linesUnavailableMessageConstant, zap.String(logFieldPathConstant, path), zap.Error(countError))
		return 0
	}
	return lineCount
}

func (fingerprinter *Fingerprinter) countLines(path string) (int, error) {
	file, openError := fingerprinter.fileSystem.Open(path)
	if openError != nil {
		return 0, openError
	}
	defer func(closer io.Closer) {
		_ = closer.Close()
	}(file)

	return CountLines(file)
}

func (fingerprinter *Fingerprinter) hashOf(path string) string {
	if fingerprinter.hasher == nil {
		return ""
	}
	contentHash, hashError := fingerprinter.hasher.HashFile(path)
	if hashError != nil {
		fingerprinter.logger.Warn(hashUnavailableMessageConstant, zap.String(logFieldPathConstant, path), zap.Error(hashError))
		return ""
	}
	return contentHash
}
