package audit

import (
	"io"
	"io/fs"
)

// SourceDiscoverer enumerates candidate source files under a root, in deterministic order.
type SourceDiscoverer interface {
	DiscoverSources(root string) ([]string, error)
}

// SourceDiscovererFactory builds a discoverer for a resolved discovery configuration.
type SourceDiscovererFactory func(options Options) (SourceDiscoverer, error)

// FileSystem provides the filesystem operations used across an audit run. Only the plan is written.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Open(path string) (io.ReadCloser, error)
	Abs(path string) (string, error)
	ReadFile(path string) ([]byte, error)
	MkdirAll(path string, permissions fs.FileMode) error
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}
