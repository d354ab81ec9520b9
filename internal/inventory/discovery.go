package inventory

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

const (
	invalidExcludePatternTemplateConstant = "invalid exclude pattern %q"
	rootNotDirectoryTemplateConstant      = "audit root %s is not a directory"
	rootUnavailableTemplateConstant       = "audit root unavailable: %w"
	missingSuffixesMessageConstant        = "at least one source suffix must be configured"
	unreadableEntryMessageConstant        = "skipping unreadable entry"
	logFieldPathConstant                  = "path"
)

// DiscoveryConfiguration selects which files count as audit candidates. ExcludedPaths holds absolute
// file paths that are never reported, such as the action plan the audit itself writes.
type DiscoveryConfiguration struct {
	Suffixes            []string
	ExcludedDirectories []string
	ExcludePatterns     []string
	ExcludedPaths       []string
}

// FilesystemSourceDiscoverer locates candidate source files on disk using filepath.WalkDir.
type FilesystemSourceDiscoverer struct {
	suffixes            []string
	excludedDirectories map[string]struct{}
	excludePatterns     []string
	excludedPaths       map[string]struct{}
	logger              *zap.Logger
}

// NewFilesystemSourceDiscoverer validates the configuration and constructs a discoverer.
func NewFilesystemSourceDiscoverer(configuration DiscoveryConfiguration, logger *zap.Logger) (*FilesystemSourceDiscoverer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	suffixes := trimmedNonEmpty(configuration.Suffixes)
	if len(suffixes) == 0 {
		return nil, errors.New(missingSuffixesMessageConstant)
	}

	excludedDirectories := make(map[string]struct{}, len(configuration.ExcludedDirectories))
	for _, directoryName := range trimmedNonEmpty(configuration.ExcludedDirectories) {
		excludedDirectories[directoryName] = struct{}{}
	}

	excludePatterns := trimmedNonEmpty(configuration.ExcludePatterns)
	for _, excludePattern := range excludePatterns {
		if !doublestar.ValidatePattern(excludePattern) {
			return nil, fmt.Errorf(invalidExcludePatternTemplateConstant, excludePattern)
		}
	}

	excludedPaths := make(map[string]struct{}, len(configuration.ExcludedPaths))
	for _, excludedPath := range trimmedNonEmpty(configuration.ExcludedPaths) {
		absolutePath, absoluteError := filepath.Abs(excludedPath)
		if absoluteError != nil {
			continue
		}
		excludedPaths[absolutePath] = struct{}{}
	}

	return &FilesystemSourceDiscoverer{
		suffixes:            suffixes,
		excludedDirectories: excludedDirectories,
		excludePatterns:     excludePatterns,
		excludedPaths:       excludedPaths,
		logger:              logger,
	}, nil
}

// DiscoverSources walks root and returns the absolute paths of candidate files in lexical walk order.
// Unreadable subdirectories are logged and skipped; an unusable root is an error.
func (discoverer *FilesystemSourceDiscoverer) DiscoverSources(root string) ([]string, error) {
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return nil, fmt.Errorf(rootUnavailableTemplateConstant, absoluteError)
	}

	var sources []string
	walkError := filepath.WalkDir(absoluteRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if path == absoluteRoot {
				return fmt.Errorf(rootUnavailableTemplateConstant, walkError)
			}
			discoverer.logger.Warn(unreadableEntryMessageConstant, zap.String(logFieldPathConstant, path), zap.Error(walkError))
			return nil
		}

		if path == absoluteRoot {
			if !directoryEntry.IsDir() {
				return fmt.Errorf(rootNotDirectoryTemplateConstant, absoluteRoot)
			}
			return nil
		}

		relativePath, relativeError := RelativePath(absoluteRoot, path)
		if relativeError != nil {
			return nil
		}

		if directoryEntry.IsDir() {
			if discoverer.isExcludedDirectory(directoryEntry.Name(), relativePath) {
				return fs.SkipDir
			}
			return nil
		}

		if !directoryEntry.Type().IsRegular() {
			return nil
		}

		if _, excluded := discoverer.excludedPaths[path]; excluded {
			return nil
		}

		if discoverer.matchesExcludePattern(relativePath) || !discoverer.hasCandidateSuffix(directoryEntry.Name()) {
			return nil
		}

		sources = append(sources, path)
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	return sources, nil
}

func (discoverer *FilesystemSourceDiscoverer) isExcludedDirectory(directoryName string, relativePath string) bool {
	if _, excluded := discoverer.excludedDirectories[directoryName]; excluded {
		return true
	}
	return discoverer.matchesExcludePattern(relativePath)
}

func (discoverer *FilesystemSourceDiscoverer) matchesExcludePattern(relativePath string) bool {
	for _, excludePattern := range discoverer.excludePatterns {
		if matched, matchError := doublestar.Match(excludePattern, relativePath); matchError == nil && matched {
			return true
		}
	}
	return false
}

func (discoverer *FilesystemSourceDiscoverer) hasCandidateSuffix(filename string) bool {
	for _, suffix := range discoverer.suffixes {
		if strings.HasSuffix(filename, suffix) {
			return true
		}
	}
	return false
}

func trimmedNonEmpty(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		candidate := strings.TrimSpace(value)
		if len(candidate) == 0 {
			continue
		}
		trimmed = append(trimmed, candidate)
	}
	return trimmed
}
