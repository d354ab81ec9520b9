package manifest

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

const (
	referencePatternPrefixConstant = `[\p{L}\p{M}\p{N}_/]+\.(?:`
	referencePatternSuffixConstant = `)`
	alternationSeparatorConstant   = "|"
	suffixDotConstant              = "."
	missingSuffixesMessageConstant = "reference extraction requires at least one file suffix"
)

// ReferenceExtractor pulls referenced path fragments out of raw manifest text.
type ReferenceExtractor interface {
	Extract(manifestText string) ReferenceSet
}

// PatternExtractor matches runs of Unicode letters, marks, digits, underscores and slashes ending in
// one of the configured file suffixes, e.g. "Views/HomeView.swift" or "Views/Café.swift". It performs
// no structural parsing.
type PatternExtractor struct {
	expression *regexp.Regexp
}

// NewPatternExtractor compiles the reference pattern for suffixes such as ".swift".
func NewPatternExtractor(suffixes []string) (*PatternExtractor, error) {
	extensions := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		extension := strings.TrimPrefix(strings.TrimSpace(suffix), suffixDotConstant)
		if len(extension) == 0 {
			continue
		}
		extensions = append(extensions, regexp.QuoteMeta(extension))
	}
	if len(extensions) == 0 {
		return nil, errors.New(missingSuffixesMessageConstant)
	}

	// Longest first so "swiftinterface" wins over "swift" at the same position.
	sort.SliceStable(extensions, func(first int, second int) bool {
		return len(extensions[first]) > len(extensions[second])
	})

	expression, compileError := regexp.Compile(referencePatternPrefixConstant + strings.Join(extensions, alternationSeparatorConstant) + referencePatternSuffixConstant)
	if compileError != nil {
		return nil, compileError
	}
	return &PatternExtractor{expression: expression}, nil
}

// Extract returns every non-overlapping match in manifestText.
func (extractor *PatternExtractor) Extract(manifestText string) ReferenceSet {
	return NewReferenceSet(extractor.expression.FindAllString(manifestText, -1)...)
}
