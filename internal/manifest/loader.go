package manifest

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	manifestPathMissingMessageConstant     = "manifest path not configured"
	manifestReadErrorTemplateConstant      = "%w: %s: %w"
	manifestUnavailableMessageConstant     = "manifest unavailable; every candidate file will be reported as an orphan"
	manifestParsedMessageConstant          = "manifest references extracted"
	logFieldManifestConstant               = "manifest"
	logFieldReferenceCountConstant         = "reference_count"
	logFieldReferencesConstant             = "references"
	manifestEmptyReferencesMessageConstant = "manifest contains no file references; every candidate file will be reported as an orphan"
)

// ErrManifestUnavailable is wrapped by every failure to obtain manifest text.
var ErrManifestUnavailable = errors.New("manifest unavailable")

// FileReader reads whole files.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// TextProvider yields the raw text of one manifest.
type TextProvider interface {
	ReadManifest(manifestPath string) (string, error)
}

// FileTextProvider reads manifest text from disk.
type FileTextProvider struct {
	reader FileReader
}

// NewFileTextProvider constructs a FileTextProvider.
func NewFileTextProvider(reader FileReader) FileTextProvider {
	return FileTextProvider{reader: reader}
}

// ReadManifest returns the file content as text. Failures wrap ErrManifestUnavailable.
func (provider FileTextProvider) ReadManifest(manifestPath string) (string, error) {
	if len(strings.TrimSpace(manifestPath)) == 0 {
		return "", fmt.Errorf("%w: %s", ErrManifestUnavailable, manifestPathMissingMessageConstant)
	}
	content, readError := provider.reader.ReadFile(manifestPath)
	if readError != nil {
		return "", fmt.Errorf(manifestReadErrorTemplateConstant, ErrManifestUnavailable, manifestPath, readError)
	}
	return string(content), nil
}

// Loader turns a manifest path into a ReferenceSet, degrading to an empty set on failure.
type Loader struct {
	provider  TextProvider
	extractor ReferenceExtractor
	logger    *zap.Logger
}

// NewLoader constructs a Loader. A nil logger discards messages.
func NewLoader(provider TextProvider, extractor ReferenceExtractor, logger *zap.Logger) Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Loader{provider: provider, extractor: extractor, logger: logger}
}

// Load returns the references found in the manifest and whether the manifest could be read.
// An unreadable manifest is logged at error level and yields an empty set.
func (loader Loader) Load(manifestPath string) (ReferenceSet, bool) {
	manifestText, readError := loader.provider.ReadManifest(manifestPath)
	if readError != nil {
		loader.logger.Error(manifestUnavailableMessageConstant, zap.String(logFieldManifestConstant, manifestPath), zap.Error(readError))
		return NewReferenceSet(), false
	}

	references := loader.extractor.Extract(manifestText)
	if references.Len() == 0 {
		loader.logger.Warn(manifestEmptyReferencesMessageConstant, zap.String(logFieldManifestConstant, manifestPath))
	} else {
		loader.logger.Info(manifestParsedMessageConstant, zap.String(logFieldManifestConstant, manifestPath), zap.Int(logFieldReferenceCountConstant, references.Len()))
		loader.logger.Debug(manifestParsedMessageConstant, zap.String(logFieldManifestConstant, manifestPath), zap.Strings(logFieldReferencesConstant, references.Members()))
	}
	return references, true
}
