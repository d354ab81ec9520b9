package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	formatJSONStringConstant             = "json"
	formatYAMLStringConstant             = "yaml"
	formatJSONExtensionConstant          = ".json"
	formatYAMLExtensionConstant          = ".yaml"
	jsonIndentConstant                   = "  "
	yamlIndentConstant                   = 2
	planDirectoryPermissionsConstant     = fs.FileMode(0o755)
	planFilePermissionsConstant          = fs.FileMode(0o644)
	encodePlanErrorTemplateConstant      = "failed to encode action plan: %w"
	createDirectoryErrorTemplateConstant = "failed to create action plan directory: %w"
	writePlanErrorTemplateConstant       = "failed to write action plan %s: %w"
	planPathMissingMessageConstant       = "action plan path not configured"
)

// ErrUnsupportedFormat is returned for unknown plan serialization formats.
var ErrUnsupportedFormat = errors.New("unsupported action plan format")

// Format names a plan serialization.
type Format string

// Supported plan serializations.
const (
	FormatJSON Format = Format(formatJSONStringConstant)
	FormatYAML Format = Format(formatYAMLStringConstant)
)

// Extension returns the file extension conventionally used for the format.
func (format Format) Extension() string {
	if format == FormatYAML {
		return formatYAMLExtensionConstant
	}
	return formatJSONExtensionConstant
}

// FormatNames lists the accepted format names, default first.
func FormatNames() []string {
	return []string{formatJSONStringConstant, formatYAMLStringConstant}
}

// ParseFormat resolves a format name case-insensitively. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case formatJSONStringConstant, "":
		return FormatJSON, nil
	case formatYAMLStringConstant, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// Encode serializes actions in order. An empty plan encodes as an empty sequence.
func Encode(actions []Action, format Format) ([]byte, error) {
	if actions == nil {
		actions = []Action{}
	}

	switch format {
	case FormatJSON:
		encoded, marshalError := json.MarshalIndent(actions, "", jsonIndentConstant)
		if marshalError != nil {
			return nil, fmt.Errorf(encodePlanErrorTemplateConstant, marshalError)
		}
		return append(encoded, '\n'), nil
	case FormatYAML:
		var buffer bytes.Buffer
		encoder := yaml.NewEncoder(&buffer)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(actions); encodeError != nil {
			return nil, fmt.Errorf(encodePlanErrorTemplateConstant, encodeError)
		}
		if closeError := encoder.Close(); closeError != nil {
			return nil, fmt.Errorf(encodePlanErrorTemplateConstant, closeError)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// FileSystem provides the write primitives needed to persist a plan.
type FileSystem interface {
	MkdirAll(path string, permissions fs.FileMode) error
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// Writer persists plans, replacing any previous plan at the same location.
type Writer struct {
	fileSystem FileSystem
}

// NewWriter constructs a Writer.
func NewWriter(fileSystem FileSystem) Writer {
	return Writer{fileSystem: fileSystem}
}

// Write encodes actions and writes them to planPath.
func (writer Writer) Write(planPath string, format Format, actions []Action) error {
	if len(strings.TrimSpace(planPath)) == 0 {
		return errors.New(planPathMissingMessageConstant)
	}

	encoded, encodeError := Encode(actions, format)
	if encodeError != nil {
		return encodeError
	}

	if mkdirError := writer.fileSystem.MkdirAll(filepath.Dir(planPath), planDirectoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(createDirectoryErrorTemplateConstant, mkdirError)
	}

	if writeError := writer.fileSystem.WriteFile(planPath, encoded, planFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(writePlanErrorTemplateConstant, planPath, writeError)
	}
	return nil
}
