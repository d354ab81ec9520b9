package plan_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/srcaudit/internal/filesystem"
	"github.com/temirov/srcaudit/internal/plan"
)

const expectedJSONPlanConstant = `[
  {
    "type": "duplicate",
    "filename": "Foo.txt",
    "keep": "a/b/Foo.txt",
    "remove": "Foo.txt",
    "identical": true
  },
  {
    "type": "duplicate",
    "filename": "Bar.txt",
    "keep": "src/Bar.txt",
    "remove": "lib/Bar.txt",
    "identical": false
  },
  {
    "type": "orphan",
    "path": "Baz.txt"
  }
]
`

const expectedYAMLPlanConstant = `- type: duplicate
  filename: Foo.txt
  keep: a/b/Foo.txt
  remove: Foo.txt
  identical: true
- type: duplicate
  filename: Bar.txt
  keep: src/Bar.txt
  remove: lib/Bar.txt
  identical: false
- type: orphan
  path: Baz.txt
`

func sampleActions() []plan.Action {
	return []plan.Action{
		plan.NewDuplicateAction("Foo.txt", "a/b/Foo.txt", "Foo.txt", true),
		plan.NewDuplicateAction("Bar.txt", "src/Bar.txt", "lib/Bar.txt", false),
		plan.NewOrphanAction("Baz.txt"),
	}
}

func TestEncode(testInstance *testing.T) {
	testCases := []struct {
		name           string
		actions        []plan.Action
		format         plan.Format
		expectedOutput string
	}{
		{name: "json_plan", actions: sampleActions(), format: plan.FormatJSON, expectedOutput: expectedJSONPlanConstant},
		{name: "yaml_plan", actions: sampleActions(), format: plan.FormatYAML, expectedOutput: expectedYAMLPlanConstant},
		{name: "json_empty", actions: nil, format: plan.FormatJSON, expectedOutput: "[]\n"},
		{name: "yaml_empty", actions: []plan.Action{}, format: plan.FormatYAML, expectedOutput: "[]\n"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			encoded, encodeError := plan.Encode(testCase.actions, testCase.format)
			require.NoError(testInstance, encodeError)
			require.Equal(testInstance, testCase.expectedOutput, string(encoded))
		})
	}
}

func TestEncodeRejectsUnknownFormat(testInstance *testing.T) {
	_, encodeError := plan.Encode(sampleActions(), plan.Format("toml"))
	require.True(testInstance, errors.Is(encodeError, plan.ErrUnsupportedFormat))
}

func TestParseFormat(testInstance *testing.T) {
	testCases := []struct {
		name           string
		value          string
		expectedFormat plan.Format
		expectError    bool
	}{
		{name: "default", value: "", expectedFormat: plan.FormatJSON},
		{name: "json", value: "JSON", expectedFormat: plan.FormatJSON},
		{name: "yaml", value: "yaml", expectedFormat: plan.FormatYAML},
		{name: "yml_alias", value: " yml ", expectedFormat: plan.FormatYAML},
		{name: "unknown", value: "xml", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			format, parseError := plan.ParseFormat(testCase.value)
			if testCase.expectError {
				require.True(testInstance, errors.Is(parseError, plan.ErrUnsupportedFormat))
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedFormat, format)
		})
	}
}

func TestFormatExtension(testInstance *testing.T) {
	require.Equal(testInstance, ".json", plan.FormatJSON.Extension())
	require.Equal(testInstance, ".yaml", plan.FormatYAML.Extension())
}

func TestWriterOverwritesPreviousPlan(testInstance *testing.T) {
	planPath := filepath.Join(testInstance.TempDir(), "reports", "audit_actions.json")
	writer := plan.NewWriter(filesystem.OSFileSystem{})

	require.NoError(testInstance, writer.Write(planPath, plan.FormatJSON, sampleActions()))
	firstContent, firstReadError := os.ReadFile(planPath)
	require.NoError(testInstance, firstReadError)
	require.Equal(testInstance, expectedJSONPlanConstant, string(firstContent))

	require.NoError(testInstance, writer.Write(planPath, plan.FormatJSON, sampleActions()))
	secondContent, secondReadError := os.ReadFile(planPath)
	require.NoError(testInstance, secondReadError)
	require.Equal(testInstance, firstContent, secondContent)

	require.NoError(testInstance, writer.Write(planPath, plan.FormatJSON, nil))
	emptyContent, emptyReadError := os.ReadFile(planPath)
	require.NoError(testInstance, emptyReadError)
	require.Equal(testInstance, "[]\n", string(emptyContent))
}

type failingFileSystem struct{}

func (failingFileSystem) MkdirAll(string, fs.FileMode) error {
	return nil
}

func (failingFileSystem) WriteFile(string, []byte, fs.FileMode) error {
	return fs.ErrPermission
}

func TestWriterReportsWriteFailures(testInstance *testing.T) {
	writer := plan.NewWriter(failingFileSystem{})

	writeError := writer.Write("/project/audit_actions.json", plan.FormatJSON, sampleActions())
	require.True(testInstance, errors.Is(writeError, fs.ErrPermission))

	require.Error(testInstance, writer.Write(" ", plan.FormatJSON, sampleActions()))
}
