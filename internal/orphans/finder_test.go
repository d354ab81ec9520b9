package orphans_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/srcaudit/internal/fingerprint"
	"github.com/temirov/srcaudit/internal/inventory"
	"github.com/temirov/srcaudit/internal/manifest"
	"github.com/temirov/srcaudit/internal/orphans"
)

const testRootConstant = "/project"

func candidateRecords() []inventory.FileRecord {
	paths := []string{
		"/project/EchoNotes/Views/HomeView.swift",
		"/project/Baz.swift",
		"/project/EchoNotes/Models/Note.swift",
		"/project/Scratch/Draft.swift",
	}
	records := make([]inventory.FileRecord, 0, len(paths))
	for _, path := range paths {
		records = append(records, inventory.NewFileRecord(path, fingerprint.Metrics{SizeBytes: 1, LineCount: 1, ContentHash: "h"}))
	}
	return records
}

func relativePaths(orphanRecords []orphans.Record) []string {
	paths := make([]string, 0, len(orphanRecords))
	for _, orphanRecord := range orphanRecords {
		paths = append(paths, orphanRecord.RelativePath)
	}
	return paths
}

func TestFinderFind(testInstance *testing.T) {
	testCases := []struct {
		name          string
		references    manifest.ReferenceSet
		expectedPaths []string
	}{
		{
			name:          "unreferenced_files_in_scan_order",
			references:    manifest.NewReferenceSet("HomeView.swift", "EchoNotes/Models/Note.swift"),
			expectedPaths: []string{"Baz.swift", "Scratch/Draft.swift"},
		},
		{
			name:          "empty_reference_set_orphans_everything",
			references:    manifest.NewReferenceSet(),
			expectedPaths: []string{"EchoNotes/Views/HomeView.swift", "Baz.swift", "EchoNotes/Models/Note.swift", "Scratch/Draft.swift"},
		},
		{
			name:          "everything_referenced",
			references:    manifest.NewReferenceSet("HomeView.swift", "Note.swift", "Baz.swift", "Draft.swift"),
			expectedPaths: []string{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			finder := orphans.NewFinder(testRootConstant, manifest.SubstringMembership{}, zap.NewNop())
			require.Equal(testInstance, testCase.expectedPaths, relativePaths(finder.Find(candidateRecords(), testCase.references)))
		})
	}
}

func TestFinderSkipsFilesOutsideRoot(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zapcore.WarnLevel)
	finder := orphans.NewFinder(testRootConstant, nil, zap.New(observedCore))

	records := append(candidateRecords(), inventory.NewFileRecord("/elsewhere/Stray.swift", fingerprint.Metrics{}))
	orphanRecords := finder.Find(records, manifest.NewReferenceSet())

	require.Len(testInstance, orphanRecords, 4)
	require.Equal(testInstance, 1, observedLogs.Len())
	require.Equal(testInstance, "Baz.swift", orphanRecords[1].Filename)
}

func TestFinderMatchesNonASCIIReferences(testInstance *testing.T) {
	extractor, extractorError := manifest.NewPatternExtractor([]string{".swift"})
	require.NoError(testInstance, extractorError)
	references := extractor.Extract("C1 /* Café.swift in Sources */ = {fileRef = C2 /* Views/Café.swift */; };")

	records := []inventory.FileRecord{
		inventory.NewFileRecord("/project/Views/Café.swift", fingerprint.Metrics{SizeBytes: 1, LineCount: 1, ContentHash: "h"}),
		inventory.NewFileRecord("/project/Views/Crème.swift", fingerprint.Metrics{SizeBytes: 1, LineCount: 1, ContentHash: "h"}),
	}

	finder := orphans.NewFinder(testRootConstant, manifest.SubstringMembership{}, zap.NewNop())
	require.Equal(testInstance, []string{"Views/Crème.swift"}, relativePaths(finder.Find(records, references)))
}
