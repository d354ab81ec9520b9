package inventory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/srcaudit/internal/inventory"
)

const (
	testDirectoryPermissionsConstant = 0o755
	testFilePermissionsConstant      = 0o600
	testSwiftSuffixConstant          = ".swift"
)

func createTree(testInstance *testing.T, root string, relativePaths []string) {
	testInstance.Helper()
	for _, relativePath := range relativePaths {
		absolutePath := filepath.Join(root, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), testDirectoryPermissionsConstant))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(relativePath), testFilePermissionsConstant))
	}
}

func relativeResults(testInstance *testing.T, root string, absolutePaths []string) []string {
	testInstance.Helper()
	relativePaths := make([]string, 0, len(absolutePaths))
	for _, absolutePath := range absolutePaths {
		require.True(testInstance, filepath.IsAbs(absolutePath))
		relativePath, relativeError := inventory.RelativePath(root, absolutePath)
		require.NoError(testInstance, relativeError)
		relativePaths = append(relativePaths, relativePath)
	}
	return relativePaths
}

func TestFilesystemSourceDiscovererDiscoverSources(testInstance *testing.T) {
	treeLayout := []string{
		"App/ContentView.swift",
		"App/Models/Note.swift",
		"App/Views/HomeView.swift",
		"App/Views/Player/PlayerView.swift",
		"App/README.md",
		"App.xcodeproj/project.pbxproj",
		"App.xcodeproj/Generated.swift",
		"build/Intermediate.swift",
		"Pods/Alamofire/Session.swift",
		".git/hooks/Hook.swift",
		"Tests/Generated/Mock.swift",
		"Tests/NoteTests.swift",
	}

	testCases := []struct {
		name          string
		configuration inventory.DiscoveryConfiguration
		expectedPaths []string
	}{
		{
			name: "excluded_directory_names",
			configuration: inventory.DiscoveryConfiguration{
				Suffixes:            []string{testSwiftSuffixConstant},
				ExcludedDirectories: []string{"build", "Pods", ".git", "App.xcodeproj"},
			},
			expectedPaths: []string{
				"App/ContentView.swift",
				"App/Models/Note.swift",
				"App/Views/HomeView.swift",
				"App/Views/Player/PlayerView.swift",
				"Tests/Generated/Mock.swift",
				"Tests/NoteTests.swift",
			},
		},
		{
			name: "glob_exclusions",
			configuration: inventory.DiscoveryConfiguration{
				Suffixes:            []string{testSwiftSuffixConstant},
				ExcludedDirectories: []string{"build", "Pods", ".git", "App.xcodeproj"},
				ExcludePatterns:     []string{"**/Generated", "App/Views/**/Player*.swift"},
			},
			expectedPaths: []string{
				"App/ContentView.swift",
				"App/Models/Note.swift",
				"App/Views/HomeView.swift",
				"Tests/NoteTests.swift",
			},
		},
		{
			name: "multiple_suffixes",
			configuration: inventory.DiscoveryConfiguration{
				Suffixes:            []string{".md", ".pbxproj"},
				ExcludedDirectories: []string{".git"},
			},
			expectedPaths: []string{
				"App/README.md",
				"App.xcodeproj/project.pbxproj",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			root := testInstance.TempDir()
			createTree(testInstance, root, treeLayout)

			discoverer, constructionError := inventory.NewFilesystemSourceDiscoverer(testCase.configuration, zap.NewNop())
			require.NoError(testInstance, constructionError)

			sources, discoveryError := discoverer.DiscoverSources(root)
			require.NoError(testInstance, discoveryError)
			require.Equal(testInstance, testCase.expectedPaths, relativeResults(testInstance, root, sources))
		})
	}
}

func TestFilesystemSourceDiscovererEmptyTree(testInstance *testing.T) {
	discoverer, constructionError := inventory.NewFilesystemSourceDiscoverer(inventory.DiscoveryConfiguration{Suffixes: []string{testSwiftSuffixConstant}}, nil)
	require.NoError(testInstance, constructionError)

	sources, discoveryError := discoverer.DiscoverSources(testInstance.TempDir())
	require.NoError(testInstance, discoveryError)
	require.Empty(testInstance, sources)
}

func TestFilesystemSourceDiscovererRejectsUnusableRoots(testInstance *testing.T) {
	root := testInstance.TempDir()
	createTree(testInstance, root, []string{"Lonely.swift"})

	discoverer, constructionError := inventory.NewFilesystemSourceDiscoverer(inventory.DiscoveryConfiguration{Suffixes: []string{testSwiftSuffixConstant}}, nil)
	require.NoError(testInstance, constructionError)

	_, missingError := discoverer.DiscoverSources(filepath.Join(root, "missing"))
	require.Error(testInstance, missingError)

	_, fileRootError := discoverer.DiscoverSources(filepath.Join(root, "Lonely.swift"))
	require.Error(testInstance, fileRootError)
}

func TestNewFilesystemSourceDiscovererValidation(testInstance *testing.T) {
	_, missingSuffixError := inventory.NewFilesystemSourceDiscoverer(inventory.DiscoveryConfiguration{Suffixes: []string{"  "}}, nil)
	require.Error(testInstance, missingSuffixError)

	_, patternError := inventory.NewFilesystemSourceDiscoverer(inventory.DiscoveryConfiguration{
		Suffixes:        []string{testSwiftSuffixConstant},
		ExcludePatterns: []string{"App/[unterminated"},
	}, nil)
	require.Error(testInstance, patternError)
}

func TestFilesystemSourceDiscovererSkipsExcludedPaths(testInstance *testing.T) {
	root := testInstance.TempDir()
	createTree(testInstance, root, []string{"Notes.json", "reports/audit_actions.json", "audit_actions.json"})

	discoverer, constructionError := inventory.NewFilesystemSourceDiscoverer(inventory.DiscoveryConfiguration{
		Suffixes:      []string{".json"},
		ExcludedPaths: []string{filepath.Join(root, "audit_actions.json"), " "},
	}, nil)
	require.NoError(testInstance, constructionError)

	sources, discoveryError := discoverer.DiscoverSources(root)
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{"Notes.json", "reports/audit_actions.json"}, relativeResults(testInstance, root, sources))
}
