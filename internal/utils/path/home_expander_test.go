package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/srcaudit/internal/utils/path"
)

const (
	testHomeDirectoryConstant  = "/home/auditor"
	testBaseDirectoryConstant  = "/work/project"
	testProviderFailureMessage = "home lookup failed"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		provider      pathutils.HomeDirectoryProvider
		candidatePath string
		expectedPath  string
	}{
		{
			name:          "bare_tilde",
			provider:      func() (string, error) { return testHomeDirectoryConstant, nil },
			candidatePath: "~",
			expectedPath:  testHomeDirectoryConstant,
		},
		{
			name:          "tilde_prefix",
			provider:      func() (string, error) { return testHomeDirectoryConstant, nil },
			candidatePath: "~/Projects/App",
			expectedPath:  filepath.Join(testHomeDirectoryConstant, "Projects", "App"),
		},
		{
			name:          "absolute_path_untouched",
			provider:      func() (string, error) { return testHomeDirectoryConstant, nil },
			candidatePath: " /srv/app ",
			expectedPath:  "/srv/app",
		},
		{
			name:          "provider_failure_keeps_input",
			provider:      func() (string, error) { return "", errors.New(testProviderFailureMessage) },
			candidatePath: "~/Projects",
			expectedPath:  "~/Projects",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(testCase.provider)
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.candidatePath))
		})
	}
}

func TestHomeExpanderResolveAgainst(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) { return testHomeDirectoryConstant, nil })

	require.Equal(testInstance, filepath.Join(testBaseDirectoryConstant, "App.xcodeproj", "project.pbxproj"), expander.ResolveAgainst(testBaseDirectoryConstant, "App.xcodeproj/project.pbxproj"))
	require.Equal(testInstance, "/etc/project.pbxproj", expander.ResolveAgainst(testBaseDirectoryConstant, "/etc/project.pbxproj"))
	require.Equal(testInstance, filepath.Join(testHomeDirectoryConstant, "project.pbxproj"), expander.ResolveAgainst(testBaseDirectoryConstant, "~/project.pbxproj"))
	require.Empty(testInstance, expander.ResolveAgainst(testBaseDirectoryConstant, "  "))
}
