package filesystem_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/srcaudit/internal/filesystem"
)

func TestOSFileSystemRoundTrip(testInstance *testing.T) {
	fileSystem := filesystem.OSFileSystem{}
	targetDirectory := filepath.Join(testInstance.TempDir(), "nested", "plans")
	targetPath := filepath.Join(targetDirectory, "audit_actions.json")

	require.NoError(testInstance, fileSystem.MkdirAll(targetDirectory, 0o755))
	require.NoError(testInstance, fileSystem.WriteFile(targetPath, []byte("[]\n"), 0o644))

	info, statError := fileSystem.Stat(targetPath)
	require.NoError(testInstance, statError)
	require.Equal(testInstance, int64(3), info.Size())

	content, readError := fileSystem.ReadFile(targetPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "[]\n", string(content))

	reader, openError := fileSystem.Open(targetPath)
	require.NoError(testInstance, openError)
	streamed, streamError := io.ReadAll(reader)
	require.NoError(testInstance, streamError)
	require.NoError(testInstance, reader.Close())
	require.Equal(testInstance, content, streamed)

	absolutePath, absoluteError := fileSystem.Abs(filepath.Join(targetDirectory, "..", "plans"))
	require.NoError(testInstance, absoluteError)
	require.Equal(testInstance, targetDirectory, absolutePath)
}
