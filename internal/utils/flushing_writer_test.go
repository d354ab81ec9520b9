package utils_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/srcaudit/internal/utils"
)

type recordingFlusher struct {
	bytes.Buffer
	flushCount int
	flushError error
}

func (flusher *recordingFlusher) Flush() error {
	flusher.flushCount++
	return flusher.flushError
}

func TestFlushingWriterFlushesAfterEveryWrite(testInstance *testing.T) {
	destination := &recordingFlusher{}
	writer := utils.NewFlushingWriter(destination)

	_, firstWriteError := writer.Write([]byte("DUPLICATE FILES ANALYSIS\n"))
	require.NoError(testInstance, firstWriteError)
	_, secondWriteError := writer.Write([]byte("ORPHAN FILES\n"))
	require.NoError(testInstance, secondWriteError)

	require.Equal(testInstance, "DUPLICATE FILES ANALYSIS\nORPHAN FILES\n", destination.String())
	require.Equal(testInstance, 2, destination.flushCount)
}

func TestFlushingWriterReportsFlushFailure(testInstance *testing.T) {
	destination := &recordingFlusher{flushError: errors.New("flush failed")}
	writer := utils.NewFlushingWriter(destination)

	written, writeError := writer.Write([]byte("report"))
	require.Equal(testInstance, len("report"), written)
	require.EqualError(testInstance, writeError, "flush failed")
}

func TestNewFlushingWriterEdgeCases(testInstance *testing.T) {
	require.Nil(testInstance, utils.NewFlushingWriter(nil))

	plainBuffer := &bytes.Buffer{}
	wrapped := utils.NewFlushingWriter(plainBuffer)
	require.Same(testInstance, wrapped, utils.NewFlushingWriter(wrapped))

	_, writeError := wrapped.Write([]byte("plain"))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, "plain", plainBuffer.String())
}
