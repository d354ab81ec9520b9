package fingerprint

import (
	"bufio"
	"errors"
	"io"
)

const (
	lineCountBufferSizeConstant = 64 * 1024
	lineFeedByteConstant        = '\n'
	carriageReturnByteConstant  = '\r'
)

// CountLines counts text lines the way a permissive text reader would: "\n", "\r\n", and a lone "\r"
// each terminate a line, a trailing unterminated line is counted, and bytes are never decoded so
// malformed encodings cannot fail the count.
func CountLines(reader io.Reader) (int, error) {
	bufferedReader := bufio.NewReaderSize(reader, lineCountBufferSizeConstant)

	lineCount := 0
	pendingContent := false
	previousCarriageReturn := false

	for {
		currentByte, readError := bufferedReader.ReadByte()
		if readError != nil {
			if errors.Is(readError, io.EOF) {
				break
			}
			return 0, readError
		}

		switch currentByte {
		case lineFeedByteConstant:
			if !previousCarriageReturn {
				lineCount++
			}
			pendingContent = false
			previousCarriageReturn = false
		case carriageReturnByteConstant:
			lineCount++
			pendingContent = false
			previousCarriageReturn = true
		default:
			pendingContent = true
			previousCarriageReturn = false
		}
	}

	if pendingContent {
		lineCount++
	}

	return lineCount, nil
}
