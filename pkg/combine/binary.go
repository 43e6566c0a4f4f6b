// File: pkg/combine/binary.go
package combine

import (
	"bytes"
)

// isBinaryContent reports whether data looks binary: it contains a NUL
// byte or more than 30% non-printable characters.
func isBinaryContent(data []byte) bool {
	if len(data) > ChunkSize {
		data = data[:ChunkSize]
	}
	if len(data) == 0 {
		return false // Empty files are considered text
	}

	// Check for null bytes (common in binary files)
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range data {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(data)) > 0.3
}

// isPrintable checks if a byte is printable ASCII, common whitespace, or
// part of a UTF-8 sequence.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b == '\f' || b >= 0x80
}
