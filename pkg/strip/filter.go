package strip

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Filter copies r to w line by line, dropping comments, imports and package
// declarations according to the profile registered for ext. Files with an
// unknown extension are copied verbatim. It returns the number of lines
// written.
func Filter(r io.Reader, w io.Writer, ext string) (int, error) {
	profile, _ := Lookup(ext)
	return FilterProfile(r, w, profile)
}

// FilterProfile is Filter with an explicit profile; nil copies verbatim.
func FilterProfile(r io.Reader, w io.Writer, profile *Profile) (int, error) {
	scanner := NewScanner(profile)
	reader := bufio.NewReader(r)
	written := 0

	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			if out, keep := scanner.Line(line); keep {
				if _, err := io.WriteString(w, out); err != nil {
					return written, fmt.Errorf("failed to write filtered line: %w", err)
				}
				written++
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return written, nil
			}
			return written, fmt.Errorf("failed to read line: %w", readErr)
		}
	}
}
