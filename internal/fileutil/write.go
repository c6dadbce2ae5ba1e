// Package fileutil holds small filesystem helpers shared by the report
// writer.
package fileutil

import (
	"bytes"
	"os"
	"strings"
)

// WriteIfChanged writes data to path unless the file already holds exactly
// that content, keeping mtimes stable across repeated runs.
func WriteIfChanged(path string, data []byte) error {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func EnsureTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
