// Package report renders the plain-text feature summary artifact.
package report

import (
	"fmt"
	"strings"

	"github.com/featlens-dev/featlens/internal/fileutil"
)

// DefaultFileName matches the artifact the tool has always produced.
const DefaultFileName = "feature_summaries.txt"

const separatorWidth = 80

// Section is one summarized entry point in the report.
type Section struct {
	File    string
	Summary string
}

// Render formats sections as delimiter-headed blocks:
//
//	=== Feature Summary for <path> ===
//	<summary>
//	--------------------------------------------------------------------------------
func Render(sections []Section) []byte {
	var b strings.Builder
	separator := strings.Repeat("-", separatorWidth)
	for _, section := range sections {
		fmt.Fprintf(&b, "=== Feature Summary for %s ===\n", section.File)
		b.WriteString(fileutil.EnsureTrailingNewline(section.Summary))
		b.WriteString(separator)
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// Write renders the sections to path, leaving an unchanged file untouched.
func Write(path string, sections []Section) error {
	return fileutil.WriteIfChanged(path, Render(sections))
}
