package summarize

import (
	"log/slog"
	"os"
	"strings"
)

const systemPrompt = "You are a helpful AI that summarizes code."

const promptHeader = `You are given several TypeScript/TSX files from a web application.
Please describe the feature they collectively implement, including:
- The main functionality
- Any important components
- How they work together

Here are the files:
`

// Section is one labeled file body included in the prompt.
type Section struct {
	Path    string
	Content string
}

// ReadSections loads file contents for the prompt. Files that cannot be
// read are logged and skipped; they never fail the summary.
func ReadSections(paths []string, log *slog.Logger) []Section {
	if log == nil {
		log = slog.Default()
	}

	sections := make([]Section, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Warn("skipping unreadable file in summary", "path", path, "error", err)
			continue
		}
		if len(content) == 0 {
			continue
		}
		sections = append(sections, Section{Path: path, Content: string(content)})
	}
	return sections
}

// BuildPrompt concatenates labeled file sections under the fixed request
// template.
func BuildPrompt(sections []Section) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	for _, section := range sections {
		b.WriteString("--- FILE: ")
		b.WriteString(section.Path)
		b.WriteString("\n")
		b.WriteString(section.Content)
		if !strings.HasSuffix(section.Content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
