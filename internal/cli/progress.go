package cli

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// progressReporter prints a single updating status line to stderr while a
// batch runs. Disabled when stderr is not a terminal or JSON output was
// requested.
type progressReporter struct {
	enabled bool
	label   string
	verb    string
	total   int
	start   time.Time
	spinner int
	lastLen int
}

func newProgressReporter(label, verb string, total int, asJSON bool) *progressReporter {
	stat, err := os.Stderr.Stat()
	enabled := err == nil && (stat.Mode()&os.ModeCharDevice) != 0 && !asJSON
	return &progressReporter{
		enabled: enabled,
		label:   label,
		verb:    verb,
		total:   total,
		start:   time.Now(),
	}
}

func (r *progressReporter) Update(file string, count int) {
	if !r.enabled {
		return
	}
	frames := [4]string{"-", "\\", "|", "/"}
	frame := frames[r.spinner%len(frames)]
	r.spinner++
	file = strings.TrimSpace(file)
	if len(file) > 88 {
		file = "..." + file[len(file)-85:]
	}

	status := fmt.Sprintf("%s %s %d %s %s", frame, r.label, count, r.verb, file)
	if r.total > 0 {
		status = fmt.Sprintf("%s %s %d/%d %s %s", frame, r.label, count, r.total, r.verb, file)
	}
	r.printStatus(status)
}

func (r *progressReporter) Done(count int) {
	if !r.enabled {
		return
	}
	elapsed := time.Since(r.start).Round(time.Millisecond)
	r.printStatus(fmt.Sprintf("%s complete (%d files in %s)", r.label, count, elapsed))
	fmt.Fprintln(os.Stderr)
}

func (r *progressReporter) printStatus(status string) {
	if r.lastLen > len(status) {
		status = status + strings.Repeat(" ", r.lastLen-len(status))
	}
	r.lastLen = len(status)
	fmt.Fprintf(os.Stderr, "\r%s", status)
}
