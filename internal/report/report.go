// Package report renders the results of a finished probe run.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gethue/hue-probe/internal/runner"
	"github.com/gethue/hue-probe/internal/util"
)

// Format selects the report renderer.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, yaml)", s)
	}
}

// Options control what goes into a report.
type Options struct {
	LogPath      string // log file mentioned in the header
	ShowCurl     bool   // list the OS repro commands
	ShowResponse bool   // include raw response bodies
}

// New returns the reporter for format writing to w.
func New(format Format, w io.Writer, opts Options) (runner.Reporter, error) {
	switch format {
	case FormatText, "":
		return NewText(w, opts), nil
	case FormatYAML:
		return NewYAML(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// TextReporter prints the human-readable report.
type TextReporter struct {
	w    io.Writer
	opts Options
}

// NewText creates a text reporter.
func NewText(w io.Writer, opts Options) *TextReporter {
	return &TextReporter{w: w, opts: opts}
}

// Report writes the whole report in a single write.
func (t *TextReporter) Report(run *runner.Run) error {
	var buf bytes.Buffer

	if t.opts.LogPath != "" {
		fmt.Fprintf(&buf, "Tests completed, view logs here: %s\n", t.opts.LogPath)
	} else {
		fmt.Fprintln(&buf, "Tests completed")
	}
	util.Section(&buf, "Report:")

	rows := make([]util.StatusTableRow, 0, len(run.Results))
	for _, res := range run.Results {
		rows = append(rows, statusRow(res))
	}
	util.StatusTable(&buf, rows)

	if t.opts.ShowResponse {
		for _, res := range run.Results {
			if res.Body == "" {
				continue
			}
			fmt.Fprintln(&buf)
			util.Section(&buf, "Response from %s %s:", res.Service, res.Test)
			fmt.Fprintln(&buf, strings.TrimRight(res.Body, "\n"))
		}
	}

	if t.opts.ShowCurl {
		fmt.Fprintln(&buf)
		util.Section(&buf, "OS Repro Commands are:")
		for _, res := range run.Results {
			fmt.Fprintf(&buf, "  %s\n", res.Repro)
		}
	}

	passed, failed := run.Counts()
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "%d passed, %d failed\n", passed, failed)

	_, err := t.w.Write(buf.Bytes())
	return err
}

func statusRow(res runner.TestResult) util.StatusTableRow {
	row := util.StatusTableRow{
		Name: fmt.Sprintf("TEST: %s %s", res.Service, res.Test),
		Ok:   res.Passed,
	}
	switch {
	case res.Passed:
		row.Status = "Passed"
		row.Detail = res.Expected + " found in response"
	case res.Err != nil:
		row.Status = "Failed"
		row.Detail = res.Err.Error()
	default:
		row.Status = "Failed"
		row.Detail = res.Expected + " not found in response"
	}
	return row
}
