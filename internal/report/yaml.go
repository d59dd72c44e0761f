package report

import (
	"errors"
	"io"
	"time"

	"github.com/gethue/hue-probe/internal/probe"
	"github.com/gethue/hue-probe/internal/runner"
	"gopkg.in/yaml.v3"
)

type yamlReport struct {
	RunID    string       `yaml:"run_id"`
	Started  string       `yaml:"started,omitempty"`
	Services string       `yaml:"services"`
	LogFile  string       `yaml:"log_file,omitempty"`
	Passed   int          `yaml:"passed"`
	Failed   int          `yaml:"failed"`
	Results  []yamlResult `yaml:"results"`
}

type yamlResult struct {
	Service    string `yaml:"service"`
	Test       string `yaml:"test"`
	Method     string `yaml:"method"`
	URL        string `yaml:"url"`
	Expected   string `yaml:"expected"`
	Passed     bool   `yaml:"passed"`
	StatusCode int    `yaml:"status_code,omitempty"`
	DurationMs int64  `yaml:"duration_ms"`
	Error      string `yaml:"error,omitempty"`
	Response   string `yaml:"response,omitempty"`
	Repro      string `yaml:"repro,omitempty"`
}

// YAMLReporter marshals the run for machine consumption.
type YAMLReporter struct {
	w    io.Writer
	opts Options
}

// NewYAML creates a YAML reporter.
func NewYAML(w io.Writer, opts Options) *YAMLReporter {
	return &YAMLReporter{w: w, opts: opts}
}

// Report encodes run as a single YAML document.
func (y *YAMLReporter) Report(run *runner.Run) error {
	passed, failed := run.Counts()
	doc := yamlReport{
		RunID:    run.ID,
		Services: run.Services,
		LogFile:  y.opts.LogPath,
		Passed:   passed,
		Failed:   failed,
		Results:  make([]yamlResult, 0, len(run.Results)),
	}
	if !run.Started.IsZero() {
		doc.Started = run.Started.UTC().Format(time.RFC3339)
	}

	for _, res := range run.Results {
		out := yamlResult{
			Service:    res.Service,
			Test:       res.Test,
			Method:     res.Method,
			URL:        res.URL,
			Expected:   res.Expected,
			Passed:     res.Passed,
			StatusCode: res.StatusCode,
			DurationMs: res.Duration.Milliseconds(),
		}
		if res.Err != nil {
			out.Error = res.Err.Error()
			var perr *probe.Error
			if out.StatusCode == 0 && errors.As(res.Err, &perr) {
				out.StatusCode = perr.StatusCode
			}
		}
		if y.opts.ShowResponse {
			out.Response = res.Body
		}
		if y.opts.ShowCurl {
			out.Repro = res.Repro
		}
		doc.Results = append(doc.Results, out)
	}

	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
