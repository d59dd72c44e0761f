package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gethue/hue-probe/internal/probe"
	"github.com/gethue/hue-probe/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleRun() *runner.Run {
	return &runner.Run{
		ID:       "01J9ZQ3V5Y8X7W6T5S4R3Q2P1N",
		Started:  time.Date(2019, 8, 20, 11, 20, 0, 0, time.UTC),
		Services: "solr,rm",
		Results: []runner.TestResult{
			{
				Service:    "Solr",
				Test:       "JMX",
				Method:     "GET",
				URL:        "http://solr:8983/solr/jmx",
				Expected:   "solr.solrxml.location",
				Passed:     true,
				StatusCode: 200,
				Body:       `{"solr.solrxml.location":"/etc/solr"}`,
				Duration:   12 * time.Millisecond,
				Repro:      "curl -s -X GET http://solr:8983/solr/jmx",
			},
			{
				Service:    "RM",
				Test:       "CLUSTERINFO",
				Method:     "GET",
				URL:        "http://rm:8088/ws/v1/cluster/info",
				Expected:   `"clusterInfo"`,
				StatusCode: 200,
				Body:       `{"error":"unavailable"}`,
				Repro:      "curl -s -X GET http://rm:8088/ws/v1/cluster/info",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{" YAML ", FormatYAML, false},
		{"json", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextReporter_Default(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, NewText(&buf, Options{LogPath: "/var/log/hue/backend_test_curl.log"}).Report(sampleRun()))
	out := buf.String()

	assert.Contains(t, out, "Tests completed, view logs here: /var/log/hue/backend_test_curl.log\n")
	assert.Contains(t, out, "==> Report:\n")
	assert.Contains(t, out, "  TEST: Solr JMX"+strings.Repeat(" ", 8)+"Passed  solr.solrxml.location found in response\n")
	assert.Contains(t, out, `  TEST: RM CLUSTERINFO  Failed  "clusterInfo" not found in response`+"\n")
	assert.True(t, strings.HasSuffix(out, "1 passed, 1 failed\n"))

	assert.NotContains(t, out, "OS Repro Commands are:")
	assert.NotContains(t, out, "unavailable")
}

func TestTextReporter_ShowCurlAndResponse(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, NewText(&buf, Options{ShowCurl: true, ShowResponse: true}).Report(sampleRun()))
	out := buf.String()

	assert.Contains(t, out, "Tests completed\n")
	assert.Contains(t, out, "==> Response from RM CLUSTERINFO:\n{\"error\":\"unavailable\"}\n")
	assert.Contains(t, out, "==> OS Repro Commands are:\n  curl -s -X GET http://solr:8983/solr/jmx\n  curl -s -X GET http://rm:8088/ws/v1/cluster/info\n")
}

func TestTextReporter_TransportError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	run := &runner.Run{Results: []runner.TestResult{{
		Service:  "Oozie",
		Test:     "STATUS",
		Expected: `{"systemMode":"NORMAL"}`,
		Err:      &probe.Error{URL: "http://oozie:11000/oozie/v1/admin/status", Err: errors.New("connection refused")},
	}}}

	var buf bytes.Buffer
	require.NoError(t, NewText(&buf, Options{}).Report(run))
	assert.Contains(t, buf.String(), "TEST: Oozie STATUS  Failed  ")
	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), "0 passed, 1 failed")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestTextReporter_WriteError(t *testing.T) {
	err := NewText(failingWriter{}, Options{}).Report(sampleRun())
	assert.EqualError(t, err, "broken pipe")
}

func TestYAMLReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAML(&buf, Options{LogPath: "logs/backend_test_curl.log", ShowCurl: true}).Report(sampleRun()))

	var got yamlReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "01J9ZQ3V5Y8X7W6T5S4R3Q2P1N", got.RunID)
	assert.Equal(t, "2019-08-20T11:20:00Z", got.Started)
	assert.Equal(t, "solr,rm", got.Services)
	assert.Equal(t, "logs/backend_test_curl.log", got.LogFile)
	assert.Equal(t, 1, got.Passed)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Results, 2)

	assert.Equal(t, "Solr", got.Results[0].Service)
	assert.True(t, got.Results[0].Passed)
	assert.Equal(t, int64(12), got.Results[0].DurationMs)
	assert.Equal(t, "curl -s -X GET http://solr:8983/solr/jmx", got.Results[0].Repro)
	assert.Empty(t, got.Results[0].Response)
	assert.Equal(t, `"clusterInfo"`, got.Results[1].Expected)
	assert.False(t, got.Results[1].Passed)
}

func TestYAMLReporter_ErrorAndResponse(t *testing.T) {
	run := &runner.Run{ID: "r", Results: []runner.TestResult{{
		Service: "JHS",
		Test:    "FINISHED",
		Body:    "gateway timeout",
		Err:     &probe.Error{URL: "http://jhs:19888/ws", StatusCode: 504, Body: "gateway timeout"},
	}}}

	var buf bytes.Buffer
	require.NoError(t, NewYAML(&buf, Options{ShowResponse: true}).Report(run))

	var got yamlReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, 504, got.Results[0].StatusCode)
	assert.NotEmpty(t, got.Results[0].Error)
	assert.Equal(t, "gateway timeout", got.Results[0].Response)
	assert.Empty(t, got.Results[0].Repro)
	assert.Empty(t, got.Started)
}

func TestNew(t *testing.T) {
	rep, err := New(FormatYAML, &bytes.Buffer{}, Options{})
	require.NoError(t, err)
	assert.IsType(t, &YAMLReporter{}, rep)

	rep, err = New(FormatText, &bytes.Buffer{}, Options{})
	require.NoError(t, err)
	assert.IsType(t, &TextReporter{}, rep)

	_, err = New(Format("xml"), &bytes.Buffer{}, Options{})
	assert.Error(t, err)
}
