package util

import (
	"testing"
)

func TestShellQuote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple string",
			input:    "hello",
			expected: "'hello'",
		},
		{
			name:     "string with space",
			input:    "hello world",
			expected: "'hello world'",
		},
		{
			name:     "string with single quote",
			input:    "it's",
			expected: "'it'\\''s'",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "''",
		},
		{
			name:     "path with spaces",
			input:    "/path/to/my documents",
			expected: "'/path/to/my documents'",
		},
		{
			name:     "already quoted",
			input:    "'hello'",
			expected: "''\\''hello'\\'''",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShellQuote(tt.input)
			if result != tt.expected {
				t.Errorf("ShellQuote(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestShellEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain flag", input: "-s", expected: "-s"},
		{name: "colon", input: ":", expected: ":"},
		{name: "simple url", input: "http://solr:8983/solr/jmx", expected: "http://solr:8983/solr/jmx"},
		{name: "url with query", input: "http://oozie:11000/oozie/v1/admin/status?user.name=hue&doAs=admin", expected: "'http://oozie:11000/oozie/v1/admin/status?user.name=hue&doAs=admin'"},
		{name: "empty", input: "", expected: "''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShellEscape(tt.input)
			if result != tt.expected {
				t.Errorf("ShellEscape(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCommandLine(t *testing.T) {
	got := CommandLine("curl", "--negotiate", "-u", ":", "-s", "-X", "GET", "http://rm:8088/ws/v1/cluster/info?x=1")
	want := "curl --negotiate -u : -s -X GET 'http://rm:8088/ws/v1/cluster/info?x=1'"
	if got != want {
		t.Errorf("CommandLine() = %q, want %q", got, want)
	}
}
