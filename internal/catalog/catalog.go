package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// TestDefinition is one registered probe: a path under a service's base URL,
// the method to call it with and the substring a healthy response contains.
type TestDefinition struct {
	Service      string // Display name, e.g. "Oozie"
	Name         string // Test name, e.g. "STATUS"
	PathTemplate string // Relative path with {PLACEHOLDER} tokens
	Method       string
	Expected     string // Matched verbatim against the response body

	// Defaults fill placeholders the run options don't provide.
	Defaults Options
}

// ServiceKey is the lower-case name used in --service.
func (d TestDefinition) ServiceKey() string {
	return strings.ToLower(d.Service)
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Placeholders returns the placeholder names in the path template, in order.
func (d TestDefinition) Placeholders() []string {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(d.PathTemplate, -1) {
		names = append(names, m[1])
	}
	return names
}

// ExpandPath substitutes every {NAME} token from opts, then from the test's
// own defaults. Unresolvable tokens are a configuration error.
func (d TestDefinition) ExpandPath(opts Options) (string, error) {
	var missing []string
	path := placeholderRe.ReplaceAllStringFunc(d.PathTemplate, func(tok string) string {
		name := tok[1 : len(tok)-1]
		if v, ok := opts.Lookup(name); ok {
			return v
		}
		if v, ok := d.Defaults.Lookup(name); ok {
			return v
		}
		missing = append(missing, name)
		return tok
	})
	if len(missing) > 0 {
		return "", configErrorf("%s %s: no value for %s (set it with --testoptions)",
			d.Service, d.Name, strings.Join(missing, ", "))
	}
	return path, nil
}

// registered is the built-in test catalog in registration order.
//
// Some entries look wrong but are kept as-is because changing them changes
// test outcomes: JOBLOG expects the STATUS body, USERHOME carries a literal
// %s, and FINISHED expects a stray leading quote.
var registered = []TestDefinition{
	{
		Service:      "Solr",
		Name:         "JMX",
		PathTemplate: "jmx",
		Method:       "GET",
		Expected:     "solr.solrxml.location",
	},
	{
		Service:      "Oozie",
		Name:         "STATUS",
		PathTemplate: "v1/admin/status?timezone={TIMEZONE}&user.name=hue&doAs={DOAS}",
		Method:       "GET",
		Expected:     `{"systemMode":"NORMAL"}`,
	},
	{
		Service:      "Oozie",
		Name:         "JOBLOG",
		PathTemplate: "v2/job/{OOZIE_ID}?timezone={TIMEZONE}&show=log&user.name=hue&logfilter=&doAs={DOAS}",
		Method:       "GET",
		Expected:     `{"systemMode":"NORMAL"}`,
		Defaults:     Options{"OOZIE_ID": "0000001-190820133637006-oozie-oozi-C"},
	},
	{
		Service:      "Httpfs",
		Name:         "USERHOME",
		PathTemplate: "user/{DOAS}?op=GETFILESTATUS&user.name=hue&DOAS=%s",
		Method:       "GET",
		Expected:     `"type":"DIRECTORY"`,
	},
	{
		Service:      "RM",
		Name:         "CLUSTERINFO",
		PathTemplate: "ws/v1/cluster/info",
		Method:       "GET",
		Expected:     `"clusterInfo"`,
	},
	{
		Service:      "JHS",
		Name:         "FINISHED",
		PathTemplate: "ws/v1/history/mapreduce/jobs?finishedTimeBegin={NOWLESSMIN}&finishedTimeEnd={NOW}",
		Method:       "GET",
		Expected:     `"{"jobs":"`,
	},
}

// Catalog returns a copy of the registered tests in registration order.
func Catalog() []TestDefinition {
	out := make([]TestDefinition, len(registered))
	copy(out, registered)
	return out
}

// Lookup finds a registered test by service key and test name (case-insensitive).
func Lookup(serviceKey, testName string) (TestDefinition, bool) {
	for _, d := range registered {
		if d.ServiceKey() == strings.ToLower(serviceKey) && strings.EqualFold(d.Name, testName) {
			return d, true
		}
	}
	return TestDefinition{}, false
}

// TestsFor returns the sorted test names registered for a service key.
func TestsFor(serviceKey string) []string {
	var names []string
	for _, d := range registered {
		if d.ServiceKey() == strings.ToLower(serviceKey) {
			names = append(names, d.Name)
		}
	}
	sort.Strings(names)
	return names
}

// String renders "Service TEST" for logs.
func (d TestDefinition) String() string {
	return fmt.Sprintf("%s %s", d.Service, d.Name)
}
