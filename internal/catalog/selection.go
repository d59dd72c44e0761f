package catalog

import (
	"slices"
	"strings"
)

// AllServices selects every registered service.
const AllServices = "all"

// SupportedServices are the values accepted by --service.
var SupportedServices = []string{AllServices, "httpfs", "solr", "oozie", "rm", "jhs", "sparkhs"}

// unsupportedServices are accepted by the parser but cannot be tested yet.
var unsupportedServices = map[string]string{
	"sparkhs": "Spark History Server",
}

// Selection is a validated --service/--testname pair.
type Selection struct {
	All      bool
	Services []string // lower-case keys in request order, deduplicated
	TestName string
}

// ParseSelection validates the service filter and optional test name.
func ParseSelection(service, testName string) (Selection, error) {
	var requested []string
	for _, name := range strings.Split(service, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" && !slices.Contains(requested, name) {
			requested = append(requested, name)
		}
	}

	supported := 0
	var unknown []string
	for _, name := range requested {
		if slices.Contains(SupportedServices, name) {
			supported++
		} else {
			unknown = append(unknown, name)
		}
	}
	if supported == 0 {
		return Selection{}, configErrorf("service list %q does not contain a supported service (supported: %s; format: httpfs,solr,oozie)",
			service, strings.Join(SupportedServices, ", "))
	}
	if len(unknown) > 0 {
		return Selection{}, configErrorf("service list %q contains unsupported service(s) %s (supported: %s)",
			service, strings.Join(unknown, ", "), strings.Join(SupportedServices, ", "))
	}

	sel := Selection{
		All:      slices.Contains(requested, AllServices),
		TestName: strings.TrimSpace(testName),
	}
	for _, name := range requested {
		if name != AllServices {
			sel.Services = append(sel.Services, name)
		}
	}

	if sel.TestName != "" {
		if sel.All || len(sel.Services) != 1 {
			return Selection{}, configErrorf("--testname requires exactly one service and must not be used with %q", AllServices)
		}
	}

	for _, name := range sel.Services {
		if label, ok := unsupportedServices[name]; ok {
			return Selection{}, configErrorf("%s (%s) is not supported yet", label, name)
		}
	}

	if sel.TestName != "" {
		svc := sel.Services[0]
		def, ok := Lookup(svc, sel.TestName)
		if !ok {
			return Selection{}, configErrorf("--testname %s not found for service %s (allowed: %s)",
				sel.TestName, svc, strings.Join(TestsFor(svc), ", "))
		}
		sel.TestName = def.Name
	}

	return sel, nil
}

// Includes reports whether the selection covers the service key.
func (s Selection) Includes(serviceKey string) bool {
	return s.All || slices.Contains(s.Services, strings.ToLower(serviceKey))
}

// Matches reports whether a registered test is part of the selection.
func (s Selection) Matches(d TestDefinition) bool {
	if !s.Includes(d.ServiceKey()) {
		return false
	}
	return s.TestName == "" || strings.EqualFold(s.TestName, d.Name)
}

// String renders the selection the way it would be passed to --service.
func (s Selection) String() string {
	if s.All {
		return AllServices
	}
	return strings.Join(s.Services, ",")
}
