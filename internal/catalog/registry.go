package catalog

import (
	"strings"

	"github.com/gethue/hue-probe/internal/config"
)

// ServiceEndpoint is a resolved service base URL and its security mode.
type ServiceEndpoint struct {
	Name            string // Display name, e.g. "RM"
	BaseURL         string // Never ends in '/'
	SecurityEnabled bool
}

// EndpointSource resolves a service key to its configured endpoint.
// *config.Config satisfies it.
type EndpointSource interface {
	Service(name string) (config.ServiceConfig, bool)
}

// Registry is the immutable set of endpoints for the selected services.
type Registry struct {
	endpoints map[string]ServiceEndpoint
	order     []string
}

// NewRegistry resolves an endpoint for every service the selection touches.
// A selected service without a configured URL is a configuration error.
func NewRegistry(src EndpointSource, sel Selection) (*Registry, error) {
	r := &Registry{endpoints: make(map[string]ServiceEndpoint)}

	for _, d := range registered {
		key := d.ServiceKey()
		if !sel.Matches(d) {
			continue
		}
		if _, seen := r.endpoints[key]; seen {
			continue
		}

		svc, ok := src.Service(key)
		if !ok || strings.TrimSpace(svc.URL) == "" {
			return nil, configErrorf("Hue does not have %s configured, cannot test %s", d.Service, d.Service)
		}

		r.endpoints[key] = ServiceEndpoint{
			Name:            d.Service,
			BaseURL:         strings.TrimRight(strings.TrimSpace(svc.URL), "/"),
			SecurityEnabled: svc.SecurityEnabled,
		}
		r.order = append(r.order, key)
	}

	return r, nil
}

// Endpoint returns the endpoint for a service key.
func (r *Registry) Endpoint(serviceKey string) (ServiceEndpoint, bool) {
	ep, ok := r.endpoints[strings.ToLower(serviceKey)]
	return ep, ok
}

// Endpoints returns the resolved endpoints in registration order.
func (r *Registry) Endpoints() []ServiceEndpoint {
	out := make([]ServiceEndpoint, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.endpoints[key])
	}
	return out
}

// AnySecure reports whether any resolved endpoint needs SPNEGO.
func (r *Registry) AnySecure() bool {
	for _, ep := range r.endpoints {
		if ep.SecurityEnabled {
			return true
		}
	}
	return false
}

// PlannedTest is a registered test bound to its endpoint and expanded URL.
type PlannedTest struct {
	Definition TestDefinition
	Endpoint   ServiceEndpoint
	URL        string
}

// Plan expands every selected test against the registry, in registration
// order. All placeholders must resolve before anything runs.
func (r *Registry) Plan(sel Selection, opts Options) ([]PlannedTest, error) {
	var plan []PlannedTest
	for _, d := range registered {
		if !sel.Matches(d) {
			continue
		}
		ep, ok := r.Endpoint(d.ServiceKey())
		if !ok {
			return nil, configErrorf("%s is not a registered endpoint, cannot run %s", d.Service, d)
		}
		path, err := d.ExpandPath(opts)
		if err != nil {
			return nil, err
		}
		plan = append(plan, PlannedTest{
			Definition: d,
			Endpoint:   ep,
			URL:        ep.BaseURL + "/" + path,
		})
	}
	return plan, nil
}
