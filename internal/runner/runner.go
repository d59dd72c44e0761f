package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gethue/hue-probe/internal/catalog"
	"github.com/gethue/hue-probe/internal/config"
	"github.com/gethue/hue-probe/internal/logging"
	"github.com/gethue/hue-probe/internal/probe"
	"github.com/oklog/ulid/v2"
)

// DefaultUsername is substituted for {DOAS} when --username is not given.
const DefaultUsername = "admin"

// Phase is the runner's position in Init → Configured → Executing → Reported.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseConfigured
	PhaseExecuting
	PhaseReported
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseConfigured:
		return "configured"
	case PhaseExecuting:
		return "executing"
	case PhaseReported:
		return "reported"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrPhase is returned when a step is called out of order.
var ErrPhase = errors.New("runner step called out of order")

// Prober sends one probe. *probe.Client implements it.
type Prober interface {
	Probe(ctx context.Context, req probe.Request) (*probe.Response, error)
	ReproCommand(req probe.Request) string
}

// Reporter consumes the results of a finished run.
type Reporter interface {
	Report(run *Run) error
}

// Params are the command-line inputs of a run.
type Params struct {
	Service      string // "all" or comma-separated service keys
	TestName     string // optional, requires a single service
	TestOptions  string // optional "KEY=value,..." replacing the defaults
	Username     string // {DOAS}
	ShowResponse bool   // keep and log full response bodies
}

// TestResult is the outcome of one probe.
type TestResult struct {
	Service    string
	Test       string
	Method     string
	URL        string
	Expected   string
	Passed     bool
	StatusCode int
	Body       string // only populated when responses were requested
	Err        error  // transport failure, nil on a plain assertion failure
	Duration   time.Duration
	Repro      string
}

// Run is everything the reporter needs about a finished run.
type Run struct {
	ID       string
	Started  time.Time
	Services string
	Options  catalog.Options
	Results  []TestResult
}

// Counts returns the number of passed and failed tests.
func (r *Run) Counts() (passed, failed int) {
	for _, res := range r.Results {
		if res.Passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Option customizes a Runner.
type Option func(*Runner)

// WithClock overrides the time source used for NOW/NOWLESSMIN.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithRunID fixes the run identifier instead of generating a ULID.
func WithRunID(id string) Option {
	return func(r *Runner) { r.runID = id }
}

// Runner drives one health-check pass. Tests run sequentially in
// registration order, each exactly once.
type Runner struct {
	cfg   *config.Config
	log   *logging.Logger
	now   func() time.Time
	runID string
	phase Phase

	started  time.Time
	params   Params
	sel      catalog.Selection
	registry *catalog.Registry
	options  catalog.Options
	plan     []catalog.PlannedTest
	results  []TestResult
}

// New creates a runner in the Init phase.
func New(cfg *config.Config, log *logging.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.runID == "" {
		r.runID = ulid.MustNew(ulid.Timestamp(r.now()), ulid.DefaultEntropy()).String()
	}
	if log == nil {
		log = logging.Discard()
	}
	r.log = log.WithComponent("runner").WithRun(r.runID)
	return r
}

// ID returns the run identifier attached to every log record.
func (r *Runner) ID() string {
	return r.runID
}

// Phase returns the current phase.
func (r *Runner) Phase() Phase {
	return r.phase
}

// Registry returns the resolved endpoints once configured.
func (r *Runner) Registry() *catalog.Registry {
	return r.registry
}

// Plan returns the expanded tests once configured.
func (r *Runner) Plan() []catalog.PlannedTest {
	return r.plan
}

// Configure validates the selection, builds the test options and the
// endpoint registry, and expands every selected test. Any failure is a
// catalog.ErrConfiguration and leaves the runner in Init.
func (r *Runner) Configure(p Params) error {
	if err := r.expect(PhaseInit); err != nil {
		return err
	}
	if strings.TrimSpace(p.Username) == "" {
		p.Username = DefaultUsername
	}

	sel, err := catalog.ParseSelection(p.Service, p.TestName)
	if err != nil {
		return r.fail(err)
	}

	r.started = r.now()
	defaults := catalog.DefaultOptions(r.cfg.TimeZone, p.Username, r.started)
	var overrides catalog.Options
	if strings.TrimSpace(p.TestOptions) != "" {
		if overrides, err = catalog.ParseOptions(p.TestOptions); err != nil {
			return r.fail(err)
		}
	}
	opts := catalog.ResolveOptions(defaults, overrides)

	reg, err := catalog.NewRegistry(r.cfg, sel)
	if err != nil {
		return r.fail(err)
	}
	plan, err := reg.Plan(sel, opts)
	if err != nil {
		return r.fail(err)
	}

	r.params = p
	r.sel = sel
	r.options = opts
	r.registry = reg
	r.plan = plan
	r.phase = PhaseConfigured

	r.log.Info("Running REST API Tests on Services",
		"services", sel.String(),
		"tests", len(plan),
		"options", strings.Join(opts.Keys(), ","),
		"now", r.started.UnixMilli())
	return nil
}

// Execute runs every planned test through prober. Transport failures mark
// the test failed and the run moves on.
func (r *Runner) Execute(ctx context.Context, prober Prober) ([]TestResult, error) {
	if err := r.expect(PhaseConfigured); err != nil {
		return nil, err
	}
	r.phase = PhaseExecuting

	for _, pt := range r.plan {
		r.results = append(r.results, r.runOne(ctx, prober, pt))
	}

	return r.results, nil
}

func (r *Runner) runOne(ctx context.Context, prober Prober, pt catalog.PlannedTest) TestResult {
	def := pt.Definition
	log := r.log.WithTest(def.Service, def.Name)
	log.Info("Running test")

	req := probe.Request{
		URL:    pt.URL,
		Method: def.Method,
		Secure: pt.Endpoint.SecurityEnabled,
	}
	res := TestResult{
		Service:  def.Service,
		Test:     def.Name,
		Method:   def.Method,
		URL:      pt.URL,
		Expected: def.Expected,
		Repro:    prober.ReproCommand(req),
	}

	var body string
	resp, err := prober.Probe(ctx, req)
	if err != nil {
		res.Err = err
		var perr *probe.Error
		if errors.As(err, &perr) {
			res.StatusCode = perr.StatusCode
			body = perr.Body
		}
		log.Warn("TEST", "result", "Failed", "error", err)
	} else {
		res.StatusCode = resp.StatusCode
		res.Duration = resp.Duration
		body = resp.Body
		res.Passed = strings.Contains(body, def.Expected)
		if res.Passed {
			log.Info("TEST", "result", "Passed", "expected", def.Expected, "detail", "found in response")
		} else {
			log.Warn("TEST", "result", "Failed", "expected", def.Expected, "detail", "not found in response")
		}
	}

	if r.params.ShowResponse {
		res.Body = body
		log.Info("TEST", "response", body)
	}
	return res
}

// Report hands the accumulated results to rep.
func (r *Runner) Report(rep Reporter) error {
	if err := r.expect(PhaseExecuting); err != nil {
		return err
	}
	run := &Run{
		ID:       r.runID,
		Started:  r.started,
		Services: r.sel.String(),
		Options:  r.options,
		Results:  r.results,
	}
	if err := rep.Report(run); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	r.phase = PhaseReported

	passed, failed := run.Counts()
	r.log.Info("Tests completed", "passed", passed, "failed", failed)
	return nil
}

func (r *Runner) expect(p Phase) error {
	if r.phase != p {
		return fmt.Errorf("%w: in %s, need %s", ErrPhase, r.phase, p)
	}
	return nil
}

func (r *Runner) fail(err error) error {
	r.log.Error("configuration error", "error", err)
	return err
}
