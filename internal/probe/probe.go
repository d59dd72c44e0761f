package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gethue/hue-probe/internal/logging"
	"github.com/gethue/hue-probe/internal/util"
	"github.com/go-resty/resty/v2"
)

// Request is a single probe: one HTTP call against a fully expanded URL.
type Request struct {
	URL    string
	Method string
	Secure bool // attach SPNEGO negotiation
}

// Response is what came back from a successful (2xx) probe.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
}

// Error is a transport failure: the request could not be sent, or the
// server answered with a non-2xx status. Body holds whatever was read.
type Error struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probe %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("probe %s failed: HTTP %d", e.URL, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Negotiator attaches authentication to an outgoing request.
type Negotiator interface {
	SetHeader(r *http.Request) error
}

// Options configure a Client.
type Options struct {
	Timeout            time.Duration
	InsecureSkipVerify bool
	Verbose            bool
	// Negotiator is required for Secure requests.
	Negotiator Negotiator
}

// Client issues probes through resty.
type Client struct {
	opts   Options
	log    *logging.Logger
	plain  *resty.Client
	secure *resty.Client
}

// New builds a probe client. TLS verification stays on unless
// InsecureSkipVerify is set.
func New(opts Options, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Discard()
	}
	c := &Client{
		opts: opts,
		log:  log.WithComponent("probe"),
	}
	c.plain = c.newResty(nil)
	if opts.Negotiator != nil {
		c.secure = c.newResty(opts.Negotiator)
	}
	return c
}

func (c *Client) newResty(neg Negotiator) *resty.Client {
	rc := resty.New().
		SetRedirectPolicy(resty.NoRedirectPolicy()).
		SetLogger(restyLogger{log: c.log}).
		SetDebug(c.opts.Verbose)
	if c.opts.Timeout > 0 {
		rc.SetTimeout(c.opts.Timeout)
	}
	rc.SetTLSClientConfig(&tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: c.opts.InsecureSkipVerify, //nolint:gosec // explicit opt-out
	})
	if neg != nil {
		rc.SetPreRequestHook(func(_ *resty.Client, r *http.Request) error {
			return neg.SetHeader(r)
		})
	}
	return rc
}

// Probe sends req once. No retries.
func (c *Client) Probe(ctx context.Context, req Request) (*Response, error) {
	target := escapeStrayPercent(req.URL)
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	rc := c.plain
	if req.Secure {
		if c.secure == nil {
			return nil, &Error{URL: target, Err: fmt.Errorf("SPNEGO requested but no Kerberos credentials are loaded")}
		}
		rc = c.secure
	}

	log := c.log.WithRequest(method, target)
	log.Info("OSRUN", "cmd", c.ReproCommand(req))

	start := time.Now()
	resp, err := rc.R().SetContext(ctx).Execute(method, target)
	elapsed := time.Since(start)
	if err != nil {
		perr := &Error{URL: target, Err: err}
		if resp != nil && resp.RawResponse != nil {
			perr.StatusCode = resp.StatusCode()
			perr.Body = string(resp.Body())
		}
		return nil, perr
	}

	if !resp.IsSuccess() {
		return nil, &Error{URL: target, StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	log.Debug("probe finished", "status", resp.StatusCode(), "duration", elapsed)
	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       string(resp.Body()),
		Duration:   elapsed,
	}, nil
}

// ReproCommand renders the curl command that reproduces req by hand.
func (c *Client) ReproCommand(req Request) string {
	args := []string{"curl"}
	if c.opts.InsecureSkipVerify {
		args = append(args, "-k")
	}
	if req.Secure {
		args = append(args, "--negotiate", "-u", ":")
	}
	if c.opts.Verbose {
		args = append(args, "-v")
	} else {
		args = append(args, "-s")
	}
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}
	args = append(args, "-X", method, escapeStrayPercent(req.URL))
	return util.CommandLine(args...)
}

// escapeStrayPercent encodes '%' signs that don't start a valid escape, so
// URLs like "...&DOAS=%s" can still be parsed and sent.
func escapeStrayPercent(raw string) string {
	if !strings.Contains(raw, "%") {
		return raw
	}
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '%' && (i+2 >= len(raw) || !isHex(raw[i+1]) || !isHex(raw[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// restyLogger routes resty's debug tracing into the structured log.
type restyLogger struct {
	log *logging.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
