package cli

import (
	"context"
	"io"

	"github.com/gethue/hue-probe/internal/config"
	"github.com/gethue/hue-probe/internal/env"
	"github.com/gethue/hue-probe/internal/logging"
	"github.com/gethue/hue-probe/internal/probe"
	"github.com/gethue/hue-probe/internal/report"
	"github.com/gethue/hue-probe/internal/runner"
	"github.com/gethue/hue-probe/internal/util"
	"github.com/spf13/cobra"
)

// ConfigGetter loads the configuration for a command.
type ConfigGetter func() (*config.Config, error)

type backendTestFlags struct {
	service      string
	testName     string
	testOptions  string
	username     string
	output       string
	showCurl     bool
	showResponse bool
	verbose      bool
	insecure     bool
}

func newBackendTestCmd(getConfig ConfigGetter) *cobra.Command {
	flags := &backendTestFlags{}

	cmd := &cobra.Command{
		Use:   "backend-test",
		Short: "Run REST health checks against Hue's backend services",
		Long: `Run one REST call per registered test against each selected service and
report whether the response contains the expected content.

Failed tests are reported but do not change the exit status. Configuration
problems (unknown service, unconfigured URL, bad --testoptions, missing
Kerberos material) exit 1 before anything is probed.

Examples:
  hue-probe backend-test
  hue-probe backend-test --service solr,oozie --showcurl
  hue-probe backend-test --service oozie --testname JOBLOG --testoptions "OOZIE_ID=0000004-190820133637006-oozie-oozi-W,TIME_ZONE=UTC,DOAS=hue"
  hue-probe backend-test --service jhs --response --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackendTest(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), getConfig, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.service, "service", "all", "all or a comma-separated list of httpfs,solr,oozie,rm,jhs")
	f.StringVar(&flags.testName, "testname", "", "run only this test (requires a single --service)")
	f.StringVar(&flags.testOptions, "testoptions", "", `replace the default test options, e.g. "NOW=1000,DOAS=alice"`)
	f.StringVar(&flags.username, "username", runner.DefaultUsername, "user substituted for {DOAS}")
	f.StringVar(&flags.output, "output", string(report.FormatText), "report format: text or yaml")
	f.BoolVar(&flags.showCurl, "showcurl", false, "list the equivalent curl commands")
	f.BoolVar(&flags.showResponse, "response", false, "include full response bodies")
	f.BoolVar(&flags.verbose, "verbose", false, "debug logging and HTTP request/response tracing")
	f.BoolVar(&flags.insecure, "insecure", false, "skip TLS certificate verification")

	return cmd
}

func runBackendTest(ctx context.Context, out, errOut io.Writer, getConfig ConfigGetter, flags *backendTestFlags) error {
	format, err := report.ParseFormat(flags.output)
	if err != nil {
		return err
	}

	cfg, err := getConfig()
	if err != nil {
		return err
	}

	level := logging.LogLevelInfo
	if flags.verbose {
		level = logging.LogLevelDebug
	}
	log, logPath, closeLog, err := logging.NewRunLogger(level, cfg.LogDir, errOut)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	r := runner.New(cfg, log)
	log = log.WithRun(r.ID())
	if err := r.Configure(runner.Params{
		Service:      flags.service,
		TestName:     flags.testName,
		TestOptions:  flags.testOptions,
		Username:     flags.username,
		ShowResponse: flags.showResponse,
	}); err != nil {
		return err
	}

	popts := probe.Options{
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify || flags.insecure,
		Verbose:            flags.verbose,
	}
	if popts.InsecureSkipVerify {
		util.Warn("TLS certificate verification is disabled")
	}
	if r.Registry().AnySecure() {
		krb := env.DetectKerberos(cfg)
		neg, err := probe.NewKerberosNegotiator(krb.Krb5Conf, krb.CCache)
		if err != nil {
			log.Error("kerberos setup failed", "error", err)
			return err
		}
		defer neg.Close()
		util.Log("Using Kerberos credential cache %s", krb.CCache)
		popts.Negotiator = neg
	}

	if _, err := r.Execute(ctx, probe.New(popts, log)); err != nil {
		return err
	}

	rep, err := report.New(format, out, report.Options{
		LogPath:      logPath,
		ShowCurl:     flags.showCurl,
		ShowResponse: flags.showResponse,
	})
	if err != nil {
		return err
	}
	return r.Report(rep)
}
