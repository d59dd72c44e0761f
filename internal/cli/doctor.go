package cli

import (
	"fmt"

	"github.com/gethue/hue-probe/internal/env"
	"github.com/gethue/hue-probe/internal/util"
	"github.com/spf13/cobra"
)

func newDoctorCmd(getConfig ConfigGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the config and Kerberos material a backend test needs",
		Long: `Check that the config file was found, that service URLs are valid, and
that a credential cache and krb5.conf exist when any service is
security enabled.

Examples:
  hue-probe doctor
  hue-probe --config /etc/hue/hue-probe.yaml doctor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}

			result := env.RunDoctor(cfg)
			result.Print(cmd.OutOrStdout())

			if code := result.ExitCode(); code != 0 {
				return fmt.Errorf("doctor found %d required check(s) failing", countFailures(result))
			}
			util.Success("All required checks passed")
			return nil
		},
	}
}

func countFailures(result *env.DoctorResult) int {
	n := 0
	for _, c := range result.Checks {
		if c.Required && !c.Ok {
			n++
		}
	}
	return n
}
