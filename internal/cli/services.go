package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/gethue/hue-probe/internal/catalog"
	"github.com/spf13/cobra"
)

func newServicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the registered service tests",
		Long: `List every registered test with its HTTP method, path template and the
substring its response must contain. Placeholders such as {DOAS} are
filled from the run's test options.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SERVICE\tTEST\tMETHOD\tPATH\tEXPECTED")
			for _, d := range catalog.Catalog() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ServiceKey(), d.Name, d.Method, d.PathTemplate, d.Expected)
			}
			return tw.Flush()
		},
	}
}
