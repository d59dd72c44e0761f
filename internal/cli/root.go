package cli

import (
	"github.com/gethue/hue-probe/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global paths instance
	paths *config.Paths

	// flagConfig resolves --config, falling back to HUE_PROBE_CONFIG
	flagConfig = viper.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hue-probe",
	Short: "Health-check the REST services a Hue installation depends on",
	Long: `hue-probe: health-check the backend services Hue talks to.

Sends one REST call per registered test to Solr, Oozie, HTTPFS, the YARN
ResourceManager and the MapReduce JobHistoryServer, and reports whether
each response contains the expected content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.hue-probe/config.yaml, env HUE_PROBE_CONFIG)")
	_ = flagConfig.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = flagConfig.BindEnv("config", config.EnvPrefix+"_CONFIG")

	rootCmd.AddCommand(newBackendTestCmd(getConfig))
	rootCmd.AddCommand(newServicesCmd())
	rootCmd.AddCommand(newDoctorCmd(getConfig))
}

// initConfig sets up the default paths.
func initConfig() {
	paths = config.NewPaths(config.DefaultBaseDir())
}

// getPaths returns the global paths instance
func getPaths() *config.Paths {
	if paths == nil {
		initConfig()
	}
	return paths
}

// getConfig loads the config named by --config / HUE_PROBE_CONFIG, or the
// default file when neither is set. It is passed to subcommands as a getter.
func getConfig() (*config.Config, error) {
	if path := flagConfig.GetString("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadDefault(getPaths())
}
