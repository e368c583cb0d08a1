// Command ls-astro converts sky positions between the frames used to point a
// radio telescope and reports when sources rise and set.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/ls-astro/internal/config"
	"github.com/litescript/ls-astro/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Each call gets its own app state.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "ls-astro",
		Short:         "Radio telescope coordinate conversions",
		Long:          "ls-astro converts positions between XY, AzEl, HADec, Date, J2000, B1950 and Galactic frames, resolves source names and reports rise and set times for telescope sites.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			initConfig(cfgFile)
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default .ls-astro.toml)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringP("location", "l", config.DefaultLocation, "telescope location")
	flags.String("sites-file", "", "TOML catalogue of extra telescope sites")
	flags.String("resolver-url", "", "base URL of the source name resolver")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address")
	flags.Bool("json", false, "write JSON instead of tables")
	flags.Bool("no-color", false, "disable styled output")

	for key, flag := range map[string]string{
		"log_level":    "log-level",
		"location":     "location",
		"sites_file":   "sites-file",
		"resolver.url": "resolver-url",
		"metrics.addr": "metrics-addr",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newConvertCmd(a),
		newLMSTCmd(a),
		newSitesCmd(a),
		newResolveCmd(a),
		newRiseSetCmd(a),
		newSunCmd(a),
		newTrackCmd(a),
	)
	return root
}

// initConfig points viper at the config file and the LSASTRO_ environment.
func initConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".ls-astro")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
