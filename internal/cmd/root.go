// Package cmd implements the splash command line.
package cmd

import (
	"strings"

	cmdconfig "github.com/Iron-Ham/splash/internal/cmd/config"
	"github.com/Iron-Ham/splash/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "splash",
	Short: "Terminal welcome sequence",
	Long: `Splash plays a welcome sequence in the terminal: a button fades in over a
looping background, activating it zooms into the scene, and the sequence
ends on a black screen with a line of text.

Running splash without a subcommand is the same as 'splash start'.`,
	Args:         cobra.NoArgs,
	RunE:         runStart,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/splash/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	cmdconfig.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/splash")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SPLASH")
	// e.g., SPLASH_TIMING_ZOOM_DELAY_MS for timing.zoom_delay_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
