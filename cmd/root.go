package cmd

import (
	"os"

	globalConfig "github.com/buildstack/kiln/internal/config"
	"github.com/buildstack/kiln/internal/di"
	"github.com/buildstack/kiln/internal/ui"
	"github.com/buildstack/kiln/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Global flags
var plainOutput bool

var rootCmd = &cobra.Command{
	Use:   "kiln",
	Short: "Kiln CMake pipeline runner",
	Long: `Kiln drives cmake-based builds from a declarative manifest.

A kiln.yml manifest describes one generator invocation (cmake) and an ordered
list of build-tool steps (make, ninja, or 'cmake --build'). Kiln configures
the build tree, resolves the build tool from the generated cache, then runs
every step in order, stopping at the first failure.`,
	Example: `  # Initialize a new project manifest
  kiln init

  # Configure and build per kiln.yml
  kiln build

  # Configure only
  kiln configure

  # Inspect the generated cache
  kiln cache get CMAKE_MAKE_PROGRAM

  # Rebuild whenever the source tree changes
  kiln watch

  # Show previous runs
  kiln history list`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return
		}

		// Check if any command in the hierarchy has a plain flag set to true
		cmd.Flags().Visit(func(f *pflag.Flag) {
			if f.Name == "plain" && f.Value.String() == "true" {
				plainOutput = true
			}
		})

		if !plainOutput && !ui.IsCI() {
			ui.PrintLogo()
		}
	},
}

// Container holds the dependency injection container.
var Container = di.NewContainer()

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalConfig.ConfigPath, "config", "c", config.DefaultConfigPath, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Disable spinners and banners, stream raw output")

	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewConfigureCommand())
	rootCmd.AddCommand(NewCacheCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewToolsCommand())
	rootCmd.AddCommand(NewWatchCommand())
}

// loadGlobalConfig loads the kiln configuration honoring the --config flag.
func loadGlobalConfig() (*config.Config, error) {
	return config.LoadConfig(globalConfig.ConfigPath)
}
