package cmd

import (
	"github.com/spf13/cobra"
)

func NewConfigureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "configure [path]",
		Short: "Run only the cmake generator phase",
		Long: `Run only the generator phase of the pipeline: prepare the build
directory and invoke cmake on the source tree. No build-tool steps run.`,
		Example: `  # Configure the project in the current directory
  kiln configure

  # Configure a project elsewhere
  kiln configure ./path/to/project`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(args, true)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}
