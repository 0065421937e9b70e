package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buildstack/kiln/internal/ui"
	"github.com/buildstack/kiln/internal/ui/models/spinner"
	"github.com/buildstack/kiln/pkg/config"
	"github.com/buildstack/kiln/pkg/logging"
	"github.com/buildstack/kiln/pkg/manifest"
	"github.com/buildstack/kiln/pkg/pipeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var noHistory bool

func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Configure and build a CMake project",
		Long: `Configure and build a CMake project from its kiln.yml manifest.

The build process:

1. Resolves the cmake binary from the configured tool installations
2. Cleans and creates the build directory as configured
3. Runs cmake on the source directory (the generator phase)
4. Resolves the native build tool from CMakeCache.txt when needed
5. Runs every configured build-tool step in order, stopping on failure`,
		Example: `  # Build the project in the current directory
  kiln build

  # Build a project in a specific directory
  kiln build ./path/to/project

  # Stream raw tool output instead of the spinner
  kiln build --plain`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runBuild,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history store")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	return runPipeline(args, false)
}

// runPipeline drives a full or configure-only run, in either plain or
// spinner mode.
func runPipeline(args []string, configureOnly bool) error {
	absPath, err := resolveWorkspace(args)
	if err != nil {
		return err
	}

	m, err := Container.ProjectService().LoadManifest(absPath)
	if err != nil {
		ui.PrintError(err.Error())
		return err
	}

	cfg, err := loadGlobalConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws := pipeline.NewWorkspace(absPath)
	env := pipeline.NewEnvironment(os.Environ())
	started := time.Now()

	var report *pipeline.Report
	var runErr error

	if plainOutput {
		runner := Container.CreateRunner(cfg, logging.NewStdLogger(os.Stdout))
		if configureOnly {
			report, runErr = runner.Configure(ctx, ws, m, env)
		} else {
			report, runErr = runner.Run(ctx, ws, m, env)
		}
	} else {
		report, runErr = runWithSpinner(ctx, cfg, ws, m, env, configureOnly)
	}

	if !noHistory && !configureOnly {
		recordRun(absPath, started, report, runErr)
	}

	if runErr != nil {
		if plainOutput {
			fmt.Fprintln(os.Stderr, runErr.Error())
		}
		return runErr
	}

	displayRunResults(report, time.Since(started))
	return nil
}

// runWithSpinner buffers tool output behind an animated spinner and replays
// it when the run fails.
func runWithSpinner(ctx context.Context, cfg *config.Config, ws pipeline.Workspace,
	m *manifest.BuildManifest, env pipeline.Environment, configureOnly bool) (*pipeline.Report, error) {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var output bytes.Buffer
	runner := Container.CreateRunner(cfg, logging.NewStdLogger(&output))

	message := "Building..."
	if configureOnly {
		message = "Configuring..."
	}
	program := tea.NewProgram(spinner.NewModelWithMessage(message))

	var report *pipeline.Report
	var runErr error
	done := make(chan struct{})

	go func() {
		defer close(done)
		if configureOnly {
			report, runErr = runner.Configure(ctx, ws, m, env)
		} else {
			report, runErr = runner.Run(ctx, ws, m, env)
		}
		if runErr != nil {
			program.Send(spinner.ErrorMsg{Err: runErr})
			return
		}
		program.Send(spinner.ResultMsg{Result: report})
	}()

	model, err := program.Run()

	// The user may have quit the spinner before the pipeline finished. Stop
	// the pipeline and wait for it so report and runErr are settled.
	cancel()
	<-done

	if err != nil {
		return report, err
	}

	finalModel, ok := model.(spinner.Model)
	if !ok {
		return report, fmt.Errorf("unexpected model type: %T", model)
	}
	if finalModel.HasError() {
		// replay the captured tool output so the failure is diagnosable
		os.Stderr.Write(output.Bytes())
		return report, finalModel.GetError()
	}

	return report, runErr
}

func displayRunResults(report *pipeline.Report, elapsed time.Duration) {
	if report == nil {
		return
	}

	ui.PrintSuccess("Build finished successfully")
	fmt.Println()

	ui.PrintMetadata("Build dir ›", report.BuildDir)
	if report.BuildTool != "" {
		ui.PrintMetadata("Build tool ›", report.BuildTool)
	}
	fmt.Println()
	ui.PrintInfo("Steps", fmt.Sprintf("%d", len(report.Steps)))
	ui.PrintInfo("Build time", elapsed.Round(time.Millisecond).String())
}
