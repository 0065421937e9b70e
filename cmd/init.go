package cmd

import (
	"fmt"

	"github.com/buildstack/kiln/internal/services"
	"github.com/buildstack/kiln/internal/ui"
	"github.com/buildstack/kiln/internal/ui/operations"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	initGenerator string
	initBuildType string
	initTemplate  string
)

func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Initialize a new kiln project",
		Long: `Create a kiln.yml manifest in the given directory (default: the
current directory). With --template, a project skeleton is cloned from a git
repository first.`,
		Example: `  # Scaffold a manifest interactively
  kiln init

  # Scaffold without prompts
  kiln init --generator Ninja --build-type Debug

  # Start from a template repository
  kiln init my-project --template https://github.com/user/cmake-starter`,
		Args: cobra.MaximumNArgs(1),
		RunE: projectInit,
	}

	cmd.Flags().StringVarP(&initGenerator, "generator", "G", "", "cmake build-script generator")
	cmd.Flags().StringVarP(&initBuildType, "build-type", "t", "", "CMAKE_BUILD_TYPE value")
	cmd.Flags().StringVar(&initTemplate, "template", "", "Git repository to clone the project skeleton from")

	return cmd
}

func projectInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if initGenerator == "" && !plainOutput {
		if err := askProjectSettings(); err != nil {
			return err
		}
	}

	return operations.WithSpinner("Initializing project...",
		func() (interface{}, error) {
			err := Container.ProjectService().InitProject(dir, services.InitOptions{
				Generator:   initGenerator,
				BuildType:   initBuildType,
				TemplateURL: initTemplate,
			})
			if err != nil {
				return nil, fmt.Errorf("error initializing project: %w", err)
			}
			return "successfully created project", nil
		},
		func(result interface{}) {
			if res, ok := result.(operations.Result); ok {
				if msg, ok := res.Data.(string); ok {
					ui.PrintSuccess(msg)
				}
			}
		})
}

// askProjectSettings prompts for the generator and build type.
func askProjectSettings() error {
	generators := []huh.Option[string]{
		huh.NewOption("Default (let cmake decide)", ""),
		huh.NewOption("Ninja", "Ninja"),
		huh.NewOption("Unix Makefiles", "Unix Makefiles"),
		huh.NewOption("Xcode", "Xcode"),
		huh.NewOption("Visual Studio 17 2022", "Visual Studio 17 2022"),
	}

	buildTypes := []huh.Option[string]{
		huh.NewOption("None", ""),
		huh.NewOption("Debug", "Debug"),
		huh.NewOption("Release", "Release"),
		huh.NewOption("RelWithDebInfo", "RelWithDebInfo"),
		huh.NewOption("MinSizeRel", "MinSizeRel"),
	}

	baseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ui.InfoColor))
	theme := huh.Theme{
		Focused: huh.FieldStyles{
			Title:          baseStyle.Bold(true),
			SelectedOption: ui.SelectStyle,
			SelectSelector: baseStyle,
		},
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Choose a build-script generator").
			Options(generators...).
			Value(&initGenerator),
		huh.NewSelect[string]().
			Title("Choose a build type").
			Options(buildTypes...).
			Value(&initBuildType),
	))

	if err := form.WithTheme(&theme).Run(); err != nil {
		return fmt.Errorf("error during project setup: %w", err)
	}
	return nil
}
