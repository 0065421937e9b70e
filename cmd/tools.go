package cmd

import (
	"fmt"

	"github.com/buildstack/kiln/internal/ui"
	"github.com/buildstack/kiln/pkg/tools"
	"github.com/spf13/cobra"
)

func NewToolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Manage tool installations",
	}

	cmd.AddCommand(newToolsListCommand())
	return cmd
}

func newToolsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List configured tool installations and their resolved paths",
		RunE:          toolsList,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}

func toolsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadGlobalConfig()
	if err != nil {
		return err
	}

	installations := tools.List(cfg)
	if len(installations) == 0 {
		ui.PrintInfo("Tools", "no installations configured")
		return nil
	}

	table := ui.NewTable([]string{"NAME", "PATH"})
	for _, inst := range installations {
		path := inst.Path
		if path == "" {
			path = ui.StyleStatusValue("failed")
		}
		table.AddRow(inst.Name, path)
	}

	fmt.Print(ui.RenderTable(table))
	return nil
}
