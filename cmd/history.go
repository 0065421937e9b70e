package cmd

import (
	"fmt"
	"time"

	"github.com/buildstack/kiln/internal/ui"
	"github.com/spf13/cobra"
)

func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded pipeline runs",
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())
	return cmd
}

func newHistoryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List recorded runs, newest first",
		RunE:          historyList,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Show the details of one run",
		Args:          cobra.ExactArgs(1),
		RunE:          historyShow,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}

func historyList(cmd *cobra.Command, args []string) error {
	cfg, err := loadGlobalConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := Container.CreateHistoryStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := store.List()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		ui.PrintInfo("History", "no runs recorded yet")
		return nil
	}

	table := ui.NewTable([]string{"ID", "STARTED", "DURATION", "STATUS", "STEPS"})
	for _, rec := range records {
		status := "ok"
		if !rec.Success {
			status = "failed"
		}
		steps := 0
		if rec.Report != nil {
			steps = len(rec.Report.Steps)
		}
		table.AddRow(
			rec.ID,
			rec.StartedAt.Local().Format(time.RFC3339),
			rec.Duration().Round(time.Millisecond).String(),
			ui.StyleStatusValue(status),
			fmt.Sprintf("%d", steps),
		)
	}

	fmt.Print(ui.RenderTable(table))
	return nil
}

func historyShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadGlobalConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := Container.CreateHistoryStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	rec, err := store.Get(args[0])
	if err != nil {
		return err
	}

	ui.PrintMetadata("Run ›", rec.ID)
	ui.PrintMetadata("Workspace ›", rec.Workspace)
	ui.PrintInfo("Started", rec.StartedAt.Local().Format(time.RFC3339))
	ui.PrintInfo("Duration", rec.Duration().Round(time.Millisecond).String())
	if rec.Success {
		ui.PrintSuccess("Run succeeded")
	} else {
		ui.PrintWarning("Run failed: " + rec.Error)
	}

	if rec.Report == nil || len(rec.Report.Steps) == 0 {
		return nil
	}

	fmt.Println()
	table := ui.NewTable([]string{"TOOL", "ARGS", "EXIT", "DURATION"})
	for _, step := range rec.Report.Steps {
		table.AddRow(
			step.Tool,
			fmt.Sprintf("%v", step.Args),
			fmt.Sprintf("%d", step.ExitCode),
			step.Duration.Round(time.Millisecond).String(),
		)
	}
	fmt.Print(ui.RenderTable(table))
	return nil
}
