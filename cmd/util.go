package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/buildstack/kiln/internal/ui"
	"github.com/buildstack/kiln/pkg/history"
	"github.com/buildstack/kiln/pkg/pipeline"
)

// resolveWorkspace maps the optional positional path argument onto the
// absolute workspace directory, defaulting to the current directory.
func resolveWorkspace(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		ui.PrintError(fmt.Sprintf("path %s does not exist", absPath))
		return "", err
	}

	return absPath, nil
}

// recordRun writes a run record to the history store, ignoring store setup
// failures so a broken history database never fails a build.
func recordRun(workspace string, started time.Time, report *pipeline.Report, runErr error) {
	cfg, err := loadGlobalConfig()
	if err != nil {
		return
	}

	store, closeStore, err := Container.CreateHistoryStore(cfg)
	if err != nil {
		return
	}
	defer closeStore()

	rec := &history.RunRecord{
		ID:         history.NewRunID(started),
		Workspace:  workspace,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Success:    runErr == nil,
		Report:     report,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}

	_ = store.Record(rec)
}
