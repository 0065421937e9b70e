package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/buildstack/kiln/pkg/history"
	"github.com/buildstack/kiln/pkg/logging"
	"github.com/buildstack/kiln/pkg/manifest"
	"github.com/buildstack/kiln/pkg/pipeline"
	"github.com/fsnotify/fsnotify"
)

// Watcher reruns the pipeline whenever the source tree changes.
type Watcher struct {
	runner    *pipeline.Runner
	workspace pipeline.Workspace
	manifest  *manifest.BuildManifest
	history   history.Store
	log       logging.Logger
	debounce  time.Duration
}

// Run watches the source directory and blocks until the context is cancelled.
// An initial pipeline run happens before watching starts.
func (w *Watcher) Run(ctx context.Context) error {
	sourceDir := w.workspace.Resolve(w.manifest.Build.SourceDir)
	buildDir := w.workspace.Resolve(w.manifest.Build.BuildDir)

	w.runOnce(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := addRecursive(fsw, sourceDir, buildDir); err != nil {
		return err
	}

	w.log.Printf("Watching %s for changes", sourceDir)

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if strings.HasPrefix(event.Name, buildDir+string(os.PathSeparator)) || event.Name == buildDir {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = fsw.Add(event.Name)
				}
			}
			// collapse change bursts into one rebuild
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Errorf("watch error: %v", err)

		case <-pending:
			w.runOnce(ctx)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	started := time.Now()
	report, err := w.runner.Run(ctx, w.workspace, w.manifest, pipeline.NewEnvironment(os.Environ()))

	rec := &history.RunRecord{
		ID:         history.NewRunID(started),
		Workspace:  w.workspace.Resolve(""),
		StartedAt:  started,
		FinishedAt: time.Now(),
		Success:    err == nil,
		Report:     report,
	}
	if err != nil {
		rec.Error = err.Error()
		w.log.Errorf("pipeline failed: %v", err)
	} else {
		w.log.Printf("pipeline finished in %s", rec.Duration().Round(time.Millisecond))
	}

	if w.history != nil {
		if recErr := w.history.Record(rec); recErr != nil {
			w.log.Errorf("failed to record run: %v", recErr)
		}
	}
}

// addRecursive registers dir and every subdirectory except the build tree.
func addRecursive(fsw *fsnotify.Watcher, dir, skip string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path == skip {
			return filepath.SkipDir
		}
		if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}
