package watcher

import (
	"github.com/buildstack/kiln/pkg/config"
	"github.com/buildstack/kiln/pkg/history"
	"github.com/buildstack/kiln/pkg/logging"
	"github.com/buildstack/kiln/pkg/manifest"
	"github.com/buildstack/kiln/pkg/pipeline"
	"github.com/buildstack/kiln/pkg/tools"
	"go.uber.org/dig"
)

// Params bundles the externally supplied dependencies of a Watcher.
type Params struct {
	Config    *config.Config
	Logger    logging.Logger
	Workspace pipeline.Workspace
	Manifest  *manifest.BuildManifest
	History   history.Store
}

// buildContainer assembles the watcher's internals.
func buildContainer(p Params) (*dig.Container, error) {
	container := dig.New()

	if err := container.Provide(func() *config.Config { return p.Config }); err != nil {
		return nil, err
	}
	if err := container.Provide(func() logging.Logger { return p.Logger }); err != nil {
		return nil, err
	}
	if err := container.Provide(func() pipeline.Launcher { return pipeline.NewLauncher() }); err != nil {
		return nil, err
	}
	if err := container.Provide(func(cfg *config.Config) pipeline.ToolResolver {
		return tools.NewResolver(cfg)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(resolver pipeline.ToolResolver, launcher pipeline.Launcher, logger logging.Logger) *pipeline.Runner {
		return pipeline.NewRunner(resolver, launcher, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(runner *pipeline.Runner, cfg *config.Config, logger logging.Logger) *Watcher {
		return &Watcher{
			runner:    runner,
			workspace: p.Workspace,
			manifest:  p.Manifest,
			history:   p.History,
			log:       logger,
			debounce:  cfg.Watch.Debounce,
		}
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// New assembles a Watcher from its dependency graph.
func New(p Params) (*Watcher, error) {
	container, err := buildContainer(p)
	if err != nil {
		return nil, err
	}

	var w *Watcher
	if err := container.Invoke(func(watcher *Watcher) { w = watcher }); err != nil {
		return nil, err
	}
	return w, nil
}
