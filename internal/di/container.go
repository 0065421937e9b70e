package di

import (
	"path/filepath"

	"github.com/buildstack/kiln/internal/repository"
	"github.com/buildstack/kiln/internal/services"
	"github.com/buildstack/kiln/pkg/config"
	"github.com/buildstack/kiln/pkg/history"
	"github.com/buildstack/kiln/pkg/logging"
	"github.com/buildstack/kiln/pkg/pipeline"
	"github.com/buildstack/kiln/pkg/tools"
)

// Container manages dependency injection for the CLI commands
type Container struct {
	projectService services.ProjectService
}

// NewContainer creates a new DI container
func NewContainer() *Container {
	return &Container{
		projectService: services.NewProjectService(),
	}
}

// ProjectService returns the shared project service
func (c *Container) ProjectService() services.ProjectService {
	return c.projectService
}

// CreateRunner creates a fully configured pipeline runner
func (c *Container) CreateRunner(cfg *config.Config, logger logging.Logger) *pipeline.Runner {
	return pipeline.NewRunner(tools.NewResolver(cfg), pipeline.NewLauncher(), logger)
}

// CreateHistoryStore opens the history database and wraps it in a store.
// The returned close function must be called when the store is done with.
func (c *Container) CreateHistoryStore(cfg *config.Config) (history.Store, func() error, error) {
	dbRepo, err := repository.OpenBadgerDBRepository(filepath.Join(cfg.History.Dir, "runs.db"))
	if err != nil {
		return nil, nil, err
	}
	return history.NewStore(dbRepo, cfg.History.Limit), dbRepo.Close, nil
}
