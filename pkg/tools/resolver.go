package tools

import (
	"fmt"
	"os/exec"

	"github.com/buildstack/kiln/pkg/config"
	"github.com/buildstack/kiln/pkg/pipeline"
)

// Resolver locates the binary for a named tool installation.
type Resolver interface {
	// Resolve returns the path of the binary for the named installation.
	// An empty name selects the default installation.
	Resolve(name string) (string, error)
}

// Installation is a resolved tool installation.
type Installation struct {
	Name string
	Path string
}

type configResolver struct {
	installations map[string]config.ToolConfig
	defaultName   string
}

// NewResolver returns a Resolver backed by the configured installations,
// falling back to a PATH lookup for installations the config does not name.
func NewResolver(cfg *config.Config) Resolver {
	return &configResolver{
		installations: cfg.Tools.Installations,
		defaultName:   cfg.Tools.Default,
	}
}

func (r *configResolver) Resolve(name string) (string, error) {
	if name == "" {
		name = r.defaultName
	}
	if name == "" {
		return "", pipeline.ErrNoInstallation
	}

	if inst, ok := r.installations[name]; ok && inst.Path != "" {
		return inst.Path, nil
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", pipeline.Wrap(pipeline.DomainTool, pipeline.CodeToolNotFound,
			fmt.Sprintf("tool installation %q is not configured and not on PATH", name), err)
	}
	return path, nil
}

// List returns every configured installation with its resolved path. Entries
// that cannot be resolved carry an empty path.
func List(cfg *config.Config) []Installation {
	r := NewResolver(cfg)

	names := make([]string, 0, len(cfg.Tools.Installations)+1)
	seen := make(map[string]bool)
	if cfg.Tools.Default != "" {
		names = append(names, cfg.Tools.Default)
		seen[cfg.Tools.Default] = true
	}
	for name := range cfg.Tools.Installations {
		if !seen[name] {
			names = append(names, name)
		}
	}

	installations := make([]Installation, 0, len(names))
	for _, name := range names {
		path, err := r.Resolve(name)
		if err != nil {
			path = ""
		}
		installations = append(installations, Installation{Name: name, Path: path})
	}
	return installations
}
