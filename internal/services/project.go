package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buildstack/kiln/pkg/manifest"
	"github.com/go-git/go-git/v5"
)

// ProjectService defines the interface for project-related operations
type ProjectService interface {
	// InitProject scaffolds a kiln project in dir
	InitProject(dir string, opts InitOptions) error

	// LoadManifest reads and parses the manifest of the project in dir
	LoadManifest(dir string) (*manifest.BuildManifest, error)
}

// InitOptions configures project scaffolding.
type InitOptions struct {
	// Generator preselects cmake's build-script generator
	Generator string

	// BuildType preselects CMAKE_BUILD_TYPE
	BuildType string

	// BuildDir is the build tree directory, relative to the project
	BuildDir string

	// TemplateURL optionally names a git repository to clone the project
	// skeleton from before the manifest is written
	TemplateURL string
}

type projectService struct{}

// NewProjectService creates a new instance of the project service
func NewProjectService() ProjectService {
	return &projectService{}
}

func (s *projectService) InitProject(dir string, opts InitOptions) error {
	if dir == "" {
		return errors.New("project directory cannot be empty")
	}

	manifestPath := filepath.Join(dir, manifest.DefaultFileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	}

	if opts.TemplateURL != "" {
		if err := cloneTemplate(dir, opts.TemplateURL); err != nil {
			return err
		}
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	return writeManifestFile(manifestPath, opts)
}

func (s *projectService) LoadManifest(dir string) (*manifest.BuildManifest, error) {
	manifestPath := filepath.Join(dir, manifest.DefaultFileName)
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("not a kiln project: %s does not exist", manifestPath)
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifest.DefaultFileName, err)
	}

	return manifest.Parse(data)
}

// cloneTemplate clones a template repository to the specified path
func cloneTemplate(path, url string) error {
	_, err := git.PlainClone(path, false, &git.CloneOptions{
		URL: url,
	})
	if err != nil {
		return fmt.Errorf("error cloning template: %w", err)
	}

	// Remove the .git directory to start fresh
	if err := os.RemoveAll(filepath.Join(path, ".git")); err != nil {
		return fmt.Errorf("failed to remove .git directory: %w", err)
	}

	return nil
}

// writeManifestFile creates a starter manifest with one default build step
func writeManifestFile(manifestPath string, opts InitOptions) error {
	buildDir := opts.BuildDir
	if buildDir == "" {
		buildDir = "build"
	}

	m := manifest.BuildManifest{
		Build: manifest.BuildSettings{
			Generator: opts.Generator,
			BuildDir:  buildDir,
			BuildType: opts.BuildType,
		},
		Steps: []manifest.ToolStep{
			{Mode: manifest.StepModeViaCMake},
		},
	}

	data, err := m.MarshalYaml()
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	return nil
}
