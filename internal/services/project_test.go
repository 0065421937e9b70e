package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/buildstack/kiln/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProject(t *testing.T) {
	service := NewProjectService()

	tests := []struct {
		name        string
		opts        InitOptions
		shouldError bool
	}{
		{
			name: "ninja-debug",
			opts: InitOptions{Generator: "Ninja", BuildType: "Debug"},
		},
		{
			name: "defaults",
			opts: InitOptions{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), tt.name)

			err := service.InitProject(dir, tt.opts)
			if tt.shouldError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			m, err := service.LoadManifest(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.opts.Generator, m.Build.Generator)
			assert.Equal(t, "build", m.Build.BuildDir)
			require.Len(t, m.Steps, 1)
			assert.True(t, m.Steps[0].WithCMake())
		})
	}
}

func TestInitProjectRefusesExistingManifest(t *testing.T) {
	service := NewProjectService()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.DefaultFileName), []byte("build: {}\n"), 0644))

	err := service.InitProject(dir, InitOptions{})
	assert.Error(t, err)
}

func TestLoadManifestMissing(t *testing.T) {
	service := NewProjectService()

	_, err := service.LoadManifest(t.TempDir())
	assert.ErrorContains(t, err, "not a kiln project")
}
