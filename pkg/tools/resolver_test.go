package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/buildstack/kiln/pkg/config"
	"github.com/buildstack/kiln/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Tools: config.ToolsConfig{
			Default: "cmake",
			Installations: map[string]config.ToolConfig{
				"cmake":    {Path: "/opt/cmake/bin/cmake"},
				"cmake-3x": {Path: "/opt/cmake-3.28/bin/cmake"},
			},
		},
	}
}

func TestResolveConfiguredInstallation(t *testing.T) {
	r := NewResolver(testConfig())

	path, err := r.Resolve("cmake-3x")
	require.NoError(t, err)
	assert.Equal(t, "/opt/cmake-3.28/bin/cmake", path)
}

func TestResolveEmptyNameUsesDefault(t *testing.T) {
	r := NewResolver(testConfig())

	path, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "/opt/cmake/bin/cmake", path)
}

func TestResolveNoInstallationConfigured(t *testing.T) {
	r := NewResolver(&config.Config{})

	_, err := r.Resolve("")
	assert.ErrorIs(t, err, pipeline.ErrNoInstallation)
}

func TestResolveFallsBackToPath(t *testing.T) {
	tmpDir := t.TempDir()
	bin := filepath.Join(tmpDir, "fakemake")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755))
	t.Setenv("PATH", tmpDir)

	r := NewResolver(&config.Config{Tools: config.ToolsConfig{Default: "fakemake"}})

	path, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, bin, path)
}

func TestResolveUnknownTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	r := NewResolver(testConfig())
	_, err := r.Resolve("no-such-tool")
	assert.True(t, pipeline.Is(err, pipeline.DomainTool, pipeline.CodeToolNotFound))
}

func TestList(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	installations := List(testConfig())
	require.Len(t, installations, 2)
	assert.Equal(t, "cmake", installations[0].Name)
	assert.Equal(t, "/opt/cmake/bin/cmake", installations[0].Path)
}
