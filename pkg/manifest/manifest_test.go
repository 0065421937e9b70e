package manifest

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
build:
  generator: Ninja
  source_dir: .
  build_dir: build
  build_type: Debug
  cmake_args: "-Wdev --warn-uninitialized"
  preload_script: ci/cache-init.cmake
  clean_build: true
steps:
  - args: "all"
  - mode: via-cmake
    args: ["--target", "install"]
    env:
      DESTDIR: /tmp/stage
`)

	m, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "Ninja", m.Build.Generator)
	assert.Equal(t, "build", m.Build.BuildDir)
	assert.Equal(t, "-Wdev --warn-uninitialized", m.Build.CMakeArgs)
	assert.True(t, m.Build.CleanBuild)

	require.Len(t, m.Steps, 2)
	assert.Equal(t, StepModeDirect, m.Steps[0].Mode)
	assert.Equal(t, StepArgs{"all"}, m.Steps[0].Args)
	assert.Equal(t, StepModeViaCMake, m.Steps[1].Mode)
	assert.Equal(t, StepArgs{"--target", "install"}, m.Steps[1].Args)
	assert.Equal(t, "/tmp/stage", m.Steps[1].Env["DESTDIR"])
}

func TestParseTrimsBlankOptionals(t *testing.T) {
	m, err := Parse([]byte("build:\n  generator: \"  \"\n  build_type: \"\"\n"))
	require.NoError(t, err)
	assert.Empty(t, m.Build.Generator)
	assert.Empty(t, m.Build.BuildType)
}

func TestParseNoSteps(t *testing.T) {
	m, err := Parse([]byte("build:\n  generator: Ninja\n"))
	require.NoError(t, err)
	assert.Empty(t, m.Steps)
	assert.False(t, m.NeedsBuildTool())
}

func TestParseRejectsUnknownMode(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - mode: sideways\n"))
	assert.Error(t, err)
}

func TestStepArgsFromString(t *testing.T) {
	m, err := Parse([]byte("steps:\n  - args: \"-j4 install\"\n"))
	require.NoError(t, err)
	require.Len(t, m.Steps, 1)
	assert.Equal(t, StepArgs{"-j4", "install"}, m.Steps[0].Args)
}

func TestNeedsBuildTool(t *testing.T) {
	tests := []struct {
		name     string
		steps    []ToolStep
		expected bool
	}{
		{name: "no steps", expected: false},
		{name: "all via cmake", steps: []ToolStep{{Mode: StepModeViaCMake}}, expected: false},
		{name: "one direct", steps: []ToolStep{{Mode: StepModeViaCMake}, {Mode: StepModeDirect}}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &BuildManifest{Steps: tt.steps}
			assert.Equal(t, tt.expected, m.NeedsBuildTool())
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	m := &BuildManifest{
		Build: BuildSettings{Generator: "Ninja", BuildDir: "build"},
		Steps: []ToolStep{{Mode: StepModeDirect, Args: StepArgs{"all"}}},
	}

	out, err := m.MarshalYaml()
	require.NoError(t, err)

	parsed, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, m.Build.Generator, parsed.Build.Generator)
	assert.Equal(t, m.Steps[0].Args, parsed.Steps[0].Args)
}

func TestMarshalTomlRoundTrip(t *testing.T) {
	m := &BuildManifest{
		Build: BuildSettings{Generator: "Ninja", BuildDir: "build", CleanBuild: true},
		Steps: []ToolStep{
			{Mode: StepModeViaCMake, Args: StepArgs{"--target", "install"},
				Env: map[string]string{"DESTDIR": "/tmp/stage"}},
		},
	}

	out, err := m.MarshalToml()
	require.NoError(t, err)

	var parsed BuildManifest
	require.NoError(t, toml.Unmarshal(out, &parsed))
	assert.Equal(t, m.Build, parsed.Build)
	require.Len(t, parsed.Steps, 1)
	assert.Equal(t, m.Steps[0].Args, parsed.Steps[0].Args)
	assert.Equal(t, m.Steps[0].Env, parsed.Steps[0].Env)
}
