package manifest

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// DefaultFileName is the manifest file kiln looks for in a project directory.
const DefaultFileName = "kiln.yml"

// StepMode selects how a build-tool step is invoked.
type StepMode string

const (
	// StepModeDirect invokes the build tool binary recorded in the cmake
	// cache directly.
	StepModeDirect StepMode = "direct"

	// StepModeViaCMake invokes the build tool through `cmake --build`,
	// which dispatches to whichever tool the generator configured.
	StepModeViaCMake StepMode = "via-cmake"
)

// BuildManifest is the declarative input for one pipeline run.
type BuildManifest struct {
	Build BuildSettings `yaml:"build" toml:"build"`
	Steps []ToolStep    `yaml:"steps,omitempty" toml:"steps,omitempty"`
}

// BuildSettings configures the cmake generator invocation.
type BuildSettings struct {
	// Installation names a tool installation from the kiln config.
	Installation string `yaml:"installation,omitempty" toml:"installation,omitempty"`

	// Generator is cmake's build-script generator, empty for the default.
	Generator string `yaml:"generator,omitempty" toml:"generator,omitempty"`

	SourceDir string `yaml:"source_dir,omitempty" toml:"source_dir,omitempty"`
	BuildDir  string `yaml:"build_dir,omitempty" toml:"build_dir,omitempty"`
	BuildType string `yaml:"build_type,omitempty" toml:"build_type,omitempty"`

	// CMakeArgs holds additional arguments, separated by spaces.
	CMakeArgs string `yaml:"cmake_args,omitempty" toml:"cmake_args,omitempty"`

	// PreloadScript is a script that pre-populates the cmake cache.
	PreloadScript string `yaml:"preload_script,omitempty" toml:"preload_script,omitempty"`

	// CleanBuild deletes the build directory before the generator runs.
	CleanBuild bool `yaml:"clean_build,omitempty" toml:"clean_build,omitempty"`
}

// ToolStep describes one build-tool invocation. Steps run in declared order.
type ToolStep struct {
	Mode StepMode          `yaml:"mode,omitempty" toml:"mode,omitempty" validate:"omitempty,oneof=direct via-cmake"`
	Args StepArgs          `yaml:"args,omitempty" toml:"args,omitempty"`
	Env  map[string]string `yaml:"env,omitempty" toml:"env,omitempty"`
}

// WithCMake reports whether the step runs through the unified build command.
func (s ToolStep) WithCMake() bool {
	return s.Mode == StepModeViaCMake
}

// StepArgs is an argument list that unmarshals from either a YAML sequence or
// a single space-separated string.
type StepArgs []string

func (a *StepArgs) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*a = list
		return nil
	}

	var raw string
	if err := unmarshal(&raw); err != nil {
		return fmt.Errorf("step args must be a string or a list of strings")
	}
	*a = strings.Fields(raw)
	return nil
}

var validate = validator.New()

// Parse decodes and validates a YAML manifest.
func Parse(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.normalize()
	return &m, nil
}

// Validate checks the manifest against its declared constraints.
func (m *BuildManifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}
	return nil
}

// normalize trims blank optional fields to absent and fills enum defaults.
func (m *BuildManifest) normalize() {
	m.Build.Installation = strings.TrimSpace(m.Build.Installation)
	m.Build.Generator = strings.TrimSpace(m.Build.Generator)
	m.Build.SourceDir = strings.TrimSpace(m.Build.SourceDir)
	m.Build.BuildDir = strings.TrimSpace(m.Build.BuildDir)
	m.Build.BuildType = strings.TrimSpace(m.Build.BuildType)
	m.Build.CMakeArgs = strings.TrimSpace(m.Build.CMakeArgs)
	m.Build.PreloadScript = strings.TrimSpace(m.Build.PreloadScript)

	for i := range m.Steps {
		if m.Steps[i].Mode == "" {
			m.Steps[i].Mode = StepModeDirect
		}
	}
}

// NeedsBuildTool reports whether any step requires the build tool binary to be
// resolved from the cmake cache.
func (m *BuildManifest) NeedsBuildTool() bool {
	for _, step := range m.Steps {
		if !step.WithCMake() {
			return true
		}
	}
	return false
}

func (m *BuildManifest) MarshalYaml() ([]byte, error) {
	return yaml.Marshal(m)
}

func (m *BuildManifest) MarshalToml() ([]byte, error) {
	return toml.Marshal(m)
}
