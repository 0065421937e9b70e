package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/buildstack/kiln/pkg/logging"
	"github.com/buildstack/kiln/pkg/manifest"
)

// CacheFileName is the generator-produced cache artifact in the build tree.
const CacheFileName = "CMakeCache.txt"

// ToolResolver locates the binary for a named tool installation.
type ToolResolver interface {
	Resolve(name string) (string, error)
}

// StepResult records the outcome of one process invocation.
type StepResult struct {
	Tool     string        `json:"tool"`
	Args     []string      `json:"args"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
}

// Report summarizes a completed generator-plus-steps run.
type Report struct {
	CMakeBin  string       `json:"cmake_bin"`
	BuildTool string       `json:"build_tool,omitempty"`
	SourceDir string       `json:"source_dir"`
	BuildDir  string       `json:"build_dir"`
	Steps     []StepResult `json:"steps"`
}

// Runner sequences the generator invocation and the configured build-tool
// steps. A run is strictly sequential; every failure is terminal.
type Runner struct {
	tools    ToolResolver
	launcher Launcher
	log      logging.Logger
}

// NewRunner creates a Runner with the given collaborators.
func NewRunner(tools ToolResolver, launcher Launcher, log logging.Logger) *Runner {
	return &Runner{tools: tools, launcher: launcher, log: log}
}

// Configure runs only the generator phase: resolve the cmake binary, prepare
// the build directory and invoke cmake on the source tree.
func (r *Runner) Configure(ctx context.Context, ws Workspace, m *manifest.BuildManifest, baseEnv Environment) (*Report, error) {
	report, _, err := r.configure(ctx, ws, m, baseEnv)
	return report, err
}

// Run executes the whole pipeline: the generator phase followed by every
// configured build-tool step, in declared order, aborting on the first
// failure.
func (r *Runner) Run(ctx context.Context, ws Workspace, m *manifest.BuildManifest, baseEnv Environment) (*Report, error) {
	report, cmakeBin, err := r.configure(ctx, ws, m, baseEnv)
	if err != nil {
		return report, err
	}

	// The build tool path is only knowable after the generator has chosen a
	// toolchain; pull it out of the cache if any step invokes it directly.
	buildTool := ""
	if m.NeedsBuildTool() {
		cacheFile := filepath.Join(report.BuildDir, CacheFileName)
		buildTool, err = ReadCacheVariable(cacheFile, BuildToolVariable)
		if err != nil {
			return report, err
		}
		report.BuildTool = buildTool
	}

	for i, step := range m.Steps {
		if err := ctx.Err(); err != nil {
			return report, Wrap(DomainRun, CodeCancelled, "run cancelled", err)
		}

		stepEnv := baseEnv.Override(step.Env)
		stepArgs := stepEnv.ExpandAll(step.Args)

		var call []string
		if step.WithCMake() {
			call = ToolCallWithCMake(cmakeBin, report.BuildDir, stepArgs...)
		} else {
			call = ToolCall(buildTool, stepArgs...)
		}

		r.log.Printf("Running step %d: %v", i+1, call)
		result, err := r.launch(ctx, call, report.BuildDir, stepEnv)
		if result != nil {
			report.Steps = append(report.Steps, *result)
		}
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

func (r *Runner) configure(ctx context.Context, ws Workspace, m *manifest.BuildManifest, baseEnv Environment) (*Report, string, error) {
	cmakeBin, err := r.tools.Resolve(m.Build.Installation)
	if err != nil {
		return nil, "", err
	}

	buildDir := ws.Resolve(m.Build.BuildDir)
	sourceDir := ws.Resolve(m.Build.SourceDir)
	report := &Report{CMakeBin: cmakeBin, SourceDir: sourceDir, BuildDir: buildDir}

	if m.Build.BuildDir != "" {
		// avoid deleting the source tree
		if m.Build.CleanBuild && buildDir != sourceDir {
			r.log.Printf("Cleaning build dir... %s", buildDir)
			if err := ws.RemoveAll(buildDir); err != nil {
				return report, "", err
			}
		}
		if err := ws.MkdirAll(buildDir); err != nil {
			return report, "", err
		}
	}

	call := CMakeCall(cmakeBin, m.Build.Generator, m.Build.PreloadScript,
		sourceDir, m.Build.BuildType, m.Build.CMakeArgs)

	r.log.Printf("Configuring: %v", call)
	result, err := r.launch(ctx, call, buildDir, baseEnv)
	if result != nil {
		report.Steps = append(report.Steps, *result)
	}
	if err != nil {
		return report, "", err
	}
	return report, cmakeBin, nil
}

func (r *Runner) launch(ctx context.Context, call []string, dir string, env Environment) (*StepResult, error) {
	started := time.Now()
	exitCode, err := r.launcher.Launch(ctx, Command{
		Args: call,
		Dir:  dir,
		Env:  env.Pairs(),
	}, r.log.Writer())
	if err != nil {
		return nil, Wrap(DomainRun, CodeProcessFailed,
			fmt.Sprintf("failed to launch %s", call[0]), err)
	}

	result := &StepResult{
		Tool:     filepath.Base(call[0]),
		Args:     call[1:],
		ExitCode: exitCode,
		Duration: time.Since(started),
	}
	if exitCode != 0 {
		return result, &ExitError{Tool: result.Tool, ExitCode: exitCode}
	}
	return result, nil
}
