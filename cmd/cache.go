package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/buildstack/kiln/pkg/pipeline"
	"github.com/spf13/cobra"
)

var cacheBuildDir string

func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the generated CMake cache",
	}

	cmd.AddCommand(newCacheGetCommand())
	return cmd
}

func newCacheGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <variable>",
		Short: "Print a variable from CMakeCache.txt",
		Example: `  # Which build tool did the generator configure?
  kiln cache get CMAKE_MAKE_PROGRAM

  # Read from an explicit build directory
  kiln cache get CMAKE_CXX_COMPILER --build-dir out`,
		Args:          cobra.ExactArgs(1),
		RunE:          cacheGet,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Flags().StringVarP(&cacheBuildDir, "build-dir", "B", "", "Build directory (defaults to the manifest's build_dir)")

	return cmd
}

func cacheGet(cmd *cobra.Command, args []string) error {
	absPath, err := resolveWorkspace(nil)
	if err != nil {
		return err
	}

	buildDir := cacheBuildDir
	if buildDir == "" {
		if m, err := Container.ProjectService().LoadManifest(absPath); err == nil {
			buildDir = m.Build.BuildDir
		}
	}

	ws := pipeline.NewWorkspace(absPath)
	cacheFile := filepath.Join(ws.Resolve(buildDir), pipeline.CacheFileName)

	value, err := pipeline.ReadCacheVariable(cacheFile, args[0])
	if err != nil {
		return err
	}

	fmt.Println(value)
	return nil
}
