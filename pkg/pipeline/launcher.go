package pipeline

import (
	"context"
	"io"
	"os/exec"
)

// Command describes a single child-process invocation.
type Command struct {
	// Args is the full argument list, binary first.
	Args []string

	// Dir is the working directory for the process.
	Dir string

	// Env is the complete environment for the process, as KEY=VALUE pairs.
	// A nil Env inherits the launcher's environment.
	Env []string
}

// Launcher executes commands and reports their exit status. Stdout and stderr
// are streamed to the given sink as the process runs.
type Launcher interface {
	Launch(ctx context.Context, cmd Command, out io.Writer) (int, error)
}

type execLauncher struct{}

// NewLauncher returns a Launcher backed by os/exec on the local host.
func NewLauncher() Launcher {
	return execLauncher{}
}

func (execLauncher) Launch(ctx context.Context, cmd Command, out io.Writer) (int, error) {
	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env
	c.Stdout = out
	c.Stderr = out

	err := c.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
