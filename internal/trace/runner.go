package trace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Runner executes a model once with profiling enabled and returns the
// captured node events. Implementations own any transient artifacts the run
// produces; nothing may be left behind on any exit path.
type Runner interface {
	Run(ctx context.Context, modelPath string) ([]Event, error)
}

// ErrNoProfiler indicates that no profiler command is configured.
var ErrNoProfiler = errors.New("no profiler command configured")

// ExecRunner shells out to an external profiler binary. The command is
// invoked as `command [args...] <model-path> <trace-output-path>` and must
// write a JSON event array to the output path.
type ExecRunner struct {
	Command string
	Args    []string
}

func (r *ExecRunner) Run(ctx context.Context, modelPath string) ([]Event, error) {
	if r.Command == "" {
		return nil, ErrNoProfiler
	}

	dir, err := os.MkdirTemp("", "oak-trace-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}
	defer os.RemoveAll(dir)

	tracePath := filepath.Join(dir, "trace.json")
	args := append(append([]string{}, r.Args...), modelPath, tracePath)

	cmd := exec.CommandContext(ctx, r.Command, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("profiler run failed: %w: %s", err, out)
	}

	events, err := ParseFile(tracePath)
	if err != nil {
		return nil, err
	}
	return events, nil
}
