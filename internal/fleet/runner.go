package fleet

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Environment variable names handed to every spawned worker.
const (
	EnvKind      = "SENSOR_KIND"
	EnvIndex     = "SENSOR_INDEX"
	EnvBrokerURL = "SENSOR_BROKER_URL"
)

// Runner creates executable commands for fleet slots.
// This interface keeps the supervisor process-agnostic so tests can
// substitute the worker binary.
type Runner interface {
	// BuildCommand returns a ready-to-start command for the given slot.
	// The command must NOT be started yet.
	BuildCommand(ctx context.Context, slot Slot) (*exec.Cmd, error)

	// Name returns a human-readable name for this process type.
	Name() string
}

// WorkerRunner launches the mock sensor binary, configuring each instance
// through environment variables only.
type WorkerRunner struct {
	// BinPath is the path to the worker executable.
	BinPath string
	// BrokerURL is the client URL of the embedded broker, passed through to
	// each worker.
	BrokerURL string
}

// BuildCommand implements Runner.
func (r *WorkerRunner) BuildCommand(ctx context.Context, slot Slot) (*exec.Cmd, error) {
	if r.BinPath == "" {
		return nil, fmt.Errorf("worker binary path is empty")
	}

	cmd := exec.CommandContext(ctx, r.BinPath)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("%s=%s", EnvKind, slot.Kind),
		fmt.Sprintf("%s=%d", EnvIndex, slot.Index),
		fmt.Sprintf("%s=%s", EnvBrokerURL, r.BrokerURL),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// Name implements Runner.
func (r *WorkerRunner) Name() string {
	return "mock-sensor"
}
