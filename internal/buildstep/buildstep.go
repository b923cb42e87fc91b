// Package buildstep produces the worker executable before the fleet is
// spawned. A build failure is fatal: the supervisor reports it and exits
// without starting any workers.
package buildstep

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Build compiles pkg with the Go toolchain and writes the executable to
// outPath. Build output passes through to the caller's stderr so failures
// stay readable.
func Build(ctx context.Context, outPath, pkg string) error {
	cmd := exec.CommandContext(ctx, "go", "build", "-o", outPath, pkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("building %s: %w", pkg, err)
	}
	return nil
}

// Ensure makes sure the worker executable exists at outPath, building it
// unless skipBuild is set. With skipBuild, a missing executable is still an
// error: no fleet may start without a worker binary.
func Ensure(ctx context.Context, outPath, pkg string, skipBuild bool) error {
	if !skipBuild {
		return Build(ctx, outPath, pkg)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("worker executable %s: %w", outPath, err)
	}
	if info.IsDir() || info.Mode()&0o111 == 0 {
		return fmt.Errorf("worker executable %s is not an executable file", outPath)
	}
	return nil
}
