package buildstep

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsure_SkipBuildMissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "mock-sensor")

	err := Ensure(context.Background(), missing, "./cmd/mock-sensor", true)
	require.Error(t, err, "a missing worker binary must halt the supervisor")
}

func TestEnsure_SkipBuildExistingBinary(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "mock-sensor")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))

	err := Ensure(context.Background(), bin, "./cmd/mock-sensor", true)
	assert.NoError(t, err)
}

func TestEnsure_SkipBuildNonExecutable(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "mock-sensor")
	require.NoError(t, os.WriteFile(bin, []byte("data"), 0o644))

	err := Ensure(context.Background(), bin, "./cmd/mock-sensor", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an executable")
}

func TestEnsure_SkipBuildDirectory(t *testing.T) {
	err := Ensure(context.Background(), t.TempDir(), "./cmd/mock-sensor", true)
	require.Error(t, err)
}
