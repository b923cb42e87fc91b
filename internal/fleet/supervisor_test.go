package fleet

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptRunner launches a shell snippet for every slot, recording the slots
// it was asked to spawn.
type scriptRunner struct {
	script   string
	failSlot *Slot // BuildCommand fails for this slot if set
	spawned  []Slot
}

func (r *scriptRunner) BuildCommand(ctx context.Context, slot Slot) (*exec.Cmd, error) {
	if r.failSlot != nil && *r.failSlot == slot {
		return nil, fmt.Errorf("no command for %s", slot)
	}
	r.spawned = append(r.spawned, slot)
	return exec.CommandContext(ctx, "sh", "-c", r.script), nil
}

func (r *scriptRunner) Name() string { return "script" }

func testPlan() Plan {
	return Plan{{Kind: KindIMU, Count: 2}, {Kind: KindAltitude, Count: 1}}
}

func TestSupervisor_AllChildrenExitNaturally(t *testing.T) {
	runner := &scriptRunner{script: "exit 0"}
	sup := NewSupervisor(testPlan(), runner)

	err := sup.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, runner.spawned, 3)
	assert.Equal(t, 0, sup.Tracked(), "all children must be reaped")
}

func TestSupervisor_DefaultPlanSpawnsNineWorkers(t *testing.T) {
	runner := &scriptRunner{script: "exit 0"}
	sup := NewSupervisor(DefaultPlan(), runner)

	require.NoError(t, sup.Run(context.Background()))

	require.Len(t, runner.spawned, 9)
	assert.Equal(t, DefaultPlan().Slots(), runner.spawned)
	assert.Equal(t, 0, sup.Tracked())
}

func TestSupervisor_SpawnOrderFollowsPlan(t *testing.T) {
	runner := &scriptRunner{script: "exit 0"}
	sup := NewSupervisor(testPlan(), runner)

	require.NoError(t, sup.Run(context.Background()))

	want := []Slot{{KindIMU, 0}, {KindIMU, 1}, {KindAltitude, 0}}
	assert.Equal(t, want, runner.spawned)

	recs := sup.Records()
	require.Len(t, recs, 3)
	for i, rec := range recs {
		assert.Equal(t, want[i], rec.Slot)
		assert.NotZero(t, rec.PID)
	}
}

func TestSupervisor_SignalTerminatesFleet(t *testing.T) {
	runner := &scriptRunner{script: "sleep 60"}
	sup := NewSupervisor(testPlan(), runner)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sup.Run(ctx) }()

	// Let the fleet come up, then request shutdown.
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err, "signal-triggered shutdown is success")
	case <-time.After(10 * time.Second):
		t.Fatal("supervisor did not shut down")
	}

	assert.Equal(t, 0, sup.Tracked(), "no tracked children may remain")
}

func TestSupervisor_ToleratesAlreadyExitedChildren(t *testing.T) {
	// One child exits immediately; the others linger. Shutdown must still
	// reap everything without error.
	plan := Plan{{Kind: KindIMU, Count: 1}, {Kind: KindGyro, Count: 2}}
	runner := &slotScriptRunner{scripts: map[Slot]string{
		{KindIMU, 0}:  "exit 0",
		{KindGyro, 0}: "sleep 60",
		{KindGyro, 1}: "sleep 60",
	}}
	sup := NewSupervisor(plan, runner)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sup.Run(ctx) }()

	// Give the quick child time to die before the shutdown signal arrives.
	time.Sleep(300 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("supervisor hung on an already-exited child")
	}

	assert.Equal(t, 0, sup.Tracked())
}

func TestSupervisor_SpawnFailureAbortsFleet(t *testing.T) {
	fail := Slot{KindAltitude, 0}
	runner := &scriptRunner{script: "sleep 60", failSlot: &fail}
	sup := NewSupervisor(testPlan(), runner)

	err := sup.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "altitude0")

	// The two workers started before the failure must be torn down.
	assert.Len(t, runner.spawned, 2)
	assert.Equal(t, 0, sup.Tracked(), "partial fleet must not be left running")
}

func TestSupervisor_RecordsExitCodes(t *testing.T) {
	runner := &slotScriptRunner{scripts: map[Slot]string{
		{KindIMU, 0}: "exit 0",
		{KindIMU, 1}: "exit 3",
	}}
	sup := NewSupervisor(Plan{{Kind: KindIMU, Count: 2}}, runner)

	require.NoError(t, sup.Run(context.Background()))
	assert.Equal(t, 0, sup.Tracked())
}

// slotScriptRunner runs a different shell snippet per slot.
type slotScriptRunner struct {
	scripts map[Slot]string
}

func (r *slotScriptRunner) BuildCommand(ctx context.Context, slot Slot) (*exec.Cmd, error) {
	script, ok := r.scripts[slot]
	if !ok {
		return nil, fmt.Errorf("no script for %s", slot)
	}
	return exec.CommandContext(ctx, "sh", "-c", script), nil
}

func (r *slotScriptRunner) Name() string { return "slot-script" }

func TestWorkerRunner_Environment(t *testing.T) {
	runner := &WorkerRunner{BinPath: "/usr/bin/true", BrokerURL: "nats://127.0.0.1:4222"}

	cmd, err := runner.BuildCommand(context.Background(), Slot{KindGyro, 1})
	require.NoError(t, err)

	assert.Contains(t, cmd.Env, "SENSOR_KIND=gyro")
	assert.Contains(t, cmd.Env, "SENSOR_INDEX=1")
	assert.Contains(t, cmd.Env, "SENSOR_BROKER_URL=nats://127.0.0.1:4222")
}

func TestWorkerRunner_EmptyBinPath(t *testing.T) {
	runner := &WorkerRunner{}

	_, err := runner.BuildCommand(context.Background(), Slot{KindIMU, 0})
	require.Error(t, err)
}
