package fleet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Record tracks one spawned worker for the supervisor's lifetime.
type Record struct {
	Slot
	PID int

	cmd    *exec.Cmd
	span   trace.Span
	reaped bool
}

// exitEvent reports a child's termination from its wait goroutine back to
// the supervisor loop.
type exitEvent struct {
	rec *Record
	err error
}

// Supervisor launches a fixed fleet of worker processes and ensures an
// orderly, complete shutdown of the entire fleet on interrupt or when every
// worker has exited on its own.
//
// All state lives on a single control goroutine inside Run; the records list
// is owned exclusively by the supervisor and never shared.
type Supervisor struct {
	plan   Plan
	runner Runner
	log    *zap.Logger
	tracer trace.Tracer

	records []*Record
	exits   chan exitEvent
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Supervisor) { s.log = log }
}

// WithTracer sets the tracer used to export one span per worker lifetime.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Supervisor) { s.tracer = tracer }
}

// NewSupervisor creates a supervisor for the given plan and runner.
func NewSupervisor(plan Plan, runner Runner, opts ...Option) *Supervisor {
	s := &Supervisor{
		plan:   plan,
		runner: runner,
		log:    zap.NewNop(),
		tracer: noop.NewTracerProvider().Tracer("fleet"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run spawns the whole fleet, blocks until ctx is cancelled or every worker
// has exited on its own, then terminates and reaps any remaining workers.
//
// A failed spawn aborts the fleet: workers already started are terminated
// and reaped before the error is returned. Signal-triggered shutdown is
// always treated as success.
func (s *Supervisor) Run(ctx context.Context) error {
	procCtx, procCancel := context.WithCancel(context.Background())
	defer procCancel()

	if err := s.spawnAll(procCtx); err != nil {
		return err
	}

	remaining := len(s.records)
	for remaining > 0 {
		select {
		case <-ctx.Done():
			s.log.Info("shutdown requested, terminating fleet",
				zap.Int("workers", remaining))
			s.terminateAll()
			for remaining > 0 {
				s.reap(<-s.exits)
				remaining--
			}
		case e := <-s.exits:
			s.reap(e)
			remaining--
		}
	}

	s.log.Info("fleet shutdown complete", zap.Int("workers", len(s.records)))
	return nil
}

// Tracked returns how many spawned workers have not yet been reaped.
// Only meaningful before Run starts or after it returns.
func (s *Supervisor) Tracked() int {
	n := 0
	for _, rec := range s.records {
		if !rec.reaped {
			n++
		}
	}
	return n
}

// Records returns the spawn-ordered worker records.
// Only meaningful before Run starts or after it returns.
func (s *Supervisor) Records() []*Record {
	return s.records
}

// spawnAll starts one worker per plan slot in deterministic plan order.
func (s *Supervisor) spawnAll(ctx context.Context) error {
	s.exits = make(chan exitEvent, len(s.plan.Slots()))

	for _, slot := range s.plan.Slots() {
		cmd, err := s.runner.BuildCommand(ctx, slot)
		if err == nil {
			err = cmd.Start()
		}
		if err != nil {
			s.log.Error("worker spawn failed, aborting fleet",
				zap.String("worker", slot.String()), zap.Error(err))
			s.terminateAll()
			s.reapAll()
			return fmt.Errorf("spawning %s worker %s: %w", s.runner.Name(), slot, err)
		}

		rec := &Record{Slot: slot, PID: cmd.Process.Pid, cmd: cmd}
		_, rec.span = s.tracer.Start(ctx, "worker."+string(slot.Kind),
			trace.WithAttributes(
				attribute.String("sensor.kind", string(slot.Kind)),
				attribute.Int("sensor.index", slot.Index),
				attribute.Int("process.pid", rec.PID),
			))
		s.records = append(s.records, rec)

		go func(rec *Record) {
			s.exits <- exitEvent{rec: rec, err: rec.cmd.Wait()}
		}(rec)

		s.log.Info("worker started",
			zap.String("kind", string(slot.Kind)),
			zap.Int("index", slot.Index),
			zap.Int("pid", rec.PID))
	}

	return nil
}

// terminateAll requests termination of every unreaped worker, in spawn order.
// Signaling an already-exited process is not an error and is ignored.
func (s *Supervisor) terminateAll() {
	for _, rec := range s.records {
		if rec.reaped {
			continue
		}
		if err := rec.cmd.Process.Signal(syscall.SIGTERM); err != nil &&
			!errors.Is(err, os.ErrProcessDone) {
			s.log.Warn("terminate request failed",
				zap.String("worker", rec.String()), zap.Error(err))
		}
	}
}

// reapAll drains exit events for every spawned worker.
func (s *Supervisor) reapAll() {
	for remaining := s.Tracked(); remaining > 0; remaining-- {
		s.reap(<-s.exits)
	}
}

// reap records a child's exit status and closes its span.
func (s *Supervisor) reap(e exitEvent) {
	e.rec.reaped = true

	code := 0
	var exitErr *exec.ExitError
	if errors.As(e.err, &exitErr) {
		code = exitErr.ExitCode()
	}

	e.rec.span.SetAttributes(attribute.Int("process.exit_code", code))
	if code != 0 {
		e.rec.span.SetStatus(codes.Error, fmt.Sprintf("exit code %d", code))
	}
	e.rec.span.End()

	s.log.Info("worker reaped",
		zap.String("worker", e.rec.String()),
		zap.Int("pid", e.rec.PID),
		zap.Int("exit_code", code))
}
