// sensorfleet builds the mock sensor worker, starts an embedded broker,
// spawns the fixed sensor fleet and supervises it until an interrupt arrives
// or every worker has finished its trajectory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sensorfleet/internal/broker"
	"sensorfleet/internal/buildstep"
	"sensorfleet/internal/config"
	"sensorfleet/internal/fleet"
	"sensorfleet/internal/logging"
	"sensorfleet/internal/otel"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sensorfleet: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.ParseSupervisorConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	otelCfg, err := config.ParseOTELConfig()
	if err != nil {
		return err
	}
	tracer, shutdownTracing, err := otel.InitProvider(otelCfg)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build step first: a build failure halts everything before any worker
	// is spawned.
	log.Info("ensuring worker executable",
		zap.String("bin", cfg.WorkerBin), zap.Bool("skip_build", cfg.SkipBuild))
	if err := buildstep.Ensure(ctx, cfg.WorkerBin, cfg.WorkerPkg, cfg.SkipBuild); err != nil {
		return err
	}

	srv, err := broker.Start(cfg.BrokerPort)
	if err != nil {
		return err
	}
	defer srv.Shutdown()
	log.Info("embedded broker ready", zap.String("url", srv.ClientURL()))

	runner := &fleet.WorkerRunner{BinPath: cfg.WorkerBin, BrokerURL: srv.ClientURL()}
	sup := fleet.NewSupervisor(fleet.DefaultPlan(), runner,
		fleet.WithLogger(log), fleet.WithTracer(tracer))

	return sup.Run(ctx)
}
