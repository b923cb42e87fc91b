// mock-sensor is one worker of the sensor fleet. It is configured entirely
// through its environment: which sensor kind it simulates, its instance
// index, and the broker to publish to. It follows a simulated ballistic
// trajectory and exits on its own once the flight completes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"sensorfleet/internal/config"
	"sensorfleet/internal/logging"
	"sensorfleet/internal/sim"
	"sensorfleet/internal/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mock-sensor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.ParseWorkerConfig()
	if err != nil {
		return err
	}
	slot := cfg.Slot()

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("worker", slot.String()))

	sampler, err := sim.NewSampler(slot.Kind, uint64(time.Now().UnixNano()))
	if err != nil {
		return err
	}

	nc, err := nats.Connect(cfg.BrokerURL, nats.Name("mock-sensor-"+slot.String()))
	if err != nil {
		return fmt.Errorf("connecting to broker %s: %w", cfg.BrokerURL, err)
	}
	defer nc.Close()

	log.Info("broadcasting",
		zap.String("kind", string(slot.Kind)),
		zap.String("subject", slot.Subject()),
		zap.Float64("flight_time_s", sim.FlightTime()),
		zap.Float64("max_altitude_m", sim.MaxAltitude()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.PublishPeriod)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Info("interrupted, stopping")
			return nil
		case <-ticker.C:
		}

		elapsed := time.Since(start).Seconds()
		if sampler.Done(elapsed) {
			log.Info("trajectory complete, stopping")
			return nc.Flush()
		}

		values := sampler.Sample(elapsed)
		payload, err := wire.Encode(slot.Kind, values)
		if err != nil {
			return err
		}
		if err := nc.Publish(slot.Subject(), payload); err != nil {
			return fmt.Errorf("publishing to %s: %w", slot.Subject(), err)
		}

		log.Debug("published reading",
			zap.Float64("t_s", elapsed),
			zap.Float32s("values", values))
	}
}
