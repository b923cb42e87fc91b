// fusion subscribes to every sensor subject, keeps the latest reading per
// sensor, and periodically emits the flat measurement vector for the whole
// fleet: 3 IMUs x 3 axes, 2 gyros x 3 axes, 4 altimeters x 1 value.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"sensorfleet/internal/config"
	"sensorfleet/internal/fleet"
	"sensorfleet/internal/latest"
	"sensorfleet/internal/logging"
	"sensorfleet/internal/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fusion: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.ParseFusionConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	plan := fleet.DefaultPlan()
	subjects := plan.Subjects()
	widths := make([]int, len(subjects))
	for i, slot := range plan.Slots() {
		widths[i] = slot.Kind.FloatCount()
	}

	store := latest.NewStore()

	nc, err := nats.Connect(cfg.BrokerURL, nats.Name("fusion"))
	if err != nil {
		return fmt.Errorf("connecting to broker %s: %w", cfg.BrokerURL, err)
	}
	defer nc.Close()

	sub, err := nc.Subscribe("devices.>", func(msg *nats.Msg) {
		values, err := decodeReading(msg.Subject, msg.Data)
		if err != nil {
			log.Warn("dropping sample", zap.String("subject", msg.Subject), zap.Error(err))
			return
		}
		store.Set(msg.Subject, values)
	})
	if err != nil {
		return fmt.Errorf("subscribing to sensor subjects: %w", err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	log.Info("fusion sampling",
		zap.Int("sensors", len(subjects)),
		zap.Int("vector_size", plan.VectorSize()),
		zap.Duration("period", cfg.SamplePeriod))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.SamplePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("interrupted, stopping")
			return nil
		case <-ticker.C:
			emit(store.Vector(subjects, widths))
		}
	}
}

// decodeReading validates a subject of the form devices.<kind>.<index> and
// decodes its payload with the kind's reading shape.
func decodeReading(subject string, payload []byte) ([]float32, error) {
	parts := strings.Split(subject, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("unexpected subject %q", subject)
	}
	kind, err := fleet.ParseKind(parts[1])
	if err != nil {
		return nil, err
	}
	return wire.Decode(kind, payload)
}

// emit prints one measurement vector line to stdout.
func emit(vector []float32) {
	fields := make([]string, len(vector))
	for i, v := range vector {
		fields[i] = fmt.Sprintf("%6.2f", v)
	}
	fmt.Println(strings.Join(fields, ", "))
}
