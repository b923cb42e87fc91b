// Package config parses environment-driven configuration for the three
// sensorfleet binaries. Each spawned worker's only configuration input is
// its environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"sensorfleet/internal/fleet"
)

// SupervisorConfig configures the fleet supervisor.
type SupervisorConfig struct {
	// WorkerBin is the conventional output path of the worker executable.
	WorkerBin string `env:"FLEET_WORKER_BIN" envDefault:"bin/mock-sensor"`
	// WorkerPkg is the package the build step compiles.
	WorkerPkg string `env:"FLEET_WORKER_PKG" envDefault:"./cmd/mock-sensor"`
	// SkipBuild skips the build step; the executable must already exist.
	SkipBuild bool `env:"FLEET_SKIP_BUILD" envDefault:"false"`
	// BrokerPort is the embedded broker's listen port; -1 picks a free port.
	BrokerPort int `env:"FLEET_BROKER_PORT" envDefault:"-1"`
	// LogLevel is the zap log level.
	LogLevel string `env:"FLEET_LOG_LEVEL" envDefault:"info"`
}

// ParseSupervisorConfig parses supervisor configuration from the environment.
func ParseSupervisorConfig() (*SupervisorConfig, error) {
	var cfg SupervisorConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing supervisor config: %w", err)
	}
	return &cfg, nil
}

// WorkerConfig configures one mock sensor worker instance.
type WorkerConfig struct {
	Kind          string        `env:"SENSOR_KIND" envDefault:"imu"`
	Index         int           `env:"SENSOR_INDEX" envDefault:"0"`
	BrokerURL     string        `env:"SENSOR_BROKER_URL" envDefault:"nats://127.0.0.1:4222"`
	PublishPeriod time.Duration `env:"SENSOR_PUBLISH_PERIOD" envDefault:"100ms"`
	LogLevel      string        `env:"SENSOR_LOG_LEVEL" envDefault:"info"`
}

// ParseWorkerConfig parses worker configuration from the environment and
// validates the sensor kind and instance index.
func ParseWorkerConfig() (*WorkerConfig, error) {
	var cfg WorkerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing worker config: %w", err)
	}
	if _, err := fleet.ParseKind(cfg.Kind); err != nil {
		return nil, err
	}
	if cfg.Index < 0 {
		return nil, fmt.Errorf("SENSOR_INDEX must be non-negative, got %d", cfg.Index)
	}
	if cfg.PublishPeriod <= 0 {
		return nil, fmt.Errorf("SENSOR_PUBLISH_PERIOD must be positive, got %s", cfg.PublishPeriod)
	}
	return &cfg, nil
}

// Slot returns the fleet slot this worker occupies.
func (c *WorkerConfig) Slot() fleet.Slot {
	return fleet.Slot{Kind: fleet.Kind(c.Kind), Index: c.Index}
}

// FusionConfig configures the fusion subscriber.
type FusionConfig struct {
	BrokerURL    string        `env:"FUSION_BROKER_URL" envDefault:"nats://127.0.0.1:4222"`
	SamplePeriod time.Duration `env:"FUSION_SAMPLE_PERIOD" envDefault:"10ms"`
	LogLevel     string        `env:"FUSION_LOG_LEVEL" envDefault:"info"`
}

// ParseFusionConfig parses fusion configuration from the environment.
func ParseFusionConfig() (*FusionConfig, error) {
	var cfg FusionConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing fusion config: %w", err)
	}
	if cfg.SamplePeriod <= 0 {
		return nil, fmt.Errorf("FUSION_SAMPLE_PERIOD must be positive, got %s", cfg.SamplePeriod)
	}
	return &cfg, nil
}
