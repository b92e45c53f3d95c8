// mqtt2prom - Shelly MQTT to Prometheus bridge
//
// This is the main entry point for the mqtt2prom daemon. It subscribes
// to Shelly Gen2+ RPC notifications on an MQTT broker and re-exposes
// the device readings as Prometheus gauges:
//   - Switch channels: power, voltage, current, energy, output state
//   - Sensors: temperature, humidity, battery
//   - Radio: WiFi signal strength
//
// The daemon runs two halves: a connection supervisor that keeps the
// broker subscription alive, and an HTTP endpoint that Prometheus
// scrapes. Either half degrades independently of the other.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aaronwald/mqtt2prom/internal/api"
	"github.com/aaronwald/mqtt2prom/internal/bridge"
	"github.com/aaronwald/mqtt2prom/internal/infrastructure/config"
	"github.com/aaronwald/mqtt2prom/internal/infrastructure/logging"
	"github.com/aaronwald/mqtt2prom/internal/infrastructure/mqtt"
	"github.com/aaronwald/mqtt2prom/internal/metrics"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting mqtt2prom",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// One private registry per process: the endpoint serves exactly the
	// series this bridge owns, nothing inherited from globals.
	registry := prometheus.NewRegistry()
	devices := metrics.New(registry)
	telemetry := metrics.NewTelemetry(registry)

	// Start the scrape endpoint before the broker loop so Prometheus
	// can observe the bridge while it is still connecting.
	server, err := api.New(api.Deps{
		Config:   cfg.Metrics,
		Logger:   log,
		Gatherer: registry,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating metrics server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting metrics server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing metrics server", "error", closeErr)
		}
	}()
	log.Info("metrics endpoint up",
		"address", fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port),
	)

	// Wire the supervisor: it dials fresh broker sessions and feeds
	// notifications into the device gauges.
	supervisor, err := bridge.New(bridge.Options{
		Dial: func(ctx context.Context) (bridge.Session, error) {
			return mqtt.Dial(ctx, cfg.MQTT)
		},
		Topic:     cfg.MQTT.Topic,
		Delay:     cfg.GetReconnectDelay(),
		Metrics:   devices,
		Telemetry: telemetry,
		Logger:    log.With("component", "bridge"),
	})
	if err != nil {
		return fmt.Errorf("creating supervisor: %w", err)
	}

	log.Info("initialisation complete",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"topic", cfg.MQTT.Topic,
	)

	// Blocks until the shutdown signal cancels ctx. Broker outages are
	// handled inside: the supervisor retries forever.
	if err := supervisor.Run(ctx); err != nil {
		return fmt.Errorf("running supervisor: %w", err)
	}

	log.Info("mqtt2prom stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses MQTT2PROM_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("MQTT2PROM_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
