// Package logging provides structured logging for mqtt2prom.
//
// This package wraps Go's standard log/slog package so every component
// logs the same shape: leveled, structured, with service identity
// attached.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("connected to broker", "host", cfg.MQTT.Broker.Host)
//	logger.Warn("dropping malformed payload", "topic", topic, "error", err)
//
// Per-message traffic logs at debug; a busy broker would otherwise
// drown the operational entries.
//
// # Security
//
// Never log secrets or broker credentials. Payloads are fine: device
// notifications carry no sensitive data.
package logging
