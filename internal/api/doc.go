// Package api implements the HTTP server that exposes the bridge to
// Prometheus.
//
// This package provides:
//   - GET /metrics: the Prometheus exposition endpoint
//   - GET /health: a liveness probe with the running version
//   - Middleware stack (request ID, logging, recovery)
//
// # Architecture
//
// The server is read-only and scrape-driven. It renders whatever the
// injected prometheus.Gatherer holds at scrape time; it never touches
// the MQTT side directly, so a broker outage degrades the data but
// never the endpoint. Prometheus observes outages through the
// mqtt2prom_mqtt_connected series rather than failed scrapes.
//
// # Graceful Degradation
//
// /health reports the process is up, not that the broker is reachable.
// Liveness and data freshness are deliberately separate signals.
package api
