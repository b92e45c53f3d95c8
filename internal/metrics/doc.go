// Package metrics maps decoded Shelly notifications onto Prometheus
// gauges and tracks the bridge's own operational counters.
//
// Two metric groups live here:
//   - Metrics: the ten shelly_* device gauge families scraped by
//     dashboards (power, voltage, current, energy, switch state,
//     temperature, humidity, battery, WiFi signal).
//   - Telemetry: mqtt2prom_* series about the bridge itself (broker
//     connectivity, reconnects, message outcomes).
//
// Both register against an explicitly passed prometheus.Registerer so
// the process owns exactly one registry end to end; nothing touches the
// package-global default registry. Tests construct a fresh
// prometheus.NewRegistry() per case for isolation.
//
// # Value Convention
//
// Device gauges store integer values: readings are scaled to the target
// unit (volts to decivolts, amps to milliamps, and so on) and truncated
// toward zero before Set. Prometheus samples remain float64 on the wire;
// the truncation keeps series identical to what the devices' own integer
// counters report.
//
// Label sets are created on first sight of a device and live for the
// process lifetime. Shelly fleets are small and stable, so unbounded
// label growth is not a concern here.
package metrics
