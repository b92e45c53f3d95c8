package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Telemetry holds the bridge's own operational series, kept separate
// from the device gauges so bridge health can be alerted on directly.
//
// The Record/Set methods are nil-receiver safe: components that treat
// telemetry as optional can carry a nil *Telemetry and skip the wiring
// entirely.
type Telemetry struct {
	// BrokerConnected is 1 while a broker session is streaming.
	BrokerConnected prometheus.Gauge

	// Reconnects counts completed reconnect cycles.
	Reconnects prometheus.Counter

	// Processed counts notifications mapped onto device gauges.
	Processed prometheus.Counter

	// Ignored counts NotifyEvent notifications skipped by the parser.
	Ignored prometheus.Counter

	// Malformed counts payloads dropped as invalid (bad JSON, bad UTF-8).
	Malformed prometheus.Counter

	// Skipped counts messages filtered out by topic suffix.
	Skipped prometheus.Counter
}

// NewTelemetry registers the operational series on reg.
func NewTelemetry(reg prometheus.Registerer) *Telemetry {
	factory := promauto.With(reg)

	return &Telemetry{
		BrokerConnected: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mqtt2prom_mqtt_connected",
			Help: "MQTT broker connection status (1=connected, 0=disconnected)",
		}),
		Reconnects: factory.NewCounter(prometheus.CounterOpts{
			Name: "mqtt2prom_mqtt_reconnects_total",
			Help: "Total number of MQTT reconnect cycles",
		}),
		Processed: factory.NewCounter(prometheus.CounterOpts{
			Name: "mqtt2prom_messages_processed_total",
			Help: "Total number of notifications mapped onto device gauges",
		}),
		Ignored: factory.NewCounter(prometheus.CounterOpts{
			Name: "mqtt2prom_messages_ignored_total",
			Help: "Total number of NotifyEvent notifications skipped",
		}),
		Malformed: factory.NewCounter(prometheus.CounterOpts{
			Name: "mqtt2prom_messages_malformed_total",
			Help: "Total number of payloads dropped as malformed or non-UTF-8",
		}),
		Skipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "mqtt2prom_messages_skipped_total",
			Help: "Total number of messages on topics without the notification suffix",
		}),
	}
}

// SetBrokerConnected publishes the broker connection status.
func (t *Telemetry) SetBrokerConnected(connected bool) {
	if t == nil {
		return
	}
	if connected {
		t.BrokerConnected.Set(1)
	} else {
		t.BrokerConnected.Set(0)
	}
}

// RecordReconnect counts one reconnect cycle (dial, subscribe, or
// stream failure followed by a retry).
func (t *Telemetry) RecordReconnect() {
	if t == nil {
		return
	}
	t.Reconnects.Inc()
}

// RecordProcessed counts a notification mapped onto device gauges.
func (t *Telemetry) RecordProcessed() {
	if t == nil {
		return
	}
	t.Processed.Inc()
}

// RecordIgnored counts a NotifyEvent skipped by the parser.
func (t *Telemetry) RecordIgnored() {
	if t == nil {
		return
	}
	t.Ignored.Inc()
}

// RecordMalformed counts a payload dropped as malformed.
func (t *Telemetry) RecordMalformed() {
	if t == nil {
		return
	}
	t.Malformed.Inc()
}

// RecordSkipped counts a message filtered out by topic suffix.
func (t *Telemetry) RecordSkipped() {
	if t == nil {
		return
	}
	t.Skipped.Inc()
}
