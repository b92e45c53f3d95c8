package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTelemetry_BrokerConnected(t *testing.T) {
	tel := NewTelemetry(prometheus.NewRegistry())

	tel.SetBrokerConnected(true)
	if got := testutil.ToFloat64(tel.BrokerConnected); got != 1 {
		t.Errorf("connected gauge = %v, want 1", got)
	}

	tel.SetBrokerConnected(false)
	if got := testutil.ToFloat64(tel.BrokerConnected); got != 0 {
		t.Errorf("connected gauge = %v, want 0", got)
	}
}

func TestTelemetry_Counters(t *testing.T) {
	tel := NewTelemetry(prometheus.NewRegistry())

	tel.RecordReconnect()
	tel.RecordProcessed()
	tel.RecordProcessed()
	tel.RecordIgnored()
	tel.RecordMalformed()
	tel.RecordSkipped()

	tests := []struct {
		name    string
		counter prometheus.Counter
		want    float64
	}{
		{"reconnects", tel.Reconnects, 1},
		{"processed", tel.Processed, 2},
		{"ignored", tel.Ignored, 1},
		{"malformed", tel.Malformed, 1},
		{"skipped", tel.Skipped, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.counter); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestTelemetry_NilReceiverSafe(t *testing.T) {
	var tel *Telemetry

	// Optional telemetry: every method must tolerate a nil receiver.
	tel.SetBrokerConnected(true)
	tel.RecordReconnect()
	tel.RecordProcessed()
	tel.RecordIgnored()
	tel.RecordMalformed()
	tel.RecordSkipped()
}
