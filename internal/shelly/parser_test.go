package shelly

import (
	"errors"
	"testing"
)

func TestParse_FullStatus(t *testing.T) {
	payload := []byte(`{
		"src": "shellyplugus-d48afc781ad8",
		"dst": "shelly/plugcoffee/events",
		"method": "NotifyFullStatus",
		"params": {
			"ts": 1706312347.97,
			"switch:0": {
				"id": 0,
				"output": true,
				"apower": 125.5,
				"voltage": 122.3,
				"current": 1.025,
				"aenergy": {
					"total": 3949.949,
					"by_minute": [2000.5, 2100.0, 1950.25],
					"minute_ts": 1763918640
				},
				"temperature": {"tC": 37.9, "tF": 100.1}
			},
			"wifi": {"sta_ip": "192.168.1.42", "status": "got ip", "rssi": -55},
			"sys": {"mac": "D48AFC781AD8", "uptime": 12345}
		}
	}`)

	msg, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	if msg.Src != "shellyplugus-d48afc781ad8" {
		t.Errorf("Src = %q, want %q", msg.Src, "shellyplugus-d48afc781ad8")
	}
	if msg.Method != MethodNotifyFullStatus {
		t.Errorf("Method = %q, want %q", msg.Method, MethodNotifyFullStatus)
	}

	sw := msg.Params.Switch
	if sw == nil {
		t.Fatal("Params.Switch = nil, want decoded section")
	}
	if sw.ID != 0 {
		t.Errorf("Switch.ID = %d, want 0", sw.ID)
	}
	if sw.Output == nil || !*sw.Output {
		t.Errorf("Switch.Output = %v, want true", sw.Output)
	}
	if sw.APower == nil || *sw.APower != 125.5 {
		t.Errorf("Switch.APower = %v, want 125.5", sw.APower)
	}
	if sw.Voltage == nil || *sw.Voltage != 122.3 {
		t.Errorf("Switch.Voltage = %v, want 122.3", sw.Voltage)
	}
	if sw.Current == nil || *sw.Current != 1.025 {
		t.Errorf("Switch.Current = %v, want 1.025", sw.Current)
	}
	if sw.AEnergy == nil || sw.AEnergy.Total != 3949.949 {
		t.Errorf("Switch.AEnergy = %v, want total 3949.949", sw.AEnergy)
	}
	if sw.AEnergy != nil && len(sw.AEnergy.ByMinute) != 3 {
		t.Errorf("AEnergy.ByMinute has %d samples, want 3", len(sw.AEnergy.ByMinute))
	}
	if sw.Temperature == nil || sw.Temperature.TC != 37.9 {
		t.Errorf("Switch.Temperature = %v, want tC 37.9", sw.Temperature)
	}

	if msg.Params.Wifi == nil || msg.Params.Wifi.RSSI != -55 {
		t.Errorf("Params.Wifi = %v, want rssi -55", msg.Params.Wifi)
	}
	if msg.Params.Sys == nil || msg.Params.Sys.Uptime != 12345 {
		t.Errorf("Params.Sys = %v, want uptime 12345", msg.Params.Sys)
	}
}

func TestParse_StatusDelta(t *testing.T) {
	// A bare output toggle: no power fields, no energy counter.
	payload := []byte(`{
		"src": "shellyplugus-d48afc781ad8",
		"dst": "shelly/plugcoffee/events",
		"method": "NotifyStatus",
		"params": {
			"switch:0": {"id": 0, "output": false}
		}
	}`)

	msg, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	sw := msg.Params.Switch
	if sw == nil {
		t.Fatal("Params.Switch = nil, want decoded section")
	}
	if sw.Output == nil || *sw.Output {
		t.Errorf("Switch.Output = %v, want false", sw.Output)
	}
	if sw.APower != nil {
		t.Errorf("Switch.APower = %v, want nil for absent field", *sw.APower)
	}
	if sw.AEnergy != nil {
		t.Errorf("Switch.AEnergy = %v, want nil for absent field", sw.AEnergy)
	}
	if msg.Params.Wifi != nil {
		t.Errorf("Params.Wifi = %v, want nil for absent section", msg.Params.Wifi)
	}
}

func TestParse_SensorStatus(t *testing.T) {
	payload := []byte(`{
		"src": "shellyhtg3-84fce63bb2ec",
		"dst": "shelly/hallway-ht/events",
		"method": "NotifyFullStatus",
		"params": {
			"temperature:0": {"id": 0, "tC": 18.0, "tF": 64.5},
			"humidity:0": {"id": 0, "rh": 38.9},
			"devicepower:0": {
				"id": 0,
				"battery": {"V": 5.41, "percent": 70},
				"external": {"present": false}
			}
		}
	}`)

	msg, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	if msg.Params.Temperature == nil || msg.Params.Temperature.TC != 18.0 {
		t.Errorf("Params.Temperature = %v, want tC 18.0", msg.Params.Temperature)
	}
	if msg.Params.Humidity == nil || msg.Params.Humidity.RH != 38.9 {
		t.Errorf("Params.Humidity = %v, want rh 38.9", msg.Params.Humidity)
	}

	dp := msg.Params.DevicePower
	if dp == nil || dp.Battery == nil {
		t.Fatalf("Params.DevicePower = %v, want battery section", dp)
	}
	if dp.Battery.Volts != 5.41 {
		t.Errorf("Battery.Volts = %v, want 5.41", dp.Battery.Volts)
	}
	if dp.Battery.Percent != 70 {
		t.Errorf("Battery.Percent = %v, want 70", dp.Battery.Percent)
	}
	if dp.External == nil || dp.External.Present {
		t.Errorf("DevicePower.External = %v, want present false", dp.External)
	}
}

func TestParse_NotifyEvent(t *testing.T) {
	payload := []byte(`{
		"src": "shellyplugus-d48afc781ad8",
		"dst": "shelly/plugcoffee/events",
		"method": "NotifyEvent",
		"params": {"ts": 1706312347.97, "events": []}
	}`)

	_, err := Parse(payload)
	if !errors.Is(err, ErrIgnoredMethod) {
		t.Errorf("Parse() error = %v, want ErrIgnoredMethod", err)
	}
	if errors.Is(err, ErrMalformedPayload) {
		t.Error("NotifyEvent must not be classified as malformed")
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", `{not json`},
		{"empty payload", ``},
		{"json array", `[1, 2, 3]`},
		{"missing src", `{"method": "NotifyStatus", "params": {}}`},
		{"unknown method", `{"src": "shelly-abc", "method": "Reboot", "params": {}}`},
		{"missing method", `{"src": "shelly-abc", "params": {}}`},
		{"wrong field type", `{"src": "shelly-abc", "method": "NotifyStatus", "params": {"switch:0": {"apower": "lots"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.payload))
			if !errors.Is(err, ErrMalformedPayload) {
				t.Errorf("Parse() error = %v, want ErrMalformedPayload", err)
			}
			if errors.Is(err, ErrIgnoredMethod) {
				t.Error("malformed payload must not be classified as ignored")
			}
		})
	}
}

func TestParse_UnknownFieldsIgnored(t *testing.T) {
	// Newer firmware adds sections and fields; decoding must not break.
	payload := []byte(`{
		"src": "shellyplugus-d48afc781ad8",
		"method": "NotifyStatus",
		"params": {
			"switch:0": {"id": 0, "output": true, "pf": 0.98, "freq": 50.0},
			"cloud": {"connected": true},
			"ble": {}
		}
	}`)

	msg, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	if msg.Params.Switch == nil || msg.Params.Switch.Output == nil {
		t.Error("known fields must still decode alongside unknown ones")
	}
}

func TestDeviceIDFromSource(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"factory source", "shellyplugus-d48afc781ad8", "d48afc781ad8"},
		{"no separator", "nodash", "nodash"},
		{"multiple separators", "shelly-plus-1pm-aabbccddeeff", "aabbccddeeff"},
		{"trailing separator", "shelly-", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeviceIDFromSource(tt.src); got != tt.want {
				t.Errorf("DeviceIDFromSource(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestDeviceIDFromTopic(t *testing.T) {
	tests := []struct {
		name   string
		topic  string
		want   string
		wantOK bool
	}{
		{"deep prefix", "root/family/plugcoffee/events/rpc", "plugcoffee", true},
		{"short prefix", "shelly/plugcoffee/events/rpc", "plugcoffee", true},
		{"no prefix", "plugcoffee/events/rpc", "plugcoffee", true},
		{"too few segments", "events/rpc", "", false},
		{"wrong suffix", "shelly/plugcoffee/status", "", false},
		{"rpc without events", "shelly/plugcoffee/other/rpc", "", false},
		{"empty device segment", "shelly//events/rpc", "", false},
		{"empty topic", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DeviceIDFromTopic(tt.topic)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DeviceIDFromTopic(%q) = (%q, %v), want (%q, %v)",
					tt.topic, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveDeviceID(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		topic string
		want  string
	}{
		{"topic wins", "shellyplugus-d48afc781ad8", "shelly/plugcoffee/events/rpc", "plugcoffee"},
		{"no topic falls back to src", "shellyplugus-d48afc781ad8", "", "d48afc781ad8"},
		{"unusable topic falls back to src", "shellyplugus-d48afc781ad8", "some/other/topic", "d48afc781ad8"},
		{"both fallbacks degenerate", "nodash", "", "nodash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDeviceID(tt.src, tt.topic); got != tt.want {
				t.Errorf("ResolveDeviceID(%q, %q) = %q, want %q", tt.src, tt.topic, got, tt.want)
			}
		})
	}
}
