package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aaronwald/mqtt2prom/internal/shelly"
)

// Metric label names.
const (
	// labelDevice is the resolved device identity (topic segment or
	// factory suffix of src).
	labelDevice = "device"

	// labelSwitch is the switch channel index ("0" for single-channel
	// plugs).
	labelSwitch = "switch"
)

// Metrics holds the exported device gauge families. Construct with New;
// the zero value is not usable.
type Metrics struct {
	switchPower    *prometheus.GaugeVec
	switchVoltage  *prometheus.GaugeVec
	switchCurrent  *prometheus.GaugeVec
	switchEnergy   *prometheus.GaugeVec
	switchState    *prometheus.GaugeVec
	temperature    *prometheus.GaugeVec
	humidity       *prometheus.GaugeVec
	batteryPercent *prometheus.GaugeVec
	batteryVoltage *prometheus.GaugeVec
	wifiRSSI       *prometheus.GaugeVec
}

// New registers the ten device gauge families on reg and returns the
// set. Registration panics on duplicate names, so call once per
// registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	switchLabels := []string{labelDevice, labelSwitch}
	deviceLabels := []string{labelDevice}

	return &Metrics{
		switchPower: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shelly_switch_power_watts",
			Help: "Current power consumption in watts",
		}, switchLabels),

		switchVoltage: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shelly_switch_voltage_volts",
			Help: "Line voltage in volts",
		}, switchLabels),

		switchCurrent: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shelly_switch_current_amps",
			Help: "Current draw in amps",
		}, switchLabels),

		switchEnergy: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shelly_switch_energy_total_wh",
			Help: "Total energy consumed in watt-hours",
		}, switchLabels),

		switchState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shelly_switch_state",
			Help: "Switch output state (0=off, 1=on)",
		}, switchLabels),

		temperature: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shelly_temperature_celsius",
			Help: "Device temperature in celsius",
		}, deviceLabels),

		humidity: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shelly_humidity_percent",
			Help: "Relative humidity percentage",
		}, deviceLabels),

		batteryPercent: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shelly_battery_percent",
			Help: "Battery charge percentage",
		}, deviceLabels),

		batteryVoltage: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shelly_battery_voltage",
			Help: "Battery voltage in volts",
		}, deviceLabels),

		wifiRSSI: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shelly_wifi_rssi_dbm",
			Help: "WiFi signal strength in dBm",
		}, deviceLabels),
	}
}

// Apply maps one notification onto the gauges. Each reading updates its
// gauge only when the field is present; absent fields leave prior
// samples untouched. Apply never fails and is safe for repeated calls
// with the same message.
//
// Pass the publish topic when known (it drives identity resolution) or
// an empty string to fall back to the src suffix.
func (m *Metrics) Apply(msg *shelly.Message, topic string) {
	if msg == nil {
		return
	}

	device := shelly.ResolveDeviceID(msg.Src, topic)

	if sw := msg.Params.Switch; sw != nil {
		labels := prometheus.Labels{
			labelDevice: device,
			labelSwitch: strconv.Itoa(sw.ID),
		}

		if sw.APower != nil {
			m.switchPower.With(labels).Set(truncate(*sw.APower, 1))
		}
		if sw.Voltage != nil {
			m.switchVoltage.With(labels).Set(truncate(*sw.Voltage, 10))
		}
		if sw.Current != nil {
			m.switchCurrent.With(labels).Set(truncate(*sw.Current, 1000))
		}
		if sw.AEnergy != nil {
			m.switchEnergy.With(labels).Set(truncate(sw.AEnergy.Total, 10))
		}
		if sw.Output != nil {
			state := 0.0
			if *sw.Output {
				state = 1.0
			}
			m.switchState.With(labels).Set(state)
		}

		// The relay's internal temperature reports per device, not per
		// channel, matching the standalone sensor gauge.
		if sw.Temperature != nil {
			m.temperature.WithLabelValues(device).Set(truncate(sw.Temperature.TC, 10))
		}
	}

	if temp := msg.Params.Temperature; temp != nil {
		m.temperature.WithLabelValues(device).Set(truncate(temp.TC, 10))
	}

	if hum := msg.Params.Humidity; hum != nil {
		m.humidity.WithLabelValues(device).Set(truncate(hum.RH, 10))
	}

	if dp := msg.Params.DevicePower; dp != nil && dp.Battery != nil {
		m.batteryPercent.WithLabelValues(device).Set(truncate(dp.Battery.Percent, 1))
		m.batteryVoltage.WithLabelValues(device).Set(truncate(dp.Battery.Volts, 100))
	}

	if wifi := msg.Params.Wifi; wifi != nil {
		m.wifiRSSI.WithLabelValues(device).Set(float64(wifi.RSSI))
	}
}

// truncate scales a reading into its target unit and truncates toward
// zero. Gauges carry integer values only (122.3 V becomes 1223
// decivolts, not 1223.0000000000002).
func truncate(v, scale float64) float64 {
	return float64(int64(v * scale))
}
