package shelly

// Method identifies the RPC notification type.
type Method string

const (
	// MethodNotifyFullStatus is a complete device status snapshot,
	// published on connect and periodically.
	MethodNotifyFullStatus Method = "NotifyFullStatus"

	// MethodNotifyStatus is an incremental delta carrying only the
	// sections that changed.
	MethodNotifyStatus Method = "NotifyStatus"

	// MethodNotifyEvent is an event log entry (button press, schedule
	// trigger). It carries no measurements and is never mapped.
	MethodNotifyEvent Method = "NotifyEvent"
)

// Message is one decoded RPC notification. Built per inbound publish,
// read once by the metric mapper, then dropped; nothing retains it.
type Message struct {
	// Src is the device-reported source, <product-slug>-<hex-id>
	// (e.g. "shellyplugus-d48afc781ad8").
	Src string `json:"src"`

	// Dst echoes the device's configured notification topic. Debugging
	// aid only; identity never derives from it.
	Dst string `json:"dst,omitempty"`

	// Method is the notification type.
	Method Method `json:"method"`

	// Params holds the status sections. Each is independently optional.
	Params Params `json:"params"`
}

// Params is the open set of status sections a notification may carry.
// Pointer fields distinguish "absent" from "zero"; absent sections are
// skipped by the mapper, never zeroed.
type Params struct {
	// Switch is the first switch channel ("switch:0"). Plugs and relays
	// report power measurements here.
	Switch *SwitchStatus `json:"switch:0,omitempty"`

	// Wifi carries signal strength.
	Wifi *WifiStatus `json:"wifi,omitempty"`

	// Sys carries device runtime info. Decoded for completeness, not mapped.
	Sys *SysStatus `json:"sys,omitempty"`

	// Temperature is the standalone sensor channel ("temperature:0"),
	// reported by H&T-class devices.
	Temperature *TemperatureStatus `json:"temperature:0,omitempty"`

	// Humidity is the standalone sensor channel ("humidity:0").
	Humidity *HumidityStatus `json:"humidity:0,omitempty"`

	// DevicePower carries battery state ("devicepower:0") on
	// battery-operated devices.
	DevicePower *DevicePowerStatus `json:"devicepower:0,omitempty"`
}

// SwitchStatus is the status of one switch channel.
type SwitchStatus struct {
	// ID is the channel index, used as the "switch" metric label.
	ID int `json:"id"`

	// Output is the relay state.
	Output *bool `json:"output,omitempty"`

	// APower is active power in watts.
	APower *float64 `json:"apower,omitempty"`

	// Voltage is line voltage in volts.
	Voltage *float64 `json:"voltage,omitempty"`

	// Current is the current draw in amps.
	Current *float64 `json:"current,omitempty"`

	// AEnergy is the accumulated energy counter. Deltas that only toggle
	// the output omit it.
	AEnergy *EnergyCounters `json:"aenergy,omitempty"`

	// Temperature is the internal temperature of the switch hardware.
	Temperature *TemperatureStatus `json:"temperature,omitempty"`
}

// EnergyCounters is the accumulated energy report of a switch channel.
type EnergyCounters struct {
	// Total is lifetime energy in watt-hours.
	Total float64 `json:"total"`

	// ByMinute holds per-minute mWh samples for the last three minutes.
	// Decoded for completeness, not mapped.
	ByMinute []float64 `json:"by_minute,omitempty"`

	// MinuteTS is the Unix timestamp of the last ByMinute slot.
	MinuteTS int64 `json:"minute_ts,omitempty"`
}

// TemperatureStatus is a temperature reading in both scales. Only the
// celsius value is mapped.
type TemperatureStatus struct {
	ID int     `json:"id"`
	TC float64 `json:"tC"`
	TF float64 `json:"tF"`
}

// HumidityStatus is a relative humidity reading.
type HumidityStatus struct {
	ID int     `json:"id"`
	RH float64 `json:"rh"`
}

// WifiStatus carries WiFi link state. Only RSSI is mapped.
type WifiStatus struct {
	// RSSI is signal strength in dBm (negative, closer to zero is stronger).
	RSSI int `json:"rssi"`
}

// SysStatus carries device runtime information.
type SysStatus struct {
	Uptime int64 `json:"uptime,omitempty"`
}

// DevicePowerStatus is the power-source status of a battery device.
type DevicePowerStatus struct {
	ID int `json:"id"`

	// Battery is present on battery-operated devices.
	Battery *BatteryStatus `json:"battery,omitempty"`

	// External reports USB power presence. Decoded for completeness,
	// not mapped.
	External *ExternalPower `json:"external,omitempty"`
}

// BatteryStatus is a battery charge reading.
type BatteryStatus struct {
	// Volts is battery voltage. The wire key is a bare "V".
	Volts float64 `json:"V"`

	// Percent is the estimated charge percentage.
	Percent float64 `json:"percent"`
}

// ExternalPower reports whether external power is connected.
type ExternalPower struct {
	Present bool `json:"present"`
}
