// Package shelly decodes Gen2 RPC notifications published by Shelly
// devices over MQTT.
//
// This package handles:
//   - Decoding NotifyFullStatus / NotifyStatus JSON payloads
//   - Rejecting NotifyEvent payloads (event logs, no metric content)
//   - Deriving a stable device identity from topic or source field
//
// # Message Shape
//
// Devices publish to <prefix>/<deviceName>/events/rpc. Every payload is a
// JSON-RPC notification:
//
//	{
//	  "src": "shellyplugus-d48afc781ad8",
//	  "dst": "shelly/plugcoffee/events",
//	  "method": "NotifyFullStatus",
//	  "params": {
//	    "switch:0": {"id": 0, "output": true, "apower": 125.5, ...},
//	    "wifi": {"rssi": -55},
//	    "sys": {"uptime": 12345}
//	  }
//	}
//
// Sections inside params are independently optional: a NotifyStatus delta
// may carry a single field. Unknown fields are ignored so newer firmware
// does not break decoding.
//
// # Parse Policy
//
// Parse distinguishes two failure classes so callers can log them at the
// right severity:
//   - ErrMalformedPayload: not valid JSON, or missing the mandatory
//     src/method envelope. Worth a warning.
//   - ErrIgnoredMethod: structurally valid NotifyEvent. Routine, debug only.
//
// # Device Identity
//
// The metric "device" label prefers the human-assigned topic segment
// (".../plugcoffee/events/rpc" -> "plugcoffee") and falls back to the
// factory suffix of src ("shellyplugus-d48afc781ad8" -> "d48afc781ad8").
// ResolveDeviceID applies that precedence in one place.
package shelly
