package shelly

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Topic suffix segments devices publish notifications under.
const (
	topicEventsSegment = "events"
	topicRPCSegment    = "rpc"
)

// Parse decodes one MQTT payload into a Message.
//
// Failures map to the two sentinel classes: invalid JSON or a missing
// envelope wrap ErrMalformedPayload, a valid NotifyEvent wraps
// ErrIgnoredMethod. Unknown params fields are ignored.
func Parse(payload []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if msg.Src == "" {
		return nil, fmt.Errorf("%w: missing src", ErrMalformedPayload)
	}

	switch msg.Method {
	case MethodNotifyFullStatus, MethodNotifyStatus:
		return &msg, nil
	case MethodNotifyEvent:
		return nil, fmt.Errorf("%w: %s", ErrIgnoredMethod, msg.Method)
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrMalformedPayload, string(msg.Method))
	}
}

// DeviceIDFromSource derives a device identity from the src field by
// taking everything after the last '-'. A src without a '-' is returned
// unchanged.
//
//	"shellyplugus-d48afc781ad8" -> "d48afc781ad8"
func DeviceIDFromSource(src string) string {
	if i := strings.LastIndex(src, "-"); i >= 0 {
		return src[i+1:]
	}
	return src
}

// DeviceIDFromTopic derives a device identity from a publish topic.
// Topics shaped ".../<deviceName>/events/rpc" yield the third-from-last
// segment; any other shape reports false.
//
//	"shelly/plugcoffee/events/rpc" -> "plugcoffee", true
func DeviceIDFromTopic(topic string) (string, bool) {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 {
		return "", false
	}
	if parts[len(parts)-1] != topicRPCSegment || parts[len(parts)-2] != topicEventsSegment {
		return "", false
	}
	name := parts[len(parts)-3]
	if name == "" {
		return "", false
	}
	return name, true
}

// ResolveDeviceID returns the device identity for metric labels. The
// human-assigned topic segment wins when the topic has the expected
// shape; otherwise the factory suffix of src is used. Pass an empty
// topic when none is known.
func ResolveDeviceID(src, topic string) string {
	if topic != "" {
		if name, ok := DeviceIDFromTopic(topic); ok {
			return name
		}
	}
	return DeviceIDFromSource(src)
}
