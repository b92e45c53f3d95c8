package shelly

import "errors"

// Parse failure classes. Use errors.Is() to distinguish them in calling code.
var (
	// ErrMalformedPayload is returned when a payload is not valid JSON or
	// lacks the mandatory notification envelope (src, method).
	ErrMalformedPayload = errors.New("shelly: malformed payload")

	// ErrIgnoredMethod is returned for structurally valid notifications
	// that carry no metric content (NotifyEvent). Callers should treat
	// this as "nothing to do", not as a fault.
	ErrIgnoredMethod = errors.New("shelly: notification method carries no metrics")
)
