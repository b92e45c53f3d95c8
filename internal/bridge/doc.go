// Package bridge runs the connection supervisor that ties the MQTT
// session layer to the metrics mapper.
//
// # Lifecycle
//
// The supervisor owns a simple loop: dial the broker, subscribe to the
// configured topic filter, then stream notifications until the session
// dies or the context is cancelled. Any transport failure (dial,
// subscribe, or connection loss) sends the loop back to the start after
// a fixed delay. The delay never backs off: device telemetry is a
// steady trickle, and a predictable retry cadence is easier to reason
// about during broker maintenance than an exponential curve.
//
// Transport failures are never fatal. The only way Run returns is
// context cancellation, and that return is always nil.
//
// # Message Pipeline
//
// Each inbound message passes through three stages in order:
//
//  1. Topic filter: only topics ending in /events/rpc are device
//     notifications; everything else on the subscribed tree is skipped.
//  2. Payload checks: non-UTF-8 payloads are dropped before parsing.
//  3. Parse and map: valid notifications update the device gauges,
//     NotifyEvent notifications are ignored, malformed payloads are
//     dropped with a warning.
//
// Messages are handled one at a time, start to finish. Shutdown waits
// for the in-flight message before closing the session, so a
// half-applied notification can never be observed on the registry.
//
// # Usage
//
//	supervisor, err := bridge.New(bridge.Options{
//		Dial: func(ctx context.Context) (bridge.Session, error) {
//			return mqtt.Dial(ctx, cfg.MQTT)
//		},
//		Topic:     cfg.MQTT.Topic,
//		Delay:     cfg.GetReconnectDelay(),
//		Metrics:   devices,
//		Telemetry: telemetry,
//		Logger:    logger,
//	})
//	if err != nil {
//		return err
//	}
//	return supervisor.Run(ctx)
package bridge
