// Package mqtt provides the broker session layer for mqtt2prom.
//
// This package manages:
//   - Dialing the broker with timeout and context cancellation
//   - A single subscription feeding an inbound message channel
//   - Connection-loss signalling for the supervisor
//   - Clean disconnect with a quiesce period
//
// # Architecture
//
// A Session is one connection attempt's worth of state. The bridge
// supervisor dials a fresh Session per attempt, subscribes once, and
// drains Messages() until Lost() fires or shutdown begins. Recovery
// policy (the fixed reconnect delay) lives entirely in the supervisor;
// paho's own auto-reconnect is disabled so only one retry mechanism
// exists.
//
//	Supervisor -> Dial -> Session.Subscribe -> Session.Messages()
//	                    ^                                |
//	                    +---- fixed delay <-- Lost() ----+
//
// # Security Considerations
//
//   - TLS is enabled via mqtt.broker.tls (minimum TLS 1.2)
//   - Credentials are passed to the broker, never logged
//   - Anonymous access is only for local development
//
// # Usage
//
//	session, err := mqtt.Dial(ctx, cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	if err := session.Subscribe("shelly/#", 0); err != nil {
//	    return err
//	}
//	for msg := range session.Messages() {
//	    handle(msg.Topic, msg.Payload)
//	}
package mqtt
