package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aaronwald/mqtt2prom/internal/infrastructure/mqtt"
	"github.com/aaronwald/mqtt2prom/internal/metrics"
	"github.com/aaronwald/mqtt2prom/internal/shelly"
)

const (
	// subscribeQoS is at-most-once. Gauges only carry the latest
	// reading, so a dropped delta is repaired by the next status.
	subscribeQoS byte = 0

	// notificationSuffix marks device notification topics. Messages on
	// other topics under the subscribed filter are skipped.
	notificationSuffix = "/events/rpc"

	// defaultReconnectDelay is the fixed wait between retry cycles when
	// Options.Delay is not set.
	defaultReconnectDelay = 5 * time.Second
)

// Session is one live broker connection as the supervisor sees it.
// Implementations surface inbound traffic and connection loss through
// channels so the supervisor can multiplex them with its context.
type Session interface {
	// Subscribe registers the topic filter on the broker.
	Subscribe(topic string, qos byte) error

	// Messages returns the inbound message stream. The channel is
	// never closed; a dead session stops sending instead.
	Messages() <-chan mqtt.Message

	// Lost reports an unexpected disconnect. At most one error is
	// delivered per session.
	Lost() <-chan error

	// Close tears the session down and releases the network resources.
	// It is safe to call more than once.
	Close()
}

// DialFunc opens a fresh broker session. The supervisor calls it once
// per connection attempt and honours ctx cancellation between attempts,
// so implementations should respect ctx during the handshake.
type DialFunc func(ctx context.Context) (Session, error)

// Logger is the minimal logging interface the supervisor needs.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Options holds configuration for creating a Supervisor.
type Options struct {
	// Dial opens a broker session. Required.
	Dial DialFunc

	// Topic is the subscription filter, for example "shelly/#". Required.
	Topic string

	// Delay is the fixed wait between reconnect cycles. Zero means
	// defaultReconnectDelay.
	Delay time.Duration

	// Metrics receives the mapped device readings. Required.
	Metrics *metrics.Metrics

	// Telemetry receives the bridge's operational counters. Optional.
	Telemetry *metrics.Telemetry

	// Logger records lifecycle events and message outcomes. Optional.
	Logger Logger
}

// Supervisor drives the dial, subscribe, stream cycle and feeds every
// notification through the parse and map pipeline.
type Supervisor struct {
	dial      DialFunc
	topic     string
	delay     time.Duration
	metrics   *metrics.Metrics
	telemetry *metrics.Telemetry
	logger    Logger
}

// New validates opts and creates a Supervisor.
func New(opts Options) (*Supervisor, error) {
	if opts.Dial == nil {
		return nil, fmt.Errorf("dial function is required")
	}
	if opts.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if opts.Metrics == nil {
		return nil, fmt.Errorf("metrics are required")
	}

	delay := opts.Delay
	if delay <= 0 {
		delay = defaultReconnectDelay
	}

	return &Supervisor{
		dial:      opts.Dial,
		topic:     opts.Topic,
		delay:     delay,
		metrics:   opts.Metrics,
		telemetry: opts.Telemetry, // May be nil (optional)
		logger:    opts.Logger,    // May be nil (optional)
	}, nil
}

// Run drives the session lifecycle until ctx is cancelled and then
// returns nil. Transport failures are never fatal: each failed cycle
// ends in a fixed-delay wait followed by a fresh dial, so a broker
// outage spanning N delays costs exactly one connection attempt per
// delay.
func (s *Supervisor) Run(ctx context.Context) error {
	s.logInfo("supervisor starting", "topic", s.topic, "reconnect_delay", s.delay)

	for {
		err := s.runSession(ctx)
		s.telemetry.SetBrokerConnected(false)

		if ctx.Err() != nil {
			s.logInfo("supervisor stopped")
			return nil
		}

		if err != nil {
			s.logError("session failed", err)
		}

		s.logWarn("reconnecting", "delay", s.delay)
		select {
		case <-ctx.Done():
			s.logInfo("supervisor stopped")
			return nil
		case <-time.After(s.delay):
			s.telemetry.RecordReconnect()
		}
	}
}

// runSession performs one dial, subscribe, stream cycle. It returns
// nil only when ctx ended the session; every transport failure is an
// error for Run to log.
func (s *Supervisor) runSession(ctx context.Context) error {
	session, err := s.dial(ctx)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer session.Close()

	if err := session.Subscribe(s.topic, subscribeQoS); err != nil {
		return fmt.Errorf("subscribe %q: %w", s.topic, err)
	}

	s.telemetry.SetBrokerConnected(true)
	s.logInfo("streaming notifications", "topic", s.topic)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-session.Lost():
			if err != nil {
				return fmt.Errorf("connection lost: %w", err)
			}
			return errors.New("connection lost")
		case msg := <-session.Messages():
			s.handleMessage(msg)
		}
	}
}

// handleMessage runs one payload through the filter, parse, and map
// stages. It never blocks and never fails the session: every outcome
// is a counter and a log line.
func (s *Supervisor) handleMessage(msg mqtt.Message) {
	if !strings.HasSuffix(msg.Topic, notificationSuffix) {
		s.telemetry.RecordSkipped()
		s.logDebug("skipping non-notification topic", "topic", msg.Topic)
		return
	}

	if !utf8.Valid(msg.Payload) {
		s.telemetry.RecordMalformed()
		s.logWarn("dropping non-UTF-8 payload", "topic", msg.Topic, "bytes", len(msg.Payload))
		return
	}

	parsed, err := shelly.Parse(msg.Payload)
	switch {
	case errors.Is(err, shelly.ErrIgnoredMethod):
		s.telemetry.RecordIgnored()
		s.logDebug("ignoring notification", "topic", msg.Topic, "reason", err)
		return
	case err != nil:
		s.telemetry.RecordMalformed()
		s.logWarn("dropping malformed payload", "topic", msg.Topic, "error", err)
		return
	}

	s.metrics.Apply(parsed, msg.Topic)
	s.telemetry.RecordProcessed()
	s.logDebug("applied notification", "topic", msg.Topic, "src", parsed.Src, "method", parsed.Method)
}

// logDebug logs a debug message if a logger is configured.
func (s *Supervisor) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// logInfo logs an informational message if a logger is configured.
func (s *Supervisor) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

// logWarn logs a warning message if a logger is configured.
func (s *Supervisor) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Supervisor) logError(msg string, err error) {
	if s.logger != nil {
		s.logger.Error(msg, "error", err)
	}
}
