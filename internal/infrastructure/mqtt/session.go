package mqtt

import (
	"context"
	"fmt"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/aaronwald/mqtt2prom/internal/infrastructure/config"
)

// Message is one inbound publish delivered through Session.Messages.
type Message struct {
	Topic   string
	Payload []byte
}

// Session is a single broker connection. It lives for exactly one
// connect-subscribe-stream cycle; on connection loss the owner closes it
// and dials a new one.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Session struct {
	client pahomqtt.Client

	// messages carries inbound publishes to the consumer. Never closed;
	// consumers stop reading after Close.
	messages chan Message

	// lost receives the first connection-loss error. Capacity 1: later
	// losses on a session already being torn down carry no information.
	lost chan error

	// closed unblocks in-flight handler sends during teardown.
	closed    chan struct{}
	closeOnce sync.Once
}

// Dial connects to the broker described by cfg and returns a live
// Session. The attempt is bounded by the connect timeout and aborts
// early if ctx is cancelled.
//
// Returns:
//   - *Session: Connected session ready for Subscribe
//   - error: Wrapping ErrConnectionFailed if the attempt fails
func Dial(ctx context.Context, cfg config.MQTTConfig) (*Session, error) {
	s := &Session{
		messages: make(chan Message, defaultInboundBuffer),
		lost:     make(chan error, 1),
		closed:   make(chan struct{}),
	}

	opts := buildClientOptions(cfg)
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		s.reportLoss(err)
	})

	s.client = pahomqtt.NewClient(opts)

	token := s.client.Connect()
	select {
	case <-token.Done():
	case <-ctx.Done():
		s.client.Disconnect(0)
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, ctx.Err())
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return s, nil
}

// Subscribe registers the session's subscription and starts feeding
// Messages(). Call once per session; the supervisor subscribes fresh
// after every dial.
//
// The paho callback blocks when the inbound buffer is full, which
// backpressures the broker connection rather than dropping payloads.
func (s *Session) Subscribe(topic string, qos byte) error {
	if topic == "" {
		return ErrInvalidTopic
	}

	token := s.client.Subscribe(topic, qos, func(_ pahomqtt.Client, m pahomqtt.Message) {
		s.forward(m.Topic(), m.Payload())
	})

	if !token.WaitTimeout(defaultSubscribeTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrSubscribeFailed, defaultSubscribeTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}

	return nil
}

// forward hands one inbound publish to the consumer, blocking when the
// buffer is full. Teardown unblocks it via the closed signal.
func (s *Session) forward(topic string, payload []byte) {
	select {
	case s.messages <- Message{Topic: topic, Payload: payload}:
	case <-s.closed:
	}
}

// reportLoss delivers a connection-loss error without blocking. Only
// the first loss matters; later ones are dropped.
func (s *Session) reportLoss(err error) {
	select {
	case s.lost <- err:
	default:
	}
}

// Messages returns the inbound message channel. The channel is never
// closed; select against Lost() and the caller's context instead.
func (s *Session) Messages() <-chan Message {
	return s.messages
}

// Lost reports connection loss. At most one error is ever delivered.
func (s *Session) Lost() <-chan error {
	return s.lost
}

// IsConnected returns the current connection state.
func (s *Session) IsConnected() bool {
	return s.client != nil && s.client.IsConnected()
}

// Close disconnects from the broker, allowing a quiesce period for
// in-flight work. Safe to call multiple times and safe on sessions
// whose connection already dropped.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.client != nil {
			s.client.Disconnect(defaultDisconnectQuiesce)
		}
	})
}
