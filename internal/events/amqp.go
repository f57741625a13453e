package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"ledgerly/internal/logger"
)

const (
	publishTimeout = 5 * time.Second
	dialTimeout    = 3 * time.Second
	redialBackoff  = 10 * time.Second
)

var (
	errPublisherClosed = errors.New("publisher closed")
	errDisconnected    = errors.New("broker unavailable, waiting to redial")
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// session is one live connection and the channel opened on it. done fires
// when the broker drops the connection.
type session struct {
	conn    io.Closer
	channel amqpChannel
	done    <-chan *amqp091.Error
}

func (s *session) alive() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *session) close() {
	s.channel.Close()
	if s.conn != nil {
		s.conn.Close()
	}
}

// AMQPPublisher publishes events to a durable topic exchange. When the
// broker goes away the session is dropped and the next Publish redials, at
// most once per redialBackoff.
type AMQPPublisher struct {
	exchange string
	dial     func() (*session, error)
	now      func() time.Time

	// amqp091 channels are not safe for concurrent publishing.
	mu         sync.Mutex
	session    *session
	lastDialAt time.Time
	closed     bool
}

// NewAMQPPublisher dials the broker and declares the exchange. The first
// dial must succeed; later ones happen on demand.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	p := &AMQPPublisher{
		exchange: exchange,
		dial:     func() (*session, error) { return dialSession(url, exchange) },
		now:      time.Now,
	}

	s, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.session = s
	p.lastDialAt = p.now()
	return p, nil
}

func dialSession(url, exchange string) (*session, error) {
	conn, err := amqp091.DialConfig(url, amqp091.Config{Dial: amqp091.DefaultDial(dialTimeout)})
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	done := conn.NotifyClose(make(chan *amqp091.Error, 1))
	return &session{conn: conn, channel: ch, done: done}, nil
}

// current returns a usable session, redialling if the last one died.
// Callers hold p.mu.
func (p *AMQPPublisher) current() (*session, error) {
	if p.closed {
		return nil, errPublisherClosed
	}
	if p.session != nil && p.session.alive() {
		return p.session, nil
	}
	if p.session != nil {
		logger.Get().Warnw("AMQP connection lost", "exchange", p.exchange)
		p.session.close()
		p.session = nil
	}

	now := p.now()
	if now.Sub(p.lastDialAt) < redialBackoff {
		return nil, errDisconnected
	}
	p.lastDialAt = now

	s, err := p.dial()
	if err != nil {
		return nil, fmt.Errorf("redial: %w", err)
	}
	logger.Get().Infow("AMQP connection restored", "exchange", p.exchange)
	p.session = s
	return s, nil
}

// Publish sends the event as a persistent JSON message routed by its type.
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := event.Marshal()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.current()
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	err = s.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
			Body:         body,
		},
	)
	if err != nil {
		if errors.Is(err, amqp091.ErrClosed) {
			s.close()
			p.session = nil
		}
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	logger.Get().Debugw("published event",
		"type", event.Type,
		"resource_id", event.ResourceID,
		"exchange", p.exchange,
	)
	return nil
}

// Close shuts down the channel and connection. Publish fails afterwards.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.session == nil {
		return nil
	}
	s := p.session
	p.session = nil
	s.channel.Close()
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
