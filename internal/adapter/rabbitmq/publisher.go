// Package rabbitmq publishes relayed outbox events to a topic exchange.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const dialTimeout = 10 * time.Second

// Publisher publishes JSON messages to a durable topic exchange. The
// connection is opened on first use and reopened after a failure.
type Publisher struct {
	url      string
	exchange string
	log      *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// New validates the broker URL and returns a Publisher. No connection is made
// until the first Publish.
func New(rawURL, exchange string, logger *slog.Logger) (*Publisher, error) {
	clean, err := sanitizeURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: %w", err)
	}
	if strings.TrimSpace(exchange) == "" {
		return nil, errors.New("rabbitmq: exchange is required")
	}
	return &Publisher{
		url:      clean,
		exchange: exchange,
		log:      logger.With("component", "rabbitmq"),
	}, nil
}

// Publish sends body with routing key topic. messageID lets consumers drop
// redeliveries.
func (p *Publisher) Publish(ctx context.Context, topic, messageID string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	err := p.channel.PublishWithContext(ctx, p.exchange, topic, false, false, msg)
	if err == nil {
		return nil
	}

	// One reopen of the channel, then give up until the next relay tick.
	p.log.WarnContext(ctx, "publish failed, reopening channel",
		slog.String("topic", topic),
		slog.String("error", err.Error()),
	)
	p.closeLocked()
	if err := p.ensureChannel(); err != nil {
		return err
	}
	if err := p.channel.PublishWithContext(ctx, p.exchange, topic, false, false, msg); err != nil {
		p.closeLocked()
		return fmt.Errorf("rabbitmq: publish %s: %w", topic, err)
	}
	return nil
}

// Ping reports whether a channel to the broker is open, dialing if needed.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ensureChannel()
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

func (p *Publisher) ensureChannel() error {
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
		if err != nil {
			return fmt.Errorf("rabbitmq: dial: %w", err)
		}
		p.conn = conn
		p.channel = nil
	}

	if p.channel == nil || p.channel.IsClosed() {
		ch, err := p.conn.Channel()
		if err != nil {
			return fmt.Errorf("rabbitmq: open channel: %w", err)
		}
		if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return fmt.Errorf("rabbitmq: declare exchange %s: %w", p.exchange, err)
		}
		p.channel = ch
	}
	return nil
}

func (p *Publisher) closeLocked() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// sanitizeURL strips quotes and stray prefixes that deployment tooling tends
// to leave around AMQP URLs.
func sanitizeURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	if idx := strings.Index(strings.ToLower(clean), "amqp"); idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("scheme must be amqp:// or amqps://")
	}
	return clean, nil
}
