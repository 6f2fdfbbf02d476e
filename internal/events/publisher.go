// Package events publishes audit events to RabbitMQ for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/mobile-barber/internal/audit"
)

const DefaultQueue = "booking.events"

type Message struct {
	Action     string          `json:"action"`
	Entity     string          `json:"entity"`
	EntityID   *string         `json:"entity_id,omitempty"`
	ActorID    *string         `json:"actor_id,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	OccurredAt string          `json:"occurred_at"`
}

func Encode(ev audit.Event) ([]byte, error) {
	msg := Message{
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		ActorID:    ev.ActorID,
		OccurredAt: ev.OccurredAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if meta := audit.EncodeMetadata(ev.Metadata); meta != "" {
		msg.Metadata = json.RawMessage(meta)
	}
	return json.Marshal(msg)
}

// AMQPPublisher keeps one connection and channel open and redials after a failure.
type AMQPPublisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

var _ audit.Sink = (*AMQPPublisher)(nil)

func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	if queue == "" {
		queue = DefaultQueue
	}
	return &AMQPPublisher{url: url, queue: queue}
}

// Log implements audit.Sink.
func (p *AMQPPublisher) Log(ctx context.Context, ev audit.Event) error {
	body, err := Encode(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt.UTC(),
		Type:         ev.Action,
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.reset()
		return fmt.Errorf("publish %s: %w", ev.Action, err)
	}
	return nil
}

// channel must be called with p.mu held.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
