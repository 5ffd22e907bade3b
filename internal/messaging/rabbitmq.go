// Package messaging hands validated cases over to the adjudication stage.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"argprep/internal/config"
)

// SideArgument is the opaque per-side payload forwarded to the adjudicator.
type SideArgument struct {
	CombinedText string `json:"combined_text"`
	PointCount   int    `json:"point_count"`
	FileCount    int    `json:"file_count"`
}

// AdjudicationRequested is published once a case passes validation.
type AdjudicationRequested struct {
	CaseID      string       `json:"case_id"`
	SideA       SideArgument `json:"side_a"`
	SideB       SideArgument `json:"side_b"`
	Order       []string     `json:"arguments_order"`
	RequestedAt time.Time    `json:"requested_at"`
}

// Publisher delivers adjudication requests.
type Publisher interface {
	PublishAdjudicationRequested(ctx context.Context, event *AdjudicationRequested) error
	Close() error
}

// channel is the subset of *amqp091.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type rabbitPublisher struct {
	conn       *amqp091.Connection
	channel    channel
	exchange   string
	routingKey string
	logger     zerolog.Logger
}

// NewRabbitMQ dials the broker and declares a durable direct exchange with
// a durable queue bound to the configured routing key.
func NewRabbitMQ(cfg config.RabbitMQConfig, logger zerolog.Logger) (Publisher, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	fail := func(step string, err error) (Publisher, error) {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to %s: %w", step, err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		return fail("declare exchange", err)
	}
	q, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fail("declare queue", err)
	}
	if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fail("bind queue", err)
	}

	logger.Info().
		Str("component", "messaging").
		Str("exchange", cfg.Exchange).
		Str("queue", q.Name).
		Str("routing_key", cfg.RoutingKey).
		Msg("connected to RabbitMQ")

	return &rabbitPublisher{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

func (p *rabbitPublisher) PublishAdjudicationRequested(ctx context.Context, event *AdjudicationRequested) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(publishCtx, p.exchange, p.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.CaseID,
		Timestamp:    event.RequestedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Info().
		Str("component", "messaging").
		Str("case_id", event.CaseID).
		Msg("adjudication requested event published")
	return nil
}

func (p *rabbitPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
		}
	}
	return nil
}

// Noop is used when no broker is configured. Events are only logged.
type Noop struct {
	Logger zerolog.Logger
}

func (n Noop) PublishAdjudicationRequested(_ context.Context, event *AdjudicationRequested) error {
	n.Logger.Warn().
		Str("component", "messaging").
		Str("case_id", event.CaseID).
		Msg("no broker configured, adjudication request not forwarded")
	return nil
}

func (Noop) Close() error { return nil }
