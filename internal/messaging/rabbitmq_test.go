package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange, key string
	msg           amqp091.Publishing
	deadline      bool
	err           error
	closed        bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	_, f.deadline = ctx.Deadline()
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestRabbitPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &rabbitPublisher{channel: ch, exchange: "adjudication", routingKey: "case.ready", logger: zerolog.Nop()}

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ev := &AdjudicationRequested{
		CaseID:      "case-1",
		SideA:       SideArgument{CombinedText: "1. Pay", PointCount: 1, FileCount: 1},
		SideB:       SideArgument{CombinedText: "1. Refuse", PointCount: 1, FileCount: 1},
		Order:       []string{"Round 1: Side A", "Round 2: Side B"},
		RequestedAt: at,
	}

	require.NoError(t, p.PublishAdjudicationRequested(context.Background(), ev))

	assert.Equal(t, "adjudication", ch.exchange)
	assert.Equal(t, "case.ready", ch.key)
	assert.True(t, ch.deadline)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "case-1", ch.msg.MessageId)

	var got AdjudicationRequested
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, *ev, got)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := &rabbitPublisher{channel: ch, logger: zerolog.Nop()}

	err := p.PublishAdjudicationRequested(context.Background(), &AdjudicationRequested{CaseID: "c"})
	assert.EqualError(t, err, "failed to publish message: channel closed")
}

func TestNoop(t *testing.T) {
	var buf bytes.Buffer
	n := Noop{Logger: zerolog.New(&buf)}

	assert.NoError(t, n.PublishAdjudicationRequested(context.Background(), &AdjudicationRequested{CaseID: "case-9"}))
	assert.Contains(t, buf.String(), "case-9")
	assert.NoError(t, n.Close())
}
