package producer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/bet-loto-web/pkg/contracts/events"
)

type memWriter struct{ msgs []kafka.Message }

func (w *memWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	bets, tickets := &memWriter{}, &memWriter{}
	p := NewKafkaPublisher(bets, tickets)

	require.NoError(t, p.PublishBetSubmitted(context.Background(), events.BetSubmitted{
		SessionID: "s1", Username: "Jean", Outcome: events.OutcomeAccepted,
	}))
	require.NoError(t, p.PublishTicketSubmitted(context.Background(), events.TicketSubmitted{
		SessionID: "s2", Numbers: []int{1, 2, 3, 4, 5}, Chance: 6, Outcome: events.OutcomeWarning,
	}))

	require.Len(t, bets.msgs, 1)
	assert.Equal(t, "s1", string(bets.msgs[0].Key))
	var be events.BetSubmitted
	require.NoError(t, json.Unmarshal(bets.msgs[0].Value, &be))
	assert.Equal(t, "Jean", be.Username)

	require.Len(t, tickets.msgs, 1)
	var te events.TicketSubmitted
	require.NoError(t, json.Unmarshal(tickets.msgs[0].Value, &te))
	assert.Equal(t, events.OutcomeWarning, te.Outcome)
}

func TestKafkaPublisher_DisabledTopics(t *testing.T) {
	p := NewKafkaPublisher(nil, nil)
	assert.NoError(t, p.PublishBetSubmitted(context.Background(), events.BetSubmitted{}))
	assert.NoError(t, p.PublishTicketSubmitted(context.Background(), events.TicketSubmitted{}))
}
