package producer

import (
	"context"

	skafka "github.com/radieske/bet-loto-web/internal/shared/kafka"
	"github.com/radieske/bet-loto-web/pkg/contracts/events"
)

// MessageWriter é o subconjunto de *kafka.Writer que usamos
type MessageWriter = skafka.MessageWriter

// KafkaPublisher publica o resultado das submissões, chaveado pela sessão.
// Um writer nil desativa o tópico correspondente.
type KafkaPublisher struct {
	Bets    MessageWriter
	Tickets MessageWriter
}

func NewKafkaPublisher(bets, tickets MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Bets: bets, Tickets: tickets}
}

func (p *KafkaPublisher) PublishBetSubmitted(ctx context.Context, e events.BetSubmitted) error {
	if p.Bets == nil {
		return nil
	}
	return skafka.WriteJSON(ctx, p.Bets, e.SessionID, e)
}

func (p *KafkaPublisher) PublishTicketSubmitted(ctx context.Context, e events.TicketSubmitted) error {
	if p.Tickets == nil {
		return nil
	}
	return skafka.WriteJSON(ctx, p.Tickets, e.SessionID, e)
}
