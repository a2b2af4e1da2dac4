package betslip

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/bet-loto-web/internal/shared/metrics"
	"github.com/radieske/bet-loto-web/internal/web-app/notify"
	"github.com/radieske/bet-loto-web/pkg/contracts/api"
	"github.com/radieske/bet-loto-web/pkg/contracts/events"
)

// Mensagens exibidas ao usuário
const (
	MsgMissingName      = "Entre ton nom avant de valider ton pari !"
	MsgMissingSelection = "Sélectionne au moins un pari et entre ta mise !"
	MsgSendFailed       = "Erreur lors de l'envoi du pari."
)

// Submit valida e envia o cupom.
//
// Idle -> Validating -> inválido (aviso, sem rede) | Sending -> sucesso (estado
// zerado) | falha (mensagem genérica). Um segundo Submit durante o envio
// devolve ErrSubmissionInFlight sem chamar o backend.
func (s *Slip) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}

	ev := events.BetSubmitted{
		SessionID:     s.sessionID,
		Username:      s.bettor,
		Selections:    append([]api.Selection(nil), s.selections...),
		Stake:         s.stake,
		TotalOdds:     s.totalOdds,
		PotentialGain: s.potentialGain,
	}

	if msg := s.validateLocked(); msg != "" {
		s.notice = notify.Error(msg)
		s.mu.Unlock()
		s.finish(ctx, ev, events.OutcomeRejectedLocally, msg)
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	stake, _ := ParseStake(s.stake)
	req := api.BetRequest{
		Username:   s.bettor,
		Selections: ev.Selections,
		Stake:      stake,
	}
	s.sending = true
	s.notice.Dismiss()
	s.mu.Unlock()
	s.changed()

	res, err := s.deps.Bets.PlaceBet(ctx, req)

	s.mu.Lock()
	s.sending = false
	if err != nil {
		s.notice = notify.Error(MsgSendFailed)
		s.mu.Unlock()
		s.deps.Log.Error("submit bet", zap.String("session", s.sessionID), zap.Error(err))
		s.finish(ctx, ev, events.OutcomeFailed, err.Error())
		return fmt.Errorf("submit bet: %w", err)
	}

	s.notice = notify.Success(confirmation(res))
	s.selections = nil
	s.stake = ""
	s.bettor = ""
	s.recomputeLocked()
	s.mu.Unlock()

	s.finish(ctx, ev, events.OutcomeAccepted, res.Message)
	return nil
}

// validateLocked devolve a mensagem de erro, ou "" se o cupom pode ser enviado
func (s *Slip) validateLocked() string {
	if strings.TrimSpace(s.bettor) == "" {
		return MsgMissingName
	}
	if _, ok := ParseStake(s.stake); len(s.selections) == 0 || !ok {
		return MsgMissingSelection
	}
	return ""
}

func (s *Slip) finish(ctx context.Context, ev events.BetSubmitted, outcome, msg string) {
	s.changed()
	metrics.Submissions.WithLabelValues(metrics.FlowBet, outcome).Inc()
	if s.deps.Events == nil {
		return
	}
	ev.Outcome = outcome
	ev.Message = msg
	ev.TsUnixMs = time.Now().UnixMilli()
	if err := s.deps.Events.PublishBetSubmitted(ctx, ev); err != nil {
		s.deps.Log.Warn("publish bet_submitted", zap.String("session", s.sessionID), zap.Error(err))
	}
}

func confirmation(res api.BetResponse) string {
	return fmt.Sprintf("%s\nCote totale : %s\nGain potentiel : %s €",
		res.Message,
		strconv.FormatFloat(res.TotalOdds, 'f', -1, 64),
		strconv.FormatFloat(res.PotentialGain, 'f', -1, 64),
	)
}

func (s *Slip) changed() {
	if s.deps.Changed != nil {
		s.deps.Changed(s.sessionID)
	}
}
