package lottery

import (
	"context"
	"fmt"
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
	MsgIncomplete = "Remplis tous les champs avant de jouer !"
	MsgDuplicate  = "Tes numéros doivent tous être différents !"
	MsgSendFailed = "Erreur lors de l'envoi, réessaie plus tard !"
)

// Submit valida e envia o bilhete.
// Status "ok" do backend é sucesso e zera o bilhete; qualquer outro status vira
// aviso com a mensagem do backend, sem mexer no bilhete.
func (t *Ticket) Submit(ctx context.Context) error {
	t.mu.Lock()
	if t.sending {
		t.mu.Unlock()
		return ErrSubmissionInFlight
	}

	ev := events.TicketSubmitted{
		SessionID: t.sessionID,
		Username:  t.username,
		Numbers:   append([]int(nil), t.numbers...),
		Chance:    t.chance,
	}

	if msg := t.validateLocked(); msg != "" {
		t.notice = notify.Error(msg)
		t.mu.Unlock()
		t.finish(ctx, ev, events.OutcomeRejectedLocally, msg)
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	req := api.LotoRequest{
		Username: t.username,
		Numbers:  ev.Numbers,
		Chance:   t.chance,
	}
	t.sending = true
	t.notice.Dismiss()
	t.mu.Unlock()
	t.changed()

	res, err := t.deps.Backend.SubmitTicket(ctx, req)

	t.mu.Lock()
	t.sending = false
	if err != nil {
		t.notice = notify.Error(MsgSendFailed)
		t.mu.Unlock()
		t.deps.Log.Error("submit ticket", zap.String("session", t.sessionID), zap.Error(err))
		t.finish(ctx, ev, events.OutcomeFailed, err.Error())
		return fmt.Errorf("submit ticket: %w", err)
	}

	outcome := events.OutcomeAccepted
	if res.Status == api.LotoStatusOK {
		t.notice = notify.Success(res.Message)
		t.resetLocked()
	} else {
		outcome = events.OutcomeWarning
		t.notice = notify.Warning(res.Message)
	}
	t.mu.Unlock()

	t.finish(ctx, ev, outcome, res.Message)
	return nil
}

// validateLocked devolve a mensagem de erro, ou "" se o bilhete pode ser enviado
func (t *Ticket) validateLocked() string {
	r := t.deps.Rules

	if strings.TrimSpace(t.username) == "" || t.chance == 0 || len(t.numbers) != r.MainCount {
		return MsgIncomplete
	}
	for _, n := range t.numbers {
		if n == 0 {
			return MsgIncomplete
		}
	}

	if r.EnforceRanges {
		for _, n := range t.numbers {
			if n < r.MainMin || n > r.MainMax {
				return rangeMessage(r)
			}
		}
		if t.chance < r.ChanceMin || t.chance > r.ChanceMax {
			return rangeMessage(r)
		}
	}

	if r.RequireDistinct {
		seen := make(map[int]struct{}, len(t.numbers))
		for _, n := range t.numbers {
			if _, dup := seen[n]; dup {
				return MsgDuplicate
			}
			seen[n] = struct{}{}
		}
	}
	return ""
}

func rangeMessage(r Rules) string {
	return fmt.Sprintf("Les numéros vont de %d à %d et le numéro chance de %d à %d !",
		r.MainMin, r.MainMax, r.ChanceMin, r.ChanceMax)
}

func (t *Ticket) finish(ctx context.Context, ev events.TicketSubmitted, outcome, msg string) {
	t.changed()
	metrics.Submissions.WithLabelValues(metrics.FlowLoto, outcome).Inc()
	if t.deps.Events == nil {
		return
	}
	ev.Outcome = outcome
	ev.Message = msg
	ev.TsUnixMs = time.Now().UnixMilli()
	if err := t.deps.Events.PublishTicketSubmitted(ctx, ev); err != nil {
		t.deps.Log.Warn("publish loto_submitted", zap.String("session", t.sessionID), zap.Error(err))
	}
}

func (t *Ticket) changed() {
	if t.deps.Changed != nil {
		t.deps.Changed(t.sessionID)
	}
}
