// Package lottery mantém o bilhete de loto de uma sessão: 5 números, o número
// chance e o nome do jogador.
package lottery

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/bet-loto-web/internal/web-app/notify"
	"github.com/radieske/bet-loto-web/pkg/contracts/api"
	"github.com/radieske/bet-loto-web/pkg/contracts/events"
)

var (
	ErrSubmissionInFlight = errors.New("ticket submission already in flight")
	ErrValidation         = errors.New("invalid ticket")
	ErrSlotIndex          = errors.New("number slot out of range")
)

// Rules define o formato do bilhete.
type Rules struct {
	MainCount int
	MainMin   int
	MainMax   int
	ChanceMin int
	ChanceMax int

	// EnforceRanges recusa números fora de [MainMin,MainMax] e chance fora de [ChanceMin,ChanceMax]
	EnforceRanges bool
	// RequireDistinct recusa números repetidos. Desligado por padrão: a regra
	// ainda não foi confirmada pelo produto.
	RequireDistinct bool
}

func DefaultRules() Rules {
	return Rules{
		MainCount:     5,
		MainMin:       1,
		MainMax:       49,
		ChanceMin:     1,
		ChanceMax:     10,
		EnforceRanges: true,
	}
}

// TicketSubmitter envia o bilhete ao backend
type TicketSubmitter interface {
	SubmitTicket(ctx context.Context, req api.LotoRequest) (api.LotoResponse, error)
}

// Publisher recebe o resultado de cada tentativa de envio
type Publisher interface {
	PublishTicketSubmitted(ctx context.Context, e events.TicketSubmitted) error
}

type Deps struct {
	Backend TicketSubmitter
	Events  Publisher // opcional
	Rules   Rules
	Log     *zap.Logger

	// Changed é chamado quando o estado muda fora de uma chamada síncrona
	// (início e fim de um envio). Opcional.
	Changed func(sessionID string)
}

// Ticket é o estado da página de loto de uma sessão.
// Casas vazias valem 0: zero nunca é um número válido no formulário.
type Ticket struct {
	deps      Deps
	sessionID string

	mu       sync.Mutex
	username string
	numbers  []int
	chance   int
	edited   bool // alguma casa já foi tocada

	sending bool
	notice  notify.Notice
}

func New(sessionID string, deps Deps) *Ticket {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Rules.MainCount <= 0 {
		deps.Rules = DefaultRules()
	}
	return &Ticket{
		deps:      deps,
		sessionID: sessionID,
		numbers:   make([]int, deps.Rules.MainCount),
	}
}

// SetNumber grava o número digitado na casa index. Entrada vazia ou não
// numérica deixa a casa vazia.
func (t *Ticket) SetNumber(index int, raw string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.numbers) {
		return ErrSlotIndex
	}
	t.numbers[index] = parseSlot(raw)
	t.edited = true
	return nil
}

func (t *Ticket) SetChance(raw string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.chance = parseSlot(raw)
}

func (t *Ticket) SetUsername(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.username = name
}

func (t *Ticket) DismissNotice() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notice.Dismiss()
}

func (t *Ticket) resetLocked() {
	t.username = ""
	t.numbers = make([]int, t.deps.Rules.MainCount)
	t.chance = 0
	t.edited = false
}

// parseSlot lê um inteiro; qualquer coisa inválida vira casa vazia.
// "7.9" vira 7, como um parseInt.
func parseSlot(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if i := strings.IndexAny(raw, ".,"); i >= 0 {
		raw = raw[:i]
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
