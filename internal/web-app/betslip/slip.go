// Package betslip mantém o cupom de apostas de uma sessão: partidas
// carregadas, seleções, mise e os valores derivados (cote totale, gain potentiel).
package betslip

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/bet-loto-web/internal/web-app/notify"
	"github.com/radieske/bet-loto-web/pkg/contracts/api"
	"github.com/radieske/bet-loto-web/pkg/contracts/events"
)

var (
	ErrSubmissionInFlight = errors.New("bet submission already in flight")
	ErrValidation         = errors.New("invalid bet slip")
	ErrUnknownMatch       = errors.New("unknown match")
	ErrUnknownChoice      = errors.New("unknown outcome for match")
)

// MatchLister fornece as partidas do dia (backend direto ou via cache)
type MatchLister interface {
	Matches(ctx context.Context) ([]api.Match, error)
}

// BetPlacer envia o cupom ao backend
type BetPlacer interface {
	PlaceBet(ctx context.Context, req api.BetRequest) (api.BetResponse, error)
}

// Publisher recebe o resultado de cada tentativa de envio
type Publisher interface {
	PublishBetSubmitted(ctx context.Context, e events.BetSubmitted) error
}

type Deps struct {
	Matches MatchLister
	Bets    BetPlacer
	Events  Publisher // opcional
	Log     *zap.Logger

	// Changed é chamado quando o estado muda fora de uma chamada síncrona
	// (início e fim de um envio). Opcional.
	Changed func(sessionID string)
}

// Slip é o estado da página de apostas de uma sessão.
// Todos os métodos são seguros para uso concorrente; a chamada de rede do
// Submit roda fora do lock.
type Slip struct {
	deps      Deps
	sessionID string

	mu         sync.Mutex
	matches    []api.Match
	loading    bool
	selections []api.Selection
	stake      string
	bettor     string

	totalOdds     float64
	potentialGain string

	sending bool
	notice  notify.Notice
}

func New(sessionID string, deps Deps) *Slip {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Slip{
		deps:          deps,
		sessionID:     sessionID,
		loading:       true,
		potentialGain: "0",
	}
}

// LoadMatches busca as partidas. Em caso de falha a lista fica vazia e o erro
// só vai para o log: a página mostra "nenhuma partida".
func (s *Slip) LoadMatches(ctx context.Context) {
	ms, err := s.deps.Matches.Matches(ctx)
	if err != nil {
		s.deps.Log.Warn("load matches failed", zap.String("session", s.sessionID), zap.Error(err))
		ms = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = ms
	s.loading = false
}

// Toggle seleciona ou remove um resultado para a partida.
// Mesma escolha para a mesma partida remove; escolha diferente substitui
// (a nova vai para o fim da lista).
func (s *Slip) Toggle(match api.Match, choice string, odd float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggleLocked(match, choice, odd)
}

// ToggleKey resolve a partida e a odd pelo estado carregado e aplica Toggle
func (s *Slip) ToggleKey(key, choice string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.matches {
		if m.Key() != key {
			continue
		}
		odd, ok := m.Odds.Get(choice)
		if !ok {
			return ErrUnknownChoice
		}
		s.toggleLocked(m, choice, odd)
		return nil
	}
	return ErrUnknownMatch
}

func (s *Slip) toggleLocked(match api.Match, choice string, odd float64) {
	key := match.Key()

	kept := make([]api.Selection, 0, len(s.selections)+1)
	var existing *api.Selection
	for i := range s.selections {
		if s.selections[i].Key == key {
			existing = &s.selections[i]
			continue
		}
		kept = append(kept, s.selections[i])
	}

	if existing == nil || existing.Choice != choice {
		kept = append(kept, api.Selection{
			Key:      key,
			HomeTeam: match.HomeTeam,
			AwayTeam: match.AwayTeam,
			Choice:   choice,
			Odd:      odd,
		})
	}

	s.selections = kept
	s.recomputeLocked()
}

func (s *Slip) SetStake(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stake = raw
	s.recomputeLocked()
}

func (s *Slip) SetBettor(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bettor = name
}

func (s *Slip) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice.Dismiss()
}

// Recompute recalcula cote totale e gain potentiel
func (s *Slip) Recompute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeLocked()
}

func (s *Slip) recomputeLocked() {
	s.totalOdds = TotalOdds(s.selections)
	s.potentialGain = PotentialGain(s.stake, s.totalOdds)
}

// TotalOdds soma as odds selecionadas (combinação aditiva, como o backend espera)
func TotalOdds(sel []api.Selection) float64 {
	total := 0.0
	for _, b := range sel {
		total += b.Odd
	}
	return total
}

// PotentialGain devolve mise × cote com 2 casas, ou "0" se a mise não for um
// número positivo ou não houver cote.
func PotentialGain(rawStake string, totalOdds float64) string {
	stake, ok := ParseStake(rawStake)
	if !ok || totalOdds == 0 {
		return "0"
	}
	// arredonda metade para cima antes de formatar (4.625 -> "4.63")
	return strconv.FormatFloat(math.Round(stake*totalOdds*100)/100, 'f', 2, 64)
}

// ParseStake interpreta a mise digitada; aceita vírgula decimal
func ParseStake(raw string) (float64, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
