// Package session guarda o estado de página de cada navegador em memória.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/radieske/bet-loto-web/internal/shared/metrics"
	"github.com/radieske/bet-loto-web/internal/web-app/betslip"
	"github.com/radieske/bet-loto-web/internal/web-app/lottery"
)

// Session agrupa os dois fluxos de uma aba/navegador
type Session struct {
	ID   string
	Bet  *betslip.Slip
	Loto *lottery.Ticket

	// limita envios por sessão
	Submits *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

type Config struct {
	TTL              time.Duration
	SubmitRatePerSec float64
	SubmitBurst      int
}

// Store mantém as sessões vivas e remove as ociosas
type Store struct {
	cfg  Config
	bet  betslip.Deps
	loto lottery.Deps
	log  *zap.Logger
	now  func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	onChange func(sessionID string)
}

func NewStore(cfg Config, bet betslip.Deps, loto lottery.Deps, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.SubmitBurst <= 0 {
		cfg.SubmitBurst = 1
	}
	return &Store{
		cfg:      cfg,
		bet:      bet,
		loto:     loto,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get devolve a sessão do id, ou cria uma nova se o id for desconhecido.
// created indica que o chamador precisa devolver o novo id ao navegador.
func (st *Store) Get(id string) (sess *Session, created bool) {
	now := st.now()

	if id != "" {
		st.mu.RLock()
		sess = st.sessions[id]
		st.mu.RUnlock()
		if sess != nil {
			sess.touch(now)
			return sess, false
		}
	}

	bet, loto := st.bet, st.loto
	bet.Changed = st.changed
	loto.Changed = st.changed

	id = uuid.NewString()
	sess = &Session{
		ID:       id,
		Bet:      betslip.New(id, bet),
		Loto:     lottery.New(id, loto),
		Submits:  rate.NewLimiter(rate.Limit(st.cfg.SubmitRatePerSec), st.cfg.SubmitBurst),
		lastSeen: now,
	}

	st.mu.Lock()
	st.sessions[id] = sess
	n := len(st.sessions)
	st.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	st.log.Debug("session created", zap.String("session", id))
	return sess, true
}

// OnChange registra quem redesenha a página quando um envio muda o estado
func (st *Store) OnChange(fn func(sessionID string)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.onChange = fn
}

func (st *Store) changed(sessionID string) {
	st.mu.RLock()
	fn := st.onChange
	st.mu.RUnlock()
	if fn != nil {
		fn(sessionID)
	}
}

// Touch marca atividade na sessão (ex.: mensagens WebSocket, que não passam
// pelo Get). Devolve false se a sessão já expirou.
func (st *Store) Touch(id string) bool {
	st.mu.RLock()
	sess := st.sessions[id]
	st.mu.RUnlock()
	if sess == nil {
		return false
	}
	sess.touch(st.now())
	return true
}

// Lookup devolve a sessão sem criar uma nova
func (st *Store) Lookup(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep remove sessões ociosas há mais que o TTL e devolve quantas saíram
func (st *Store) Sweep() int {
	if st.cfg.TTL <= 0 {
		return 0
	}
	now := st.now()

	st.mu.Lock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(now) > st.cfg.TTL {
			delete(st.sessions, id)
			removed++
		}
	}
	n := len(st.sessions)
	st.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	if removed > 0 {
		st.log.Debug("sessions expired", zap.Int("removed", removed), zap.Int("active", n))
	}
	return removed
}

// RunSweeper chama Sweep periodicamente até o ctx ser cancelado
func (st *Store) RunSweeper(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			st.Sweep()
		}
	}
}
