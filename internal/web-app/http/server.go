package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/bet-loto-web/internal/web-app/betslip"
	"github.com/radieske/bet-loto-web/internal/web-app/lottery"
	"github.com/radieske/bet-loto-web/internal/web-app/session"
	"github.com/radieske/bet-loto-web/internal/web-app/ws"
)

const cookieName = "sid"

type ctxKey struct{}

// State é o snapshot completo da sessão
type State struct {
	SessionID string       `json:"session_id"`
	Bet       betslip.View `json:"bet"`
	Loto      lottery.View `json:"loto"`
}

// Server expõe as páginas, a API de formulário e o WebSocket da sessão
type Server struct {
	log   *zap.Logger
	store *session.Store
	hub   *ws.Hub
	pages *pages
}

func NewServer(log *zap.Logger, store *session.Store, hub *ws.Hub) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{log: log, store: store, hub: hub, pages: loadPages()}
	store.OnChange(s.Push)
	return s
}

// Router retorna o roteador HTTP com páginas, ações e /ws
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(withCORS)
	r.Use(s.withSession)

	r.Get("/", s.betPage)
	r.Get("/api/state", s.state)
	r.Get("/ws", s.serveWS)

	r.Route("/bet", func(r chi.Router) {
		r.Post("/toggle", s.betToggle)
		r.Post("/stake", s.betStake)
		r.Post("/bettor", s.betBettor)
		r.With(s.throttleSubmits).Post("/submit", s.betSubmit)
		r.Post("/notice/dismiss", s.betDismiss)
	})

	// a página fica dentro do Route: um r.Get("/loto") fora dele é sobrescrito
	r.Route("/loto", func(r chi.Router) {
		r.Get("/", s.lotoPage)
		r.Post("/number", s.lotoNumber)
		r.Post("/chance", s.lotoChance)
		r.Post("/username", s.lotoUsername)
		r.With(s.throttleSubmits).Post("/submit", s.lotoSubmit)
		r.Post("/notice/dismiss", s.lotoDismiss)
	})

	return r
}

// Push envia o snapshot atual para as abas abertas da sessão
func (s *Server) Push(sessionID string) {
	if s.hub.Connections(sessionID) == 0 {
		return
	}
	sess, ok := s.store.Lookup(sessionID)
	if !ok {
		return
	}
	s.hub.Send(sessionID, ws.ServerMsg{Type: "state", Payload: snapshot(sess)})
}

func snapshot(sess *session.Session) State {
	return State{SessionID: sess.ID, Bet: sess.Bet.View(), Loto: sess.Loto.View()}
}

// withSession resolve (ou cria) a sessão pelo cookie
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(cookieName); err == nil {
			id = c.Value
		}
		sess, created := s.store.Get(id)
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(ctxKey{}).(*session.Session)
	return sess
}

// throttleSubmits aplica o token bucket da sessão nos envios
func (s *Server) throttleSubmits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if !sess.Submits.Allow() {
			s.log.Warn("submit throttled", zap.String("session", sess.ID), zap.String("path", r.URL.Path))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "too many submissions"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, snapshot(sessionFrom(r)))
}

// done finaliza uma ação de formulário: JSON com o snapshot para clientes
// que pedem JSON, senão redirect para a página (POST/redirect/GET)
func (s *Server) done(w http.ResponseWriter, r *http.Request, status int, page string) {
	sess := sessionFrom(r)
	s.Push(sess.ID)
	if wantsJSON(r) {
		writeJSON(w, status, snapshot(sess))
		return
	}
	http.Redirect(w, r, page, http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}
