package httpapi

import (
	"errors"
	"net/http"

	"github.com/radieske/bet-loto-web/internal/web-app/betslip"
)

func (s *Server) betPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	// cada carregamento da página busca as partidas de novo
	sess.Bet.LoadMatches(r.Context())
	s.pages.render(w, "bet.html", snapshot(sess))
}

func (s *Server) betToggle(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	err := sess.Bet.ToggleKey(r.FormValue("match_key"), r.FormValue("choice"))
	if errors.Is(err, betslip.ErrUnknownMatch) || errors.Is(err, betslip.ErrUnknownChoice) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.done(w, r, http.StatusOK, "/")
}

func (s *Server) betStake(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Bet.SetStake(r.FormValue("value"))
	s.done(w, r, http.StatusOK, "/")
}

func (s *Server) betBettor(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Bet.SetBettor(r.FormValue("value"))
	s.done(w, r, http.StatusOK, "/")
}

// betSubmit aceita bettor/stake no mesmo form para funcionar sem JavaScript
func (s *Server) betSubmit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err == nil {
		if _, ok := r.PostForm["bettor"]; ok {
			sess.Bet.SetBettor(r.PostForm.Get("bettor"))
		}
		if _, ok := r.PostForm["stake"]; ok {
			sess.Bet.SetStake(r.PostForm.Get("stake"))
		}
	}

	err := sess.Bet.Submit(r.Context())
	s.done(w, r, submitStatus(err, betslip.ErrSubmissionInFlight, betslip.ErrValidation), "/")
}

func (s *Server) betDismiss(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Bet.DismissNotice()
	s.done(w, r, http.StatusOK, "/")
}

// submitStatus traduz o resultado de um envio para o status da resposta JSON
func submitStatus(err, inFlight, invalid error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, inFlight):
		return http.StatusConflict
	case errors.Is(err, invalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
