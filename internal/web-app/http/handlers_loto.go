package httpapi

import (
	"net/http"
	"strconv"

	"github.com/radieske/bet-loto-web/internal/web-app/lottery"
)

func (s *Server) lotoPage(w http.ResponseWriter, r *http.Request) {
	s.pages.render(w, "loto.html", snapshot(sessionFrom(r)))
}

func (s *Server) lotoNumber(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.FormValue("index"))
	if err == nil {
		err = sessionFrom(r).Loto.SetNumber(idx, r.FormValue("value"))
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return
	}
	s.done(w, r, http.StatusOK, "/loto")
}

func (s *Server) lotoChance(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Loto.SetChance(r.FormValue("value"))
	s.done(w, r, http.StatusOK, "/loto")
}

func (s *Server) lotoUsername(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Loto.SetUsername(r.FormValue("value"))
	s.done(w, r, http.StatusOK, "/loto")
}

// lotoSubmit aceita o bilhete inteiro no form (n0..n4, chance, username)
func (s *Server) lotoSubmit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err == nil {
		if _, ok := r.PostForm["username"]; ok {
			sess.Loto.SetUsername(r.PostForm.Get("username"))
		}
		for i := 0; i < len(sess.Loto.View().Slots); i++ {
			key := "n" + strconv.Itoa(i)
			if _, ok := r.PostForm[key]; ok {
				_ = sess.Loto.SetNumber(i, r.PostForm.Get(key))
			}
		}
		if _, ok := r.PostForm["chance"]; ok {
			sess.Loto.SetChance(r.PostForm.Get("chance"))
		}
	}

	err := sess.Loto.Submit(r.Context())
	s.done(w, r, submitStatus(err, lottery.ErrSubmissionInFlight, lottery.ErrValidation), "/loto")
}

func (s *Server) lotoDismiss(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Loto.DismissNotice()
	s.done(w, r, http.StatusOK, "/loto")
}
