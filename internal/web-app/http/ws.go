package httpapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/radieske/bet-loto-web/internal/web-app/session"
	"github.com/radieske/bet-loto-web/internal/web-app/ws"
)

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	s.hub.HandleWS(w, r, sess.ID, func(msg ws.ClientMsg) {
		s.dispatch(sess, msg)
	})
}

// dispatch aplica a mensagem no modelo da sessão e manda o novo snapshot.
// Envios rodam em goroutine: o Changed do modelo faz o push do resultado.
func (s *Server) dispatch(sess *session.Session, msg ws.ClientMsg) {
	s.store.Touch(sess.ID)

	switch msg.Type {
	case ws.MsgPing:
		return
	case ws.MsgToggle:
		if err := sess.Bet.ToggleKey(msg.MatchKey, msg.Choice); err != nil {
			s.reject(sess.ID, err.Error())
			return
		}
	case ws.MsgStake:
		sess.Bet.SetStake(msg.Value)
	case ws.MsgBettor:
		sess.Bet.SetBettor(msg.Value)
	case ws.MsgNumber:
		if err := sess.Loto.SetNumber(msg.Index, msg.Value); err != nil {
			s.reject(sess.ID, err.Error())
			return
		}
	case ws.MsgChance:
		sess.Loto.SetChance(msg.Value)
	case ws.MsgUsername:
		sess.Loto.SetUsername(msg.Value)
	case ws.MsgDismiss:
		if msg.Flow == "loto" {
			sess.Loto.DismissNotice()
		} else {
			sess.Bet.DismissNotice()
		}
	case ws.MsgBetSubmit, ws.MsgLotoSubmit:
		if !sess.Submits.Allow() {
			s.reject(sess.ID, "too many submissions")
			return
		}
		go s.submitAsync(sess, msg.Type)
		return
	default:
		s.reject(sess.ID, "unknown message type")
		return
	}
	s.Push(sess.ID)
}

func (s *Server) submitAsync(sess *session.Session, kind string) {
	// o envio não depende da conexão que o pediu
	ctx := context.Background()
	var err error
	if kind == ws.MsgBetSubmit {
		err = sess.Bet.Submit(ctx)
	} else {
		err = sess.Loto.Submit(ctx)
	}
	if err != nil {
		s.log.Debug("ws submit finished with error", zap.String("session", sess.ID), zap.String("type", kind), zap.Error(err))
	}
}

func (s *Server) reject(sessionID, reason string) {
	s.hub.Send(sessionID, ws.ServerMsg{Type: "error", Error: reason})
}
