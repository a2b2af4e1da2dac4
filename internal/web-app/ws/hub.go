package ws

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/radieske/bet-loto-web/internal/shared/metrics"
)

// conn serializa as escritas: gorilla não aceita writers concorrentes
type conn struct {
	ws  *websocket.Conn
	wmu sync.Mutex
}

func (c *conn) write(b []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

// Hub gerencia as conexões WebSocket agrupadas por sessão
// subs: sessionID -> conjunto de conexões (várias abas da mesma sessão)
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	subs     map[string]map[*conn]struct{}
}

// SameOrigin aceita só upgrades vindos do próprio host (ou sem Origin, fora do navegador)
func SameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		subs:     make(map[string]map[*conn]struct{}),
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão da sessão.
// As mensagens são entregues a onMsg uma por vez, na ordem de chegada.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request, sessionID string, onMsg func(ClientMsg)) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &conn{ws: wsConn}
	defer wsConn.Close()

	h.add(sessionID, c)
	defer h.remove(sessionID, c)

	for {
		var msg ClientMsg
		if err := wsConn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == MsgPing {
			b, _ := json.Marshal(ServerMsg{Type: "pong"})
			_ = c.write(b)
		}
		// ping também chega ao onMsg: conta como atividade da sessão
		onMsg(msg)
	}
}

// Send envia a mensagem para todas as conexões da sessão
func (h *Hub) Send(sessionID string, msg ServerMsg) {
	h.mu.RLock()
	set := h.subs[sessionID]
	conns := make([]*conn, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	if len(conns) == 0 {
		return
	}

	b, _ := json.Marshal(msg)
	for _, c := range conns {
		_ = c.write(b)
	}
}

// Connections devolve quantas conexões a sessão tem abertas
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}

func (h *Hub) add(sessionID string, c *conn) {
	h.mu.Lock()
	if _, ok := h.subs[sessionID]; !ok {
		h.subs[sessionID] = make(map[*conn]struct{})
	}
	h.subs[sessionID][c] = struct{}{}
	h.mu.Unlock()
	metrics.WSConnections.Inc()
}

func (h *Hub) remove(sessionID string, c *conn) {
	h.mu.Lock()
	if m, ok := h.subs[sessionID]; ok {
		delete(m, c)
		if len(m) == 0 {
			delete(h.subs, sessionID)
		}
	}
	h.mu.Unlock()
	metrics.WSConnections.Dec()
}
