// Package backendtest fornece um transporte HTTP falso para testar os fluxos
// sem rede.
package backendtest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/radieske/bet-loto-web/internal/web-app/backend"
)

// ErrUnreachable simula uma falha de rede
var ErrUnreachable = errors.New("backend unreachable")

// Reply descreve a resposta para um path
type Reply struct {
	Status int
	Body   any   // serializado em JSON; string é enviada crua
	Err    error // falha de transporte
}

// Transport é um http.RoundTripper que responde a partir de um mapa por path
// e registra cada chamada.
type Transport struct {
	mu      sync.Mutex
	replies map[string]Reply
	calls   []Call
	// Block, quando não nil, segura cada chamada até ser fechado
	Block chan struct{}
}

type Call struct {
	Method string
	Path   string
	Body   []byte
}

func NewTransport() *Transport {
	return &Transport{replies: make(map[string]Reply)}
}

// On define a resposta para um path
func (t *Transport) On(path string, r Reply) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies[path] = r
	return t
}

// Calls devolve uma cópia das chamadas recebidas
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Call, len(t.calls))
	copy(out, t.calls)
	return out
}

func (t *Transport) CallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

// LastBody decodifica o corpo da última chamada em dst
func (t *Transport) LastBody(dst any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.calls) == 0 {
		return errors.New("no calls")
	}
	return json.Unmarshal(t.calls[len(t.calls)-1].Body, dst)
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}

	t.mu.Lock()
	t.calls = append(t.calls, Call{Method: req.Method, Path: req.URL.Path, Body: body})
	r, ok := t.replies[req.URL.Path]
	block := t.Block
	t.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	if !ok {
		return respond(req, http.StatusNotFound, []byte(`{"detail":"not found"}`)), nil
	}
	if r.Err != nil {
		return nil, r.Err
	}

	var payload []byte
	switch b := r.Body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	return respond(req, status, payload), nil
}

func respond(req *http.Request, status int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}
}

// NewClient devolve um backend.Client apontando para o transporte
func NewClient(t *Transport) *backend.Client {
	return backend.New("http://backend.test", backend.WithHTTPClient(&http.Client{Transport: t}))
}
