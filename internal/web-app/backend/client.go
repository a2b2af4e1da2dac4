package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/radieske/bet-loto-web/internal/shared/metrics"
	"github.com/radieske/bet-loto-web/pkg/contracts/api"
)

const (
	PathMatches = "/api/matches"
	PathBet     = "/api/bet"
	PathLoto    = "/api/loto"
)

// maxErrorBody limita quanto do corpo de uma resposta de erro guardamos
const maxErrorBody = 4 << 10

// Client é o único cliente do backend externo, compartilhado pelos dois fluxos.
// Sem retry, sem auth e sem timeout próprio: o cancelamento vem do ctx do chamador.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

type Option func(*Client)

// WithHTTPClient troca o http.Client (ex.: transporte stub em testes)
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTP = h }
}

func New(base string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimSuffix(base, "/"),
		HTTP:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Matches busca a lista de partidas disponíveis
func (c *Client) Matches(ctx context.Context) ([]api.Match, error) {
	var out []api.Match
	if err := c.Get(ctx, PathMatches, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlaceBet envia o cupom de apostas
func (c *Client) PlaceBet(ctx context.Context, req api.BetRequest) (api.BetResponse, error) {
	var out api.BetResponse
	err := c.Post(ctx, PathBet, req, &out)
	return out, err
}

// SubmitTicket envia um bilhete de loto
func (c *Client) SubmitTicket(ctx context.Context, req api.LotoRequest) (api.LotoResponse, error) {
	var out api.LotoResponse
	err := c.Post(ctx, PathLoto, req, &out)
	return out, err
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) (err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.BackendRequestDuration.WithLabelValues(path, result).Observe(time.Since(start).Seconds())
	}()

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return &HTTPError{Method: method, Path: path, Status: res.StatusCode, Body: string(b)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
