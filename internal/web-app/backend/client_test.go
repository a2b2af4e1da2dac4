package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/bet-loto-web/pkg/contracts/api"
)

func TestClient_Matches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathMatches, r.URL.Path)
		_, _ = w.Write([]byte(`[{"home_team":"PSG","away_team":"OM","competition":"Ligue 1",
			"start_time":"21:00","odds":{"PSG":1.8,"Draw":3.2,"OM":4.1}}]`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	ms, err := c.Matches(context.Background())
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, "PSG-OM", ms[0].Key())
	odd, ok := ms[0].Odds.Get("Draw")
	assert.True(t, ok)
	assert.Equal(t, 3.2, odd)
}

func TestClient_PlaceBet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.BetRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Jean", req.Username)
		assert.Equal(t, 10.0, req.Stake)
		require.Len(t, req.Selections, 1)
		assert.Equal(t, "PSG-OM", req.Selections[0].Key)

		_ = json.NewEncoder(w).Encode(api.BetResponse{Message: "Pari enregistré", TotalOdds: 1.8, PotentialGain: 18})
	}))
	defer srv.Close()

	res, err := New(srv.URL).PlaceBet(context.Background(), api.BetRequest{
		Username:   "Jean",
		Stake:      10,
		Selections: []api.Selection{{Key: "PSG-OM", HomeTeam: "PSG", AwayTeam: "OM", Choice: "PSG", Odd: 1.8}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pari enregistré", res.Message)
	assert.Equal(t, 18.0, res.PotentialGain)
}

func TestClient_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).SubmitTicket(context.Background(), api.LotoRequest{Username: "a"})
	require.Error(t, err)

	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusInternalServerError, herr.Status)
	assert.Equal(t, PathLoto, herr.Path)
	assert.Contains(t, herr.Body, "boom")
}

func TestClient_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Matches(context.Background())
	assert.Error(t, err)
}

func TestClient_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.URL).Matches(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
