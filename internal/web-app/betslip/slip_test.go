package betslip

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/bet-loto-web/internal/web-app/backend"
	"github.com/radieske/bet-loto-web/internal/web-app/backend/backendtest"
	"github.com/radieske/bet-loto-web/internal/web-app/notify"
	"github.com/radieske/bet-loto-web/pkg/contracts/api"
	"github.com/radieske/bet-loto-web/pkg/contracts/events"
)

var (
	matchA = api.Match{HomeTeam: "PSG", AwayTeam: "OM", Competition: "Ligue 1", StartTime: "21:00",
		Odds: api.Odds{{Label: "Home", Odd: 1.8}, {Label: "Draw", Odd: 3.4}, {Label: "Away", Odd: 4.2}}}
	matchB = api.Match{HomeTeam: "Lyon", AwayTeam: "Nice", Competition: "Ligue 1", StartTime: "19:00",
		Odds: api.Odds{{Label: "Home", Odd: 2.1}, {Label: "Draw", Odd: 3.2}, {Label: "Away", Odd: 3.0}}}
)

type recordingPublisher struct {
	got []events.BetSubmitted
}

func (p *recordingPublisher) PublishBetSubmitted(_ context.Context, e events.BetSubmitted) error {
	p.got = append(p.got, e)
	return nil
}

func newSlip(t *testing.T, tr *backendtest.Transport) (*Slip, *recordingPublisher) {
	t.Helper()
	c := backendtest.NewClient(tr)
	pub := &recordingPublisher{}
	return New("sess-1", Deps{Matches: c, Bets: c, Events: pub}), pub
}

func TestToggle_SelectThenReplaceThenRemove(t *testing.T) {
	s, _ := newSlip(t, backendtest.NewTransport())

	s.Toggle(matchA, "Home", 1.8)
	v := s.View()
	require.Len(t, v.Selections, 1)
	assert.Equal(t, "PSG-OM", v.Selections[0].Key)
	assert.Equal(t, "Home", v.Selections[0].Choice)

	s.Toggle(matchB, "Draw", 3.2)
	s.Toggle(matchA, "Away", 4.2)
	v = s.View()
	require.Len(t, v.Selections, 2)
	// a substituição vai para o fim
	assert.Equal(t, "Lyon-Nice", v.Selections[0].Key)
	assert.Equal(t, "Away", v.Selections[1].Choice)

	s.Toggle(matchA, "Away", 4.2)
	v = s.View()
	require.Len(t, v.Selections, 1)
	assert.Equal(t, "Lyon-Nice", v.Selections[0].Key)
}

func TestToggle_RandomSequencesKeepOneSelectionPerMatch(t *testing.T) {
	s, _ := newSlip(t, backendtest.NewTransport())
	rnd := rand.New(rand.NewSource(42))
	ms := []api.Match{matchA, matchB}

	for i := 0; i < 500; i++ {
		m := ms[rnd.Intn(len(ms))]
		oc := m.Odds[rnd.Intn(len(m.Odds))]

		before := s.View()
		s.Toggle(m, oc.Label, oc.Odd)
		s.Toggle(m, oc.Label, oc.Odd)
		after := s.View()
		// duplo toggle em uma partida já selecionada com outra escolha não é
		// no-op (substitui e depois remove), então só comparamos quando não havia
		// seleção diferente para a partida
		if !hasOtherChoice(before.Selections, m.Key(), oc.Label) {
			assert.ElementsMatch(t, before.Selections, after.Selections)
		}

		// uma terceira vez deixa o estado com a escolha aplicada
		s.Toggle(m, oc.Label, oc.Odd)

		seen := map[string]bool{}
		total := 0.0
		for _, b := range s.View().Selections {
			assert.False(t, seen[b.Key], "duplicate selection for %s", b.Key)
			seen[b.Key] = true
			total += b.Odd
		}
		assert.InDelta(t, total, s.View().TotalOdds, 1e-9)
	}
}

func hasOtherChoice(sel []api.Selection, key, choice string) bool {
	for _, b := range sel {
		if b.Key == key && b.Choice != choice {
			return true
		}
	}
	return false
}

func TestToggleKey(t *testing.T) {
	tr := backendtest.NewTransport().On(backend.PathMatches, backendtest.Reply{Body: []api.Match{matchA, matchB}})
	s, _ := newSlip(t, tr)
	s.LoadMatches(context.Background())

	require.NoError(t, s.ToggleKey("PSG-OM", "Draw"))
	assert.Equal(t, 3.4, s.View().TotalOdds)

	assert.ErrorIs(t, s.ToggleKey("PSG-OM", "Nobody"), ErrUnknownChoice)
	assert.ErrorIs(t, s.ToggleKey("Real-Barça", "Home"), ErrUnknownMatch)
}

func TestScenario_TwoMatchesStakeTen(t *testing.T) {
	s, _ := newSlip(t, backendtest.NewTransport())

	s.Toggle(matchA, "Home", 1.8)
	s.Toggle(matchB, "Draw", 3.2)
	s.SetStake("10")

	v := s.View()
	assert.Equal(t, 5.0, v.TotalOdds)
	assert.Equal(t, "5.00", v.TotalOddsText)
	assert.Equal(t, "50.00", v.PotentialGain)
}

func TestScenario_DoubleToggleEmptiesSlip(t *testing.T) {
	s, _ := newSlip(t, backendtest.NewTransport())

	s.Toggle(matchA, "Home", 1.8)
	s.Toggle(matchA, "Home", 1.8)

	v := s.View()
	assert.Empty(t, v.Selections)
	assert.Equal(t, 0.0, v.TotalOdds)
	assert.Equal(t, "0", v.PotentialGain)
}

func TestPotentialGain(t *testing.T) {
	cases := []struct {
		stake string
		total float64
		want  string
	}{
		{"10", 5, "50.00"},
		{"2.5", 1.85, "4.63"},
		{"3,5", 2, "7.00"},
		{"", 5, "0"},
		{"abc", 5, "0"},
		{"-4", 5, "0"},
		{"0", 5, "0"},
		{"10", 0, "0"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PotentialGain(tc.stake, tc.total), "stake=%q total=%v", tc.stake, tc.total)
	}
}

func TestLoadMatches_FailureLeavesEmptyList(t *testing.T) {
	tr := backendtest.NewTransport().On(backend.PathMatches, backendtest.Reply{Err: backendtest.ErrUnreachable})
	s, _ := newSlip(t, tr)

	s.LoadMatches(context.Background())

	v := s.View()
	assert.False(t, v.Loading)
	assert.Empty(t, v.Matches)
	assert.True(t, v.Notice.Empty())
}

func TestView_MarksSelectedOutcome(t *testing.T) {
	tr := backendtest.NewTransport().On(backend.PathMatches, backendtest.Reply{Body: []api.Match{matchA}})
	s, _ := newSlip(t, tr)
	assert.True(t, s.View().Loading)

	s.LoadMatches(context.Background())
	require.NoError(t, s.ToggleKey("PSG-OM", "Draw"))

	v := s.View()
	require.Len(t, v.Matches, 1)
	outs := v.Matches[0].Outcomes
	require.Len(t, outs, 3)
	assert.False(t, outs[0].Selected)
	assert.True(t, outs[1].Selected)
	assert.Equal(t, "Match nul", outs[1].Display)
}

func TestSubmit_LocalValidationNeverCallsBackend(t *testing.T) {
	cases := []struct {
		name   string
		bettor string
		stake  string
		toggle bool
		msg    string
	}{
		{"blank bettor", "   ", "10", true, MsgMissingName},
		{"no selections", "Jean", "10", false, MsgMissingSelection},
		{"empty stake", "Jean", "", true, MsgMissingSelection},
		{"non numeric stake", "Jean", "dix", true, MsgMissingSelection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := backendtest.NewTransport().On(backend.PathBet, backendtest.Reply{Body: api.BetResponse{Message: "ok"}})
			s, pub := newSlip(t, tr)
			if tc.toggle {
				s.Toggle(matchA, "Home", 1.8)
			}
			s.SetBettor(tc.bettor)
			s.SetStake(tc.stake)

			err := s.Submit(context.Background())

			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, 0, tr.CallCount())
			assert.Equal(t, notify.Error(tc.msg), s.View().Notice)
			require.Len(t, pub.got, 1)
			assert.Equal(t, events.OutcomeRejectedLocally, pub.got[0].Outcome)
		})
	}
}

func TestSubmit_SuccessResetsSlip(t *testing.T) {
	tr := backendtest.NewTransport().On(backend.PathBet, backendtest.Reply{
		Body: api.BetResponse{Message: "Pari enregistré", TotalOdds: 5, PotentialGain: 50},
	})
	s, pub := newSlip(t, tr)
	s.Toggle(matchA, "Home", 1.8)
	s.Toggle(matchB, "Draw", 3.2)
	s.SetBettor("Jean Dupont")
	s.SetStake("10")

	require.NoError(t, s.Submit(context.Background()))

	var sent api.BetRequest
	require.NoError(t, tr.LastBody(&sent))
	assert.Equal(t, "Jean Dupont", sent.Username)
	assert.Equal(t, 10.0, sent.Stake)
	require.Len(t, sent.Selections, 2)
	assert.Equal(t, "Lyon-Nice", sent.Selections[1].Key)

	v := s.View()
	assert.Empty(t, v.Selections)
	assert.Empty(t, v.Stake)
	assert.Empty(t, v.Bettor)
	assert.Equal(t, 0.0, v.TotalOdds)
	assert.Equal(t, notify.LevelSuccess, v.Notice.Level)
	assert.Equal(t, "Pari enregistré\nCote totale : 5\nGain potentiel : 50 €", v.Notice.Text)
	assert.False(t, v.Sending)

	require.Len(t, pub.got, 1)
	assert.Equal(t, events.OutcomeAccepted, pub.got[0].Outcome)
	assert.Equal(t, "50.00", pub.got[0].PotentialGain)
}

func TestSubmit_TransportFailureKeepsState(t *testing.T) {
	for name, reply := range map[string]backendtest.Reply{
		"network":  {Err: backendtest.ErrUnreachable},
		"http 500": {Status: 500, Body: "oops"},
	} {
		t.Run(name, func(t *testing.T) {
			tr := backendtest.NewTransport().On(backend.PathBet, reply)
			s, pub := newSlip(t, tr)
			s.Toggle(matchA, "Home", 1.8)
			s.SetBettor("Jean")
			s.SetStake("10")

			err := s.Submit(context.Background())

			assert.Error(t, err)
			assert.False(t, errors.Is(err, ErrValidation))
			assert.Equal(t, 1, tr.CallCount())
			v := s.View()
			assert.Equal(t, notify.Error(MsgSendFailed), v.Notice)
			assert.Len(t, v.Selections, 1)
			assert.Equal(t, "10", v.Stake)
			require.Len(t, pub.got, 1)
			assert.Equal(t, events.OutcomeFailed, pub.got[0].Outcome)
		})
	}
}

func TestSubmit_GuardsAgainstDoubleSubmission(t *testing.T) {
	tr := backendtest.NewTransport().On(backend.PathBet, backendtest.Reply{Body: api.BetResponse{Message: "ok"}})
	tr.Block = make(chan struct{})
	s, _ := newSlip(t, tr)
	s.Toggle(matchA, "Home", 1.8)
	s.SetBettor("Jean")
	s.SetStake("10")

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background()) }()

	require.Eventually(t, func() bool { return s.View().Sending }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, s.Submit(context.Background()), ErrSubmissionInFlight)

	close(tr.Block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, tr.CallCount())
	assert.False(t, s.View().Sending)
}

func TestDismissNotice(t *testing.T) {
	s, _ := newSlip(t, backendtest.NewTransport())
	_ = s.Submit(context.Background())
	require.False(t, s.View().Notice.Empty())

	s.DismissNotice()
	assert.True(t, s.View().Notice.Empty())
}
