package betslip

import (
	"strconv"

	"github.com/radieske/bet-loto-web/internal/web-app/notify"
	"github.com/radieske/bet-loto-web/pkg/contracts/api"
)

// OutcomeView é um botão de resultado na tela
type OutcomeView struct {
	Label    string  `json:"label"`
	Display  string  `json:"display"`
	Odd      float64 `json:"odd"`
	Selected bool    `json:"selected"`
}

type MatchView struct {
	Key         string        `json:"key"`
	HomeTeam    string        `json:"home_team"`
	AwayTeam    string        `json:"away_team"`
	Competition string        `json:"competition"`
	StartTime   string        `json:"start_time"`
	Outcomes    []OutcomeView `json:"outcomes"`
}

// View é o snapshot usado para redesenhar a página de apostas
type View struct {
	Loading       bool            `json:"loading"`
	Matches       []MatchView     `json:"matches"`
	Selections    []api.Selection `json:"selections"`
	Stake         string          `json:"stake"`
	Bettor        string          `json:"bettor"`
	TotalOdds     float64         `json:"total_odds"`
	TotalOddsText string          `json:"total_odds_text"`
	PotentialGain string          `json:"potential_gain"`
	Sending       bool            `json:"sending"`
	Notice        notify.Notice   `json:"notice"`
}

func (s *Slip) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	chosen := make(map[string]string, len(s.selections))
	for _, b := range s.selections {
		chosen[b.Key] = b.Choice
	}

	matches := make([]MatchView, 0, len(s.matches))
	for _, m := range s.matches {
		mv := MatchView{
			Key:         m.Key(),
			HomeTeam:    m.HomeTeam,
			AwayTeam:    m.AwayTeam,
			Competition: m.Competition,
			StartTime:   m.StartTime,
		}
		for _, oc := range m.Odds {
			c, ok := chosen[mv.Key]
			mv.Outcomes = append(mv.Outcomes, OutcomeView{
				Label:    oc.Label,
				Display:  displayLabel(oc.Label),
				Odd:      oc.Odd,
				Selected: ok && c == oc.Label,
			})
		}
		matches = append(matches, mv)
	}

	return View{
		Loading:       s.loading,
		Matches:       matches,
		Selections:    append([]api.Selection(nil), s.selections...),
		Stake:         s.stake,
		Bettor:        s.bettor,
		TotalOdds:     s.totalOdds,
		TotalOddsText: strconv.FormatFloat(s.totalOdds, 'f', 2, 64),
		PotentialGain: s.potentialGain,
		Sending:       s.sending,
		Notice:        s.notice,
	}
}

func displayLabel(label string) string {
	if label == "Draw" {
		return "Match nul"
	}
	return label
}
