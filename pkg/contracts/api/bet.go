package api

// Selection é um resultado escolhido para uma partida.
type Selection struct {
	Key      string  `json:"key"`
	HomeTeam string  `json:"home_team"`
	AwayTeam string  `json:"away_team"`
	Choice   string  `json:"choice"`
	Odd      float64 `json:"odd"`
}

type BetRequest struct {
	Username   string      `json:"username"`
	Selections []Selection `json:"selections"`
	Stake      float64     `json:"stake"`
}

type BetResponse struct {
	Message       string  `json:"message"`
	TotalOdds     float64 `json:"total_odds"`
	PotentialGain float64 `json:"potential_gain"`
}
