package api

// Match representa uma partida devolvida por GET /api/matches
// Odds: rótulo do resultado ("Home", "Draw", nome do time...) -> odd, na ordem do backend
type Match struct {
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	Competition string `json:"competition"`
	StartTime   string `json:"start_time"`
	Odds        Odds   `json:"odds"`
}

// Key identifica a partida dentro do cupom.
func (m Match) Key() string { return MatchKey(m.HomeTeam, m.AwayTeam) }

// MatchKey monta a chave de seleção a partir dos nomes dos times.
func MatchKey(home, away string) string { return home + "-" + away }
