package events

import "github.com/radieske/bet-loto-web/pkg/contracts/api"

// Resultado de uma tentativa de envio, do ponto de vista do cliente.
const (
	OutcomeAccepted        = "accepted"
	OutcomeWarning         = "warning"
	OutcomeRejectedLocally = "rejected_locally"
	OutcomeFailed          = "failed"
)

// BetSubmitted é publicado a cada tentativa de envio do cupom de apostas.
type BetSubmitted struct {
	SessionID     string          `json:"session_id"`
	Username      string          `json:"username"`
	Selections    []api.Selection `json:"selections"`
	Stake         string          `json:"stake"`
	TotalOdds     float64         `json:"total_odds"`
	PotentialGain string          `json:"potential_gain"`
	Outcome       string          `json:"outcome"`
	Message       string          `json:"message,omitempty"`
	TsUnixMs      int64           `json:"ts_unix_ms"`
}

// TicketSubmitted é publicado a cada tentativa de envio de um bilhete de loto.
type TicketSubmitted struct {
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
	Numbers   []int  `json:"numbers"`
	Chance    int    `json:"chance"`
	Outcome   string `json:"outcome"`
	Message   string `json:"message,omitempty"`
	TsUnixMs  int64  `json:"ts_unix_ms"`
}
