package ws

// Tipos de mensagem enviados pela página
const (
	MsgToggle     = "toggle" // match_key + choice
	MsgStake      = "stake"  // value
	MsgBettor     = "bettor" // value
	MsgBetSubmit  = "bet_submit"
	MsgNumber     = "number"   // index + value
	MsgChance     = "chance"   // value
	MsgUsername   = "username" // value
	MsgLotoSubmit = "loto_submit"
	MsgDismiss    = "dismiss" // flow: bet | loto
	MsgPing       = "ping"
)

// ClientMsg representa uma mensagem recebida do cliente WebSocket
type ClientMsg struct {
	Type     string `json:"type"`
	MatchKey string `json:"match_key,omitempty"`
	Choice   string `json:"choice,omitempty"`
	Index    int    `json:"index,omitempty"`
	Value    string `json:"value,omitempty"`
	Flow     string `json:"flow,omitempty"`
}

// ServerMsg é enviado para todas as conexões da sessão
type ServerMsg struct {
	Type    string      `json:"type"` // state | pong | error
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}
