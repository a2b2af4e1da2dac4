// Package notify é o canal de mensagens ao usuário: uma notificação inline,
// descartável, por fluxo.
package notify

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice é a mensagem atual de um fluxo. O valor zero significa "nada a mostrar".
type Notice struct {
	Level Level  `json:"level,omitempty"`
	Text  string `json:"text,omitempty"`
}

func Info(text string) Notice    { return Notice{Level: LevelInfo, Text: text} }
func Success(text string) Notice { return Notice{Level: LevelSuccess, Text: text} }
func Warning(text string) Notice { return Notice{Level: LevelWarning, Text: text} }
func Error(text string) Notice   { return Notice{Level: LevelError, Text: text} }

// Empty indica se não há mensagem a exibir
func (n Notice) Empty() bool { return n.Text == "" }

// Dismiss limpa a mensagem
func (n *Notice) Dismiss() { *n = Notice{} }
