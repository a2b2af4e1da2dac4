package lottery

import (
	"strconv"
	"strings"

	"github.com/radieske/bet-loto-web/internal/web-app/notify"
)

// Preview é o resumo ao vivo do bilhete
type Preview struct {
	Username string `json:"username,omitempty"`
	Numbers  string `json:"numbers,omitempty"` // "3, 7, 12" ou "Aucun"
	Chance   string `json:"chance,omitempty"`
}

// View é o snapshot usado para redesenhar a página de loto.
// Slots vazios aparecem como "".
type View struct {
	Username string        `json:"username"`
	Slots    []string      `json:"slots"`
	Chance   string        `json:"chance"`
	Preview  Preview       `json:"preview"`
	Rules    Rules         `json:"rules"`
	Sending  bool          `json:"sending"`
	Notice   notify.Notice `json:"notice"`
}

func (t *Ticket) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	slots := make([]string, len(t.numbers))
	for i, n := range t.numbers {
		slots[i] = slotText(n)
	}

	return View{
		Username: t.username,
		Slots:    slots,
		Chance:   slotText(t.chance),
		Preview:  t.previewLocked(),
		Rules:    t.deps.Rules,
		Sending:  t.sending,
		Notice:   t.notice,
	}
}

// Preview devolve o resumo do bilhete
func (t *Ticket) Preview() Preview {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.previewLocked()
}

func (t *Ticket) previewLocked() Preview {
	p := Preview{Username: t.username, Chance: slotText(t.chance)}

	if !t.edited {
		return p
	}
	filled := make([]string, 0, len(t.numbers))
	for _, n := range t.numbers {
		if n != 0 {
			filled = append(filled, strconv.Itoa(n))
		}
	}
	p.Numbers = "Aucun"
	if len(filled) > 0 {
		p.Numbers = strings.Join(filled, ", ")
	}
	return p
}

func slotText(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
