package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/radieske/bet-loto-web/internal/web-app/notify"
)

//go:embed templates/*.html
var templateFS embed.FS

type pages struct {
	tmpl *template.Template
}

// noticeBox é o que o bloco "notice" recebe: a mensagem, o fluxo e a rota para fechá-la
type noticeBox struct {
	Level  notify.Level
	Text   string
	Flow   string
	Action string
}

func loadPages() *pages {
	funcs := template.FuncMap{
		"odd": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
		"add": func(a, b int) int { return a + b },
		"noticeOf": func(n notify.Notice, flow string) noticeBox {
			return noticeBox{Level: n.Level, Text: n.Text, Flow: flow, Action: "/" + flow + "/notice/dismiss"}
		},
	}
	return &pages{tmpl: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))}
}

// render executa num buffer para não mandar página pela metade
func (p *pages) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
