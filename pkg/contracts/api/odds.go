package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Outcome é um par rótulo/odd de uma partida
type Outcome struct {
	Label string
	Odd   float64
}

// Odds é o objeto JSON {"rótulo": odd, ...} preservando a ordem das chaves,
// que é a ordem em que os botões aparecem na tela.
type Odds []Outcome

// Get devolve a odd de um rótulo
func (o Odds) Get(label string) (float64, bool) {
	for _, oc := range o {
		if oc.Label == label {
			return oc.Odd, true
		}
	}
	return 0, false
}

func (o Odds) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, oc := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(oc.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(oc.Odd, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON aceita odds numéricas ou em string ("1.85")
func (o *Odds) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("odds: expected object, got %v", tok)
	}

	out := Odds{}
	pos := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, _ := tok.(string)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("odds %q: %w", label, err)
		}
		odd, err := toFloat(raw)
		if err != nil {
			return fmt.Errorf("odds %q: %w", label, err)
		}
		// chave repetida: vale o último valor, na posição da primeira
		if i, dup := pos[label]; dup {
			out[i].Odd = odd
			continue
		}
		pos[label] = len(out)
		out = append(out, Outcome{Label: label, Odd: odd})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = out
	return nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(x, 64)
	default:
		return 0, fmt.Errorf("unexpected odd value %v", v)
	}
}
