package backend

import "fmt"

// HTTPError é devolvido quando o backend responde fora da faixa 2xx
type HTTPError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend %s %s: http %d", e.Method, e.Path, e.Status)
}
