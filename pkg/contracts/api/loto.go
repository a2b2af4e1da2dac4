package api

// LotoStatusOK é o único status tratado como sucesso; qualquer outro vira aviso.
const LotoStatusOK = "ok"

type LotoRequest struct {
	Username string `json:"username"`
	Numbers  []int  `json:"numbers"`
	Chance   int    `json:"chance"`
}

type LotoResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
