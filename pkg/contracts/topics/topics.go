package topics

const (
	// Submissões dos formulários
	BetSubmitted    = "bet_submitted"
	TicketSubmitted = "loto_submitted"
)
