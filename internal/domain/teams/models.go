package teams

// Team is a franchise entry in the static roster.
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	FullName     string `json:"fullName"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
}

// Identity pins a request to one team. It is resolved once per pipeline run.
type Identity struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// Identity returns the request-scoped identity for the team.
func (t Team) Identity() Identity {
	return Identity{Name: t.FullName, ID: t.ID}
}
