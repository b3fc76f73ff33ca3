package teams

// Team is a provider-side team reference as it appears on a game.
// Kept in its own package so providers and fixtures share it without pulling in franchise data.
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}
