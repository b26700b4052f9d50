package database

// GameResult is one finished game as stored. Players and Winners are
// comma-separated name lists; Standings is the ranked outcome as JSON.
type GameResult struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	TableCode string `json:"table_code"`
	Variant   string `json:"variant"`
	Players   string `json:"players"`
	Winners   string `json:"winners"`
	Standings string `json:"standings"`
}
