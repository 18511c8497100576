package odds

// Odds is the expected-score split for one fixture. Home + Away == 1.
type Odds struct {
	Round    uint
	HomeTeam string
	Home     float64
	AwayTeam string
	Away     float64
}
