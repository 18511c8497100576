package standing

import "time"

// Record is a team's running totals during a replay.
type Record struct {
	Wins         uint
	Draws        uint
	Losses       uint
	GoalsFor     uint
	GoalsAgainst uint
	Rating       int
}

// NewRecord returns zeroed counters at the given rating.
func NewRecord(rating int) Record {
	return Record{Rating: rating}
}

func (r Record) Played() uint {
	return r.Wins + r.Draws + r.Losses
}

// Points uses three for a win and one for a draw.
func (r Record) Points() uint {
	return 3*r.Wins + r.Draws
}

func (r Record) GoalDifference() int {
	return int(r.GoalsFor) - int(r.GoalsAgainst)
}

// Standing is a snapshot of one team's record right after one played fixture.
type Standing struct {
	Team   string
	Date   time.Time
	Round  uint
	Record Record
}
