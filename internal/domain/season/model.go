package season

import (
	"sort"
	"time"
)

// Score is a final result. A fixture either has one or it does not.
type Score struct {
	Home uint
	Away uint
}

// Fixture is one scheduled or completed match.
type Fixture struct {
	Round    uint
	Date     time.Time
	HomeTeam string
	AwayTeam string
	Score    *Score
}

// Played reports whether the final score is known.
func (f Fixture) Played() bool {
	return f.Score != nil
}

// Season is the ordered fixture list of one league season.
// Fixture order is the chronological order of the source file.
type Season struct {
	ID        string
	Name      string
	League    string
	StartYear int
	Fixtures  []Fixture
}

// Teams returns every team name in order of first appearance.
func (s Season) Teams() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, f := range s.Fixtures {
		for _, name := range [2]string{f.HomeTeam, f.AwayTeam} {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// Rounds returns the distinct round numbers in ascending order.
func (s Season) Rounds() []uint {
	seen := make(map[uint]struct{})
	out := make([]uint, 0)
	for _, f := range s.Fixtures {
		if _, ok := seen[f.Round]; ok {
			continue
		}
		seen[f.Round] = struct{}{}
		out = append(out, f.Round)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NextRound returns the lowest round that still has an unplayed fixture.
// ok is false when every fixture has a score.
func (s Season) NextRound() (round uint, ok bool) {
	for _, f := range s.Fixtures {
		if f.Played() {
			continue
		}
		if !ok || f.Round < round {
			round = f.Round
			ok = true
		}
	}
	return round, ok
}

// FixturesInRound returns the fixtures of one round in season order.
func (s Season) FixturesInRound(round uint) []Fixture {
	out := make([]Fixture, 0)
	for _, f := range s.Fixtures {
		if f.Round == round {
			out = append(out, f)
		}
	}
	return out
}

// PlayedCount returns the number of fixtures with a final score.
func (s Season) PlayedCount() int {
	n := 0
	for _, f := range s.Fixtures {
		if f.Played() {
			n++
		}
	}
	return n
}
