package standing

import "sort"

// Row is one line of a league table.
type Row struct {
	Position       int
	Team           string
	Played         uint
	Won            uint
	Draw           uint
	Lost           uint
	GoalsFor       uint
	GoalsAgainst   uint
	GoalDifference int
	Points         uint
	Rating         int
}

// History returns the snapshots of one team in replay order.
func History(standings []Standing, team string) []Standing {
	out := make([]Standing, 0)
	for _, item := range standings {
		if item.Team == team {
			out = append(out, item)
		}
	}
	return out
}

// Latest returns the last snapshot of every team, teams in first-seen order.
func Latest(standings []Standing) []Standing {
	index := make(map[string]int)
	out := make([]Standing, 0)
	for _, item := range standings {
		if i, ok := index[item.Team]; ok {
			out[i] = item
			continue
		}
		index[item.Team] = len(out)
		out = append(out, item)
	}
	return out
}

// BuildTable ranks teams by points, goal difference, goals for and name.
func BuildTable(standings []Standing) []Row {
	latest := Latest(standings)
	rows := make([]Row, 0, len(latest))
	for _, item := range latest {
		rec := item.Record
		rows = append(rows, Row{
			Team:           item.Team,
			Played:         rec.Played(),
			Won:            rec.Wins,
			Draw:           rec.Draws,
			Lost:           rec.Losses,
			GoalsFor:       rec.GoalsFor,
			GoalsAgainst:   rec.GoalsAgainst,
			GoalDifference: rec.GoalDifference(),
			Points:         rec.Points(),
			Rating:         rec.Rating,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	for i := range rows {
		rows[i].Position = i + 1
	}

	return rows
}
