package export

import (
	"strconv"
	"time"

	"github.com/riskibarqy/league-elo/internal/domain/odds"
	"github.com/riskibarqy/league-elo/internal/domain/season"
	"github.com/riskibarqy/league-elo/internal/domain/standing"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

type FixtureRow struct {
	Round     uint   `json:"round" yaml:"round"`
	Date      string `json:"date,omitempty" yaml:"date,omitempty"`
	HomeTeam  string `json:"home_team" yaml:"home_team"`
	AwayTeam  string `json:"away_team" yaml:"away_team"`
	HomeGoals *uint  `json:"home_goals,omitempty" yaml:"home_goals,omitempty"`
	AwayGoals *uint  `json:"away_goals,omitempty" yaml:"away_goals,omitempty"`
}

func FixtureRows(items []season.Fixture) []FixtureRow {
	out := make([]FixtureRow, 0, len(items))
	for _, f := range items {
		row := FixtureRow{
			Round:    f.Round,
			Date:     formatDate(f.Date),
			HomeTeam: f.HomeTeam,
			AwayTeam: f.AwayTeam,
		}
		if f.Score != nil {
			home, away := f.Score.Home, f.Score.Away
			row.HomeGoals = &home
			row.AwayGoals = &away
		}
		out = append(out, row)
	}
	return out
}

func (FixtureRow) Header() []string {
	return []string{"round", "date", "home_team", "away_team", "home_goals", "away_goals"}
}

func (r FixtureRow) Fields() []string {
	home, away := "", ""
	if r.HomeGoals != nil && r.AwayGoals != nil {
		home, away = formatUint(*r.HomeGoals), formatUint(*r.AwayGoals)
	}
	return []string{formatUint(r.Round), r.Date, r.HomeTeam, r.AwayTeam, home, away}
}

type StandingRow struct {
	Team         string `json:"team" yaml:"team"`
	Date         string `json:"date,omitempty" yaml:"date,omitempty"`
	Matchweek    uint   `json:"matchweek" yaml:"matchweek"`
	Wins         uint   `json:"wins" yaml:"wins"`
	Draws        uint   `json:"draws" yaml:"draws"`
	Losses       uint   `json:"losses" yaml:"losses"`
	GoalsFor     uint   `json:"goals_for" yaml:"goals_for"`
	GoalsAgainst uint   `json:"goals_against" yaml:"goals_against"`
	EloRating    int    `json:"elo_rating" yaml:"elo_rating"`
}

func StandingRows(items []standing.Standing) []StandingRow {
	out := make([]StandingRow, 0, len(items))
	for _, s := range items {
		out = append(out, StandingRow{
			Team:         s.Team,
			Date:         formatDate(s.Date),
			Matchweek:    s.Round,
			Wins:         s.Record.Wins,
			Draws:        s.Record.Draws,
			Losses:       s.Record.Losses,
			GoalsFor:     s.Record.GoalsFor,
			GoalsAgainst: s.Record.GoalsAgainst,
			EloRating:    s.Record.Rating,
		})
	}
	return out
}

func (StandingRow) Header() []string {
	return []string{"team", "date", "matchweek", "wins", "draws", "losses", "goals_for", "goals_against", "elo_rating"}
}

func (r StandingRow) Fields() []string {
	return []string{
		r.Team,
		r.Date,
		formatUint(r.Matchweek),
		formatUint(r.Wins),
		formatUint(r.Draws),
		formatUint(r.Losses),
		formatUint(r.GoalsFor),
		formatUint(r.GoalsAgainst),
		strconv.Itoa(r.EloRating),
	}
}

type TableRow struct {
	Position       int    `json:"position" yaml:"position"`
	Team           string `json:"team" yaml:"team"`
	Played         uint   `json:"played" yaml:"played"`
	Won            uint   `json:"won" yaml:"won"`
	Draw           uint   `json:"draw" yaml:"draw"`
	Lost           uint   `json:"lost" yaml:"lost"`
	GoalsFor       uint   `json:"goals_for" yaml:"goals_for"`
	GoalsAgainst   uint   `json:"goals_against" yaml:"goals_against"`
	GoalDifference int    `json:"goal_difference" yaml:"goal_difference"`
	Points         uint   `json:"points" yaml:"points"`
	EloRating      int    `json:"elo_rating" yaml:"elo_rating"`
}

func TableRows(items []standing.Row) []TableRow {
	out := make([]TableRow, 0, len(items))
	for _, r := range items {
		out = append(out, TableRow{
			Position:       r.Position,
			Team:           r.Team,
			Played:         r.Played,
			Won:            r.Won,
			Draw:           r.Draw,
			Lost:           r.Lost,
			GoalsFor:       r.GoalsFor,
			GoalsAgainst:   r.GoalsAgainst,
			GoalDifference: r.GoalDifference,
			Points:         r.Points,
			EloRating:      r.Rating,
		})
	}
	return out
}

func (TableRow) Header() []string {
	return []string{"position", "team", "played", "won", "draw", "lost", "goals_for", "goals_against", "goal_difference", "points", "elo_rating"}
}

func (r TableRow) Fields() []string {
	return []string{
		strconv.Itoa(r.Position),
		r.Team,
		formatUint(r.Played),
		formatUint(r.Won),
		formatUint(r.Draw),
		formatUint(r.Lost),
		formatUint(r.GoalsFor),
		formatUint(r.GoalsAgainst),
		strconv.Itoa(r.GoalDifference),
		formatUint(r.Points),
		strconv.Itoa(r.EloRating),
	}
}

type OddsRow struct {
	Round    uint    `json:"round" yaml:"round"`
	HomeTeam string  `json:"home_team" yaml:"home_team"`
	Home     float64 `json:"home" yaml:"home"`
	AwayTeam string  `json:"away_team" yaml:"away_team"`
	Away     float64 `json:"away" yaml:"away"`
}

func OddsRows(items []odds.Odds) []OddsRow {
	out := make([]OddsRow, 0, len(items))
	for _, o := range items {
		out = append(out, OddsRow{
			Round:    o.Round,
			HomeTeam: o.HomeTeam,
			Home:     o.Home,
			AwayTeam: o.AwayTeam,
			Away:     o.Away,
		})
	}
	return out
}

func (OddsRow) Header() []string {
	return []string{"round", "home_team", "home", "away_team", "away"}
}

func (r OddsRow) Fields() []string {
	return []string{formatUint(r.Round), r.HomeTeam, formatFloat(r.Home), r.AwayTeam, formatFloat(r.Away)}
}
