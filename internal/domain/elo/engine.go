package elo

import (
	"errors"
	"fmt"
	"math"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-elo/internal/domain/odds"
	"github.com/riskibarqy/league-elo/internal/domain/season"
	"github.com/riskibarqy/league-elo/internal/domain/standing"
)

const (
	DefaultInitialRating = 1500
	DefaultK             = 32
)

var (
	ErrInvalidParams = errors.New("invalid rating parameters")
	ErrUnknownTeam   = errors.New("team missing from replay")
)

// Params controls one replay.
type Params struct {
	InitialRating int
	K             float64
	// ScoreFactor shifts the actual score by goal difference. Zero disables it.
	ScoreFactor float64
}

func DefaultParams() Params {
	return Params{
		InitialRating: DefaultInitialRating,
		K:             DefaultK,
	}
}

func (p Params) Validate() error {
	if math.IsNaN(p.K) || math.IsInf(p.K, 0) || p.K <= 0 {
		return fmt.Errorf("%w: k must be > 0, got %v", ErrInvalidParams, p.K)
	}
	if math.IsNaN(p.ScoreFactor) || math.IsInf(p.ScoreFactor, 0) || p.ScoreFactor < 0 {
		return fmt.Errorf("%w: score factor must be >= 0, got %v", ErrInvalidParams, p.ScoreFactor)
	}
	return nil
}

// Expected returns the logistic expected scores for both sides.
func Expected(homeRating, awayRating int) (home, away float64) {
	home = 1 / (1 + math.Pow(10, float64(awayRating-homeRating)/400))
	return home, 1 - home
}

// actual returns the outcome score per side, shifted by goal difference
// when factor is non-zero.
func actual(score season.Score, factor float64) (home, away float64) {
	switch {
	case score.Home > score.Away:
		home, away = 1, 0
	case score.Home < score.Away:
		home, away = 0, 1
	default:
		home, away = 0.5, 0.5
	}
	if factor == 0 {
		return home, away
	}

	diff := float64(score.Home) - float64(score.Away)
	return home + factor*diff, away - factor*diff
}

// adjust rounds to the nearest integer, halves away from zero.
func adjust(rating int, k, actual, expected float64) int {
	return int(math.Round(float64(rating) + k*(actual-expected)))
}

// ledger holds the accumulators of one replay. It is never shared.
type ledger struct {
	params  Params
	records map[string]*standing.Record
}

func newLedger(s season.Season, params Params) *ledger {
	teams := s.Teams()
	records := make(map[string]*standing.Record, len(teams))
	for _, name := range teams {
		rec := standing.NewRecord(params.InitialRating)
		records[name] = &rec
	}
	return &ledger{params: params, records: records}
}

func (l *ledger) lookup(team string) (*standing.Record, error) {
	rec, ok := l.records[team]
	if !ok {
		return nil, crerr.WithAssertionFailure(crerr.Wrapf(ErrUnknownTeam, "team %q", team))
	}
	return rec, nil
}

func (l *ledger) rating(team string) (int, error) {
	rec, err := l.lookup(team)
	if err != nil {
		return 0, err
	}
	return rec.Rating, nil
}

// apply folds one played fixture into both records. Both pre-game ratings
// are read before either record changes.
func (l *ledger) apply(f season.Fixture) (home, away standing.Record, err error) {
	homeRec, err := l.lookup(f.HomeTeam)
	if err != nil {
		return standing.Record{}, standing.Record{}, err
	}
	awayRec, err := l.lookup(f.AwayTeam)
	if err != nil {
		return standing.Record{}, standing.Record{}, err
	}

	score := *f.Score
	homeBefore, awayBefore := homeRec.Rating, awayRec.Rating
	expHome, expAway := Expected(homeBefore, awayBefore)
	actHome, actAway := actual(score, l.params.ScoreFactor)

	homeRec.GoalsFor += score.Home
	homeRec.GoalsAgainst += score.Away
	awayRec.GoalsFor += score.Away
	awayRec.GoalsAgainst += score.Home
	switch {
	case score.Home > score.Away:
		homeRec.Wins++
		awayRec.Losses++
	case score.Home < score.Away:
		awayRec.Wins++
		homeRec.Losses++
	default:
		homeRec.Draws++
		awayRec.Draws++
	}

	homeRec.Rating = adjust(homeBefore, l.params.K, actHome, expHome)
	awayRec.Rating = adjust(awayBefore, l.params.K, actAway, expAway)

	return *homeRec, *awayRec, nil
}

// Replay processes the season in order and returns two standings per
// played fixture, home first.
func Replay(s season.Season, params Params) ([]standing.Standing, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	l := newLedger(s, params)
	out := make([]standing.Standing, 0, 2*s.PlayedCount())
	for _, f := range s.Fixtures {
		if !f.Played() {
			continue
		}

		home, away, err := l.apply(f)
		if err != nil {
			return nil, err
		}
		out = append(out,
			standing.Standing{Team: f.HomeTeam, Date: f.Date, Round: f.Round, Record: home},
			standing.Standing{Team: f.AwayTeam, Date: f.Date, Round: f.Round, Record: away},
		)
	}

	return out, nil
}

// RoundOdds replays every played fixture before round and evaluates each
// fixture of round against the frozen ratings.
func RoundOdds(s season.Season, round uint, params Params) ([]odds.Odds, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	l, err := replayBefore(s, round, params)
	if err != nil {
		return nil, err
	}

	out := make([]odds.Odds, 0)
	for _, f := range s.Fixtures {
		if f.Round != round {
			continue
		}
		homeRating, err := l.rating(f.HomeTeam)
		if err != nil {
			return nil, err
		}
		awayRating, err := l.rating(f.AwayTeam)
		if err != nil {
			return nil, err
		}

		home, away := Expected(homeRating, awayRating)
		out = append(out, odds.Odds{
			Round:    f.Round,
			HomeTeam: f.HomeTeam,
			Home:     home,
			AwayTeam: f.AwayTeam,
			Away:     away,
		})
	}

	return out, nil
}

// Ratings returns every team's rating after replaying fixtures strictly
// before round.
func Ratings(s season.Season, round uint, params Params) (map[string]int, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	l, err := replayBefore(s, round, params)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(l.records))
	for name, rec := range l.records {
		out[name] = rec.Rating
	}
	return out, nil
}

func replayBefore(s season.Season, round uint, params Params) (*ledger, error) {
	l := newLedger(s, params)
	for _, f := range s.Fixtures {
		if f.Round >= round || !f.Played() {
			continue
		}
		if _, _, err := l.apply(f); err != nil {
			return nil, err
		}
	}
	return l, nil
}
