package openfootball

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-elo/internal/domain/season"
)

var (
	delimiterRegex = regexp.MustCompile(`^[-=_*#~.\s]*$`)
	headerRegex    = regexp.MustCompile(`^#\s*((.+?)\s+(\d{4})/\d{2})$`)
	roundRegex     = regexp.MustCompile(`(?i)^(?:matchday|round)\s+(\d+)$`)
	dateRegex      = regexp.MustCompile(`^\[[[:alpha:]]{3}\s+([[:alpha:]]{3})/(\d{1,2})\]$`)
	fixtureRegex   = regexp.MustCompile(`^(.+?)\s+(\d+)?-(\d+)?\s+(.+?)(?:\s+(?i:postponed))?$`)
)

var months = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// Context is the state carried from earlier lines.
type Context struct {
	HasHeader bool
	Year      int
	Round     uint
	Date      time.Time
}

// Event is one classified line: *Header, *RoundMarker, *DateMarker or *Match.
type Event interface {
	event()
}

type Header struct {
	Title  string
	League string
	Year   int
}

type RoundMarker struct {
	Round uint
}

type DateMarker struct {
	Date time.Time
}

// Match carries a fixture tagged with the round and date of its context.
type Match struct {
	Fixture season.Fixture
}

func (*Header) event()      {}
func (*RoundMarker) event() {}
func (*DateMarker) event()  {}
func (*Match) event()       {}

// Classify maps one line to an event. Blank and delimiter-only lines yield
// a nil event and a nil error; anything unrecognized yields a *LineError.
func Classify(line string, ctx Context) (Event, error) {
	line = strings.TrimSpace(line)
	if delimiterRegex.MatchString(line) {
		return nil, nil
	}

	if m := headerRegex.FindStringSubmatch(line); m != nil {
		year, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, malformed(line, err)
		}
		return &Header{Title: m[1], League: m[2], Year: year}, nil
	}

	if m := roundRegex.FindStringSubmatch(line); m != nil {
		round, err := strconv.ParseUint(m[1], 10, 0)
		if err != nil {
			return nil, malformed(line, err)
		}
		return &RoundMarker{Round: uint(round)}, nil
	}

	if m := dateRegex.FindStringSubmatch(line); m != nil {
		date, err := resolveDate(m[1], m[2], ctx)
		if err != nil {
			return nil, malformed(line, err)
		}
		return &DateMarker{Date: date}, nil
	}

	if m := fixtureRegex.FindStringSubmatch(line); m != nil {
		return classifyFixture(line, m, ctx)
	}

	return nil, malformed(line, nil)
}

// resolveDate places August through December in the header year and
// January through July in the year after.
func resolveDate(monthText, dayText string, ctx Context) (time.Time, error) {
	if !ctx.HasHeader {
		return time.Time{}, ErrMissingHeader
	}

	month, ok := months[strings.ToLower(monthText)]
	if !ok {
		return time.Time{}, crerr.Newf("unknown month %q", monthText)
	}
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return time.Time{}, err
	}

	year := ctx.Year
	if month < time.August {
		year++
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Month() != month || date.Day() != day {
		return time.Time{}, crerr.Newf("invalid day %s/%d", monthText, day)
	}
	return date, nil
}

func classifyFixture(line string, m []string, ctx Context) (Event, error) {
	home := strings.TrimSpace(m[1])
	away := strings.TrimSpace(m[4])
	if home == "" || away == "" {
		return nil, malformed(line, nil)
	}

	f := season.Fixture{
		Round:    ctx.Round,
		Date:     ctx.Date,
		HomeTeam: home,
		AwayTeam: away,
	}

	homeText, awayText := m[2], m[3]
	switch {
	case homeText == "" && awayText == "":
		return &Match{Fixture: f}, nil
	case homeText == "" || awayText == "":
		return nil, malformed(line, crerr.New("score has only one side"))
	}

	homeGoals, err := strconv.ParseUint(homeText, 10, 0)
	if err != nil {
		return nil, malformed(line, err)
	}
	awayGoals, err := strconv.ParseUint(awayText, 10, 0)
	if err != nil {
		return nil, malformed(line, err)
	}
	f.Score = &season.Score{Home: uint(homeGoals), Away: uint(awayGoals)}

	return &Match{Fixture: f}, nil
}
