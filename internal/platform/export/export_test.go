package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-elo/internal/domain/odds"
	"github.com/riskibarqy/league-elo/internal/domain/season"
	"github.com/riskibarqy/league-elo/internal/domain/standing"
	"gopkg.in/yaml.v3"
)

func sampleStandings() []standing.Standing {
	date := time.Date(2018, time.August, 11, 0, 0, 0, 0, time.UTC)
	return []standing.Standing{
		{Team: "Team A", Date: date, Round: 1, Record: standing.Record{Wins: 1, GoalsFor: 2, GoalsAgainst: 1, Rating: 1516}},
		{Team: "Team B", Date: date, Round: 1, Record: standing.Record{Losses: 1, GoalsFor: 1, GoalsAgainst: 2, Rating: 1484}},
	}
}

func TestWrite_StandingsCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, StandingRows(sampleStandings())); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	want := strings.Join([]string{
		"team,date,matchweek,wins,draws,losses,goals_for,goals_against,elo_rating",
		"Team A,2018-08-11,1,1,0,0,2,1,1516",
		"Team B,2018-08-11,1,0,0,1,1,2,1484",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWrite_FixturesCSVLeavesUnplayedScoresEmpty(t *testing.T) {
	t.Parallel()

	fixtures := []season.Fixture{
		{Round: 1, HomeTeam: "A", AwayTeam: "B", Score: &season.Score{Home: 0, Away: 0}},
		{Round: 2, HomeTeam: "B", AwayTeam: "A"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, FixtureRows(fixtures)); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %q", buf.String())
	}
	if lines[1] != "1,,A,B,0,0" || lines[2] != "2,,B,A,," {
		t.Fatalf("unexpected rows: %q", lines[1:])
	}
}

func TestWrite_EmptyCSVHasHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write[OddsRow](&buf, FormatCSV, nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if buf.String() != "round,home_team,home,away_team,away\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWrite_JSONAndYAML(t *testing.T) {
	t.Parallel()

	rows := OddsRows([]odds.Odds{{Round: 3, HomeTeam: "Alpha", Home: 0.75, AwayTeam: "Beta", Away: 0.25}})

	var jsonBuf bytes.Buffer
	if err := Write(&jsonBuf, FormatJSON, rows); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var decoded []OddsRow
	if err := sonic.Unmarshal(jsonBuf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}
	if len(decoded) != 1 || decoded[0] != rows[0] {
		t.Fatalf("unexpected json rows: %+v", decoded)
	}

	var yamlBuf bytes.Buffer
	if err := Write(&yamlBuf, FormatYAML, rows); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	var fromYAML []OddsRow
	if err := yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if len(fromYAML) != 1 || fromYAML[0] != rows[0] {
		t.Fatalf("unexpected yaml rows: %+v", fromYAML)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{"": FormatCSV, "CSV": FormatCSV, "json": FormatJSON, "yml": FormatYAML, "yaml": FormatYAML}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
