// Package openfootball reads league seasons written in the openfootball
// plain-text format (https://github.com/openfootball).
package openfootball

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-elo/internal/domain/season"
)

const maxLineBytes = 1 << 20

// cursor is the running parse state. Each marker overwrites its own field
// and nothing resets between lines.
type cursor struct {
	Context
	header   Header
	fixtures []season.Fixture
}

func (c *cursor) apply(ev Event) {
	switch e := ev.(type) {
	case *Header:
		c.header = *e
		c.HasHeader = true
		c.Year = e.Year
	case *RoundMarker:
		c.Round = e.Round
	case *DateMarker:
		c.Date = e.Date
	case *Match:
		c.fixtures = append(c.fixtures, e.Fixture)
	}
}

// Parse reads a whole season and stops at the first malformed line.
// Fixtures listed before any date marker carry the zero time.
func Parse(r io.Reader) (season.Season, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	c := &cursor{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		ev, err := Classify(scanner.Text(), c.Context)
		if err != nil {
			var lineErr *LineError
			if errors.As(err, &lineErr) {
				lineErr.Line = lineNo
			}
			return season.Season{}, err
		}
		if ev == nil {
			continue
		}
		c.apply(ev)
	}
	if err := scanner.Err(); err != nil {
		return season.Season{}, crerr.Wrap(err, "read season text")
	}

	return season.Season{
		Name:      c.header.Title,
		League:    c.header.League,
		StartYear: c.header.Year,
		Fixtures:  c.fixtures,
	}, nil
}

// ParseString is Parse over an in-memory text.
func ParseString(text string) (season.Season, error) {
	return Parse(strings.NewReader(text))
}

// ParseFile parses the file at path. The season id is the file name
// without its extension.
func ParseFile(path string) (season.Season, error) {
	f, err := os.Open(path)
	if err != nil {
		return season.Season{}, crerr.Wrapf(err, "open season file %s", path)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return season.Season{}, crerr.Wrapf(err, "parse season file %s", path)
	}
	s.ID = SeasonID(path)
	return s, nil
}

// SeasonID derives a season id from a file path.
func SeasonID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
