// Package filesystem serves seasons from a directory of openfootball text
// files. Files are read on every call; put the cache decorator in front.
package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-elo/external/openfootball"
	"github.com/riskibarqy/league-elo/internal/domain/season"
)

const seasonFileExt = ".txt"

type SeasonRepository struct {
	dir string
}

func NewSeasonRepository(dir string) *SeasonRepository {
	return &SeasonRepository{dir: dir}
}

// List parses every season file in the directory, ordered by file name.
func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, crerr.Wrapf(err, "read season dir %s", r.dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), seasonFileExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	out := make([]season.Season, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := openfootball.ParseFile(filepath.Join(r.dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	if !validSeasonID(seasonID) {
		return season.Season{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return season.Season{}, false, err
	}

	s, err := openfootball.ParseFile(filepath.Join(r.dir, seasonID+seasonFileExt))
	if errors.Is(err, fs.ErrNotExist) {
		return season.Season{}, false, nil
	}
	if err != nil {
		return season.Season{}, false, err
	}

	return s, true, nil
}

// validSeasonID rejects ids that would leave the season directory.
func validSeasonID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`) && !strings.ContainsRune(id, 0)
}
