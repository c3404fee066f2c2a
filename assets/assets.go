package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/steadystep/shared/leveldata"
)

//go:embed all:levels
var assetFS embed.FS

const levelsDir = "levels"

// DefaultLevel is loaded when no level is named.
const DefaultLevel = "sandbox"

// FS exposes the embedded asset tree.
func FS() fs.FS {
	return assetFS
}

// LevelNames lists the embedded levels by file stem.
func LevelNames() ([]string, error) {
	matches, err := fs.Glob(assetFS, levelsDir+"/*.tmx")
	if err != nil {
		return nil, fmt.Errorf("glob levels: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".tmx"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadLevel parses the embedded level with the given stem.
func LoadLevel(name string) (*leveldata.Level, error) {
	return leveldata.Load(assetFS, path.Join(levelsDir, name+".tmx"))
}

func MustLoadLevel(name string) *leveldata.Level {
	level, err := LoadLevel(name)
	if err != nil {
		panic(err)
	}
	return level
}
