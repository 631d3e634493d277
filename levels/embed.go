package levels

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed *.json
var LevelsFS embed.FS

// Dir is the on-disk level directory relative to the working directory.
const Dir = "levels"

// Load reads name from ./levels on disk when present, otherwise from the
// embedded copy.
func Load(name string) (*Level, error) {
	name = filepath.Base(name)
	if data, err := os.ReadFile(filepath.Join(Dir, name)); err == nil {
		return Parse(data)
	}
	data, err := LevelsFS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
