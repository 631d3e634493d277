// Package levels holds tile maps. Rows are stored top row first; world
// coordinates are Y-up with one tile per world unit.
package levels

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidLevel = errors.New("levels: invalid level")

type Level struct {
	Name      string      `json:"name,omitempty"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
	// Collision names the collision layer of the tiles, "solid" when empty.
	Collision string `json:"collision,omitempty"`
	Color     string `json:"color,omitempty"`
}

// Entity is a placed object in tile coordinates (row 0 is the top row).
type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Run is a horizontal strip of filled tiles in world tile coordinates:
// X and Y are the bottom-left tile, Y counted up from the bottom row.
type Run struct {
	X   int
	Y   int
	Len int
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	var errs []error
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			errs = append(errs, fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrInvalidLevel, i, len(layer), l.Width*l.Height))
		}
	}
	for _, e := range l.Entities {
		if e.X < 0 || e.X >= l.Width || e.Y < 0 || e.Y >= l.Height {
			errs = append(errs, fmt.Errorf("%w: %s at (%d,%d) is outside the map", ErrInvalidLevel, e.Type, e.X, e.Y))
		}
	}
	return errors.Join(errs...)
}

// Meta returns the metadata of layer i, defaulting to a non-physics layer.
func (l *Level) Meta(i int) LayerMeta {
	if i >= 0 && i < len(l.LayerMeta) {
		return l.LayerMeta[i]
	}
	return LayerMeta{}
}

// Runs merges the filled tiles of layer i into maximal horizontal runs.
func (l *Level) Runs(i int) []Run {
	if i < 0 || i >= len(l.Layers) {
		return nil
	}
	layer := l.Layers[i]
	var runs []Run
	for row := 0; row < l.Height; row++ {
		y := l.Height - 1 - row
		start := -1
		for x := 0; x <= l.Width; x++ {
			filled := x < l.Width && layer[row*l.Width+x] > 0
			switch {
			case filled && start < 0:
				start = x
			case !filled && start >= 0:
				runs = append(runs, Run{X: start, Y: y, Len: x - start})
				start = -1
			}
		}
	}
	return runs
}

// Spawn returns the world tile position of the first entity of typ.
func (l *Level) Spawn(typ string) (x, y int, ok bool) {
	for _, e := range l.Entities {
		if e.Type == typ {
			return e.X, l.Height - 1 - e.Y, true
		}
	}
	return 0, 0, false
}
