package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
)

//go:embed *.json
var LevelsFS embed.FS

var (
	ErrNoSpawn   = errors.New("levels: no spawn entity")
	ErrBadLayer  = errors.New("levels: layer size mismatch")
	ErrBadOrbRef = errors.New("levels: orb entity without an orb name")
)

const (
	EntitySpawn = "spawn"
	EntityOrb   = "orb"
)

// Level is a grid of tile layers plus placed entities. Row 0 is the top
// row; world space is y up with one unit per tile by default.
type Level struct {
	Name      string      `json:"name,omitempty"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Name    string `json:"name,omitempty"`
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// OrbName returns the orb definition an orb entity refers to.
func (e Entity) OrbName() string {
	if e.Props == nil {
		return ""
	}
	name, _ := e.Props["orb"].(string)
	return strings.TrimSpace(name)
}

// Load reads a level by name. A file under ./levels wins over the embedded
// copy.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	return Parse(data)
}

// LoadLevelFromFS reads a level from the embedded set only.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelPath(name))
	if err != nil {
		return nil, fmt.Errorf("levels: read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Names lists the embedded levels without extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadLayer, l.Width, l.Height)
	}
	if l.TileSize <= 0 {
		l.TileSize = 1
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrBadLayer, i, len(layer), l.Width*l.Height)
		}
	}
	spawns := 0
	for i, e := range l.Entities {
		switch e.Type {
		case EntitySpawn:
			spawns++
		case EntityOrb:
			if e.OrbName() == "" {
				return fmt.Errorf("%w: entity %d at %d,%d", ErrBadOrbRef, i, e.X, e.Y)
			}
		}
	}
	if spawns == 0 {
		return ErrNoSpawn
	}
	return nil
}

// Meta returns the metadata of layer i. Without metadata a single layer is
// treated as the physics layer.
func (l *Level) Meta(i int) LayerMeta {
	if i >= 0 && i < len(l.LayerMeta) {
		return l.LayerMeta[i]
	}
	return LayerMeta{Physics: len(l.LayerMeta) == 0 && len(l.Layers) == 1}
}

func (l *Level) PhysicsLayers() [][]int {
	var out [][]int
	for i, layer := range l.Layers {
		if l.Meta(i).Physics {
			out = append(out, layer)
		}
	}
	return out
}

// Spawn returns the first spawn entity.
func (l *Level) Spawn() (Entity, error) {
	for _, e := range l.Entities {
		if e.Type == EntitySpawn {
			return e, nil
		}
	}
	return Entity{}, ErrNoSpawn
}

func (l *Level) Orbs() []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == EntityOrb {
			out = append(out, e)
		}
	}
	return out
}

// TileCenter converts a tile column and row to the world position of the
// tile's center.
func (l *Level) TileCenter(col, row int) cp.Vector {
	ts := l.tileSize()
	return cp.Vector{
		X: (float64(col) + 0.5) * ts,
		Y: float64(l.Height-row)*ts - 0.5*ts,
	}
}

// TileBottom is the world position of the bottom center of a tile, where
// a spawned body's feet go.
func (l *Level) TileBottom(col, row int) cp.Vector {
	ts := l.tileSize()
	return cp.Vector{X: (float64(col) + 0.5) * ts, Y: float64(l.Height-row-1) * ts}
}

func (l *Level) Bounds() cp.BB {
	ts := l.tileSize()
	return cp.BB{L: 0, B: 0, R: float64(l.Width) * ts, T: float64(l.Height) * ts}
}

func (l *Level) tileSize() float64 {
	if l.TileSize <= 0 {
		return 1
	}
	return l.TileSize
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".json"
	}
	return s
}
