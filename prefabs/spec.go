package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/orbhop/motion"
	"github.com/milk9111/orbhop/orb"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownOrb   = errors.New("prefabs: unknown orb")
	ErrDuplicateOrb = errors.New("prefabs: duplicate orb")
)

const (
	PlayerFile = "player.yaml"
	OrbsFile   = "orbs.yaml"
)

// LoadSpec decodes filename over defaults, so fields missing from the file
// keep their default values.
func LoadSpec[T any](filename string, defaults T) (T, error) {
	data, err := Load(filename)
	if err != nil {
		return defaults, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := defaults
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return defaults, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type BodySpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerSpec struct {
	Name  string       `yaml:"name"`
	Color YAMLColor    `yaml:"color"`
	Body  BodySpec     `yaml:"body"`
	Stats motion.Stats `yaml:"stats"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name:  "player",
		Color: YAMLColor{Color: colornames.Lightskyblue},
		Body:  BodySpec{Width: 0.8, Height: 1.6},
		Stats: motion.DefaultStats(),
	}
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec(PlayerFile, DefaultPlayerSpec())
	if err != nil {
		return nil, err
	}
	if spec.Body.Width <= 0 || spec.Body.Height <= 0 {
		return nil, fmt.Errorf("prefabs: %s: body size must be positive, got %vx%v", PlayerFile, spec.Body.Width, spec.Body.Height)
	}
	return &spec, nil
}

type OrbsSpec struct {
	Orbs []orb.Definition `yaml:"orbs"`
}

// OrbCatalog indexes orb definitions by name.
type OrbCatalog struct {
	byName map[string]*orb.Definition
	// Clamped lists, per orb name, the fields Sanitize had to fix.
	Clamped map[string][]string
}

func LoadOrbCatalog() (*OrbCatalog, error) {
	spec, err := LoadSpec(OrbsFile, OrbsSpec{})
	if err != nil {
		return nil, err
	}
	return NewOrbCatalog(spec.Orbs)
}

// NewOrbCatalog sanitizes and indexes defs. Names are case-insensitive and
// must be unique.
func NewOrbCatalog(defs []orb.Definition) (*OrbCatalog, error) {
	c := &OrbCatalog{
		byName:  make(map[string]*orb.Definition, len(defs)),
		Clamped: make(map[string][]string),
	}
	for i := range defs {
		def := defs[i]
		key := strings.ToLower(strings.TrimSpace(def.Name))
		if key == "" {
			return nil, fmt.Errorf("prefabs: orb #%d has no name", i)
		}
		if _, ok := c.byName[key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateOrb, def.Name)
		}
		if def.Color == "" {
			def.Color = def.Name
		}
		if clamped := def.Sanitize(); len(clamped) > 0 {
			c.Clamped[def.Name] = clamped
		}
		c.byName[key] = &def
	}
	return c, nil
}

func (c *OrbCatalog) Lookup(name string) (*orb.Definition, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOrb, name)
	}
	def, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOrb, name)
	}
	return def, nil
}

// Names returns the orb names in sorted order.
func (c *OrbCatalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.byName))
	for _, def := range c.byName {
		names = append(names, def.Name)
	}
	sort.Strings(names)
	return names
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor accepts an SVG color name ("tomato") or hex RRGGBB[AA] with
// an optional leading '#'.
func ParseColor(s string) (color.Color, error) {
	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		return named, nil
	}

	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(hex) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
