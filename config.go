package spherebox

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/akmonengine/spherebox/actor"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every error reported by Config.Validate
var ErrInvalidConfig = errors.New("invalid scene config")

const (
	ShapeSphere = "sphere"
	ShapeBox    = "box"
)

// Config describes a scene: the world settings and the bodies it starts with.
type Config struct {
	Workers  int          `yaml:"workers"`
	LogLevel string       `yaml:"log_level"`
	Grid     GridConfig   `yaml:"grid"`
	Bodies   []BodyConfig `yaml:"bodies"`
}

// GridConfig sets up the broad-phase spatial grid. Zero values take the defaults.
type GridConfig struct {
	CellSize float64 `yaml:"cell_size"`
	Cells    int     `yaml:"cells"`
}

// BodyConfig describes one body. A box gives exactly one of Size (full dimensions) or
// HalfExtents.
type BodyConfig struct {
	Name        string      `yaml:"name"`
	Shape       string      `yaml:"shape"`
	Static      bool        `yaml:"static,omitempty"`
	Center      [3]float64  `yaml:"center"`
	Radius      float64     `yaml:"radius,omitempty"`
	Size        *[3]float64 `yaml:"size,omitempty"`
	HalfExtents *[3]float64 `yaml:"half_extents,omitempty"`
}

// DefaultConfig is the demo scene: a 1.0 x 0.5 x 0.5 static box and a sphere of radius
// 0.25, both at the origin
func DefaultConfig() Config {
	return Config{
		Workers:  DEFAULT_WORKERS,
		LogLevel: "info",
		Grid: GridConfig{
			CellSize: DEFAULT_CELL_SIZE,
			Cells:    DEFAULT_CELLS,
		},
		Bodies: []BodyConfig{
			{Name: "box", Shape: ShapeBox, Static: true, Size: &[3]float64{1.0, 0.5, 0.5}},
			{Name: "sphere", Shape: ShapeSphere, Radius: 0.25},
		},
	}
}

// LoadConfig decodes a YAML scene
func LoadConfig(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &c, nil
}

// LoadConfigFile decodes the YAML scene at path
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadConfig(f)
}

// Validate reports every problem of the config at once
func (c *Config) Validate() error {
	var errs error

	if c.Workers < 0 {
		errs = multierr.Append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if !(c.Grid.CellSize >= 0) || math.IsInf(c.Grid.CellSize, 1) {
		errs = multierr.Append(errs, fmt.Errorf("grid cell_size must be finite and >= 0 (0 selects the default), got %v", c.Grid.CellSize))
	}
	if c.Grid.Cells < 0 {
		errs = multierr.Append(errs, fmt.Errorf("grid cells must be >= 0, got %d", c.Grid.Cells))
	}

	names := make(map[string]bool, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("body %d: missing name", i))
		} else if names[b.Name] {
			errs = multierr.Append(errs, fmt.Errorf("body %q: duplicate name", b.Name))
		}
		names[b.Name] = true

		if _, err := b.BuildShape(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("body %q: %w", b.Name, err))
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	return nil
}

// BuildShape validates the geometry and returns the body's shape
func (b BodyConfig) BuildShape() (actor.ShapeInterface, error) {
	center := mgl64.Vec3(b.Center)

	switch b.Shape {
	case ShapeSphere:
		if b.Size != nil || b.HalfExtents != nil {
			return nil, errors.New("a sphere takes a radius, not size or half_extents")
		}
		return actor.NewSphere(center, b.Radius)
	case ShapeBox:
		switch {
		case b.Size != nil && b.HalfExtents != nil:
			return nil, errors.New("a box takes size or half_extents, not both")
		case b.Size != nil:
			return actor.NewBoxFromSize(center, mgl64.Vec3(*b.Size))
		case b.HalfExtents != nil:
			return actor.NewBox(center, mgl64.Vec3(*b.HalfExtents))
		default:
			return nil, errors.New("a box needs size or half_extents")
		}
	default:
		return nil, fmt.Errorf("unknown shape %q", b.Shape)
	}
}

// Build validates the config and creates the world with its bodies
func (c *Config) Build() (*World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	world := NewWorld()
	world.Workers = max(DEFAULT_WORKERS, c.Workers)

	cellSize, cells := c.Grid.CellSize, c.Grid.Cells
	if cellSize == 0 {
		cellSize = DEFAULT_CELL_SIZE
	}
	if cells == 0 {
		cells = DEFAULT_CELLS
	}
	world.SpatialGrid = NewSpatialGrid(cellSize, cells)

	for _, b := range c.Bodies {
		shape, err := b.BuildShape()
		if err != nil {
			return nil, err
		}

		bodyType := actor.BodyTypeKinematic
		if b.Static {
			bodyType = actor.BodyTypeStatic
		}
		world.AddBody(actor.NewBody(b.Name, shape, bodyType))
	}

	return world, nil
}
