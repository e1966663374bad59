package spherebox

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/akmonengine/spherebox/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Build(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	world, err := cfg.Build()
	require.NoError(t, err)
	require.Len(t, world.Bodies, 2)

	box := world.BodyByName("box")
	require.NotNil(t, box)
	assert.Equal(t, actor.BodyTypeStatic, box.BodyType)
	assert.Equal(t, mgl64.Vec3{0.5, 0.25, 0.25}, box.Shape.(actor.Box).HalfExtents())

	sphere := world.BodyByName("sphere")
	require.NotNil(t, sphere)
	assert.Equal(t, actor.BodyTypeKinematic, sphere.BodyType)
	assert.Equal(t, 0.25, sphere.Shape.(actor.Sphere).Radius())

	world.Step()
	assert.True(t, world.IsColliding(sphere))
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfigFile("testdata/scene.yaml")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, GridConfig{CellSize: 0.5, Cells: 256}, cfg.Grid)
	require.Len(t, cfg.Bodies, 3)
	assert.Equal(t, [3]float64{-1, 0, 0}, cfg.Bodies[1].Center)

	world, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, world.Workers)

	world.Step()
	assert.False(t, world.IsColliding(world.BodyByName("sphere")))
	assert.True(t, world.IsColliding(world.BodyByName("marker")))
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_UnknownField(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("workers: 1\nspeed: 3\n"))
	assert.Error(t, err)
}

func TestLoadConfig_WrongVectorLength(t *testing.T) {
	_, err := LoadConfig(strings.NewReader(`
bodies:
  - name: s
    shape: sphere
    center: [0, 0]
    radius: 1
`))
	assert.Error(t, err)
}

func TestLoadConfig_HalfExtents(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
bodies:
  - name: wall
    shape: box
    center: [2, 0, 0]
    half_extents: [0.1, 1, 1]
`))
	require.NoError(t, err)

	world, err := cfg.Build()
	require.NoError(t, err)

	// zero values take the defaults
	assert.Equal(t, DEFAULT_WORKERS, world.Workers)
	wall := world.BodyByName("wall").Shape.(actor.Box)
	assert.Equal(t, mgl64.Vec3{0.1, 1, 1}, wall.HalfExtents())
	assert.Equal(t, mgl64.Vec3{2, 0, 0}, wall.Center())
}

func TestConfig_Validate(t *testing.T) {
	size := &[3]float64{1, 1, 1}

	tests := []struct {
		name     string
		mutate   func(c *Config)
		contains []string
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }, []string{"workers"}},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, []string{"loud"}},
		{"negative cell size", func(c *Config) { c.Grid.CellSize = -1 }, []string{"cell_size", "finite and >= 0"}},
		{"NaN cell size", func(c *Config) { c.Grid.CellSize = math.NaN() }, []string{"cell_size", "NaN"}},
		{"infinite cell size", func(c *Config) { c.Grid.CellSize = math.Inf(1) }, []string{"cell_size", "+Inf"}},
		{"negative cells", func(c *Config) { c.Grid.Cells = -2 }, []string{"cells"}},
		{"missing name", func(c *Config) { c.Bodies[1].Name = "" }, []string{"missing name"}},
		{"duplicate name", func(c *Config) { c.Bodies[1].Name = "box" }, []string{"duplicate name"}},
		{"unknown shape", func(c *Config) { c.Bodies[1].Shape = "cone" }, []string{"cone"}},
		{"negative radius", func(c *Config) { c.Bodies[1].Radius = -1 }, []string{"sphere"}},
		{"sphere with size", func(c *Config) { c.Bodies[1].Size = size }, []string{"radius"}},
		{"box without size", func(c *Config) { c.Bodies[0].Size = nil }, []string{"needs size"}},
		{"box with both", func(c *Config) { c.Bodies[0].HalfExtents = size }, []string{"not both"}},
		{"negative size", func(c *Config) { c.Bodies[0].Size = &[3]float64{1, -1, 1} }, []string{"box"}},
		{
			"several problems",
			func(c *Config) {
				c.Workers = -1
				c.Bodies[1].Shape = "cone"
			},
			[]string{"workers", "cone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}

			_, err = cfg.Build()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfig_ValidateGeometryError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies[1].Radius = -0.5

	err := cfg.Validate()
	assert.True(t, errors.Is(err, actor.ErrInvalidGeometry), "got %v", err)
}

func TestLoadConfig_NonFiniteCellSize(t *testing.T) {
	for _, value := range []string{".nan", ".inf"} {
		cfg, err := LoadConfig(strings.NewReader("grid:\n  cell_size: " + value + "\n"))
		require.NoError(t, err)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, value)
	}
}

func TestConfig_ZeroCellSizeIsDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.CellSize = 0
	require.NoError(t, cfg.Validate())
}
