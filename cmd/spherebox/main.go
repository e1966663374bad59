package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akmonengine/spherebox"
	"github.com/akmonengine/spherebox/actor"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	SCREEN_WIDTH = 800
	Z_STEP       = 0.25
)

func main() {
	configPath := flag.String("config", "", "YAML scene file (default: built-in demo scene)")
	ticks := flag.Int("ticks", 41, "Number of ticks to sweep the sphere across [-1, 1]")
	zSteps := flag.Int("z", 0, "Forward (negative) or back (positive) steps of 0.25 along z")
	sweep := flag.Bool("sweep", false, "Evaluate the path in one concurrent sweep and print a summary")
	flag.Parse()

	if err := run(*configPath, *ticks, *zSteps, *sweep); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, ticks, zSteps int, sweep bool) error {
	cfg := spherebox.DefaultConfig()
	if configPath != "" {
		loaded, err := spherebox.LoadConfigFile(configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	return runScene(cfg, logger, ticks, zSteps, sweep)
}

// runScene moves the "sphere" body of the scene along x in [-1, 1] and logs
// one "tick" entry per position, or one "sweep" entry per box when sweep is set
func runScene(cfg spherebox.Config, logger *zap.Logger, ticks, zSteps int, sweep bool) error {
	if ticks < 1 {
		return fmt.Errorf("ticks must be >= 1, got %d", ticks)
	}

	world, err := cfg.Build()
	if err != nil {
		return err
	}
	world.Logger = logger

	sphere := world.BodyByName("sphere")
	if sphere == nil {
		return fmt.Errorf("scene has no body named %q", "sphere")
	}

	z := sphere.Center().Z() + float64(zSteps)*Z_STEP
	path := make([]mgl64.Vec3, ticks)
	for i := range path {
		path[i] = mgl64.Vec3{cursorToWorld(i, ticks), 0, z}
	}

	if sweep {
		return runSweep(world, sphere, path, logger)
	}

	for i, position := range path {
		if err := sphere.MoveTo(position); err != nil {
			return err
		}
		world.Step()

		logger.Info("tick",
			zap.Int("tick", i),
			zap.Float64("x", position.X()),
			zap.Float64("z", position.Z()),
			zap.Int("blue", blue(world.IsColliding(sphere))),
		)
	}

	return nil
}

// runSweep tests every position of the path against each static box of the scene
func runSweep(world *spherebox.World, sphere *actor.Body, path []mgl64.Vec3, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shape, ok := sphere.Shape.(actor.Sphere)
	if !ok {
		return fmt.Errorf("body %q is not a sphere", sphere.Name)
	}
	spheres := make([]actor.Sphere, 0, len(path))
	for _, position := range path {
		moved, err := shape.WithCenter(position)
		if err != nil {
			return err
		}
		spheres = append(spheres, moved)
	}

	for _, body := range world.Bodies {
		box, ok := body.Shape.(actor.Box)
		if !ok {
			continue
		}

		results, err := spherebox.Sweep(ctx, box, spheres, world.Workers)
		if err != nil {
			return err
		}

		colliding, first, last := 0, -1, -1
		for i, r := range results {
			if !r.Colliding {
				continue
			}
			colliding++
			if first == -1 {
				first = i
			}
			last = i
		}

		fields := []zap.Field{
			zap.Stringer("box", body),
			zap.Int("samples", len(results)),
			zap.Int("colliding", colliding),
		}
		if first != -1 {
			fields = append(fields,
				zap.Float64("fromX", path[first].X()),
				zap.Float64("toX", path[last].X()),
			)
		}
		logger.Info("sweep", fields...)
	}

	return nil
}

// cursorToWorld maps tick i of n to a cursor column and then to x in [-1, 1]
func cursorToWorld(i, n int) float64 {
	if n == 1 {
		return -1
	}
	cursor := float64(i) * SCREEN_WIDTH / float64(n-1)
	return (cursor/SCREEN_WIDTH)*2 - 1
}

func blue(colliding bool) int {
	if colliding {
		return 1
	}
	return 0
}

func newLogger(level string) (*zap.Logger, error) {
	zapLevel := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		zapLevel = parsed
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	return config.Build()
}
