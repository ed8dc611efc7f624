// Package config loads the YAML file describing a platformer world: tick
// rate, gravity, grid geometry, the player, the camera and the levels.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/plus3/ledge/sim"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the on-disk description of a world.
type Config struct {
	TargetUPS        int           `yaml:"target_ups" json:"target_ups" jsonschema:"title=Updates per second,description=Fixed simulation tick rate,minimum=1,default=50"`
	MaxTicksPerFrame int           `yaml:"max_ticks_per_frame" json:"max_ticks_per_frame" jsonschema:"description=Upper bound on ticks run for one rendered frame (0 disables the cap),minimum=0,default=5"`
	Gravity          float32       `yaml:"gravity" json:"gravity" jsonschema:"description=Downward force applied per tick to falling bodies"`
	WorldWidth       float32       `yaml:"world_width" json:"world_width" jsonschema:"description=World width in world units,minimum=0,default=5000"`
	WorldHeight      float32       `yaml:"world_height" json:"world_height" jsonschema:"description=World height in world units,minimum=0,default=5000"`
	CellWidth        float32       `yaml:"cell_width" json:"cell_width" jsonschema:"description=Grid cell width,minimum=0,default=50"`
	CellHeight       float32       `yaml:"cell_height" json:"cell_height" jsonschema:"description=Grid cell height,minimum=0,default=50"`
	Player           PlayerConfig  `yaml:"player" json:"player"`
	Camera           CameraConfig  `yaml:"camera" json:"camera"`
	Levels           []LevelConfig `yaml:"levels" json:"levels" jsonschema:"description=Levels in play order"`
}

type PlayerConfig struct {
	StartX float32 `yaml:"start_x" json:"start_x" jsonschema:"default=50"`
	StartY float32 `yaml:"start_y" json:"start_y" jsonschema:"default=50"`
	Width  float32 `yaml:"width" json:"width" jsonschema:"minimum=0,default=50"`
	Height float32 `yaml:"height" json:"height" jsonschema:"minimum=0,default=100"`
}

type CameraConfig struct {
	Width  float32 `yaml:"width" json:"width" jsonschema:"minimum=0,default=1280"`
	Height float32 `yaml:"height" json:"height" jsonschema:"minimum=0,default=720"`
}

// LevelConfig describes one level. A zero size uses the world size.
type LevelConfig struct {
	Width     float32          `yaml:"width,omitempty" json:"width,omitempty" jsonschema:"minimum=0"`
	Height    float32          `yaml:"height,omitempty" json:"height,omitempty" jsonschema:"minimum=0"`
	Platforms []PlatformConfig `yaml:"platforms" json:"platforms"`
}

// PlatformConfig is one piece of level geometry centered on (x, y).
type PlatformConfig struct {
	X      float32 `yaml:"x" json:"x" jsonschema:"required"`
	Y      float32 `yaml:"y" json:"y" jsonschema:"required"`
	Width  float32 `yaml:"width" json:"width" jsonschema:"required,minimum=0"`
	Height float32 `yaml:"height" json:"height" jsonschema:"required,minimum=0"`
	Kind   string  `yaml:"kind,omitempty" json:"kind,omitempty" jsonschema:"enum=platform,enum=decoration,default=platform"`
	Color  string  `yaml:"color,omitempty" json:"color,omitempty" jsonschema:"pattern=^#[0-9a-fA-F]{6}$,default=#ffffff"`
}

// Default returns the stock world: one 5000x5000 level with a green and a
// red platform.
func Default() *Config {
	return &Config{
		TargetUPS:        sim.DefaultUpdatesPerSecond,
		MaxTicksPerFrame: 5,
		Gravity:          0.01,
		WorldWidth:       5000,
		WorldHeight:      5000,
		CellWidth:        50,
		CellHeight:       50,
		Player: PlayerConfig{
			StartX: 50,
			StartY: 50,
			Width:  50,
			Height: 100,
		},
		Camera: CameraConfig{
			Width:  1280,
			Height: 720,
		},
		Levels: []LevelConfig{
			{
				Width:  5000,
				Height: 5000,
				Platforms: []PlatformConfig{
					{X: 50, Y: 500, Width: 50, Height: 50, Kind: "platform", Color: "#00ff00"},
					{X: 500, Y: 500, Width: 50, Height: 50, Kind: "platform", Color: "#ff0000"},
				},
			},
		},
	}
}

// Load reads the YAML file at path on top of Default and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes the config as YAML.
func (c *Config) Write(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return encoder.Close()
}

// Validate reports the first offending field.
func (c *Config) Validate() error {
	switch {
	case c.TargetUPS <= 0:
		return fmt.Errorf("%w: target_ups must be positive, got %d", ErrInvalid, c.TargetUPS)
	case c.MaxTicksPerFrame < 0:
		return fmt.Errorf("%w: max_ticks_per_frame must not be negative, got %d", ErrInvalid, c.MaxTicksPerFrame)
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return fmt.Errorf("%w: world size must be positive, got %vx%v", ErrInvalid, c.WorldWidth, c.WorldHeight)
	case c.CellWidth <= 0 || c.CellHeight <= 0:
		return fmt.Errorf("%w: cell size must be positive, got %vx%v", ErrInvalid, c.CellWidth, c.CellHeight)
	case c.CellWidth > c.WorldWidth || c.CellHeight > c.WorldHeight:
		return fmt.Errorf("%w: cell %vx%v larger than world", ErrInvalid, c.CellWidth, c.CellHeight)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalid)
	case c.Camera.Width <= 0 || c.Camera.Height <= 0:
		return fmt.Errorf("%w: camera size must be positive", ErrInvalid)
	case len(c.Levels) == 0:
		return fmt.Errorf("%w: at least one level is required", ErrInvalid)
	}

	for i, level := range c.Levels {
		if level.Width < 0 || level.Height < 0 {
			return fmt.Errorf("%w: levels[%d]: size must not be negative", ErrInvalid, i)
		}
		for j, platform := range level.Platforms {
			if platform.Width <= 0 || platform.Height <= 0 {
				return fmt.Errorf("%w: levels[%d].platforms[%d]: size must be positive", ErrInvalid, i, j)
			}
			if _, err := parseKind(platform.Kind); err != nil {
				return fmt.Errorf("%w: levels[%d].platforms[%d]: %v", ErrInvalid, i, j, err)
			}
			if _, err := ParseColor(platform.Color); err != nil {
				return fmt.Errorf("%w: levels[%d].platforms[%d]: %v", ErrInvalid, i, j, err)
			}
		}
	}

	return nil
}

// Settings converts the config into world settings.
func (c *Config) Settings() sim.Settings {
	return sim.Settings{
		Gravity:    c.Gravity,
		Width:      c.WorldWidth,
		Height:     c.WorldHeight,
		CellWidth:  c.CellWidth,
		CellHeight: c.CellHeight,
	}
}

// SimLevels converts the level list into simulation levels.
func (c *Config) SimLevels() ([]sim.Level, error) {
	levels := make([]sim.Level, 0, len(c.Levels))
	for i, lc := range c.Levels {
		level := sim.Level{
			Width:     lc.Width,
			Height:    lc.Height,
			Platforms: make([]sim.PlatformData, 0, len(lc.Platforms)),
		}
		for j, pc := range lc.Platforms {
			kind, err := parseKind(pc.Kind)
			if err != nil {
				return nil, fmt.Errorf("levels[%d].platforms[%d]: %w", i, j, err)
			}
			clr, err := ParseColor(pc.Color)
			if err != nil {
				return nil, fmt.Errorf("levels[%d].platforms[%d]: %w", i, j, err)
			}
			level.Platforms = append(level.Platforms, sim.PlatformData{
				X:      pc.X,
				Y:      pc.Y,
				Width:  pc.Width,
				Height: pc.Height,
				Kind:   kind,
				Color:  clr,
			})
		}
		levels = append(levels, level)
	}
	return levels, nil
}

// NewWorld builds a world from the config with every level added and the
// first one loaded. The player is not spawned.
func (c *Config) NewWorld(builder *sim.EntityBuilder) (*sim.World, error) {
	world, err := sim.NewWorld(c.Settings(), builder)
	if err != nil {
		return nil, err
	}

	levels, err := c.SimLevels()
	if err != nil {
		return nil, err
	}
	for _, level := range levels {
		world.AddLevel(level)
	}
	if err := world.LoadLevel(0); err != nil {
		return nil, err
	}
	return world, nil
}

// NewStepper builds a stepper ticking at the configured rate.
func (c *Config) NewStepper() *sim.Stepper {
	stepper := sim.NewStepper(c.TargetUPS)
	stepper.MaxTicksPerFrame = c.MaxTicksPerFrame
	return stepper
}

// SpawnPlayer adds the configured player to world.
func (c *Config) SpawnPlayer(world *sim.World, render sim.RenderBehavior) (sim.EntityId, error) {
	player := sim.NewPlayer(world.Builder(), c.Player.StartX, c.Player.StartY, c.Player.Width, c.Player.Height, render)
	if err := world.Spawn(player); err != nil {
		return 0, fmt.Errorf("spawn player: %w", err)
	}
	return player.Id(), nil
}

// NewCamera builds a camera centered on the player's start position.
func (c *Config) NewCamera() sim.Camera {
	return sim.NewCamera(c.Player.StartX, c.Player.StartY, c.Camera.Width, c.Camera.Height)
}

func parseKind(kind string) (sim.PlatformKind, error) {
	switch strings.ToLower(kind) {
	case "", "platform":
		return sim.KindPlatform, nil
	case "decoration":
		return sim.KindDecoration, nil
	default:
		return 0, fmt.Errorf("unknown platform kind %q", kind)
	}
}

// ParseColor parses "#rrggbb". An empty string is opaque white.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}

	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
