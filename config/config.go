package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

// ErrInvalid is wrapped by every Validate failure
var ErrInvalid = errors.New("invalid config")

// Config is the full TOML configuration; every section is optional
type Config struct {
	Sim       SimConfig       `toml:"sim"`
	Frame     FrameConfig     `toml:"frame"`
	Camera    CameraConfig    `toml:"camera"`
	Audio     AudioConfig     `toml:"audio"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Keys      map[string]any  `toml:"keys"`
	Bodies    []body.Spec     `toml:"bodies"`
}

type SimConfig struct {
	DistanceFactor float64 `toml:"distance_factor"`
	MassFactor     float64 `toml:"mass_factor"`
	FastSpeed      float64 `toml:"fast_speed"`
	PanSpeed       float64 `toml:"pan_speed"`
	ScrollStep     float64 `toml:"scroll_step"`
	BanishCount    int     `toml:"banish_count"`
}

type FrameConfig struct {
	TPS   int     `toml:"tps"`
	MaxDt float64 `toml:"max_dt"` // seconds; larger frame gaps are clamped
}

type CameraConfig struct {
	Position [3]float64 `toml:"position"`
	Rotation [3]float64 `toml:"rotation"` // Euler degrees
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"` // 0.0-1.0
	SampleRate int     `toml:"sample_rate"`
}

// TelemetryConfig is off while Addr is empty
type TelemetryConfig struct {
	Addr     string  `toml:"addr"`
	StreamHz float64 `toml:"stream_hz"`
}

// Default returns the classic visualizer setup
func Default() *Config {
	s := engine.DefaultSettings()
	cam := scene.DefaultCamera()
	return &Config{
		Sim: SimConfig{
			DistanceFactor: s.DistanceFactor,
			MassFactor:     s.MassFactor,
			FastSpeed:      s.FastSpeed,
			PanSpeed:       s.PanSpeed,
			ScrollStep:     s.ScrollStep,
			BanishCount:    s.BanishCount,
		},
		Frame: FrameConfig{TPS: 60, MaxDt: 0.1},
		Camera: CameraConfig{
			Position: [3]float64{cam.Position.X, cam.Position.Y, cam.Position.Z},
			Rotation: [3]float64{cam.Rotation.X, cam.Rotation.Y, cam.Rotation.Z},
		},
		Audio:     AudioConfig{Enabled: true, Volume: 0.5, SampleRate: 44100},
		Telemetry: TelemetryConfig{StreamHz: 10},
	}
}

// Load reads path over the defaults, applies env overrides and validates
// An empty path yields the defaults
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults; unknown keys are rejected
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("parse config at %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies ORRERY_AUDIO_ENABLED and ORRERY_MASTER_VOLUME (0-100)
// Unparseable values are ignored
func (c *Config) ApplyEnv() {
	if enabled := os.Getenv("ORRERY_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = val
		}
	}

	if volume := os.Getenv("ORRERY_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.Audio.Volume = math.Max(0, math.Min(1, float64(val)/100.0))
		}
	}
}

// Validate rejects values the simulation cannot run with
func (c *Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"sim.distance_factor", c.Sim.DistanceFactor},
		{"sim.mass_factor", c.Sim.MassFactor},
		{"sim.fast_speed", c.Sim.FastSpeed},
		{"frame.max_dt", c.Frame.MaxDt},
		{"telemetry.stream_hz", c.Telemetry.StreamHz},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.v)
		}
	}

	if c.Sim.PanSpeed < 0 || math.IsNaN(c.Sim.PanSpeed) {
		return fmt.Errorf("%w: sim.pan_speed must not be negative, got %v", ErrInvalid, c.Sim.PanSpeed)
	}
	if math.IsNaN(c.Sim.ScrollStep) || math.IsInf(c.Sim.ScrollStep, 0) {
		return fmt.Errorf("%w: sim.scroll_step must be finite", ErrInvalid)
	}
	if c.Sim.BanishCount < 0 {
		return fmt.Errorf("%w: sim.banish_count must not be negative, got %d", ErrInvalid, c.Sim.BanishCount)
	}
	if c.Frame.TPS <= 0 {
		return fmt.Errorf("%w: frame.tps must be positive, got %d", ErrInvalid, c.Frame.TPS)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be within [0, 1], got %v", ErrInvalid, c.Audio.Volume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio.sample_rate must be positive, got %d", ErrInvalid, c.Audio.SampleRate)
	}

	if len(c.Bodies) > 1 {
		return fmt.Errorf("%w: bodies must hold a single root, got %d", ErrInvalid, len(c.Bodies))
	}
	if len(c.Bodies) == 1 {
		if err := c.Bodies[0].Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}

	if _, err := c.Keymap(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Settings converts the [sim] section for the engine
func (c *Config) Settings() engine.Settings {
	return engine.Settings{
		DistanceFactor: c.Sim.DistanceFactor,
		MassFactor:     c.Sim.MassFactor,
		FastSpeed:      c.Sim.FastSpeed,
		PanSpeed:       c.Sim.PanSpeed,
		ScrollStep:     c.Sim.ScrollStep,
		BanishCount:    c.Sim.BanishCount,
	}
}

// BodySpec returns the configured tree, or the default solar system
func (c *Config) BodySpec() body.Spec {
	if len(c.Bodies) == 1 {
		return c.Bodies[0]
	}
	return body.SolarSystem(c.Sim.MassFactor)
}

// Keymap merges [keys] over the default bindings
func (c *Config) Keymap() (input.Keymap, error) {
	if len(c.Keys) == 0 {
		return input.DefaultKeymap(), nil
	}
	return input.ParseKeymap(input.DefaultKeymap(), c.Keys)
}

// ApplyCamera overwrites cam with the configured start pose
func (c *Config) ApplyCamera(cam *scene.Camera) {
	p, r := c.Camera.Position, c.Camera.Rotation
	cam.Position = vmath.Vec3F{X: p[0], Y: p[1], Z: p[2]}
	cam.Rotation = vmath.Vec3F{X: r[0], Y: r[1], Z: r[2]}
}
