package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/riordanpawley/popover/internal/geometry"
	"github.com/riordanpawley/popover/internal/popover"
)

// File names looked up by LoadConfig, in priority order
const (
	JSONFileName = ".popover.json"
	TOMLFileName = ".popover.toml"
)

// Config represents the full popover configuration
type Config struct {
	Animation AnimationConfig `json:"animation" toml:"animation"`
	Defaults  DefaultsConfig  `json:"defaults" toml:"defaults"`
	Log       LogConfig       `json:"log" toml:"log"`
}

// AnimationConfig contains animation timings
type AnimationConfig struct {
	EntryMs     int `json:"entryMs" toml:"entryMs"`
	ExitDelayMs int `json:"exitDelayMs" toml:"exitDelayMs"`
	FrameMs     int `json:"frameMs" toml:"frameMs"`
	// InitialFade may be 0, for a stack that starts fully transparent
	InitialFade *float64 `json:"initialFade,omitempty" toml:"initialFade"`
}

// PlacementConfig describes a geometry.Placement in config files
type PlacementConfig struct {
	Mode          string  `json:"mode" toml:"mode"`
	OriginAnchor  string  `json:"originAnchor,omitempty" toml:"originAnchor"`
	PopoverAnchor string  `json:"popoverAnchor" toml:"popoverAnchor"`
	X             float64 `json:"x,omitempty" toml:"x"`
	Y             float64 `json:"y,omitempty" toml:"y"`
}

// PaddingConfig contains per-edge popover padding
type PaddingConfig struct {
	Top    float64 `json:"top" toml:"top"`
	Left   float64 `json:"left" toml:"left"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Right  float64 `json:"right" toml:"right"`
}

// DefaultsConfig contains the attributes every popover starts from.
// Pointer fields distinguish "unset" from an explicit zero.
type DefaultsConfig struct {
	Placement    PlacementConfig `json:"placement" toml:"placement"`
	Padding      PaddingConfig   `json:"padding" toml:"padding"`
	CornerRadius *float64        `json:"cornerRadius,omitempty" toml:"cornerRadius"`
	ShadowRadius *float64        `json:"shadowRadius,omitempty" toml:"shadowRadius"`
	ShadowColor  string          `json:"shadowColor" toml:"shadowColor"`
	TapDismiss   *bool           `json:"tapDismiss,omitempty" toml:"tapDismiss"`
	ScrimOpacity *float64        `json:"scrimOpacity,omitempty" toml:"scrimOpacity"`
	Transitions  []string        `json:"transitions" toml:"transitions"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `json:"level" toml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	timing := popover.DefaultTiming()
	attrs := popover.DefaultAttributes()

	return &Config{
		Animation: AnimationConfig{
			EntryMs:     int(timing.Entry / time.Millisecond),
			ExitDelayMs: int(timing.ExitDelay / time.Millisecond),
			FrameMs:     33, // ~30fps is plenty for a terminal
			InitialFade: ptr(timing.InitialFade),
		},
		Defaults: DefaultsConfig{
			Placement: PlacementConfig{
				Mode:          geometry.ModeAbsolute.String(),
				OriginAnchor:  geometry.Center.String(),
				PopoverAnchor: geometry.Center.String(),
			},
			CornerRadius: ptr(attrs.CornerRadius),
			ShadowRadius: ptr(attrs.ShadowRadius),
			ShadowColor:  attrs.ShadowColor,
			TapDismiss:   ptr(attrs.TapDismiss),
			ScrimOpacity: ptr(attrs.ScrimOpacity),
			Transitions:  []string{"scale", "opacity"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from dir with priority:
// 1. .popover.json (with version migration support)
// 2. .popover.toml
// 3. Defaults
func LoadConfig(dir string) (*Config, error) {
	jsonPath := filepath.Join(dir, JSONFileName)
	if data, err := os.ReadFile(jsonPath); err == nil {
		cfg, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", JSONFileName, err)
		}
		return finish(cfg)
	}

	tomlPath := filepath.Join(dir, TOMLFileName)
	if data, err := os.ReadFile(tomlPath); err == nil {
		cfg, err := parseTOML(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", TOMLFileName, err)
		}
		return finish(cfg)
	}

	return DefaultConfig(), nil
}

// LoadFile loads an explicit config file, picking the format by extension
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = parseTOML(data)
	case ".json":
		cfg, err = ParseVersionedConfig(data)
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return finish(cfg)
}

func parseTOML(data []byte) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func finish(cfg *Config) (*Config, error) {
	cfg = MergeWithDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	// Merge Animation config
	if cfg.Animation.EntryMs == 0 {
		cfg.Animation.EntryMs = defaults.Animation.EntryMs
	}
	if cfg.Animation.ExitDelayMs == 0 {
		cfg.Animation.ExitDelayMs = defaults.Animation.ExitDelayMs
	}
	if cfg.Animation.FrameMs == 0 {
		cfg.Animation.FrameMs = defaults.Animation.FrameMs
	}
	if cfg.Animation.InitialFade == nil {
		cfg.Animation.InitialFade = defaults.Animation.InitialFade
	}

	// Merge Defaults config
	d := &cfg.Defaults
	if d.Placement.Mode == "" {
		d.Placement.Mode = defaults.Defaults.Placement.Mode
	}
	if d.Placement.OriginAnchor == "" && d.Placement.Mode == geometry.ModeAbsolute.String() {
		d.Placement.OriginAnchor = defaults.Defaults.Placement.OriginAnchor
	}
	if d.Placement.PopoverAnchor == "" {
		d.Placement.PopoverAnchor = defaults.Defaults.Placement.PopoverAnchor
	}
	if d.CornerRadius == nil {
		d.CornerRadius = defaults.Defaults.CornerRadius
	}
	if d.ShadowRadius == nil {
		d.ShadowRadius = defaults.Defaults.ShadowRadius
	}
	if d.ShadowColor == "" {
		d.ShadowColor = defaults.Defaults.ShadowColor
	}
	if d.TapDismiss == nil {
		d.TapDismiss = defaults.Defaults.TapDismiss
	}
	if d.ScrimOpacity == nil {
		d.ScrimOpacity = defaults.Defaults.ScrimOpacity
	}
	if d.Transitions == nil {
		d.Transitions = defaults.Defaults.Transitions
	}

	// Merge Log config
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return cfg
}

// Validate checks that every symbolic value parses
func (c *Config) Validate() error {
	if _, err := c.Defaults.Placement.Placement(); err != nil {
		return fmt.Errorf("invalid placement: %w", err)
	}
	for _, t := range c.Defaults.Transitions {
		if _, err := ParseTransition(t); err != nil {
			return err
		}
	}
	for name, ms := range map[string]int{
		"entryMs":     c.Animation.EntryMs,
		"exitDelayMs": c.Animation.ExitDelayMs,
		"frameMs":     c.Animation.FrameMs,
	} {
		if ms < 0 {
			return fmt.Errorf("%s %d must not be negative", name, ms)
		}
	}
	if f := c.Animation.InitialFade; f != nil && (*f < 0 || *f > 1) {
		return fmt.Errorf("initialFade %g out of range [0,1]", *f)
	}
	if s := c.Defaults.ScrimOpacity; s != nil && (*s < 0 || *s > 1) {
		return fmt.Errorf("scrimOpacity %g out of range [0,1]", *s)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// Timing converts the animation settings for popover.Controller
func (c *Config) Timing() popover.Timing {
	return popover.Timing{
		Entry:       time.Duration(c.Animation.EntryMs) * time.Millisecond,
		ExitDelay:   time.Duration(c.Animation.ExitDelayMs) * time.Millisecond,
		InitialFade: c.initialFade(),
	}
}

// FrameInterval is the delay between animation frames
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.Animation.FrameMs) * time.Millisecond
}

func (c *Config) initialFade() float64 {
	if c.Animation.InitialFade == nil {
		return popover.DefaultTiming().InitialFade
	}
	return *c.Animation.InitialFade
}

// Attributes builds the default popover attributes
func (c *Config) Attributes() (popover.Attributes, error) {
	a := popover.DefaultAttributes()
	d := c.Defaults

	placement, err := d.Placement.Placement()
	if err != nil {
		return a, err
	}
	a.Placement = placement
	a.Padding = geometry.Insets{Top: d.Padding.Top, Left: d.Padding.Left, Bottom: d.Padding.Bottom, Right: d.Padding.Right}
	if d.CornerRadius != nil {
		a.CornerRadius = *d.CornerRadius
	}
	if d.ShadowRadius != nil {
		a.ShadowRadius = *d.ShadowRadius
	}
	if d.ShadowColor != "" {
		a.ShadowColor = d.ShadowColor
	}
	if d.TapDismiss != nil {
		a.TapDismiss = *d.TapDismiss
	}
	if d.ScrimOpacity != nil {
		a.ScrimOpacity = *d.ScrimOpacity
	}
	if d.Transitions != nil {
		a.Transitions = make([]popover.Transition, 0, len(d.Transitions))
		for _, s := range d.Transitions {
			t, err := ParseTransition(s)
			if err != nil {
				return a, err
			}
			a.Transitions = append(a.Transitions, t)
		}
	}
	return a, nil
}

// Placement converts the config form into a geometry.Placement
func (p PlacementConfig) Placement() (geometry.Placement, error) {
	popoverAnchor, err := geometry.ParseAnchor(p.PopoverAnchor)
	if err != nil {
		return geometry.Placement{}, err
	}

	switch strings.ToLower(p.Mode) {
	case "", "absolute":
		origin, err := geometry.ParseAnchor(p.OriginAnchor)
		if err != nil {
			return geometry.Placement{}, err
		}
		return geometry.Absolute(origin, popoverAnchor), nil
	case "relative":
		return geometry.Relative(geometry.Point{X: p.X, Y: p.Y}, popoverAnchor), nil
	default:
		return geometry.Placement{}, fmt.Errorf("unknown placement mode %q", p.Mode)
	}
}

// ParseTransition parses "scale", "opacity" or "slide:dx,dy"
func ParseTransition(s string) (popover.Transition, error) {
	name, args, _ := strings.Cut(strings.TrimSpace(s), ":")
	switch strings.ToLower(name) {
	case "scale":
		return popover.Scale(), nil
	case "opacity", "fade":
		return popover.Opacity(), nil
	case "slide":
		var dx, dy float64
		if args != "" {
			parts := strings.Split(args, ",")
			if len(parts) > 2 {
				return popover.Transition{}, fmt.Errorf("slide takes at most two offsets: %q", s)
			}
			var err error
			if dx, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
				return popover.Transition{}, fmt.Errorf("invalid slide offset in %q: %w", s, err)
			}
			if len(parts) == 2 {
				if dy, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
					return popover.Transition{}, fmt.Errorf("invalid slide offset in %q: %w", s, err)
				}
			}
		}
		return popover.Slide(dx, dy), nil
	default:
		return popover.Transition{}, fmt.Errorf("unknown transition %q", s)
	}
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}

func ptr[T any](v T) *T {
	return &v
}
