package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings holds the sweep demo configuration.
type Settings struct {
	WindowWidth    int
	WindowHeight   int
	Title          string
	SweepInterval  int // frames per mark/sweep cycle
	WorkingSet     int // meshes drawn per frame
	RetireEvery    int // frames between mesh replacements, 0 disables
	MaxTextureSize int
	TextureDir     string
	LogLevel       string
	SlowFrame      time.Duration
	FPSLimit       int
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		WindowWidth:    900,
		WindowHeight:   600,
		Title:          "glres sweep demo",
		SweepInterval:  1,
		WorkingSet:     8,
		RetireEvery:    120,
		MaxTextureSize: 256,
		LogLevel:       "info",
		SlowFrame:      16 * time.Millisecond,
		FPSLimit:       60,
	}
}

var (
	mu      sync.RWMutex
	current = Default()
)

// Get returns a copy of the current settings.
func Get() Settings {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the current settings after clamping them.
func Set(s Settings) {
	mu.Lock()
	defer mu.Unlock()
	current = clamp(s)
}

// GetSweepInterval returns the number of frames per mark/sweep cycle.
func GetSweepInterval() int {
	mu.RLock()
	defer mu.RUnlock()
	return current.SweepInterval
}

// SetSweepInterval sets the number of frames per mark/sweep cycle
func SetSweepInterval(frames int) {
	mu.Lock()
	defer mu.Unlock()
	current.SweepInterval = clampInt(frames, 1, 600)
}

// GetFPSLimit returns the frame cap, 0 meaning uncapped.
func GetFPSLimit() int {
	mu.RLock()
	defer mu.RUnlock()
	return current.FPSLimit
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp(s Settings) Settings {
	s.WindowWidth = clampInt(s.WindowWidth, 64, 8192)
	s.WindowHeight = clampInt(s.WindowHeight, 64, 8192)
	s.SweepInterval = clampInt(s.SweepInterval, 1, 600)
	s.WorkingSet = clampInt(s.WorkingSet, 1, 1024)
	s.RetireEvery = clampInt(s.RetireEvery, 0, 100000)
	s.MaxTextureSize = clampInt(s.MaxTextureSize, 1, 16384)
	s.FPSLimit = clampInt(s.FPSLimit, 0, 1000)
	if strings.TrimSpace(s.Title) == "" {
		s.Title = Default().Title
	}
	return s
}

type fileConfig struct {
	WindowWidth    int    `toml:"window_width"`
	WindowHeight   int    `toml:"window_height"`
	Title          string `toml:"title"`
	SweepInterval  int    `toml:"sweep_interval"`
	WorkingSet     int    `toml:"working_set"`
	RetireEvery    int    `toml:"retire_every"`
	MaxTextureSize int    `toml:"max_texture_size"`
	TextureDir     string `toml:"texture_dir"`
	LogLevel       string `toml:"log_level"`
	SlowFrame      string `toml:"slow_frame"`
	FPSLimit       int    `toml:"fps_limit"`
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Settings, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Settings{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("window_width") {
		cfg.WindowWidth = raw.WindowWidth
	}
	if meta.IsDefined("window_height") {
		cfg.WindowHeight = raw.WindowHeight
	}
	if meta.IsDefined("title") {
		cfg.Title = strings.TrimSpace(raw.Title)
	}
	if meta.IsDefined("sweep_interval") {
		cfg.SweepInterval = raw.SweepInterval
	}
	if meta.IsDefined("working_set") {
		cfg.WorkingSet = raw.WorkingSet
	}
	if meta.IsDefined("retire_every") {
		cfg.RetireEvery = raw.RetireEvery
	}
	if meta.IsDefined("max_texture_size") {
		cfg.MaxTextureSize = raw.MaxTextureSize
	}
	if meta.IsDefined("texture_dir") {
		cfg.TextureDir = strings.TrimSpace(raw.TextureDir)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if meta.IsDefined("slow_frame") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.SlowFrame))
		if err != nil {
			return Settings{}, fmt.Errorf("parse slow_frame: %w", err)
		}
		cfg.SlowFrame = d
	}
	if meta.IsDefined("fps_limit") {
		cfg.FPSLimit = raw.FPSLimit
	}

	return clamp(cfg), nil
}
