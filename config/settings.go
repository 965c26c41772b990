// Package config loads game settings from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed settings.yaml
var defaultSettings []byte

var ErrInvalidSettings = errors.New("config: invalid settings")

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Physics struct {
	Gravity    float64 `yaml:"gravity"`
	TPS        int     `yaml:"tps"`
	Iterations int     `yaml:"iterations"`
}

type Level struct {
	Name          string  `yaml:"name"`
	Tileset       string  `yaml:"tileset"`
	TilesImage    string  `yaml:"tiles_image"`
	PlatformLayer string  `yaml:"platform_layer"`
	BackgroundSX  float64 `yaml:"background_scale_x"`
	BackgroundSY  float64 `yaml:"background_scale_y"`
}

type Camera struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type Settings struct {
	Window  Window  `yaml:"window"`
	Physics Physics `yaml:"physics"`
	Level   Level   `yaml:"level"`
	Camera  Camera  `yaml:"camera"`
	Debug   bool    `yaml:"debug"`

	// Source is the file the settings came from, or "embedded".
	Source string `yaml:"-"`
}

// Default returns the embedded settings.
func Default() (*Settings, error) {
	return parse(defaultSettings, "embedded")
}

// Load resolves settings in order: customPath, ~/.platformer/settings.yaml,
// ./configs/settings.yaml, then the embedded default. A customPath that
// cannot be read is an error; the other locations are optional.
func Load(customPath string) (*Settings, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		return parse(data, customPath)
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return parse(data, path)
	}
	return Default()
}

func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".platformer", "settings.yaml"))
	}
	return append(paths, filepath.Join("configs", "settings.yaml"))
}

// parse overlays data on the embedded defaults, so files may be partial.
func parse(data []byte, source string) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(defaultSettings, &s); err != nil {
		return nil, fmt.Errorf("config: embedded settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", source, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", source, err)
	}
	s.Source = source
	return &s, nil
}

func (s *Settings) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidSettings, s.Window.Width, s.Window.Height)
	case s.Physics.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalidSettings, s.Physics.TPS)
	case s.Physics.Iterations <= 0:
		return fmt.Errorf("%w: iterations %d", ErrInvalidSettings, s.Physics.Iterations)
	case s.Level.Name == "":
		return fmt.Errorf("%w: empty level name", ErrInvalidSettings)
	case s.Camera.Zoom <= 0:
		return fmt.Errorf("%w: camera zoom %v", ErrInvalidSettings, s.Camera.Zoom)
	}
	return nil
}

// Step is the fixed physics timestep in seconds.
func (s *Settings) Step() float64 {
	return 1 / float64(s.Physics.TPS)
}
