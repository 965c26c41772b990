package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type SpriteSpec struct {
	Atlas   string  `yaml:"atlas"`
	Image   string  `yaml:"image"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

type ClipSpec struct {
	Name   string   `yaml:"name"`
	Frames []string `yaml:"frames"`
	FPS    float64  `yaml:"fps"`
	Loop   bool     `yaml:"loop"`
}

type BlinkSpec struct {
	DurationMS float64 `yaml:"duration_ms"`
	Repeat     int     `yaml:"repeat"`
}

type PlayerSpec struct {
	Name         string          `yaml:"name"`
	MoveSpeed    float64         `yaml:"move_speed"`
	JumpSpeed    float64         `yaml:"jump_speed"`
	Bounce       float64         `yaml:"bounce"`
	Spawn        PointSpec       `yaml:"spawn"`
	Collider     ColliderSpec    `yaml:"collider"`
	Sprite       SpriteSpec      `yaml:"sprite"`
	RenderLayer  RenderLayerSpec `yaml:"render_layer"`
	RespawnBlink BlinkSpec       `yaml:"respawn_blink"`
	Animations   []ClipSpec      `yaml:"animations"`
	InitialClip  string          `yaml:"initial_clip"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if spec.MoveSpeed <= 0 || spec.JumpSpeed <= 0 {
		return nil, fmt.Errorf("prefabs: player.yaml: move_speed and jump_speed must be positive")
	}
	return &spec, nil
}

type SpikeSpec struct {
	Name        string          `yaml:"name"`
	Sprite      SpriteSpec      `yaml:"sprite"`
	Layer       string          `yaml:"layer"`
	GID         int             `yaml:"gid"`
	HitMargin   float64         `yaml:"hit_margin"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

func LoadSpikeSpec() (*SpikeSpec, error) {
	spec, err := LoadSpec[SpikeSpec]("spike.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Layer == "" {
		return nil, fmt.Errorf("prefabs: spike.yaml: layer is required")
	}
	return &spec, nil
}
