package entity

import (
	"errors"
	"image"
	"reflect"
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/render"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

const testAtlas = `{"frames":[
 {"filename":"robo_player_0","frame":{"x":0,"y":0,"w":48,"h":64}},
 {"filename":"robo_player_1","frame":{"x":48,"y":0,"w":48,"h":64}},
 {"filename":"robo_player_2","frame":{"x":96,"y":0,"w":48,"h":64}},
 {"filename":"robo_player_3","frame":{"x":144,"y":0,"w":48,"h":64}}]}`

const testLevel = `{"width":4,"height":3,"tilewidth":64,"tileheight":64,
 "tilesets":[{"firstgid":1,"name":"kenney_simple_platformer","columns":14,"tilecount":98,"tilewidth":64,"tileheight":64}],
 "layers":[
  {"name":"Platforms","type":"tilelayer","width":4,"height":3,"offsety":200,
   "data":[0,0,0,0, 0,0,3,3, 1,2,3,3]},
  {"name":"Spikes","type":"objectgroup","offsety":200,"objects":[
   {"id":1,"gid":71,"x":64,"y":128,"width":64,"height":64},
   {"id":2,"gid":12,"x":128,"y":128,"width":64,"height":64}]}
 ]}`

func testAtlasFrames(t *testing.T) *render.Atlas {
	t.Helper()
	a, err := render.NewAtlas(nil, []byte(testAtlas))
	if err != nil {
		t.Fatalf("atlas: %v", err)
	}
	return a
}

func testMap(t *testing.T) *levels.Map {
	t.Helper()
	m, err := levels.Parse([]byte(testLevel))
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}
	return m
}

func playerSpec(t *testing.T) *prefabs.PlayerSpec {
	t.Helper()
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("player spec: %v", err)
	}
	return spec
}

func TestNewPlayerAt(t *testing.T) {
	w := ecs.NewWorld()
	spec := playerSpec(t)
	e, err := NewPlayerAt(w, spec, testAtlasFrames(t), 50, 300)
	if err != nil {
		t.Fatalf("NewPlayerAt: %v", err)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 50 || tr.Y != 300 {
		t.Fatalf("transform = (%v, %v)", tr.X, tr.Y)
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if p.MoveSpeed != 200 || p.JumpSpeed != 350 || p.SpawnX != 50 || p.SpawnY != 300 {
		t.Fatalf("player = %+v", p)
	}
	if p.BlinkDuration != 0.1 || p.BlinkRepeat != 5 {
		t.Fatalf("blink tunables = %v/%d", p.BlinkDuration, p.BlinkRepeat)
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.Elasticity != 0.1 || body.Static || body.Sensor {
		t.Fatalf("body = %+v", body)
	}
	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
	if anim.Current != "idle" || len(anim.Clips) != 3 {
		t.Fatalf("animation current %q with %d clips", anim.Current, len(anim.Clips))
	}
	walk := anim.Clips["walk"]
	if !reflect.DeepEqual(walk.Frames, []string{"robo_player_2", "robo_player_3"}) || !walk.Loop || walk.FPS != 10 {
		t.Fatalf("walk clip = %+v", walk)
	}
	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	if sprite.Alpha != 1 || sprite.Source != image.Rect(0, 0, 48, 64) {
		t.Fatalf("sprite = %+v", sprite)
	}
	for _, kind := range []ecs.KindID{
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PlayerCollisionComponent.Kind(),
	} {
		if len(w.Query(kind)) != 1 {
			t.Fatalf("missing component %v", kind.ID())
		}
	}

	if _, err := NewPlayerAt(w, spec, testAtlasFrames(t), 0, 0); !errors.Is(err, ErrPlayerExists) {
		t.Fatalf("expected ErrPlayerExists, got %v", err)
	}
}

func TestNewPlayerAtUnknownFrame(t *testing.T) {
	spec := playerSpec(t)
	spec.Animations = append(spec.Animations, prefabs.ClipSpec{Name: "dash", Frames: []string{"robo_player_9"}, FPS: 10})
	_, err := NewPlayerAt(ecs.NewWorld(), spec, testAtlasFrames(t), 0, 0)
	if !errors.Is(err, render.ErrUnknownFrame) {
		t.Fatalf("expected ErrUnknownFrame, got %v", err)
	}
}

func TestApplyPlayerSpec(t *testing.T) {
	w := ecs.NewWorld()
	spec := playerSpec(t)
	e, err := NewPlayerAt(w, spec, testAtlasFrames(t), 50, 300)
	if err != nil {
		t.Fatal(err)
	}
	updated := *spec
	updated.MoveSpeed = 260
	updated.RespawnBlink.Repeat = 2
	if err := ApplyPlayerSpec(w, e, &updated); err != nil {
		t.Fatalf("apply: %v", err)
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if p.MoveSpeed != 260 || p.BlinkRepeat != 2 || p.SpawnX != 50 {
		t.Fatalf("player = %+v", p)
	}
}

func TestSpikePlacements(t *testing.T) {
	spec := &prefabs.SpikeSpec{Layer: "Spikes", GID: 71, HitMargin: 20}
	got, err := SpikePlacements(testMap(t), spec)
	if err != nil {
		t.Fatalf("placements: %v", err)
	}
	want := []HazardPlacement{{X: 64, Y: 128 + 200 - 64, Width: 64, Height: 64}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("placements = %+v, want %+v", got, want)
	}

	spec.Layer = "Nope"
	if _, err := SpikePlacements(testMap(t), spec); !errors.Is(err, levels.ErrLayerNotFound) {
		t.Fatalf("expected ErrLayerNotFound, got %v", err)
	}
	spec.Layer = "Platforms"
	if _, err := SpikePlacements(testMap(t), spec); err == nil {
		t.Fatalf("expected error for tile layer")
	}
}

func TestNewSpikeAt(t *testing.T) {
	w := ecs.NewWorld()
	spec := &prefabs.SpikeSpec{HitMargin: 20}
	e, err := NewSpikeAt(w, spec, nil, HazardPlacement{X: 64, Y: 264, Width: 64, Height: 64})
	if err != nil {
		t.Fatalf("NewSpikeAt: %v", err)
	}
	h, _ := ecs.Get(w, e, component.HazardComponent.Kind())
	if *h != (component.Hazard{Width: 64, Height: 44, OffsetY: 20}) {
		t.Fatalf("hazard = %+v", h)
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !body.Static || !body.Sensor || !body.AlignTopLeft || body.OffsetY != 20 || body.Height != 44 {
		t.Fatalf("body = %+v", body)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 64 || tr.Y != 264 {
		t.Fatalf("transform = %+v", tr)
	}

	if _, err := NewSpikeAt(w, &prefabs.SpikeSpec{HitMargin: 64}, nil, HazardPlacement{Width: 64, Height: 64}); err == nil {
		t.Fatalf("expected error when margin swallows the collider")
	}
}

func TestLoadLevel(t *testing.T) {
	w := ecs.NewWorld()
	info, err := LoadLevel(w, testMap(t), LevelOptions{Tileset: "kenney_simple_platformer", PlatformLayer: "Platforms"})
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if info.Tiles != 6 {
		t.Fatalf("tiles = %d, want 6", info.Tiles)
	}
	// Row 1 has a 2x2 block on the right, row 2 adds the two cells left of it.
	if info.Colliders != 2 {
		t.Fatalf("colliders = %d, want 2", info.Colliders)
	}
	if info.Width != 256 || info.Height != 192+200 {
		t.Fatalf("extent = %vx%v", info.Width, info.Height)
	}

	var tops []float64
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind()) {
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		tops = append(tops, tr.Y)
	}
	for _, y := range tops {
		if y != 64+200 && y != 128+200 {
			t.Fatalf("collider top %v not shifted by layer offset", y)
		}
	}

	if _, ok := w.First(component.LevelBoundsComponent.Kind()); !ok {
		t.Fatalf("expected level bounds entity")
	}
}

func TestLoadLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		opts LevelOptions
		want error
	}{
		{name: "unknown_tileset", opts: LevelOptions{Tileset: "other", PlatformLayer: "Platforms"}, want: levels.ErrTilesetNotFound},
		{name: "unknown_layer", opts: LevelOptions{Tileset: "kenney_simple_platformer", PlatformLayer: "Ground"}, want: levels.ErrLayerNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadLevel(ecs.NewWorld(), testMap(t), tc.opts); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMergeSolidTiles(t *testing.T) {
	tests := []struct {
		name  string
		solid []bool
		w, h  int
		want  []TileRect
	}{
		{name: "empty", solid: make([]bool, 4), w: 2, h: 2},
		{name: "full", solid: []bool{true, true, true, true}, w: 2, h: 2, want: []TileRect{{0, 0, 2, 2}}},
		{name: "row_split", solid: []bool{true, false, true}, w: 3, h: 1, want: []TileRect{{0, 0, 1, 1}, {2, 0, 1, 1}}},
		{name: "l_shape", solid: []bool{true, false, true, true}, w: 2, h: 2, want: []TileRect{{0, 0, 1, 2}, {1, 1, 1, 1}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MergeSolidTiles(tc.solid, tc.w, tc.h)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestNewCameraAndBackground(t *testing.T) {
	w := ecs.NewWorld()
	cam, err := NewCamera(w, 800, 640, 0, 0.15)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	if c.Zoom != 1 || c.ViewW != 800 {
		t.Fatalf("camera = %+v", c)
	}

	bg, err := NewBackground(w, nil, 2, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	tr, _ := ecs.Get(w, bg, component.TransformComponent.Kind())
	if tr.X != 0 || tr.Y != 0 || tr.ScaleX != 2 || tr.ScaleY != 0.8 {
		t.Fatalf("background transform = %+v", tr)
	}
	layer, _ := ecs.Get(w, bg, component.RenderLayerComponent.Kind())
	if layer.Index != component.LayerBackground {
		t.Fatalf("background layer = %d", layer.Index)
	}
}
