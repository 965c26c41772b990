package scene

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/render"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/levels"
)

// testContext builds a context around the embedded level without decoding
// any PNGs.
func testContext(t *testing.T, held input.Held) *Context {
	t.Helper()
	settings, err := config.Default()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	data, err := assets.LoadFile("tilemaps/level1.json")
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	lvl, err := levels.Parse(data)
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}
	atlasData, err := assets.LoadFile("images/kenney_player_atlas.json")
	if err != nil {
		t.Fatalf("atlas: %v", err)
	}
	atlas, err := render.NewAtlas(nil, atlasData)
	if err != nil {
		t.Fatalf("parse atlas: %v", err)
	}

	ctx := NewContext(settings, log.New(io.Discard))
	ctx.Controls = input.NewControls(held, input.DefaultBindings())
	ctx.Assets = &assets.Bundle{
		Images: map[string]*ebiten.Image{
			"background": ebiten.NewImage(8, 8),
			"spike":      ebiten.NewImage(64, 64),
			"tiles":      ebiten.NewImage(896, 448),
		},
		Map:     lvl,
		MapKey:  "map",
		Atlases: map[string]*render.Atlas{"player": atlas},
	}
	return ctx
}

func buildScene(t *testing.T, held input.Held) (*Platformer, *Context) {
	t.Helper()
	ctx := testContext(t, held)
	p := NewPlatformer(nil, assets.DefaultManifest(""))
	if err := p.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := p.Build(ctx); err != nil {
		t.Fatalf("build: %v", err)
	}
	return p, ctx
}

func TestPlatformerLifecycleErrors(t *testing.T) {
	ctx := testContext(t, input.Held{})
	p := NewPlatformer(nil, assets.DefaultManifest(""))

	if err := p.OnFrame(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("OnFrame before build: %v", err)
	}
	if err := p.Build(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Build before load: %v", err)
	}
	if err := p.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := p.Build(ctx); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := p.Build(ctx); !errors.Is(err, ErrAlreadyBuilt) {
		t.Fatalf("second build: %v", err)
	}
}

func TestLoadWithoutLoaderOrAssets(t *testing.T) {
	ctx := testContext(t, input.Held{})
	ctx.Assets = nil
	if err := NewPlatformer(nil, assets.DefaultManifest("")).Load(ctx); err == nil {
		t.Fatalf("expected error without loader")
	}
}

func TestBuildCreatesLevel(t *testing.T) {
	p, ctx := buildScene(t, input.Held{})
	w := ctx.World

	if n := len(p.Hazards()); n != 5 {
		t.Fatalf("hazards = %d, want 5", n)
	}
	first, _ := ecs.Get(w, p.Hazards()[0], component.TransformComponent.Kind())
	if first.X != 576 || first.Y != 384+200-64 {
		t.Fatalf("first hazard at (%v, %v)", first.X, first.Y)
	}

	tr, _ := ecs.Get(w, p.Player(), component.TransformComponent.Kind())
	if tr.X != 50 || tr.Y != 300 {
		t.Fatalf("player spawned at (%v, %v)", tr.X, tr.Y)
	}
	if len(w.Query(component.PlayerTagComponent.Kind())) != 1 {
		t.Fatalf("expected exactly one player")
	}
	if _, ok := w.First(component.BackgroundTagComponent.Kind()); !ok {
		t.Fatalf("expected background")
	}
	if p.Space() == nil {
		t.Fatalf("expected physics space")
	}
}

func TestFramesSettleThenWalk(t *testing.T) {
	held := input.Held{}
	p, ctx := buildScene(t, held)
	w := ctx.World

	for i := 0; i < 180; i++ {
		if err := p.OnFrame(ctx); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	pc, _ := ecs.Get(w, p.Player(), component.PlayerCollisionComponent.Kind())
	if !pc.Grounded {
		t.Fatalf("player should be resting on the ground")
	}
	anim, _ := ecs.Get(w, p.Player(), component.AnimationComponent.Kind())
	if anim.Current != system.ClipIdle {
		t.Fatalf("clip = %q, want idle", anim.Current)
	}

	held[ebiten.KeyArrowRight] = true
	if err := p.OnFrame(ctx); err != nil {
		t.Fatal(err)
	}
	body, _ := ecs.Get(w, p.Player(), component.PhysicsBodyComponent.Kind())
	if vx := body.Body.Velocity().X; vx != 200 {
		t.Fatalf("vx = %v, want 200", vx)
	}
	if anim.Current != system.ClipWalk {
		t.Fatalf("clip = %q, want walk", anim.Current)
	}
}

func TestHazardContactThroughFrames(t *testing.T) {
	p, ctx := buildScene(t, input.Held{})
	w := ctx.World
	player := p.Player()

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	// First frame creates the bodies.
	if err := p.OnFrame(ctx); err != nil {
		t.Fatal(err)
	}
	// Drop the player onto the first spike.
	system.PlaceBody(tr, body, 608, 450)

	state, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	for i := 0; i < 120 && state.Resets == 0; i++ {
		if err := p.OnFrame(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if state.Resets != 1 {
		t.Fatalf("resets = %d, want 1", state.Resets)
	}
	if tr.X != 50 || tr.Y != 300 {
		t.Fatalf("player at (%v, %v), want (50, 300)", tr.X, tr.Y)
	}
	sprite, _ := ecs.Get(w, player, component.SpriteComponent.Kind())
	if sprite.Alpha != 0 {
		t.Fatalf("alpha = %v, want 0", sprite.Alpha)
	}

	if err := p.OnFrame(ctx); err != nil {
		t.Fatal(err)
	}
	if sprite.Alpha <= 0 || sprite.Alpha >= 1 {
		t.Fatalf("alpha should be fading in, got %v", sprite.Alpha)
	}
}

func TestReloadPrefabAppliesTunables(t *testing.T) {
	p, ctx := buildScene(t, input.Held{})
	if err := p.ReloadPrefab(ctx, "player.yaml"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := p.ReloadPrefab(ctx, "notes.yaml"); err != nil {
		t.Fatalf("unknown prefab should be ignored: %v", err)
	}
	state, _ := ecs.Get(ctx.World, p.Player(), component.PlayerComponent.Kind())
	if state.MoveSpeed != 200 {
		t.Fatalf("move speed = %v", state.MoveSpeed)
	}
}
