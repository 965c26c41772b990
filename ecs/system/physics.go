package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
	collisionTypeHazard
)

// PhysicsConfig sets up the cp space.
type PhysicsConfig struct {
	Gravity    float64
	Iterations int
	// Step is the fixed timestep in seconds.
	Step float64
}

// HazardContactFunc is called after the step in which the player began
// touching a hazard.
type HazardContactFunc func(w *ecs.World, player, hazard ecs.Entity)

type PhysicsSystem struct {
	space         *cp.Space
	cfg           PhysicsConfig
	handlersReady bool
	world         *ecs.World
	onHazard      HazardContactFunc

	entities     map[ecs.Entity]*bodyInfo
	playerShapes map[*cp.Shape]ecs.Entity
	groundShapes map[*cp.Shape]ecs.Entity
	hazardShapes map[*cp.Shape]ecs.Entity
	playerStates map[ecs.Entity]*playerContactState
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	static      bool
}

type playerContactState struct {
	grounded bool
}

func NewPhysicsSystem(cfg PhysicsConfig) *PhysicsSystem {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 20
	}
	if cfg.Step <= 0 {
		cfg.Step = 1.0 / 60.0
	}
	ps := &PhysicsSystem{cfg: cfg}
	ps.reset()
	return ps
}

func (ps *PhysicsSystem) reset() {
	space := cp.NewSpace()
	space.Iterations = uint(ps.cfg.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: ps.cfg.Gravity})
	ps.space = space
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.playerShapes = make(map[*cp.Shape]ecs.Entity)
	ps.groundShapes = make(map[*cp.Shape]ecs.Entity)
	ps.hazardShapes = make(map[*cp.Shape]ecs.Entity)
	ps.playerStates = make(map[ecs.Entity]*playerContactState)
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// OnHazardContact registers the hazard responder.
func (ps *PhysicsSystem) OnHazardContact(fn HazardContactFunc) {
	if ps == nil {
		return
	}
	ps.onHazard = fn
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.world != nil && ps.world != w {
		ps.reset()
	}
	ps.world = w

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.resetPlayerContacts(w)

	ps.space.Step(ps.cfg.Step)

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		playerEntity, okA := sys.groundShapes[shapeA]
		if !okA {
			var okB bool
			playerEntity, okB = sys.groundShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// Ground is below the player: the normal points down in screen space.
		if n.Y <= 0.5 {
			return true
		}
		st := sys.playerStates[playerEntity]
		if st == nil {
			st = &playerContactState{}
			sys.playerStates[playerEntity] = st
		}
		st.grounded = true
		return true
	}

	hazardHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeHazard)
	hazardHandler.UserData = ps
	hazardHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil || sys.onHazard == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		player, okA := sys.playerShapes[shapeA]
		hazard := sys.hazardShapes[shapeB]
		if !okA {
			player = sys.playerShapes[shapeB]
			hazard = sys.hazardShapes[shapeA]
		}
		// Keyed by player so touching two spikes in one step resets once.
		space.AddPostStepCallback(func(space *cp.Space, key, data interface{}) {
			if sys.world == nil || !sys.world.IsAlive(player) {
				return
			}
			sys.world.Events().Push(ecs.CollisionEvent{Entity: player, Other: hazard, Kind: ecs.CollisionEventHitHazard})
			sys.onHazard(sys.world, player, hazard)
		}, player, nil)
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	if ps.space == nil {
		return
	}

	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		isHazard := ecs.Has(w, e, component.HazardComponent.Kind())

		info := ps.createBodyInfo(transform, bodyComp, isPlayer, isHazard)
		if info == nil || info.mainShape == nil {
			continue
		}

		ps.entities[e] = info
		switch {
		case isPlayer:
			ps.playerShapes[info.mainShape] = e
			if info.groundShape != nil {
				ps.groundShapes[info.groundShape] = e
			}
		case isHazard:
			ps.hazardShapes[info.mainShape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	}
}

// ColliderRect returns the top-left corner and size of an entity's collider.
func ColliderRect(t *component.Transform, b *component.PhysicsBody) (x, y, w, h float64) {
	w, h = b.Width, b.Height
	if w <= 0 || h <= 0 {
		w, h = 32, 32
	}
	x = t.X + b.OffsetX
	y = t.Y + b.OffsetY
	if !b.AlignTopLeft {
		x -= w / 2
		y -= h / 2
	}
	return x, y, w, h
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, isPlayer, isHazard bool) *bodyInfo {
	if ps.space == nil {
		return nil
	}

	topLeftX, topLeftY, width, height := ColliderRect(transform, bodyComp)
	centerX := topLeftX + width/2
	centerY := topLeftY + height/2

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		bb := cp.BB{L: topLeftX, B: topLeftY, R: topLeftX + width, T: topLeftY + height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		if isHazard {
			shape.SetCollisionType(collisionTypeHazard)
		}
		if bodyComp.Sensor {
			shape.SetSensor(true)
		}
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// Infinite moment keeps the body upright.
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: centerX, Y: centerY})
	body.SetAngle(0)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if isPlayer {
		if groundShape := createGroundSensor(width, height, body); groundShape != nil {
			ps.space.AddShape(groundShape)
			info.groundShape = groundShape
			info.shapes = append(info.shapes, groundShape)
		}
	}

	return info
}

func createGroundSensor(width, height float64, body *cp.Body) *cp.Shape {
	if body == nil || width <= 0 || height <= 0 {
		return nil
	}

	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}

	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	return groundShape
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	if ps.space == nil || w == nil {
		return
	}
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}

	worldW := bounds.Width
	worldH := bounds.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetElasticity(1)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}

	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) resetPlayerContacts(w *ecs.World) {
	players := w.Query(component.PlayerCollisionComponent.Kind())
	seen := make(map[ecs.Entity]struct{}, len(players))
	for _, e := range players {
		seen[e] = struct{}{}
		st := ps.playerStates[e]
		if st == nil {
			st = &playerContactState{}
			ps.playerStates[e] = st
		}
		st.grounded = false
	}

	for e := range ps.playerStates {
		if _, ok := seen[e]; !ok {
			delete(ps.playerStates, e)
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, st := range ps.playerStates {
		if !w.IsAlive(e) {
			continue
		}
		pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
		if !ok {
			continue
		}
		if st.grounded && !pc.Grounded {
			w.Events().Push(ecs.CollisionEvent{Entity: e, Kind: ecs.CollisionEventLanded})
		}
		pc.Grounded = st.grounded
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		SyncTransformFromBody(transform, bodyComp)
	})
}

// SyncTransformFromBody copies the body position back into the transform.
func SyncTransformFromBody(t *component.Transform, b *component.PhysicsBody) {
	pos := b.Body.Position()
	if b.AlignTopLeft {
		t.X = pos.X - b.Width/2.0 - b.OffsetX
		t.Y = pos.Y - b.Height/2.0 - b.OffsetY
	} else {
		t.X = pos.X - b.OffsetX
		t.Y = pos.Y - b.OffsetY
	}
}

// PlaceBody moves a dynamic body so that its transform lands on (x, y).
func PlaceBody(t *component.Transform, b *component.PhysicsBody, x, y float64) {
	t.X = x
	t.Y = y
	if b.Body == nil || b.Static {
		return
	}
	cx := x + b.OffsetX
	cy := y + b.OffsetY
	if b.AlignTopLeft {
		cx += b.Width / 2
		cy += b.Height / 2
	}
	b.Body.SetPosition(cp.Vector{X: cx, Y: cy})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}

		for _, shape := range info.shapes {
			if shape == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.playerShapes, shape)
			delete(ps.groundShapes, shape)
			delete(ps.hazardShapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.playerStates, e)
	}
}
