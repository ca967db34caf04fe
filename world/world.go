package world

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"
	"github.com/oomph-ac/strafe/assert"
	"github.com/oomph-ac/strafe/fpsim"
	"github.com/oomph-ac/strafe/game"
	"github.com/oomph-ac/strafe/oerror"
	"github.com/oomph-ac/strafe/probe"
	"github.com/oomph-ac/strafe/worker"
)

// Camera describes where the view sits on a body.
type Camera struct {
	// HeightOffset is added to the view height above the body centre.
	HeightOffset float32 `yaml:"height_offset"`
	// RadiusScale is the share of the capsule radius added to the view height.
	RadiusScale float32 `yaml:"radius_scale"`
}

// Config configures a World.
type Config struct {
	// TickRate is the number of fixed steps per second.
	TickRate int
	// Workers is the number of goroutines bodies are partitioned over. One ticks every body on the
	// calling goroutine.
	Workers int
	Camera  Camera
}

// Body is the handle of a body in a World.
type Body = ecs.Entity

// World holds every logical body as an entity and advances them with a fixed set of named
// systems, run in order once per tick.
type World struct {
	ecs *ecs.World

	mapper *ecs.Map7[fpsim.State, Controls, Motion, fpsim.Transform, fpsim.Collider, Ground, View]
	filter *ecs.Filter7[fpsim.State, Controls, Motion, fpsim.Transform, fpsim.Collider, Ground, View]

	stateMap     *ecs.Map1[fpsim.State]
	controlsMap  *ecs.Map1[Controls]
	motionMap    *ecs.Map1[Motion]
	transformMap *ecs.Map1[fpsim.Transform]
	colliderMap  *ecs.Map1[fpsim.Collider]
	groundMap    *ecs.Map1[Ground]
	viewMap      *ecs.Map1[View]

	scene   *probe.Scene
	sim     *fpsim.Simulator
	pool    *worker.Pool
	systems *orderedmap.OrderedMap[string, System]

	conf  Config
	dt    float32
	tick  uint64
	order []Body
	// bodies is rebuilt at the start of every tick. Its pointers are only valid during a tick.
	bodies []bodyRef

	log *slog.Logger
}

// bodyRef points at the components of one body for the duration of a tick.
type bodyRef struct {
	entity   Body
	body     fpsim.Body
	controls *Controls
	motion   *Motion
	ground   *Ground
	view     *View
}

// New creates a World that resolves collisions against scene.
func New(conf Config, scene *probe.Scene, logger *slog.Logger) *World {
	assert.IsTrue(conf.TickRate > 0, "world: tick rate must be positive, got %d", conf.TickRate)
	assert.IsTrue(scene != nil, "world: nil scene")
	if logger == nil {
		logger = slog.Default()
	}

	w := ecs.NewWorld()
	world := &World{
		ecs:          w,
		mapper:       ecs.NewMap7[fpsim.State, Controls, Motion, fpsim.Transform, fpsim.Collider, Ground, View](w),
		filter:       ecs.NewFilter7[fpsim.State, Controls, Motion, fpsim.Transform, fpsim.Collider, Ground, View](w),
		stateMap:     ecs.NewMap1[fpsim.State](w),
		controlsMap:  ecs.NewMap1[Controls](w),
		motionMap:    ecs.NewMap1[Motion](w),
		transformMap: ecs.NewMap1[fpsim.Transform](w),
		colliderMap:  ecs.NewMap1[fpsim.Collider](w),
		groundMap:    ecs.NewMap1[Ground](w),
		viewMap:      ecs.NewMap1[View](w),
		scene:        scene,
		sim:          &fpsim.Simulator{},
		systems:      orderedmap.NewOrderedMap[string, System](),
		conf:         conf,
		dt:           1 / float32(conf.TickRate),
		log:          logger,
	}
	if conf.Workers > 1 {
		world.pool = worker.New(conf.Workers)
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		world.sim.Options.Debugf = func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		}
	}

	world.systems.Set(SystemInput, inputSystem{})
	world.systems.Set(SystemController, controllerSystem{})
	world.systems.Set(SystemPhysics, physicsSystem{})
	world.systems.Set(SystemCamera, cameraSystem{})
	return world
}

// Spawn adds a body standing upright at pos with the tunables passed and returns its handle. Its
// ground sweep is run right away, so the first tick already sees the ground below it.
func (w *World) Spawn(tunables fpsim.Tunables, pos mgl32.Vec3) Body {
	state := fpsim.NewState(tunables)
	collider := fpsim.NewCapsuleCollider(tunables.Radius, state.Height)
	transform := fpsim.NewTransform(pos)
	ground := Ground{Hits: w.scene.SweepDown(pos, collider.HalfExtents(), nil)}
	var (
		controls Controls
		motion   Motion
		view     View
	)
	w.placeView(&view, state, &transform, &collider)

	e := w.mapper.NewEntity(state, &controls, &motion, &transform, &collider, &ground, &view)
	w.order = append(w.order, e)
	w.log.Info("spawned body", "entity", e, "pos", pos)
	return e
}

// Despawn removes a body from the world.
func (w *World) Despawn(e Body) error {
	if !w.ecs.Alive(e) {
		return oerror.New("world: unknown body %v", e)
	}
	w.ecs.RemoveEntity(e)
	w.order = slices.DeleteFunc(w.order, func(other Body) bool { return other == e })
	w.log.Info("despawned body", "entity", e)
	return nil
}

// Bodies returns the handles of all bodies in spawn order.
func (w *World) Bodies() []Body {
	return slices.Clone(w.order)
}

// SetActions queues the pressed actions a body uses on the next tick.
func (w *World) SetActions(e Body, actions fpsim.Actions) error {
	if !w.ecs.Alive(e) {
		return oerror.New("world: unknown body %v", e)
	}
	w.controlsMap.Get(e).Actions = actions
	return nil
}

// SetEnabled enables or disables the controller of a body. A disabled body keeps its state but is
// not moved by its controller.
func (w *World) SetEnabled(e Body, enabled bool) error {
	if !w.ecs.Alive(e) {
		return oerror.New("world: unknown body %v", e)
	}
	w.stateMap.Get(e).EnableInput = enabled
	return nil
}

// Snapshot is a copy of the components of a body.
type Snapshot struct {
	State     fpsim.State
	Input     fpsim.Input
	Result    fpsim.TickResult
	Velocity  mgl32.Vec3
	Blocked   probe.Collision
	Transform fpsim.Transform
	Hits      int
	View      View
}

// Snapshot returns a copy of the components of a body.
func (w *World) Snapshot(e Body) (Snapshot, error) {
	if !w.ecs.Alive(e) {
		return Snapshot{}, oerror.New("world: unknown body %v", e)
	}
	controls := w.controlsMap.Get(e)
	return Snapshot{
		State:     *w.stateMap.Get(e),
		Input:     controls.Input,
		Result:    controls.Result,
		Velocity:  w.motionMap.Get(e).Velocity,
		Blocked:   w.motionMap.Get(e).Blocked,
		Transform: *w.transformMap.Get(e),
		Hits:      len(w.groundMap.Get(e).Hits),
		View:      *w.viewMap.Get(e),
	}, nil
}

// Tick advances every body by one fixed step, running each system in order.
func (w *World) Tick() {
	w.collect()
	for el := w.systems.Front(); el != nil; el = el.Next() {
		if err := el.Value.Update(w, w.dt); err != nil {
			w.log.Error("system failed", "system", el.Key, "tick", w.tick, "err", err)
		}
	}
	w.bodies = w.bodies[:0]
	w.tick++
}

// CurrentTick returns the number of ticks run so far.
func (w *World) CurrentTick() uint64 {
	return w.tick
}

// Close stops the worker pool of the world, if any.
func (w *World) Close() {
	if w.pool != nil {
		w.pool.Close()
	}
}

// collect gathers the components of every body in spawn order.
func (w *World) collect() {
	w.bodies = w.bodies[:0]
	index := make(map[Body]int, len(w.order))
	for i, e := range w.order {
		index[e] = i
	}

	query := w.filter.Query()
	for query.Next() {
		state, controls, motion, transform, collider, ground, view := query.Get()
		w.bodies = append(w.bodies, bodyRef{
			entity: query.Entity(),
			body: fpsim.Body{
				State:     state,
				Input:     &controls.Input,
				Velocity:  &motion.Velocity,
				Transform: transform,
				Collider:  collider,
				Hits:      ground.Hits,
			},
			controls: controls,
			motion:   motion,
			ground:   ground,
			view:     view,
		})
	}
	slices.SortFunc(w.bodies, func(a, b bodyRef) int {
		return index[a.entity] - index[b.entity]
	})
}

// each calls f for every collected body, partitioned over the worker pool when there is one.
func (w *World) each(f func(ref *bodyRef)) {
	run := func(start, end int) {
		for i := start; i < end; i++ {
			f(&w.bodies[i])
		}
	}
	if w.pool == nil {
		run(0, len(w.bodies))
		return
	}
	w.pool.Run(len(w.bodies), run)
}

func (w *World) placeView(view *View, state *fpsim.State, transform *fpsim.Transform, collider *fpsim.Collider) {
	capsule, ok := collider.Capsule()
	if !ok {
		return
	}
	height := capsule.Height/2 + capsule.Radius*w.conf.Camera.RadiusScale + w.conf.Camera.HeightOffset
	view.Position = transform.Translation.Add(mgl32.Vec3{0, height, 0})
	view.Rotation = game.LookRotation(state.Yaw, state.Pitch)
}
