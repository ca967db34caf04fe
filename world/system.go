package world

import (
	"github.com/oomph-ac/strafe/oerror"
)

// Names of the systems every World runs, in order.
const (
	SystemInput      = "input"
	SystemController = "controller"
	SystemPhysics    = "physics"
	SystemCamera     = "camera"
)

// System is a step run over every body once per tick.
type System interface {
	Update(w *World, dt float32) error
}

// SystemFunc adapts a function to a System.
type SystemFunc func(w *World, dt float32) error

func (f SystemFunc) Update(w *World, dt float32) error {
	return f(w, dt)
}

// AddSystem appends a system that runs after every existing system.
func (w *World) AddSystem(name string, sys System) error {
	if _, ok := w.systems.Get(name); ok {
		return oerror.New("world: system %q already registered", name)
	}
	w.systems.Set(name, sys)
	return nil
}

// RemoveSystem removes a system by name.
func (w *World) RemoveSystem(name string) error {
	if !w.systems.Delete(name) {
		return oerror.New("world: unknown system %q", name)
	}
	return nil
}

// Systems returns the names of the registered systems in run order.
func (w *World) Systems() []string {
	return w.systems.Keys()
}

// inputSystem turns the queued actions of every body into its input for this tick.
type inputSystem struct{}

func (inputSystem) Update(w *World, _ float32) error {
	for i := range w.bodies {
		ref := &w.bodies[i]
		ref.controls.builder.Apply(ref.body.State, ref.body.Input, ref.controls.Actions)
	}
	return nil
}

// controllerSystem runs the controller of every body: ground evaluation, movement and look sync.
type controllerSystem struct{}

func (controllerSystem) Update(w *World, dt float32) error {
	w.each(func(ref *bodyRef) {
		mode := ref.body.State.MoveMode
		ref.controls.Result = w.sim.Tick(&ref.body, dt)
		if ref.body.State.MoveMode != mode {
			w.log.Debug("move mode toggled", "entity", ref.entity, "mode", ref.body.State.MoveMode.String())
		}
	})
	return nil
}

// physicsSystem moves every body by its velocity, records the axes it was stopped on and sweeps
// for the ground the next tick sees.
type physicsSystem struct{}

func (physicsSystem) Update(w *World, dt float32) error {
	w.each(func(ref *bodyRef) {
		half := ref.body.Collider.HalfExtents()
		ref.motion.Blocked = w.scene.Integrate(ref.body.Transform, ref.body.Velocity, half, dt)
		ref.ground.Hits = w.scene.SweepDown(ref.body.Transform.Translation, half, ref.ground.Hits)
	})
	return nil
}

// cameraSystem places the view of every body above its collider, looking along its yaw and pitch.
type cameraSystem struct{}

func (cameraSystem) Update(w *World, _ float32) error {
	for i := range w.bodies {
		ref := &w.bodies[i]
		w.placeView(ref.view, ref.body.State, ref.body.Transform, ref.body.Collider)
	}
	return nil
}
