// Package strafe runs first-person character controllers against a collision scene at a fixed tick
// rate, tracing and recording every body as it goes.
package strafe

import (
	"errors"
	"io"
	"log/slog"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/oerror"
	"github.com/oomph-ac/strafe/probe"
	"github.com/oomph-ac/strafe/session"
	"github.com/oomph-ac/strafe/settings"
	"github.com/oomph-ac/strafe/telemetry"
	"github.com/oomph-ac/strafe/world"
)

// Options holds the optional outputs and scene of a Runner.
type Options struct {
	// Scene is the collision scene. The playground is used if nil.
	Scene *probe.Scene
	// Trace receives a CSV sample of every body after every tick.
	Trace io.Writer
	// Recording receives a CSV recording of every body's input and checksum per tick.
	Recording io.Writer
}

// Runner drives a World tick by tick.
type Runner struct {
	settings *settings.Settings
	world    *world.World
	bodies   []world.Body

	collector *telemetry.Collector
	trace     *telemetry.Writer
	recorder  *session.Recorder

	// verify holds the expected checksums of the next tick during a replay.
	verify []session.Frame

	log *slog.Logger
}

// New returns a Runner for the settings passed. The settings are validated first.
func New(s *settings.Settings, logger *slog.Logger, opts Options) (*Runner, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	scene := opts.Scene
	if scene == nil {
		scene = probe.NewPlayground(s.Probe)
	}
	r := &Runner{
		settings:  s,
		world:     world.New(s.WorldConfig(), scene, logger),
		collector: telemetry.NewCollector(s.Simulation.TickRate),
		log:       logger,
	}
	if opts.Trace != nil {
		r.trace = telemetry.NewWriter(opts.Trace)
	}
	if opts.Recording != nil {
		r.recorder = session.NewRecorder(opts.Recording)
	}
	return r, nil
}

// Spawn adds a body at pos using a named tunables profile. An empty profile uses the one selected
// in the settings.
func (r *Runner) Spawn(profile string, pos mgl32.Vec3) (world.Body, error) {
	if profile == "" {
		profile = r.settings.Simulation.Profile
	}
	tunables, err := r.settings.Profile(profile)
	if err != nil {
		return world.Body{}, err
	}
	e := r.world.Spawn(tunables, pos)
	r.bodies = append(r.bodies, e)
	return e, nil
}

// SpawnScript spawns every body of a script.
func (r *Runner) SpawnScript(script Script) error {
	for i, b := range script.Bodies {
		if _, err := r.Spawn(b.Profile, b.Spawn); err != nil {
			return oerror.New("body %d: %v", i, err)
		}
	}
	return nil
}

// Step runs one tick with a command per body, in spawn order.
func (r *Runner) Step(commands []Command) error {
	if len(commands) != len(r.bodies) {
		return oerror.New("strafe: %d commands for %d bodies", len(commands), len(r.bodies))
	}
	for i, e := range r.bodies {
		if err := r.world.SetEnabled(e, commands[i].Enabled); err != nil {
			return err
		}
		if err := r.world.SetActions(e, commands[i].Actions); err != nil {
			return err
		}
	}
	tick := r.world.CurrentTick()
	r.world.Tick()

	samples := make([]telemetry.Sample, 0, len(r.bodies))
	frames := make([]session.Frame, 0, len(r.bodies))
	for i, e := range r.bodies {
		snap, err := r.world.Snapshot(e)
		if err != nil {
			return err
		}
		sum := session.Checksum(snap)
		if r.verify != nil {
			if err := verifyFrame(r.verify[i], sum); err != nil {
				return err
			}
		}
		samples = append(samples, telemetry.NewSample(tick, i, snap))
		frames = append(frames, session.NewFrame(tick, i, commands[i].Actions, commands[i].Enabled, sum))
	}
	r.collector.Observe(samples)
	if r.trace != nil {
		if err := r.trace.Write(samples); err != nil {
			return err
		}
	}
	if r.recorder != nil {
		if err := r.recorder.Record(frames...); err != nil {
			return err
		}
	}
	return nil
}

// Run steps through every tick of a script. The bodies of the script must already be spawned.
func (r *Runner) Run(script Script) error {
	if len(script.Bodies) != len(r.bodies) {
		return oerror.New("strafe: script has %d bodies, runner has %d", len(script.Bodies), len(r.bodies))
	}
	for tick := range script.Ticks() {
		if err := r.Step(script.Commands(tick)); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns the components of the i-th spawned body.
func (r *Runner) Snapshot(i int) (world.Snapshot, error) {
	if i < 0 || i >= len(r.bodies) {
		return world.Snapshot{}, oerror.New("strafe: no body %d", i)
	}
	return r.world.Snapshot(r.bodies[i])
}

// Summary summarises every tick run so far.
func (r *Runner) Summary() telemetry.Summary {
	return r.collector.Summary()
}

// LogSummary logs the summary of the run at info level.
func (r *Runner) LogSummary() {
	fields := r.Summary().Fields()
	args := make([]any, 0, fields.Len()*2)
	for el := fields.Front(); el != nil; el = el.Next() {
		args = append(args, el.Key, el.Value)
	}
	r.log.Info("run finished", args...)
}

// Status returns the current tick, the body count and the rolling horizontal speed.
func (r *Runner) Status() *orderedmap.OrderedMap[string, any] {
	m := orderedmap.NewOrderedMap[string, any]()
	m.Set("tick", r.world.CurrentTick())
	m.Set("bodies", len(r.bodies))
	m.Set("hz_speed_rolling", r.collector.Rolling())
	return m
}

// Close releases the resources of the world.
func (r *Runner) Close() {
	r.world.Close()
}

// Replay re-runs a recording against the bodies of a script and checks every tick against the
// recorded checksums. The returned error wraps oerror.ErrChecksumMismatch when a body diverges.
func Replay(s *settings.Settings, logger *slog.Logger, script Script, frames []session.Frame) error {
	ticks, err := session.Ticks(frames)
	if err != nil {
		return err
	}
	if len(ticks) > 0 && len(ticks[0]) != len(script.Bodies) {
		return oerror.New("replay: recording has %d bodies, script has %d", len(ticks[0]), len(script.Bodies))
	}
	r, err := New(s, logger, Options{})
	if err != nil {
		return err
	}
	defer r.Close()
	if err := r.SpawnScript(script); err != nil {
		return err
	}
	for _, tick := range ticks {
		commands := make([]Command, len(tick))
		for i, f := range tick {
			commands[i] = Command{Actions: f.Actions(), Enabled: f.Enabled}
		}
		r.verify = tick
		if err := r.Step(commands); err != nil {
			return err
		}
	}
	return nil
}

func verifyFrame(f session.Frame, got uint64) error {
	want, err := f.Sum()
	if err != nil {
		return err
	}
	if got != want {
		return oerror.New("replay: tick %d body %d: %x != %x: %v", f.Tick, f.Body, got, want, oerror.ErrChecksumMismatch)
	}
	return nil
}

// IsChecksumMismatch reports whether err comes from a diverged replay.
func IsChecksumMismatch(err error) bool {
	return errors.Is(err, oerror.ErrChecksumMismatch)
}
