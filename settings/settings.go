// Package settings loads the configuration of a simulation run from YAML, overlaying a user file
// on top of embedded defaults.
package settings

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/oomph-ac/strafe/fpsim"
	"github.com/oomph-ac/strafe/game"
	"github.com/oomph-ac/strafe/oerror"
	"github.com/oomph-ac/strafe/probe"
	"github.com/oomph-ac/strafe/world"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultProfile is the profile new profiles start from.
const DefaultProfile = "default"

// Settings holds every configurable part of a simulation run.
type Settings struct {
	Simulation Simulation `yaml:"simulation"`
	// Profiles are named controller tunings. A profile in a user file only needs the keys it
	// changes: an existing profile of the same name, or else the default profile, fills the rest.
	Profiles  map[string]fpsim.Tunables `yaml:"-"`
	Probe     probe.Options             `yaml:"probe"`
	Camera    world.Camera              `yaml:"camera"`
	Logging   Logging                   `yaml:"logging"`
	Sentry    Sentry                    `yaml:"sentry"`
	Statsview Statsview                 `yaml:"statsview"`
	Trace     Trace                     `yaml:"trace"`
	Recording Recording                 `yaml:"recording"`
}

// Simulation holds the fixed step parameters.
type Simulation struct {
	TickRate int    `yaml:"tick_rate"`
	Workers  int    `yaml:"workers"`
	Profile  string `yaml:"profile"`
}

// Logging selects the level and format of the logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Sentry configures crash reporting. Reporting is off while DSN is empty.
type Sentry struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

// Statsview configures the runtime stats viewer. It is off while Addr is empty.
type Statsview struct {
	Addr string `yaml:"addr"`
}

// Trace configures the per-tick CSV trace. It is off while CSV is empty.
type Trace struct {
	CSV string `yaml:"csv"`
}

// Recording configures the input recording used for replays. It is off while Path is empty.
type Recording struct {
	Path string `yaml:"path"`
}

// document is the YAML layout of a settings file. Profiles are kept as nodes so they can be decoded
// on top of an existing tuning.
type document struct {
	Settings `yaml:",inline"`
	Profiles map[string]yaml.Node `yaml:"profiles"`
}

// Default returns the embedded default settings.
func Default() *Settings {
	s, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("settings: embedded defaults are invalid: %v", err))
	}
	return s
}

// Load loads settings from a YAML file, merged on top of the embedded defaults. If path is empty,
// only the defaults are used.
func Load(path string) (*Settings, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	return Parse(data)
}

// Parse parses settings from YAML data, merged on top of the embedded defaults.
func Parse(data []byte) (*Settings, error) {
	s := &Settings{Profiles: make(map[string]fpsim.Tunables)}
	if err := s.merge(defaultsYAML); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) != 0 {
		if err := s.merge(data); err != nil {
			return nil, fmt.Errorf("parsing settings: %w", err)
		}
	}
	return s, nil
}

func (s *Settings) merge(data []byte) error {
	profiles := s.Profiles
	doc := document{Settings: *s}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = doc.Settings
	s.Profiles = profiles

	// The default profile goes first so that new profiles in the same file start from it.
	names := slices.Sorted(maps.Keys(doc.Profiles))
	if i := slices.Index(names, DefaultProfile); i > 0 {
		names = append([]string{DefaultProfile}, slices.Delete(names, i, i+1)...)
	}
	for _, name := range names {
		base, ok := s.Profiles[name]
		if !ok {
			base, ok = s.Profiles[DefaultProfile]
		}
		if !ok {
			base = fpsim.DefaultTunables()
		}
		node := doc.Profiles[name]
		if err := node.Decode(&base); err != nil {
			return oerror.New("profile %q: %v", name, err)
		}
		s.Profiles[name] = base
	}
	return nil
}

// Tunables returns the tunables of the selected profile.
func (s *Settings) Tunables() (fpsim.Tunables, error) {
	return s.Profile(s.Simulation.Profile)
}

// Profile returns the tunables of a named profile.
func (s *Settings) Profile(name string) (fpsim.Tunables, error) {
	t, ok := s.Profiles[name]
	if !ok {
		return fpsim.Tunables{}, oerror.New("settings: unknown profile %q", name)
	}
	return t, nil
}

// ProfileNames returns the names of all profiles, sorted.
func (s *Settings) ProfileNames() []string {
	return slices.Sorted(maps.Keys(s.Profiles))
}

// WorldConfig returns the world configuration described by the settings.
func (s *Settings) WorldConfig() world.Config {
	return world.Config{
		TickRate: s.Simulation.TickRate,
		Workers:  s.Simulation.Workers,
		Camera:   s.Camera,
	}
}

// Validate checks the settings for values the simulation cannot run with.
func (s *Settings) Validate() error {
	switch {
	case s.Simulation.TickRate <= 0:
		return oerror.New("settings: simulation.tick_rate must be positive, got %d", s.Simulation.TickRate)
	case s.Simulation.Workers < 1:
		return oerror.New("settings: simulation.workers must be at least 1, got %d", s.Simulation.Workers)
	case s.Probe.Scale <= 0 || s.Probe.Scale > 1:
		return oerror.New("settings: probe.scale must be in (0, 1], got %v", s.Probe.Scale)
	case s.Probe.MaxDistance <= 0 || s.Probe.MaxDistance > game.SweepMaxDistance:
		return oerror.New("settings: probe.max_distance must be in (0, %v], got %v", game.SweepMaxDistance, s.Probe.MaxDistance)
	case s.Probe.MaxHits < 1:
		return oerror.New("settings: probe.max_hits must be at least 1, got %d", s.Probe.MaxHits)
	}
	if _, err := s.Tunables(); err != nil {
		return err
	}
	for _, name := range s.ProfileNames() {
		if err := validateTunables(s.Profiles[name]); err != nil {
			return oerror.New("settings: profile %q: %v", name, err)
		}
	}
	if _, err := parseLevel(s.Logging.Level); err != nil {
		return err
	}
	if s.Logging.Format != "text" && s.Logging.Format != "json" {
		return oerror.New("settings: logging.format must be text or json, got %q", s.Logging.Format)
	}
	return nil
}

func validateTunables(t fpsim.Tunables) error {
	nonNegative := []struct {
		name  string
		value float32
	}{
		{"walk_speed", t.WalkSpeed},
		{"run_speed", t.RunSpeed},
		{"crouched_speed", t.CrouchedSpeed},
		{"forward_speed", t.ForwardSpeed},
		{"side_speed", t.SideSpeed},
		{"acceleration", t.Acceleration},
		{"air_acceleration", t.AirAcceleration},
		{"air_speed_cap", t.AirSpeedCap},
		{"max_air_speed", t.MaxAirSpeed},
		{"friction", t.Friction},
		{"stop_speed", t.StopSpeed},
		{"friction_speed_cutoff", t.FrictionSpeedCutoff},
		{"gravity", t.Gravity},
		{"jump_speed", t.JumpSpeed},
		{"step_offset", t.StepOffset},
		{"fly_speed", t.FlySpeed},
		{"fast_fly_speed", t.FastFlySpeed},
		{"crouch_speed", t.CrouchSpeed},
		{"uncrouch_speed", t.UncrouchSpeed},
	}
	for _, v := range nonNegative {
		if v.value < 0 {
			return oerror.New("%s must not be negative, got %v", v.name, v.value)
		}
	}
	switch {
	case t.Radius <= 0:
		return oerror.New("radius must be positive, got %v", t.Radius)
	case t.CrouchHeight <= 0:
		return oerror.New("crouch_height must be positive, got %v", t.CrouchHeight)
	case t.CrouchHeight > t.UprightHeight:
		return oerror.New("crouch_height %v is above upright_height %v", t.CrouchHeight, t.UprightHeight)
	case t.TractionNormalCutoff < -1 || t.TractionNormalCutoff > 1:
		return oerror.New("traction_normal_cutoff must be in [-1, 1], got %v", t.TractionNormalCutoff)
	}
	return nil
}

// Logger builds a logger writing to w with the configured level and format.
func (l Logging) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch l.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, oerror.New("settings: unknown logging format %q", l.Format)
	}
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, oerror.New("settings: unknown logging level %q", level)
	}
}
