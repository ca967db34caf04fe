package strafe

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/fpsim"
	"github.com/oomph-ac/strafe/oerror"
	"gopkg.in/yaml.v3"
)

// Script describes a scripted run: the bodies to spawn and the actions each of them holds for how
// many ticks.
type Script struct {
	Bodies []ScriptBody `yaml:"bodies"`
}

// ScriptBody is one body of a script.
type ScriptBody struct {
	Spawn mgl32.Vec3 `yaml:"spawn"`
	// Profile names the tunables profile of the body. Empty uses the selected profile.
	Profile string       `yaml:"profile"`
	Steps   []ScriptStep `yaml:"steps"`
}

// ScriptStep holds a set of actions for a number of ticks. Mouse movement is applied on every one
// of those ticks.
type ScriptStep struct {
	Ticks    int        `yaml:"ticks"`
	Forward  bool       `yaml:"forward"`
	Backward bool       `yaml:"backward"`
	Left     bool       `yaml:"left"`
	Right    bool       `yaml:"right"`
	Jump     bool       `yaml:"jump"`
	Sprint   bool       `yaml:"sprint"`
	Crouch   bool       `yaml:"crouch"`
	Fly      bool       `yaml:"fly"`
	Mouse    mgl32.Vec2 `yaml:"mouse"`
	Disabled bool       `yaml:"disabled"`
}

// Command is what a body does on one tick.
type Command struct {
	Actions fpsim.Actions
	Enabled bool
}

// LoadScript reads a script from a YAML file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, oerror.New("script: %v", err)
	}
	return ParseScript(data)
}

// ParseScript parses a YAML script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, oerror.New("script: %v", err)
	}
	if len(s.Bodies) == 0 {
		return Script{}, oerror.New("script: no bodies")
	}
	for i, b := range s.Bodies {
		for j, step := range b.Steps {
			if step.Ticks < 0 {
				return Script{}, oerror.New("script: body %d step %d: negative ticks %d", i, j, step.Ticks)
			}
		}
	}
	return s, nil
}

// Ticks returns the length of the script: the tick count of its longest body.
func (s Script) Ticks() int {
	var longest int
	for _, b := range s.Bodies {
		var n int
		for _, step := range b.Steps {
			n += step.Ticks
		}
		longest = max(longest, n)
	}
	return longest
}

// Commands returns the command of every body on a tick. A body whose steps have run out stands
// still.
func (s Script) Commands(tick int) []Command {
	commands := make([]Command, len(s.Bodies))
	for i, b := range s.Bodies {
		commands[i] = Command{Enabled: true}
		at := tick
		for _, step := range b.Steps {
			if at < step.Ticks {
				commands[i] = step.command()
				break
			}
			at -= step.Ticks
		}
	}
	return commands
}

func (step ScriptStep) command() Command {
	return Command{
		Actions: fpsim.Actions{
			Forward:    step.Forward,
			Backward:   step.Backward,
			Left:       step.Left,
			Right:      step.Right,
			Jump:       step.Jump,
			Sprint:     step.Sprint,
			Crouch:     step.Crouch,
			Fly:        step.Fly,
			MouseDelta: step.Mouse,
		},
		Enabled: !step.Disabled,
	}
}
