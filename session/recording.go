// Package session records the input of a simulation run tick by tick, along with a checksum of
// every body after each tick, so that the run can be replayed and verified.
package session

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gocarina/gocsv"
	"github.com/oomph-ac/strafe/fpsim"
	"github.com/oomph-ac/strafe/oerror"
)

// Frame is one recorded row: the input of a body on a tick and the checksum of the body after it.
type Frame struct {
	Tick uint64 `csv:"tick"`
	// Body is the index of the body in spawn order.
	Body int `csv:"body"`

	Forward  bool `csv:"forward"`
	Backward bool `csv:"backward"`
	Left     bool `csv:"left"`
	Right    bool `csv:"right"`
	Jump     bool `csv:"jump"`
	Sprint   bool `csv:"sprint"`
	Crouch   bool `csv:"crouch"`
	Fly      bool `csv:"fly"`

	MouseX float32 `csv:"mouse_x"`
	MouseY float32 `csv:"mouse_y"`

	Enabled  bool   `csv:"enabled"`
	Checksum string `csv:"checksum"`
}

// NewFrame returns the frame of a body on a tick.
func NewFrame(tick uint64, body int, actions fpsim.Actions, enabled bool, checksum uint64) Frame {
	return Frame{
		Tick:     tick,
		Body:     body,
		Forward:  actions.Forward,
		Backward: actions.Backward,
		Left:     actions.Left,
		Right:    actions.Right,
		Jump:     actions.Jump,
		Sprint:   actions.Sprint,
		Crouch:   actions.Crouch,
		Fly:      actions.Fly,
		MouseX:   actions.MouseDelta.X(),
		MouseY:   actions.MouseDelta.Y(),
		Enabled:  enabled,
		Checksum: strconv.FormatUint(checksum, 16),
	}
}

// Actions returns the actions recorded in the frame.
func (f Frame) Actions() fpsim.Actions {
	return fpsim.Actions{
		Forward:    f.Forward,
		Backward:   f.Backward,
		Left:       f.Left,
		Right:      f.Right,
		Jump:       f.Jump,
		Sprint:     f.Sprint,
		Crouch:     f.Crouch,
		Fly:        f.Fly,
		MouseDelta: mgl32.Vec2{f.MouseX, f.MouseY},
	}
}

// Sum parses the recorded checksum.
func (f Frame) Sum() (uint64, error) {
	sum, err := strconv.ParseUint(f.Checksum, 16, 64)
	if err != nil {
		return 0, oerror.New("session: tick %d body %d: malformed checksum %q: %v", f.Tick, f.Body, f.Checksum, err)
	}
	return sum, nil
}

// Recorder writes frames as CSV. The header is written with the first frame.
type Recorder struct {
	w             io.Writer
	headerWritten bool
	frames        int
}

// NewRecorder returns a recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Record writes the frames of one tick.
func (r *Recorder) Record(frames ...Frame) error {
	if len(frames) == 0 {
		return nil
	}
	if !r.headerWritten {
		if err := gocsv.Marshal(frames, r.w); err != nil {
			return fmt.Errorf("writing recording: %w", err)
		}
		r.headerWritten = true
	} else if err := gocsv.MarshalWithoutHeaders(frames, r.w); err != nil {
		return fmt.Errorf("writing recording: %w", err)
	}
	r.frames += len(frames)
	return nil
}

// Frames returns the number of frames recorded so far.
func (r *Recorder) Frames() int {
	return r.frames
}

// Read reads every frame of a recording.
func Read(r io.Reader) ([]Frame, error) {
	var frames []Frame
	if err := gocsv.Unmarshal(r, &frames); err != nil {
		return nil, fmt.Errorf("reading recording: %w", err)
	}
	return frames, nil
}

// Ticks groups frames by tick, in tick order. Every tick must list its bodies in order, starting
// at zero, with the same number of bodies on every tick.
func Ticks(frames []Frame) ([][]Frame, error) {
	var ticks [][]Frame
	for _, f := range frames {
		switch {
		case len(ticks) == 0 || f.Tick != ticks[len(ticks)-1][0].Tick:
			if len(ticks) > 0 && f.Tick != ticks[len(ticks)-1][0].Tick+1 {
				return nil, oerror.New("session: tick %d follows tick %d", f.Tick, ticks[len(ticks)-1][0].Tick)
			}
			ticks = append(ticks, []Frame{f})
		default:
			ticks[len(ticks)-1] = append(ticks[len(ticks)-1], f)
		}
		last := ticks[len(ticks)-1]
		if f.Body != len(last)-1 {
			return nil, oerror.New("session: tick %d: body %d out of order", f.Tick, f.Body)
		}
	}
	for _, tick := range ticks {
		if len(tick) != len(ticks[0]) {
			return nil, oerror.New("session: tick %d has %d bodies, want %d", tick[0].Tick, len(tick), len(ticks[0]))
		}
	}
	return ticks, nil
}
