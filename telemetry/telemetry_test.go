package telemetry

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gocarina/gocsv"
	"github.com/oomph-ac/strafe/fpsim"
	"github.com/oomph-ac/strafe/probe"
	"github.com/oomph-ac/strafe/world"
)

func TestNewSample(t *testing.T) {
	snap := world.Snapshot{
		State:     *fpsim.NewState(fpsim.DefaultTunables()),
		Velocity:  mgl32.Vec3{3, -1, 4},
		Transform: fpsim.NewTransform(mgl32.Vec3{1, 2, 3}),
		Result:    fpsim.TickResult{Jumped: true},
		Blocked:   probe.Collision{Z: true},
	}
	s := NewSample(7, 2, snap)
	if s.Tick != 7 || s.Body != 2 {
		t.Fatalf("tick/body = %d/%d", s.Tick, s.Body)
	}
	if math.Abs(float64(s.HzSpeed)-5) > 1e-5 {
		t.Fatalf("hz speed = %v, want 5", s.HzSpeed)
	}
	if s.Y != 2 || !s.Jumped || !s.HitWall || s.Mode != "ground" || s.Outcome != "normal" {
		t.Fatalf("sample = %+v", s)
	}
}

func TestWriterHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for tick := range 3 {
		if err := w.Write([]Sample{{Tick: uint64(tick)}, {Tick: uint64(tick), Body: 1}}); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if n := strings.Count(buf.String(), "hz_speed"); n != 1 {
		t.Fatalf("header written %d times", n)
	}
	var samples []Sample
	if err := gocsv.Unmarshal(&buf, &samples); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(samples) != 6 || samples[5].Tick != 2 || samples[5].Body != 1 {
		t.Fatalf("samples = %+v", samples)
	}
}

func TestCollectorSummary(t *testing.T) {
	c := NewCollector(2)
	if got := c.Summary(); got.Samples != 0 || got.MaxHzSpeed != 0 {
		t.Fatalf("empty summary = %+v", got)
	}

	for i := 1; i <= 10; i++ {
		c.Observe([]Sample{{HzSpeed: float32(i), Grounded: i%2 == 0, Jumped: i == 4, Y: float32(i)}})
	}
	s := c.Summary()
	if s.Ticks != 10 || s.Samples != 10 || s.Jumps != 1 {
		t.Fatalf("counts = %+v", s)
	}
	if s.MeanHzSpeed != 5.5 || s.MaxHzSpeed != 10 {
		t.Fatalf("mean/max = %v/%v", s.MeanHzSpeed, s.MaxHzSpeed)
	}
	if s.P50HzSpeed != 5 || s.P90HzSpeed != 9 {
		t.Fatalf("p50/p90 = %v/%v", s.P50HzSpeed, s.P90HzSpeed)
	}
	if s.AirborneRatio != 0.5 {
		t.Fatalf("airborne ratio = %v", s.AirborneRatio)
	}
	if s.MinY != 1 || s.MaxY != 10 {
		t.Fatalf("y range = %v..%v", s.MinY, s.MaxY)
	}
	if s.StdDevHzSpeed <= 0 {
		t.Fatalf("std = %v", s.StdDevHzSpeed)
	}

	// The window holds the last two ticks.
	if got := c.Rolling(); got != 9.5 {
		t.Fatalf("rolling = %v, want 9.5", got)
	}

	keys := s.Fields().Keys()
	if keys[0] != "ticks" || keys[len(keys)-1] != "max_y" {
		t.Fatalf("field order = %v", keys)
	}
}

func TestCollectorSingleSample(t *testing.T) {
	c := NewCollector(1)
	c.Observe([]Sample{{HzSpeed: 2}})
	if s := c.Summary(); s.StdDevHzSpeed != 0 || s.MeanHzSpeed != 2 {
		t.Fatalf("summary = %+v", s)
	}
}
