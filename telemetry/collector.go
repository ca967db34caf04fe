package telemetry

import (
	"slices"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/strafe/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates every sample a Collector observed.
type Summary struct {
	Ticks   int `csv:"ticks"`
	Samples int `csv:"samples"`

	MeanHzSpeed   float64 `csv:"hz_speed_mean"`
	StdDevHzSpeed float64 `csv:"hz_speed_std"`
	MaxHzSpeed    float64 `csv:"hz_speed_max"`
	P50HzSpeed    float64 `csv:"hz_speed_p50"`
	P90HzSpeed    float64 `csv:"hz_speed_p90"`

	// AirborneRatio is the share of samples taken while not grounded.
	AirborneRatio float64 `csv:"airborne_ratio"`
	Jumps         int     `csv:"jumps"`
	Steps         int     `csv:"steps"`
	MinY          float64 `csv:"min_y"`
	MaxY          float64 `csv:"max_y"`
}

// Fields returns the summary as ordered key/value pairs, suitable for structured logging.
func (s Summary) Fields() *orderedmap.OrderedMap[string, any] {
	m := orderedmap.NewOrderedMap[string, any]()
	m.Set("ticks", s.Ticks)
	m.Set("samples", s.Samples)
	m.Set("hz_speed_mean", s.MeanHzSpeed)
	m.Set("hz_speed_std", s.StdDevHzSpeed)
	m.Set("hz_speed_max", s.MaxHzSpeed)
	m.Set("hz_speed_p50", s.P50HzSpeed)
	m.Set("hz_speed_p90", s.P90HzSpeed)
	m.Set("airborne_ratio", s.AirborneRatio)
	m.Set("jumps", s.Jumps)
	m.Set("steps", s.Steps)
	m.Set("min_y", s.MinY)
	m.Set("max_y", s.MaxY)
	return m
}

// Collector accumulates samples over a run. It also keeps the mean horizontal speed of the most
// recent ticks in a rolling window.
type Collector struct {
	ticks    int
	speeds   []float64
	ys       []float64
	airborne int
	jumps    int
	steps    int

	window *utils.CircularQueue[float64]
}

// NewCollector returns a Collector whose rolling window spans the given number of ticks.
func NewCollector(window int) *Collector {
	return &Collector{window: utils.NewCircularQueue[float64](max(window, 1))}
}

// Observe adds the samples of one tick.
func (c *Collector) Observe(samples []Sample) {
	if len(samples) == 0 {
		return
	}
	c.ticks++
	tick := make([]float64, 0, len(samples))
	for _, s := range samples {
		tick = append(tick, float64(s.HzSpeed))
		c.ys = append(c.ys, float64(s.Y))
		if !s.Grounded {
			c.airborne++
		}
		if s.Jumped {
			c.jumps++
		}
		if s.Stepped {
			c.steps++
		}
	}
	c.speeds = append(c.speeds, tick...)
	_ = c.window.Append(stat.Mean(tick, nil))
}

// Rolling returns the mean horizontal speed over the rolling window.
func (c *Collector) Rolling() float64 {
	if c.window.Len() == 0 {
		return 0
	}
	return stat.Mean(slices.Collect(c.window.Iter()), nil)
}

// Summary summarises every sample observed so far.
func (c *Collector) Summary() Summary {
	s := Summary{Ticks: c.ticks, Samples: len(c.speeds), Jumps: c.jumps, Steps: c.steps}
	if len(c.speeds) == 0 {
		return s
	}
	sorted := slices.Clone(c.speeds)
	slices.Sort(sorted)

	s.MeanHzSpeed = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.StdDevHzSpeed = stat.StdDev(sorted, nil)
	}
	s.MaxHzSpeed = floats.Max(sorted)
	s.P50HzSpeed = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P90HzSpeed = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	s.AirborneRatio = float64(c.airborne) / float64(len(c.speeds))
	s.MinY, s.MaxY = floats.Min(c.ys), floats.Max(c.ys)
	return s
}
