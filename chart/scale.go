package chart

import (
	"math"

	"github.com/samber/lo"
)

// Category10 is the ten color categorical palette used to tell sources apart.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Linear maps a continuous domain onto a pixel range.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Scale returns the pixel position of v.
// A zero-extent domain collapses onto the middle of the range.
func (l Linear) Scale(v float64) float64 {
	if l.D1 == l.D0 {
		return (l.R0 + l.R1) / 2
	}
	t := (v - l.D0) / (l.D1 - l.D0)
	return l.R0 + t*(l.R1-l.R0)
}

// Band splits a pixel range into equal bands, one per category.
type Band struct {
	domain    []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBand builds a band scale with the same inner and outer padding,
// centered in the range.
func NewBand(domain []string, r0, r1, padding float64) Band {
	n := float64(len(domain))
	step := (r1 - r0) / math.Max(1, n-padding+padding*2)
	start := r0 + (r1-r0-step*(n-padding))*0.5
	index := make(map[string]int, len(domain))
	for i, d := range domain {
		index[d] = i
	}
	return Band{
		domain:    domain,
		index:     index,
		start:     start,
		step:      step,
		bandwidth: step * (1 - padding),
	}
}

// Scale returns the top of the band for category c, and false when c is unknown.
func (b Band) Scale(c string) (float64, bool) {
	i, ok := b.index[c]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

func (b Band) Bandwidth() float64 { return b.bandwidth }

func (b Band) Domain() []string { return b.domain }

// Ordinal assigns palette entries to categories in domain order, wrapping around.
type Ordinal struct {
	index   map[string]int
	palette []string
}

func NewOrdinal(domain []string, palette []string) Ordinal {
	index := make(map[string]int, len(domain))
	for i, d := range domain {
		index[d] = i
	}
	return Ordinal{index: index, palette: palette}
}

func (o Ordinal) Scale(c string) string {
	i, ok := o.index[c]
	if !ok || len(o.palette) == 0 {
		return ""
	}
	return o.palette[i%len(o.palette)]
}

// Sources lists distinct sources in first-seen order.
func Sources(sources []string) []string {
	return lo.Uniq(sources)
}

// IndexTicks returns at most count tick positions over the message indices [0, n).
// The step is the usual 1, 2 or 5 times a power of ten.
func IndexTicks(n, count int) []int {
	if n <= 0 || count <= 0 {
		return nil
	}
	step := int(math.Round(tickStep(0, float64(n), count)))
	if step < 1 {
		step = 1
	}
	for (n+step-1)/step > count {
		step = nextTickStep(step)
	}
	ticks := make([]int, 0, n/step+1)
	for i := 0; i < n; i += step {
		ticks = append(ticks, i)
	}
	return ticks
}

func nextTickStep(step int) int {
	p := 1
	for step >= p*10 {
		p *= 10
	}
	switch step / p {
	case 1:
		return 2 * p
	case 2:
		return 5 * p
	default:
		return 10 * p
	}
}

func tickStep(start, stop float64, count int) float64 {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= math.Sqrt(50):
		factor = 10
	case e >= math.Sqrt(10):
		factor = 5
	case e >= math.Sqrt(2):
		factor = 2
	}
	return factor * math.Pow(10, power)
}
