// Package chart lays out and draws the message timeline.
// It positions one bar per message on a row per source and never keeps
// any state between draws.
package chart

import (
	"profiler-viz/domain"
	"strconv"

	"github.com/samber/lo"
)

const (
	DefaultWidth  = 400
	DefaultHeight = 300
	BandPadding   = 0.1
	MaxXTicks     = 10
)

type Margin struct {
	Top, Right, Bottom, Left float64
}

var DefaultMargin = Margin{Top: 20, Right: 50, Bottom: 30, Left: 100}

// Bar is the rectangle drawn for a single message.
type Bar struct {
	Index   int
	Source  string
	X, Y    float64
	Width   float64
	Height  float64
	Fill    string
	Message domain.Message
}

type Tick struct {
	Position float64
	Label    string
}

// Layout holds every computed position needed to draw a timeline.
type Layout struct {
	Width, Height           float64
	Margin                  Margin
	ChartWidth, ChartHeight float64
	Sources                 []string
	Bars                    []Bar
	XTicks                  []Tick
	YTicks                  []Tick
	X                       Linear
	Y                       Band
	Color                   Ordinal
}

func NewLayout(messages []domain.Message, width, height float64) Layout {
	margin := DefaultMargin
	chartWidth := width - margin.Left - margin.Right
	chartHeight := height - margin.Top - margin.Bottom

	sources := Sources(lo.Map(messages, func(m domain.Message, _ int) string { return m.Source }))

	x := NewLinear(0, float64(len(messages)), 0, chartWidth)
	y := NewBand(sources, 0, chartHeight, BandPadding)
	color := NewOrdinal(sources, Category10)

	l := Layout{
		Width:       width,
		Height:      height,
		Margin:      margin,
		ChartWidth:  chartWidth,
		ChartHeight: chartHeight,
		Sources:     sources,
		X:           x,
		Y:           y,
		Color:       color,
	}

	barWidth := x.Scale(1) - x.Scale(0)
	for _, source := range sources {
		top, _ := y.Scale(source)
		for i, m := range messages {
			if m.Source != source {
				continue
			}
			l.Bars = append(l.Bars, Bar{
				Index:   i,
				Source:  source,
				X:       x.Scale(float64(i)),
				Y:       top,
				Width:   barWidth,
				Height:  y.Bandwidth(),
				Fill:    color.Scale(source),
				Message: m,
			})
		}
	}

	l.XTicks = lo.Map(IndexTicks(len(messages), min(len(messages), MaxXTicks)), func(i int, _ int) Tick {
		return Tick{Position: x.Scale(float64(i)), Label: strconv.Itoa(i + 1)}
	})
	l.YTicks = lo.Map(sources, func(s string, _ int) Tick {
		top, _ := y.Scale(s)
		return Tick{Position: top + y.Bandwidth()/2, Label: s}
	})
	return l
}

// BarsBySource counts the bars drawn on each row.
func (l Layout) BarsBySource() map[string]int {
	return lo.CountValuesBy(l.Bars, func(b Bar) string { return b.Source })
}
