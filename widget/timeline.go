// Package widget assembles composeable dashboard elements.
// A widget only builds detached node trees; attaching them to a page
// is left to the caller.
package widget

import (
	"fmt"
	"profiler-viz/chart"
	"profiler-viz/contract"
	"profiler-viz/domain"
	"profiler-viz/domain/event"
	"profiler-viz/errors"
	"strconv"

	"golang.org/x/net/html"
)

const (
	TimelineClass   = "timeline-widget"
	TimelineHeading = "Message Timeline"
)

// TimelineWidget draws a message array as a timeline, one row per source.
// Clicking a bar emits a MessageClicked event on the emitter given at construction.
type TimelineWidget struct {
	ID       string
	Messages []domain.Message
	Width    int
	Height   int
	emitter  contract.EventEmitter
}

// NewTimelineWidget builds a widget over messages. emitter may be nil for a
// display-only widget.
func NewTimelineWidget(id string, messages []domain.Message, emitter contract.EventEmitter) *TimelineWidget {
	return &TimelineWidget{
		ID:       id,
		Messages: messages,
		Width:    chart.DefaultWidth,
		Height:   chart.DefaultHeight,
		emitter:  emitter,
	}
}

// Compose builds a fresh container holding the heading and the drawn chart.
// Every call returns an independent tree.
func (w *TimelineWidget) Compose() *html.Node {
	div := chart.Element("div", "id", w.ID, "class", TimelineClass)
	div.AppendChild(chart.Text(chart.Element("h3"), TimelineHeading))

	svg := chart.Element("svg",
		"width", strconv.Itoa(w.Width),
		"height", strconv.Itoa(w.Height),
	)
	div.AppendChild(svg)

	chart.Draw(svg, w.Messages, float64(w.Width), float64(w.Height))
	return div
}

// Click resolves a rendered bar back to its message and emits MessageClicked.
func (w *TimelineWidget) Click(target *html.Node) error {
	raw, ok := chart.Attr(target, "data-index")
	if !ok || target.Data != "rect" {
		return errors.ErrNotABar
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: data-index %q", errors.ErrNotABar, raw)
	}
	return w.ClickIndex(index)
}

// ClickIndex emits MessageClicked for the bar drawn at index.
// Emission is fire-and-forget. A widget built without an emitter only
// validates the index: clicks on it are no-ops.
func (w *TimelineWidget) ClickIndex(index int) error {
	if index < 0 || index >= len(w.Messages) {
		return fmt.Errorf("%w: %d not in [0,%d)", errors.ErrBarOutOfRange, index, len(w.Messages))
	}
	if w.emitter == nil {
		return nil
	}
	w.emitter.Emit(event.MessageClicked{
		WidgetID: w.ID,
		Index:    index,
		Message:  w.Messages[index],
	})
	return nil
}
