package chart

import (
	"fmt"
	"profiler-viz/domain"
	"strconv"

	"golang.org/x/net/html"
)

const (
	XAxisLabel = "Message Index"
	YAxisLabel = "Source"
	tickSize   = 6
	tickGap    = 3
)

// Draw renders the timeline of messages into svg and returns the layout it used.
// Each bar carries its source and position as data attributes so a click can be
// traced back to its message.
func Draw(svg *html.Node, messages []domain.Message, width, height float64) Layout {
	l := NewLayout(messages, width, height)

	g := Element("g", "transform", translate(l.Margin.Left, l.Margin.Top))
	svg.AppendChild(g)

	for _, bar := range l.Bars {
		g.AppendChild(Element("rect",
			"class", "bar",
			"data-source", bar.Source,
			"data-index", strconv.Itoa(bar.Index),
			"x", num(bar.X),
			"y", num(bar.Y),
			"width", num(bar.Width),
			"height", num(bar.Height),
			"fill", bar.Fill,
		))
	}

	g.AppendChild(xAxis(l))
	g.AppendChild(yAxis(l))
	return l
}

func xAxis(l Layout) *html.Node {
	axis := Element("g",
		"class", "x-axis",
		"transform", translate(0, l.ChartHeight),
		"fill", "none",
		"font-size", "10",
		"font-family", "sans-serif",
		"text-anchor", "middle",
	)
	axis.AppendChild(Element("path",
		"class", "domain",
		"stroke", "currentColor",
		"d", fmt.Sprintf("M0,%dV0H%sV%d", tickSize, num(l.ChartWidth), tickSize),
	))
	for _, t := range l.XTicks {
		tick := Element("g", "class", "tick", "opacity", "1", "transform", translate(t.Position, 0))
		tick.AppendChild(Element("line", "stroke", "currentColor", "y2", strconv.Itoa(tickSize)))
		tick.AppendChild(Text(Element("text",
			"fill", "currentColor",
			"y", strconv.Itoa(tickSize+tickGap),
			"dy", "0.71em",
		), t.Label))
		axis.AppendChild(tick)
	}
	axis.AppendChild(Text(Element("text",
		"class", "x-axis-label",
		"x", num(l.ChartWidth/2),
		"y", num(l.Margin.Bottom-5),
		"fill", "black",
		"text-anchor", "middle",
	), XAxisLabel))
	return axis
}

func yAxis(l Layout) *html.Node {
	axis := Element("g",
		"class", "y-axis",
		"fill", "none",
		"font-size", "10",
		"font-family", "sans-serif",
		"text-anchor", "end",
	)
	axis.AppendChild(Element("path",
		"class", "domain",
		"stroke", "currentColor",
		"d", fmt.Sprintf("M-%d,0H0V%sH-%d", tickSize, num(l.ChartHeight), tickSize),
	))
	for _, t := range l.YTicks {
		tick := Element("g", "class", "tick", "opacity", "1", "transform", translate(0, t.Position))
		tick.AppendChild(Element("line", "stroke", "currentColor", "x2", strconv.Itoa(-tickSize)))
		tick.AppendChild(Text(Element("text",
			"fill", "currentColor",
			"x", strconv.Itoa(-(tickSize + tickGap)),
			"dy", "0.32em",
		), t.Label))
		axis.AppendChild(tick)
	}
	labelX := -l.Margin.Left + 10
	labelY := l.ChartHeight / 2
	axis.AppendChild(Text(Element("text",
		"class", "y-axis-label",
		"x", num(labelX),
		"y", num(labelY),
		"fill", "black",
		"text-anchor", "middle",
		"transform", fmt.Sprintf("rotate(-90, %s, %s)", num(labelX), num(labelY)),
	), YAxisLabel))
	return axis
}

// Element builds a detached element node from alternating attribute keys and values.
func Element(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Text appends a text child to n and returns n.
func Text(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func translate(x, y float64) string {
	return fmt.Sprintf("translate(%s,%s)", num(x), num(y))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
