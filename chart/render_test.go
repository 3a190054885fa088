package chart

import (
	"strconv"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func drawInto(t *testing.T, sources ...string) *goquery.Document {
	t.Helper()
	svg := Element("svg", "width", "400", "height", "300")
	Draw(svg, messagesFrom(sources...), DefaultWidth, DefaultHeight)
	return goquery.NewDocumentFromNode(svg)
}

func TestDraw_BarsAndAxes(t *testing.T) {
	req := require.New(t)

	doc := drawInto(t, "A", "B", "A")

	req.Equal(3, doc.Find("rect.bar").Length())
	req.Equal(2, doc.Find(`rect[data-source="A"]`).Length())
	req.Equal(1, doc.Find(`rect[data-source="B"]`).Length())

	g := doc.Find("svg > g").First()
	transform, _ := g.Attr("transform")
	req.Equal("translate(100,20)", transform)

	req.Equal(1, doc.Find("g.x-axis").Length())
	req.Equal(1, doc.Find("g.y-axis").Length())
	req.Equal("Message Index", doc.Find("g.x-axis text.x-axis-label").Text())
	req.Equal("Source", doc.Find("g.y-axis text.y-axis-label").Text())

	var labels []string
	doc.Find("g.x-axis g.tick text").Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, s.Text())
	})
	req.Equal([]string{"1", "2", "3"}, labels)

	var rows []string
	doc.Find("g.y-axis g.tick text").Each(func(_ int, s *goquery.Selection) {
		rows = append(rows, s.Text())
	})
	req.Equal([]string{"A", "B"}, rows)

	rotate, _ := doc.Find("text.y-axis-label").Attr("transform")
	req.Equal("rotate(-90, -90, 125)", rotate)
}

func TestDraw_BarIndexMatchesPosition(t *testing.T) {
	req := require.New(t)

	doc := drawInto(t, "net", "disk", "net", "cpu")

	prev := -1.0
	for i := 0; i < 4; i++ {
		bar := doc.Find(`rect[data-index="` + strconv.Itoa(i) + `"]`)
		req.Equal(1, bar.Length())
		raw, ok := bar.Attr("x")
		req.True(ok)
		x, err := strconv.ParseFloat(raw, 64)
		req.NoError(err)
		req.Greater(x, prev)
		prev = x
	}
}

func TestDraw_SourceWithMarkupStaysAnAttribute(t *testing.T) {
	req := require.New(t)

	doc := drawInto(t, `a b"<c>`, "a-b-c")

	req.Equal(2, doc.Find("rect.bar").Length())
	req.Equal(1, doc.Find(`rect[data-source="a-b-c"]`).Length())
	source, _ := doc.Find(`rect[data-index="0"]`).Attr("data-source")
	req.Equal(`a b"<c>`, source)
}

func TestDraw_Empty(t *testing.T) {
	req := require.New(t)

	doc := drawInto(t)

	req.Equal(0, doc.Find("rect").Length())
	req.Equal(0, doc.Find("g.tick").Length())
	req.Equal(1, doc.Find("g.x-axis").Length())
	req.Equal(1, doc.Find("g.y-axis").Length())
}
