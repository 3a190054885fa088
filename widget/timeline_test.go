package widget

import (
	"bytes"
	"profiler-viz/domain"
	"profiler-viz/domain/event"
	"profiler-viz/errors"
	"profiler-viz/mocks"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/net/html"
)

func threeMessages() []domain.Message {
	at := time.Now().UTC()
	return []domain.Message{
		domain.NewMessage("A", "first", at),
		domain.NewMessage("B", "second", at.Add(time.Millisecond)),
		domain.NewMessage("A", "third", at.Add(2*time.Millisecond)),
	}
}

func TestTimelineWidget_Compose(t *testing.T) {
	req := require.New(t)
	w := NewTimelineWidget("timeline-1", threeMessages(), nil)

	root := w.Compose()
	doc := goquery.NewDocumentFromNode(root)

	req.Equal("div", root.Data)
	req.Nil(root.Parent)
	id, _ := doc.Selection.Attr("id")
	req.Equal("timeline-1", id)
	class, _ := doc.Selection.Attr("class")
	req.Equal(TimelineClass, class)
	req.Equal(TimelineHeading, doc.Find("h3").Text())

	svg := doc.Find("svg")
	width, _ := svg.Attr("width")
	height, _ := svg.Attr("height")
	req.Equal("400", width)
	req.Equal("300", height)
	req.Equal(3, svg.Find("rect.bar").Length())
}

func TestTimelineWidget_ComposeIsIndependent(t *testing.T) {
	req := require.New(t)
	w := NewTimelineWidget("timeline-1", threeMessages(), nil)

	first := w.Compose()
	second := w.Compose()
	req.NotSame(first, second)

	var a, b bytes.Buffer
	req.NoError(html.Render(&a, first))
	req.NoError(html.Render(&b, second))
	req.Equal(a.String(), b.String())
	req.True(strings.HasPrefix(a.String(), `<div id="timeline-1" class="timeline-widget"><h3>Message Timeline</h3><svg`))
}

func TestTimelineWidget_Click_EmitsOnce(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	emitter := mocks.NewMockEventEmitter(ctrl)
	messages := threeMessages()
	w := NewTimelineWidget("timeline-1", messages, emitter)

	// Given the last bar is clicked
	emitter.EXPECT().Emit(event.MessageClicked{
		WidgetID: "timeline-1",
		Index:    2,
		Message:  messages[2],
	}).Times(1)

	doc := goquery.NewDocumentFromNode(w.Compose())
	bar := doc.Find(`rect[data-index="2"]`)
	req.Equal(1, bar.Length())

	// Then exactly one event carries the third message
	req.NoError(w.Click(bar.Nodes[0]))
}

func TestTimelineWidget_Click_EveryBarResolvesItsMessage(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	emitter := mocks.NewMockEventEmitter(ctrl)
	messages := threeMessages()
	w := NewTimelineWidget("timeline-1", messages, emitter)

	var got []domain.Message
	emitter.EXPECT().Emit(gomock.Any()).Do(func(e event.DomainEvent) {
		clicked, ok := e.(event.MessageClicked)
		req.True(ok)
		req.Equal(event.MessageClickedName, clicked.Name())
		got = append(got, clicked.Message)
	}).Times(3)

	doc := goquery.NewDocumentFromNode(w.Compose())
	doc.Find("rect.bar").Each(func(_ int, s *goquery.Selection) {
		req.NoError(w.Click(s.Nodes[0]))
	})

	// Bars are grouped per source: A, A then B
	req.Equal([]domain.Message{messages[0], messages[2], messages[1]}, got)
}

func TestTimelineWidget_Click_NotABar(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	emitter := mocks.NewMockEventEmitter(ctrl)
	w := NewTimelineWidget("timeline-1", threeMessages(), emitter)

	doc := goquery.NewDocumentFromNode(w.Compose())

	err := w.Click(doc.Find("h3").Nodes[0])
	req.ErrorIs(err, errors.ErrNotABar)
	req.ErrorIs(w.Click(nil), errors.ErrNotABar)
}

func TestTimelineWidget_ClickIndex_OutOfRange(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	emitter := mocks.NewMockEventEmitter(ctrl)
	w := NewTimelineWidget("timeline-1", threeMessages(), emitter)

	req.ErrorIs(w.ClickIndex(3), errors.ErrBarOutOfRange)
	req.ErrorIs(w.ClickIndex(-1), errors.ErrBarOutOfRange)
}

func TestTimelineWidget_ClickIndex_WithoutEmitter(t *testing.T) {
	req := require.New(t)
	w := NewTimelineWidget("timeline-1", threeMessages(), nil)

	req.NoError(w.ClickIndex(1))
	req.ErrorIs(w.ClickIndex(3), errors.ErrBarOutOfRange)

	bar := goquery.NewDocumentFromNode(w.Compose()).Find(`rect.bar[data-index="0"]`)
	req.Equal(1, bar.Length())
	req.NoError(w.Click(bar.Get(0)))
}

func TestTimelineWidget_EmptyMessages(t *testing.T) {
	req := require.New(t)
	w := NewTimelineWidget("empty", []domain.Message{}, nil)

	doc := goquery.NewDocumentFromNode(w.Compose())

	req.Equal(0, doc.Find("rect").Length())
	req.Equal(0, doc.Find("g.y-axis g.tick").Length())
	req.ErrorIs(w.ClickIndex(0), errors.ErrBarOutOfRange)
}
