package projection

import (
	"context"
	"profiler-viz/domain"
	"profiler-viz/domain/event"
	"profiler-viz/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeline_Consume_MessageRecorded(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	ctx := context.Background()
	at := time.Now().UTC()

	first := domain.NewMessage("scheduler", "tick", at)
	second := domain.NewMessage("worker", "ack", at.Add(time.Second))
	third := domain.NewMessage("scheduler", "tock", at.Add(2*time.Second))

	// Events may arrive out of sequence order
	req.NoError(timeline.Consume(ctx, event.MessageRecorded{Profile: "run-1", Seq: 2, Message: third}))
	req.NoError(timeline.Consume(ctx, event.MessageRecorded{Profile: "run-1", Seq: 0, Message: first}))
	req.NoError(timeline.Consume(ctx, event.MessageRecorded{Profile: "run-1", Seq: 1, Message: second}))

	messages, err := timeline.Messages("run-1")
	req.NoError(err)
	req.Equal([]domain.Message{first, second, third}, messages)
	req.Equal([]string{"run-1"}, timeline.Profiles())
}

func TestTimeline_LoadThenAppend(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	at := time.Now().UTC()
	// Given the latest two stored messages of a limited profile
	stored := []domain.RecordedMessage{
		{Seq: 6, Message: domain.NewMessage("B", "two", at)},
		{Seq: 5, Message: domain.NewMessage("A", "one", at)},
	}
	timeline.Load("run-2", stored)

	// When the next stored sequence is recorded
	next := domain.NewMessage("A", "three", at)
	req.NoError(timeline.Consume(context.Background(), event.MessageRecorded{Profile: "run-2", Seq: 7, Message: next}))

	// Then it lands right after them
	messages, err := timeline.Messages("run-2")
	req.NoError(err)
	req.Equal([]domain.Message{stored[1].Message, stored[0].Message, next}, messages)

	// And replaying a loaded sequence does not duplicate it
	req.NoError(timeline.Consume(context.Background(), event.MessageRecorded{Profile: "run-2", Seq: 6, Message: stored[0].Message}))
	messages, err = timeline.Messages("run-2")
	req.NoError(err)
	req.Len(messages, 3)
}

func TestTimeline_UnknownProfile(t *testing.T) {
	req := require.New(t)
	_, err := NewTimeline().Messages("nope")
	req.ErrorIs(err, errors.ErrUnknownProfile)
}

func TestSelection_LastClickWins(t *testing.T) {
	req := require.New(t)
	selection := NewSelection()
	ctx := context.Background()
	at := time.Now().UTC()
	a := domain.NewMessage("A", "one", at)
	b := domain.NewMessage("B", "two", at)

	_, err := selection.Selected("w")
	req.ErrorIs(err, errors.ErrNoSelection)

	req.NoError(selection.Consume(ctx, event.MessageClicked{WidgetID: "w", Index: 0, Message: a}))
	req.NoError(selection.Consume(ctx, event.MessageClicked{WidgetID: "w", Index: 1, Message: b}))

	selected, err := selection.Selected("w")
	req.NoError(err)
	req.Equal(b, selected)
}
