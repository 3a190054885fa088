package event

import (
	"profiler-viz/domain"
)

// MessageClickedName is the name under which bar clicks are broadcast.
const MessageClickedName = "messageClicked"

type DomainEvent interface {
	Name() string
}

// MessageRecorded is emitted once a message has been persisted for a profile.
type MessageRecorded struct {
	Profile string
	Seq     uint64
	Message domain.Message
}

func (MessageRecorded) Name() string { return "messageRecorded" }

// MessageClicked carries the message behind a clicked timeline bar.
type MessageClicked struct {
	WidgetID string
	Index    int
	Message  domain.Message
}

func (MessageClicked) Name() string { return MessageClickedName }
