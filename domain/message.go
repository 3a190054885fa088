// Package domain contains core concepts of the profiler visualization.
// This file defines the Message record drawn by the timeline widgets.
// Messages are immutable once recorded.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents one profiled message exchanged between components.
// Source is the emitting component and defines the timeline row.
type Message struct {
	ID      uuid.UUID // unique identifier
	Source  string
	Content string
	At      time.Time
}

func NewMessage(source, content string, at time.Time) Message {
	return Message{
		ID:      uuid.New(),
		Source:  source,
		Content: content,
		At:      at,
	}
}

// RecordedMessage is a stored message with its position key in the profile.
type RecordedMessage struct {
	Seq     uint64
	Message Message
}
