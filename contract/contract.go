//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"profiler-viz/domain"
	"profiler-viz/domain/event"
	"reflect"
)

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// EventEmitter hands an event over without waiting for any consumer.
type EventEmitter interface {
	Emit(e event.DomainEvent)
}

type IMessageRepository interface {
	StoreMessage(profile string, message domain.Message) (uint64, error)
	GetMessages(profile string) ([]domain.RecordedMessage, error)
	Profiles() ([]string, error)
}
