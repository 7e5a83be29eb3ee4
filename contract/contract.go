//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"webchat/domain/chat"
	"webchat/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself.
// The supervisor restarts it when it panics or fails.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker
// for logging, so the Worker interface stays minimal.
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

// EventSink receives events for one connected party.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

type RegistryStats struct {
	Connections int
	Rooms       int
}

type IRegistry interface {
	Join(connectionID string, roomID chat.RoomID, sink EventSink)
	Leave(connectionID string, roomID chat.RoomID)
	Disconnect(connectionID string)
	GetSinksForRoom(roomID chat.RoomID) []EventSink
	Stats() RegistryStats
}

type IRouter interface {
	Broadcast(ctx context.Context, e event.DomainEvent) int
}
