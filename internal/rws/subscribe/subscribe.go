// Package subscribe implements the Subscription Manager, Receiver and
// event model shared by both protocol versions: opening and closing a
// subscription group, running the WebSocket frame loop, and parsing
// delivered events. Only the subscription body encoding, content type
// and WebSocket subprotocol differ between versions — those live in
// the v1 and v2 subpackages.
package subscribe

import (
	"github.com/streamspace-dev/rws/internal/rws/catalog"
)

// Resource names a single subscribable resource (an I/O signal, the
// controller state, a RAPID execution state...) at a given delivery
// priority.
type Resource struct {
	URI      string
	Priority catalog.Priority
}

// Event is the flat tagged union of subscription events this client
// parses off a WebSocket frame: IOSignalStateEvent,
// RAPIDExecutionStateEvent, ControllerStateEvent, OperationModeEvent.
// A Handler type-switches on the concrete type to recover the typed
// payload.
type Event interface {
	isEvent()
}

// IOSignalStateEvent reports an I/O signal's new logical value.
type IOSignalStateEvent struct {
	Signal string
	Value  string
}

func (IOSignalStateEvent) isEvent() {}

// RAPIDExecutionStateEvent reports a change in the RAPID program's
// running/stopped state.
type RAPIDExecutionStateEvent struct {
	State catalog.RAPIDExecutionState
}

func (RAPIDExecutionStateEvent) isEvent() {}

// ControllerStateEvent reports a change in the controller's operating
// state. A v2 addition, parsed by the same dispatcher as every other
// event class.
type ControllerStateEvent struct {
	State catalog.ControllerState
}

func (ControllerStateEvent) isEvent() {}

// OperationModeEvent reports a change in the controller's operation
// mode. A v2 addition, parsed by the same dispatcher as every other
// event class.
type OperationModeEvent struct {
	Mode catalog.OperationMode
}

func (OperationModeEvent) isEvent() {}

// Handler receives events as they are parsed off the WebSocket.
// Handlers must not block for long: they execute on the Receiver's
// single frame-processing goroutine, and a slow handler delays ping
// replies.
type Handler func(Event)
