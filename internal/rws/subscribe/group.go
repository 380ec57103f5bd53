package subscribe

import (
	"context"
	"sync"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rws/transport"
	"github.com/streamspace-dev/rws/internal/rwserr"
)

// Closer deletes a subscription group by id; v1 and v2 each implement
// this with their own URI/body rules.
type Closer interface {
	CloseGroup(ctx context.Context, groupID string) error
}

// Group owns one open subscription: a controller-side resource group
// plus (once Watch is called) its WebSocket Receiver. Unlike the
// original v2_0 implementation, there is exactly one place the group
// id lives (groupID below), so Close and Detach can never disagree
// about whether it has already been cleared -- the source bug where
// close() referenced an out-of-scope id and never cleared the member
// cannot occur here by construction.
type Group struct {
	transport *transport.Transport
	closer    Closer

	mu       sync.Mutex
	groupID  string
	receiver *Receiver
}

// NewGroup wraps an already-created controller-side subscription group
// id. Called by the v1 and v2 Managers once their Open request
// succeeds.
func NewGroup(tr *transport.Transport, closer Closer, groupID string) *Group {
	return &Group{transport: tr, closer: closer, groupID: groupID}
}

// ID returns the controller-assigned subscription group id, or "" if
// the group has been closed or detached.
func (g *Group) ID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.groupID
}

// Watch dials the subscription WebSocket and returns a Receiver bound to
// handler. No events are delivered until the caller calls the
// Receiver's Run, which invokes handler on the caller's goroutine and
// blocks until Shutdown, context cancellation, or a transport error.
func (g *Group) Watch(ctx context.Context, subprotocol string, handler Handler) (*Receiver, error) {
	g.mu.Lock()
	groupID := g.groupID
	g.mu.Unlock()
	if groupID == "" {
		return nil, rwserr.Logic("Watch called on a closed or detached subscription group")
	}

	conn, err := g.transport.DialWebSocket(ctx, catalog.PollURI(groupID), subprotocol)
	if err != nil {
		return nil, err
	}

	r := NewReceiver(conn, handler, g.transport.PingPongTimeout())
	g.mu.Lock()
	g.receiver = r
	g.mu.Unlock()
	return r, nil
}

// Close shuts down any active Receiver and deletes the subscription
// group from the controller. It is idempotent: calling it twice, or
// calling it after Detach, is a no-op.
func (g *Group) Close(ctx context.Context) error {
	g.mu.Lock()
	groupID := g.groupID
	receiver := g.receiver
	g.groupID = ""
	g.receiver = nil
	g.mu.Unlock()

	if receiver != nil {
		receiver.Shutdown()
	}
	if groupID == "" {
		return nil
	}
	return g.closer.CloseGroup(ctx, groupID)
}

// Detach clears the group's id without deleting it on the controller,
// for callers that want the subscription to outlive this Group value
// (mirroring the original library's move-constructor semantics, made
// explicit here instead of implicit in a moved-from object).
func (g *Group) Detach() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.groupID = ""
	g.receiver = nil
}
