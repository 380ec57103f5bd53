package subscribe

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/streamspace-dev/rws/internal/rwserr"
	"github.com/streamspace-dev/rws/internal/rwslog"
)

// DefaultPingTimeout is used when NewReceiver is given a zero
// pingTimeout; it matches config.DefaultPingPongTimeout.
const DefaultPingTimeout = 120 * time.Second

// receiveDeadline is the per-ReadMessage deadline; it is kept short so
// Shutdown and the ping-timeout check are both noticed promptly rather
// than blocking for up to pingTimeout.
const receiveDeadline = 2 * time.Second

// Receiver runs the frame loop for one open subscription socket: one
// goroutine calls Run and blocks in it; any other goroutine may call
// Shutdown concurrently. socketMutex guards every call into conn so a
// Shutdown-triggered close can never race a ReadMessage/WriteMessage.
type Receiver struct {
	conn    *websocket.Conn
	handler Handler
	log     *rwslog.Logger

	socketMutex sync.Mutex
	lastPing    time.Time
	pingTimeout time.Duration

	// now is the clock Run and Shutdown consult; it is always
	// time.Now in production. Tests construct a Receiver literal
	// directly (this file's package) and override it to exercise the
	// ping-timeout deadline without a real multi-minute sleep.
	now func() time.Time

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// NewReceiver wraps an already-dialed subscription WebSocket
// connection. handler is invoked for every parsed event; it runs on
// Run's goroutine and must not block. pingTimeout bounds how long Run
// tolerates not having seen a ping from the controller before
// declaring the heartbeat lost; a zero value uses DefaultPingTimeout.
func NewReceiver(conn *websocket.Conn, handler Handler, pingTimeout time.Duration) *Receiver {
	if pingTimeout <= 0 {
		pingTimeout = DefaultPingTimeout
	}
	return &Receiver{
		conn:        conn,
		handler:     handler,
		log:         rwslog.New("subscribe"),
		pingTimeout: pingTimeout,
		now:         time.Now,
		lastPing:    time.Now(),
		shutdownCh:  make(chan struct{}),
	}
}

// Run blocks, processing frames until Shutdown is called, ctx is
// cancelled, or an unrecoverable transport error occurs. A clean
// Shutdown returns nil.
func (r *Receiver) Run(ctx context.Context) error {
	defer r.conn.Close()

	// gorilla/websocket hands ping frames to the ping handler inside
	// ReadMessage instead of returning them, so the heartbeat is
	// recorded and answered here, echoing the ping's payload.
	r.conn.SetPingHandler(func(appData string) error {
		r.lastPing = r.now()
		return r.conn.WriteControl(websocket.PongMessage, []byte(appData), r.now().Add(time.Second))
	})

	for {
		select {
		case <-r.shutdownCh:
			return nil
		case <-ctx.Done():
			r.Shutdown()
			return nil
		default:
		}

		if r.now().Sub(r.lastPing) > r.pingTimeout {
			return rwserr.Timeout(nil, "no ping received from controller within %s", r.pingTimeout)
		}

		messageType, data, err := r.readFrame()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			select {
			case <-r.shutdownCh:
				return nil
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return rwserr.IO(err, "reading subscription frame")
		}

		switch messageType {
		case websocket.PingMessage:
			r.lastPing = r.now()
			if err := r.writePong(); err != nil {
				return rwserr.IO(err, "replying to ping")
			}
		case websocket.CloseMessage:
			return nil
		case websocket.TextMessage, websocket.BinaryMessage:
			events, err := ParseEvents(data)
			if err != nil {
				return err
			}
			for _, ev := range events {
				r.handler(ev)
			}
		}
	}
}

func (r *Receiver) readFrame() (int, []byte, error) {
	r.socketMutex.Lock()
	defer r.socketMutex.Unlock()

	r.conn.SetReadDeadline(r.now().Add(receiveDeadline))
	return r.conn.ReadMessage()
}

func (r *Receiver) writePong() error {
	r.socketMutex.Lock()
	defer r.socketMutex.Unlock()
	return r.conn.WriteMessage(websocket.PongMessage, nil)
}

// Shutdown requests that Run stop and closes the underlying socket. It
// is idempotent and safe to call from any goroutine, including
// concurrently with Run; any error from the close is logged and
// swallowed rather than returned, matching the "best-effort cleanup"
// posture used elsewhere in this client.
func (r *Receiver) Shutdown() {
	r.shutdownOnce.Do(func() {
		close(r.shutdownCh)
		r.socketMutex.Lock()
		defer r.socketMutex.Unlock()
		if err := r.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			r.now().Add(time.Second)); err != nil {
			r.log.Printf("sending close frame: %v", err)
		}
		if err := r.conn.Close(); err != nil {
			r.log.Printf("closing socket: %v", err)
		}
	})
}
