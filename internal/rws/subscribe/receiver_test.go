package subscribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/streamspace-dev/rws/internal/rwserr"
	"github.com/streamspace-dev/rws/internal/rwslog"
)

var testUpgrader = websocket.Upgrader{}

func TestReceiverDispatchesEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("server upgrade error: %v", err)
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(ioEventBody))
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}

	var mu sync.Mutex
	var received []Event
	r := NewReceiver(conn, func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, ev)
	}, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("received = %+v, want exactly one event", received)
	}
	if _, ok := received[0].(IOSignalStateEvent); !ok {
		t.Fatalf("received[0] = %#v, want IOSignalStateEvent", received[0])
	}
}

func TestReceiverShutdownFromOtherGoroutine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}

	r := NewReceiver(conn, func(Event) {}, 0)

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	r.Shutdown()
	r.Shutdown() // idempotent

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() after Shutdown() error = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after Shutdown()")
	}
}

// TestReceiverPingTimeout exercises invariant #5 (a missed heartbeat
// surfaces as a TimeoutError): the fake clock below jumps straight past
// the deadline so the test runs in milliseconds instead of waiting out
// a real pingTimeout.
func TestReceiverPingTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}

	base := time.Now()
	r := &Receiver{
		conn:        conn,
		handler:     func(Event) {},
		log:         rwslog.New("subscribe"),
		pingTimeout: 100 * time.Millisecond,
		lastPing:    base,
		now:         func() time.Time { return base.Add(200 * time.Millisecond) },
		shutdownCh:  make(chan struct{}),
	}

	err = r.Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want TimeoutError")
	}
	if kind, ok := rwserr.KindOf(err); !ok || kind != rwserr.KindTimeout {
		t.Errorf("Run() error kind = %v, want KindTimeout", kind)
	}
}
