package client

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/streamspace-dev/rws/internal/config"
	"github.com/streamspace-dev/rws/internal/rwserr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	host, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	if err != nil {
		t.Fatalf("SplitHostPort() error = %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("Atoi() error = %v", err)
	}

	opts := &config.ConnectionOptions{
		Host:     host,
		Port:     port,
		Username: "Default User",
		Password: "robotics",
		Version:  config.VersionV1,
	}
	cl, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return cl
}

// TestMastershipCountNonNegative covers invariant S-mastership: nested
// requests only network once, and a release past zero raises a
// LogicError rather than issuing a request.
func TestMastershipCountNonNegative(t *testing.T) {
	requests := 0
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()
	if err := cl.RequestMastership(ctx, "rapid"); err != nil {
		t.Fatalf("RequestMastership() error = %v", err)
	}
	if err := cl.RequestMastership(ctx, "rapid"); err != nil {
		t.Fatalf("RequestMastership() nested error = %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1 (second request should be local-only)", requests)
	}

	if err := cl.ReleaseMastership(ctx, "rapid"); err != nil {
		t.Fatalf("ReleaseMastership() error = %v", err)
	}
	if err := cl.ReleaseMastership(ctx, "rapid"); err != nil {
		t.Fatalf("ReleaseMastership() error = %v", err)
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2 after matching release", requests)
	}

	err := cl.ReleaseMastership(ctx, "rapid")
	if err == nil {
		t.Fatal("ReleaseMastership() past zero = nil, want LogicError")
	}
	if kind, ok := rwserr.KindOf(err); !ok || kind != rwserr.KindLogic {
		t.Errorf("ReleaseMastership() past zero kind = %v, want KindLogic", kind)
	}
	if requests != 2 {
		t.Errorf("requests = %d after over-release, want no additional network call", requests)
	}
}

func TestGetControllerState(t *testing.T) {
	const body = `<?xml version="1.0"?>
<html><body><div class="state"><ul><li class="ctrlstate-li">
<span class="ctrlstate">motoron</span>
</li></ul></div></body></html>`

	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	})

	state, err := cl.GetControllerState(context.Background())
	if err != nil {
		t.Fatalf("GetControllerState() error = %v", err)
	}
	if state.String() != "motoron" {
		t.Errorf("GetControllerState() = %v, want motoron", state)
	}
}

func TestRegisterRemoteUserSendsRemoteLocale(t *testing.T) {
	var gotBody string
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	})

	if err := cl.RegisterRemoteUser(context.Background(), "Default User", "rwsctl", "10.0.0.1"); err != nil {
		t.Fatalf("RegisterRemoteUser() error = %v", err)
	}
	if !strings.Contains(gotBody, "ulocale=remote") {
		t.Errorf("RegisterRemoteUser() body = %q, want ulocale=remote", gotBody)
	}
}

func TestCloseLogsOutAndReleasesConnections(t *testing.T) {
	var sawLogout bool
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logout" {
			sawLogout = true
		}
		w.WriteHeader(http.StatusOK)
	})

	cl.Close(context.Background())
	if !sawLogout {
		t.Error("Close() did not hit /logout")
	}
}
