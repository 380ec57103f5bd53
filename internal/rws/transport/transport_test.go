package transport

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/streamspace-dev/rws/internal/config"
)

func newPlainTransport(t *testing.T, srv *httptest.Server) *Transport {
	t.Helper()
	host, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	if err != nil {
		t.Fatalf("SplitHostPort() error = %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("Atoi(%q) error = %v", portStr, err)
	}

	opts := &config.ConnectionOptions{
		Host:     host,
		Port:     port,
		Username: "Default User",
		Password: "robotics",
		Version:  config.VersionV1,
	}
	if err := opts.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	tr, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tr
}

func TestGetSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer srv.Close()

	tr := newPlainTransport(t, srv)
	res, err := tr.Get(context.Background(), "/rw/panel/ctrlstate", "application/xhtml+xml")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if res.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", res.Status)
	}
}

func TestGetRetriesWithDigestChallenge(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if r.Header.Get("Authorization") == "" {
			w.Header().Set("WWW-Authenticate", `Digest realm="RobotWare", nonce="n1", qop="auth"`)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	tr := newPlainTransport(t, srv)
	res, err := tr.Get(context.Background(), "/rw/panel/ctrlstate", "")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if res.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200 after digest retry", res.Status)
	}
	if attempts != 2 {
		t.Errorf("server saw %d attempts, want 2 (challenge then authorized retry)", attempts)
	}
}

func TestSetTimeoutPreservesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "ABBCX", Value: "sess1"})
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := newPlainTransport(t, srv)
	if _, err := tr.Get(context.Background(), "/", ""); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	tr.SetTimeout(2 * time.Second)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}
	cookies := tr.jar.Cookies(u)
	if len(cookies) != 1 || cookies[0].Value != "sess1" {
		t.Errorf("cookies after SetTimeout = %v, want session cookie preserved", cookies)
	}
}
