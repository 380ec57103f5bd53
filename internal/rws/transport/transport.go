// Package transport owns the HTTP session (cookie jar, digest auth,
// timeouts) and the WebSocket dial used to open a subscription socket,
// the same "one connection, reused across calls" shape the agent this
// module grew from used for its registration-then-upgrade flow.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/net/publicsuffix"

	"github.com/streamspace-dev/rws/internal/config"
	"github.com/streamspace-dev/rws/internal/rws/result"
	"github.com/streamspace-dev/rws/internal/rwserr"
	"github.com/streamspace-dev/rws/internal/rwslog"
)

// requestIDHeader carries a per-request correlation id (the same
// X-Request-ID convention this codebase's request tracing uses
// elsewhere), useful for matching a controller-side log entry back to
// the client-side call that produced it.
const requestIDHeader = "X-Request-ID"

// Transport issues HTTP and WebSocket requests against a single RWS
// controller session. It is safe for concurrent use by multiple
// goroutines.
type Transport struct {
	opts *config.ConnectionOptions
	log  *rwslog.Logger

	mu     sync.RWMutex
	client *http.Client
	jar    http.CookieJar
	auth   *digestAuthenticator

	baseURL string
}

// New builds a Transport from already-validated ConnectionOptions.
func New(opts *config.ConnectionOptions) (*Transport, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, rwserr.IO(err, "creating cookie jar")
	}

	t := &Transport{
		opts: opts,
		log:  rwslog.New("transport"),
		jar:  jar,
		auth: newDigestAuthenticator(opts.Username, opts.Password),
		baseURL: fmt.Sprintf("%s://%s:%d", opts.Scheme(), opts.Host, opts.Port),
	}
	t.client = t.newClient(opts.RequestTimeout, opts.ConnectTimeout)
	return t, nil
}

func (t *Transport) newClient(requestTimeout, connectTimeout time.Duration) *http.Client {
	transport := &http.Transport{
		TLSClientConfig:     t.opts.TLSConfig,
		DialContext:         (&net.Dialer{Timeout: connectTimeout}).DialContext,
		TLSHandshakeTimeout: connectTimeout,
	}
	return &http.Client{
		Jar:       t.jar,
		Transport: transport,
		Timeout:   requestTimeout,
		// RWS never redirects across hosts; following a foreign
		// redirect would leak the session cookie and digest
		// credentials to an unintended host.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) == 0 {
				return nil
			}
			if req.URL.Host != via[0].URL.Host {
				return rwserr.Protocol(rwserr.HTTPContext{Method: req.Method, URI: req.URL.String()},
					"refusing cross-host redirect to %s", req.URL.Host)
			}
			return nil
		},
	}
}

// SetTimeout rebuilds the HTTP client with a new per-request timeout,
// preserving the cookie jar (and therefore the session) across the
// rebuild.
func (t *Transport) SetTimeout(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.opts.RequestTimeout = d
	t.client = t.newClient(d, t.opts.ConnectTimeout)
}

func (t *Transport) url(uri string) string {
	return t.baseURL + uri
}

// PingPongTimeout returns the configured subscription heartbeat
// deadline, for the Subscription Manager to pass to its Receivers.
func (t *Transport) PingPongTimeout() time.Duration {
	return t.opts.PingPongTimeout
}

// Get issues an HTTP GET against uri (relative to the controller base).
func (t *Transport) Get(ctx context.Context, uri string, accept string) (*result.Result, error) {
	return t.do(ctx, http.MethodGet, uri, accept, "", nil)
}

// Post issues an HTTP POST with the given content type and body.
func (t *Transport) Post(ctx context.Context, uri, contentType string, body []byte) (*result.Result, error) {
	return t.do(ctx, http.MethodPost, uri, "", contentType, body)
}

// Put issues an HTTP PUT with the given content type and body.
func (t *Transport) Put(ctx context.Context, uri, contentType string, body []byte) (*result.Result, error) {
	return t.do(ctx, http.MethodPut, uri, "", contentType, body)
}

// Delete issues an HTTP DELETE against uri.
func (t *Transport) Delete(ctx context.Context, uri string) (*result.Result, error) {
	return t.do(ctx, http.MethodDelete, uri, "", "", nil)
}

func (t *Transport) do(ctx context.Context, method, uri, accept, contentType string, body []byte) (*result.Result, error) {
	res, authNeeded, err := t.doOnce(ctx, method, uri, accept, contentType, body, nil)
	if err != nil {
		return nil, err
	}
	if !authNeeded {
		return res, nil
	}

	challengeHeaders := res.Header["Www-Authenticate"]
	if len(challengeHeaders) == 0 {
		return res, nil
	}
	challenge, ok := parseDigestChallenge(challengeHeaders[0])
	if !ok {
		return res, nil
	}

	header := t.auth.authorize(method, uri, challenge)
	res, _, err = t.doOnce(ctx, method, uri, accept, contentType, body, &header)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Transport) doOnce(ctx context.Context, method, uri, accept, contentType string, body []byte, authHeader *string) (*result.Result, bool, error) {
	req, err := http.NewRequestWithContext(ctx, method, t.url(uri), bodyReader(body))
	if err != nil {
		return nil, false, rwserr.IO(err, "building request")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authHeader != nil {
		req.Header.Set("Authorization", *authHeader)
	}
	requestID := uuid.New().String()
	req.Header.Set(requestIDHeader, requestID)

	t.mu.RLock()
	client := t.client
	t.mu.RUnlock()

	resp, err := client.Do(req)
	if err != nil {
		t.log.Printf("request %s failed: %s %s: %v", requestID, method, uri, err)
		if ctx.Err() != nil {
			return nil, false, rwserr.Timeout(err, "%s %s", method, uri)
		}
		return nil, false, rwserr.IO(err, "%s %s", method, uri)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, rwserr.IO(err, "reading response body for %s %s", method, uri)
	}

	if resp.StatusCode == http.StatusUnauthorized && authHeader == nil {
		return &result.Result{Status: resp.StatusCode, Reason: resp.Status, Header: resp.Header, Body: data, Method: method, URI: uri}, true, nil
	}

	return &result.Result{
		Status: resp.StatusCode,
		Reason: resp.Status,
		Header: resp.Header,
		Body:   data,
		Method: method,
		URI:    uri,
	}, false, nil
}

func bodyReader(body []byte) io.Reader {
	if body == nil {
		return nil
	}
	return bytes.NewReader(body)
}

// DialWebSocket upgrades to a WebSocket connection at uri, sending the
// given subprotocol token and carrying the session's cookies so the
// controller recognizes the subscription as belonging to this session.
func (t *Transport) DialWebSocket(ctx context.Context, uri, subprotocol string) (*websocket.Conn, error) {
	dialer := &websocket.Dialer{
		Subprotocols:     []string{subprotocol},
		HandshakeTimeout: t.opts.ConnectTimeout,
		TLSClientConfig:  t.opts.TLSConfig,
		Jar:              t.jar,
	}

	wsURL := fmt.Sprintf("%s://%s:%d%s", t.opts.WebSocketScheme(), t.opts.Host, t.opts.Port, uri)
	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return nil, rwserr.Protocol(rwserr.HTTPContext{Method: "GET", URI: uri, Status: status},
			"dialing subscription websocket: %v", err)
	}
	return conn, nil
}

// Close releases idle connections held by the underlying client.
func (t *Transport) Close() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	t.client.CloseIdleConnections()
}
