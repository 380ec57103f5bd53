// Package client implements the Protocol Client: one method per RWS
// operation, each issuing a single request and parsing exactly the
// response it needs, mirroring RWSClient's one-request-one-parse
// method surface in the original library.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/streamspace-dev/rws/internal/config"
	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rws/result"
	"github.com/streamspace-dev/rws/internal/rws/transport"
	"github.com/streamspace-dev/rws/internal/rwserr"
	"github.com/streamspace-dev/rws/internal/rwslog"
)

const acceptXHTML = "application/xhtml+xml"

// Client is a Protocol Client bound to one controller session.
type Client struct {
	opts      *config.ConnectionOptions
	transport *transport.Transport
	log       *rwslog.Logger

	mu         sync.Mutex
	mastership map[string]int
}

// New builds a Client from already-validated ConnectionOptions.
func New(opts *config.ConnectionOptions) (*Client, error) {
	tr, err := transport.New(opts)
	if err != nil {
		return nil, err
	}
	return &Client{
		opts:       opts,
		transport:  tr,
		log:        rwslog.New("client"),
		mastership: make(map[string]int),
	}, nil
}

// Transport exposes the underlying Transport, for the Subscription
// Manager to dial its WebSocket through the same session.
func (c *Client) Transport() *transport.Transport { return c.transport }

// SetTimeout forwards to the Transport, rebuilding its HTTP client
// while preserving the session cookie jar.
func (c *Client) SetTimeout(d time.Duration) {
	c.transport.SetTimeout(d)
}

// Logout best-effort ends the controller session; failures are logged
// and swallowed, matching the teacher's "don't fail shutdown on a
// cleanup call" posture.
func (c *Client) Logout(ctx context.Context) {
	if _, err := c.httpGet(ctx, "/logout"); err != nil {
		c.log.Printf("logout: %v", err)
	}
}

// Close ends the controller session and releases the underlying
// Transport's idle connections. It is the bracket-closing half of New,
// and is safe to call once the caller is done with the Client.
func (c *Client) Close(ctx context.Context) {
	c.Logout(ctx)
	c.transport.Close()
}

// RegisterLocalUser registers the client as a local user under the
// given username, application and location, required before issuing
// mastership requests on some controllers.
func (c *Client) RegisterLocalUser(ctx context.Context, username, application, location string) error {
	body := fmt.Sprintf("username=%s&application=%s&location=%s&ulocale=local", username, application, location)
	res, err := c.httpPostForm(ctx, catalog.UsersRegisterURI(), body)
	if err != nil {
		return err
	}
	return res.Expect(200, 201, 204)
}

// RegisterRemoteUser registers the client as a remote user identified
// by location (typically a host/IP), the counterpart to
// RegisterLocalUser for clients connecting from outside the
// controller's own network.
func (c *Client) RegisterRemoteUser(ctx context.Context, username, application, location string) error {
	body := fmt.Sprintf("username=%s&application=%s&location=%s&ulocale=remote", username, application, location)
	res, err := c.httpPostForm(ctx, catalog.UsersRegisterURI(), body)
	if err != nil {
		return err
	}
	return res.Expect(200, 201, 204)
}

// RequestMastership increments the named subsystem's mastership
// counter. The first request for a subsystem issues the network
// request; further nested requests only increment the local counter,
// mirroring the original's "request on 0->1 transition" behavior.
func (c *Client) RequestMastership(ctx context.Context, subsystem string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.mastership[subsystem]
	if count > 0 {
		c.mastership[subsystem] = count + 1
		return nil
	}

	res, err := c.httpPostForm(ctx, mastershipURI(subsystem, "request"), "")
	if err != nil {
		return err
	}
	if err := res.Expect(200, 204); err != nil {
		return err
	}
	c.mastership[subsystem] = 1
	return nil
}

// ReleaseMastership decrements the named subsystem's mastership
// counter. Releasing past zero is a programming error: it raises a
// LogicError rather than issuing a request with an already-meaningless
// release.
func (c *Client) ReleaseMastership(ctx context.Context, subsystem string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.mastership[subsystem]
	if count <= 0 {
		return rwserr.Logic("release mastership on %q with no outstanding request", subsystem)
	}
	if count > 1 {
		c.mastership[subsystem] = count - 1
		return nil
	}

	res, err := c.httpPostForm(ctx, mastershipURI(subsystem, "release"), "")
	if err != nil {
		return err
	}
	if err := res.Expect(200, 204); err != nil {
		return err
	}
	c.mastership[subsystem] = 0
	return nil
}

func mastershipURI(subsystem, action string) string {
	return fmt.Sprintf("/rw/%s/mastership?action=%s", subsystem, action)
}

func (c *Client) httpGet(ctx context.Context, uri string) (*result.Result, error) {
	return c.transport.Get(ctx, uri, acceptXHTML)
}

func (c *Client) httpPostForm(ctx context.Context, uri, body string) (*result.Result, error) {
	return c.transport.Post(ctx, uri, "application/x-www-form-urlencoded", []byte(body))
}

func (c *Client) httpPut(ctx context.Context, uri, contentType string, body []byte) (*result.Result, error) {
	return c.transport.Put(ctx, uri, contentType, body)
}

func (c *Client) httpDelete(ctx context.Context, uri string) (*result.Result, error) {
	return c.transport.Delete(ctx, uri)
}
