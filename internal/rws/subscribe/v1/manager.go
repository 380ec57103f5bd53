// Package v1 implements the Subscription Manager for RobotWare 6
// controllers: resources are separated by "&" in the subscription
// body, and the WebSocket subprotocol token is "robapi2_subscription".
package v1

import (
	"context"
	"fmt"
	"strings"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rws/subscribe"
	"github.com/streamspace-dev/rws/internal/rws/transport"
	"github.com/streamspace-dev/rws/internal/rwserr"
)

// Subprotocol is the WebSocket subprotocol token v1 controllers expect
// on the subscription upgrade request.
const Subprotocol = "robapi2_subscription"

const contentType = "application/x-www-form-urlencoded"

// Manager opens and closes v1 subscription groups.
type Manager struct {
	transport *transport.Transport
}

// New builds a v1 subscription Manager over an existing session
// Transport.
func New(tr *transport.Transport) *Manager {
	return &Manager{transport: tr}
}

// Open requests a new subscription group for the given resources,
// returning a Group the caller can Watch and must eventually Close.
func (m *Manager) Open(ctx context.Context, resources []subscribe.Resource) (*subscribe.Group, error) {
	if len(resources) == 0 {
		return nil, rwserr.Invalid("subscription requires at least one resource")
	}

	parts := make([]string, 0, len(resources))
	for i, r := range resources {
		parts = append(parts, fmt.Sprintf("resources=%d&%d=%s&%d-p=%d", i, i, r.URI, i, r.Priority.Int()))
	}
	body := strings.Join(parts, "&")

	res, err := m.transport.Post(ctx, catalog.SubscriptionURI(), contentType, []byte(body))
	if err != nil {
		return nil, err
	}
	if err := res.Expect(201); err != nil {
		return nil, err
	}

	groupID, err := groupIDFromLocation(res.Header["Location"])
	if err != nil {
		return nil, err
	}

	return subscribe.NewGroup(m.transport, m, groupID), nil
}

// CloseGroup deletes a subscription group by id.
func (m *Manager) CloseGroup(ctx context.Context, groupID string) error {
	res, err := m.transport.Delete(ctx, catalog.SubscriptionGroupURI(groupID))
	if err != nil {
		return err
	}
	return res.Expect(200, 204)
}

func groupIDFromLocation(location []string) (string, error) {
	if len(location) == 0 {
		return "", rwserr.Protocol(rwserr.HTTPContext{}, "subscription response missing Location header")
	}
	const marker = "/poll/"
	idx := strings.Index(location[0], marker)
	if idx < 0 {
		return "", rwserr.Protocol(rwserr.HTTPContext{}, "Location header %q missing %q", location[0], marker)
	}
	return location[0][idx+len(marker):], nil
}
