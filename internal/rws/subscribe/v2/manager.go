// Package v2 implements the Subscription Manager for RobotWare 7+
// controllers: the subscription body uses the same "&"-joined resource
// fields as v1, but the content type carries a "v=2.0" parameter and
// the WebSocket subprotocol token is "rws_subscription".
package v2

import (
	"context"
	"fmt"
	"strings"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rws/subscribe"
	"github.com/streamspace-dev/rws/internal/rws/transport"
	"github.com/streamspace-dev/rws/internal/rwserr"
)

// Subprotocol is the WebSocket subprotocol token v2 controllers expect
// on the subscription upgrade request.
const Subprotocol = "rws_subscription"

const contentType = "application/x-www-form-urlencoded;v=2.0"

// Manager opens and closes v2 subscription groups.
//
// The original v2_0 SubscriptionGroup::close() referenced an
// out-of-scope variable and never cleared its id member, so a group
// could be closed on the controller yet still look open locally. This
// Manager hands its groups to subscribe.Group, which holds exactly one
// id field cleared atomically by both Close and Detach -- the bug has
// no equivalent state to exist in here.
type Manager struct {
	transport *transport.Transport
}

// New builds a v2 subscription Manager over an existing session
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
