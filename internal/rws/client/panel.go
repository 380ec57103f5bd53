package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rwserr"
)

// GetControllerState queries the controller's current state
// (motors on/off, guard stop, emergency stop, ...).
func (c *Client) GetControllerState(ctx context.Context) (catalog.ControllerState, error) {
	res, err := c.httpGet(ctx, catalog.ControllerStateURI())
	if err != nil {
		return 0, err
	}
	if err := res.Expect(200); err != nil {
		return 0, err
	}
	s, err := firstSpanText(res, "ctrlstate")
	if err != nil {
		return 0, err
	}
	return catalog.ParseControllerState(s)
}

// SetControllerState requests a controller state transition (e.g.
// motors on). Not every transition is legal from every source state;
// an illegal one surfaces as a ProtocolError from the controller.
func (c *Client) SetControllerState(ctx context.Context, state catalog.ControllerState) error {
	body := fmt.Sprintf("ctrl-state=%s", state)
	res, err := c.httpPostForm(ctx, catalog.SetControllerStateURI(), body)
	if err != nil {
		return err
	}
	return res.Expect(200, 204)
}

// GetOperationMode queries the controller's current operation mode
// (auto, manual, manual full speed, ...).
func (c *Client) GetOperationMode(ctx context.Context) (catalog.OperationMode, error) {
	res, err := c.httpGet(ctx, catalog.OperationModeURI())
	if err != nil {
		return 0, err
	}
	if err := res.Expect(200); err != nil {
		return 0, err
	}
	s, err := firstSpanText(res, "opmode")
	if err != nil {
		return 0, err
	}
	return catalog.ParseOperationMode(s)
}

// GetSpeedRatio queries the controller's current speed override, 0-100.
func (c *Client) GetSpeedRatio(ctx context.Context) (int, error) {
	res, err := c.httpGet(ctx, catalog.SpeedRatioURI())
	if err != nil {
		return 0, err
	}
	if err := res.Expect(200); err != nil {
		return 0, err
	}
	s, err := firstSpanText(res, "speedratio")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, rwserr.Protocol(res.HTTPContext(), "parsing speed ratio %q: %v", s, err)
	}
	return n, nil
}

// SetSpeedRatio sets the controller's speed override, 0-100.
func (c *Client) SetSpeedRatio(ctx context.Context, ratio int) error {
	if ratio < 0 || ratio > 100 {
		return rwserr.Invalid("speed ratio %d out of range [0, 100]", ratio)
	}
	body := fmt.Sprintf("speed-ratio=%d", ratio)
	res, err := c.httpPostForm(ctx, catalog.SetSpeedRatioURI(), body)
	if err != nil {
		return err
	}
	return res.Expect(200, 204)
}
