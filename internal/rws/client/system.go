package client

import (
	"context"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
)

// RobotWareSystemInfo describes the controller's installed RobotWare
// system.
type RobotWareSystemInfo struct {
	Name        string
	Version     string
	Description string
}

// GetRobotWareSystem reads the controller's RobotWare system
// information.
func (c *Client) GetRobotWareSystem(ctx context.Context) (RobotWareSystemInfo, error) {
	res, err := c.httpGet(ctx, catalog.RobotWareSystemURI())
	if err != nil {
		return RobotWareSystemInfo{}, err
	}
	if err := res.Expect(200); err != nil {
		return RobotWareSystemInfo{}, err
	}

	info := RobotWareSystemInfo{}
	info.Name, _ = firstSpanText(res, "sysname")
	info.Version, _ = firstSpanText(res, "rwversionname")
	info.Description, _ = firstSpanText(res, "description")
	return info, nil
}

// ControllerServiceInfo describes the controller's own identity, as
// reported by the root service document.
type ControllerServiceInfo struct {
	ControllerName   string
	RobotWareVersion string
}

// GetControllerService reads the controller's top-level identity
// information.
func (c *Client) GetControllerService(ctx context.Context) (ControllerServiceInfo, error) {
	res, err := c.httpGet(ctx, catalog.ControllerServiceURI())
	if err != nil {
		return ControllerServiceInfo{}, err
	}
	if err := res.Expect(200); err != nil {
		return ControllerServiceInfo{}, err
	}

	info := ControllerServiceInfo{}
	info.ControllerName, _ = firstSpanText(res, "ctrl-name")
	info.RobotWareVersion, _ = firstSpanText(res, "rwversionname")
	return info, nil
}
