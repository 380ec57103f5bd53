package client

import (
	"context"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rws/resource"
)

// JointTarget is a mechanical unit's current joint values, reported as
// raw wire strings (degrees for arm axes, mm for linear axes); the
// caller decides how to parse them per-axis-type.
type JointTarget struct {
	MechanicalUnit string
	Axes           []string
}

// RobTarget is a mechanical unit's current Cartesian position relative
// to the requested coordinate frame.
type RobTarget struct {
	MechanicalUnit string
	X, Y, Z        string
	Q1, Q2, Q3, Q4 string
}

// GetMechanicalUnitJointTarget reads a mechanical unit's current joint
// values.
func (c *Client) GetMechanicalUnitJointTarget(ctx context.Context, mechunit string) (JointTarget, error) {
	res, err := c.httpGet(ctx, resource.MechanicalUnit{Name: mechunit}.JointTargetURI())
	if err != nil {
		return JointTarget{}, err
	}
	if err := res.Expect(200); err != nil {
		return JointTarget{}, err
	}

	axes := make([]string, 0, 6)
	for i := 1; i <= 6; i++ {
		v, err := firstSpanText(res, axisClass(i))
		if err != nil {
			break
		}
		axes = append(axes, v)
	}
	return JointTarget{MechanicalUnit: mechunit, Axes: axes}, nil
}

// GetMechanicalUnitRobTarget reads a mechanical unit's current
// Cartesian position in the given coordinate frame.
func (c *Client) GetMechanicalUnitRobTarget(ctx context.Context, mechunit string, coord catalog.Coordinate, tool, wobj string) (RobTarget, error) {
	uri := resource.MechanicalUnit{Name: mechunit}.RobTargetURI(coord, tool, wobj)
	res, err := c.httpGet(ctx, uri)
	if err != nil {
		return RobTarget{}, err
	}
	if err := res.Expect(200); err != nil {
		return RobTarget{}, err
	}

	rt := RobTarget{MechanicalUnit: mechunit}
	rt.X, _ = firstSpanText(res, "x")
	rt.Y, _ = firstSpanText(res, "y")
	rt.Z, _ = firstSpanText(res, "z")
	rt.Q1, _ = firstSpanText(res, "q1")
	rt.Q2, _ = firstSpanText(res, "q2")
	rt.Q3, _ = firstSpanText(res, "q3")
	rt.Q4, _ = firstSpanText(res, "q4")
	return rt, nil
}

// MechanicalUnitStaticInfo is the subset of a mechanical unit's
// unchanging configuration exposed over RWS.
type MechanicalUnitStaticInfo struct {
	Type        string
	TaskName    string
	AxesTotal   string
	AxesMoving  string
}

// GetMechanicalUnitStaticInfo reads a mechanical unit's static
// configuration (axis counts, owning task, type).
func (c *Client) GetMechanicalUnitStaticInfo(ctx context.Context, mechunit string) (MechanicalUnitStaticInfo, error) {
	res, err := c.httpGet(ctx, resource.MechanicalUnit{Name: mechunit}.StaticInfoURI())
	if err != nil {
		return MechanicalUnitStaticInfo{}, err
	}
	if err := res.Expect(200); err != nil {
		return MechanicalUnitStaticInfo{}, err
	}

	info := MechanicalUnitStaticInfo{}
	info.Type, _ = firstSpanText(res, "type")
	info.TaskName, _ = firstSpanText(res, "task-name")
	info.AxesTotal, _ = firstSpanText(res, "axes-total")
	info.AxesMoving, _ = firstSpanText(res, "axes-moving")
	return info, nil
}

// MechanicalUnitDynamicInfo is a mechanical unit's current runtime
// state (mode, jog mode, coordinate system in use).
type MechanicalUnitDynamicInfo struct {
	Mode       string
	JogMode    string
	Coordinate string
}

// GetMechanicalUnitDynamicInfo reads a mechanical unit's current
// runtime state.
func (c *Client) GetMechanicalUnitDynamicInfo(ctx context.Context, mechunit string) (MechanicalUnitDynamicInfo, error) {
	res, err := c.httpGet(ctx, resource.MechanicalUnit{Name: mechunit}.URI())
	if err != nil {
		return MechanicalUnitDynamicInfo{}, err
	}
	if err := res.Expect(200); err != nil {
		return MechanicalUnitDynamicInfo{}, err
	}

	info := MechanicalUnitDynamicInfo{}
	info.Mode, _ = firstSpanText(res, "mode")
	info.JogMode, _ = firstSpanText(res, "jog-mode")
	info.Coordinate, _ = firstSpanText(res, "coord-mode")
	return info, nil
}

func axisClass(i int) string {
	names := []string{"", "rax_1", "rax_2", "rax_3", "rax_4", "rax_5", "rax_6"}
	return names[i]
}
