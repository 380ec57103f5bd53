// Package catalog holds the symbolic-name-to-URI mappings and the
// bidirectional enum/string tables for every RWS domain value. Every
// table here is built once from a single list of (value, wire string)
// pairs, so the "enum-to-string and string-to-enum agree exactly"
// invariant holds structurally rather than by convention.
package catalog

import "github.com/streamspace-dev/rws/internal/rwserr"

// ControllerState is the controller's current operating state.
type ControllerState int

const (
	ControllerStateInit ControllerState = iota
	ControllerStateMotorOn
	ControllerStateMotorOff
	ControllerStateGuardStop
	ControllerStateEmergencyStop
	ControllerStateEmergencyStopReset
	ControllerStateSysFail
)

var controllerStateWire = []struct {
	v ControllerState
	s string
}{
	{ControllerStateInit, "init"},
	{ControllerStateMotorOn, "motoron"},
	{ControllerStateMotorOff, "motoroff"},
	{ControllerStateGuardStop, "guardstop"},
	{ControllerStateEmergencyStop, "emergencystop"},
	{ControllerStateEmergencyStopReset, "emergencystopreset"},
	{ControllerStateSysFail, "sysfail"},
}

// String returns the lowercase wire spelling of s.
func (s ControllerState) String() string {
	for _, e := range controllerStateWire {
		if e.v == s {
			return e.s
		}
	}
	return "unknown"
}

// ParseControllerState maps a wire string to a ControllerState. The
// match is case-sensitive and exact: the wire strings are all lowercase,
// and no other casing is accepted.
func ParseControllerState(s string) (ControllerState, error) {
	for _, e := range controllerStateWire {
		if e.s == s {
			return e.v, nil
		}
	}
	return 0, rwserr.Invalid("unknown ControllerState %q", s)
}

// OperationMode is the controller's current operation mode.
type OperationMode int

const (
	OperationModeInit OperationMode = iota
	OperationModeAutoChange
	OperationModeManualFullChange
	OperationModeManualReduced
	OperationModeManualFull
	OperationModeAuto
	OperationModeUndefined
)

var operationModeWire = []struct {
	v OperationMode
	s string
}{
	{OperationModeInit, "INIT"},
	{OperationModeAutoChange, "AUTO_CH"},
	{OperationModeManualFullChange, "MANF_CH"},
	{OperationModeManualReduced, "MANR"},
	{OperationModeManualFull, "MANF"},
	{OperationModeAuto, "AUTO"},
	{OperationModeUndefined, "UNDEF"},
}

func (m OperationMode) String() string {
	for _, e := range operationModeWire {
		if e.v == m {
			return e.s
		}
	}
	return "UNDEF"
}

func ParseOperationMode(s string) (OperationMode, error) {
	for _, e := range operationModeWire {
		if e.s == s {
			return e.v, nil
		}
	}
	return 0, rwserr.Invalid("unknown OperationMode %q", s)
}

// RAPIDExecutionState is the two-valued running/stopped state of the
// RAPID program.
type RAPIDExecutionState int

const (
	RAPIDExecutionStateStopped RAPIDExecutionState = iota
	RAPIDExecutionStateRunning
)

var rapidExecutionStateWire = []struct {
	v RAPIDExecutionState
	s string
}{
	{RAPIDExecutionStateStopped, "stopped"},
	{RAPIDExecutionStateRunning, "running"},
}

func (s RAPIDExecutionState) String() string {
	for _, e := range rapidExecutionStateWire {
		if e.v == s {
			return e.s
		}
	}
	return "stopped"
}

func ParseRAPIDExecutionState(s string) (RAPIDExecutionState, error) {
	for _, e := range rapidExecutionStateWire {
		if e.s == s {
			return e.v, nil
		}
	}
	return 0, rwserr.Invalid("unknown RAPIDExecutionState %q", s)
}

// RAPIDRunMode is the run mode of a RAPID program.
type RAPIDRunMode int

const (
	RAPIDRunModeForever RAPIDRunMode = iota
	RAPIDRunModeAsIs
	RAPIDRunModeOnce
	RAPIDRunModeOnceDone
)

var rapidRunModeWire = []struct {
	v RAPIDRunMode
	s string
}{
	{RAPIDRunModeForever, "forever"},
	{RAPIDRunModeAsIs, "asis"},
	{RAPIDRunModeOnce, "once"},
	{RAPIDRunModeOnceDone, "oncedone"},
}

func (m RAPIDRunMode) String() string {
	for _, e := range rapidRunModeWire {
		if e.v == m {
			return e.s
		}
	}
	return "forever"
}

func ParseRAPIDRunMode(s string) (RAPIDRunMode, error) {
	for _, e := range rapidRunModeWire {
		if e.s == s {
			return e.v, nil
		}
	}
	return 0, rwserr.Invalid("unknown RAPIDRunMode %q", s)
}

// RAPIDTaskExecutionState is the execution state of a single RAPID task.
type RAPIDTaskExecutionState int

const (
	RAPIDTaskUnknown RAPIDTaskExecutionState = iota
	RAPIDTaskReady
	RAPIDTaskStopped
	RAPIDTaskStarted
	RAPIDTaskUninitialized
)

var rapidTaskExecutionStateWire = []struct {
	v RAPIDTaskExecutionState
	s string
}{
	{RAPIDTaskUnknown, "UNKNOWN"},
	{RAPIDTaskReady, "READY"},
	{RAPIDTaskStopped, "STOPPED"},
	{RAPIDTaskStarted, "STARTED"},
	{RAPIDTaskUninitialized, "UNINITIALIZED"},
}

func (s RAPIDTaskExecutionState) String() string {
	for _, e := range rapidTaskExecutionStateWire {
		if e.v == s {
			return e.s
		}
	}
	return "UNKNOWN"
}

func ParseRAPIDTaskExecutionState(s string) (RAPIDTaskExecutionState, error) {
	for _, e := range rapidTaskExecutionStateWire {
		if e.s == s {
			return e.v, nil
		}
	}
	return 0, rwserr.Invalid("unknown RAPIDTaskExecutionState %q", s)
}

// CFGDomain names a configuration domain (topic) on the controller.
type CFGDomain int

const (
	CFGDomainEIO CFGDomain = iota
	CFGDomainMMC
	CFGDomainMOC
	CFGDomainPROC
	CFGDomainSIO
	CFGDomainSYS
)

var cfgDomainWire = []struct {
	v CFGDomain
	s string
}{
	{CFGDomainEIO, "EIO"},
	{CFGDomainMMC, "MMC"},
	{CFGDomainMOC, "MOC"},
	{CFGDomainPROC, "PROC"},
	{CFGDomainSIO, "SIO"},
	{CFGDomainSYS, "SYS"},
}

func (d CFGDomain) String() string {
	for _, e := range cfgDomainWire {
		if e.v == d {
			return e.s
		}
	}
	return "EIO"
}

func ParseCFGDomain(s string) (CFGDomain, error) {
	for _, e := range cfgDomainWire {
		if e.s == s {
			return e.v, nil
		}
	}
	return 0, rwserr.Invalid("unknown CFGDomain %q", s)
}

// Coordinate selects the reference frame for a robtarget query.
type Coordinate int

const (
	CoordinateBase Coordinate = iota
	CoordinateWorld
	CoordinateTool
	CoordinateWobj
	CoordinateActive
)

var coordinateWire = []struct {
	v Coordinate
	s string
}{
	{CoordinateBase, "Base"},
	{CoordinateWorld, "World"},
	{CoordinateTool, "Tool"},
	{CoordinateWobj, "Wobj"},
	{CoordinateActive, "Active"},
}

func (c Coordinate) String() string {
	for _, e := range coordinateWire {
		if e.v == c {
			return e.s
		}
	}
	return "Active"
}

func ParseCoordinate(s string) (Coordinate, error) {
	for _, e := range coordinateWire {
		if e.s == s {
			return e.v, nil
		}
	}
	return 0, rwserr.Invalid("unknown Coordinate %q", s)
}

// Priority is a subscription's delivery priority.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// Int returns the wire encoding (0/1/2) used in the subscription body.
func (p Priority) Int() int { return int(p) }
