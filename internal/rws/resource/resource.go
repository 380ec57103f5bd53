// Package resource holds the small value types that identify a
// controller resource (an I/O signal, a RAPID symbol, a mechanical
// unit...) and know how to turn themselves into the URI the Protocol
// Client requests, mirroring how the original client keeps resource
// identity separate from the HTTP plumbing that fetches it.
package resource

import "github.com/streamspace-dev/rws/internal/rws/catalog"

// IOSignal identifies a single I/O signal by name.
type IOSignal struct {
	Name string
}

func (r IOSignal) URI() string { return catalog.IOSignalURI(r.Name) }

// RAPIDSymbol identifies a RAPID symbol by task/module/name.
type RAPIDSymbol struct {
	Task   string
	Module string
	Name   string
}

func (r RAPIDSymbol) URI() string {
	return catalog.RAPIDSymbolDataURI(r.Task, r.Module, r.Name)
}

// RAPIDExecutionState identifies the single controller-wide RAPID
// execution state resource.
type RAPIDExecutionState struct{}

func (RAPIDExecutionState) URI() string { return catalog.RAPIDExecutionURI() }

// ControllerState identifies the single controller state resource.
type ControllerState struct{}

func (ControllerState) URI() string { return catalog.ControllerStateURI() }

// OperationMode identifies the single operation mode resource.
type OperationMode struct{}

func (OperationMode) URI() string { return catalog.OperationModeURI() }

// File identifies a file on a named file service directory.
type File struct {
	Directory string
	Filename  string
}

func (r File) URI() string { return catalog.FileURI(r.Directory, r.Filename) }

// MechanicalUnit identifies a mechanical unit by its controller name.
type MechanicalUnit struct {
	Name string
}

func (r MechanicalUnit) URI() string { return catalog.MechanicalUnitURI(r.Name) }

func (r MechanicalUnit) JointTargetURI() string {
	return catalog.MechanicalUnitJointTargetURI(r.Name)
}

func (r MechanicalUnit) StaticInfoURI() string {
	return catalog.MechanicalUnitStaticInfoURI(r.Name)
}

func (r MechanicalUnit) RobTargetURI(coord catalog.Coordinate, tool, wobj string) string {
	return catalog.MechanicalUnitRobTargetURI(r.Name, coord, tool, wobj)
}

// RAPIDTask identifies a single RAPID task by name.
type RAPIDTask struct {
	Name string
}

func (r RAPIDTask) URI() string { return catalog.RAPIDTaskURI(r.Name) }

func (r RAPIDTask) ModulesURI() string { return catalog.RAPIDModulesURI(r.Name) }

func (r RAPIDTask) PcpURI() string { return catalog.RAPIDPcpURI(r.Name) }

// ConfigurationInstances identifies the instance collection of a
// configuration type within a domain (e.g. EIO/EIO_SIGNAL).
type ConfigurationInstances struct {
	Domain catalog.CFGDomain
	Type   string
}

func (r ConfigurationInstances) URI() string {
	return catalog.ConfigurationInstancesURI(r.Domain, r.Type)
}
