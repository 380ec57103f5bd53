package client

import (
	"context"
	"fmt"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rws/resource"
)

// RAPIDExecutionInfo describes the controller-wide RAPID execution
// state.
type RAPIDExecutionInfo struct {
	State   catalog.RAPIDExecutionState
	CycleOn bool
}

// GetRAPIDExecutionState reads the controller-wide RAPID execution
// state (running or stopped).
func (c *Client) GetRAPIDExecutionState(ctx context.Context) (RAPIDExecutionInfo, error) {
	res, err := c.httpGet(ctx, resource.RAPIDExecutionState{}.URI())
	if err != nil {
		return RAPIDExecutionInfo{}, err
	}
	if err := res.Expect(200); err != nil {
		return RAPIDExecutionInfo{}, err
	}

	raw, err := firstSpanText(res, "ctrlexecstate")
	if err != nil {
		return RAPIDExecutionInfo{}, err
	}
	state, err := catalog.ParseRAPIDExecutionState(raw)
	if err != nil {
		return RAPIDExecutionInfo{}, err
	}

	cycle, _ := firstSpanText(res, "cycle")
	return RAPIDExecutionInfo{State: state, CycleOn: cycle == "1" || cycle == "true"}, nil
}

// StartRAPIDExecution starts RAPID execution with the given run mode.
func (c *Client) StartRAPIDExecution(ctx context.Context, mode catalog.RAPIDRunMode) error {
	body := fmt.Sprintf("regain=continue&execmode=continue&cycle=%s&condition=none&stopatbp=disabled", mode)
	res, err := c.httpPostForm(ctx, catalog.RAPIDExecutionURI()+"?action=start", body)
	if err != nil {
		return err
	}
	return res.Expect(200, 204)
}

// StopRAPIDExecution stops RAPID execution.
func (c *Client) StopRAPIDExecution(ctx context.Context) error {
	res, err := c.httpPostForm(ctx, catalog.RAPIDExecutionURI()+"?action=stop", "stopmode=stop")
	if err != nil {
		return err
	}
	return res.Expect(200, 204)
}

// ResetRAPIDProgramPointer resets the RAPID program pointer to the
// main entry point of every task.
func (c *Client) ResetRAPIDProgramPointer(ctx context.Context) error {
	res, err := c.httpPostForm(ctx, catalog.RAPIDExecutionURI()+"?action=resetpp", "")
	if err != nil {
		return err
	}
	return res.Expect(200, 204)
}

// RAPIDTaskInfo describes a single RAPID task.
type RAPIDTaskInfo struct {
	Name           string
	Type           string
	TaskExecutionState catalog.RAPIDTaskExecutionState
	Active         bool
}

// GetRAPIDTasks lists every RAPID task on the controller.
func (c *Client) GetRAPIDTasks(ctx context.Context) ([]RAPIDTaskInfo, error) {
	res, err := c.httpGet(ctx, catalog.RAPIDTasksURI())
	if err != nil {
		return nil, err
	}
	if err := res.Expect(200); err != nil {
		return nil, err
	}

	items, err := res.Items()
	if err != nil {
		return nil, err
	}

	tasks := make([]RAPIDTaskInfo, 0, len(items))
	for _, li := range items {
		name := li.SelectAttrValue("title", "")
		if name == "" {
			continue
		}
		tasks = append(tasks, RAPIDTaskInfo{Name: name})
	}
	return tasks, nil
}

// RAPIDModuleInfo describes a single loaded RAPID module.
type RAPIDModuleInfo struct {
	Name string
	Type string
}

// GetRAPIDModules lists the modules loaded into a RAPID task.
func (c *Client) GetRAPIDModules(ctx context.Context, task string) ([]RAPIDModuleInfo, error) {
	res, err := c.httpGet(ctx, resource.RAPIDTask{Name: task}.ModulesURI())
	if err != nil {
		return nil, err
	}
	if err := res.Expect(200); err != nil {
		return nil, err
	}

	items, err := res.Items()
	if err != nil {
		return nil, err
	}

	modules := make([]RAPIDModuleInfo, 0, len(items))
	for _, li := range items {
		name := li.SelectAttrValue("title", "")
		if name == "" {
			continue
		}
		modules = append(modules, RAPIDModuleInfo{Name: name})
	}
	return modules, nil
}

// RAPIDPcpInfo is the program counter position reported for a RAPID
// task's current execution point.
type RAPIDPcpInfo struct {
	Task    string
	Module  string
	Routine string
	Row     string
	Column  string
}

// GetRAPIDPcp reads a task's current program counter position.
func (c *Client) GetRAPIDPcp(ctx context.Context, task string) (RAPIDPcpInfo, error) {
	res, err := c.httpGet(ctx, resource.RAPIDTask{Name: task}.PcpURI())
	if err != nil {
		return RAPIDPcpInfo{}, err
	}
	if err := res.Expect(200); err != nil {
		return RAPIDPcpInfo{}, err
	}

	info := RAPIDPcpInfo{Task: task}
	info.Module, _ = firstSpanText(res, "module")
	info.Routine, _ = firstSpanText(res, "routine")
	info.Row, _ = firstSpanText(res, "row")
	info.Column, _ = firstSpanText(res, "column")
	return info, nil
}

// GetRAPIDSymbolData reads a single RAPID symbol's current value as a
// raw wire string; decoding a specific RAPID data type is left to the
// caller.
func (c *Client) GetRAPIDSymbolData(ctx context.Context, task, module, name string) (string, error) {
	res, err := c.httpGet(ctx, resource.RAPIDSymbol{Task: task, Module: module, Name: name}.URI())
	if err != nil {
		return "", err
	}
	if err := res.Expect(200); err != nil {
		return "", err
	}
	return firstSpanText(res, "value")
}

// SetRAPIDSymbolData writes a single RAPID symbol's value, encoded as
// the caller's responsibility (e.g. "TRUE", "42", `"a string"`).
func (c *Client) SetRAPIDSymbolData(ctx context.Context, task, module, name, value string) error {
	uri := resource.RAPIDSymbol{Task: task, Module: module, Name: name}.URI() + "?action=set"
	body := fmt.Sprintf("value=%s", value)
	res, err := c.httpPostForm(ctx, uri, body)
	if err != nil {
		return err
	}
	return res.Expect(200, 204)
}
