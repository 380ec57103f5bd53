package client

import (
	"context"
	"fmt"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rws/resource"
)

// IOSignal is the decoded state of a single I/O signal.
type IOSignal struct {
	Name  string
	Value string
	Type  string
}

// GetIOSignal reads a single I/O signal's current value.
func (c *Client) GetIOSignal(ctx context.Context, name string) (IOSignal, error) {
	res, err := c.httpGet(ctx, resource.IOSignal{Name: name}.URI())
	if err != nil {
		return IOSignal{}, err
	}
	if err := res.Expect(200); err != nil {
		return IOSignal{}, err
	}
	val, err := firstSpanText(res, "lvalue")
	if err != nil {
		return IOSignal{}, err
	}
	typ, _ := firstSpanText(res, "type")
	return IOSignal{Name: name, Value: val, Type: typ}, nil
}

// SetIOSignal sets a digital or analog I/O signal to value (e.g. "1",
// "0" for digital; a numeric string for analog/group signals).
func (c *Client) SetIOSignal(ctx context.Context, name, value string) error {
	body := fmt.Sprintf("lvalue=%s", value)
	res, err := c.httpPostForm(ctx, catalog.SetIOSignalURI(name), body)
	if err != nil {
		return err
	}
	return res.Expect(200, 204)
}

// GetIOSignals lists every I/O signal known to the controller.
func (c *Client) GetIOSignals(ctx context.Context) ([]IOSignal, error) {
	res, err := c.httpGet(ctx, catalog.IOSignalsURI())
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

	signals := make([]IOSignal, 0, len(items))
	for _, li := range items {
		name := li.SelectAttrValue("title", "")
		if name == "" {
			continue
		}
		signals = append(signals, IOSignal{Name: name})
	}
	return signals, nil
}
