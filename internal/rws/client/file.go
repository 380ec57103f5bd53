package client

import (
	"context"

	"github.com/streamspace-dev/rws/internal/rws/resource"
)

// GetFile downloads a file from the controller's file service.
func (c *Client) GetFile(ctx context.Context, directory, filename string) ([]byte, error) {
	res, err := c.httpGet(ctx, resource.File{Directory: directory, Filename: filename}.URI())
	if err != nil {
		return nil, err
	}
	if err := res.Expect(200); err != nil {
		return nil, err
	}
	return res.Body, nil
}

// UploadFile uploads data to the controller's file service, creating
// or overwriting filename under directory.
func (c *Client) UploadFile(ctx context.Context, directory, filename string, data []byte) error {
	uri := resource.File{Directory: directory, Filename: filename}.URI()
	res, err := c.httpPut(ctx, uri, "application/octet-stream", data)
	if err != nil {
		return err
	}
	return res.Expect(200, 201, 204)
}

// DeleteFile removes a file from the controller's file service.
func (c *Client) DeleteFile(ctx context.Context, directory, filename string) error {
	uri := resource.File{Directory: directory, Filename: filename}.URI()
	res, err := c.httpDelete(ctx, uri)
	if err != nil {
		return err
	}
	return res.Expect(200, 204)
}
