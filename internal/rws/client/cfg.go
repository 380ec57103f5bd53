package client

import (
	"context"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rws/resource"
)

// ConfigurationInstance is one instance within a configuration domain
// and type (e.g. an EIO_SIGNAL instance in the EIO domain).
type ConfigurationInstance struct {
	Name string
}

// GetConfigurationInstances lists the instances of a configuration
// type within a domain.
func (c *Client) GetConfigurationInstances(ctx context.Context, domain catalog.CFGDomain, cfgType string) ([]ConfigurationInstance, error) {
	uri := resource.ConfigurationInstances{Domain: domain, Type: cfgType}.URI()
	res, err := c.httpGet(ctx, uri)
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

	instances := make([]ConfigurationInstance, 0, len(items))
	for _, li := range items {
		name := li.SelectAttrValue("title", "")
		if name == "" {
			continue
		}
		instances = append(instances, ConfigurationInstance{Name: name})
	}
	return instances, nil
}
