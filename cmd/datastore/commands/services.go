// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/sciportal/portal-datastore/internal/config"
	"github.com/sciportal/portal-datastore/internal/datastore"
	"github.com/sciportal/portal-datastore/internal/irods"
	"github.com/sciportal/portal-datastore/internal/workflows"
)

// backend bundles the data store session and the services built on it.
// Close releases the session.
type backend struct {
	client      *irods.Client
	provisioner *datastore.Provisioner
	access      *datastore.AccessController
}

func openBackend() (*backend, error) {
	cfg := config.Get().Irods

	client, err := irods.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &backend{
		client:      client,
		provisioner: datastore.NewProvisioner(client, cfg.Zone),
		access:      datastore.NewAccessController(client, cfg.Zone),
	}, nil
}

func (b *backend) services() workflows.Services {
	return workflows.Services{
		Provisioner: b.provisioner,
		Access:      b.access,
	}
}

func (b *backend) Close() {
	b.client.Release()
}
