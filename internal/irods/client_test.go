// SPDX-License-Identifier: Apache-2.0

package irods

import (
	"context"
	"testing"

	irodsclient_types "github.com/cyverse/go-irodsclient/irods/types"
	"github.com/stretchr/testify/require"
)

func TestClient_AvailablePermissions(t *testing.T) {
	req := require.New(t)

	c := &Client{zone: "tempZone"}

	vocab, err := c.AvailablePermissions(context.Background())
	req.NoError(err)
	req.Equal(map[string]int{
		"null":       1000,
		"read":       1050,
		"write":      1120,
		"own":        1200,
		"inherit":    inheritToken,
		"no_inherit": noInheritToken,
	}, vocab)
}

func TestChmodName(t *testing.T) {
	req := require.New(t)

	req.Equal("own", chmodName(irodsclient_types.IRODSAccessLevelOwner))
	req.Equal("read", chmodName(irodsclient_types.IRODSAccessLevelReadObject))
	req.Equal("write", chmodName(irodsclient_types.IRODSAccessLevelModifyObject))
	req.Equal("null", chmodName(irodsclient_types.IRODSAccessLevelNull))

	// an unmapped backend level passes through unchanged
	req.Equal("modify_metadata", chmodName(irodsclient_types.IRODSAccessLevelType("modify_metadata")))
}

func TestClient_Zone(t *testing.T) {
	require.Equal(t, "tempZone", (&Client{zone: "tempZone"}).Zone())
}
