// SPDX-License-Identifier: Apache-2.0

package datastore

import (
	"context"

	"github.com/automa-saga/logx"

	"github.com/sciportal/portal-datastore/pkg/sanity"
)

// AccessController reads and mutates ACL entries on data store paths.
//
// Path-level operations are not serialized; concurrent grants on the same
// path are resolved by the backend (re-granting an identical permission is
// a no-op there). Grants take effect immediately and cannot be undone here.
type AccessController struct {
	gateway Gateway
	zone    string
}

// NewAccessController returns an access controller for the gateway's zone.
func NewAccessController(gateway Gateway, zone string) *AccessController {
	return &AccessController{gateway: gateway, zone: zone}
}

// AvailablePermissions returns the backend's live permission vocabulary.
// The vocabulary is backend-versioned and fetched on every call; it must
// never be cached or hardcoded by callers.
func (a *AccessController) AvailablePermissions(ctx context.Context) (map[string]int, error) {
	return a.gateway.AvailablePermissions(ctx)
}

// PathExists reports whether the path resolves as a collection or as a data
// object. A simply-absent path is a false return, never an error.
func (a *AccessController) PathExists(ctx context.Context, path string) (bool, error) {
	clean, err := cleanPath(path)
	if err != nil {
		return false, err
	}

	return pathExists(ctx, a.gateway, clean)
}

// GetPermissions returns the full ACL of the collection or data object at
// the path. Both interpretations are checked before the path is declared
// missing.
func (a *AccessController) GetPermissions(ctx context.Context, path string) ([]Access, error) {
	clean, err := cleanPath(path)
	if err != nil {
		return nil, err
	}

	exists, err := pathExists(ctx, a.gateway, clean)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NewPathNotFoundError(clean)
	}

	return a.gateway.ListAccesses(ctx, clean)
}

// Chmod applies a single grant to the path. The permission name is
// forwarded unvalidated; checking it against AvailablePermissions first is
// the caller's responsibility. An empty username denotes the path-level
// default/inherit grant rather than a specific user.
func (a *AccessController) Chmod(ctx context.Context, username string, permission string, path string) error {
	clean, err := cleanPath(path)
	if err != nil {
		return err
	}

	err = a.gateway.SetAccess(ctx, Access{
		Path:       clean,
		Username:   username,
		Zone:       a.zone,
		Permission: permission,
	})
	if err != nil {
		return err
	}

	logx.As().Debug().
		Str("username", username).
		Str("permission", permission).
		Str("path", clean).
		Msg("Access granted")

	return nil
}

// pathExists is the collection-or-data-object disjunction shared by the
// provisioner and the access controller.
func pathExists(ctx context.Context, gateway Gateway, path string) (bool, error) {
	isColl, err := gateway.CollectionExists(ctx, path)
	if err != nil {
		return false, err
	}
	if isColl {
		return true, nil
	}

	return gateway.DataObjectExists(ctx, path)
}

func cleanPath(path string) (string, error) {
	clean, err := sanity.SanitizePath(path)
	if err != nil {
		return "", ValidationError.Wrap(err, "invalid path: %q", path)
	}
	return clean, nil
}
