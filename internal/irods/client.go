// SPDX-License-Identifier: Apache-2.0

// Package irods implements the datastore.Gateway interface on top of the
// go-irodsclient library. One Client holds the single long-lived backend
// session for the process; construct it at startup and Release it at
// shutdown.
package irods

import (
	"context"
	"errors"

	irodsclient_fs "github.com/cyverse/go-irodsclient/fs"
	irodsclient_common "github.com/cyverse/go-irodsclient/irods/common"
	irodsclient_irodsfs "github.com/cyverse/go-irodsclient/irods/fs"
	irodsclient_types "github.com/cyverse/go-irodsclient/irods/types"

	"github.com/sciportal/portal-datastore/internal/config"
	"github.com/sciportal/portal-datastore/internal/datastore"
)

const applicationName = "portal-datastore"

// accessLevels maps the permission names this service accepts to the
// client's declared access levels. "inherit"/"no_inherit" are collection
// flags rather than per-user levels and are handled separately in
// SetAccess. The token values mirror the catalog's access type tokens.
var accessLevels = map[string]struct {
	level irodsclient_types.IRODSAccessLevelType
	token int
}{
	"null":  {irodsclient_types.IRODSAccessLevelNull, 1000},
	"read":  {irodsclient_types.IRODSAccessLevelReadObject, 1050},
	"write": {irodsclient_types.IRODSAccessLevelModifyObject, 1120},
	"own":   {irodsclient_types.IRODSAccessLevelOwner, 1200},
}

const (
	inheritToken   = 9999
	noInheritToken = 9998
)

// Client is the go-irodsclient-backed Gateway.
type Client struct {
	account    *irodsclient_types.IRODSAccount
	filesystem *irodsclient_fs.FileSystem
	zone       string
}

var _ datastore.Gateway = (*Client)(nil)

// NewClient opens the backend session described by the configuration.
func NewClient(cfg config.IrodsConfig) (*Client, error) {
	account, err := irodsclient_types.CreateIRODSAccount(
		cfg.Host, cfg.Port, cfg.User, cfg.Zone,
		irodsclient_types.AuthSchemeNative, cfg.Password, "")
	if err != nil {
		return nil, datastore.NewBackendError(err)
	}

	filesystem, err := irodsclient_fs.NewFileSystemWithDefault(account, applicationName)
	if err != nil {
		return nil, datastore.NewBackendError(err)
	}

	return &Client{
		account:    account,
		filesystem: filesystem,
		zone:       cfg.Zone,
	}, nil
}

// Zone returns the administrative zone of the session.
func (c *Client) Zone() string {
	return c.zone
}

// Release closes the backend session.
func (c *Client) Release() {
	c.filesystem.Release()
}

func (c *Client) CollectionExists(ctx context.Context, path string) (bool, error) {
	return c.filesystem.ExistsDir(path), nil
}

func (c *Client) DataObjectExists(ctx context.Context, path string) (bool, error) {
	return c.filesystem.ExistsFile(path), nil
}

func (c *Client) GetUser(ctx context.Context, username string) (*datastore.User, error) {
	conn, err := c.filesystem.GetMetadataConnection()
	if err != nil {
		return nil, datastore.NewBackendError(err)
	}
	defer c.filesystem.ReturnMetadataConnection(conn)

	user, err := irodsclient_irodsfs.GetUser(conn, username, c.zone)
	if err != nil {
		if isNotFound(err) {
			return nil, datastore.NewUserNotFoundError(username)
		}
		return nil, datastore.NewBackendError(err)
	}

	return &datastore.User{
		Name: user.Name,
		Zone: user.Zone,
		Type: string(user.Type),
	}, nil
}

func (c *Client) CreateUser(ctx context.Context, username string, userType string) error {
	conn, err := c.filesystem.GetMetadataConnection()
	if err != nil {
		return datastore.NewBackendError(err)
	}
	defer c.filesystem.ReturnMetadataConnection(conn)

	err = irodsclient_irodsfs.CreateUser(conn, username, c.zone, irodsclient_types.IRODSUserType(userType))
	if err != nil {
		if isConflict(err) {
			return datastore.NewUserConflictError(username)
		}
		return datastore.NewBackendError(err)
	}

	return nil
}

func (c *Client) RemoveUser(ctx context.Context, username string) error {
	conn, err := c.filesystem.GetMetadataConnection()
	if err != nil {
		return datastore.NewBackendError(err)
	}
	defer c.filesystem.ReturnMetadataConnection(conn)

	user, err := irodsclient_irodsfs.GetUser(conn, username, c.zone)
	if err != nil {
		if isNotFound(err) {
			return datastore.NewUserNotFoundError(username)
		}
		return datastore.NewBackendError(err)
	}

	err = irodsclient_irodsfs.RemoveUser(conn, username, c.zone, user.Type)
	if err != nil {
		if isNotFound(err) {
			return datastore.NewUserNotFoundError(username)
		}
		return datastore.NewBackendError(err)
	}

	return nil
}

func (c *Client) ModifyUser(ctx context.Context, username string, attribute string, value string) error {
	conn, err := c.filesystem.GetMetadataConnection()
	if err != nil {
		return datastore.NewBackendError(err)
	}
	defer c.filesystem.ReturnMetadataConnection(conn)

	switch attribute {
	case "password":
		err = irodsclient_irodsfs.ChangeUserPassword(conn, username, c.zone, value)
	case "type":
		err = irodsclient_irodsfs.ChangeUserType(conn, username, c.zone, irodsclient_types.IRODSUserType(value))
	default:
		return datastore.ValidationError.New("unsupported user attribute '%s'", attribute)
	}
	if err != nil {
		if isNotFound(err) {
			return datastore.NewUserNotFoundError(username)
		}
		return datastore.NewBackendError(err)
	}

	return nil
}

func (c *Client) CreateCollection(ctx context.Context, path string) error {
	if err := c.filesystem.MakeDir(path, true); err != nil {
		return datastore.NewBackendError(err)
	}
	return nil
}

func (c *Client) RemoveCollection(ctx context.Context, path string, recurse bool, force bool) error {
	err := c.filesystem.RemoveDir(path, recurse, force)
	if err != nil {
		if irodsclient_types.IsFileNotFoundError(err) {
			return datastore.NewPathNotFoundError(path)
		}
		return datastore.NewBackendError(err)
	}
	return nil
}

func (c *Client) ListAccesses(ctx context.Context, path string) ([]datastore.Access, error) {
	entries, err := c.filesystem.ListACLs(path)
	if err != nil {
		if irodsclient_types.IsFileNotFoundError(err) {
			return nil, datastore.NewPathNotFoundError(path)
		}
		return nil, datastore.NewBackendError(err)
	}

	accesses := make([]datastore.Access, 0, len(entries))
	for _, entry := range entries {
		accesses = append(accesses, datastore.Access{
			Path:       entry.Path,
			Username:   entry.UserName,
			Zone:       entry.UserZone,
			Permission: chmodName(entry.AccessLevel),
		})
	}

	return accesses, nil
}

// SetAccess applies a single grant. An empty username sets the collection
// inherit flag; anything else resolves to a per-user access level change
// on whichever of collection/data object the path is.
func (c *Client) SetAccess(ctx context.Context, access datastore.Access) error {
	conn, err := c.filesystem.GetMetadataConnection()
	if err != nil {
		return datastore.NewBackendError(err)
	}
	defer c.filesystem.ReturnMetadataConnection(conn)

	if access.Username == "" {
		inherit := access.Permission != "no_inherit"
		if err := irodsclient_irodsfs.ChangeAccessInherit(conn, access.Path, inherit, false, false); err != nil {
			return datastore.NewBackendError(err)
		}
		return nil
	}

	entry, ok := accessLevels[access.Permission]
	if !ok {
		return datastore.NewUnknownPermissionError(access.Permission)
	}

	err = irodsclient_irodsfs.ChangeAccess(conn, access.Path, entry.level, access.Username, c.zone, false, false)
	if err != nil {
		if irodsclient_types.IsFileNotFoundError(err) {
			return datastore.NewPathNotFoundError(access.Path)
		}
		return datastore.NewBackendError(err)
	}

	return nil
}

// AvailablePermissions returns the permission vocabulary the backend
// client declares, keyed by name. The inherit pseudo-permissions are part
// of the vocabulary because chmod accepts them.
func (c *Client) AvailablePermissions(ctx context.Context) (map[string]int, error) {
	vocab := make(map[string]int, len(accessLevels)+2)
	for name, entry := range accessLevels {
		vocab[name] = entry.token
	}
	vocab["inherit"] = inheritToken
	vocab["no_inherit"] = noInheritToken
	return vocab, nil
}

func chmodName(level irodsclient_types.IRODSAccessLevelType) string {
	for name, entry := range accessLevels {
		if entry.level == level {
			return name
		}
	}
	return string(level)
}

func isNotFound(err error) bool {
	var irodsErr *irodsclient_types.IRODSError
	if errors.As(err, &irodsErr) {
		return irodsErr.Code == irodsclient_common.CAT_INVALID_USER ||
			irodsErr.Code == irodsclient_common.CAT_NO_ROWS_FOUND
	}
	return irodsclient_types.IsFileNotFoundError(err)
}

func isConflict(err error) bool {
	var irodsErr *irodsclient_types.IRODSError
	if errors.As(err, &irodsErr) {
		return irodsErr.Code == irodsclient_common.CATALOG_ALREADY_HAS_ITEM_BY_THAT_NAME
	}
	return false
}
