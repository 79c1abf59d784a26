// SPDX-License-Identifier: Apache-2.0

// Package datastore implements identity and access provisioning against a
// hierarchical multi-tenant data store.
//
// The data store itself (users, collections, data objects, ACLs) is reached
// through the narrow Gateway interface; this package holds no durable state
// of its own and re-derives everything from the backend on each call.
package datastore

import "context"

// RodsUserType is the fixed, non-privileged role tag assigned to every
// self-service account created by the provisioner.
const RodsUserType = "rodsuser"

// PermissionOwn and PermissionInherit are the two permission names the
// registration workflow grants. They are not a vocabulary: the authoritative
// set of valid names is always fetched live via Gateway.AvailablePermissions.
const (
	PermissionOwn     = "own"
	PermissionInherit = "inherit"
)

// User is an identity in the configured zone of the data store.
type User struct {
	Name string `json:"user"`
	Zone string `json:"zone"`
	Type string `json:"type"`
}

// Access is a single ACL entry: a permission name granted to a principal on
// a path. An empty Username denotes the collection-level default ("inherit")
// grant that applies to all descendants rather than a specific user.
type Access struct {
	Path       string `json:"path"`
	Username   string `json:"username"`
	Zone       string `json:"zone"`
	Permission string `json:"permission"`
}

// Registration is the outcome of the service-registration workflow. It is
// ephemeral; its effect is materialized entirely as backend state.
type Registration struct {
	Username      string `json:"user"`
	Path          string `json:"irods_path"`
	SecondaryUser string `json:"irods_user,omitempty"`
}

// Gateway is the connection-backed view of the data store consumed by the
// provisioner, the access controller and the registration workflow.
//
// Implementations must return errors from this package's taxonomy:
// NotFoundError for a missing user on GetUser, ConflictError for a
// duplicate on CreateUser, and BackendError for transport or protocol
// failures. Absence reported by an existence check is a false return, never
// an error.
//
// Implementations own a single long-lived backend session with an explicit
// lifecycle: opened at process start, closed at shutdown.
type Gateway interface {
	// CollectionExists reports whether a collection resolves at the path.
	CollectionExists(ctx context.Context, path string) (bool, error)
	// DataObjectExists reports whether a data object resolves at the path.
	DataObjectExists(ctx context.Context, path string) (bool, error)

	// GetUser looks up a user by name in the configured zone.
	GetUser(ctx context.Context, username string) (*User, error)
	// CreateUser creates a user with the given role tag.
	CreateUser(ctx context.Context, username string, userType string) error
	// RemoveUser deletes a user. It does not touch the user's home collection.
	RemoveUser(ctx context.Context, username string) error
	// ModifyUser changes a single user attribute, e.g. "password".
	ModifyUser(ctx context.Context, username string, attribute string, value string) error

	// CreateCollection creates a collection, including missing parents.
	CreateCollection(ctx context.Context, path string) error
	// RemoveCollection removes a collection.
	RemoveCollection(ctx context.Context, path string, recurse bool, force bool) error

	// ListAccesses returns the full ACL of the collection or data object at the path.
	ListAccesses(ctx context.Context, path string) ([]Access, error)
	// SetAccess applies a single grant. An access with an empty Username sets
	// the path-level default/inherit grant.
	SetAccess(ctx context.Context, access Access) error
	// AvailablePermissions returns the backend's declared permission
	// vocabulary. The map keys are the valid permission names.
	AvailablePermissions(ctx context.Context) (map[string]int, error)
}
