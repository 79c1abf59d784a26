// SPDX-License-Identifier: Apache-2.0

package datastore

import (
	"context"
	"fmt"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/sciportal/portal-datastore/pkg/sanity"
)

// Provisioner creates and deletes identities and their home collections in
// a single zone of the data store.
//
// The backend is the single source of truth: existence is re-checked on
// every call and nothing is cached. Operations on the same username are
// serialized within this process instance; concurrent processes still race
// and rely on the backend rejecting duplicate creation with a conflict.
type Provisioner struct {
	gateway Gateway
	zone    string
	locks   *keyedMutex
}

// NewProvisioner returns a provisioner bound to the gateway's zone.
func NewProvisioner(gateway Gateway, zone string) *Provisioner {
	return &Provisioner{
		gateway: gateway,
		zone:    zone,
		locks:   newKeyedMutex(),
	}
}

// Zone returns the administrative zone this provisioner operates in.
func (p *Provisioner) Zone() string {
	return p.zone
}

// UserExists reports whether a user with the given name exists in the zone.
// Absence is a false return, never an error; any backend failure other than
// "no such user" propagates.
func (p *Provisioner) UserExists(ctx context.Context, username string) (bool, error) {
	if err := validUsername(username); err != nil {
		return false, err
	}

	_, err := p.gateway.GetUser(ctx, username)
	if err != nil {
		if errorx.IsOfType(err, NotFoundError) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// CreateUser creates a user with the fixed non-privileged role tag. Callers
// are expected to have verified absence first; a duplicate surfaces as a
// ConflictError from the backend, it is not re-checked here.
func (p *Provisioner) CreateUser(ctx context.Context, username string) (*User, error) {
	if err := validUsername(username); err != nil {
		return nil, err
	}

	unlock := p.locks.Lock(username)
	defer unlock()

	return p.createUser(ctx, username)
}

func (p *Provisioner) createUser(ctx context.Context, username string) (*User, error) {
	if err := p.gateway.CreateUser(ctx, username, RodsUserType); err != nil {
		return nil, err
	}

	logx.As().Info().
		Str("username", username).
		Str("zone", p.zone).
		Msg("User created")

	return &User{Name: username, Zone: p.zone, Type: RodsUserType}, nil
}

// DeleteUser removes the identity. It fails with NotFoundError if the user
// does not exist and never removes the home collection; callers must invoke
// DeleteHome explicitly.
func (p *Provisioner) DeleteUser(ctx context.Context, username string) error {
	if err := validUsername(username); err != nil {
		return err
	}

	unlock := p.locks.Lock(username)
	defer unlock()

	if _, err := p.gateway.GetUser(ctx, username); err != nil {
		return err
	}

	if err := p.gateway.RemoveUser(ctx, username); err != nil {
		return err
	}

	logx.As().Info().
		Str("username", username).
		Str("zone", p.zone).
		Msg("User deleted")

	return nil
}

// HomePath derives the user's home collection path. Pure: it never touches
// the backend and is stable across calls.
func (p *Provisioner) HomePath(username string) string {
	return fmt.Sprintf("/%s/home/%s", p.zone, username)
}

// DeleteHome recursively and forcibly removes the user's home collection.
// A missing home is a no-op, never an error.
func (p *Provisioner) DeleteHome(ctx context.Context, username string) error {
	if err := validUsername(username); err != nil {
		return err
	}

	unlock := p.locks.Lock(username)
	defer unlock()

	home := p.HomePath(username)

	exists, err := p.gateway.CollectionExists(ctx, home)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if err := p.gateway.RemoveCollection(ctx, home, true, true); err != nil {
		return err
	}

	logx.As().Info().
		Str("username", username).
		Str("path", home).
		Msg("Home collection deleted")

	return nil
}

// EnsureUserExists is the idempotent provisioning entry point. An existing
// user is returned unchanged, assumed fully provisioned. Otherwise the user
// is created, and a missing home collection is created and handed to the
// new user with full ownership.
func (p *Provisioner) EnsureUserExists(ctx context.Context, username string) (*User, error) {
	if err := validUsername(username); err != nil {
		return nil, err
	}

	unlock := p.locks.Lock(username)
	defer unlock()

	user, err := p.gateway.GetUser(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errorx.IsOfType(err, NotFoundError) {
		return nil, err
	}

	user, err = p.createUser(ctx, username)
	if err != nil {
		return nil, err
	}

	home := p.HomePath(username)

	exists, err := pathExists(ctx, p.gateway, home)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := p.gateway.CreateCollection(ctx, home); err != nil {
			return nil, err
		}

		err = p.gateway.SetAccess(ctx, Access{
			Path:       home,
			Username:   username,
			Zone:       p.zone,
			Permission: PermissionOwn,
		})
		if err != nil {
			return nil, err
		}

		logx.As().Info().
			Str("username", username).
			Str("path", home).
			Msg("Home collection created and handed to user")
	}

	return user, nil
}

// EnsureCollection creates the collection at path unless something already
// resolves there. It reports whether anything was created; an existing path
// of either kind is left untouched.
func (p *Provisioner) EnsureCollection(ctx context.Context, path string) (bool, error) {
	exists, err := pathExists(ctx, p.gateway, path)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := p.gateway.CreateCollection(ctx, path); err != nil {
		return false, err
	}

	logx.As().Info().
		Str("path", path).
		Msg("Collection created")

	return true, nil
}

// SetPassword changes the user's credential through the backend.
func (p *Provisioner) SetPassword(ctx context.Context, username string, password string) error {
	if err := validUsername(username); err != nil {
		return err
	}
	if password == "" {
		return ValidationError.New("password cannot be empty")
	}

	return p.gateway.ModifyUser(ctx, username, "password", password)
}

func validUsername(username string) error {
	if err := sanity.ValidateIdentifier(username); err != nil {
		return ValidationError.Wrap(err, "invalid username: %q", username)
	}
	return nil
}
