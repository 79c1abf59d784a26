// SPDX-License-Identifier: Apache-2.0

package datastore_test

import (
	"context"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/sciportal/portal-datastore/internal/datastore"
	"github.com/sciportal/portal-datastore/internal/testutil"
)

const testZone = "tempZone"

func newProvisioner(t *testing.T) (*datastore.Provisioner, *testutil.FakeGateway) {
	t.Helper()
	gw := testutil.NewFakeGateway(testZone)
	return datastore.NewProvisioner(gw, testZone), gw
}

func TestProvisioner_UserExists(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, gw := newProvisioner(t)

	exists, err := provisioner.UserExists(ctx, "alice")
	req.NoError(err)
	req.False(exists)

	gw.Users["alice"] = datastore.User{Name: "alice", Zone: testZone, Type: datastore.RodsUserType}

	exists, err = provisioner.UserExists(ctx, "alice")
	req.NoError(err)
	req.True(exists)
}

func TestProvisioner_UserExists_BackendFailure(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, gw := newProvisioner(t)

	gw.FailWith("GetUser", datastore.NewBackendError(nil))

	_, err := provisioner.UserExists(ctx, "alice")
	req.Error(err)
	req.True(errorx.IsOfType(err, datastore.BackendError))
}

func TestProvisioner_UserExists_InvalidUsername(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, gw := newProvisioner(t)

	_, err := provisioner.UserExists(ctx, "alice;rm")
	req.Error(err)
	req.True(errorx.IsOfType(err, datastore.ValidationError))
	req.Zero(gw.CallCount("GetUser"))
}

func TestProvisioner_CreateUser(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, gw := newProvisioner(t)

	user, err := provisioner.CreateUser(ctx, "alice")
	req.NoError(err)
	req.Equal("alice", user.Name)
	req.Equal(testZone, user.Zone)
	req.Equal(datastore.RodsUserType, user.Type)
	req.Equal(datastore.RodsUserType, gw.Users["alice"].Type)
}

func TestProvisioner_CreateUser_Duplicate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, _ := newProvisioner(t)

	_, err := provisioner.CreateUser(ctx, "alice")
	req.NoError(err)

	_, err = provisioner.CreateUser(ctx, "alice")
	req.Error(err)
	req.True(errorx.IsOfType(err, datastore.ConflictError))
}

func TestProvisioner_DeleteUser(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, gw := newProvisioner(t)

	gw.Users["alice"] = datastore.User{Name: "alice", Zone: testZone, Type: datastore.RodsUserType}
	home := provisioner.HomePath("alice")
	gw.Collections[home] = true

	req.NoError(provisioner.DeleteUser(ctx, "alice"))
	req.NotContains(gw.Users, "alice")

	// the home collection is kept unless DeleteHome is called
	req.True(gw.Collections[home])
}

func TestProvisioner_DeleteUser_Missing(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, _ := newProvisioner(t)

	err := provisioner.DeleteUser(ctx, "alice")
	req.Error(err)
	req.True(errorx.IsOfType(err, datastore.NotFoundError))
}

func TestProvisioner_HomePath(t *testing.T) {
	req := require.New(t)
	provisioner, gw := newProvisioner(t)

	req.Equal("/tempZone/home/alice", provisioner.HomePath("alice"))

	// derivation is pure, the backend is never consulted
	req.Empty(gw.Calls)
}

func TestProvisioner_DeleteHome(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, gw := newProvisioner(t)

	home := provisioner.HomePath("alice")
	gw.Collections[home] = true

	req.NoError(provisioner.DeleteHome(ctx, "alice"))
	req.NotContains(gw.Collections, home)
}

func TestProvisioner_DeleteHome_MissingIsNoop(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, gw := newProvisioner(t)

	req.NoError(provisioner.DeleteHome(ctx, "alice"))
	req.Zero(gw.CallCount("RemoveCollection"))
}

func TestProvisioner_EnsureUserExists(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, gw := newProvisioner(t)

	user, err := provisioner.EnsureUserExists(ctx, "alice")
	req.NoError(err)
	req.Equal("alice", user.Name)

	home := provisioner.HomePath("alice")
	req.True(gw.Collections[home])
	req.Equal(datastore.PermissionOwn, gw.Permission(home, "alice"))
}

func TestProvisioner_EnsureUserExists_Idempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, gw := newProvisioner(t)

	first, err := provisioner.EnsureUserExists(ctx, "alice")
	req.NoError(err)

	second, err := provisioner.EnsureUserExists(ctx, "alice")
	req.NoError(err)
	req.Equal(first.Name, second.Name)

	// the second call observes the user and stops, no re-provisioning
	req.Equal(1, gw.CallCount("CreateUser"))
	req.Equal(1, gw.CallCount("CreateCollection"))
	req.Equal(1, gw.CallCount("SetAccess"))
}

func TestProvisioner_EnsureUserExists_HomeAlreadyPresent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, gw := newProvisioner(t)

	home := provisioner.HomePath("alice")
	gw.Collections[home] = true

	_, err := provisioner.EnsureUserExists(ctx, "alice")
	req.NoError(err)
	req.Contains(gw.Users, "alice")

	// an existing home is left untouched, including its ACL
	req.Zero(gw.CallCount("CreateCollection"))
	req.Zero(gw.CallCount("SetAccess"))
}

func TestProvisioner_SetPassword(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	provisioner, gw := newProvisioner(t)

	gw.Users["alice"] = datastore.User{Name: "alice", Zone: testZone, Type: datastore.RodsUserType}

	req.NoError(provisioner.SetPassword(ctx, "alice", "s3cret"))

	err := provisioner.SetPassword(ctx, "alice", "")
	req.Error(err)
	req.True(errorx.IsOfType(err, datastore.ValidationError))

	err = provisioner.SetPassword(ctx, "bob", "s3cret")
	req.Error(err)
	req.True(errorx.IsOfType(err, datastore.NotFoundError))
}
