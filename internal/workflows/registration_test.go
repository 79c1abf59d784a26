// SPDX-License-Identifier: Apache-2.0

package workflows_test

import (
	"context"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/sciportal/portal-datastore/internal/datastore"
	"github.com/sciportal/portal-datastore/internal/testutil"
	"github.com/sciportal/portal-datastore/internal/workflows"
	"github.com/sciportal/portal-datastore/internal/workflows/steps"
)

const testZone = "tempZone"

func newServices(t *testing.T) (workflows.Services, *testutil.FakeGateway) {
	t.Helper()
	gw := testutil.NewFakeGateway(testZone)
	return workflows.Services{
		Provisioner: datastore.NewProvisioner(gw, testZone),
		Access:      datastore.NewAccessController(gw, testZone),
	}, gw
}

func TestRegister(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, gw := newServices(t)

	reg, report, err := workflows.Register(ctx, svc, "alice", "shared_service", "")
	req.NoError(err)
	req.NotNil(report)
	req.Equal("/tempZone/home/alice/shared_service", reg.Path)

	// identity and home
	req.Contains(gw.Users, "alice")
	req.True(gw.Collections["/tempZone/home/alice"])
	req.Equal(datastore.PermissionOwn, gw.Permission("/tempZone/home/alice", "alice"))

	// shared collection with layered grants
	req.True(gw.Collections[reg.Path])
	req.Equal(datastore.PermissionInherit, gw.Permission(reg.Path, ""))
	req.Equal(datastore.PermissionOwn, gw.Permission(reg.Path, "alice"))
}

func TestRegister_SecondaryOwner(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, gw := newServices(t)

	reg, _, err := workflows.Register(ctx, svc, "alice", "shared_service", "svc_account")
	req.NoError(err)

	req.Equal(datastore.PermissionOwn, gw.Permission(reg.Path, "alice"))
	req.Equal(datastore.PermissionOwn, gw.Permission(reg.Path, "svc_account"))
}

func TestRegister_Idempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, gw := newServices(t)

	first, _, err := workflows.Register(ctx, svc, "alice", "shared_service", "")
	req.NoError(err)

	second, _, err := workflows.Register(ctx, svc, "alice", "shared_service", "")
	req.NoError(err)
	req.Equal(first.Path, second.Path)

	// the second run finds everything in place and creates nothing
	req.Equal(1, gw.CallCount("CreateUser"))
	req.Equal(2, gw.CallCount("CreateCollection"))

	// a later run may add a secondary owner without disturbing the first
	_, _, err = workflows.Register(ctx, svc, "alice", "shared_service", "svc_account")
	req.NoError(err)
	req.Equal(datastore.PermissionOwn, gw.Permission(first.Path, "alice"))
	req.Equal(datastore.PermissionOwn, gw.Permission(first.Path, "svc_account"))
}

func TestRegister_RejectsTraversal(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		subPath string
	}{
		{name: "escape to sibling home", subPath: "../bob"},
		{name: "deep escape", subPath: "data/../../../etc"},
		{name: "absolute path", subPath: "/etc/passwd"},
		{name: "empty path", subPath: ""},
		{name: "shell metacharacters", subPath: "x;rm -rf /"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			svc, gw := newServices(t)

			_, report, err := workflows.Register(ctx, svc, "alice", tc.subPath, "")
			req.Error(err)
			req.True(errorx.IsOfType(err, datastore.ValidationError))
			req.Nil(report)

			// no step ran, the backend was never touched
			req.Empty(gw.Calls)
		})
	}
}

func TestRegister_RejectsInvalidUsernames(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, _ := newServices(t)

	_, _, err := workflows.Register(ctx, svc, "alice;rm", "shared_service", "")
	req.Error(err)
	req.True(errorx.IsOfType(err, datastore.ValidationError))

	_, _, err = workflows.Register(ctx, svc, "alice", "shared_service", "bad user")
	req.Error(err)
	req.True(errorx.IsOfType(err, datastore.ValidationError))
}

func TestRegister_FailedStepIsNamed(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, gw := newServices(t)

	gw.FailWith("SetAccess", datastore.NewBackendError(nil))

	_, report, err := workflows.Register(ctx, svc, "alice", "shared_service", "")
	req.Error(err)
	req.True(errorx.IsOfType(err, datastore.ProvisioningError))
	req.NotNil(report)

	// SetAccess first fails inside user provisioning
	step, ok := datastore.FailedStep(err)
	req.True(ok)
	req.Equal(steps.EnsureUserStepId, step)

	// committed side effects are visible: the user and home exist even
	// though the workflow failed
	req.Contains(gw.Users, "alice")
	req.True(gw.Collections["/tempZone/home/alice"])
}

func TestRegister_GrantFailureKeepsEarlierSteps(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, gw := newServices(t)

	// provision the user up front so SetAccess is first hit by the
	// inherit grant
	_, err := svc.Provisioner.EnsureUserExists(ctx, "alice")
	req.NoError(err)

	gw.FailWith("SetAccess", datastore.NewBackendError(nil))

	_, _, err = workflows.Register(ctx, svc, "alice", "shared_service", "")
	req.Error(err)

	step, ok := datastore.FailedStep(err)
	req.True(ok)
	req.Equal(steps.GrantInheritStepId, step)

	// the collection created by the earlier step is not rolled back
	req.True(gw.Collections["/tempZone/home/alice/shared_service"])
}
