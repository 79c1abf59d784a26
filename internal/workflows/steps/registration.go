// SPDX-License-Identifier: Apache-2.0

// Package steps holds the individual automa steps composed by the
// registration workflow. Every step tolerates "already in desired state"
// so the workflow as a whole stays idempotent; none of them roll anything
// back, partial state is surfaced through the workflow report instead.
package steps

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"

	"github.com/sciportal/portal-datastore/internal/datastore"
)

// EnsureUser provisions the identity and, for a new user, its owned home
// collection. An existing user is left untouched.
func EnsureUser(provisioner *datastore.Provisioner, username string) automa.Builder {
	return automa.NewStepBuilder().WithId(EnsureUserStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			user, err := provisioner.EnsureUserExists(ctx, username)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"username": user.Name,
				"zone":     user.Zone,
			}))
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Error().
				Str("username", username).
				Err(rpt.Error).
				Msg("Failed to prepare user for service registration")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Info().
				Str("username", username).
				Msg("User is ready for service registration")
		})
}

// EnsureCollection creates the shared collection unless the path already
// resolves, in which case the step is skipped.
func EnsureCollection(provisioner *datastore.Provisioner, path string) automa.Builder {
	return automa.NewStepBuilder().WithId(EnsureCollectionStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			created, err := provisioner.EnsureCollection(ctx, path)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if !created {
				return automa.SkippedReport(stp, automa.WithDetail("path already exists"))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"path": path,
			}))
		})
}

// GrantInherit sets the collection-level default grant so descendants of
// the shared collection inherit its ACLs automatically.
func GrantInherit(access *datastore.AccessController, path string) automa.Builder {
	return grantStep(access, GrantInheritStepId, "", datastore.PermissionInherit, path)
}

// GrantOwnership grants a user full ownership of the shared collection.
// Ownership grants are additive; granting a second owner does not revoke
// the first.
func GrantOwnership(access *datastore.AccessController, stepId string, username string, path string) automa.Builder {
	return grantStep(access, stepId, username, datastore.PermissionOwn, path)
}

func grantStep(access *datastore.AccessController, stepId string, username string, permission string, path string) automa.Builder {
	return automa.NewStepBuilder().WithId(stepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := access.Chmod(ctx, username, permission, path); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"username":   username,
				"permission": permission,
				"path":       path,
			}))
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Error().
				Str("username", username).
				Str("permission", permission).
				Str("path", path).
				Err(rpt.Error).
				Msg("Failed to apply grant")
		})
}
