// SPDX-License-Identifier: Apache-2.0

// Package workflows composes the identity provisioner and the access
// controller into the multi-step service-registration workflow.
package workflows

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"

	"github.com/sciportal/portal-datastore/internal/datastore"
	"github.com/sciportal/portal-datastore/internal/workflows/steps"
	"github.com/sciportal/portal-datastore/pkg/sanity"
)

const RegistrationWorkflowId = "service-registration"

// Services bundles the components the registration workflow composes.
type Services struct {
	Provisioner *datastore.Provisioner
	Access      *datastore.AccessController
}

// NewRegistrationWorkflow builds the workflow that provisions a shared
// collection under the user's home with layered ownership: the default
// inherit grant first, then the primary owner, then the optional secondary
// owner. Steps run in order and are individually idempotent.
func NewRegistrationWorkflow(svc Services, reg *datastore.Registration) *automa.WorkflowBuilder {
	builders := []automa.Builder{
		steps.EnsureUser(svc.Provisioner, reg.Username),
		steps.EnsureCollection(svc.Provisioner, reg.Path),
		steps.GrantInherit(svc.Access, reg.Path),
		steps.GrantOwnership(svc.Access, steps.GrantOwnerStepId, reg.Username, reg.Path),
	}

	if reg.SecondaryUser != "" {
		builders = append(builders,
			steps.GrantOwnership(svc.Access, steps.GrantSecondaryStepId, reg.SecondaryUser, reg.Path))
	}

	return automa.NewWorkflowBuilder().
		WithId(RegistrationWorkflowId).
		Steps(builders...)
}

// Register validates the request, resolves the shared path inside the
// user's home subtree, and runs the registration workflow.
//
// The returned report lists every step that ran and its status; since no
// step is rolled back on failure, the report is the caller's only record of
// which side effects were committed. On failure the error is a
// ProvisioningError wrapping the cause and naming the failed step.
//
// Re-invoking Register with identical arguments after a prior success
// reaches the same terminal backend state without error.
func Register(ctx context.Context, svc Services, username string, subPath string, secondaryUser string) (*datastore.Registration, *automa.Report, error) {
	reg, err := resolveRegistration(svc, username, subPath, secondaryUser)
	if err != nil {
		return nil, nil, err
	}

	wf, err := NewRegistrationWorkflow(svc, reg).Build()
	if err != nil {
		return nil, nil, errorx.IllegalState.Wrap(err, "failed to build registration workflow")
	}

	report := wf.Execute(ctx)
	if err := reportError(report); err != nil {
		return nil, report, err
	}

	return reg, report, nil
}

// resolveRegistration rejects malformed input and joins the sub-path onto
// the home collection, refusing anything that would escape the home
// subtree. No backend interaction happens here.
func resolveRegistration(svc Services, username string, subPath string, secondaryUser string) (*datastore.Registration, error) {
	if err := sanity.ValidateIdentifier(username); err != nil {
		return nil, datastore.ValidationError.Wrap(err, "invalid username: %q", username)
	}

	if secondaryUser != "" {
		if err := sanity.ValidateIdentifier(secondaryUser); err != nil {
			return nil, datastore.ValidationError.Wrap(err, "invalid secondary user: %q", secondaryUser)
		}
	}

	fullPath, err := sanity.JoinUnder(svc.Provisioner.HomePath(username), subPath)
	if err != nil {
		return nil, datastore.ValidationError.Wrap(err, "invalid registration path: %q", subPath)
	}

	return &datastore.Registration{
		Username:      username,
		Path:          fullPath,
		SecondaryUser: secondaryUser,
	}, nil
}

// reportError converts a failed workflow report into a ProvisioningError
// naming the first failed step.
func reportError(report *automa.Report) error {
	if report == nil {
		return datastore.NewProvisioningError(nil, RegistrationWorkflowId)
	}

	if report.Error == nil && report.Status != automa.StatusFailed {
		return nil
	}

	failedStep := RegistrationWorkflowId
	cause := report.Error
	for _, stepReport := range report.StepReports {
		if stepReport.Status == automa.StatusFailed {
			failedStep = stepReport.Id
			if stepReport.Error != nil {
				cause = stepReport.Error
			}
			break
		}
	}

	return datastore.NewProvisioningError(cause, failedStep)
}
