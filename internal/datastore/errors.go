// SPDX-License-Identifier: Apache-2.0

package datastore

import (
	"github.com/joomcode/errorx"
)

var (
	ErrorsNamespace   = errorx.NewNamespace("datastore")
	ValidationError   = ErrorsNamespace.NewType("validation_error")
	NotFoundError     = ErrorsNamespace.NewType("not_found", errorx.NotFound())
	ConflictError     = ErrorsNamespace.NewType("conflict", errorx.Duplicate())
	BackendError      = ErrorsNamespace.NewType("backend_error")
	ProvisioningError = ErrorsNamespace.NewType("provisioning_error")

	usernameProperty   = errorx.RegisterPrintableProperty("username")
	pathProperty       = errorx.RegisterPrintableProperty("path")
	permissionProperty = errorx.RegisterPrintableProperty("permission")
	stepProperty       = errorx.RegisterPrintableProperty("step")
)

const (
	userNotFoundErrorMsg       = "user '%s' does not exist"
	userConflictErrorMsg       = "user '%s' already exists"
	pathNotFoundErrorMsg       = "path '%s' does not exist"
	unknownPermissionErrorMsg  = "permission '%s' is not recognized by the data store"
	backendErrorMsg            = "data store request failed"
	provisioningFailedErrorMsg = "registration failed at step '%s'"
)

func NewUserNotFoundError(username string) *errorx.Error {
	return NotFoundError.New(userNotFoundErrorMsg, username).
		WithProperty(usernameProperty, username)
}

func NewUserConflictError(username string) *errorx.Error {
	return ConflictError.New(userConflictErrorMsg, username).
		WithProperty(usernameProperty, username)
}

func NewPathNotFoundError(path string) *errorx.Error {
	return NotFoundError.New(pathNotFoundErrorMsg, path).
		WithProperty(pathProperty, path)
}

func NewUnknownPermissionError(permission string) *errorx.Error {
	return ValidationError.New(unknownPermissionErrorMsg, permission).
		WithProperty(permissionProperty, permission)
}

func NewBackendError(cause error) *errorx.Error {
	if cause == nil {
		return BackendError.New(backendErrorMsg)
	}

	return BackendError.Wrap(cause, backendErrorMsg)
}

// NewProvisioningError wraps a failed registration step. The step id is
// carried as a printable property so callers can tell which part of the
// workflow committed side effects before the failure.
func NewProvisioningError(cause error, step string) *errorx.Error {
	if cause == nil {
		return ProvisioningError.New(provisioningFailedErrorMsg, step).
			WithProperty(stepProperty, step)
	}

	return ProvisioningError.Wrap(cause, provisioningFailedErrorMsg, step).
		WithProperty(stepProperty, step)
}

// FailedStep returns the step id attached to a provisioning error, if any.
func FailedStep(err error) (string, bool) {
	val, ok := errorx.ExtractProperty(err, stepProperty)
	if !ok {
		return "", false
	}

	step, ok := val.(string)
	return step, ok
}
