// SPDX-License-Identifier: Apache-2.0

package steps

const (
	EnsureUserStepId       = "ensure-user"
	EnsureCollectionStepId = "ensure-collection"
	GrantInheritStepId     = "grant-inherit"
	GrantOwnerStepId       = "grant-owner"
	GrantSecondaryStepId   = "grant-secondary-owner"
)
