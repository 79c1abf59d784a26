// SPDX-License-Identifier: Apache-2.0

package version

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sciportal/portal-datastore/internal/testutil"
)

func TestVersionCmd(t *testing.T) {
	req := require.New(t)

	root := testutil.PrepareSubCmdForTest(GetCmd())

	output, err := testutil.ExecuteCmd(root, "version")
	req.NoError(err)
	req.Contains(output, "version:")
	req.Contains(output, "commit:")
}

func TestVersionCmd_JSONOutput(t *testing.T) {
	req := require.New(t)

	root := testutil.PrepareSubCmdForTest(GetCmd())

	output, err := testutil.ExecuteCmd(root, "version", "--output", "json")
	req.NoError(err)
	req.Contains(output, `"version"`)
	req.Contains(output, `"commit"`)
}
