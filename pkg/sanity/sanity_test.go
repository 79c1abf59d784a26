// SPDX-License-Identifier: Apache-2.0

package sanity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanity_ValidateIdentifier(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:  "valid simple name",
			input: "alice",
		},
		{
			name:  "valid name with underscore",
			input: "svc_account",
		},
		{
			name:  "valid name with hyphen and dot",
			input: "alice.smith-2",
		},
		{
			name:  "valid name starting with digit",
			input: "1alice",
		},
		{
			name:  "valid mixed case",
			input: "TempZone",
		},
		{
			name:      "empty name",
			input:     "",
			shouldErr: true,
		},
		{
			name:      "leading underscore",
			input:     "_alice",
			shouldErr: true,
		},
		{
			name:      "leading dash",
			input:     "-alice",
			shouldErr: true,
		},
		{
			name:      "embedded slash",
			input:     "alice/bob",
			shouldErr: true,
		},
		{
			name:      "embedded space",
			input:     "alice bob",
			shouldErr: true,
		},
		{
			name:      "shell injection attempt",
			input:     "alice;rm",
			shouldErr: true,
		},
		{
			name:      "non ascii characters",
			input:     "日本語",
			shouldErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateIdentifier(tc.input)
			if tc.shouldErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSanity_SanitizePath(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  string
		shouldErr bool
		errMsg    string
	}{
		{
			name:     "valid absolute path",
			input:    "/tempZone/home/alice",
			expected: "/tempZone/home/alice",
		},
		{
			name:     "path with space",
			input:    "/tempZone/home/alice/my data",
			expected: "/tempZone/home/alice/my data",
		},
		{
			name:     "redundant slashes are cleaned",
			input:    "/tempZone//home///alice",
			expected: "/tempZone/home/alice",
		},
		{
			name:     "dot segments are cleaned",
			input:    "/tempZone/./home/alice",
			expected: "/tempZone/home/alice",
		},
		{
			name:     "trailing slash is cleaned",
			input:    "/tempZone/home/alice/",
			expected: "/tempZone/home/alice",
		},
		{
			name:     "root",
			input:    "/",
			expected: "/",
		},
		{
			name:      "empty path",
			input:     "",
			shouldErr: true,
			errMsg:    "path cannot be empty",
		},
		{
			name:      "relative path",
			input:     "tempZone/home/alice",
			shouldErr: true,
			errMsg:    "path must be absolute",
		},
		{
			name:      "traversal in the middle",
			input:     "/tempZone/home/alice/../bob",
			shouldErr: true,
			errMsg:    "path cannot contain '..' segments",
		},
		{
			name:      "traversal at the end",
			input:     "/tempZone/home/alice/..",
			shouldErr: true,
			errMsg:    "path cannot contain '..' segments",
		},
		{
			name:      "shell metacharacters",
			input:     "/tempZone/home/alice;rm -rf",
			shouldErr: true,
			errMsg:    "shell metacharacters",
		},
		{
			name:      "command substitution",
			input:     "/tempZone/home/$(whoami)",
			shouldErr: true,
			errMsg:    "shell metacharacters",
		},
		{
			name:      "glob characters",
			input:     "/tempZone/home/*",
			shouldErr: true,
			errMsg:    "shell metacharacters",
		},
		{
			name:      "invalid characters",
			input:     "/tempZone/home/ali\tce",
			shouldErr: true,
			errMsg:    "invalid characters",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := SanitizePath(tc.input)
			if tc.shouldErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.errMsg)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.expected, output)
			}
		})
	}
}

func TestSanity_JoinUnder(t *testing.T) {
	testCases := []struct {
		name      string
		root      string
		sub       string
		expected  string
		shouldErr bool
		errMsg    string
	}{
		{
			name:     "single segment",
			root:     "/tempZone/home/alice",
			sub:      "shared_service",
			expected: "/tempZone/home/alice/shared_service",
		},
		{
			name:     "nested segments",
			root:     "/tempZone/home/alice",
			sub:      "projects/2026/data",
			expected: "/tempZone/home/alice/projects/2026/data",
		},
		{
			name:      "empty sub-path",
			root:      "/tempZone/home/alice",
			sub:       "",
			shouldErr: true,
			errMsg:    "sub-path cannot be empty",
		},
		{
			name:      "absolute sub-path",
			root:      "/tempZone/home/alice",
			sub:       "/etc/passwd",
			shouldErr: true,
			errMsg:    "sub-path must be relative",
		},
		{
			name:      "traversal out of the root",
			root:      "/tempZone/home/alice",
			sub:       "../bob",
			shouldErr: true,
			errMsg:    "escapes",
		},
		{
			name:      "deep traversal out of the root",
			root:      "/tempZone/home/alice",
			sub:       "data/../../bob",
			shouldErr: true,
			errMsg:    "escapes",
		},
		{
			name:      "bare traversal",
			root:      "/tempZone/home/alice",
			sub:       "..",
			shouldErr: true,
			errMsg:    "escapes",
		},
		{
			name:      "invalid root",
			root:      "tempZone/home/alice",
			sub:       "data",
			shouldErr: true,
			errMsg:    "path must be absolute",
		},
		{
			name:      "shell metacharacters in sub-path",
			root:      "/tempZone/home/alice",
			sub:       "data;rm",
			shouldErr: true,
			errMsg:    "shell metacharacters",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := JoinUnder(tc.root, tc.sub)
			if tc.shouldErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.errMsg)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.expected, output)
			}
		})
	}
}
