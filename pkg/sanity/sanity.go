// SPDX-License-Identifier: Apache-2.0

// Package sanity validates and normalizes user-supplied identifiers and
// logical storage paths before they reach the data store.
package sanity

import (
	"path"
	"regexp"
	"strings"

	"github.com/joomcode/errorx"
)

// Security validation patterns for logical paths
var (
	// shellMetachars contains dangerous shell metacharacters that should be rejected
	shellMetachars = regexp.MustCompile("[;&|$\\x60<>(){}\\[\\]*?~]")

	// validPathChars ensures paths only contain safe characters
	// Allows: alphanumeric, forward slash, dash, underscore, dot, space
	validPathChars = regexp.MustCompile(`^[a-zA-Z0-9/_.\- ]+$`)

	// validIdentifier matches usernames and zone names accepted by the data store.
	// Must start with a letter or digit; dash, underscore and dot are allowed inside.
	validIdentifier = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.\-]*$`)
)

// ValidateIdentifier validates a username or zone name.
// It rejects empty strings, leading separators, and any character outside
// the identifier alphabet.
func ValidateIdentifier(s string) error {
	if s == "" {
		return errorx.IllegalArgument.New("identifier cannot be empty")
	}

	if !validIdentifier.MatchString(s) {
		return errorx.IllegalArgument.New("identifier contains invalid characters: %s", s)
	}

	return nil
}

// SanitizePath validates and sanitizes the given logical path according to strict rules.
//
// Specifically, it:
//  1. Rejects paths containing shell metacharacters (e.g., ; & | $ ` < > ( ) { } [ ] * ? ~).
//  2. Rejects path traversal attempts (any ".." segment).
//  3. Requires the input path to be absolute.
//  4. Normalizes the path by removing redundant slashes and dot directories.
//
// Logical paths are always slash-separated regardless of host OS, so the
// POSIX "path" package is used rather than "path/filepath".
//
// Returns the sanitized (cleaned) path, or an error if the input is invalid or unsafe.
func SanitizePath(p string) (string, error) {
	if p == "" {
		return "", errorx.IllegalArgument.New("path cannot be empty")
	}

	if !strings.HasPrefix(p, "/") {
		return "", errorx.IllegalArgument.New("path must be absolute: %s", p)
	}

	// Check for ".." as a path segment BEFORE cleaning, so that patterns like
	// "/a/../b" are rejected instead of silently rewritten.
	for _, segment := range strings.Split(p, "/") {
		if segment == ".." {
			return "", errorx.IllegalArgument.New("path cannot contain '..' segments: %s", p)
		}
	}

	if shellMetachars.MatchString(p) {
		return "", errorx.IllegalArgument.New("path contains shell metacharacters: %s", p)
	}

	if !validPathChars.MatchString(p) {
		return "", errorx.IllegalArgument.New("path contains invalid characters: %s", p)
	}

	return path.Clean(p), nil
}

// JoinUnder joins a relative sub-path onto an absolute root and guarantees
// the result stays inside the root's subtree. The sub-path may contain
// multiple segments but must not be absolute and must not escape the root
// via ".." segments.
func JoinUnder(root string, sub string) (string, error) {
	cleanRoot, err := SanitizePath(root)
	if err != nil {
		return "", err
	}

	if sub == "" {
		return "", errorx.IllegalArgument.New("sub-path cannot be empty")
	}

	if strings.HasPrefix(sub, "/") {
		return "", errorx.IllegalArgument.New("sub-path must be relative: %s", sub)
	}

	joined, err := SanitizePath(path.Join(cleanRoot, sub))
	if err != nil {
		return "", err
	}

	if joined != cleanRoot && !strings.HasPrefix(joined, cleanRoot+"/") {
		return "", errorx.IllegalArgument.New("sub-path escapes %q: %s", cleanRoot, sub)
	}

	return joined, nil
}
