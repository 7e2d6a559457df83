/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prvalidation

import (
	"strings"

	"chainguard.dev/jiralint/issuekey"
)

// ValidateTitle reports whether title opens with expected followed by a
// single space. Titles are matched literally, with no case folding.
func ValidateTitle(title string, expected issuekey.Key) bool {
	if expected.IsZero() || title == "" {
		return false
	}
	return strings.HasPrefix(title, string(expected)+" ")
}
