/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package issuekey

import "strings"

// Key is a normalized issue key such as "ENG-117".
type Key string

// String implements fmt.Stringer.
func (k Key) String() string {
	return string(k)
}

// Project returns the project code of the key, e.g. "ENG" for "ENG-117".
func (k Key) Project() string {
	project, _, _ := k.split()
	return project
}

// Number returns the numeric part of the key, e.g. "117" for "ENG-117".
func (k Key) Number() string {
	_, number, _ := k.split()
	return number
}

// IsZero reports whether k is empty.
func (k Key) IsZero() bool {
	return k == ""
}

func (k Key) split() (string, string, bool) {
	i := strings.LastIndexByte(string(k), '-')
	if i < 0 {
		return "", "", false
	}
	return string(k[:i]), string(k[i+1:]), true
}

// Match is a key-shaped substring found in a piece of text.
type Match struct {
	// Key is the normalized key.
	Key Key
	// Raw is the substring exactly as it appeared in the source text.
	Raw string
	// Start and End are rune offsets of Raw in the source text.
	Start, End int
}
