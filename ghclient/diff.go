/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ghclient

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/waigani/diffparser"
)

// PathFilter matches file paths against a set of ECMAScript regular
// expressions. A nil filter matches nothing.
type PathFilter struct {
	patterns []*regexp2.Regexp
}

// NewPathFilter compiles patterns. Empty patterns are ignored.
func NewPathFilter(patterns ...string) (*PathFilter, error) {
	f := &PathFilter{}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := regexp2.Compile(p, regexp2.ECMAScript)
		if err != nil {
			return nil, fmt.Errorf("compiling path pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Empty reports whether the filter has no patterns.
func (f *PathFilter) Empty() bool {
	return f == nil || len(f.patterns) == 0
}

// Match reports whether path matches any pattern.
func (f *PathFilter) Match(path string) bool {
	if f == nil {
		return false
	}
	for _, re := range f.patterns {
		if ok, err := re.MatchString(path); err == nil && ok {
			return true
		}
	}
	return false
}

// CountAdditions counts added lines in a unified diff, skipping files whose
// path matches exclude.
func CountAdditions(diff string, exclude *PathFilter) (int, error) {
	if diff == "" {
		return 0, nil
	}
	parsed, err := diffparser.Parse(diff)
	if err != nil {
		return 0, fmt.Errorf("parsing diff: %w", err)
	}

	total := 0
	for _, file := range parsed.Files {
		name := file.NewName
		if name == "" {
			name = file.OrigName
		}
		if exclude.Match(name) {
			continue
		}
		for _, hunk := range file.Hunks {
			for _, line := range hunk.NewRange.Lines {
				if line.Mode == diffparser.ADDED {
					total++
				}
			}
		}
	}
	return total, nil
}
