/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package policy

import (
	"fmt"
	"strings"

	"chainguard.dev/jiralint/tracker"
	"github.com/dlclark/regexp2"
)

// Hotfix labels applied from the base branch.
const (
	LabelHotfixPreProd = "HOTFIX-PRE-PROD"
	LabelHotfixProd    = "HOTFIX-PROD"
)

var (
	// BotBranchPatterns match branches opened by automation.
	BotBranchPatterns = []string{`^dependabot`, `^all-contributors`}

	// DefaultBranchPatterns match long-lived branches that are never linted.
	DefaultBranchPatterns = []string{
		`^main$`,
		`^master$`,
		`^production$`,
		`^gh-pages$`,
		`^release\/v(\d+\.)?(\d+\.)?(\d+)$`,
	}
)

// BranchFilter decides which head branches are exempt from linting.
type BranchFilter struct {
	bots     []*regexp2.Regexp
	defaults []*regexp2.Regexp
	ignore   *regexp2.Regexp
}

// NewBranchFilter compiles the built-in patterns, any extra bot patterns, and
// the optional ignore pattern. All patterns use ECMAScript syntax.
func NewBranchFilter(ignore string, extraBots ...string) (*BranchFilter, error) {
	f := &BranchFilter{}

	var err error
	if f.bots, err = compileAll(append(append([]string{}, BotBranchPatterns...), extraBots...)); err != nil {
		return nil, err
	}
	if f.defaults, err = compileAll(DefaultBranchPatterns); err != nil {
		return nil, err
	}
	if ignore != "" {
		if f.ignore, err = compile(ignore); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// MustBranchFilter is like NewBranchFilter but panics on error.
func MustBranchFilter(ignore string, extraBots ...string) *BranchFilter {
	f, err := NewBranchFilter(ignore, extraBots...)
	if err != nil {
		panic(err)
	}
	return f
}

// Skip returns why branch is exempt, or SkipNone.
func (f *BranchFilter) Skip(branch string) SkipReason {
	switch {
	case matchAny(f.bots, branch):
		return SkipBot
	case matchAny(f.defaults, branch):
		return SkipDefault
	case f.ignore != nil && match(f.ignore, branch):
		return SkipIgnored
	default:
		return SkipNone
	}
}

// HotfixLabel returns the hotfix label implied by the base branch, if any.
func HotfixLabel(baseBranch string) string {
	switch {
	case strings.HasPrefix(baseBranch, "release/v"):
		return LabelHotfixPreProd
	case strings.HasPrefix(baseBranch, "production"):
		return LabelHotfixProd
	default:
		return ""
	}
}

// IssueLabels returns the labels to apply for issue on a pull request
// targeting baseBranch: project name, hotfix label and issue type, blanks
// dropped.
func IssueLabels(issue *tracker.Issue, baseBranch string) []string {
	var labels []string
	for _, l := range []string{issue.Project.Name, HotfixLabel(baseBranch), issue.Type.Name} {
		if strings.TrimSpace(l) != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

func compile(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("compiling branch pattern %q: %w", pattern, err)
	}
	return re, nil
}

func compileAll(patterns []string) ([]*regexp2.Regexp, error) {
	out := make([]*regexp2.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

func match(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

func matchAny(res []*regexp2.Regexp, s string) bool {
	for _, re := range res {
		if match(re, s) {
			return true
		}
	}
	return false
}
