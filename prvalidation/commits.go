/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prvalidation

import (
	"fmt"
	"regexp"
	"strings"

	"chainguard.dev/jiralint/issuekey"
)

// DefaultDocPrefix marks a documentation-only commit.
const DefaultDocPrefix = "docs:"

var (
	mergeCommitRegex  = regexp.MustCompile(`(?i)^Merge (branch|pull request)`)
	revertCommitRegex = regexp.MustCompile(`(?i)^Revert "`)
)

// Commit is a single commit of a pull request.
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

// Reason explains why a commit was classified the way it was.
type Reason string

const (
	ReasonDocs    Reason = "docs"
	ReasonMerge   Reason = "merge"
	ReasonRevert  Reason = "revert"
	ReasonKey     Reason = "key"
	ReasonInvalid Reason = "invalid"
)

// CommitResult is the classification of one commit.
type CommitResult struct {
	Commit

	// HasIssueKey is true when the message carries any issue key, not
	// necessarily the expected one.
	HasIssueKey bool   `json:"hasIssueKey"`
	Valid       bool   `json:"valid"`
	Reason      Reason `json:"reason"`
}

// CommitSummary is the outcome of validating all commits of a pull request.
type CommitSummary struct {
	Valid   bool           `json:"valid"`
	Results []CommitResult `json:"results"`
}

// WrongKey returns the invalid commits that reference some other issue key.
func (s CommitSummary) WrongKey() []CommitResult {
	return s.filter(func(r CommitResult) bool { return !r.Valid && r.HasIssueKey })
}

// MissingKey returns the invalid commits that reference no issue key at all.
func (s CommitSummary) MissingKey() []CommitResult {
	return s.filter(func(r CommitResult) bool { return !r.Valid && !r.HasIssueKey })
}

func (s CommitSummary) filter(keep func(CommitResult) bool) []CommitResult {
	var out []CommitResult
	for _, r := range s.Results {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// KeyPlacement selects where a commit message must carry the expected key.
type KeyPlacement int

const (
	// PlacementAnywhere accepts the exact key as a token anywhere in the message.
	PlacementAnywhere KeyPlacement = iota
	// PlacementPrefix requires the message to start with the key and a space.
	PlacementPrefix
	// PlacementTrailer requires a body line of the form "jira: KEY".
	PlacementTrailer
)

var placementNames = map[KeyPlacement]string{
	PlacementAnywhere: "anywhere",
	PlacementPrefix:   "prefix",
	PlacementTrailer:  "trailer",
}

func (p KeyPlacement) String() string {
	if n, ok := placementNames[p]; ok {
		return n
	}
	return "unknown"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *KeyPlacement) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for v, n := range placementNames {
		if n == s {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("unknown commit key placement %q", s)
}

// CommitOption configures a CommitValidator.
type CommitOption func(*CommitValidator)

// WithPlacement sets where commit messages must carry the expected key.
func WithPlacement(p KeyPlacement) CommitOption {
	return func(v *CommitValidator) {
		v.placement = p
	}
}

// WithDocPrefix overrides the prefix that marks documentation commits.
func WithDocPrefix(prefix string) CommitOption {
	return func(v *CommitValidator) {
		v.docPrefix = prefix
	}
}

// CommitValidator classifies commit messages against an expected issue key.
type CommitValidator struct {
	keys      *issuekey.Extractor
	placement KeyPlacement
	docPrefix string
}

// NewCommitValidator returns a validator that detects keys with keys.
func NewCommitValidator(keys *issuekey.Extractor, opts ...CommitOption) *CommitValidator {
	v := &CommitValidator{
		keys:      keys,
		placement: PlacementAnywhere,
		docPrefix: DefaultDocPrefix,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Placement returns where commit messages must carry the expected key.
func (v *CommitValidator) Placement() KeyPlacement {
	return v.placement
}

// IsDocCommit reports whether message marks a documentation-only commit.
func (v *CommitValidator) IsDocCommit(message string) bool {
	return v.docPrefix != "" && strings.HasPrefix(message, v.docPrefix)
}

// OnlyDocs reports whether there is at least one commit and all of them are
// documentation commits.
func (v *CommitValidator) OnlyDocs(commits []Commit) bool {
	if len(commits) == 0 {
		return false
	}
	for _, c := range commits {
		if !v.IsDocCommit(c.Message) {
			return false
		}
	}
	return true
}

// Validate classifies every commit against expected. An empty list is valid.
func (v *CommitValidator) Validate(commits []Commit, expected issuekey.Key) CommitSummary {
	summary := CommitSummary{
		Valid:   true,
		Results: make([]CommitResult, 0, len(commits)),
	}
	for _, c := range commits {
		r := v.classify(c, expected)
		summary.Valid = summary.Valid && r.Valid
		summary.Results = append(summary.Results, r)
	}
	return summary
}

func (v *CommitValidator) classify(c Commit, expected issuekey.Key) CommitResult {
	r := CommitResult{
		Commit:      c,
		HasIssueKey: len(v.keys.Matches(c.Message)) > 0,
		Valid:       true,
	}

	switch {
	case v.IsDocCommit(c.Message):
		r.Reason = ReasonDocs
	case mergeCommitRegex.MatchString(c.Message):
		r.Reason = ReasonMerge
	case revertCommitRegex.MatchString(c.Message):
		r.Reason = ReasonRevert
	case v.hasExpectedKey(c.Message, expected):
		r.Reason = ReasonKey
	default:
		r.Reason = ReasonInvalid
		r.Valid = false
	}
	return r
}

func (v *CommitValidator) hasExpectedKey(message string, expected issuekey.Key) bool {
	if expected.IsZero() {
		return false
	}
	switch v.placement {
	case PlacementPrefix:
		return strings.HasPrefix(message, string(expected)+" ")
	case PlacementTrailer:
		lines := strings.Split(message, "\n")
		for _, line := range lines[1:] {
			if strings.TrimRight(line, " \t\r") == "jira: "+string(expected) {
				return true
			}
		}
		return false
	default:
		return v.keys.Contains(message, expected)
	}
}
