/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package policy sequences the lint guards for a single pull request:
// branch exemptions, issue lookup, labels, description, commit messages and
// title.
package policy

import (
	"context"

	"chainguard.dev/jiralint/issuekey"
	"chainguard.dev/jiralint/prvalidation"
	"chainguard.dev/jiralint/tracker"
)

// PullRequest is the snapshot of a pull request taken from the triggering
// event.
type PullRequest struct {
	Owner      string `json:"owner"`
	Repo       string `json:"repo"`
	Number     int    `json:"number"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	HeadBranch string `json:"headBranch"`
	BaseBranch string `json:"baseBranch"`
	HeadSHA    string `json:"headSha"`
	Additions  int    `json:"additions"`
}

// Tracker looks up issues. Errors wrap tracker.ErrNotFound,
// tracker.ErrUnauthorized or tracker.ErrTimeout where applicable.
type Tracker interface {
	LookupIssue(ctx context.Context, key issuekey.Key) (*tracker.Issue, error)
}

// Platform performs side effects on the pull request under evaluation.
type Platform interface {
	ListCommits(ctx context.Context) ([]prvalidation.Commit, error)
	PostComment(ctx context.Context, body string) error
	UpdateBody(ctx context.Context, body string) error
	AddLabels(ctx context.Context, labels []string) error
}

// Outcome is the overall verdict of an evaluation.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// SkipReason explains why an evaluation was skipped.
type SkipReason string

const (
	SkipNone    SkipReason = ""
	SkipBot     SkipReason = "bot_branch"
	SkipDefault SkipReason = "default_branch"
	SkipIgnored SkipReason = "ignored_branch"
	SkipDocs    SkipReason = "docs_only"
)

// Violation names the guard that failed an evaluation.
type Violation string

const (
	ViolationNone             Violation = ""
	ViolationUnknownBranches  Violation = "unknown_branches"
	ViolationMissingBranchKey Violation = "missing_branch_key"
	ViolationIssueNotFound    Violation = "issue_not_found"
	ViolationIssueStatus      Violation = "issue_status"
	ViolationHugePR           Violation = "huge_pr"
	ViolationCommitMessages   Violation = "commit_messages"
	ViolationTitle            Violation = "title"
)

// Result is the outcome of evaluating one pull request.
type Result struct {
	Outcome   Outcome
	Skip      SkipReason
	Violation Violation
	Key       issuekey.Key
	Issue     *tracker.Issue
	Details   prvalidation.Details
}

// Passed reports whether the check should succeed.
func (r *Result) Passed() bool {
	return r.Outcome != OutcomeFailed
}
