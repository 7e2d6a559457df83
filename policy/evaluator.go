/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package policy

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"chainguard.dev/jiralint/comments"
	"chainguard.dev/jiralint/issuekey"
	"chainguard.dev/jiralint/metrics"
	"chainguard.dev/jiralint/prvalidation"
	"chainguard.dev/jiralint/tracker"
	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultThreshold is the number of additions above which a pull request is
// considered too large to review.
const DefaultThreshold = 800

// Config controls the guards an Evaluator applies. Nil collaborators are
// replaced by defaults.
type Config struct {
	// Keys extracts the issue key from the head branch.
	Keys *issuekey.Extractor
	// Commits classifies commit messages.
	Commits *prvalidation.CommitValidator
	// Branches exempts bot, default and ignored branches.
	Branches *BranchFilter
	// Comments renders comment bodies.
	Comments *comments.Renderer
	// Metrics may be nil.
	Metrics *metrics.Recorder

	// SkipComments suppresses the advisory title and size comments.
	SkipComments bool
	// Threshold is the additions limit; zero means DefaultThreshold.
	Threshold int
	// FailOnHugePR turns the size advisory into a failure.
	FailOnHugePR bool

	ValidateStatus  bool
	AllowedStatuses []string
}

// Evaluator runs the guard sequence against one pull request.
type Evaluator struct {
	tracker  Tracker
	platform Platform
	cfg      Config
}

// NewEvaluator returns an Evaluator that looks issues up in tr and acts on
// the pull request through pf.
func NewEvaluator(tr Tracker, pf Platform, cfg Config) *Evaluator {
	if cfg.Keys == nil {
		cfg.Keys = issuekey.MustExtractor(issuekey.DefaultGrammar)
	}
	if cfg.Commits == nil {
		cfg.Commits = prvalidation.NewCommitValidator(issuekey.MustExtractor(issuekey.DefaultGrammar))
	}
	if cfg.Branches == nil {
		cfg.Branches = MustBranchFilter("")
	}
	if cfg.Comments == nil {
		cfg.Comments = comments.New()
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	return &Evaluator{tracker: tr, platform: pf, cfg: cfg}
}

// Evaluate applies the guards in order. The first failing guard stops the
// sequence. Policy violations are reported in the Result; the error is only
// set when a collaborator fails.
func (e *Evaluator) Evaluate(ctx context.Context, pr PullRequest) (res *Result, err error) {
	ctx, span := startSpan(ctx, "jiralint.evaluate",
		attribute.String("pr.repository", pr.Owner+"/"+pr.Repo),
		attribute.Int("pr.number", pr.Number),
		attribute.String("pr.head", pr.HeadBranch),
	)
	defer func() {
		if res != nil {
			span.SetAttributes(
				attribute.String("jiralint.outcome", string(res.Outcome)),
				attribute.String("jiralint.violation", string(res.Violation)),
			)
			e.cfg.Metrics.Run(string(res.Outcome))
			if res.Violation != ViolationNone {
				e.cfg.Metrics.Violation(string(res.Violation))
			}
		}
		endSpan(span, err)
	}()

	log := clog.FromContext(ctx).With("pr", fmt.Sprintf("%s/%s#%d", pr.Owner, pr.Repo, pr.Number))

	res = &Result{
		Details: prvalidation.Details{
			Generation: prvalidation.ComputeGeneration(pr.HeadSHA, pr.Title, pr.Body),
			Branch:     pr.HeadBranch,
		},
	}

	if pr.HeadBranch == "" && pr.BaseBranch == "" {
		if err := e.platform.PostComment(ctx, comments.UnknownBranches); err != nil {
			return nil, err
		}
		return res.fail(ViolationUnknownBranches, "Unable to determine the head and base branch"), nil
	}
	log.With("head", pr.HeadBranch, "base", pr.BaseBranch).Info("Evaluating pull request")

	if reason := e.cfg.Branches.Skip(pr.HeadBranch); reason != SkipNone {
		log.With("reason", reason).Info("Skipping exempt branch")
		return res.skip(reason), nil
	}

	commits, err := e.listCommits(ctx)
	if err != nil {
		return nil, err
	}
	if e.cfg.Commits.OnlyDocs(commits) {
		if err := e.platform.PostComment(ctx, comments.DocsThanks); err != nil {
			return nil, err
		}
		log.Info("Skipping documentation-only pull request")
		return res.skip(SkipDocs), nil
	}

	key := e.cfg.Keys.Key(pr.HeadBranch)
	if key.IsZero() {
		if err := e.comment(ctx, func() (string, error) { return e.cfg.Comments.NoKeyBranch(pr.HeadBranch) }); err != nil {
			return nil, err
		}
		return res.fail(ViolationMissingBranchKey, "Issue key is missing in your branch"), nil
	}
	res.Key = key
	res.Details.Key = string(key)
	log = log.With("key", key)

	issue, err := e.lookup(ctx, key)
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		log.Warn("Issue not found")
		if err := e.comment(ctx, func() (string, error) { return e.cfg.Comments.NoKeyBranch(pr.HeadBranch) }); err != nil {
			return nil, err
		}
		return res.fail(ViolationIssueNotFound, fmt.Sprintf("Issue %s does not exist", key)), nil
	case err != nil:
		return nil, fmt.Errorf("looking up issue %s: %w", key, err)
	}
	res.Issue = issue
	res.Details.IssueStatus = issue.Status

	if labels := IssueLabels(issue, pr.BaseBranch); len(labels) > 0 {
		log.With("labels", labels).Info("Adding labels")
		if err := e.platform.AddLabels(ctx, labels); err != nil {
			return nil, err
		}
	}

	if e.cfg.ValidateStatus && !slices.Contains(e.cfg.AllowedStatuses, issue.Status) {
		if err := e.comment(ctx, func() (string, error) {
			return e.cfg.Comments.InvalidStatus(issue.Status, e.cfg.AllowedStatuses)
		}); err != nil {
			return nil, err
		}
		return res.fail(ViolationIssueStatus, fmt.Sprintf("Issue status %q is not allowed", issue.Status)), nil
	}

	huge := pr.Additions > e.cfg.Threshold
	if comments.NeedsDescription(pr.Body) {
		if err := e.describe(ctx, pr, issue, huge); err != nil {
			return nil, err
		}
	}
	if huge && e.cfg.FailOnHugePR {
		return res.fail(ViolationHugePR, fmt.Sprintf("%d additions exceed the limit of %d", pr.Additions, e.cfg.Threshold)), nil
	}

	summary := e.cfg.Commits.Validate(commits, key)
	res.Details.Commits = &summary
	for _, r := range summary.Results {
		e.cfg.Metrics.Commit(string(r.Reason), r.Valid)
	}
	if !summary.Valid {
		if wrong := summary.WrongKey(); len(wrong) > 0 {
			if err := e.comment(ctx, func() (string, error) { return e.cfg.Comments.WrongKeyCommits(key, wrong) }); err != nil {
				return nil, err
			}
		}
		if missing := summary.MissingKey(); len(missing) > 0 {
			if err := e.comment(ctx, func() (string, error) {
				return e.cfg.Comments.MissingKeyCommits(key, e.cfg.Commits.Placement(), missing)
			}); err != nil {
				return nil, err
			}
		}
		return res.fail(ViolationCommitMessages, fmt.Sprintf("One or more commits did not reference the issue key %s", key)), nil
	}

	res.Details.TitleValid = prvalidation.ValidateTitle(pr.Title, key)
	if !res.Details.TitleValid {
		if err := e.comment(ctx, func() (string, error) { return e.cfg.Comments.InvalidTitle(pr.Title, key) }); err != nil {
			return nil, err
		}
		return res.fail(ViolationTitle, fmt.Sprintf("Pull request title does not start with %s", key)), nil
	}

	log.Info("Pull request passed")
	res.Outcome = OutcomePassed
	res.Details.Conclusion = string(OutcomePassed)
	return res, nil
}

// describe rewrites the description and, on that same run, posts the
// advisory comments.
func (e *Evaluator) describe(ctx context.Context, pr PullRequest, issue *tracker.Issue, huge bool) error {
	body, err := e.cfg.Comments.Description(pr.Body, issue)
	if err != nil {
		return err
	}
	if err := e.platform.UpdateBody(ctx, body); err != nil {
		return err
	}
	if e.cfg.SkipComments {
		return nil
	}
	if err := e.comment(ctx, func() (string, error) { return e.cfg.Comments.TitleSimilarity(issue.Summary, pr.Title) }); err != nil {
		return err
	}
	if huge {
		return e.comment(ctx, func() (string, error) { return e.cfg.Comments.HugePR(pr.Additions, e.cfg.Threshold) })
	}
	return nil
}

func (e *Evaluator) comment(ctx context.Context, render func() (string, error)) error {
	body, err := render()
	if err != nil {
		return err
	}
	return e.platform.PostComment(ctx, body)
}

func (e *Evaluator) listCommits(ctx context.Context) (commits []prvalidation.Commit, err error) {
	ctx, span := startSpan(ctx, "jiralint.list_commits")
	defer func() {
		span.SetAttributes(attribute.Int("commits.count", len(commits)))
		endSpan(span, err)
	}()
	return e.platform.ListCommits(ctx)
}

func (e *Evaluator) lookup(ctx context.Context, key issuekey.Key) (issue *tracker.Issue, err error) {
	ctx, span := startSpan(ctx, "jiralint.lookup_issue", attribute.String("issue.key", string(key)))
	start := time.Now()
	defer func() {
		e.cfg.Metrics.TrackerLookup(time.Since(start), lookupResult(err))
		endSpan(span, err)
	}()
	return e.tracker.LookupIssue(ctx, key)
}

func lookupResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, tracker.ErrNotFound):
		return "not_found"
	case errors.Is(err, tracker.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, tracker.ErrTimeout):
		return "timeout"
	default:
		return "error"
	}
}

func (r *Result) fail(v Violation, msg string) *Result {
	r.Outcome = OutcomeFailed
	r.Violation = v
	r.Details.Conclusion = string(OutcomeFailed)
	r.Details.Issues = append(r.Details.Issues, msg)
	return r
}

func (r *Result) skip(reason SkipReason) *Result {
	r.Outcome = OutcomeSkipped
	r.Skip = reason
	r.Details.Conclusion = string(OutcomeSkipped)
	return r
}
