/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ghclient

import (
	"context"
	"fmt"

	"chainguard.dev/jiralint/prvalidation"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
)

// PullRequest is a handle on a single pull request.
type PullRequest struct {
	client *github.Client
	owner  string
	repo   string
	number int
}

// NewPullRequest returns a handle on owner/repo#number.
func NewPullRequest(client *github.Client, owner, repo string, number int) *PullRequest {
	return &PullRequest{
		client: client,
		owner:  owner,
		repo:   repo,
		number: number,
	}
}

// String implements fmt.Stringer.
func (p *PullRequest) String() string {
	return fmt.Sprintf("%s/%s#%d", p.owner, p.repo, p.number)
}

// ListCommits returns every commit on the pull request, oldest first.
func (p *PullRequest) ListCommits(ctx context.Context) ([]prvalidation.Commit, error) {
	opts := &github.ListOptions{PerPage: 100}

	var commits []prvalidation.Commit
	for {
		page, resp, err := p.client.PullRequests.ListCommits(ctx, p.owner, p.repo, p.number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing commits: %w", err)
		}
		for _, c := range page {
			commits = append(commits, prvalidation.Commit{
				SHA:     c.GetSHA(),
				Message: c.GetCommit().GetMessage(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	clog.FromContext(ctx).With("count", len(commits)).Debug("Listed pull request commits")
	return commits, nil
}

// PostComment adds a comment to the pull request conversation.
func (p *PullRequest) PostComment(ctx context.Context, body string) error {
	if _, _, err := p.client.Issues.CreateComment(ctx, p.owner, p.repo, p.number, &github.IssueComment{
		Body: github.Ptr(body),
	}); err != nil {
		return fmt.Errorf("posting comment: %w", err)
	}
	return nil
}

// UpdateBody replaces the pull request description.
func (p *PullRequest) UpdateBody(ctx context.Context, body string) error {
	if _, _, err := p.client.PullRequests.Edit(ctx, p.owner, p.repo, p.number, &github.PullRequest{
		Body: github.Ptr(body),
	}); err != nil {
		return fmt.Errorf("updating pull request body: %w", err)
	}
	return nil
}

// AddLabels adds labels to the pull request. Existing labels are kept.
func (p *PullRequest) AddLabels(ctx context.Context, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	if _, _, err := p.client.Issues.AddLabelsToIssue(ctx, p.owner, p.repo, p.number, labels); err != nil {
		return fmt.Errorf("adding labels: %w", err)
	}
	return nil
}

// Diff returns the unified diff of the pull request.
func (p *PullRequest) Diff(ctx context.Context) (string, error) {
	diff, _, err := p.client.PullRequests.GetRaw(ctx, p.owner, p.repo, p.number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return "", fmt.Errorf("fetching diff: %w", err)
	}
	return diff, nil
}

// CountAdditions recounts the added lines of the pull request, skipping files
// whose path matches exclude.
func (p *PullRequest) CountAdditions(ctx context.Context, exclude *PathFilter) (int, error) {
	diff, err := p.Diff(ctx)
	if err != nil {
		return 0, err
	}
	n, err := CountAdditions(diff, exclude)
	if err != nil {
		return 0, err
	}
	clog.FromContext(ctx).With("additions", n).Debug("Recounted pull request additions")
	return n, nil
}
