/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ghclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"chainguard.dev/jiralint/policy"
	"github.com/google/go-github/v84/github"
)

// ErrNotPullRequest is returned when the event payload carries no pull request.
var ErrNotPullRequest = errors.New("event is not a pull request event")

// ReadEvent loads the pull request snapshot from the Actions event payload
// at path.
func ReadEvent(path string) (*policy.PullRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event payload: %w", err)
	}
	return ParseEvent(data)
}

// ParseEvent decodes a pull_request (or pull_request_target) event payload.
func ParseEvent(data []byte) (*policy.PullRequest, error) {
	var ev github.PullRequestEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("decoding event payload: %w", err)
	}
	pr := ev.GetPullRequest()
	if pr == nil {
		return nil, ErrNotPullRequest
	}

	repo := ev.GetRepo()
	if repo == nil {
		repo = pr.GetBase().GetRepo()
	}

	return &policy.PullRequest{
		Owner:      repo.GetOwner().GetLogin(),
		Repo:       repo.GetName(),
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		Body:       pr.GetBody(),
		HeadBranch: pr.GetHead().GetRef(),
		BaseBranch: pr.GetBase().GetRef(),
		HeadSHA:    pr.GetHead().GetSHA(),
		Additions:  pr.GetAdditions(),
	}, nil
}
