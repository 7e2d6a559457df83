/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Command jiralint lints a GitHub pull request against the Jira issue named
// in its branch. It is meant to run as a GitHub Actions step on
// pull_request events.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chainguard.dev/jiralint/comments"
	"chainguard.dev/jiralint/config"
	"chainguard.dev/jiralint/ghclient"
	"chainguard.dev/jiralint/issuekey"
	"chainguard.dev/jiralint/metrics"
	"chainguard.dev/jiralint/policy"
	"chainguard.dev/jiralint/prvalidation"
	"chainguard.dev/jiralint/tracker/jira"
	"github.com/chainguard-dev/clog"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		clog.FatalContextf(ctx, "loading config: %v", err)
	}

	shutdown, err := setupTracing(ctx, cfg.TraceStdout)
	if err != nil {
		clog.FatalContextf(ctx, "setting up tracing: %v", err)
	}

	res, err := run(ctx, cfg)
	shutdown(ctx)
	if err != nil {
		clog.FatalContextf(ctx, "jiralint failed: %v", err)
	}
	if !res.Passed() {
		clog.ErrorContextf(ctx, "Pull request failed %s check: %v", res.Violation, res.Details.Issues)
		os.Exit(1)
	}
	clog.InfoContextf(ctx, "Pull request %s", res.Outcome)
}

func run(ctx context.Context, cfg *config.Config) (*policy.Result, error) {
	pol, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return nil, err
	}

	branchKeys, err := issuekey.NewExtractor(pol.BranchGrammar)
	if err != nil {
		return nil, fmt.Errorf("compiling branch grammar: %w", err)
	}
	branches, err := policy.NewBranchFilter(cfg.SkipBranches, pol.BotBranches...)
	if err != nil {
		return nil, err
	}
	exclude, err := ghclient.NewPathFilter(cfg.SizeExcludePatterns...)
	if err != nil {
		return nil, err
	}

	pr, err := ghclient.ReadEvent(cfg.EventPath)
	if err != nil {
		return nil, err
	}

	gh, err := ghclient.NewClient(ctx, cfg.GitHubAuth())
	if err != nil {
		return nil, fmt.Errorf("creating github client: %w", err)
	}
	handle := ghclient.NewPullRequest(gh, pr.Owner, pr.Repo, pr.Number)

	if !exclude.Empty() {
		n, err := handle.CountAdditions(ctx, exclude)
		if err != nil {
			return nil, err
		}
		clog.InfoContextf(ctx, "Additions excluding %v: %d (payload reported %d)", cfg.SizeExcludePatterns, n, pr.Additions)
		pr.Additions = n
	}

	jiraOpts := []jira.Option{jira.WithTimeout(cfg.JiraTimeout)}
	if cfg.JiraUser != "" {
		jiraOpts = append(jiraOpts, jira.WithBasicAuth(cfg.JiraUser, cfg.JiraToken))
	}
	jc := jira.New(cfg.JiraBaseURL, cfg.JiraToken, jiraOpts...)

	rec := metrics.NewRecorder()
	ev := policy.NewEvaluator(jc, handle, policy.Config{
		Keys:     branchKeys,
		Commits:  prvalidation.NewCommitValidator(issuekey.MustExtractor(issuekey.DefaultGrammar), pol.CommitOptions()...),
		Branches: branches,
		Comments: comments.New(
			comments.WithSkipGIFs(cfg.SkipGIFs),
			comments.WithStandardsURL(cfg.StandardsURL),
		),
		Metrics:         rec,
		SkipComments:    cfg.SkipComments,
		Threshold:       cfg.PRThreshold,
		FailOnHugePR:    cfg.FailOnHugePR,
		ValidateStatus:  cfg.ValidateIssueStatus,
		AllowedStatuses: cfg.AllowedIssueStatuses,
	})

	res, err := ev.Evaluate(ctx, *pr)
	if err != nil {
		return nil, err
	}

	if err := writeSummary(cfg.StepSummary, res.Details); err != nil {
		clog.WarnContextf(ctx, "writing job summary: %v", err)
	}
	if err := rec.Push(ctx, cfg.PushgatewayURL, pr.Owner+"/"+pr.Repo); err != nil {
		clog.WarnContextf(ctx, "%v", err)
	}
	return res, nil
}
