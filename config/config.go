/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads the linter's inputs from the environment and the
// optional YAML policy file.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chainguard.dev/jiralint/ghclient"
	"github.com/sethvargo/go-envconfig"
)

// Config holds the environment inputs.
type Config struct {
	JiraBaseURL string        `env:"JIRA_BASE_URL,required"`
	JiraToken   string        `env:"JIRA_TOKEN,required"`
	JiraUser    string        `env:"JIRA_USER"`
	JiraTimeout time.Duration `env:"JIRA_TIMEOUT,default=2s"`

	GitHubToken             string `env:"GITHUB_TOKEN"`
	GitHubAppID             int64  `env:"GITHUB_APP_ID"`
	GitHubInstallationID    int64  `env:"GITHUB_INSTALLATION_ID"`
	GitHubAppPrivateKeyPath string `env:"GITHUB_APP_PRIVATE_KEY_PATH"`

	SkipBranches         string   `env:"SKIP_BRANCHES"`
	SkipComments         bool     `env:"SKIP_COMMENTS,default=false"`
	SkipGIFs             bool     `env:"SKIP_GIFS,default=false"`
	PRThreshold          int      `env:"PR_THRESHOLD,default=800"`
	FailOnHugePR         bool     `env:"FAIL_ON_HUGE_PR,default=false"`
	SizeExcludePatterns  []string `env:"SIZE_EXCLUDE_PATTERNS"`
	ValidateIssueStatus  bool     `env:"VALIDATE_ISSUE_STATUS,default=false"`
	AllowedIssueStatuses []string `env:"ALLOWED_ISSUE_STATUSES"`
	StandardsURL         string   `env:"STANDARDS_URL"`

	EventPath   string `env:"GITHUB_EVENT_PATH,required"`
	StepSummary string `env:"GITHUB_STEP_SUMMARY"`

	PushgatewayURL string `env:"PUSHGATEWAY_URL"`
	TraceStdout    bool   `env:"TRACE_STDOUT,default=false"`

	PolicyFile string `env:"JIRALINT_CONFIG"`
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads the configuration through l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.JiraBaseURL = strings.TrimSuffix(strings.TrimSpace(c.JiraBaseURL), "/")
	c.SizeExcludePatterns = trimAll(c.SizeExcludePatterns)
	c.AllowedIssueStatuses = trimAll(c.AllowedIssueStatuses)
}

// Validate reports inconsistent inputs.
func (c *Config) Validate() error {
	var errs []error
	if c.JiraTimeout <= 0 {
		errs = append(errs, fmt.Errorf("JIRA_TIMEOUT must be positive, got %s", c.JiraTimeout))
	}
	if c.PRThreshold < 0 {
		errs = append(errs, fmt.Errorf("PR_THRESHOLD must not be negative, got %d", c.PRThreshold))
	}
	if c.ValidateIssueStatus && len(c.AllowedIssueStatuses) == 0 {
		errs = append(errs, errors.New("VALIDATE_ISSUE_STATUS requires ALLOWED_ISSUE_STATUSES"))
	}
	if c.GitHubToken == "" {
		if c.GitHubAppID == 0 || c.GitHubInstallationID == 0 || c.GitHubAppPrivateKeyPath == "" {
			errs = append(errs, errors.New("either GITHUB_TOKEN or GITHUB_APP_ID, GITHUB_INSTALLATION_ID and GITHUB_APP_PRIVATE_KEY_PATH must be set"))
		}
	}
	return errors.Join(errs...)
}

// GitHubAuth returns the GitHub credentials.
func (c *Config) GitHubAuth() ghclient.Auth {
	return ghclient.Auth{
		Token:          c.GitHubToken,
		AppID:          c.GitHubAppID,
		InstallationID: c.GitHubInstallationID,
		PrivateKeyPath: c.GitHubAppPrivateKeyPath,
	}
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
