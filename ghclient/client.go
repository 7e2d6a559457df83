/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package ghclient adapts go-github to the pull request operations the
// linter performs: listing commits, commenting, editing the description,
// labelling, and measuring the change size.
package ghclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"
)

// Auth selects how the client authenticates to GitHub. Either Token, or all
// three GitHub App fields, must be set.
type Auth struct {
	Token string

	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

func (a Auth) app() bool {
	return a.AppID != 0 || a.InstallationID != 0 || a.PrivateKeyPath != ""
}

// NewClient returns a GitHub client authenticated per auth.
func NewClient(ctx context.Context, auth Auth) (*github.Client, error) {
	switch {
	case auth.Token != "":
		clog.FromContext(ctx).Debug("Using GitHub token authentication")
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: auth.Token})
		return github.NewClient(oauth2.NewClient(ctx, ts)), nil

	case auth.app():
		if auth.AppID == 0 || auth.InstallationID == 0 || auth.PrivateKeyPath == "" {
			return nil, errors.New("github app auth requires app id, installation id and private key path")
		}
		clog.FromContext(ctx).With("app_id", auth.AppID, "installation_id", auth.InstallationID).
			Debug("Using GitHub App installation authentication")
		tr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, auth.AppID, auth.InstallationID, auth.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("creating installation transport: %w", err)
		}
		return github.NewClient(&http.Client{Transport: tr}), nil

	default:
		return nil, errors.New("no github credentials configured")
	}
}
