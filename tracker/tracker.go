/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package tracker defines the issue metadata the linter needs from a project
// tracker, and the errors a tracker lookup can fail with.
package tracker

import "errors"

var (
	// ErrNotFound is returned when the issue key does not exist.
	ErrNotFound = errors.New("issue not found")
	// ErrUnauthorized is returned when the tracker rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTimeout is returned when the tracker does not answer in time.
	ErrTimeout = errors.New("tracker request timed out")
)

// Issue is the subset of tracker issue metadata rendered into pull requests.
type Issue struct {
	Key      string  `json:"key"`
	Summary  string  `json:"summary"`
	URL      string  `json:"url"`
	Status   string  `json:"status"`
	Type     Type    `json:"type"`
	Project  Project `json:"project"`
	Estimate string  `json:"estimate"`
	Labels   []Label `json:"labels"`
}

// Type is the issue type, e.g. "Story" or "Bug".
type Type struct {
	Name    string `json:"name"`
	IconURL string `json:"icon"`
}

// Project is the project an issue belongs to.
type Project struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	URL  string `json:"url"`
}

// Label is an issue label with a link to the issues carrying it.
type Label struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
