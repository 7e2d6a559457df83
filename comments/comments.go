/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package comments renders the pull request comments and the description
// block the linter writes.
package comments

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"chainguard.dev/jiralint/issuekey"
	"chainguard.dev/jiralint/prvalidation"
	"chainguard.dev/jiralint/tracker"
)

const (
	// HiddenMarker is embedded in rewritten descriptions so the details block
	// is only added once.
	HiddenMarker = "added_by_jira_lint"

	// DocsThanks is posted when a pull request only touches documentation.
	DocsThanks = "🙌 Thanks for taking time to update docs!! 👏"

	// UnknownBranches is posted when the event carries neither branch.
	UnknownBranches = "jira-lint is unable to determine the head and base branch"

	// DefaultGuideURL points at general pull request guidance.
	DefaultGuideURL = "https://www.atlassian.com/blog/git/written-unwritten-guide-pull-requests"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"join":    strings.Join,
	"subject": subject,
}).ParseFS(templateFS, "templates/*.tmpl"))

// Renderer renders comment bodies.
type Renderer struct {
	skipGIFs     bool
	guideURL     string
	standardsURL string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSkipGIFs drops the animated images from comments.
func WithSkipGIFs(skip bool) Option {
	return func(r *Renderer) {
		r.skipGIFs = skip
	}
}

// WithStandardsURL sets the link to the team's naming standards.
func WithStandardsURL(u string) Option {
	return func(r *Renderer) {
		if u != "" {
			r.standardsURL = u
		}
	}
}

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		guideURL:     DefaultGuideURL,
		standardsURL: DefaultGuideURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// NoKeyBranch explains that branch carries no issue key.
func (r *Renderer) NoKeyBranch(branch string) (string, error) {
	return r.render("no_key_branch.tmpl", struct {
		Branch       string
		StandardsURL string
	}{branch, r.standardsURL})
}

// InvalidStatus explains that the issue status is not allowed.
func (r *Renderer) InvalidStatus(status string, allowed []string) (string, error) {
	return r.render("invalid_status.tmpl", struct {
		Status  string
		Allowed []string
	}{status, allowed})
}

// HugePR asks the author to split a pull request with too many additions.
func (r *Renderer) HugePR(additions, threshold int) (string, error) {
	return r.render("huge_pr.tmpl", struct {
		Additions, Threshold int
		SkipGIFs             bool
		GuideURL             string
	}{additions, threshold, r.skipGIFs, r.guideURL})
}

// TitleSimilarity compares the issue summary with the pull request title.
func (r *Renderer) TitleSimilarity(storyTitle, prTitle string) (string, error) {
	return r.render("title_similarity.tmpl", struct {
		Band                string
		StoryTitle, PRTitle string
		SkipGIFs            bool
		GuideURL            string
	}{titleBand(Similarity(storyTitle, prTitle)), storyTitle, prTitle, r.skipGIFs, r.guideURL})
}

// WrongKeyCommits lists the commits that reference an issue other than key.
func (r *Renderer) WrongKeyCommits(key issuekey.Key, commits []prvalidation.CommitResult) (string, error) {
	return r.render("wrong_key_commits.tmpl", struct {
		Key     issuekey.Key
		Commits []prvalidation.CommitResult
	}{key, commits})
}

// MissingKeyCommits lists the commits that reference no issue at all, with
// an example message for placement.
func (r *Renderer) MissingKeyCommits(key issuekey.Key, placement prvalidation.KeyPlacement, commits []prvalidation.CommitResult) (string, error) {
	return r.render("missing_key_commits.tmpl", struct {
		Commits      []prvalidation.CommitResult
		StandardsURL string
		Example      example
	}{commits, r.standardsURL, exampleFor(key, placement)})
}

// InvalidTitle explains that the title does not start with key.
func (r *Renderer) InvalidTitle(title string, key issuekey.Key) (string, error) {
	return r.render("invalid_title.tmpl", struct {
		Title        string
		Key          issuekey.Key
		StandardsURL string
	}{title, key, r.standardsURL})
}

// Description prepends the issue details block and the hidden marker to body.
func (r *Renderer) Description(body string, issue *tracker.Issue) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "description.tmpl", struct {
		Key    string
		Issue  *tracker.Issue
		Labels string
		Marker string
	}{strings.ToUpper(issue.Key), issue, LabelsForDisplay(issue.Labels), HiddenMarker}); err != nil {
		return "", fmt.Errorf("rendering description: %w", err)
	}
	return buf.String() + body, nil
}

// NeedsDescription reports whether body still lacks the details block.
func NeedsDescription(body string) bool {
	return !strings.Contains(body, HiddenMarker)
}

// LabelsForDisplay renders issue labels as links, or "-" when there are none.
func LabelsForDisplay(labels []tracker.Label) string {
	if len(labels) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		name := template.HTMLEscapeString(l.Name)
		parts = append(parts, fmt.Sprintf(`<a href="%s" title="%s">%s</a>`, template.HTMLEscapeString(l.URL), name, name))
	}
	return strings.Join(parts, ", ")
}

type example struct {
	Subject string
	Trailer string
}

func exampleFor(key issuekey.Key, placement prvalidation.KeyPlacement) example {
	if key.IsZero() {
		key = "DDTS-112"
	}
	if placement == prvalidation.PlacementPrefix {
		return example{Subject: string(key) + " feat: build new CMS"}
	}
	return example{Subject: "feat: build new CMS", Trailer: "jira: " + string(key)}
}

func subject(message string) string {
	first, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(first)
}
