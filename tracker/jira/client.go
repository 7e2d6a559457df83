/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package jira looks up issues through the Jira Cloud REST API (v3).
package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chainguard.dev/jiralint/issuekey"
	"chainguard.dev/jiralint/tracker"
	"github.com/chainguard-dev/clog"
)

// DefaultTimeout bounds a single issue lookup.
const DefaultTimeout = 2 * time.Second

// issueFields is the set of fields requested for an issue; customfield_10016
// holds story points on Jira Cloud.
const issueFields = "project,summary,issuetype,labels,status,customfield_10016"

type issue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
		Status  *struct {
			Name string `json:"name"`
		} `json:"status"`
		IssueType *struct {
			Name    string `json:"name"`
			IconURL string `json:"iconUrl"`
		} `json:"issuetype"`
		Project *struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"project"`
		Labels   []string        `json:"labels"`
		Estimate json.RawMessage `json:"customfield_10016"`
	} `json:"fields"`
}

// Client looks up Jira issues.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests. The client is
// copied, so hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBasicAuth authenticates with an account email and API token instead of
// a pre-encoded credential.
func WithBasicAuth(user, apiToken string) Option {
	return func(c *Client) {
		c.authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+apiToken))
	}
}

// New creates a Client for the Jira site at baseURL. token is sent as a
// pre-encoded basic credential ("base64(email:api-token)").
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		authHeader: "Basic " + token,
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := &http.Client{}
	if c.httpClient != nil {
		*hc = *c.httpClient
	}
	switch {
	case c.timeout > 0:
		hc.Timeout = c.timeout
	case hc.Timeout == 0:
		hc.Timeout = DefaultTimeout
	}
	c.httpClient = hc
	return c
}

// BaseURL returns the Jira site URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LookupIssue fetches the issue identified by key.
func (c *Client) LookupIssue(ctx context.Context, key issuekey.Key) (*tracker.Issue, error) {
	apiURL := fmt.Sprintf("%s/rest/api/3/issue/%s?fields=%s", c.baseURL, url.PathEscape(string(key)), issueFields)

	clog.FromContext(ctx).With("key", key).Debug("Looking up Jira issue")

	body, err := c.get(ctx, apiURL)
	if err != nil {
		return nil, fmt.Errorf("get issue %s: %w", key, err)
	}

	var raw issue
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse issue response: %w", err)
	}

	return c.toIssue(key, &raw), nil
}

func (c *Client) toIssue(key issuekey.Key, raw *issue) *tracker.Issue {
	out := &tracker.Issue{
		Key:      string(key),
		Summary:  raw.Fields.Summary,
		URL:      c.baseURL + "/browse/" + string(key),
		Estimate: estimate(raw.Fields.Estimate),
	}
	if raw.Key != "" {
		out.Key = raw.Key
	}
	if s := raw.Fields.Status; s != nil {
		out.Status = s.Name
	}
	if t := raw.Fields.IssueType; t != nil {
		out.Type = tracker.Type{Name: t.Name, IconURL: t.IconURL}
	}
	if p := raw.Fields.Project; p != nil {
		out.Project = tracker.Project{
			Name: p.Name,
			Key:  p.Key,
			URL:  c.baseURL + "/browse/" + p.Key,
		}
	}
	for _, name := range raw.Fields.Labels {
		jql := fmt.Sprintf("project = %s AND labels = %s ORDER BY created DESC", out.Project.Key, name)
		out.Labels = append(out.Labels, tracker.Label{
			Name: name,
			URL:  c.baseURL + "/issues?" + url.Values{"jql": {jql}}.Encode(),
		})
	}
	return out
}

// estimate renders the story point field, which Jira returns as a number, a
// string, or null.
func estimate(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

func (c *Client) get(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "jiralint/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w", tracker.ErrTimeout, err)
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w", tracker.ErrTimeout, err)
		}
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, tracker.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: jira API returned %d", tracker.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("jira API returned %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
