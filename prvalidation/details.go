/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package prvalidation validates the commits and title of a pull request
// against the issue key it is linked to, and renders the validation report.
package prvalidation

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Details holds the outcome of a lint run in a form suitable for the CI job
// summary.
type Details struct {
	// Generation is a hash of SHA + title + body identifying the PR snapshot.
	Generation  string         `json:"generation"`
	Branch      string         `json:"branch"`
	Key         string         `json:"key,omitempty"`
	IssueStatus string         `json:"issueStatus,omitempty"`
	Conclusion  string         `json:"conclusion"`
	TitleValid  bool           `json:"titleValid"`
	Commits     *CommitSummary `json:"commits,omitempty"`
	Issues      []string       `json:"issues,omitempty"`
}

// Markdown renders the validation details as markdown for the job summary.
func (d Details) Markdown() string {
	var sb strings.Builder
	sb.WriteString("## Jira Lint Report\n\n")

	var buf bytes.Buffer
	table := createStandardTable([]string{"Check", "Status"}, &buf)
	_ = table.Append([]string{"Branch", fmt.Sprintf("`%s`", d.Branch)})
	_ = table.Append([]string{"Issue key", orDash(d.Key)})
	_ = table.Append([]string{"Issue status", orDash(d.IssueStatus)})
	if d.Commits != nil {
		_ = table.Append([]string{"Commit messages", validity(d.Commits.Valid)})
	}
	if d.Key != "" {
		_ = table.Append([]string{"Title", validity(d.TitleValid)})
	}
	_ = table.Append([]string{"Conclusion", d.Conclusion})
	_ = table.Render()
	sb.WriteString(buf.String())

	if d.Commits != nil && len(d.Commits.Results) > 0 {
		sb.WriteString("\n### Commits\n\n")
		buf.Reset()
		table := createStandardTable([]string{"SHA", "Message", "Result"}, &buf)
		for _, r := range d.Commits.Results {
			result := string(r.Reason)
			if !r.Valid && r.HasIssueKey {
				result = "wrong key"
			} else if !r.Valid {
				result = "missing key"
			}
			_ = table.Append([]string{shortSHA(r.SHA), subject(r.Message), result})
		}
		_ = table.Render()
		sb.WriteString(buf.String())
	}

	if len(d.Issues) > 0 {
		sb.WriteString("\n### Issues\n\n")
		for _, issue := range d.Issues {
			sb.WriteString("- ")
			sb.WriteString(issue)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// ComputeGeneration creates a unique key from SHA, title, and body.
func ComputeGeneration(sha, title, body string) string {
	h := sha256.New()
	h.Write([]byte(sha))
	h.Write([]byte(title))
	h.Write([]byte(body))
	return hex.EncodeToString(h.Sum(nil))
}

func validity(ok bool) string {
	if ok {
		return "✅ Valid"
	}
	return "❌ Invalid"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// subject returns the first line of a commit message, escaped for a table cell.
func subject(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	line = strings.TrimSpace(line)
	if r := []rune(line); len(r) > 72 {
		line = string(r[:71]) + "…"
	}
	return strings.ReplaceAll(line, "|", `\|`)
}
