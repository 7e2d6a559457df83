/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package comments

import (
	"math"
	"strings"
	"testing"

	"chainguard.dev/jiralint/prvalidation"
	"chainguard.dev/jiralint/tracker"
)

func mustRender(t *testing.T, render func() (string, error)) string {
	t.Helper()
	s, err := render()
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	return s
}

func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q:\n%s", w, got)
		}
	}
}

func assertNotContains(t *testing.T, got string, unwanted ...string) {
	t.Helper()
	for _, w := range unwanted {
		if strings.Contains(got, w) {
			t.Errorf("output unexpectedly contains %q:\n%s", w, got)
		}
	}
}

func TestNeedsDescription(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{body: "", want: true},
		{body: "# some description", want: true},
		{body: "--\nadded_by_jira_lint\n", want: false},
	}
	for _, tt := range tests {
		if got := NeedsDescription(tt.body); got != tt.want {
			t.Errorf("NeedsDescription(%q) = %v, want %v", tt.body, got, tt.want)
		}
	}
}

func TestLabelsForDisplay(t *testing.T) {
	if got := LabelsForDisplay(nil); got != "-" {
		t.Errorf("LabelsForDisplay(nil) = %q, want %q", got, "-")
	}

	got := LabelsForDisplay([]tracker.Label{
		{Name: "backend", URL: "https://x/issues?jql=a"},
		{Name: "perf", URL: "https://x/issues?jql=b"},
	})
	want := `<a href="https://x/issues?jql=a" title="backend">backend</a>, <a href="https://x/issues?jql=b" title="perf">perf</a>`
	if got != want {
		t.Errorf("LabelsForDisplay() = %q, want %q", got, want)
	}
}

func TestDescription(t *testing.T) {
	issue := &tracker.Issue{
		Key:     "eng-117",
		Summary: "Make the linter faster",
		URL:     "https://example.atlassian.net/browse/ENG-117",
		Type:    tracker.Type{Name: "Story", IconURL: "https://example/story.svg"},
		Status:  "In Progress",
	}

	got := mustRender(t, func() (string, error) { return New().Description("original body", issue) })

	assertContains(t, got,
		`<a href="https://example.atlassian.net/browse/ENG-117" title="ENG-117" target="_blank">ENG-117</a>`,
		"<td>Make the linter faster</td>",
		`<img alt="Story" src="https://example/story.svg" />`,
		"<td>N/A</td>",
		"<td>-</td>",
		HiddenMarker,
	)
	if !strings.HasSuffix(got, "\n---\n\noriginal body") {
		t.Errorf("Description() should end with the separator and original body:\n%s", got)
	}
	if NeedsDescription(got) {
		t.Error("NeedsDescription(Description()) = true, want false")
	}
}

func TestNoKeyBranch(t *testing.T) {
	got := mustRender(t, func() (string, error) { return New(WithStandardsURL("https://example.com/standards")).NoKeyBranch("feature/<b>oops") })
	assertContains(t, got,
		"Your branch: feature/&lt;b&gt;oops",
		`<a href="https://example.com/standards">our standards</a>`,
	)
}

func TestInvalidStatus(t *testing.T) {
	got := mustRender(t, func() (string, error) { return New().InvalidStatus("Done", []string{"In Progress", "In Review"}) })
	assertContains(t, got, "<td>Done</td>", "<td>In Progress, In Review</td>")
}

func TestHugePR(t *testing.T) {
	got := mustRender(t, func() (string, error) { return New().HugePR(1200, 800) })
	assertContains(t, got, "<td>1200 :no_good_woman: </td>", ":arrow_down: 800", "giphy.gif")

	got = mustRender(t, func() (string, error) { return New(WithSkipGIFs(true)).HugePR(1200, 800) })
	assertNotContains(t, got, "giphy.gif")
}

func TestTitleSimilarity(t *testing.T) {
	got := mustRender(t, func() (string, error) { return New().TitleSimilarity("Make the linter faster", "Make the linter faster") })
	assertContains(t, got, "I'm a bot and I 👍 this PR title.", "giphy.gif")

	got = mustRender(t, func() (string, error) { return New(WithSkipGIFs(true)).TitleSimilarity("Make the linter faster", "Make the linter faster") })
	assertNotContains(t, got, "giphy.gif")

	got = mustRender(t, func() (string, error) { return New().TitleSimilarity("abc", "xyz") })
	assertContains(t, got, "quite different", "<td>abc</td>", "<td>xyz</td>")
}

func TestTitleBand(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{score: 0, want: "quite"},
		{score: 0.19, want: "quite"},
		{score: 0.2, want: "slightly"},
		{score: 0.4, want: "slightly"},
		{score: 0.41, want: "close"},
		{score: 1, want: "close"},
	}
	for _, tt := range tests {
		if got := titleBand(tt.score); got != tt.want {
			t.Errorf("titleBand(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "same", a: "Make the linter faster", b: "Make the linter faster", want: 1},
		{name: "disjoint", a: "abc", b: "xyz", want: 0},
		{name: "whitespace ignored", a: "a b  c", b: "abc", want: 1},
		{name: "single rune", a: "a", b: "ab", want: 0},
		// HelloWorld and helloworld share 6 of their 9 bigrams each.
		{name: "case sensitive", a: "Hello World", b: "helloworld", want: 2.0 * 6 / 18},
		// abcdef and abcdgh share ab, bc and cd.
		{name: "no space bigrams", a: "ab cd ef", b: "ab cd gh", want: 2.0 * 3 / 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCommitComments(t *testing.T) {
	results := []prvalidation.CommitResult{{
		Commit:      prvalidation.Commit{SHA: "aaa111", Message: "WES-430 other work\n\nbody"},
		HasIssueKey: true,
		Reason:      prvalidation.ReasonInvalid,
	}}

	got := mustRender(t, func() (string, error) { return New().WrongKeyCommits("ENG-117", results) })
	assertContains(t, got, "DIFFERENT JIRA KEYS", "Expected key: ENG-117", "‣ aaa111 - WES-430 other work")
	assertNotContains(t, got, "body")

	missing := []prvalidation.CommitResult{{
		Commit: prvalidation.Commit{SHA: "bbb222", Message: "fix things"},
		Reason: prvalidation.ReasonInvalid,
	}}
	got = mustRender(t, func() (string, error) { return New().MissingKeyCommits("ENG-117", prvalidation.PlacementTrailer, missing) })
	assertContains(t, got, "MISSING JIRA KEYS", "‣ bbb222 - fix things", "<code>jira: ENG-117</code>")

	got = mustRender(t, func() (string, error) { return New().MissingKeyCommits("ENG-117", prvalidation.PlacementPrefix, missing) })
	assertContains(t, got, "<code>ENG-117 feat: build new CMS</code></pre>")
	assertNotContains(t, got, "<br />")
}

func TestInvalidTitle(t *testing.T) {
	got := mustRender(t, func() (string, error) { return New().InvalidTitle("speed things up", "ENG-117") })
	assertContains(t, got, "Your title: speed things up", "<code>ENG-117 </code>")
}
