/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package issuekey

import (
	"fmt"
	"slices"

	"github.com/dlclark/regexp2"
)

// Extractor finds issue keys in text according to a KeyGrammar.
type Extractor struct {
	grammar KeyGrammar
	re      *regexp2.Regexp
}

// NewExtractor compiles g into an Extractor.
func NewExtractor(g KeyGrammar) (*Extractor, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid key grammar: %w", err)
	}
	re, err := regexp2.Compile(g.pattern(), regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compiling key grammar: %w", err)
	}
	return &Extractor{grammar: g, re: re}, nil
}

// MustExtractor is like NewExtractor but panics if g is invalid.
func MustExtractor(g KeyGrammar) *Extractor {
	e, err := NewExtractor(g)
	if err != nil {
		panic(err)
	}
	return e
}

// Grammar returns the grammar e was compiled from.
func (e *Extractor) Grammar() KeyGrammar {
	return e.grammar
}

// Matches returns every key-shaped substring of text in left-to-right order.
// It returns nil when text carries no key.
func (e *Extractor) Matches(text string) []Match {
	src := []rune(text)
	if e.grammar.Anchor == AnchorStart {
		return e.matchStart(src)
	}

	// Scan the reversed text so the greedy project code is anchored on the
	// number, and overlapping candidates resolve toward the end of the text.
	rev := make([]rune, len(src))
	for i, r := range src {
		rev[len(src)-1-i] = e.fold(r)
	}

	var found []Match
	m, err := e.re.FindRunesMatch(rev)
	for ; m != nil && err == nil; m, err = e.re.FindNextMatch(m) {
		end := len(src) - m.Index
		start := end - m.Length
		found = append(found, e.match(src, start, end))
	}
	slices.Reverse(found)
	return found
}

func (e *Extractor) matchStart(src []rune) []Match {
	fwd := make([]rune, len(src))
	for i, r := range src {
		fwd[i] = e.fold(r)
	}
	m, err := e.re.FindRunesMatch(fwd)
	if err != nil || m == nil {
		return nil
	}
	return []Match{e.match(src, m.Index, m.Index+m.Length)}
}

func (e *Extractor) match(src []rune, start, end int) Match {
	raw := src[start:end]
	key := make([]rune, len(raw))
	for i, r := range raw {
		key[i] = e.fold(r)
	}
	return Match{
		Key:   Key(string(key)),
		Raw:   string(raw),
		Start: start,
		End:   end,
	}
}

// fold uppercases ASCII letters when the grammar ignores case. Only ASCII is
// touched so rune offsets line up with the source text.
func (e *Extractor) fold(r rune) rune {
	if e.grammar.IgnoreCase && 'a' <= r && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// Keys returns the normalized keys found in text, left to right.
func (e *Extractor) Keys(text string) []Key {
	matches := e.Matches(text)
	if len(matches) == 0 {
		return nil
	}
	keys := make([]Key, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, m.Key)
	}
	return keys
}

// Key returns the preferred key in text, or "" when there is none.
func (e *Extractor) Key(text string) Key {
	matches := e.Matches(text)
	if len(matches) == 0 {
		return ""
	}
	if e.grammar.Prefer == PreferFirst {
		return matches[0].Key
	}
	return matches[len(matches)-1].Key
}

// Contains reports whether text carries key as a whole token, spelled exactly
// as given. A lowercase "eng-117" does not contain "ENG-117", and "WES-430"
// does not contain "ES-43".
func (e *Extractor) Contains(text string, key Key) bool {
	if key.IsZero() {
		return false
	}
	for _, m := range e.Matches(text) {
		if m.Raw == string(key) {
			return true
		}
	}
	return false
}
