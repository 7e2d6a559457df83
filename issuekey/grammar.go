/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package issuekey

import (
	"fmt"
	"strings"
)

// DigitPolicy controls where digits may appear in a project code.
type DigitPolicy int

const (
	// DigitsAnywhere allows digits after the leading letter ("P2P", "PB2").
	DigitsAnywhere DigitPolicy = iota
	// DigitsTrailing allows a run of digits after the letters ("ASAP2").
	DigitsTrailing
	// DigitsNone allows letters only.
	DigitsNone
)

// Anchor controls where in the text a key may appear.
type Anchor int

const (
	// AnchorAnywhere finds keys anywhere in the text.
	AnchorAnywhere Anchor = iota
	// AnchorStart only accepts a key that opens the text and is directly
	// followed by a hyphen.
	AnchorStart
)

// Preference selects which match Extractor.Key returns.
type Preference int

const (
	// PreferLast returns the match closest to the end of the text.
	PreferLast Preference = iota
	// PreferFirst returns the match closest to the start of the text.
	PreferFirst
)

// KeyGrammar describes the issue key syntax an Extractor recognizes.
type KeyGrammar struct {
	ProjectDigits DigitPolicy `yaml:"projectDigits"`
	IgnoreCase    bool        `yaml:"ignoreCase"`
	Anchor        Anchor      `yaml:"anchor"`
	Prefer        Preference  `yaml:"prefer"`
}

var (
	// DefaultGrammar accepts digits in project codes, ignores case, scans the
	// whole text and prefers the right-most key.
	DefaultGrammar = KeyGrammar{
		ProjectDigits: DigitsAnywhere,
		IgnoreCase:    true,
		Anchor:        AnchorAnywhere,
		Prefer:        PreferLast,
	}

	// StrictGrammar only accepts an uppercase key at the very start of the
	// text, followed by a hyphen ("ENG-117-some-branch").
	StrictGrammar = KeyGrammar{
		ProjectDigits: DigitsTrailing,
		IgnoreCase:    false,
		Anchor:        AnchorStart,
		Prefer:        PreferFirst,
	}
)

// Validate reports whether every field of g holds a known value.
func (g KeyGrammar) Validate() error {
	switch g.ProjectDigits {
	case DigitsAnywhere, DigitsTrailing, DigitsNone:
	default:
		return fmt.Errorf("unknown project digit policy %d", g.ProjectDigits)
	}
	switch g.Anchor {
	case AnchorAnywhere, AnchorStart:
	default:
		return fmt.Errorf("unknown anchor %d", g.Anchor)
	}
	switch g.Prefer {
	case PreferLast, PreferFirst:
	default:
		return fmt.Errorf("unknown preference %d", g.Prefer)
	}
	return nil
}

// projectPattern is the project code in reading order.
func (g KeyGrammar) projectPattern() string {
	switch g.ProjectDigits {
	case DigitsTrailing:
		return `[A-Z]{1,10}[0-9]*`
	case DigitsNone:
		return `[A-Z]{1,10}`
	default:
		return `[A-Z][A-Z0-9]{0,9}`
	}
}

// reversedProjectPattern matches the project code of a reversed key.
func (g KeyGrammar) reversedProjectPattern() string {
	switch g.ProjectDigits {
	case DigitsTrailing:
		return `[0-9]*[A-Z]{1,10}`
	case DigitsNone:
		return `[A-Z]{1,10}`
	default:
		return `[A-Z0-9]{0,9}[A-Z]`
	}
}

// pattern returns the expression the Extractor compiles. For AnchorAnywhere
// it is written against reversed text: number first, then the project code.
// The alphanumeric guards on both ends keep a key from being cut out of a
// longer token.
func (g KeyGrammar) pattern() string {
	if g.Anchor == AnchorStart {
		return `\A` + g.projectPattern() + `-[0-9]+(?=-)`
	}
	return `(?<![\p{L}\p{N}])[0-9]+-` + g.reversedProjectPattern() + `(?![\p{L}\p{N}])`
}

var (
	digitPolicyNames = map[DigitPolicy]string{
		DigitsAnywhere: "anywhere",
		DigitsTrailing: "trailing",
		DigitsNone:     "none",
	}
	anchorNames = map[Anchor]string{
		AnchorAnywhere: "anywhere",
		AnchorStart:    "start",
	}
	preferenceNames = map[Preference]string{
		PreferLast:  "last",
		PreferFirst: "first",
	}
)

func (d DigitPolicy) String() string { return nameOf(digitPolicyNames, d) }
func (a Anchor) String() string      { return nameOf(anchorNames, a) }
func (p Preference) String() string  { return nameOf(preferenceNames, p) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DigitPolicy) UnmarshalText(text []byte) error {
	return parseName(digitPolicyNames, string(text), d)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Anchor) UnmarshalText(text []byte) error {
	return parseName(anchorNames, string(text), a)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preference) UnmarshalText(text []byte) error {
	return parseName(preferenceNames, string(text), p)
}

func nameOf[T ~int](names map[T]string, v T) string {
	if n, ok := names[v]; ok {
		return n
	}
	return fmt.Sprintf("%T(%d)", v, int(v))
}

func parseName[T ~int](names map[T]string, s string, out *T) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for v, n := range names {
		if n == s {
			*out = v
			return nil
		}
	}
	return fmt.Errorf("unknown %T %q", *out, s)
}
