/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package issuekey

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKeys(t *testing.T) {
	ex := MustExtractor(DefaultGrammar)

	tests := []struct {
		name  string
		input string
		want  []Key
	}{{
		name:  "empty",
		input: "",
	}, {
		name:  "no key",
		input: "feature/missingKey",
	}, {
		name:  "release branch",
		input: "release/v1.8.0",
	}, {
		name:  "key at start",
		input: "BF-18-my-feature",
		want:  []Key{"BF-18"},
	}, {
		name:  "lowercase suffix",
		input: "fix/login-protocol-es-43",
		want:  []Key{"ES-43"},
	}, {
		name:  "mixed case suffix",
		input: "nudge-live-chat-users-Es-172",
		want:  []Key{"ES-172"},
	}, {
		name:  "double dash separator",
		input: "chore/task-with-dashes--MOJO-6789",
		want:  []Key{"MOJO-6789"},
	}, {
		name:  "underscore separator",
		input: "feature/newFeature_esch-100",
		want:  []Key{"ESCH-100"},
	}, {
		name:  "key after slash",
		input: "chore/MOJO-6789-task_with_underscores",
		want:  []Key{"MOJO-6789"},
	}, {
		name:  "two keys",
		input: "MOJO-6789/task_with_underscores-ES-43",
		want:  []Key{"MOJO-6789", "ES-43"},
	}, {
		name:  "digits in project code",
		input: "ASAP2-123-my-feature",
		want:  []Key{"ASAP2-123"},
	}, {
		name:  "digits inside project code",
		input: "feature/p2p-1",
		want:  []Key{"P2P-1"},
	}, {
		name:  "project code too long",
		input: "ABCDEFGHIJKL-999",
	}, {
		name:  "key glued to trailing letters",
		input: "ENG-117bad commit",
	}, {
		name:  "key embedded in longer token",
		input: "see WES-430 for details",
		want:  []Key{"WES-430"},
	}, {
		name:  "non-ASCII letter before key",
		input: "fooéENG-7",
	}, {
		name:  "non-ASCII letter after key",
		input: "feature/ENG-7ñ",
	}, {
		name:  "non-ASCII digit after key",
		input: "feature/ENG-7٣",
	}, {
		name:  "non-ASCII punctuation around key",
		input: "¿ENG-7?",
		want:  []Key{"ENG-7"},
	}, {
		name:  "numeric project code",
		input: "bump 2-3",
	}, {
		name:  "mixed bag",
		input: "BF-18-my-feature-abc-123-X-88-ABCDEFGHIJKL-999-abc-XY-Z-333-abcDEF-33-ABCDEF-33_abcdef-33_ABC-1_PB2-1_pb2-1_P2P-1_p2p-1",
		want: []Key{
			"BF-18", "ABC-123", "X-88", "Z-333", "ABCDEF-33", "ABCDEF-33",
			"ABCDEF-33", "ABC-1", "PB2-1", "PB2-1", "P2P-1", "P2P-1",
		},
	}, {
		name:  "non-ascii neighbours",
		input: "fix/überall-ENG-7",
		want:  []Key{"ENG-7"},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ex.Keys(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Keys(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestKeyPrefersLast(t *testing.T) {
	ex := MustExtractor(DefaultGrammar)

	tests := []struct {
		input string
		want  Key
	}{
		{"MOJO-6789/task_with_underscores-ES-43", "ES-43"},
		{"chore/task--MOJO-6789", "MOJO-6789"},
		{"ENG-1-then-ENG-2", "ENG-2"},
		{"feature/missingKey", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ex.Key(tt.input); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestKeyPrefersFirst(t *testing.T) {
	g := DefaultGrammar
	g.Prefer = PreferFirst
	ex := MustExtractor(g)

	if got, want := ex.Key("MOJO-6789/task_with_underscores-ES-43"), Key("MOJO-6789"); got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestMatchesPositions(t *testing.T) {
	ex := MustExtractor(DefaultGrammar)

	got := ex.Matches("fix/é-eng-12 and ABC-3")
	want := []Match{{
		Key:   "ENG-12",
		Raw:   "eng-12",
		Start: 6,
		End:   12,
	}, {
		Key:   "ABC-3",
		Raw:   "ABC-3",
		Start: 17,
		End:   22,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Matches() mismatch (-want +got):\n%s", diff)
	}
}

func TestKeysIdempotent(t *testing.T) {
	ex := MustExtractor(DefaultGrammar)

	for _, k := range []Key{"A-1", "ENG-117", "PB2-1", "P2P-10", "ABCDEFGHIJ-5", "X9-0"} {
		got := ex.Keys(string(k))
		if diff := cmp.Diff([]Key{k}, got); diff != "" {
			t.Errorf("Keys(%q) mismatch (-want +got):\n%s", k, diff)
		}
		if again := ex.Keys(string(got[0])); !cmp.Equal(again, got) {
			t.Errorf("Keys(Keys(%q)) = %v, want %v", k, again, got)
		}
	}
}

func TestCaseSensitiveGrammar(t *testing.T) {
	g := DefaultGrammar
	g.IgnoreCase = false
	ex := MustExtractor(g)

	if got := ex.Keys("eng-117 lowercase"); got != nil {
		t.Errorf("Keys() = %v, want none", got)
	}
	if got, want := ex.Key("ENG-117 uppercase"), Key("ENG-117"); got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
	// A lowercase run right before the key is a word, not a separator.
	if got := ex.Keys("abcDEF-33"); got != nil {
		t.Errorf("Keys() = %v, want none", got)
	}
}

func TestDigitPolicies(t *testing.T) {
	tests := []struct {
		policy DigitPolicy
		input  string
		want   []Key
	}{
		{DigitsNone, "PB2-1", nil},
		{DigitsNone, "ENG-1", []Key{"ENG-1"}},
		{DigitsTrailing, "ASAP2-1", []Key{"ASAP2-1"}},
		{DigitsTrailing, "P2P-1", nil},
		{DigitsAnywhere, "P2P-1", []Key{"P2P-1"}},
	}
	for _, tt := range tests {
		g := DefaultGrammar
		g.ProjectDigits = tt.policy
		got := MustExtractor(g).Keys(tt.input)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%v: Keys(%q) mismatch (-want +got):\n%s", tt.policy, tt.input, diff)
		}
	}
}

func TestStrictGrammar(t *testing.T) {
	ex := MustExtractor(StrictGrammar)

	tests := []struct {
		input string
		want  Key
	}{
		{"BF-18-my-feature-abc-123-X-88", "BF-18"},
		{"ASAP2-123-my-feature", "ASAP2-123"},
		{"eng-115-my-feature", ""},
		{"EN1G-115-my-feature", ""},
		{"fix/login-protocol-ES-43", ""},
		{"chore/MOJO-6789-task_with_underscores", ""},
		{"MOJO-6789/task_with_underscores", ""},
		{"MOJO-6789", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ex.Key(tt.input); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestContains(t *testing.T) {
	ex := MustExtractor(DefaultGrammar)

	tests := []struct {
		text string
		key  Key
		want bool
	}{
		{"ENG-117 great commit message", "ENG-117", true},
		{"ENG-117 - okay commit message", "ENG-117", true},
		{"fix: thing (ENG-117)", "ENG-117", true},
		{"eng-117 bad commit message", "ENG-117", false},
		{"ENG-117bad commit message", "ENG-117", false},
		{"WES-430 unrelated", "ES-43", false},
		{"ES-430 unrelated", "ES-43", false},
		{"fix: ÉENG-117 thing", "ENG-117", false},
		{"fix: ENG-117ü thing", "ENG-117", false},
		{"fix: ENG-117é", "ENG-117", false},
		{"fix: «ENG-117» thing", "ENG-117", true},
		{"no key at all", "ENG-117", false},
		{"ENG-117 anything", "", false},
	}
	for _, tt := range tests {
		if got := ex.Contains(tt.text, tt.key); got != tt.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tt.text, tt.key, got, tt.want)
		}
	}
}

func TestKeyParts(t *testing.T) {
	k := Key("PB2-17")
	if got, want := k.Project(), "PB2"; got != want {
		t.Errorf("Project() = %q, want %q", got, want)
	}
	if got, want := k.Number(), "17"; got != want {
		t.Errorf("Number() = %q, want %q", got, want)
	}
	if got := Key("").Project(); got != "" {
		t.Errorf("Project() of empty key = %q, want empty", got)
	}
}
