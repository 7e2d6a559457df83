/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package comments

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Similarity scores two titles between 0 (nothing in common) and 1 (equal)
// using the case-sensitive Sørensen–Dice coefficient over character bigrams.
// Whitespace is ignored.
func Similarity(a, b string) float64 {
	a, b = stripSpace(a), stripSpace(b)
	if a == b {
		return 1
	}
	if len([]rune(a)) < 2 || len([]rune(b)) < 2 {
		return 0
	}
	return strutil.Similarity(a, b, &metrics.SorensenDice{
		CaseSensitive: true,
		NgramSize:     2,
	})
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func titleBand(score float64) string {
	switch {
	case score < 0.2:
		return "quite"
	case score <= 0.4:
		return "slightly"
	default:
		return "close"
	}
}
