/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package issuekey recovers tracker issue keys (PROJECT-NUMBER) from free-form
// text such as branch names and commit messages.
//
// The grammar used for matching is explicit: a KeyGrammar value selects the
// project-code charset, case handling, anchoring, and which match wins when a
// string carries more than one key. A grammar is compiled once into an
// Extractor, which is safe for concurrent use.
//
// # Basic Usage
//
//	ex := issuekey.MustExtractor(issuekey.DefaultGrammar)
//
//	ex.Keys("MOJO-6789/task_with_underscores-ES-43") // [MOJO-6789 ES-43]
//	ex.Key("MOJO-6789/task_with_underscores-ES-43")  // ES-43
//	ex.Keys("feature/missingKey")                     // []
//
// With DefaultGrammar the text is scanned from the end so that the key
// appended last to a branch name is preferred over earlier decoys.
// StrictGrammar only accepts a key that opens the text and is directly
// followed by a hyphen.
package issuekey
