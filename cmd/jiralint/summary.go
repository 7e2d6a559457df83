/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"os"

	"chainguard.dev/jiralint/prvalidation"
)

// writeSummary appends the report to the Actions job summary file. An empty
// path disables it.
func writeSummary(path string, d prvalidation.Details) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening summary: %w", err)
	}
	if _, err := f.WriteString(d.Markdown()); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing summary: %w", err)
	}
	return f.Close()
}
