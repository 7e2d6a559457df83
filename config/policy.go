/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"chainguard.dev/jiralint/issuekey"
	"chainguard.dev/jiralint/prvalidation"
	"gopkg.in/yaml.v3"
)

// Policy tunes key extraction and commit rules. It is read from the YAML
// file named by JIRALINT_CONFIG.
//
//	branchGrammar:
//	  projectDigits: trailing
//	  ignoreCase: false
//	  anchor: start
//	  prefer: first
//	commits:
//	  placement: trailer
//	  docPrefix: "docs:"
//	botBranches:
//	  - ^renovate/
type Policy struct {
	BranchGrammar issuekey.KeyGrammar `yaml:"branchGrammar"`
	Commits       CommitPolicy        `yaml:"commits"`
	BotBranches   []string            `yaml:"botBranches"`
}

// CommitPolicy configures commit message validation.
type CommitPolicy struct {
	Placement prvalidation.KeyPlacement `yaml:"placement"`
	DocPrefix string                    `yaml:"docPrefix"`
}

// DefaultPolicy is used when no policy file is configured. Fields missing
// from a policy file keep these values.
func DefaultPolicy() Policy {
	return Policy{
		BranchGrammar: issuekey.DefaultGrammar,
		Commits: CommitPolicy{
			Placement: prvalidation.PlacementAnywhere,
			DocPrefix: prvalidation.DefaultDocPrefix,
		},
	}
}

// LoadPolicy reads the policy file at path, or returns DefaultPolicy when
// path is empty.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy file: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes a YAML policy document over DefaultPolicy.
func ParsePolicy(data []byte) (Policy, error) {
	p := DefaultPolicy()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Policy{}, fmt.Errorf("parsing policy file: %w", err)
	}
	if err := p.BranchGrammar.Validate(); err != nil {
		return Policy{}, fmt.Errorf("invalid branch grammar: %w", err)
	}
	return p, nil
}

// CommitOptions returns the commit validator options for p.
func (p Policy) CommitOptions() []prvalidation.CommitOption {
	return []prvalidation.CommitOption{
		prvalidation.WithPlacement(p.Commits.Placement),
		prvalidation.WithDocPrefix(p.Commits.DocPrefix),
	}
}
