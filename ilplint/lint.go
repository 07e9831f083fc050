// Copyright 2026 The ILP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ilplint checks the quality of a learned FOIL theory or TILDE tree:
// clauses that grew needlessly long, literals repeated within one clause,
// variables introduced and then never constrained further, and tree splits
// or leaves that suggest the search bounds were too loose. It does not
// re-run the oracle; every check is static, over the clause and tree
// structures the learners already built.
package ilplint

import (
	"fmt"

	"github.com/graphilp/ilp/clause"
	"github.com/graphilp/ilp/tilde"
)

// Severity levels for lint findings.
type Severity int

const (
	// SeverityInfo is for informational findings that may not indicate a problem.
	SeverityInfo Severity = iota
	// SeverityWarning is for findings that likely indicate a problem.
	SeverityWarning
	// SeverityError is for findings that likely indicate a mistuned search bound.
	SeverityError
)

// MarshalJSON encodes severity as a JSON string.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// String returns the human-readable name of a severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity parses a severity string. Returns SeverityInfo if unrecognized.
func ParseSeverity(s string) Severity {
	switch s {
	case "warning":
		return SeverityWarning
	case "error":
		return SeverityError
	default:
		return SeverityInfo
	}
}

// LintResult represents a single finding from a lint check.
type LintResult struct {
	// RuleName is the machine-readable name of the lint rule.
	RuleName string `json:"rule"`
	// Severity of the finding.
	Severity Severity `json:"severity"`
	// Source names the theory clause index or tree node the finding is
	// about, e.g. "clause[2]" or "root/left".
	Source string `json:"source,omitempty"`
	// Message is a human-readable description of the finding.
	Message string `json:"message"`
}

// LintConfig holds the toggleable configuration for all lint rules.
type LintConfig struct {
	// MaxClauseLength is the threshold for the overly-complex-clause check.
	// Defaults to ilpconfig.Default().MaxClauseLength when zero.
	MaxClauseLength int
	// MinLeafCoverage is the threshold, as a fraction of the parent's
	// dataset size, below which a shrinking child is still flagged as a
	// weak split. Defaults to 0.05 when zero.
	MinLeafCoverage float64
	// DisabledRules is a set of rule names to skip.
	DisabledRules map[string]bool
	// MinSeverity: findings below this severity are suppressed from output.
	MinSeverity Severity
}

// DefaultConfig returns a LintConfig with sensible defaults.
func DefaultConfig() LintConfig {
	return LintConfig{
		MaxClauseLength: 10,
		MinLeafCoverage: 0.05,
		DisabledRules:   map[string]bool{},
		MinSeverity:     SeverityInfo,
	}
}

// LintInput bundles everything a lint check needs. Either Theory or Tree may
// be nil; clause rules skip when Theory is nil, tree rules skip when Tree
// is nil.
type LintInput struct {
	// Theory is a FOIL theory: an ordered list of clauses covering a class.
	Theory []clause.Clause
	// Tree is the root of a TILDE decision tree. Nil if there is none.
	Tree *tilde.Node
}

// Rule is the interface every lint check implements.
type Rule interface {
	// Name returns the unique, hyphen-separated rule name.
	Name() string
	// Description returns a one-line description suitable for --list-rules.
	Description() string
	// DefaultSeverity returns the severity level when no override is configured.
	DefaultSeverity() Severity
	// Check runs the lint check against the input and returns zero or more findings.
	Check(input *LintInput, config LintConfig) []LintResult
}

// AllRules returns all built-in lint rules.
func AllRules() []Rule {
	return []Rule{
		&OverlyComplexClauseRule{},
		&DuplicateLiteralRule{},
		&SingletonVariableRule{},
		&ImpureLeafRule{},
		&WeakSplitRule{},
	}
}

// Linter orchestrates running rules over a theory and/or a tree.
type Linter struct {
	config LintConfig
	rules  []Rule
}

// NewLinter creates a Linter with the given config and all registered rules.
func NewLinter(config LintConfig) *Linter {
	if config.MaxClauseLength <= 0 {
		config.MaxClauseLength = DefaultConfig().MaxClauseLength
	}
	if config.MinLeafCoverage <= 0 {
		config.MinLeafCoverage = DefaultConfig().MinLeafCoverage
	}
	return &Linter{config: config, rules: AllRules()}
}

// Lint runs every enabled rule against input and returns the findings at or
// above the configured minimum severity.
func (l *Linter) Lint(input *LintInput) []LintResult {
	var results []LintResult
	for _, rule := range l.rules {
		if l.config.DisabledRules[rule.Name()] {
			continue
		}
		for _, f := range rule.Check(input, l.config) {
			if f.Severity >= l.config.MinSeverity {
				results = append(results, f)
			}
		}
	}
	return results
}

func clauseSource(index int) string {
	return fmt.Sprintf("clause[%d]", index)
}
