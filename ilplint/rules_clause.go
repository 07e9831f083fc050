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

package ilplint

import (
	"fmt"

	"github.com/graphilp/ilp/clause"
)

// OverlyComplexClauseRule flags theory clauses with too many literals.
type OverlyComplexClauseRule struct{}

func (r *OverlyComplexClauseRule) Name() string            { return "overly-complex-clause" }
func (r *OverlyComplexClauseRule) Description() string     { return "Flags clauses with too many literals" }
func (r *OverlyComplexClauseRule) DefaultSeverity() Severity { return SeverityInfo }

func (r *OverlyComplexClauseRule) Check(input *LintInput, config LintConfig) []LintResult {
	var results []LintResult
	for i, c := range input.Theory {
		if c.Len() > config.MaxClauseLength {
			results = append(results, LintResult{
				RuleName: r.Name(),
				Severity: r.DefaultSeverity(),
				Source:   clauseSource(i),
				Message:  fmt.Sprintf("clause %s has %d literals (threshold: %d); consider a tighter hypothesis space or a lower MaxClauseLength", c, c.Len(), config.MaxClauseLength),
			})
		}
	}
	return results
}

// DuplicateLiteralRule flags clauses that render the same literal twice.
// A refinement operator that is working correctly never produces these, so a
// finding here usually means a refine-order or narrowing bug upstream.
type DuplicateLiteralRule struct{}

func (r *DuplicateLiteralRule) Name() string            { return "duplicate-literal" }
func (r *DuplicateLiteralRule) Description() string     { return "Flags a literal repeated within one clause" }
func (r *DuplicateLiteralRule) DefaultSeverity() Severity { return SeverityError }

func (r *DuplicateLiteralRule) Check(input *LintInput, config LintConfig) []LintResult {
	var results []LintResult
	for i, c := range input.Theory {
		seen := map[string]bool{}
		for _, lit := range c.Literals() {
			key := renderLiteral(lit)
			if seen[key] {
				results = append(results, LintResult{
					RuleName: r.Name(),
					Severity: r.DefaultSeverity(),
					Source:   clauseSource(i),
					Message:  fmt.Sprintf("clause %s repeats the literal %q", c, key),
				})
				continue
			}
			seen[key] = true
		}
	}
	return results
}

// SingletonVariableRule flags a variable other than the target variable that
// only one literal of a clause mentions: the literal that introduced it, with
// no later literal constraining it further. It is not wrong — the
// refinement operator is free to leave a variable untouched — but it is a
// sign the search spent a refinement step without narrowing the hypothesis.
type SingletonVariableRule struct{}

func (r *SingletonVariableRule) Name() string        { return "singleton-variable" }
func (r *SingletonVariableRule) Description() string { return "Flags a variable mentioned by only one literal" }
func (r *SingletonVariableRule) DefaultSeverity() Severity { return SeverityInfo }

func (r *SingletonVariableRule) Check(input *LintInput, config LintConfig) []LintResult {
	var results []LintResult
	for i, c := range input.Theory {
		counts := map[clause.Variable]int{}
		for _, lit := range c.Literals() {
			for _, v := range literalVars(lit) {
				counts[v]++
			}
		}
		for _, v := range c.Variables() {
			if v.Name() == clause.InstanceVarName {
				continue
			}
			if counts[v] <= 1 {
				results = append(results, LintResult{
					RuleName: r.Name(),
					Severity: r.DefaultSeverity(),
					Source:   clauseSource(i),
					Message:  fmt.Sprintf("clause %s introduces %s but never constrains it further", c, v),
				})
			}
		}
	}
	return results
}

// renderLiteral produces a canonical text rendering of a literal for
// duplicate detection. Literal.render is package-private to clause (the
// literal sum is closed there), so this type-switches on the exported
// concrete types instead of depending on that internal method.
func renderLiteral(lit clause.Literal) string {
	switch l := lit.(type) {
	case clause.Isa:
		return fmt.Sprintf("isa(%s,%s)", l.Var, l.Type.Label())
	case clause.Has:
		return fmt.Sprintf("has(%s,%s,%s)", l.Owner, l.Type.Label(), l.AttrVar)
	case clause.HasValue:
		return fmt.Sprintf("hasvalue(%s,%s,%s)", l.Owner, l.Type.Label(), l.Value.Render())
	case clause.Links:
		return fmt.Sprintf("links(%s,%s,%s)", l.Relation, l.Role.Label(), l.Player)
	case clause.CompareVars:
		return fmt.Sprintf("cmpvars(%s,%s,%s)", l.Lhs, l.Comparator, l.Rhs)
	case clause.CompareConst:
		return fmt.Sprintf("cmpconst(%s,%s,%s)", l.Var, l.Comparator, l.Value.Render())
	default:
		return fmt.Sprintf("%v", l)
	}
}

// literalVars mirrors the same type switch to recover the variables a
// literal mentions, for the same reason renderLiteral does.
func literalVars(lit clause.Literal) []clause.Variable {
	switch l := lit.(type) {
	case clause.Isa:
		return []clause.Variable{l.Var}
	case clause.Has:
		return []clause.Variable{l.Owner, l.AttrVar}
	case clause.HasValue:
		return []clause.Variable{l.Owner}
	case clause.Links:
		return []clause.Variable{l.Relation, l.Player}
	case clause.CompareVars:
		return []clause.Variable{l.Lhs, l.Rhs}
	case clause.CompareConst:
		return []clause.Variable{l.Var}
	default:
		return nil
	}
}
