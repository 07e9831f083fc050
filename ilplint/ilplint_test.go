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

package ilplint_test

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/graphilp/ilp/clause"
	"github.com/graphilp/ilp/dataset"
	"github.com/graphilp/ilp/graphdb"
	"github.com/graphilp/ilp/ilplint"
	"github.com/graphilp/ilp/internal/fixturedb"
	"github.com/graphilp/ilp/schema"
	"github.com/graphilp/ilp/tilde"
)

func discoverDemoSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Discover(context.Background(), fixturedb.PersonCompanyDemo(), "demo")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	return s
}

func filterByRule(results []ilplint.LintResult, rule string) []ilplint.LintResult {
	var out []ilplint.LintResult
	for _, r := range results {
		if r.RuleName == rule {
			out = append(out, r)
		}
	}
	return out
}

func TestOverlyComplexClauseRule_Triggers(t *testing.T) {
	s := discoverDemoSchema(t)
	person, ok := s.Lookup("person")
	if !ok {
		t.Fatalf("schema has no person type")
	}
	ageAttr, ok := s.Lookup("age")
	if !ok {
		t.Fatalf("schema has no age type")
	}
	instanceVar := clause.NewVariable(clause.InstanceVarName)
	c := clause.NewFromIsa(person, s)
	for i := 0; i < 5; i++ {
		c = c.ExtendWithHasValue(instanceVar, ageAttr, graphdb.NumberValue(float64(i)), s)
	}

	cfg := ilplint.DefaultConfig()
	cfg.MaxClauseLength = 3
	linter := ilplint.NewLinter(cfg)
	results := linter.Lint(&ilplint.LintInput{Theory: []clause.Clause{c}})

	if hits := filterByRule(results, "overly-complex-clause"); len(hits) != 1 {
		t.Fatalf("got %d overly-complex-clause findings, want 1: %+v", len(hits), results)
	}
}

func TestDuplicateLiteralRule_Triggers(t *testing.T) {
	s := discoverDemoSchema(t)
	person, _ := s.Lookup("person")
	ageAttr, _ := s.Lookup("age")
	instanceVar := clause.NewVariable(clause.InstanceVarName)
	c := clause.NewFromIsa(person, s)
	c = c.ExtendWithHasValue(instanceVar, ageAttr, graphdb.NumberValue(30), s)
	c = c.ExtendWithHasValue(instanceVar, ageAttr, graphdb.NumberValue(30), s)

	linter := ilplint.NewLinter(ilplint.DefaultConfig())
	results := linter.Lint(&ilplint.LintInput{Theory: []clause.Clause{c}})

	if hits := filterByRule(results, "duplicate-literal"); len(hits) != 1 {
		t.Fatalf("got %d duplicate-literal findings, want 1: %+v", len(hits), results)
	}
}

func TestSingletonVariableRule_Triggers(t *testing.T) {
	s := discoverDemoSchema(t)
	person, _ := s.Lookup("person")
	parentRole, ok := s.Lookup("parenthood:parent")
	if !ok {
		t.Fatalf("schema has no parenthood:parent role")
	}
	instanceVar := clause.NewVariable(clause.InstanceVarName)
	c := clause.NewFromIsa(person, s)
	c = c.ExtendWithPlayedLinks(instanceVar, parentRole, s)

	linter := ilplint.NewLinter(ilplint.DefaultConfig())
	results := linter.Lint(&ilplint.LintInput{Theory: []clause.Clause{c}})

	if hits := filterByRule(results, "singleton-variable"); len(hits) != 1 {
		t.Fatalf("got %d singleton-variable findings, want 1: %+v", len(hits), results)
	}
}

func buildSyntheticTree() *tilde.Node {
	leftLeaf := &tilde.Node{
		Prefix: clause.Empty(),
		Dataset: dataset.New([]dataset.Example{
			{Instance: "a", Class: true},
			{Instance: "b", Class: false},
			{Instance: "c", Class: false},
		}),
	}
	rightLeaf := &tilde.Node{
		Prefix:  clause.Empty(),
		Dataset: dataset.New([]dataset.Example{{Instance: "d", Class: true}}),
	}
	return &tilde.Node{
		Prefix: clause.Empty(),
		Dataset: dataset.New([]dataset.Example{
			{Instance: "a", Class: true},
			{Instance: "b", Class: false},
			{Instance: "c", Class: false},
			{Instance: "d", Class: true},
		}),
		Left:  leftLeaf,
		Right: rightLeaf,
	}
}

func TestImpureLeafRule_Triggers(t *testing.T) {
	linter := ilplint.NewLinter(ilplint.DefaultConfig())
	results := linter.Lint(&ilplint.LintInput{Tree: buildSyntheticTree()})

	hits := filterByRule(results, "impure-leaf")
	if len(hits) != 1 {
		t.Fatalf("got %d impure-leaf findings, want 1: %+v", len(hits), results)
	}
	if hits[0].Source != "root/left" {
		t.Errorf("impure-leaf source = %q, want root/left", hits[0].Source)
	}
}

func TestWeakSplitRule_Triggers(t *testing.T) {
	cfg := ilplint.DefaultConfig()
	cfg.MinLeafCoverage = 0.3 // flag a child keeping more than 70% of its parent
	linter := ilplint.NewLinter(cfg)
	results := linter.Lint(&ilplint.LintInput{Tree: buildSyntheticTree()})

	hits := filterByRule(results, "weak-split")
	if len(hits) != 1 {
		t.Fatalf("got %d weak-split findings, want 1 (the 3/4 left child): %+v", len(hits), results)
	}
}

func TestLintNilTreeSkipsTreeRules(t *testing.T) {
	linter := ilplint.NewLinter(ilplint.DefaultConfig())
	results := linter.Lint(&ilplint.LintInput{Theory: nil, Tree: nil})
	if len(results) != 0 {
		t.Errorf("got %d findings over empty input, want 0: %+v", len(results), results)
	}
}

func TestAllRulesNames(t *testing.T) {
	var got []string
	for _, r := range ilplint.AllRules() {
		got = append(got, r.Name())
	}
	sort.Strings(got)

	want := []string{
		"duplicate-literal",
		"impure-leaf",
		"overly-complex-clause",
		"singleton-variable",
		"weak-split",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AllRules() names mismatch (-want +got):\n%s", diff)
	}
}

func TestDisabledRuleIsSkipped(t *testing.T) {
	s := discoverDemoSchema(t)
	person, _ := s.Lookup("person")
	ageAttr, _ := s.Lookup("age")
	instanceVar := clause.NewVariable(clause.InstanceVarName)
	c := clause.NewFromIsa(person, s)
	c = c.ExtendWithHasValue(instanceVar, ageAttr, graphdb.NumberValue(1), s)
	c = c.ExtendWithHasValue(instanceVar, ageAttr, graphdb.NumberValue(1), s)

	cfg := ilplint.DefaultConfig()
	cfg.DisabledRules["duplicate-literal"] = true
	linter := ilplint.NewLinter(cfg)
	results := linter.Lint(&ilplint.LintInput{Theory: []clause.Clause{c}})

	if hits := filterByRule(results, "duplicate-literal"); len(hits) != 0 {
		t.Errorf("duplicate-literal rule ran despite being disabled: %+v", hits)
	}
}
