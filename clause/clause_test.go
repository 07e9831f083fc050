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

package clause_test

import (
	"context"
	"sort"
	"testing"

	"github.com/graphilp/ilp/clause"
	"github.com/graphilp/ilp/internal/fixturedb"
	"github.com/graphilp/ilp/schema"
)

func discoverDemoSchema(t *testing.T) *schema.Schema {
	t.Helper()
	driver := fixturedb.PersonCompanyDemo()
	s, err := schema.Discover(context.Background(), driver, "demo")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	return s
}

func TestNewFromIsaRenders(t *testing.T) {
	s := discoverDemoSchema(t)
	person, _ := s.Lookup("person")

	c := clause.NewFromIsa(person, s)
	want := "$instance_0 isa person"
	if got := c.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

// TestVariablesMatchUsedVariables is invariant 1 from §8: every variable
// mentioned by a literal must have a non-empty entry in the type
// environment, so Variables() and UsedVariables() must agree (as sets).
func TestVariablesMatchUsedVariables(t *testing.T) {
	s := discoverDemoSchema(t)
	person, _ := s.Lookup("person")
	parentRole, _ := s.Lookup("parenthood:parent")

	c := clause.NewFromIsa(person, s)
	c = c.ExtendWithPlayedLinks(clause.NewVariable(clause.InstanceVarName), parentRole, s)

	bound := varNames(c.Variables())
	used := varNames(c.UsedVariables())
	sort.Strings(bound)
	sort.Strings(used)

	if len(bound) != len(used) {
		t.Fatalf("Variables() = %v, UsedVariables() = %v: different sizes", bound, used)
	}
	for i := range bound {
		if bound[i] != used[i] {
			t.Errorf("Variables() = %v, UsedVariables() = %v: mismatch", bound, used)
			break
		}
	}

	for _, v := range c.Variables() {
		env, ok := c.TypeEnv(v)
		if !ok || env.Len() == 0 {
			t.Errorf("variable %s has empty or missing type environment", v)
		}
	}
}

func varNames(vs []clause.Variable) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name()
	}
	return out
}

func TestExtendWithIsaNarrowsToSubtypes(t *testing.T) {
	s := discoverDemoSchema(t)
	person, _ := s.Lookup("person")

	v := clause.NewVariable(clause.InstanceVarName)
	c := clause.Empty().ExtendWithIsa(v, person, s)

	env, ok := c.TypeEnv(v)
	if !ok {
		t.Fatalf("variable %s not bound after ExtendWithIsa", v)
	}
	// §8 invariant 6: Isa(v, T) narrows T(v) to a subset of
	// subtypes(T) ∪ {T}; with no declared subtypes that is just {T}.
	if !env.Contains(person) {
		t.Errorf("type env for %s does not contain person", v)
	}
}

func TestExtendWithHasAddsAttrVariable(t *testing.T) {
	s := discoverDemoSchema(t)
	person, _ := s.Lookup("person")
	name, _ := s.Lookup("name")

	c := clause.NewFromIsa(person, s)
	c = c.ExtendWithHas(clause.NewVariable(clause.InstanceVarName), name, s)
	vars := c.Variables()
	if len(vars) != 2 {
		t.Fatalf("Variables() = %v, want 2 entries", vars)
	}
}
