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

package schema_test

import (
	"context"
	"testing"

	"github.com/graphilp/ilp/graphdb"
	"github.com/graphilp/ilp/internal/fixturedb"
	"github.com/graphilp/ilp/schema"
)

// TestDiscover checks §8 scenario S1 against the bundled demo fixture.
func TestDiscover(t *testing.T) {
	driver := fixturedb.PersonCompanyDemo()
	s, err := schema.Discover(context.Background(), driver, "demo",
		schema.CategoricalAttribute{Label: "is-parent"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	person, ok := s.Lookup("person")
	if !ok {
		t.Fatalf("person not found in schema")
	}
	name, ok := s.Lookup("name")
	if !ok {
		t.Fatalf("name not found in schema")
	}
	age, ok := s.Lookup("age")
	if !ok {
		t.Fatalf("age not found in schema")
	}
	if !s.Owns[person].Contains(name) {
		t.Errorf("owns[person] missing name")
	}
	if !s.Owns[person].Contains(age) {
		t.Errorf("owns[person] missing age")
	}

	parenthood, ok := s.Lookup("parenthood")
	if !ok {
		t.Fatalf("parenthood not found in schema")
	}
	parentRole, ok := s.Lookup("parenthood:parent")
	if !ok {
		t.Fatalf("parenthood:parent not found in schema")
	}
	childRole, ok := s.Lookup("parenthood:child")
	if !ok {
		t.Fatalf("parenthood:child not found in schema")
	}
	if !s.Relates[parenthood].Contains(parentRole) {
		t.Errorf("relates[parenthood] missing parenthood:parent")
	}
	if !s.Relates[parenthood].Contains(childRole) {
		t.Errorf("relates[parenthood] missing parenthood:child")
	}
	if !s.Players[childRole].Contains(person) {
		t.Errorf("players[parenthood:child] missing person")
	}

	// Every discovered type seeds a reflexive Subtypes entry (§7(d)).
	if !s.Subtypes[person].Contains(person) {
		t.Errorf("subtypes[person] is not reflexive")
	}

	isParent, ok := s.Lookup("is-parent")
	if !ok {
		t.Fatalf("is-parent not found in schema")
	}
	if got := len(s.CategoricalValues[isParent]); got != 2 {
		t.Errorf("CategoricalValues[is-parent] has %d entries, want 2 (true and false)", got)
	}
}

func TestLookupMissing(t *testing.T) {
	driver := fixturedb.PersonCompanyDemo()
	s, err := schema.Discover(context.Background(), driver, "demo")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if _, ok := s.Lookup("nonexistent"); ok {
		t.Errorf("Lookup(%q) = true, want false", "nonexistent")
	}
}

func TestTypeSetIntersect(t *testing.T) {
	a := schema.NewType("a", graphdb.KindEntity)
	b := schema.NewType("b", graphdb.KindEntity)
	c := schema.NewType("c", graphdb.KindEntity)

	s1 := schema.NewTypeSet(a, b)
	s2 := schema.NewTypeSet(b, c)

	got := s1.Intersect(s2)
	if got.Len() != 1 || !got.Contains(b) {
		t.Errorf("Intersect = %v, want {b}", got.Sorted())
	}
}
