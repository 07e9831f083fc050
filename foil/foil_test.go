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

package foil_test

import (
	"context"
	"testing"

	"github.com/graphilp/ilp/clause"
	"github.com/graphilp/ilp/foil"
	"github.com/graphilp/ilp/ilpconfig"
	"github.com/graphilp/ilp/internal/fixturedb"
	"github.com/graphilp/ilp/oracle"
	"github.com/graphilp/ilp/schema"
)

// TestSearchLearnsPureTheory is §8 scenario S3: FOIL over the person/
// is-parent dataset learns a theory that covers every positive and no
// negative.
func TestSearchLearnsPureTheory(t *testing.T) {
	driver := fixturedb.PersonCompanyDemo()
	ctx := context.Background()
	s, err := schema.Discover(ctx, driver, "demo")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	o := oracle.New(driver, "demo")

	task, err := foil.Discover(ctx, o, s, "person", "is-parent", ilpconfig.Default())
	if err != nil {
		t.Fatalf("foil.Discover: %v", err)
	}
	if len(task.Positive) != 2 || len(task.Negative) != 2 {
		t.Fatalf("dataset = %d pos / %d neg, want 2/2", len(task.Positive), len(task.Negative))
	}

	theory, err := task.Search(ctx)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(theory) == 0 {
		t.Fatalf("Search returned an empty theory")
	}

	instanceVar := clause.NewVariable(clause.InstanceVarName)
	covered := map[string]bool{}
	for _, c := range theory {
		result, err := o.TestClause(ctx, c, instanceVar)
		if err != nil {
			t.Fatalf("TestClause(%s): %v", c, err)
		}
		for id := range task.Negative {
			if result.Contains(id) {
				t.Errorf("clause %s covers negative example %s", c, id)
			}
		}
		for id := range result {
			covered[id] = true
		}
	}
	for id := range task.Positive {
		if !covered[id] {
			t.Errorf("theory never covers positive example %s", id)
		}
	}
}

// TestSearchTerminatesWithNoPositives checks that a task with no positive
// examples yields an empty theory rather than looping forever.
func TestSearchTerminatesWithNoPositives(t *testing.T) {
	driver := fixturedb.PersonCompanyDemo()
	ctx := context.Background()
	s, err := schema.Discover(ctx, driver, "demo")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	o := oracle.New(driver, "demo")

	task, err := foil.Discover(ctx, o, s, "person", "is-parent", ilpconfig.Default())
	if err != nil {
		t.Fatalf("foil.Discover: %v", err)
	}
	// No positive examples: the outer loop's uncovered-positives set is empty
	// from the start, so Search returns immediately with no clauses.
	task.Positive = nil

	theory, err := task.Search(ctx)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(theory) != 0 {
		t.Errorf("Search with no positives returned %d clauses, want 0", len(theory))
	}
}

