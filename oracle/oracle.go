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

// Package oracle implements test_clause (§4.4): executing a clause against
// the database and returning the set of matching target instances.
package oracle

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"bitbucket.org/creachadair/stringset"

	"github.com/graphilp/ilp/clause"
	"github.com/graphilp/ilp/graphdb"
)

// Oracle executes clauses against a fixed database and instance variable,
// collapsing duplicate bindings into a set (§4.4).
type Oracle struct {
	driver   graphdb.Driver
	database string
}

// New builds an Oracle bound to one database.
func New(driver graphdb.Driver, database string) *Oracle {
	return &Oracle{driver: driver, database: database}
}

// Query runs an arbitrary match pattern against the oracle's database and
// returns an iterator over full result rows, for callers — dataset
// discovery (§6) — that need more than TestClause's single-variable
// projection. The returned close function must be called exactly once when
// the caller is done draining the iterator; it closes both the iterator and
// its backing transaction (§5 Shared resources: transactions do not outlive
// one query).
func (o *Oracle) Query(ctx context.Context, pattern string) (graphdb.RowIterator, func() error, error) {
	tx, err := o.driver.Transaction(ctx, o.database, graphdb.Read)
	if err != nil {
		return nil, nil, fmt.Errorf("oracle: opening transaction: %w", err)
	}
	it, err := tx.Query(ctx, pattern)
	if err != nil {
		tx.Close()
		return nil, nil, fmt.Errorf("oracle: query %q: %w", pattern, err)
	}
	return it, func() error {
		it.Close()
		return tx.Close()
	}, nil
}

// TestClause returns the set of instance identifiers bound to instanceVar
// across all satisfying assignments of c against the current database
// contents (§4.4). It opens one short-lived read transaction per call and
// never leaves it open past this call's return (§5 Shared resources).
//
// Any driver error propagates unwrapped in spirit but annotated with
// context; the caller (FOIL/TILDE) treats it as fatal for the current
// search step (§7(c)).
func (o *Oracle) TestClause(ctx context.Context, c clause.Clause, instanceVar clause.Variable) (stringset.Set, error) {
	query := fmt.Sprintf("match %s; select %s;", c.Render(), instanceVar)

	tx, err := o.driver.Transaction(ctx, o.database, graphdb.Read)
	if err != nil {
		return nil, fmt.Errorf("oracle: opening transaction: %w", err)
	}
	defer tx.Close()

	it, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("oracle: query %q: %w", query, err)
	}
	defer it.Close()

	result := stringset.New()
	for {
		row, err := it.Next()
		if err == graphdb.ErrDone {
			return result, nil
		}
		if err != nil {
			return nil, fmt.Errorf("oracle: reading row: %w", err)
		}
		concept, ok := row.Get(instanceVar.Name())
		if !ok {
			return nil, fmt.Errorf("oracle: row missing %s", instanceVar)
		}
		iid, ok := concept.IID()
		if !ok {
			return nil, fmt.Errorf("oracle: %s did not bind to an instance", instanceVar)
		}
		result.Add(iid)
	}
}

// TestClauses scores every clause in candidates against instanceVar. When
// parallel is false it calls TestClause in enumeration order, the same as a
// caller looping by hand. When parallel is true it fans the calls out across
// goroutines (§5 Scheduling: "implementations MAY parallelize the inner
// scoring loop"), collecting every goroutine's error with multierr rather
// than stopping at the first one, but still returns results indexed by
// candidates' original position — the caller's tie-break over the results
// stays by refinement-enumeration order regardless of goroutine completion
// order (§5: "MUST preserve the deterministic tie-break by
// refinement-enumeration order").
func (o *Oracle) TestClauses(ctx context.Context, candidates []clause.Clause, instanceVar clause.Variable, parallel bool) ([]stringset.Set, error) {
	results := make([]stringset.Set, len(candidates))
	if !parallel {
		for i, c := range candidates {
			covered, err := o.TestClause(ctx, c, instanceVar)
			if err != nil {
				return nil, err
			}
			results[i] = covered
		}
		return results, nil
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c clause.Clause) {
			defer wg.Done()
			covered, err := o.TestClause(ctx, c, instanceVar)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierr.Append(errs, err)
				return
			}
			results[i] = covered
		}(i, c)
	}
	wg.Wait()
	if errs != nil {
		return nil, errs
	}
	return results, nil
}
