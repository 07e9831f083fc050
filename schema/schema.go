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

// Package schema holds the immutable index of type relationships the ILP
// learner discovers once from the target database and then treats as a
// read-only value for the lifetime of a search (spec §3, §4.1).
package schema

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/graphilp/ilp/graphdb"
)

// Type identifies a type in the target database's schema. Equality,
// hashing (as a map key) and ordering are by Label; role labels are scoped
// "relation:role".
type Type struct {
	label string
	kind  graphdb.ConceptKind
}

// NewType constructs a Type. Exported for tests and for collaborators that
// build synthetic schemas without a live database.
func NewType(label string, kind graphdb.ConceptKind) Type {
	return Type{label: label, kind: kind}
}

// Label returns the human-readable label this Type is ordered and compared
// by.
func (t Type) Label() string { return t.label }

// Kind returns the concept kind (entity, relation, role, attribute).
func (t Type) Kind() graphdb.ConceptKind { return t.kind }

func (t Type) String() string { return t.label }

// Less orders two types by label, for deterministic enumeration (§5).
func (t Type) Less(o Type) bool { return t.label < o.label }

// TypeSet is a set of Types, keyed by label for O(1) membership.
type TypeSet map[Type]struct{}

// NewTypeSet builds a TypeSet from a slice.
func NewTypeSet(types ...Type) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// Contains reports set membership.
func (s TypeSet) Contains(t Type) bool {
	_, ok := s[t]
	return ok
}

// Add inserts t into s.
func (s TypeSet) Add(t Type) { s[t] = struct{}{} }

// Clone returns a shallow copy.
func (s TypeSet) Clone() TypeSet {
	out := make(TypeSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Intersect returns the types present in both s and o.
func (s TypeSet) Intersect(o TypeSet) TypeSet {
	out := make(TypeSet)
	small, big := s, o
	if len(o) < len(s) {
		small, big = o, s
	}
	for t := range small {
		if big.Contains(t) {
			out[t] = struct{}{}
		}
	}
	return out
}

// Sorted returns the set's elements sorted by label, for deterministic
// refinement enumeration (§5).
func (s TypeSet) Sorted() []Type {
	out := make([]Type, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Len reports the set's cardinality.
func (s TypeSet) Len() int { return len(s) }

// Schema is the immutable index of type relationships queried from the
// database once at the start of a learning task (§3, §4.1). All seven
// mappings use Type as both key and set element.
type Schema struct {
	Owns      map[Type]TypeSet // owner -> attribute types it owns
	Owners    map[Type]TypeSet // attribute type -> owner types
	Relates   map[Type]TypeSet // relation -> role types
	RelatedBy map[Type]TypeSet // role -> relation types
	Plays     map[Type]TypeSet // entity/relation -> role types it plays
	Players   map[Type]TypeSet // role -> types that can play it
	Subtypes  map[Type]TypeSet // supertype -> subtypes, reflexively including itself

	// CategoricalValues holds, for designated attribute types, the
	// enumerated set of observed values (§3, optional).
	CategoricalValues map[Type][]graphdb.Value
}

// empty returns a Schema with all maps initialized but no entries.
func empty() *Schema {
	return &Schema{
		Owns:              make(map[Type]TypeSet),
		Owners:            make(map[Type]TypeSet),
		Relates:           make(map[Type]TypeSet),
		RelatedBy:         make(map[Type]TypeSet),
		Plays:             make(map[Type]TypeSet),
		Players:           make(map[Type]TypeSet),
		Subtypes:          make(map[Type]TypeSet),
		CategoricalValues: make(map[Type][]graphdb.Value),
	}
}

// Lookup finds the Type with the given label, if the schema has seen it as
// either side of any edge. Used by task discovery to resolve a caller-given
// target-type or class-attribute label string to a schema Type.
func (s *Schema) Lookup(label string) (Type, bool) {
	for t := range s.Subtypes {
		if t.Label() == label {
			return t, true
		}
	}
	for _, m := range []map[Type]TypeSet{s.Owns, s.Owners, s.Relates, s.RelatedBy, s.Plays, s.Players} {
		for t := range m {
			if t.Label() == label {
				return t, true
			}
		}
	}
	return Type{}, false
}

const (
	ownsQuery    = "match $left owns $right;"
	relatesQuery = "match $left relates $right;"
	playsQuery   = "match $left plays $right;"
	subQuery     = "match $left sub $right;"
)

// CategoricalAttribute designates an attribute type whose distinct observed
// values should be enumerated during discovery (§4.1).
type CategoricalAttribute struct {
	Label string
}

// Discover builds a Schema by issuing the four schema-edge queries plus one
// query per CategoricalAttribute against driver/database, indexing both
// directions of every edge relation (§4.1). It fails atomically: on any
// query error no partial Schema is returned (§7(b)).
func Discover(ctx context.Context, driver graphdb.Driver, database string, categorical ...CategoricalAttribute) (*Schema, error) {
	tx, err := driver.Transaction(ctx, database, graphdb.Read)
	if err != nil {
		return nil, fmt.Errorf("schema: opening transaction: %w", err)
	}
	defer tx.Close()

	s := empty()
	var errs error

	collect := func(query string, lr, rl map[Type]TypeSet) {
		if err := collectEdges(ctx, tx, query, lr, rl); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("schema: query %q: %w", query, err))
		}
	}
	collect(ownsQuery, s.Owns, s.Owners)
	collect(relatesQuery, s.Relates, s.RelatedBy)
	collect(playsQuery, s.Plays, s.Players)

	// sub is asymmetric: left sub right means left is a subtype of right.
	// Subtypes maps supertype -> subtypes, so the direction is reversed
	// relative to collectEdges's (lr, rl) convention.
	if err := collectEdges(ctx, tx, subQuery, nil, s.Subtypes); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("schema: query %q: %w", subQuery, err))
	}
	seedReflexiveSubtypes(s)

	for _, attr := range categorical {
		t, ok := s.Lookup(attr.Label)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("schema: categorical attribute %q not found in schema", attr.Label))
			continue
		}
		values, err := readCategoricalValues(ctx, tx, attr.Label)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("schema: categorical values for %q: %w", attr.Label, err))
			continue
		}
		s.CategoricalValues[t] = values
	}

	if errs != nil {
		return nil, errs
	}
	return s, nil
}

// seedReflexiveSubtypes makes every type reflexively its own subtype, so
// Isa(v, T) narrowing T(v) to subtypes(T) never drops T itself (§3, §9), and
// ensures every type mentioned anywhere in the schema (not only those
// appearing as a "sub" edge endpoint) has at least itself in Subtypes — a
// missing schema entry must not be silently defaulted to empty by the
// caller (§7(d)); schema.Discover is the one place that fills it in.
func seedReflexiveSubtypes(s *Schema) {
	for t := range s.Subtypes {
		s.Subtypes[t].Add(t)
	}
	for _, m := range []map[Type]TypeSet{s.Owns, s.Owners, s.Relates, s.RelatedBy, s.Plays, s.Players} {
		for t := range m {
			if _, ok := s.Subtypes[t]; !ok {
				s.Subtypes[t] = NewTypeSet(t)
			}
		}
	}
}

func collectEdges(ctx context.Context, tx graphdb.Transaction, query string, lr, rl map[Type]TypeSet) error {
	it, err := tx.Query(ctx, query)
	if err != nil {
		return err
	}
	defer it.Close()
	for {
		row, err := it.Next()
		if err == graphdb.ErrDone {
			return nil
		}
		if err != nil {
			return err
		}
		left, ok := row.Get("left")
		if !ok {
			return fmt.Errorf("row missing $left")
		}
		right, ok := row.Get("right")
		if !ok {
			return fmt.Errorf("row missing $right")
		}
		leftType, err := typeOf(left)
		if err != nil {
			return err
		}
		rightType, err := typeOf(right)
		if err != nil {
			return err
		}
		if lr != nil {
			addEdge(lr, leftType, rightType)
		}
		if rl != nil {
			addEdge(rl, rightType, leftType)
		}
	}
}

func addEdge(m map[Type]TypeSet, from, to Type) {
	set, ok := m[from]
	if !ok {
		set = make(TypeSet)
		m[from] = set
	}
	set.Add(to)
}

func typeOf(c graphdb.Concept) (Type, error) {
	label, kind, ok := c.TypeLabel()
	if !ok {
		return Type{}, fmt.Errorf("expected a type concept, got an instance")
	}
	return NewType(label, kind), nil
}

func readCategoricalValues(ctx context.Context, tx graphdb.Transaction, attrLabel string) ([]graphdb.Value, error) {
	query := fmt.Sprintf("match attribute $left label %s; $right isa $left;", attrLabel)
	it, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	var values []graphdb.Value
	for {
		row, err := it.Next()
		if err == graphdb.ErrDone {
			return values, nil
		}
		if err != nil {
			return nil, err
		}
		right, ok := row.Get("right")
		if !ok {
			return nil, fmt.Errorf("row missing $right")
		}
		v, ok := right.Value()
		if !ok {
			return nil, fmt.Errorf("expected $right to carry an attribute value")
		}
		duplicate := false
		for _, seen := range values {
			if seen.Equal(v) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			values = append(values, v)
		}
	}
}
