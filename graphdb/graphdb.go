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

// Package graphdb declares the collaborator contract the ILP learner needs
// from a typed graph database: a read-only transaction that can run a
// pattern-match query and return rows binding variable names to concepts.
//
// This package intentionally contains no concrete driver. The driver, the
// concrete query-language surface syntax, and test-harness database setup
// are out of scope for this module (see spec §1); only the interface the
// core depends on lives here.
package graphdb

import "context"

// ConceptKind classifies a schema-level Concept.
type ConceptKind int

const (
	// KindEntity marks an entity type.
	KindEntity ConceptKind = iota
	// KindRelation marks a relation type.
	KindRelation
	// KindRole marks a role type, scoped as "relation:role".
	KindRole
	// KindAttribute marks an attribute type.
	KindAttribute
)

func (k ConceptKind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindRelation:
		return "relation"
	case KindRole:
		return "role"
	case KindAttribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// Concept is a single cell of a query result row: either a type concept
// (label + kind) or an instance concept (a stable identifier, optionally
// carrying a typed attribute value).
type Concept interface {
	// IID returns a stable instance identifier. Valid only for instance
	// concepts (entities, relations, attributes bound to a value).
	IID() (string, bool)

	// TypeLabel returns the label and kind of a type concept (entity type,
	// relation type, role type, or attribute type). Valid only for type
	// concepts.
	TypeLabel() (label string, kind ConceptKind, ok bool)

	// Value returns the typed value carried by an attribute instance
	// concept.
	Value() (Value, bool)
}

// Row is one result row of a query: a binding from variable name (without
// the leading "$") to the concept it was bound to.
type Row interface {
	Get(variable string) (Concept, bool)
}

// TransactionType distinguishes transaction kinds. Only Read is defined.
type TransactionType int

const (
	// Read opens a read-only transaction.
	Read TransactionType = iota
)

// Transaction is a short-lived, read-only handle. The oracle opens one per
// query; schema.Discover runs all of its discovery queries on a single
// transaction.
type Transaction interface {
	// Query runs pattern against the database and returns an iterator of
	// result rows. The iterator must be fully drained or Close'd.
	Query(ctx context.Context, pattern string) (RowIterator, error)

	// Close releases the transaction.
	Close() error
}

// RowIterator streams query result rows.
type RowIterator interface {
	Next() (Row, error) // returns ErrDone when exhausted
	Close() error
}

// ErrDone is returned by RowIterator.Next when no more rows are available.
var ErrDone = errDone{}

type errDone struct{}

func (errDone) Error() string { return "graphdb: no more rows" }

// Driver opens transactions against one database.
type Driver interface {
	Transaction(ctx context.Context, database string, txType TransactionType) (Transaction, error)
}
