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

// Package tilde implements the TILDE learner: recursive binary splitting of
// a dataset by weighted information gain, with bounded lookahead over the
// refinement operator (spec §4.6).
package tilde

import (
	"context"
	"fmt"

	log "github.com/golang/glog"

	"github.com/graphilp/ilp/clause"
	"github.com/graphilp/ilp/dataset"
	"github.com/graphilp/ilp/graphdb"
	"github.com/graphilp/ilp/ilpconfig"
	"github.com/graphilp/ilp/oracle"
	"github.com/graphilp/ilp/schema"
)

// instanceVar is the reserved target variable every task clause is built
// around (§3, §4.6), mirroring foil.instanceVar.
var instanceVar = clause.NewVariable(clause.InstanceVarName)

const classVarName = "class_0"

// Task holds everything one TILDE run needs: the schema, the oracle, the
// target type, and the labeled dataset discovered from the class attribute
// (§6 Learning-task inputs).
type Task struct {
	Oracle  *oracle.Oracle
	Schema  *schema.Schema
	Target  schema.Type
	Options ilpconfig.Options

	Dataset dataset.Dataset
}

// Discover builds a Task: it looks up targetTypeLabel in s, then queries the
// database for "$instance_0 isa <target>, has <classAttr> $class_0;" and
// assembles the resulting rows into a Dataset (§6).
func Discover(ctx context.Context, o *oracle.Oracle, s *schema.Schema, targetTypeLabel, classAttrLabel string, opts ilpconfig.Options) (*Task, error) {
	target, ok := s.Lookup(targetTypeLabel)
	if !ok {
		return nil, fmt.Errorf("tilde: target type %q not found in schema", targetTypeLabel)
	}

	examples, err := discoverExamples(ctx, o, target, classAttrLabel)
	if err != nil {
		return nil, fmt.Errorf("tilde: discovering dataset: %w", err)
	}

	return &Task{
		Oracle:  o,
		Schema:  s,
		Target:  target,
		Options: opts,
		Dataset: dataset.New(examples),
	}, nil
}

// discoverExamples issues "match $instance_0 isa <target>, has <classAttr>
// $class_0;" and reads off one Example per row (§6 Learning-task inputs).
// It is the same query foil.discoverExamples issues, but assembled directly
// into a Dataset rather than split pos/neg identifier sets, since TILDE
// threads one Dataset value down the tree instead of two coverage sets.
func discoverExamples(ctx context.Context, o *oracle.Oracle, target schema.Type, classAttrLabel string) ([]dataset.Example, error) {
	query := fmt.Sprintf("match %s isa %s, has %s $%s;", instanceVar, target.Label(), classAttrLabel, classVarName)

	it, closeQuery, err := o.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer closeQuery()

	var examples []dataset.Example
	for {
		row, err := it.Next()
		if err == graphdb.ErrDone {
			return examples, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row: %w", err)
		}
		instance, ok := row.Get(instanceVar.Name())
		if !ok {
			return nil, fmt.Errorf("dataset row missing %s", instanceVar)
		}
		iid, ok := instance.IID()
		if !ok {
			return nil, fmt.Errorf("%s did not bind to an instance", instanceVar)
		}
		classConcept, ok := row.Get(classVarName)
		if !ok {
			return nil, fmt.Errorf("dataset row missing $%s", classVarName)
		}
		classValue, ok := classConcept.Value()
		if !ok {
			return nil, fmt.Errorf("$%s did not bind to an attribute value", classVarName)
		}
		isPositive, ok := classValue.AsBool()
		if !ok {
			return nil, fmt.Errorf("expected class attribute %q to be boolean for TILDE tasks", classAttrLabel)
		}
		examples = append(examples, dataset.Example{Instance: iid, Class: isPositive})
	}
}

// Learn builds the decision tree root-down: the root's prefix is
// "$instance_0 isa <target>" over the whole dataset, recursively split per
// trySplit (§4.6).
func (t *Task) Learn(ctx context.Context) (*Node, error) {
	root := clause.NewFromIsa(t.Target, t.Schema)
	log.Infof("tilde: learning tree for %s over %d examples", t.Target, t.Dataset.Len())
	return t.split(ctx, root, t.Dataset)
}
