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

// Package foil implements the FOIL learner: sequential covering over
// clauses, greedily refined by FOIL information gain (spec §4.5).
package foil

import (
	"context"
	"fmt"
	"math"

	log "github.com/golang/glog"

	"bitbucket.org/creachadair/stringset"

	"github.com/graphilp/ilp/clause"
	"github.com/graphilp/ilp/graphdb"
	"github.com/graphilp/ilp/ilpconfig"
	"github.com/graphilp/ilp/oracle"
	"github.com/graphilp/ilp/schema"
)

// instanceVar is the reserved target variable every task clause is built
// around (§3, §4.5).
var instanceVar = clause.NewVariable(clause.InstanceVarName)

// Task holds everything one FOIL run needs: the schema, the oracle, the
// target type, and the positive/negative example sets discovered from the
// class attribute (§6 Learning-task inputs).
type Task struct {
	Oracle  *oracle.Oracle
	Schema  *schema.Schema
	Target  schema.Type
	Options ilpconfig.Options

	Positive stringset.Set
	Negative stringset.Set
}

// Discover builds a Task: it looks up targetTypeLabel in s, then queries the
// database for "$instance_0 isa <target>, has <classAttr> $class_0;" and
// partitions the result by the boolean value of $class_0 (§6).
func Discover(ctx context.Context, o *oracle.Oracle, s *schema.Schema, targetTypeLabel, classAttrLabel string, opts ilpconfig.Options) (*Task, error) {
	target, ok := s.Lookup(targetTypeLabel)
	if !ok {
		return nil, fmt.Errorf("foil: target type %q not found in schema", targetTypeLabel)
	}

	positive, negative, err := discoverExamples(ctx, o, s, target, classAttrLabel)
	if err != nil {
		return nil, fmt.Errorf("foil: discovering dataset: %w", err)
	}

	return &Task{
		Oracle:   o,
		Schema:   s,
		Target:   target,
		Options:  opts,
		Positive: positive,
		Negative: negative,
	}, nil
}

// discoverExamples implements §6's Learning-task inputs: it issues
// "match $instance_0 isa <target>, has <classAttr> $class_0;" and
// partitions the result by the boolean value of $class_0.
func discoverExamples(ctx context.Context, o *oracle.Oracle, s *schema.Schema, target schema.Type, classAttrLabel string) (positive, negative stringset.Set, err error) {
	query := fmt.Sprintf("match %s isa %s, has %s $%s;", instanceVar, target.Label(), classAttrLabel, classVarName)

	it, closeQuery, err := o.Query(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer closeQuery()

	positive, negative = stringset.New(), stringset.New()
	for {
		row, err := it.Next()
		if err == graphdb.ErrDone {
			return positive, negative, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading dataset row: %w", err)
		}
		instance, ok := row.Get(instanceVar.Name())
		if !ok {
			return nil, nil, fmt.Errorf("dataset row missing %s", instanceVar)
		}
		iid, ok := instance.IID()
		if !ok {
			return nil, nil, fmt.Errorf("%s did not bind to an instance", instanceVar)
		}
		classConcept, ok := row.Get(classVarName)
		if !ok {
			return nil, nil, fmt.Errorf("dataset row missing $%s", classVarName)
		}
		classValue, ok := classConcept.Value()
		if !ok {
			return nil, nil, fmt.Errorf("$%s did not bind to an attribute value", classVarName)
		}
		isPositive, ok := classValue.AsBool()
		if !ok {
			return nil, nil, fmt.Errorf("expected class attribute %q to be boolean for FOIL tasks", classAttrLabel)
		}
		if isPositive {
			positive.Add(iid)
		} else {
			negative.Add(iid)
		}
	}
}

const classVarName = "class_0"

// Search is FOIL's outer sequential-covering loop (§4.5): while there are
// uncovered positives and the theory is under MaxTheoryLength, learn a
// clause, remove the positives it covers, and repeat.
func (t *Task) Search(ctx context.Context) ([]clause.Clause, error) {
	var theory []clause.Clause
	uncovered := t.Positive.Clone()

	for len(uncovered) > 0 && len(theory) < t.Options.MaxTheoryLength {
		log.Infof("foil: learning new clause, %d uncovered positives", len(uncovered))

		c, ok, err := t.learnClause(ctx, uncovered, t.Negative)
		if err != nil {
			return nil, fmt.Errorf("foil: learning clause: %w", err)
		}
		if !ok {
			break
		}

		covered, err := t.Oracle.TestClause(ctx, c, instanceVar)
		if err != nil {
			return nil, fmt.Errorf("foil: testing learned clause: %w", err)
		}
		log.Infof("foil: learned %s, covers %d/%d pos/neg", c, len(uncovered.Intersect(covered)), len(t.Negative.Intersect(covered)))

		uncovered = uncovered.Diff(covered)
		theory = append(theory, c)
	}

	log.Infof("foil: final theory has %d clauses", len(theory))
	return theory, nil
}

// learnClause is FOIL's inner loop (§4.5): starting from "$instance_0 isa
// <target>", greedily pick the refinement with maximum FOIL gain until the
// clause stops covering some negative or some positive, or it hits
// MaxClauseLength. Returns ok=false if the resulting clause covers no
// positives at all.
func (t *Task) learnClause(ctx context.Context, targetPositives, targetNegatives stringset.Set) (clause.Clause, bool, error) {
	c := clause.NewFromIsa(t.Target, t.Schema)

	coveredPositives := targetPositives.Clone()
	coveredNegatives := targetNegatives.Clone()

	for c.Len() < t.Options.MaxClauseLength && len(coveredNegatives) > 0 && len(coveredPositives) > 0 {
		covered, err := t.Oracle.TestClause(ctx, c, instanceVar)
		if err != nil {
			return clause.Clause{}, false, err
		}
		coveredPositives = coveredPositives.Intersect(covered)
		coveredNegatives = coveredNegatives.Intersect(covered)

		refinements := c.Refine(t.Schema, t.Options.PairRelationPlayers)

		refinedCoverage, err := t.Oracle.TestClauses(ctx, refinements, instanceVar, t.Options.ParallelScoring)
		if err != nil {
			return clause.Clause{}, false, err
		}

		var best clause.Clause
		haveBest := false
		bestGain := math.Inf(-1)

		for i, refinement := range refinements {
			pNew := float64(len(refinedCoverage[i].Intersect(targetPositives)))
			nNew := float64(len(refinedCoverage[i].Intersect(targetNegatives)))
			if pNew == 0 {
				continue
			}

			gain := foilGain(float64(len(coveredPositives)), float64(len(coveredNegatives)), pNew, nNew)
			if gain > bestGain {
				bestGain = gain
				best = refinement
				haveBest = true
			}
		}

		if !haveBest {
			log.Infof("foil: no improving refinement for %s", c)
			break
		}
		log.Infof("foil: best refinement gain %.4f", bestGain)
		c = best
	}

	if len(coveredPositives) == 0 {
		return clause.Clause{}, false, nil
	}
	return c, true, nil
}

// foilGain is the FOIL information-gain heuristic (GLOSSARY):
// p_new · (log₂(p_new/(p_new+n_new)) − log₂(p_old/(p_old+n_old))).
func foilGain(pOld, nOld, pNew, nNew float64) float64 {
	if pNew == 0 || pOld == 0 {
		return math.Inf(-1)
	}
	oldScore := math.Log2(pOld / (pOld + nOld))
	newScore := math.Log2(pNew / (pNew + nNew))
	return pNew * (newScore - oldScore)
}
