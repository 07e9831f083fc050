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

package clause

import "github.com/graphilp/ilp/schema"

// Refine enumerates every schema-legal one-step extension of c: a finite
// list of one-literal extensions, each strictly more specific than c (its
// model is a subset of c's model) — the heart of the system (§4.3).
//
// Enumeration order is deterministic: variables are visited sorted by name,
// each variable's candidate types are visited sorted by label, and
// comparators are visited in the fixed order [==, !=, <=, >=] (§5). This
// determinism is a testable property (§8 invariant 3) and the FOIL/TILDE
// learners rely on it to break gain ties by discovery order.
func (c Clause) Refine(s *schema.Schema, pairRelationPlayers bool) []Clause {
	var refinements []Clause

	vars := c.Variables()
	for _, v := range vars {
		types := c.env[v]
		sortedTypes := types.Sorted()

		// 1. Type specialization: Isa(v, t) for each t in T(v), when
		// T(v) still has more than one candidate.
		if len(sortedTypes) > 1 {
			for _, t := range sortedTypes {
				refinements = append(refinements, c.ExtendWithIsa(v, t, s))
			}
		}

		// 2. Relation participation as player: Links(freshRelation, role, v)
		// for each role v's types play, optionally paired with a second
		// Links binding another player of the same fresh relation.
		for _, t := range sortedTypes {
			for _, role := range s.Plays[t].Sorted() {
				played := c.ExtendWithPlayedLinks(v, role, s)
				refinements = append(refinements, played)

				if pairRelationPlayers {
					relVar := played.conjunction[len(played.conjunction)-1].(Links).Relation
					relTypes := played.env[relVar]
					for _, relType := range relTypes.Sorted() {
						for _, otherRole := range s.Relates[relType].Sorted() {
							refinements = append(refinements, played.ExtendWithRelatedLinks(relVar, otherRole, s))
						}
					}
				}
			}
		}

		// 3. Relation participation as relation: Links(v, role, freshPlayer)
		// for each role v's types relate.
		for _, t := range sortedTypes {
			for _, role := range s.Relates[t].Sorted() {
				refinements = append(refinements, c.ExtendWithRelatedLinks(v, role, s))
			}
		}

		// 4/5. Attribute ownership, and equality against a categorical
		// value.
		for _, t := range sortedTypes {
			for _, attrType := range s.Owns[t].Sorted() {
				refinements = append(refinements, c.ExtendWithHas(v, attrType, s))
				for _, val := range s.CategoricalValues[attrType] {
					refinements = append(refinements, c.ExtendWithHasValue(v, attrType, val, s))
				}
			}
		}
	}

	// 6. Variable comparison: for every pair of variables whose type sets
	// intersect, one refinement per comparator.
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			u, w := vars[i], vars[j]
			if c.env[u].Intersect(c.env[w]).Len() == 0 {
				continue
			}
			for _, cmp := range comparators {
				refinements = append(refinements, c.ExtendWithComparison(u, cmp, w))
			}
		}
	}

	return refinements
}
