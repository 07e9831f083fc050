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

// Package ilpconfig collects the tunable constants from spec §6 into a
// single task-scoped Options value, so FOIL and TILDE tasks can be
// constructed with non-default search bounds for testing without touching
// package-level constants.
package ilpconfig

// Options holds the search bounds shared by the FOIL and TILDE learners.
// Zero-value Options is not usable directly; use Default().
type Options struct {
	// MaxTheoryLength caps the number of clauses FOIL's outer loop will
	// accumulate before giving up (§4.5, §6).
	MaxTheoryLength int

	// MaxClauseLength caps the number of literals in a single clause built
	// by FOIL's inner loop (§4.5, §6).
	MaxClauseLength int

	// MinSplitExamples is the minimum dataset size TILDE will attempt to
	// split further (§4.6, §6).
	MinSplitExamples int

	// MinSplitEntropy is the entropy floor below which TILDE stops
	// splitting (§4.6, §6).
	MinSplitEntropy float64

	// MinSplitGain is the weighted-information-gain floor a candidate split
	// must clear (§4.6, §6).
	MinSplitGain float64

	// MaxLookahead bounds how many successive refinements TILDE will chain
	// together while searching for a split that clears MinSplitGain (§4.6, §6).
	MaxLookahead int

	// PairRelationPlayers enables the optional second-player Links pairing
	// refinement (§4.3 step 2, §9 Open Question). Default true.
	PairRelationPlayers bool

	// ParallelScoring fans the inner refinement-scoring loop out across
	// goroutines instead of scoring candidates one at a time (§5
	// Scheduling). Does not change which candidate wins a tie — the
	// winner is still chosen by refinement-enumeration order. Default
	// false, since oracle round-trips against a real driver may not be
	// safe to issue concurrently.
	ParallelScoring bool
}

// Default returns the normative defaults from spec §6.
func Default() Options {
	return Options{
		MaxTheoryLength:     20,
		MaxClauseLength:     10,
		MinSplitExamples:    4,
		MinSplitEntropy:     1e-6,
		MinSplitGain:        1e-3,
		MaxLookahead:        3,
		PairRelationPlayers: true,
	}
}
