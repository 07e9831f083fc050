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

// Package dataset holds the labeled example set shared by the FOIL and
// TILDE learners, and the entropy/information-gain scoring built on top of
// it (spec §2 Dataset & scoring, §3, §4.6).
package dataset

import (
	"math"

	"bitbucket.org/creachadair/stringset"
)

// Example pairs an opaque instance identifier with a boolean class label
// (§3).
type Example struct {
	Instance string
	Class    bool
}

// Dataset is an ordered collection of examples (§3).
type Dataset struct {
	Examples []Example
}

// New builds a Dataset from a slice of examples.
func New(examples []Example) Dataset {
	return Dataset{Examples: examples}
}

// CountByClass returns the number of positive and negative examples.
func (d Dataset) CountByClass() (positive, negative int) {
	for _, e := range d.Examples {
		if e.Class {
			positive++
		} else {
			negative++
		}
	}
	return positive, negative
}

// Len reports the number of examples.
func (d Dataset) Len() int { return len(d.Examples) }

// Instances returns the set of instance identifiers in this dataset,
// irrespective of class, partitioned view-wise (§3) by the caller as
// needed.
func (d Dataset) Instances() stringset.Set {
	s := stringset.New()
	for _, e := range d.Examples {
		s.Add(e.Instance)
	}
	return s
}

// Positives returns the subset of examples labeled positive.
func (d Dataset) Positives() stringset.Set {
	s := stringset.New()
	for _, e := range d.Examples {
		if e.Class {
			s.Add(e.Instance)
		}
	}
	return s
}

// Negatives returns the subset of examples labeled negative.
func (d Dataset) Negatives() stringset.Set {
	s := stringset.New()
	for _, e := range d.Examples {
		if !e.Class {
			s.Add(e.Instance)
		}
	}
	return s
}

// SplitOn partitions d into (included, excluded) based on membership in
// coveredInstances — used by TILDE to build the left/right children of a
// split (§4.6).
func (d Dataset) SplitOn(coveredInstances stringset.Set) (included, excluded Dataset) {
	included.Examples = make([]Example, 0, len(d.Examples))
	excluded.Examples = make([]Example, 0, len(d.Examples))
	for _, e := range d.Examples {
		if coveredInstances.Contains(e.Instance) {
			included.Examples = append(included.Examples, e)
		} else {
			excluded.Examples = append(excluded.Examples, e)
		}
	}
	return included, excluded
}

// Entropy computes the boolean-class entropy of d: H = -Σ (cᵢ/n)·log₂(cᵢ/n),
// with H=0 when n=0 or any class count is 0 (§4.6).
func Entropy(d Dataset) float64 {
	pos, neg := d.CountByClass()
	return entropyOfCounts(pos, neg)
}

func entropyOfCounts(counts ...int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

// WeightedInformationGain computes H(before) - Σ(|after_i|/|before|)·H(after_i)
// for a partition of before into the given subsets (§4.6, GLOSSARY). It is
// always >= 0 when the subsets partition before (§8 invariant 5), and equals
// 0 iff the class distribution of every subset matches before's.
func WeightedInformationGain(before Dataset, after ...Dataset) float64 {
	if before.Len() == 0 {
		return 0
	}
	var weighted float64
	for _, d := range after {
		weighted += float64(d.Len()) * Entropy(d)
	}
	weighted /= float64(before.Len())
	return Entropy(before) - weighted
}
