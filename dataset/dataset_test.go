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

package dataset_test

import (
	"math"
	"testing"

	"bitbucket.org/creachadair/stringset"

	"github.com/graphilp/ilp/dataset"
)

func ds(classes ...bool) dataset.Dataset {
	var examples []dataset.Example
	for i, c := range classes {
		examples = append(examples, dataset.Example{Instance: string(rune('a' + i)), Class: c})
	}
	return dataset.New(examples)
}

// TestEntropyHomogeneous is §8 invariant 4: entropy of a homogeneous dataset
// is exactly 0.
func TestEntropyHomogeneous(t *testing.T) {
	for _, d := range []dataset.Dataset{
		ds(true, true, true),
		ds(false, false),
		dataset.New(nil),
	} {
		if got := dataset.Entropy(d); got != 0 {
			t.Errorf("Entropy(%v) = %v, want 0", d, got)
		}
	}
}

func TestEntropyBalanced(t *testing.T) {
	d := ds(true, false)
	if got, want := dataset.Entropy(d), 1.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Entropy(balanced) = %v, want %v", got, want)
	}
}

// TestWeightedInformationGainNonNegative is §8 invariant 5: gain is >= 0 for
// any partition, and 0 when the split doesn't change the class
// distribution.
func TestWeightedInformationGainNonNegative(t *testing.T) {
	before := ds(true, true, false, false)
	left, right := before.SplitOn(setOf("a", "c"))

	gain := dataset.WeightedInformationGain(before, left, right)
	if gain < 0 {
		t.Errorf("WeightedInformationGain = %v, want >= 0", gain)
	}
}

func TestWeightedInformationGainZeroWhenDistributionUnchanged(t *testing.T) {
	before := ds(true, false, true, false)
	// a,c positive; b,d negative -> split by a/b vs c/d keeps 1/1 on both sides.
	left, right := before.SplitOn(setOf("a", "b"))

	gain := dataset.WeightedInformationGain(before, left, right)
	if math.Abs(gain) > 1e-9 {
		t.Errorf("WeightedInformationGain = %v, want ~0", gain)
	}
}

func TestWeightedInformationGainPositiveOnPureSplit(t *testing.T) {
	before := ds(true, true, false, false)
	// a,b positive; c,d negative -> splitting exactly on class is a pure split.
	left, right := before.SplitOn(setOf("a", "b"))

	gain := dataset.WeightedInformationGain(before, left, right)
	if gain <= 0 {
		t.Errorf("WeightedInformationGain = %v, want > 0 for a pure split", gain)
	}
	if e := dataset.Entropy(left); e != 0 {
		t.Errorf("Entropy(left) = %v, want 0", e)
	}
	if e := dataset.Entropy(right); e != 0 {
		t.Errorf("Entropy(right) = %v, want 0", e)
	}
}

func setOf(ids ...string) stringset.Set {
	return stringset.New(ids...)
}
