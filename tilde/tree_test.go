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

package tilde_test

import (
	"strings"
	"testing"

	"github.com/graphilp/ilp/clause"
	"github.com/graphilp/ilp/dataset"
	"github.com/graphilp/ilp/tilde"
)

// TestPredictTieBreaksPositive is §4.6 Leaf prediction: majority class,
// ties broken toward positive.
func TestPredictTieBreaksPositive(t *testing.T) {
	n := &tilde.Node{
		Prefix: clause.Empty(),
		Dataset: dataset.New([]dataset.Example{
			{Instance: "a", Class: true},
			{Instance: "b", Class: false},
		}),
	}
	if !n.Predict() {
		t.Errorf("Predict() on a 1/1 tie = false, want true (positive tie-break)")
	}
}

func TestRenderIndentsChildren(t *testing.T) {
	leafPos := &tilde.Node{Prefix: clause.Empty(), Dataset: dataset.New([]dataset.Example{{Instance: "a", Class: true}})}
	leafNeg := &tilde.Node{Prefix: clause.Empty(), Dataset: dataset.New([]dataset.Example{{Instance: "b", Class: false}})}
	root := &tilde.Node{
		Prefix:  clause.Empty(),
		Dataset: dataset.New([]dataset.Example{{Instance: "a", Class: true}, {Instance: "b", Class: false}}),
		Left:    leafPos,
		Right:   leafNeg,
	}

	var b strings.Builder
	root.Render(&b)
	out := b.String()

	if !strings.Contains(out, "cover: (1/1)") {
		t.Errorf("Render output missing root cover counts: %s", out)
	}
	if !strings.Contains(out, "left:\n  [") {
		t.Errorf("Render output does not indent the left child: %s", out)
	}
	if !strings.Contains(out, "right:\n  [") {
		t.Errorf("Render output does not indent the right child: %s", out)
	}
}
