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

package tilde

import (
	"context"
	"fmt"
	"io"
	"strings"

	log "github.com/golang/glog"

	"github.com/graphilp/ilp/clause"
	"github.com/graphilp/ilp/dataset"
)

// Node is one node of a TildeTree: the conjunction true along the
// root-to-node path on every "true" branch taken so far (Prefix), and the
// subset of the task's examples reaching it (Dataset). A Leaf has both
// children nil; an inner node has both set (§4.6 State).
type Node struct {
	Prefix  clause.Clause
	Dataset dataset.Dataset

	Left  *Node // "true" branch: Prefix further narrowed by the winning split
	Right *Node // "false" branch: Prefix unchanged, remaining examples
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// Predict returns the majority class of n's dataset, ties broken toward
// positive (§4.6 Leaf prediction).
func (n *Node) Predict() bool {
	pos, neg := n.Dataset.CountByClass()
	return pos >= neg
}

// Render writes an indented textual form of the tree rooted at n, annotated
// with per-node class counts (§6 Outputs: "tree rendering is indented and
// annotated with per-leaf class counts").
func (n *Node) Render(w io.Writer) {
	n.render(w, 0)
}

func (n *Node) render(w io.Writer, depth int) {
	indent := strings.Repeat("  ", depth)
	pos, neg := n.Dataset.CountByClass()
	fmt.Fprintf(w, "%s[ clause: (%s) , cover: (%d/%d) ]\n", indent, n.Prefix, pos, neg)
	if n.IsLeaf() {
		return
	}
	fmt.Fprintf(w, "%sleft:\n", indent)
	n.Left.render(w, depth+1)
	fmt.Fprintf(w, "%sright:\n", indent)
	n.Right.render(w, depth+1)
}

func (n *Node) String() string {
	var b strings.Builder
	n.Render(&b)
	return b.String()
}

// split implements the per-node decision of §4.6's Splitting rule: stop on
// MinSplitExamples/MinSplitEntropy, else try trySplit and recurse on both
// children, else fall back to a leaf.
func (t *Task) split(ctx context.Context, prefix clause.Clause, d dataset.Dataset) (*Node, error) {
	if d.Len() < t.Options.MinSplitExamples || dataset.Entropy(d) < t.Options.MinSplitEntropy {
		return &Node{Prefix: prefix, Dataset: d}, nil
	}

	winner, left, right, found, err := t.trySplit(ctx, prefix, d)
	if err != nil {
		return nil, err
	}
	if !found {
		return &Node{Prefix: prefix, Dataset: d}, nil
	}

	log.Infof("tilde: splitting %s into %d/%d", prefix, left.Len(), right.Len())

	leftChild, err := t.split(ctx, winner, left)
	if err != nil {
		return nil, err
	}
	// The right child keeps the parent's prefix unchanged: negation of a
	// conjunctive pattern is not itself a conjunctive pattern, so only the
	// "true" branch can narrow (§4.6 Rationale for asymmetry).
	rightChild, err := t.split(ctx, prefix, right)
	if err != nil {
		return nil, err
	}

	return &Node{Prefix: prefix, Dataset: d, Left: leftChild, Right: rightChild}, nil
}

// trySplit searches for the best split of d reachable from prefix within
// Options.MaxLookahead successive refinements (§4.6 Splitting rule). It
// widens the lookahead depth only until the best split found so far clears
// MinSplitGain, to avoid the combinatorial cost of exhausting every depth
// once a good split is already in hand.
//
// A candidate is only accepted as a split if it strictly shrinks both
// children relative to |D| (a refinement that covers none or all of D
// leaves one side unchanged), which is what guarantees TILDE recursion
// terminates (§8 invariant 8).
func (t *Task) trySplit(ctx context.Context, prefix clause.Clause, d dataset.Dataset) (winner clause.Clause, left, right dataset.Dataset, found bool, err error) {
	var bestGain float64
	haveBest := false

	frontier := []clause.Clause{prefix}
	for depth := 1; depth <= t.Options.MaxLookahead; depth++ {
		var next []clause.Clause
		for _, c := range frontier {
			next = append(next, c.Refine(t.Schema, t.Options.PairRelationPlayers)...)
		}
		frontier = next

		frontierCoverage, err := t.Oracle.TestClauses(ctx, frontier, instanceVar, t.Options.ParallelScoring)
		if err != nil {
			return clause.Clause{}, dataset.Dataset{}, dataset.Dataset{}, false, err
		}

		for i, candidate := range frontier {
			covered := frontierCoverage[i]

			candLeft, candRight := d.SplitOn(covered)
			if candLeft.Len() == d.Len() || candRight.Len() == d.Len() {
				// Does not partition D: one side would not shrink.
				continue
			}

			gain := dataset.WeightedInformationGain(d, candLeft, candRight)
			if !haveBest || gain > bestGain {
				haveBest = true
				bestGain = gain
				winner = candidate
				left = candLeft
				right = candRight
			}
		}

		if haveBest && bestGain >= t.Options.MinSplitGain {
			break
		}
	}

	if !haveBest || bestGain < t.Options.MinSplitGain {
		return clause.Clause{}, dataset.Dataset{}, dataset.Dataset{}, false, nil
	}
	return winner, left, right, true, nil
}
