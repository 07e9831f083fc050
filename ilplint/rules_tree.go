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

package ilplint

import (
	"fmt"

	"github.com/graphilp/ilp/tilde"
)

// ImpureLeafRule flags a TILDE leaf that still mixes positive and negative
// examples. This is expected when MinSplitExamples stopped splitting, or no
// candidate split cleared MinSplitGain, before the leaf reached purity, but a theory with
// many impure leaves likely needs looser stopping bounds.
type ImpureLeafRule struct{}

func (r *ImpureLeafRule) Name() string            { return "impure-leaf" }
func (r *ImpureLeafRule) Description() string     { return "Flags a tree leaf that still mixes classes" }
func (r *ImpureLeafRule) DefaultSeverity() Severity { return SeverityWarning }

func (r *ImpureLeafRule) Check(input *LintInput, config LintConfig) []LintResult {
	if input.Tree == nil {
		return nil
	}
	var results []LintResult
	walkTree(input.Tree, "root", func(path string, n *tilde.Node) {
		if !n.IsLeaf() {
			return
		}
		pos, neg := n.Dataset.CountByClass()
		if pos > 0 && neg > 0 {
			results = append(results, LintResult{
				RuleName: r.Name(),
				Severity: r.DefaultSeverity(),
				Source:   path,
				Message:  fmt.Sprintf("leaf %s at %s covers %d positive and %d negative examples", n.Prefix, path, pos, neg),
			})
		}
	})
	return results
}

// WeakSplitRule flags an internal node whose chosen split barely shrinks one
// of its children: the refinement spent a search step for little narrowing.
type WeakSplitRule struct{}

func (r *WeakSplitRule) Name() string            { return "weak-split" }
func (r *WeakSplitRule) Description() string     { return "Flags a split where one child keeps nearly all the parent's examples" }
func (r *WeakSplitRule) DefaultSeverity() Severity { return SeverityInfo }

func (r *WeakSplitRule) Check(input *LintInput, config LintConfig) []LintResult {
	if input.Tree == nil {
		return nil
	}
	var results []LintResult
	walkTree(input.Tree, "root", func(path string, n *tilde.Node) {
		if n.IsLeaf() {
			return
		}
		parent := n.Dataset.Len()
		if parent == 0 {
			return
		}
		children := []struct {
			side string
			node *tilde.Node
		}{
			{"left", n.Left},
			{"right", n.Right},
		}
		for _, c := range children {
			frac := float64(c.node.Dataset.Len()) / float64(parent)
			if frac > 1-config.MinLeafCoverage {
				results = append(results, LintResult{
					RuleName: r.Name(),
					Severity: r.DefaultSeverity(),
					Source:   path,
					Message:  fmt.Sprintf("%s child of split at %s keeps %d/%d examples (>%.0f%% of parent)", c.side, path, c.node.Dataset.Len(), parent, (1-config.MinLeafCoverage)*100),
				})
			}
		}
	})
	return results
}

// walkTree visits every node of a TILDE tree, calling visit with a path
// description built from left/right child labels.
func walkTree(n *tilde.Node, path string, visit func(path string, n *tilde.Node)) {
	if n == nil {
		return
	}
	visit(path, n)
	if n.IsLeaf() {
		return
	}
	walkTree(n.Left, path+"/left", visit)
	walkTree(n.Right, path+"/right", visit)
}
