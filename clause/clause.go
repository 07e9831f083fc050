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

// Package clause contains the conjunctive graph-pattern clause
// representation: variables, literals, the per-variable type environment,
// and the oracle-query text emitter (spec §3, §4.2).
package clause

import (
	"fmt"
	"strings"

	"github.com/graphilp/ilp/graphdb"
	"github.com/graphilp/ilp/schema"
)

// Variable is a symbolic identifier for a logical variable, unique within
// one clause. InstanceVarName designates the target variable of a learning
// task.
type Variable struct {
	name string
}

// InstanceVarName is the reserved name for a task's target variable (§3).
const InstanceVarName = "instance_0"

// NewVariable wraps a name as a Variable.
func NewVariable(name string) Variable { return Variable{name} }

// Name returns the variable's bare name (without the "$" sigil).
func (v Variable) Name() string { return v.name }

// String renders the variable the way it appears in emitted query text:
// "$<name>" (§4.2, §6).
func (v Variable) String() string { return "$" + v.name }

// Comparator is one of the four literal comparators usable in CompareVars
// and CompareConst literals (§3). The zero value is CmpEq.
type Comparator int

const (
	CmpEq Comparator = iota
	CmpNeq
	CmpLte
	CmpGte
)

// comparators lists every Comparator in the fixed order §5 requires for
// deterministic refinement enumeration.
var comparators = []Comparator{CmpEq, CmpNeq, CmpLte, CmpGte}

func (c Comparator) String() string {
	switch c {
	case CmpEq:
		return "=="
	case CmpNeq:
		return "!="
	case CmpLte:
		return "<="
	case CmpGte:
		return ">="
	default:
		return "?"
	}
}

// Literal is one conjunct of a Clause (§3). It is a closed sum: every
// implementation below and every switch over Literal in this module and in
// the refinement operator must be exhaustive.
type Literal interface {
	// render emits this literal's oracle-query text (§4.2).
	render() string
	// vars returns every Variable this literal mentions, for clause-wide
	// invariant checks (§8 invariant 1).
	vars() []Variable
}

// Isa asserts that Var is an instance of Type.
type Isa struct {
	Var  Variable
	Type schema.Type
}

func (l Isa) render() string   { return fmt.Sprintf("%s isa %s", l.Var, l.Type.Label()) }
func (l Isa) vars() []Variable { return []Variable{l.Var} }

// Has asserts that Owner owns an attribute of Type bound to AttrVar.
type Has struct {
	Owner   Variable
	Type    schema.Type
	AttrVar Variable
}

func (l Has) render() string   { return fmt.Sprintf("%s has %s %s", l.Owner, l.Type.Label(), l.AttrVar) }
func (l Has) vars() []Variable { return []Variable{l.Owner, l.AttrVar} }

// HasValue asserts that Owner owns an attribute of Type equal to Value.
type HasValue struct {
	Owner Variable
	Type  schema.Type
	Value graphdb.Value
}

func (l HasValue) render() string {
	return fmt.Sprintf("%s has %s %s", l.Owner, l.Type.Label(), l.Value.Render())
}
func (l HasValue) vars() []Variable { return []Variable{l.Owner} }

// Links asserts that Player fills Role in Relation. The role label is
// rendered unscoped — the substring after the final ":" — while Isa and Has
// literals use the fully qualified label (§4.2; this is the one rendering
// rule an implementer must reproduce exactly).
type Links struct {
	Relation Variable
	Role     schema.Type
	Player   Variable
}

func (l Links) render() string {
	return fmt.Sprintf("%s links (%s: %s)", l.Relation, unscopedRole(l.Role.Label()), l.Player)
}
func (l Links) vars() []Variable { return []Variable{l.Relation, l.Player} }

func unscopedRole(label string) string {
	if idx := strings.LastIndex(label, ":"); idx >= 0 {
		return label[idx+1:]
	}
	return label
}

// CompareVars compares two clause variables.
type CompareVars struct {
	Lhs        Variable
	Comparator Comparator
	Rhs        Variable
}

func (l CompareVars) render() string {
	return fmt.Sprintf("%s %s %s", l.Lhs, l.Comparator, l.Rhs)
}
func (l CompareVars) vars() []Variable { return []Variable{l.Lhs, l.Rhs} }

// CompareConst compares a clause variable against a literal value.
type CompareConst struct {
	Var        Variable
	Comparator Comparator
	Value      graphdb.Value
}

func (l CompareConst) render() string {
	return fmt.Sprintf("%s %s %s", l.Var, l.Comparator, l.Value.Render())
}
func (l CompareConst) vars() []Variable { return []Variable{l.Var} }

// Clause is an ordered conjunction of literals together with a per-variable
// type environment: for each variable appearing in the clause, the set of
// schema types it may still inhabit (§3).
//
// Clause is an immutable value: every mutating-looking operation below
// returns a new Clause rather than editing this one in place (§3
// Ownership, §9 "Cyclic structures: None").
type Clause struct {
	conjunction []Literal
	env         map[Variable]schema.TypeSet
}

// Empty returns a Clause with no literals and no bound variables.
func Empty() Clause {
	return Clause{env: make(map[Variable]schema.TypeSet)}
}

// NewFromIsa returns the single-literal clause "$instance_0 isa <t>", the
// starting point for both FOIL's inner loop and TILDE's root (§4.5, §4.6).
func NewFromIsa(t schema.Type, s *schema.Schema) Clause {
	v := NewVariable(InstanceVarName)
	return Empty().withVar(v, s.Subtypes[t]).extend(Isa{Var: v, Type: t})
}

// Len returns the number of literals in the conjunction.
func (c Clause) Len() int { return len(c.conjunction) }

// Literals returns the conjunction in insertion order. The returned slice
// must not be mutated.
func (c Clause) Literals() []Literal { return c.conjunction }

// TypeEnv returns the candidate type set for a variable, and whether the
// variable is bound in this clause at all.
func (c Clause) TypeEnv(v Variable) (schema.TypeSet, bool) {
	t, ok := c.env[v]
	return t, ok
}

// Variables returns every variable bound in this clause's environment,
// sorted by name for deterministic refinement enumeration (§5).
func (c Clause) Variables() []Variable {
	out := make([]Variable, 0, len(c.env))
	for v := range c.env {
		out = append(out, v)
	}
	sortVars(out)
	return out
}

// UsedVariables returns every variable mentioned by some literal in the
// conjunction (as opposed to Variables, which returns every variable bound
// in the environment — invariant 1 in §8 requires these to agree).
func (c Clause) UsedVariables() []Variable {
	seen := make(map[Variable]bool)
	var out []Variable
	for _, l := range c.conjunction {
		for _, v := range l.vars() {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

func sortVars(vs []Variable) {
	for i := 1; i < len(vs); i++ {
		for j := i; j > 0 && vs[j].name < vs[j-1].name; j-- {
			vs[j], vs[j-1] = vs[j-1], vs[j]
		}
	}
}

// Render is the clause's textual form: its literals, ";"-separated, in
// insertion order, using the database's native pattern syntax (§4.2).
func (c Clause) Render() string {
	parts := make([]string, len(c.conjunction))
	for i, l := range c.conjunction {
		parts[i] = l.render()
	}
	return strings.Join(parts, ";")
}

func (c Clause) String() string { return c.Render() }

// clone makes a shallow copy of the conjunction slice and a shallow copy of
// the environment map (TypeSets are replaced wholesale, never mutated
// through an alias, so sharing unaffected TypeSet values across clauses is
// safe).
func (c Clause) clone() Clause {
	conj := make([]Literal, len(c.conjunction))
	copy(conj, c.conjunction)
	env := make(map[Variable]schema.TypeSet, len(c.env))
	for v, t := range c.env {
		env[v] = t
	}
	return Clause{conjunction: conj, env: env}
}

// extend appends a literal, returning the updated clause. The caller is
// expected to have already narrowed the environment via withVar/narrowVar
// before calling extend.
func (c Clause) extend(l Literal) Clause {
	next := c.clone()
	next.conjunction = append(next.conjunction, l)
	return next
}

// withVar sets (not narrows) a variable's type set. Used when introducing a
// fresh variable.
func (c Clause) withVar(v Variable, types schema.TypeSet) Clause {
	next := c.clone()
	next.env[v] = types.Clone()
	return next
}

// narrowVar intersects a variable's current type set with types. If the
// variable is unbound, it is bound to types as-is.
func (c Clause) narrowVar(v Variable, types schema.TypeSet) Clause {
	next := c.clone()
	if existing, ok := next.env[v]; ok {
		next.env[v] = existing.Intersect(types)
	} else {
		next.env[v] = types.Clone()
	}
	return next
}

// freshVariable mints a fresh, collision-free variable name for a new
// participant of the given type, following the naming scheme
// "<type-label-with-colons-replaced-by-__>_<current-conjunction-length>"
// with an optional suffix (§4.3).
func (c Clause) freshVariable(t schema.Type, suffix string) Variable {
	label := strings.ReplaceAll(t.Label(), ":", "__")
	name := fmt.Sprintf("%s_%d", label, len(c.conjunction))
	if suffix != "" {
		name = fmt.Sprintf("%s_%s", name, suffix)
	}
	return NewVariable(name)
}

// ExtendWithIsa appends Isa(var, t) and narrows var's environment to a
// subset of subtypes(t) ∪ {t} — here, exactly schema.Subtypes[t], which
// schema.Discover seeds reflexively with t itself (§3 invariant, §9 Open
// Question: the contract requires the ∪{t} form, not the stricter {t}).
func (c Clause) ExtendWithIsa(v Variable, t schema.Type, s *schema.Schema) Clause {
	return c.extend(Isa{Var: v, Type: t}).narrowVar(v, s.Subtypes[t])
}

// ExtendWithHas appends Has(owner, attrType, freshAttrVar), binds the fresh
// attribute variable to {attrType}, and narrows owner's environment to
// owners(attrType) (§3, §4.3 step 4).
func (c Clause) ExtendWithHas(owner Variable, attrType schema.Type, s *schema.Schema) Clause {
	attrVar := c.freshVariable(attrType, "")
	next := c.extend(Has{Owner: owner, Type: attrType, AttrVar: attrVar})
	next = next.withVar(attrVar, schema.NewTypeSet(attrType))
	return next.narrowVar(owner, s.Owners[attrType])
}

// ExtendWithHasValue appends HasValue(owner, attrType, value) and narrows
// owner's environment to owners(attrType) (§4.3 step 5).
func (c Clause) ExtendWithHasValue(owner Variable, attrType schema.Type, value graphdb.Value, s *schema.Schema) Clause {
	next := c.extend(HasValue{Owner: owner, Type: attrType, Value: value})
	return next.narrowVar(owner, s.Owners[attrType])
}

// ExtendWithPlayedLinks appends Links(freshRelationVar, role, player),
// introducing a fresh relation variable whose environment is
// related_by(role) (§4.3 step 2).
func (c Clause) ExtendWithPlayedLinks(player Variable, role schema.Type, s *schema.Schema) Clause {
	relVar := c.freshVariable(role, "rel")
	next := c.extend(Links{Relation: relVar, Role: role, Player: player})
	return next.withVar(relVar, s.RelatedBy[role])
}

// ExtendWithRelatedLinks appends Links(relation, role, freshPlayerVar),
// introducing a fresh player variable whose environment is players(role)
// (§4.3 step 3).
func (c Clause) ExtendWithRelatedLinks(relation Variable, role schema.Type, s *schema.Schema) Clause {
	playerVar := c.freshVariable(role, "")
	next := c.extend(Links{Relation: relation, Role: role, Player: playerVar})
	return next.withVar(playerVar, s.Players[role])
}

// ExtendWithComparison appends CompareVars(lhs, cmp, rhs) (§4.3 step 6).
func (c Clause) ExtendWithComparison(lhs Variable, cmp Comparator, rhs Variable) Clause {
	return c.extend(CompareVars{Lhs: lhs, Comparator: cmp, Rhs: rhs})
}
