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

// Package fixturedb is a tiny in-memory graphdb.Driver: just enough of a
// pattern-match evaluator to answer the literal shapes schema.Discover,
// clause.Render and the foil/tilde dataset-discovery query emit. It exists for cmd/ilp-learn's demo mode and for
// package tests; it is not a general TypeQL engine (the real driver is out
// of scope, per graphdb's package doc).
package fixturedb

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/graphilp/ilp/graphdb"
)

// Driver is a fixed, in-memory database: a schema (types plus owns/
// relates/plays/sub edges) and a population of instances, attribute values
// and relation role-players.
type Driver struct {
	types map[string]graphdb.ConceptKind

	owns    []edge
	relates []edge
	plays   []edge
	sub     []edge

	instances map[string]string // instance id -> type label

	// attrs[ownerID][attrTypeLabel] is every attribute instance that owner
	// holds of that type.
	attrs map[string]map[string][]attrInstance

	// players[relationID][unscopedRole] is every player instance filling
	// that role of that relation instance.
	players map[string]map[string][]string
	// relOf maps a relation instance id to its type label.
	relOf map[string]string
}

type edge struct{ left, right string }

type attrInstance struct {
	id    string
	value graphdb.Value
}

// New returns an empty Driver; use the With* builders to populate it before
// running queries.
func New() *Driver {
	return &Driver{
		types:     make(map[string]graphdb.ConceptKind),
		instances: make(map[string]string),
		attrs:     make(map[string]map[string][]attrInstance),
		players:   make(map[string]map[string][]string),
		relOf:     make(map[string]string),
	}
}

// WithType registers a type in the schema.
func (d *Driver) WithType(label string, kind graphdb.ConceptKind) *Driver {
	d.types[label] = kind
	return d
}

// WithOwns registers that ownerType owns attrType.
func (d *Driver) WithOwns(ownerType, attrType string) *Driver {
	d.owns = append(d.owns, edge{ownerType, attrType})
	return d
}

// WithRelates registers that relationType relates roleType (roleType scoped
// "relation:role").
func (d *Driver) WithRelates(relationType, roleType string) *Driver {
	d.relates = append(d.relates, edge{relationType, roleType})
	return d
}

// WithPlays registers that playerType plays roleType (roleType scoped
// "relation:role").
func (d *Driver) WithPlays(playerType, roleType string) *Driver {
	d.plays = append(d.plays, edge{playerType, roleType})
	return d
}

// WithSub registers that subType is a direct subtype of superType.
func (d *Driver) WithSub(subType, superType string) *Driver {
	d.sub = append(d.sub, edge{subType, superType})
	return d
}

// WithInstance registers an instance of the given entity or relation type.
func (d *Driver) WithInstance(id, typeLabel string) *Driver {
	d.instances[id] = typeLabel
	return d
}

// WithAttribute gives ownerID an attribute of attrType with the given value.
// attrID must be unique across the whole fixture.
func (d *Driver) WithAttribute(ownerID, attrType, attrID string, value graphdb.Value) *Driver {
	if d.attrs[ownerID] == nil {
		d.attrs[ownerID] = make(map[string][]attrInstance)
	}
	d.attrs[ownerID][attrType] = append(d.attrs[ownerID][attrType], attrInstance{attrID, value})
	return d
}

// WithRelation registers a relation instance of relationType with the given
// role -> player-instance bindings (roles given unscoped, matching how
// clause.Links renders them).
func (d *Driver) WithRelation(relationID, relationType string, rolePlayers map[string]string) *Driver {
	d.relOf[relationID] = relationType
	d.players[relationID] = make(map[string][]string)
	for role, player := range rolePlayers {
		d.players[relationID][role] = append(d.players[relationID][role], player)
	}
	return d
}

// Transaction opens a read-only handle onto this fixture. The fixture
// ignores database and txType; there is only ever one database.
func (d *Driver) Transaction(ctx context.Context, database string, txType graphdb.TransactionType) (graphdb.Transaction, error) {
	return &transaction{d: d}, nil
}

type transaction struct{ d *Driver }

func (t *transaction) Query(ctx context.Context, pattern string) (graphdb.RowIterator, error) {
	rows, err := t.d.eval(pattern)
	if err != nil {
		return nil, err
	}
	return &rowIterator{rows: rows}, nil
}

func (t *transaction) Close() error { return nil }

type rowIterator struct {
	rows []row
	pos  int
}

func (it *rowIterator) Next() (graphdb.Row, error) {
	if it.pos >= len(it.rows) {
		return nil, graphdb.ErrDone
	}
	r := it.rows[it.pos]
	it.pos++
	return r, nil
}

func (it *rowIterator) Close() error { return nil }

// row binds variable names (without "$") to concepts.
type row map[string]*concept

func (r row) Get(variable string) (graphdb.Concept, bool) {
	c, ok := r[variable]
	return c, ok
}

func (r row) clone() row {
	out := make(row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// concept is the one implementation of graphdb.Concept this fixture needs:
// either a type concept (label + kind) or an instance concept (an id,
// optionally carrying an attribute value).
type concept struct {
	// type concept fields
	isType    bool
	typeLabel string
	kind      graphdb.ConceptKind

	// instance concept fields
	id       string
	value    graphdb.Value
	hasValue bool
}

func (c *concept) IID() (string, bool) {
	if c.isType {
		return "", false
	}
	return c.id, true
}

func (c *concept) TypeLabel() (string, graphdb.ConceptKind, bool) {
	if !c.isType {
		return "", 0, false
	}
	return c.typeLabel, c.kind, true
}

func (c *concept) Value() (graphdb.Value, bool) {
	return c.value, c.hasValue
}

func typeConcept(label string, kind graphdb.ConceptKind) *concept {
	return &concept{isType: true, typeLabel: label, kind: kind}
}

func instanceConcept(id string) *concept {
	return &concept{id: id}
}

func attrConcept(id string, v graphdb.Value) *concept {
	return &concept{id: id, value: v, hasValue: true}
}

// isSubtypeOrSelf reports whether typeLabel equals target, or is a
// transitive subtype of it.
func (d *Driver) isSubtypeOrSelf(typeLabel, target string) bool {
	if typeLabel == target {
		return true
	}
	seen := map[string]bool{typeLabel: true}
	frontier := []string{typeLabel}
	for len(frontier) > 0 {
		var next []string
		for _, t := range frontier {
			for _, e := range d.sub {
				if e.left == t && !seen[e.right] {
					if e.right == target {
						return true
					}
					seen[e.right] = true
					next = append(next, e.right)
				}
			}
		}
		frontier = next
	}
	return false
}

func unscopedRole(label string) string {
	if idx := strings.LastIndex(label, ":"); idx >= 0 {
		return label[idx+1:]
	}
	return label
}

var (
	reOwns      = regexp.MustCompile(`^\$(\w+) owns \$(\w+)$`)
	reRelates   = regexp.MustCompile(`^\$(\w+) relates \$(\w+)$`)
	rePlays     = regexp.MustCompile(`^\$(\w+) plays \$(\w+)$`)
	reSub       = regexp.MustCompile(`^\$(\w+) sub \$(\w+)$`)
	reAttrLabel = regexp.MustCompile(`^attribute \$(\w+) label (\S+)$`)
	reIsaVar    = regexp.MustCompile(`^\$(\w+) isa \$(\w+)$`)
	reIsaBare   = regexp.MustCompile(`^\$([\w\-]+) isa ([\w:\-]+)$`)
	reHasVar    = regexp.MustCompile(`^\$([\w\-]+) has (\S+) \$([\w\-]+)$`)
	reHasVal    = regexp.MustCompile(`^\$([\w\-]+) has (\S+) (.+)$`)
	reLinks     = regexp.MustCompile(`^\$([\w\-]+) links \(([\w:\-]+): \$([\w\-]+)\)$`)
	reCmpVar    = regexp.MustCompile(`^\$([\w\-]+) (==|!=|<=|>=) \$([\w\-]+)$`)
	reCmpVal    = regexp.MustCompile(`^\$([\w\-]+) (==|!=|<=|>=) (.+)$`)
)

// eval answers a pattern of the exact shapes schema.Discover, clause.Render
// and the foil/tilde dataset-discovery query emit:
// "match <literal>[;<literal>...]; [select $var;]".
func (d *Driver) eval(pattern string) ([]row, error) {
	body := strings.TrimSpace(pattern)
	body = strings.TrimPrefix(body, "match ")
	body = strings.TrimSuffix(strings.TrimSpace(body), ";")

	var literals []string
	var projection string
	for _, part := range strings.Split(body, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "select ") {
			projection = strings.TrimPrefix(strings.TrimPrefix(part, "select "), "$")
			continue
		}
		// "$x isa T, has A $c" is shorthand for "$x isa T; $x has A $c".
		if head, tail, ok := strings.Cut(part, ", has "); ok {
			owner := strings.Fields(head)[0]
			literals = append(literals, head, owner+" has "+tail)
			continue
		}
		literals = append(literals, part)
	}

	bindings := []row{make(row)}
	for _, lit := range literals {
		var err error
		bindings, err = d.evalLiteral(lit, bindings)
		if err != nil {
			return nil, fmt.Errorf("fixturedb: %q: %w", lit, err)
		}
	}

	if projection != "" {
		projected := make([]row, len(bindings))
		for i, b := range bindings {
			r := make(row, 1)
			if c, ok := b[projection]; ok {
				r[projection] = c
			}
			projected[i] = r
		}
		return projected, nil
	}
	return bindings, nil
}

func (d *Driver) evalLiteral(lit string, bindings []row) ([]row, error) {
	switch {
	case reOwns.MatchString(lit):
		m := reOwns.FindStringSubmatch(lit)
		return d.evalSchemaEdge(d.owns, m[1], m[2], bindings)
	case reRelates.MatchString(lit):
		m := reRelates.FindStringSubmatch(lit)
		return d.evalSchemaEdge(d.relates, m[1], m[2], bindings)
	case rePlays.MatchString(lit):
		m := rePlays.FindStringSubmatch(lit)
		return d.evalSchemaEdge(d.plays, m[1], m[2], bindings)
	case reSub.MatchString(lit):
		m := reSub.FindStringSubmatch(lit)
		return d.evalSchemaEdge(d.sub, m[1], m[2], bindings)
	case reAttrLabel.MatchString(lit):
		m := reAttrLabel.FindStringSubmatch(lit)
		return d.evalAttrLabel(m[1], m[2], bindings)
	case reIsaVar.MatchString(lit):
		m := reIsaVar.FindStringSubmatch(lit)
		return d.evalIsaVar(m[1], m[2], bindings)
	case reHasVar.MatchString(lit):
		m := reHasVar.FindStringSubmatch(lit)
		return d.evalHasVar(m[1], m[2], m[3], bindings)
	case reLinks.MatchString(lit):
		m := reLinks.FindStringSubmatch(lit)
		return d.evalLinks(m[1], m[2], m[3], bindings)
	case reCmpVar.MatchString(lit):
		m := reCmpVar.FindStringSubmatch(lit)
		return d.evalCompare(m[1], m[2], conceptRef{var_: m[3]}, bindings)
	case reHasVal.MatchString(lit):
		m := reHasVal.FindStringSubmatch(lit)
		return d.evalHasVal(m[1], m[2], m[3], bindings)
	case reCmpVal.MatchString(lit):
		m := reCmpVal.FindStringSubmatch(lit)
		v, err := parseValueLiteral(m[3])
		if err != nil {
			return nil, err
		}
		return d.evalCompare(m[1], m[2], conceptRef{value: v, isValue: true}, bindings)
	case reIsaBare.MatchString(lit):
		m := reIsaBare.FindStringSubmatch(lit)
		return d.evalIsaBare(m[1], m[2], bindings)
	}
	return nil, fmt.Errorf("unrecognized literal shape")
}

func (d *Driver) evalSchemaEdge(edges []edge, leftVar, rightVar string, bindings []row) ([]row, error) {
	var out []row
	for _, b := range bindings {
		for _, e := range edges {
			next := b.clone()
			next[leftVar] = typeConcept(e.left, d.types[e.left])
			next[rightVar] = typeConcept(e.right, d.types[e.right])
			out = append(out, next)
		}
	}
	return out, nil
}

func (d *Driver) evalAttrLabel(leftVar, label string, bindings []row) ([]row, error) {
	kind, ok := d.types[label]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", label)
	}
	var out []row
	for _, b := range bindings {
		next := b.clone()
		next[leftVar] = typeConcept(label, kind)
		out = append(out, next)
	}
	return out, nil
}

func (d *Driver) evalIsaVar(varName, typeVar string, bindings []row) ([]row, error) {
	var out []row
	for _, b := range bindings {
		typeC, ok := b[typeVar]
		if !ok {
			return nil, fmt.Errorf("%s unbound", typeVar)
		}
		label, _, _ := typeC.TypeLabel()
		for _, attrs := range d.attrs {
			for attrType, instances := range attrs {
				if attrType != label {
					continue
				}
				for _, a := range instances {
					next := b.clone()
					next[varName] = attrConcept(a.id, a.value)
					out = append(out, next)
				}
			}
		}
	}
	return out, nil
}

func (d *Driver) evalIsaBare(varName, typeLabel string, bindings []row) ([]row, error) {
	var out []row
	for _, b := range bindings {
		if existing, ok := b[varName]; ok {
			id, _ := existing.IID()
			instType := d.instances[id]
			if relType, isRel := d.relOf[id]; isRel {
				instType = relType
			}
			if d.isSubtypeOrSelf(instType, typeLabel) {
				out = append(out, b)
			}
			continue
		}
		for id, t := range d.instances {
			if d.isSubtypeOrSelf(t, typeLabel) {
				next := b.clone()
				next[varName] = instanceConcept(id)
				out = append(out, next)
			}
		}
		for id, t := range d.relOf {
			if d.isSubtypeOrSelf(t, typeLabel) {
				next := b.clone()
				next[varName] = instanceConcept(id)
				out = append(out, next)
			}
		}
	}
	return out, nil
}

func (d *Driver) evalHasVar(ownerVar, attrType, attrVar string, bindings []row) ([]row, error) {
	var out []row
	for _, b := range bindings {
		owner, ok := b[ownerVar]
		if !ok {
			return nil, fmt.Errorf("%s unbound", ownerVar)
		}
		ownerID, _ := owner.IID()
		for _, a := range d.attrs[ownerID][attrType] {
			next := b.clone()
			next[attrVar] = attrConcept(a.id, a.value)
			out = append(out, next)
		}
	}
	return out, nil
}

func (d *Driver) evalHasVal(ownerVar, attrType, literal string, bindings []row) ([]row, error) {
	want, err := parseValueLiteral(literal)
	if err != nil {
		return nil, err
	}
	var out []row
	for _, b := range bindings {
		owner, ok := b[ownerVar]
		if !ok {
			return nil, fmt.Errorf("%s unbound", ownerVar)
		}
		ownerID, _ := owner.IID()
		for _, a := range d.attrs[ownerID][attrType] {
			if a.value.Equal(want) {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

func (d *Driver) evalLinks(relVar, role, playerVar string, bindings []row) ([]row, error) {
	unscoped := unscopedRole(role)
	var out []row
	for _, b := range bindings {
		relC, relBound := b[relVar]
		playerC, playerBound := b[playerVar]

		switch {
		case relBound && playerBound:
			relID, _ := relC.IID()
			playerID, _ := playerC.IID()
			for _, p := range d.players[relID][unscoped] {
				if p == playerID {
					out = append(out, b)
					break
				}
			}
		case relBound && !playerBound:
			relID, _ := relC.IID()
			for _, p := range d.players[relID][unscoped] {
				next := b.clone()
				next[playerVar] = instanceConcept(p)
				out = append(out, next)
			}
		case !relBound && playerBound:
			playerID, _ := playerC.IID()
			for relID, roles := range d.players {
				for _, p := range roles[unscoped] {
					if p == playerID {
						next := b.clone()
						next[relVar] = instanceConcept(relID)
						out = append(out, next)
					}
				}
			}
		default:
			for relID, roles := range d.players {
				for _, p := range roles[unscoped] {
					next := b.clone()
					next[relVar] = instanceConcept(relID)
					next[playerVar] = instanceConcept(p)
					out = append(out, next)
				}
			}
		}
	}
	return out, nil
}

// conceptRef is either another bound variable or a literal value, used by
// evalCompare to share one comparison path for CompareVars and
// CompareConst.
type conceptRef struct {
	var_    string
	value   graphdb.Value
	isValue bool
}

func (d *Driver) evalCompare(lhsVar, cmp string, rhs conceptRef, bindings []row) ([]row, error) {
	var out []row
	for _, b := range bindings {
		lhs, ok := b[lhsVar]
		if !ok {
			return nil, fmt.Errorf("%s unbound", lhsVar)
		}
		lhsRender := renderConcept(lhs)

		var rhsRender string
		if rhs.isValue {
			rhsRender = rhs.value.Render()
		} else {
			rc, ok := b[rhs.var_]
			if !ok {
				return nil, fmt.Errorf("%s unbound", rhs.var_)
			}
			rhsRender = renderConcept(rc)
		}

		if compareRendered(lhsRender, cmp, rhsRender) {
			out = append(out, b)
		}
	}
	return out, nil
}

func renderConcept(c *concept) string {
	if v, ok := c.Value(); ok {
		return v.Render()
	}
	id, _ := c.IID()
	return id
}

func compareRendered(lhs, cmp, rhs string) bool {
	switch cmp {
	case "==":
		return lhs == rhs
	case "!=":
		return lhs != rhs
	case "<=":
		if lf, rf, ok := parseFloats(lhs, rhs); ok {
			return lf <= rf
		}
		return lhs <= rhs
	case ">=":
		if lf, rf, ok := parseFloats(lhs, rhs); ok {
			return lf >= rf
		}
		return lhs >= rhs
	}
	return false
}

func parseFloats(a, b string) (float64, float64, bool) {
	af, aerr := strconv.ParseFloat(a, 64)
	bf, berr := strconv.ParseFloat(b, 64)
	return af, bf, aerr == nil && berr == nil
}

// parseValueLiteral parses a value the way it appears rendered inside an
// emitted literal (§4.2): a quoted string, a bare bool, or a bare number.
func parseValueLiteral(s string) (graphdb.Value, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "true":
		return graphdb.BoolValue(true), nil
	case "false":
		return graphdb.BoolValue(false), nil
	}
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return graphdb.Value{}, fmt.Errorf("parsing string literal %q: %w", s, err)
		}
		return graphdb.StringValue(unquoted), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return graphdb.NumberValue(f), nil
	}
	return graphdb.Value{}, fmt.Errorf("unrecognized value literal %q", s)
}
