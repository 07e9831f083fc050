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

package fixturedb

import "github.com/graphilp/ilp/graphdb"

// PersonCompanyDemo builds the fixture used throughout cmd/ilp-learn's demo
// mode and the package tests: the person/company/employment/parenthood
// schema named in §8's end-to-end scenarios, populated with four people in
// two parent/child pairs.
func PersonCompanyDemo() *Driver {
	d := New().
		WithType("person", graphdb.KindEntity).
		WithType("company", graphdb.KindEntity).
		WithType("employment", graphdb.KindRelation).
		WithType("parenthood", graphdb.KindRelation).
		WithType("employment:employer", graphdb.KindRole).
		WithType("employment:employee", graphdb.KindRole).
		WithType("parenthood:parent", graphdb.KindRole).
		WithType("parenthood:child", graphdb.KindRole).
		WithType("name", graphdb.KindAttribute).
		WithType("age", graphdb.KindAttribute).
		WithType("company-name", graphdb.KindAttribute).
		WithType("is-parent", graphdb.KindAttribute)

	d.WithOwns("person", "name").
		WithOwns("person", "age").
		WithOwns("person", "is-parent").
		WithOwns("company", "company-name")

	d.WithRelates("employment", "employment:employer").
		WithRelates("employment", "employment:employee").
		WithRelates("parenthood", "parenthood:parent").
		WithRelates("parenthood", "parenthood:child")

	d.WithPlays("person", "employment:employee").
		WithPlays("company", "employment:employer").
		WithPlays("person", "parenthood:parent").
		WithPlays("person", "parenthood:child")

	d.WithInstance("alice", "person").
		WithInstance("bob", "person").
		WithInstance("carol", "person").
		WithInstance("dave", "person").
		WithInstance("acme", "company")

	d.WithAttribute("alice", "name", "alice#name", graphdb.StringValue("Alice")).
		WithAttribute("bob", "name", "bob#name", graphdb.StringValue("Bob")).
		WithAttribute("carol", "name", "carol#name", graphdb.StringValue("Carol")).
		WithAttribute("dave", "name", "dave#name", graphdb.StringValue("Dave"))

	d.WithAttribute("alice", "is-parent", "alice#is-parent", graphdb.BoolValue(true)).
		WithAttribute("bob", "is-parent", "bob#is-parent", graphdb.BoolValue(false)).
		WithAttribute("carol", "is-parent", "carol#is-parent", graphdb.BoolValue(true)).
		WithAttribute("dave", "is-parent", "dave#is-parent", graphdb.BoolValue(false))

	d.WithRelation("parenthood-1", "parenthood", map[string]string{
		"parent": "alice",
		"child":  "bob",
	})
	d.WithRelation("parenthood-2", "parenthood", map[string]string{
		"parent": "carol",
		"child":  "dave",
	})
	d.WithRelation("employment-1", "employment", map[string]string{
		"employer": "acme",
		"employee": "bob",
	})

	return d
}
