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

// Binary ilp-lint runs the FOIL theory / TILDE tree that ilp-learn produces
// through the static quality checks in package ilplint. It is a demo
// harness: it learns over internal/fixturedb's person/company fixture
// itself rather than taking a serialized theory as input, since no theory
// persistence format is part of this system (§1 Non-goals).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/graphilp/ilp/foil"
	"github.com/graphilp/ilp/ilpconfig"
	"github.com/graphilp/ilp/ilplint"
	"github.com/graphilp/ilp/internal/fixturedb"
	"github.com/graphilp/ilp/oracle"
	"github.com/graphilp/ilp/schema"
	"github.com/graphilp/ilp/tilde"
)

var (
	algorithm       = flag.String("algorithm", "foil", "learner to run: foil or tilde")
	target          = flag.String("target", "person", "target type label")
	classAttr       = flag.String("class-attribute", "is-parent", "boolean class attribute label")
	format          = flag.String("format", "text", "output format: text or json")
	severity        = flag.String("severity", "info", "minimum severity to report: info, warning, or error")
	disable         = flag.String("disable", "", "comma-separated list of rule names to disable")
	listRules       = flag.Bool("list-rules", false, "list all available lint rules and exit")
	maxClauseLength = flag.Int("max-clause-length", 10, "threshold for overly-complex-clause check")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ilp-lint [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Learns a theory or tree over the built-in demo fixture and lints it.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExit codes:\n")
		fmt.Fprintf(os.Stderr, "  0  No findings (or only info)\n")
		fmt.Fprintf(os.Stderr, "  1  Warnings found\n")
		fmt.Fprintf(os.Stderr, "  2  Errors found, or a learning/query error\n")
	}
	flag.Parse()

	if *listRules {
		fmt.Println("Available lint rules:")
		fmt.Println()
		for _, r := range ilplint.AllRules() {
			fmt.Printf("  %-25s [%s]  %s\n", r.Name(), r.DefaultSeverity(), r.Description())
		}
		os.Exit(0)
	}

	ctx := context.Background()
	driver := fixturedb.PersonCompanyDemo()
	s, err := schema.Discover(ctx, driver, "demo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "schema discovery failed: %v\n", err)
		os.Exit(2)
	}
	o := oracle.New(driver, "demo")

	input := &ilplint.LintInput{}
	switch *algorithm {
	case "foil":
		task, err := foil.Discover(ctx, o, s, *target, *classAttr, ilpconfig.Default())
		if err != nil {
			fmt.Fprintf(os.Stderr, "foil.Discover failed: %v\n", err)
			os.Exit(2)
		}
		theory, err := task.Search(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "foil search failed: %v\n", err)
			os.Exit(2)
		}
		input.Theory = theory
	case "tilde":
		task, err := tilde.Discover(ctx, o, s, *target, *classAttr, ilpconfig.Default())
		if err != nil {
			fmt.Fprintf(os.Stderr, "tilde.Discover failed: %v\n", err)
			os.Exit(2)
		}
		root, err := task.Learn(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tilde learn failed: %v\n", err)
			os.Exit(2)
		}
		input.Tree = root
	default:
		fmt.Fprintf(os.Stderr, "unknown -algorithm %q: want foil or tilde\n", *algorithm)
		os.Exit(2)
	}

	config := ilplint.DefaultConfig()
	config.MaxClauseLength = *maxClauseLength
	config.MinSeverity = ilplint.ParseSeverity(*severity)
	if *disable != "" {
		for _, name := range strings.Split(*disable, ",") {
			config.DisabledRules[strings.TrimSpace(name)] = true
		}
	}

	linter := ilplint.NewLinter(config)
	results := linter.Lint(input)

	switch *format {
	case "json":
		if err := ilplint.FormatJSON(os.Stdout, results); err != nil {
			fmt.Fprintf(os.Stderr, "error writing JSON: %v\n", err)
			os.Exit(2)
		}
	default:
		ilplint.FormatText(os.Stdout, results)
	}

	maxSev := ilplint.SeverityInfo
	for _, r := range results {
		if r.Severity > maxSev {
			maxSev = r.Severity
		}
	}
	switch {
	case maxSev >= ilplint.SeverityError:
		os.Exit(2)
	case maxSev >= ilplint.SeverityWarning:
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
