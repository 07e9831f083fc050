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

// Binary ilp-learn runs the FOIL or TILDE learner against the bundled
// person/company demo fixture and prints the learned theory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/graphilp/ilp/foil"
	"github.com/graphilp/ilp/ilpconfig"
	"github.com/graphilp/ilp/internal/fixturedb"
	"github.com/graphilp/ilp/oracle"
	"github.com/graphilp/ilp/schema"
	"github.com/graphilp/ilp/tilde"
)

var (
	algorithm   = flag.String("algorithm", "foil", "learner to run: foil or tilde")
	target      = flag.String("target", "person", "target type label")
	classAttr   = flag.String("class-attr", "is-parent", "boolean class-attribute label")
	categorical = flag.String("categorical", "", "comma-separated attribute labels to enumerate as categorical")
	interactive = flag.Bool("interactive", false, "drop into a shell to re-run the search and inspect the theory")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ilp-learn [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs FOIL or TILDE against the bundled person/company demo fixture.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	driver := fixturedb.PersonCompanyDemo()
	ctx := context.Background()

	var categoricalAttrs []schema.CategoricalAttribute
	if *categorical != "" {
		for _, label := range strings.Split(*categorical, ",") {
			categoricalAttrs = append(categoricalAttrs, schema.CategoricalAttribute{Label: strings.TrimSpace(label)})
		}
	}

	s, err := schema.Discover(ctx, driver, "demo", categoricalAttrs...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ilp-learn: schema discovery failed: %v\n", err)
		os.Exit(1)
	}
	o := oracle.New(driver, "demo")

	if *interactive {
		runShell(ctx, o, s)
		return
	}

	if err := runOnce(ctx, o, s, *algorithm); err != nil {
		fmt.Fprintf(os.Stderr, "ilp-learn: %v\n", err)
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, o *oracle.Oracle, s *schema.Schema, algorithm string) error {
	opts := ilpconfig.Default()
	switch algorithm {
	case "foil":
		task, err := foil.Discover(ctx, o, s, *target, *classAttr, opts)
		if err != nil {
			return err
		}
		theory, err := task.Search(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("learned %d clause(s):\n", len(theory))
		for _, c := range theory {
			fmt.Printf("  %s\n", c)
		}
	case "tilde":
		task, err := tilde.Discover(ctx, o, s, *target, *classAttr, opts)
		if err != nil {
			return err
		}
		tree, err := task.Learn(ctx)
		if err != nil {
			return err
		}
		tree.Render(os.Stdout)
	default:
		return fmt.Errorf("unknown algorithm %q (want foil or tilde)", algorithm)
	}
	return nil
}

const shellPrompt = "ilp >"

// runShell is a tiny readline REPL for re-running the search with different
// parameters and inspecting the result: one line in, one command
// dispatched, result printed.
func runShell(ctx context.Context, o *oracle.Oracle, s *schema.Schema) {
	rl, err := readline.New(shellPrompt + " ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ilp-learn: starting shell: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("ilp-learn interactive shell. Commands: foil <target> <class-attr> | tilde <target> <class-attr> | quit")
	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return
		case "foil", "tilde":
			if len(fields) != 3 {
				fmt.Printf("usage: %s <target> <class-attr>\n", fields[0])
				continue
			}
			target, classAttr := fields[1], fields[2]
			if err := runShellCommand(ctx, o, s, fields[0], target, classAttr); err != nil {
				fmt.Printf("error: %v\n", err)
			}
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}
}

func runShellCommand(ctx context.Context, o *oracle.Oracle, s *schema.Schema, algorithm, targetLabel, classAttrLabel string) error {
	opts := ilpconfig.Default()
	switch algorithm {
	case "foil":
		task, err := foil.Discover(ctx, o, s, targetLabel, classAttrLabel, opts)
		if err != nil {
			return err
		}
		theory, err := task.Search(ctx)
		if err != nil {
			return err
		}
		for _, c := range theory {
			fmt.Printf("  %s\n", c)
		}
	case "tilde":
		task, err := tilde.Discover(ctx, o, s, targetLabel, classAttrLabel, opts)
		if err != nil {
			return err
		}
		tree, err := task.Learn(ctx)
		if err != nil {
			return err
		}
		tree.Render(os.Stdout)
	}
	return nil
}
