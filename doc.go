/*
Package espalier is a hierarchical data-binding and transformation engine for
turning declarative form definitions into trees of typed nodes, reconciling
submitted data against them, and reporting validation outcomes.

It separates the shape of the data your application stores (storage format)
from the shape users submit (presentation format), with a normalized format in
between. Each node carries a reversible transformation pipeline between the
three representations, so a single definition drives both rendering initial
data out and binding submissions back in.

# Concept

A form is a tree. Leaf nodes hold scalar values and run them through
transformer chains (trim, parse integers, format dates). Compound nodes own
children and a data mapper that distributes a structured value across them and
merges their results back. Binding is a once-only operation: it routes the
submission through the tree, reverse-transforms every leaf, runs validators
and collects errors, which bubble toward the root when configured to.

# Usage

Point the engine at a directory of definitions (Markdown with YAML
frontmatter, read through Loam) or inject any DefinitionSource:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/espalier"
		"github.com/aretw0/espalier/pkg/domain"
	)

	func main() {
		eng, err := espalier.New("./forms")
		if err != nil {
			log.Fatal(err)
		}

		submission := domain.Wrap(domain.NewStructured().
			Set("email", domain.Scalar("ada@example.com")).
			Set("age", domain.Scalar("36")))

		report, err := eng.Bind(context.Background(), "signup", domain.Null(), submission)
		if err != nil {
			log.Fatal(err)
		}

		if !report.Valid {
			for path, msgs := range report.Errors {
				fmt.Println(path, msgs)
			}
			return
		}
		fmt.Println("stored:", report.Data)
	}

Forms can also be declared in code with the pkg/dsl builder, and node trees
used directly through pkg/form when an application needs finer control than
the Report surface offers.
*/
package espalier
