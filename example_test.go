package espalier_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

// ExampleNew_memory demonstrates using the Engine with an in-memory
// definition source. This is useful for testing, embedded scenarios, or when
// you don't want to rely on the file system.
func ExampleNew_memory() {
	// 1. Define your form using pure Go structs.
	source, err := memory.NewFromForms(schema.Form{
		Name: "signup",
		Fields: []schema.Field{
			{Name: "email", Type: "text", Required: true, Rules: "required,email"},
			{Name: "age", Type: "integer"},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	// 2. Initialize the Engine with the custom source.
	// No repository path needed ("") because we are providing a source.
	eng, err := espalier.New("", espalier.WithSource(source))
	if err != nil {
		log.Fatal(err)
	}

	// 3. Bind a submission. Submissions arrive in presentation format:
	// every leaf is text, exactly as an HTTP form would deliver it.
	ctx := context.Background()
	submission := domain.Wrap(domain.NewStructured().
		Set("email", domain.Scalar("ada@example.com")).
		Set("age", domain.Scalar("36")))

	report, err := eng.Bind(ctx, "signup", domain.Null(), submission)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("valid:", report.Valid)

	// 4. The report carries the reconciled storage-format data.
	age, _ := report.Data.Structured().Get("age")
	fmt.Println("age:", age.Scalar())

	// Output:
	// valid: true
	// age: 36
}

// ExampleEngine_Form demonstrates working with the node tree directly when
// the flattened report is not enough.
func ExampleEngine_Form() {
	source, err := memory.NewFromForms(schema.Form{
		Name: "profile",
		Fields: []schema.Field{
			{Name: "name", Type: "text", Required: true},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	eng, err := espalier.New("", espalier.WithSource(source))
	if err != nil {
		log.Fatal(err)
	}

	root, err := eng.Form(context.Background(), "profile")
	if err != nil {
		log.Fatal(err)
	}

	// An unbound tree accepts initial data before binding.
	err = root.SetValue(domain.Wrap(domain.NewStructured().
		Set("name", domain.Scalar("Ada"))))
	if err != nil {
		log.Fatal(err)
	}

	if err := root.Bind(domain.Wrap(domain.NewStructured().
		Set("name", domain.Scalar("Grace")))); err != nil {
		log.Fatal(err)
	}

	name, _ := root.Get("name")
	v, _ := name.StorageValue()
	fmt.Println("name:", v.Scalar())

	// Output:
	// name: Grace
}
