package turing_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/catalog"
	"github.com/aretw0/turing/pkg/domain"
)

// ExampleNew builds the binary increment table by hand and reuses it for two runs.
func ExampleNew() {
	tbl := turing.NewBuilder[string, catalog.Bit]().
		On("Do", domain.Mark(catalog.One)).Write(catalog.Zero).Left().Goto("Do").
		On("Do", domain.Mark(catalog.Zero)).Write(catalog.One).Accept("Stop").
		OnBlank("Do").Write(catalog.One).Accept("Stop").
		Build()

	m, err := turing.New(tbl, "Do", domain.Marks(catalog.Zero, catalog.One, catalog.One, catalog.One), 3)
	if err != nil {
		log.Fatal(err)
	}
	if err := m.Run(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(m.Render())

	if err := m.Reset("Do", domain.Marks(catalog.One), 0); err != nil {
		log.Fatal(err)
	}
	if err := m.Run(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(m.Render())
	// Output:
	// 1000
	// 10
}

// ExampleTrace prints every configuration of a catalog machine.
func ExampleTrace() {
	m, err := catalog.BusyBeaver2().NewMachine("_", 0)
	if err != nil {
		log.Fatal(err)
	}

	r := turing.NewRunner()
	r.Output = os.Stdout
	if err := turing.Trace(context.Background(), r, m); err != nil {
		log.Fatal(err)
	}
	// Output:
	//     0  A        [_]
	//     1  B        1[_]
	//     2  A        [1]1
	//     3  B        [_]11
	//     4  A        [_]111
	//     5  B        1[1]11
	//     6  B        11[1]1
}
