package catalog

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
)

// BinaryIncrement adds one to a binary number, head starting on the least
// significant bit. A carry out of the leftmost bit is written onto the blank
// cell grown to its left. Accepting rules stay put so no extra blank is grown.
func BinaryIncrement() *Program {
	return &Program{
		Name:        "binary-increment",
		Description: "Adds one to a binary number; the head starts on the least significant bit.",
		Start:       "Do",
		HeadAtEnd:   true,
		Example:     "0111",
		Table: table.NewBuilder[string, Bit]().
			On("Do", domain.Mark(One)).Write(Zero).Left().Goto("Do").
			On("Do", domain.Mark(Zero)).Write(One).Stay().Accept("Stop").
			OnBlank("Do").Write(One).Stay().Accept("Stop").
			Build(),
	}
}

// BinaryInvert flips every bit from the head to the first blank on the right.
func BinaryInvert() *Program {
	return &Program{
		Name:        "binary-invert",
		Description: "Flips every bit from the head rightwards and halts on the first blank.",
		Start:       "Flip",
		Example:     "0110",
		Table: table.NewBuilder[string, Bit]().
			On("Flip", domain.Mark(Zero)).Write(One).Right().Goto("Flip").
			On("Flip", domain.Mark(One)).Write(Zero).Right().Goto("Flip").
			OnBlank("Flip").Stay().Accept("Done").
			Build(),
	}
}

// BusyBeaver2 is the two-state busy beaver: from a blank tape it writes four
// ones in six steps before halting.
func BusyBeaver2() *Program {
	return &Program{
		Name:        "busy-beaver-2",
		Description: "Two-state busy beaver; writes four ones on a blank tape in six steps.",
		Start:       "A",
		Example:     "_",
		Table: table.NewBuilder[string, Bit]().
			OnBlank("A").Write(One).Right().Goto("B").
			On("A", domain.Mark(One)).Write(One).Left().Goto("B").
			OnBlank("B").Write(One).Left().Goto("A").
			On("B", domain.Mark(One)).Write(One).Right().Accept("H").
			Build(),
	}
}
