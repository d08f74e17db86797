/*
Package table implements the transition function of a Turing machine as an
ordered, immutable list of rules.

Lookup resolves (state, cell) to the action of the first matching rule in table
order. Rules do not have to be disjoint: when several rules share a condition
the earliest one wins. There is no wildcard matching; a blank cell only matches
a rule written for blank.

Tables can be built from literal rules with New, or with the fluent Builder:

	tbl := table.NewBuilder[string, Bit]().
		On("inc", domain.Mark(One)).Write(Zero).Left().Goto("inc").
		On("inc", domain.Mark(Zero)).Write(One).Accept("done").
		OnBlank("inc").Write(One).Accept("done").
		Build()
*/
package table
