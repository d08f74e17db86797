/*
Package machine implements the execution engine of a deterministic,
single-tape Turing machine.

A Machine owns one configuration (state, tape, head) and reads a shared,
immutable transition table. Step applies exactly one transition; Run repeats
Step until an accepting action has been applied or the table has no rule for
the current state and cell.

Run gives no termination guarantee. Callers that need a bound drive Step
themselves, for example through the runner package.

	m, err := machine.New(tbl, "inc", cells, len(cells)-1)
	if err != nil {
		return err
	}
	if err := m.Run(); err != nil {
		return err // *domain.UndefinedTransitionError
	}
	fmt.Println(m.Render())
*/
package machine
