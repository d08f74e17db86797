package domain

// Condition is the left-hand side of a transition rule:
// "the machine is in State and reads Read".
type Condition[Q comparable, S Symbol] struct {
	State Q
	Read  Cell[S]
}

// Action is the right-hand side of a transition rule.
type Action[Q comparable, S Symbol] struct {
	// Write replaces the cell under the head (it may be blank).
	Write Cell[S]

	// Move is applied after the write.
	Move Direction

	// Next is installed as the current state, unless Accept is set.
	Next Q

	// Accept halts the machine after the write and move.
	// Next is not installed for accepting actions.
	Accept bool
}

// Rule binds a Condition to an Action.
type Rule[Q comparable, S Symbol] struct {
	When Condition[Q, S]
	Then Action[Q, S]
}

// Matches reports whether the rule applies to the given state and cell.
func (r Rule[Q, S]) Matches(state Q, read Cell[S]) bool {
	return r.When.State == state && r.When.Read == read
}
