package table

import "github.com/aretw0/turing/pkg/domain"

// Table is an ordered transition table. It is safe for concurrent reads and
// may be shared by several machines. A nil *Table behaves as an empty table.
type Table[Q comparable, S domain.Symbol] struct {
	rules []domain.Rule[Q, S]
}

// New creates a table from rules, preserving their order.
// The slice is copied; later changes to it do not affect the table.
func New[Q comparable, S domain.Symbol](rules ...domain.Rule[Q, S]) *Table[Q, S] {
	cp := make([]domain.Rule[Q, S], len(rules))
	copy(cp, rules)
	return &Table[Q, S]{rules: cp}
}

// Lookup returns the action of the first rule matching state and read.
// It returns an *domain.UndefinedTransitionError when no rule matches.
func (t *Table[Q, S]) Lookup(state Q, read domain.Cell[S]) (domain.Action[Q, S], error) {
	for _, r := range t.list() {
		if r.Matches(state, read) {
			return r.Then, nil
		}
	}
	return domain.Action[Q, S]{}, &domain.UndefinedTransitionError[Q, S]{State: state, Read: read}
}

// Len returns the number of rules.
func (t *Table[Q, S]) Len() int {
	return len(t.list())
}

// Rules returns a copy of the rules in table order.
func (t *Table[Q, S]) Rules() []domain.Rule[Q, S] {
	rules := t.list()
	cp := make([]domain.Rule[Q, S], len(rules))
	copy(cp, rules)
	return cp
}

// States lists the distinct states mentioned by the table in order of first
// appearance. Next states of accepting actions are never installed and are
// left out unless they also appear elsewhere.
func (t *Table[Q, S]) States() []Q {
	seen := make(map[Q]bool)
	var states []Q
	add := func(q Q) {
		if !seen[q] {
			seen[q] = true
			states = append(states, q)
		}
	}
	for _, r := range t.list() {
		add(r.When.State)
		if !r.Then.Accept {
			add(r.Then.Next)
		}
	}
	return states
}

func (t *Table[Q, S]) list() []domain.Rule[Q, S] {
	if t == nil {
		return nil
	}
	return t.rules
}
