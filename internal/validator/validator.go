// Package validator checks transition tables for rules and states that can never take part in a run.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Issue is one finding about a table.
type Issue struct {
	// Rule is the index of the offending rule, or -1 for state-level issues.
	Rule    int
	Message string
}

func (i Issue) String() string {
	if i.Rule < 0 {
		return i.Message
	}
	return fmt.Sprintf("rule %d: %s", i.Rule+1, i.Message)
}

// Error collects every issue found in one table.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Issues), strings.Join(lines, "\n- "))
}

// ValidateTable crawls the table from start and reports:
//   - rules shadowed by an earlier rule with the same condition,
//   - states with rules that no run starting at start can enter,
//   - non-accepting targets that have no rules, where every run would get stuck.
//
// It returns nil or an *Error.
func ValidateTable[Q comparable, S domain.Symbol](rules []domain.Rule[Q, S], start Q) error {
	var issues []Issue

	// 1. Shadowed rules
	firstFor := make(map[domain.Condition[Q, S]]int, len(rules))
	hasRules := make(map[Q]bool)
	for i, r := range rules {
		hasRules[r.When.State] = true
		if j, ok := firstFor[r.When]; ok {
			issues = append(issues, Issue{
				Rule:    i,
				Message: fmt.Sprintf("(%v, %s) is shadowed by rule %d", r.When.State, r.When.Read.Render("_"), j+1),
			})
			continue
		}
		firstFor[r.When] = i
	}

	if !hasRules[start] {
		issues = append(issues, Issue{Rule: -1, Message: fmt.Sprintf("start state '%v' has no rules", start)})
	}

	// 2. Crawler over non-accepting transitions; accepting actions never install Next.
	visited := map[Q]bool{start: true}
	queue := []Q{start}
	order := []Q{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, r := range rules {
			if r.When.State != current || r.Then.Accept || visited[r.Then.Next] {
				continue
			}
			visited[r.Then.Next] = true
			queue = append(queue, r.Then.Next)
			order = append(order, r.Then.Next)
		}
	}

	for _, q := range order {
		if q != start && !hasRules[q] {
			issues = append(issues, Issue{Rule: -1, Message: fmt.Sprintf("state '%v' is entered but has no rules", q)})
		}
	}

	reported := make(map[Q]bool)
	for _, r := range rules {
		q := r.When.State
		if visited[q] || reported[q] {
			continue
		}
		reported[q] = true
		issues = append(issues, Issue{Rule: -1, Message: fmt.Sprintf("state '%v' is unreachable from '%v'", q, start)})
	}

	if len(issues) > 0 {
		return &Error{Issues: issues}
	}
	return nil
}
