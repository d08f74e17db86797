/*
Package turing is a deterministic single-tape Turing machine engine.

A machine combines an immutable transition table, a tape that grows by one
blank cell whenever the head steps past either end, and a current state. Each
step reads the cell under the head, looks up the first matching rule, writes,
moves and either installs the next state or halts.

# Usage

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
	fmt.Println(m.Render()) // 1000

Machine.Run has no step limit. Use turing.Run or pkg/runner to bound a run by
a context and a step budget, and Runner to trace or single-step a run.

# Packages

  - pkg/domain: cells, rules, directions, errors and lifecycle events.
  - pkg/table, pkg/tape, pkg/machine: the engine.
  - pkg/runner: bounded execution.
  - pkg/catalog: ready-made binary machines.
  - pkg/session, pkg/adapters: persisted runs over memory, files or Redis,
    served over HTTP and MCP.
*/
package turing
