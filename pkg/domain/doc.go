/*
Package domain contains the core domain models of the Turing machine engine.

It defines the vocabulary shared by the table, tape and machine packages: cells,
head movements, transition rules, machine configurations and the rendered run
records that adapters persist. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Cell: A tape cell, either blank or holding a caller-defined symbol.
  - Rule: A (Condition -> Action) pair; a table is an ordered slice of rules.
  - Configuration: The observable snapshot of a machine (state, tape, head).
  - RunRecord: A rendered, serialisable view of a configuration for storage and APIs.
*/
package domain
