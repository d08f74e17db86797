/*
Package catalog provides ready-made machines over a binary alphabet.

It is the reusable form of the "example wiring" that callers of the engine
would otherwise repeat: a concrete symbol type (Bit), string states, a
registry of named programs and helpers to convert between tape text and cells.
The CLI, HTTP and MCP adapters all serve machines from a Registry.

Tape text uses '0' and '1' for symbols and '_' or ' ' for blank cells.
*/
package catalog
