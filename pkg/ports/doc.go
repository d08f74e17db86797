/*
Package ports defines the driven ports (interfaces) around the Turing engine.

These interfaces decouple run bookkeeping from concrete backends, so the CLI,
HTTP and MCP adapters can persist machine runs in memory, on disk or in Redis.

# Key Interfaces

  - RunStore: Responsible for persisting and loading rendered run records.
  - DistributedLocker: Provides distributed locking for concurrent access to one run.
*/
package ports
