/*
Package session implements run management and persistence orchestration.

A run is one execution of a catalog machine. The Manager starts runs under a
step budget, stores their rendered records, and resumes them step by step
later. Access to a single run is serialised with reference-counted local locks
and, optionally, a distributed lock so several replicas can share one store.
*/
package session
