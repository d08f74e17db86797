/*
Package observability provides Prometheus metrics for Turing machine runs.

Metrics are fed from the engine's lifecycle hooks, so any machine built with
machine.WithLifecycleHooks(metrics.Hooks(name)) is counted without the engine
knowing about Prometheus.
*/
package observability
