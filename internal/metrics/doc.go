// Package metrics collects runtime memory readings and per-operation
// counters for the --details and --metrics reports.
package metrics
