// Package format holds the pure string formatting helpers shared by the CLI
// and the REPL: durations, byte sizes, digit counts, truncated numbers and
// text progress bars.
package format
