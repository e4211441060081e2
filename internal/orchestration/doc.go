// Package orchestration evaluates bignum expressions and runs independent
// operations concurrently, collecting their results for comparison. It
// talks to the presentation layer only through the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
