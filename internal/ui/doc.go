// Package ui holds the terminal color themes shared by the CLI output and
// the REPL, plus the lipgloss styles used for framed REPL text.
package ui
