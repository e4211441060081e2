// Package logging provides the structured logging facade of the calculator.
// Components depend on the Logger interface; the zerolog adapter is the
// default backend and the standard log adapter serves simple embeddings.
package logging
