// Package cli constructs the srcaudit command-line interface, wiring the Cobra command hierarchy,
// the configuration loader, and structured logging.
package cli
