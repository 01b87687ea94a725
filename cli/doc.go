// Package cli declares the command-line interface for ph and wires parsed
// flags into the logger, profiler, and subcommands.
package cli
