// Package cmd implements the ph subcommands.
package cmd
