// Package log provides leveled structured logging on top of [log/slog],
// extended with a Trace level below Debug for very fine-grained output
// such as parser rule tracing.
//
// A [Logger] is configured once with functional options and is safe for
// concurrent use. The zero value discards all messages, which lets library
// code accept an optional Logger without nil checks. Package-level
// functions log through a process-wide default logger configured with
// [Config].
package log
