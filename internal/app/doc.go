// Package app wires the acyclicity checker into a runnable application. It
// owns the configuration, the logger, and the lifecycle of the HTTP server,
// and exposes the one-shot operations used by the CLI (checking a graph file
// locally or submitting it to a running server), decoupled from any specific
// entrypoint.
package app
