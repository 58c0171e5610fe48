// Package pipeline defines the graph payload accepted by every transport
// (HTTP, Socket.IO, CLI files), validates its shape, and assembles the
// acyclicity report returned to callers.
package pipeline
