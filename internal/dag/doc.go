// Package dag holds the acyclicity check for submitted pipeline graphs. It
// turns a flat list of directed edges into an adjacency map and an in-degree
// table (see Build), and then runs Kahn's algorithm over that topology to
// decide whether any cycle exists (see Resolve and IsAcyclic).
//
// Everything in this package is request-local. A Topology is built fresh for
// every evaluation and owned by the caller, so concurrent evaluations never
// share mutable state and need no locking.
package dag
