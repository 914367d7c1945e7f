// Package graph provides the circuit dependency multigraph.
//
// A [Graph] captures the true data flow of a sequential circuit: nodes are
// operations and measurements tagged with their execution order, and every
// edge is labeled with the wire that carries the dependency. Parallel edges
// between the same node pair are legal and preserved: a two-wire gate
// following another two-wire gate on the same wires produces two edges.
//
// Graphs are built once from a [circuit.Circuit] via [FromCircuit] and then
// mutated in place by rewrite passes (see the transform subpackage).
// Mutation is destructive; there is no versioning or rollback.
//
// For every wire, the nodes touching it form a single chain consistent with
// node order: no node has two predecessors or two successors on the same
// wire. [Graph.Validate] checks this invariant together with order
// monotonicity along edges.
//
// Graph is not safe for concurrent use without external synchronization.
package graph
