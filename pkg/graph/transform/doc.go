// Package transform provides in-place rewrites of circuit graphs.
//
// The central rewrite is cut replacement: [ReplaceCut] splits a wire-cut
// marker into sink/source boundary pairs, one pair per wire the marker
// touches, and [ReplaceAllCuts] applies it to every marker in a graph.
// After rewriting, the graph is ready for traversal-based fragmentation,
// topological replay, or visualization.
//
// Rewrites mutate the graph destructively and are not transactional: a
// failed precondition leaves the graph in whatever state it had reached.
// Callers own the graph exclusively for the duration of a rewrite.
package transform
