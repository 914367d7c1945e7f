// Package circuit models sequential quantum circuit descriptions.
//
// A [Circuit] is an ordered list of operations followed by an ordered list
// of terminal measurements. Operations act on named wires (independent data
// lanes, typically qubits) and may be flagged as wire-cut markers, which
// designate intentional split points for downstream graph rewriting.
//
// The package deliberately stays agnostic about what an operation computes:
// gate names and parameters are carried as opaque labels. The interesting
// structure is identity, wire membership, and sequence order, which the
// graph package turns into a dependency graph.
//
// Circuits can be constructed programmatically or loaded from TOML
// manifests (see [ReadManifestFile]).
package circuit
