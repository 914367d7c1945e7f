package circuit

import (
	"github.com/google/uuid"
)

// Wire identifies an independent data lane through a circuit.
// Wires are opaque labels: they are compared for equality and used as map
// keys, but carry no ordering of their own. A qubit index like "0" is a
// typical value, though any non-empty string works.
type Wire string

// Op is a single circuit operation acting on an ordered, non-empty set of
// wires. Identity matters: two ops describing the same logical action are
// still distinct, which is why every Op carries a unique ID. Construct ops
// with [NewOp] or [NewCut] so the ID is always populated.
type Op struct {
	ID     string    // Unique identity, assigned at construction
	Gate   string    // Gate name (e.g. "RX", "CNOT"); display only
	Wires  []Wire    // Ordered wires the op acts on
	Params []float64 // Opaque numeric parameters; display only
	Cut    bool      // True for wire-cut markers
}

// NewOp creates an operation with a fresh unique identity.
func NewOp(gate string, wires []Wire, params ...float64) Op {
	return Op{
		ID:     uuid.NewString(),
		Gate:   gate,
		Wires:  wires,
		Params: params,
	}
}

// NewCut creates a wire-cut marker spanning the given wires.
// A marker spanning k wires designates k independent split points.
func NewCut(wires ...Wire) Op {
	return Op{
		ID:    uuid.NewString(),
		Gate:  "WireCut",
		Wires: wires,
		Cut:   true,
	}
}

// MeasurementType distinguishes the terminal readout kinds.
type MeasurementType string

// Supported measurement types.
const (
	Expval MeasurementType = "expval"
	Var    MeasurementType = "var"
	Sample MeasurementType = "sample"
	Probs  MeasurementType = "probs"
	State  MeasurementType = "state"
)

// ValidMeasurementTypes is the set of accepted measurement type strings.
var ValidMeasurementTypes = map[MeasurementType]bool{
	Expval: true,
	Var:    true,
	Sample: true,
	Probs:  true,
	State:  true,
}

// Observable is a single-wire observable term (e.g. PauliZ on wire "0").
type Observable struct {
	Name string // Observable name (e.g. "PauliZ")
	Wire Wire
}

// Measurement is a terminal readout. Its observable is a list of
// single-wire terms:
//
//   - zero terms: a whole-system measurement (probs/state) touching no
//     declared wires
//   - one term: a plain single-wire observable
//   - multiple terms: a tensor product of independent single-wire terms
type Measurement struct {
	ID   string // Unique identity, assigned at construction
	Type MeasurementType
	Obs  []Observable
}

// NewMeasurement creates a measurement with a fresh unique identity.
func NewMeasurement(t MeasurementType, obs ...Observable) Measurement {
	return Measurement{
		ID:   uuid.NewString(),
		Type: t,
		Obs:  obs,
	}
}

// IsTensor reports whether the measurement's observable decomposes into
// multiple independent single-wire terms.
func (m Measurement) IsTensor() bool { return len(m.Obs) > 1 }

// Wires returns the wires touched by the measurement, in term order.
// Whole-system measurements return nil.
func (m Measurement) Wires() []Wire {
	if len(m.Obs) == 0 {
		return nil
	}
	wires := make([]Wire, len(m.Obs))
	for i, o := range m.Obs {
		wires[i] = o.Wire
	}
	return wires
}

// Circuit is a sequential circuit description: ordered operations followed
// by ordered terminal measurements.
type Circuit struct {
	Name         string
	Operations   []Op
	Measurements []Measurement
}

// Wires returns every wire referenced by the circuit, in first-appearance
// order across operations then measurements.
func (c *Circuit) Wires() []Wire {
	seen := make(map[Wire]bool)
	var wires []Wire
	add := func(ws []Wire) {
		for _, w := range ws {
			if !seen[w] {
				seen[w] = true
				wires = append(wires, w)
			}
		}
	}
	for _, op := range c.Operations {
		add(op.Wires)
	}
	for _, m := range c.Measurements {
		add(m.Wires())
	}
	return wires
}

// CutCount returns the number of wire-cut markers in the circuit.
func (c *Circuit) CutCount() int {
	n := 0
	for _, op := range c.Operations {
		if op.Cut {
			n++
		}
	}
	return n
}
