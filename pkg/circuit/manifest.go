package circuit

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mlindgren/wirecut/pkg/errors"
)

// ReadManifestFile reads a TOML circuit manifest and returns the circuit.
//
// Manifest format:
//
//	name = "bell-cut"
//
//	[[operations]]
//	gate = "H"
//	wires = ["0"]
//
//	[[operations]]
//	cut = true
//	wires = ["0"]
//
//	[[operations]]
//	gate = "CNOT"
//	wires = ["0", "1"]
//
//	[[measurements]]
//	type = "expval"
//
//	[[measurements.observable]]
//	name = "PauliZ"
//	wire = "0"
func ReadManifestFile(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read manifest %s", path)
	}
	c, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// ParseManifest parses TOML manifest bytes into a circuit.
// Every operation and measurement receives a fresh unique identity, so
// parsing the same manifest twice yields structurally equal but distinct
// circuits.
func ParseManifest(data []byte) (*Circuit, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse circuit manifest")
	}
	return m.toCircuit()
}

type manifest struct {
	Name         string                `toml:"name"`
	Operations   []manifestOp          `toml:"operations"`
	Measurements []manifestMeasurement `toml:"measurements"`
}

type manifestOp struct {
	Gate   string    `toml:"gate"`
	Wires  []string  `toml:"wires"`
	Params []float64 `toml:"params"`
	Cut    bool      `toml:"cut"`
}

type manifestMeasurement struct {
	Type       string               `toml:"type"`
	Observable []manifestObservable `toml:"observable"`
}

type manifestObservable struct {
	Name string `toml:"name"`
	Wire string `toml:"wire"`
}

func (m *manifest) toCircuit() (*Circuit, error) {
	c := &Circuit{Name: m.Name}

	for i, op := range m.Operations {
		wires, err := toWires(op.Wires)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "operation %d", i)
		}
		if len(wires) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "operation %d: at least one wire required", i)
		}
		if op.Cut {
			c.Operations = append(c.Operations, NewCut(wires...))
			continue
		}
		if op.Gate == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "operation %d: gate name required", i)
		}
		c.Operations = append(c.Operations, NewOp(op.Gate, wires, op.Params...))
	}

	for i, mm := range m.Measurements {
		mt := MeasurementType(mm.Type)
		if !ValidMeasurementTypes[mt] {
			return nil, errors.New(errors.ErrCodeInvalidManifest,
				"measurement %d: unknown type %q (must be one of: expval, var, sample, probs, state)", i, mm.Type)
		}
		obs := make([]Observable, 0, len(mm.Observable))
		for j, o := range mm.Observable {
			if o.Name == "" || o.Wire == "" {
				return nil, errors.New(errors.ErrCodeInvalidManifest,
					"measurement %d: observable %d needs name and wire", i, j)
			}
			obs = append(obs, Observable{Name: o.Name, Wire: Wire(o.Wire)})
		}
		c.Measurements = append(c.Measurements, NewMeasurement(mt, obs...))
	}

	return c, nil
}

// toWires converts manifest wire strings, rejecting empty and duplicate
// labels. Duplicates within one op would break the per-wire chain the graph
// builder maintains.
func toWires(raw []string) ([]Wire, error) {
	wires := make([]Wire, 0, len(raw))
	seen := make(map[Wire]bool, len(raw))
	for _, r := range raw {
		if r == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "empty wire label")
		}
		w := Wire(r)
		if seen[w] {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "duplicate wire %q", r)
		}
		seen[w] = true
		wires = append(wires, w)
	}
	return wires, nil
}
