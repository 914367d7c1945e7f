package circuit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mlindgren/wirecut/pkg/errors"
)

const bellManifest = `
name = "bell-cut"

[[operations]]
gate = "H"
wires = ["0"]

[[operations]]
cut = true
wires = ["0"]

[[operations]]
gate = "CNOT"
wires = ["0", "1"]
params = [0.5]

[[measurements]]
type = "expval"

[[measurements.observable]]
name = "PauliZ"
wire = "0"
`

func TestParseManifest(t *testing.T) {
	c, err := ParseManifest([]byte(bellManifest))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}

	if c.Name != "bell-cut" {
		t.Errorf("Name = %q, want \"bell-cut\"", c.Name)
	}
	if len(c.Operations) != 3 {
		t.Fatalf("len(Operations) = %d, want 3", len(c.Operations))
	}
	if !c.Operations[1].Cut {
		t.Error("operation 1 not marked as cut")
	}
	if c.Operations[2].Gate != "CNOT" || len(c.Operations[2].Params) != 1 {
		t.Errorf("operation 2 = %+v, want CNOT with one param", c.Operations[2])
	}
	if len(c.Measurements) != 1 {
		t.Fatalf("len(Measurements) = %d, want 1", len(c.Measurements))
	}
	m := c.Measurements[0]
	if m.Type != Expval || len(m.Obs) != 1 || m.Obs[0].Wire != "0" {
		t.Errorf("measurement = %+v, want expval PauliZ on wire 0", m)
	}
	if c.CutCount() != 1 {
		t.Errorf("CutCount() = %d, want 1", c.CutCount())
	}
}

func TestParseManifest_FreshIdentities(t *testing.T) {
	a, err := ParseManifest([]byte(bellManifest))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	b, err := ParseManifest([]byte(bellManifest))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}

	if a.Operations[0].ID == b.Operations[0].ID {
		t.Error("two parses share an op ID, want fresh identities")
	}
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{
			"not toml",
			`{{{`,
		},
		{
			"missing wires",
			"[[operations]]\ngate = \"H\"\n",
		},
		{
			"empty wire label",
			"[[operations]]\ngate = \"H\"\nwires = [\"\"]\n",
		},
		{
			"duplicate wires",
			"[[operations]]\ngate = \"CNOT\"\nwires = [\"0\", \"0\"]\n",
		},
		{
			"gate required",
			"[[operations]]\nwires = [\"0\"]\n",
		},
		{
			"unknown measurement type",
			"[[measurements]]\ntype = \"parity\"\n",
		},
		{
			"observable missing wire",
			"[[measurements]]\ntype = \"expval\"\n[[measurements.observable]]\nname = \"PauliZ\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.manifest))
			if err == nil {
				t.Fatal("ParseManifest() error = nil, want error")
			}
			if errors.GetCode(err) != errors.ErrCodeInvalidManifest {
				t.Errorf("error code = %v, want ErrCodeInvalidManifest", errors.GetCode(err))
			}
		})
	}
}

func TestReadManifestFile_NameDefaultsFromFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ghz.toml")
	manifest := "[[operations]]\ngate = \"H\"\nwires = [\"0\"]\n"
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := ReadManifestFile(path)
	if err != nil {
		t.Fatalf("ReadManifestFile() error = %v", err)
	}
	if c.Name != "ghz" {
		t.Errorf("Name = %q, want \"ghz\"", c.Name)
	}
}

func TestReadManifestFile_Missing(t *testing.T) {
	_, err := ReadManifestFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("ReadManifestFile() error = nil, want error")
	}
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want ErrCodeFileNotFound", errors.GetCode(err))
	}
}
