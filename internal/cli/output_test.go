package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"from manifest", "", "bell.toml", "bell"},
		{"from nested manifest", "", "circuits/bell.toml", "bell"},
		{"explicit output", "out.json", "bell.toml", "out"},
		{"explicit output without ext", "out", "bell.toml", "out"},
		{"explicit output with dir", "artifacts/out.svg", "bell.toml", "artifacts/out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "bell")

	artifacts := map[string][]byte{
		"json": []byte(`{"nodes":[]}`),
		"dot":  []byte("digraph circuit {}\n"),
	}

	if err := writeArtifacts(artifacts, []string{"json", "dot"}, base); err != nil {
		t.Fatalf("writeArtifacts() error = %v", err)
	}

	for _, ext := range []string{"json", "dot"} {
		data, err := os.ReadFile(base + "." + ext)
		if err != nil {
			t.Errorf("artifact %s not written: %v", ext, err)
			continue
		}
		if !bytes.Equal(data, artifacts[ext]) {
			t.Errorf("artifact %s content mismatch", ext)
		}
	}
}

func TestWriteArtifacts_SkipsMissingFormats(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "bell")

	if err := writeArtifacts(map[string][]byte{}, []string{"svg"}, base); err != nil {
		t.Fatalf("writeArtifacts() error = %v", err)
	}
	if _, err := os.Stat(base + ".svg"); !os.IsNotExist(err) {
		t.Error("writeArtifacts wrote a file for an absent format")
	}
}
