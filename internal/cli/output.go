package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// basePath derives the output base path from an explicit output flag or the
// input manifest path. An explicit output wins; otherwise the manifest name
// with its extension stripped is used (e.g. "bell.toml" becomes "bell").
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeArtifact writes a single rendered artifact to disk.
func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// writeArtifacts writes one file per format. With a single format the file is
// named base.format; with multiple formats each gets its own extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) error {
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		if err := writeArtifact(base+"."+format, data); err != nil {
			return err
		}
	}
	return nil
}
