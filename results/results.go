package results

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// FallbackDir is used when the results path has no directory component.
	FallbackDir = "/app/results"
	// ProbeFile is written and removed to check the directory is writable.
	ProbeFile = ".write_test"
)

// Dir returns the directory the results file lives in.
func Dir(resultsPath string) string {
	dir, _ := filepath.Split(resultsPath)
	if dir == "" {
		return FallbackDir
	}
	return filepath.Clean(dir)
}

// EnsureWritable creates dir if needed and checks a file can be written to it.
func EnsureWritable(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ProbeFile)
	if err := afero.WriteFile(fs, probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("write probe file: %w", err)
	}
	if err := fs.Remove(probe); err != nil {
		return fmt.Errorf("remove probe file: %w", err)
	}
	return nil
}
