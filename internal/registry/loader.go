package registry

import (
	"fmt"
	"os"

	"evalmodels/internal/common/fsutil"
	"evalmodels/internal/validate"
	"evalmodels/pkg/types"
)

// Options control how entry files are read.
type Options struct {
	// Strict rejects unknown keys and runs schema validation on every entry.
	Strict bool
}

// LoadFile reads one models document. The format follows the file extension.
func LoadFile(path string, opts Options) ([]types.ModelEntry, error) {
	if path == "" {
		return nil, fmt.Errorf("empty models path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	format, err := FormatFromPath(p)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	f, err := Decode(format, b, opts.Strict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if opts.Strict {
		if err := validate.Models(f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return f.Models, nil
}

// LoadDir reads every supported file in dir (non-recursive) in name order
// and concatenates their entries.
func LoadDir(dir string, opts Options) ([]types.ModelEntry, error) {
	files, err := fsutil.ListFiles(dir, Extensions...)
	if err != nil {
		return nil, err
	}
	var models []types.ModelEntry
	for _, p := range files {
		ms, err := LoadFile(p, opts)
		if err != nil {
			return nil, err
		}
		models = append(models, ms...)
	}
	return models, nil
}

// WriteFile encodes entries in the format implied by path.
func WriteFile(path string, entries []types.ModelEntry) error {
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return err
	}
	format, err := FormatFromPath(p)
	if err != nil {
		return err
	}
	b, err := Encode(format, types.ModelsFile{Models: entries})
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o644)
}
