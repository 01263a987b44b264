package e2e

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"evalmodels/internal/catalog"
	"evalmodels/internal/httpapi"
	"evalmodels/internal/registry"
	"evalmodels/pkg/types"
)

// createTempModelsDir writes each entry into its own YAML file and returns the directory.
func createTempModelsDir(t *testing.T, entries ...types.ModelEntry) string {
	t.Helper()
	dir := t.TempDir()
	for _, e := range entries {
		p := filepath.Join(dir, e.Abbr+".yaml")
		if err := registry.WriteFile(p, []types.ModelEntry{e}); err != nil {
			t.Fatalf("write temp model %s: %v", p, err)
		}
	}
	return dir
}

// newServerForDir serves the built-ins plus every entry found in modelsDir.
func newServerForDir(t *testing.T, modelsDir string) (*httptest.Server, *registry.Registry) {
	t.Helper()
	reg, err := catalog.Registry()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if modelsDir != "" {
		extra, err := registry.LoadDir(modelsDir, registry.Options{Strict: true})
		if err != nil {
			t.Fatalf("load models: %v", err)
		}
		for _, e := range extra {
			if err := reg.Add(e); err != nil {
				t.Fatalf("add %s: %v", e.Abbr, err)
			}
		}
	}
	srv := httptest.NewServer(httpapi.NewMux(reg))
	t.Cleanup(srv.Close)
	return srv, reg
}

func variant(abbr string, maxSeq int) types.ModelEntry {
	e := catalog.Models()[0]
	e.Abbr = abbr
	e.Path = "internlm/" + abbr
	e.TokenizerPath = e.Path
	e.MaxSeqLen = maxSeq
	return e
}
