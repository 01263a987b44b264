// Package llm describes the loader kinds a model entry's `type` may name and
// derives the resource hand-off for the external harness that runs them.
// Nothing here loads or executes a model.
package llm

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"evalmodels/pkg/types"
)

// Kind describes one loader capability.
type Kind struct {
	Name        string
	Description string
	// ChatTemplate is true when the loader lays prompts out with a meta template.
	ChatTemplate bool
}

var (
	kindsMu sync.RWMutex
	kinds   = map[string]Kind{}
)

// RegisterKind adds a loader kind. Registering the same name twice panics.
func RegisterKind(k Kind) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	if k.Name == "" {
		panic("llm: kind without name")
	}
	if _, dup := kinds[k.Name]; dup {
		panic("llm: duplicate kind " + k.Name)
	}
	kinds[k.Name] = k
}

// Lookup returns the loader kind registered under name.
func Lookup(name string) (Kind, bool) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	k, ok := kinds[name]
	return k, ok
}

// Kinds returns all registered kinds sorted by name.
func Kinds() []Kind {
	kindsMu.RLock()
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k)
	}
	kindsMu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func init() {
	RegisterKind(Kind{Name: "HuggingFace", Description: "Hugging Face base model"})
	RegisterKind(Kind{Name: "HuggingFaceCausalLM", Description: "Hugging Face causal language model", ChatTemplate: true})
	RegisterKind(Kind{Name: "HuggingFaceChatGLM3", Description: "ChatGLM3 with its own chat layout", ChatTemplate: true})
}

// UnknownKindError reports an entry whose type names no registered kind.
type UnknownKindError struct{ Name string }

func (e *UnknownKindError) Error() string { return fmt.Sprintf("unknown loader kind: %q", e.Name) }

// StatusCode maps the error to 422 for HTTP callers.
func (e *UnknownKindError) StatusCode() int { return http.StatusUnprocessableEntity }

// Plan derives the launch request for e. Devices are numbered from zero per
// process: process p gets slots [p*gpus, (p+1)*gpus).
func Plan(e types.ModelEntry) (types.LaunchPlan, error) {
	k, ok := Lookup(e.Type)
	if !ok {
		return types.LaunchPlan{}, &UnknownKindError{Name: e.Type}
	}
	p := types.LaunchPlan{
		Abbr:      e.Abbr,
		Kind:      k.Name,
		NumGPUs:   e.RunCfg.NumGPUs,
		NumProcs:  e.RunCfg.NumProcs,
		DeviceMap: e.ModelKwargs.DeviceMap,
		BatchSize: e.BatchSize,
	}
	if p.NumProcs <= 0 {
		p.NumProcs = 1
	}
	if p.DeviceMap == "" {
		p.DeviceMap = "auto"
	}
	if p.NumGPUs > 0 {
		for proc := 0; proc < p.NumProcs; proc++ {
			slot := ""
			for g := 0; g < p.NumGPUs; g++ {
				if g > 0 {
					slot += ","
				}
				slot += strconv.Itoa(proc*p.NumGPUs + g)
			}
			p.VisibleDevices = append(p.VisibleDevices, slot)
		}
	}
	if in := e.MaxSeqLen - e.MaxOutLen; in > 0 {
		p.MaxInputLen = in
	}
	return p, nil
}
