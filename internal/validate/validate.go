// Package validate checks model entries on the consumer side: the records
// themselves carry no validation, so loaders run these checks before handing
// entries to a harness.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"evalmodels/internal/llm"
	"evalmodels/pkg/types"
)

// Warning is a soft consistency finding. Warnings never fail validation.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string { return w.Field + ": " + w.Message }

// Entry reports every schema violation in e as a single *multierror.Error,
// or nil when e is well formed.
func Entry(e types.ModelEntry) error {
	var result *multierror.Error
	fail := func(field, format string, a ...any) {
		result = multierror.Append(result, fmt.Errorf("%s: "+format, append([]any{field}, a...)...))
	}

	required := []struct {
		field, value string
	}{
		{"type", e.Type},
		{"abbr", e.Abbr},
		{"path", e.Path},
		{"tokenizer_path", e.TokenizerPath},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			fail(r.field, "is required")
		}
	}
	if e.Type != "" {
		if _, ok := llm.Lookup(e.Type); !ok {
			fail("type", "unknown loader kind %q", e.Type)
		}
	}

	if !e.TokenizerKwargs.PaddingSide.Valid() {
		fail("tokenizer_kwargs.padding_side", "must be left or right, got %q", e.TokenizerKwargs.PaddingSide)
	}
	if !e.TokenizerKwargs.TruncationSide.Valid() {
		fail("tokenizer_kwargs.truncation_side", "must be left or right, got %q", e.TokenizerKwargs.TruncationSide)
	}

	positive := []struct {
		field string
		value int
	}{
		{"max_out_len", e.MaxOutLen},
		{"max_seq_len", e.MaxSeqLen},
		{"batch_size", e.BatchSize},
		{"run_cfg.num_procs", e.RunCfg.NumProcs},
	}
	for _, p := range positive {
		if p.value <= 0 {
			fail(p.field, "must be > 0, got %d", p.value)
		}
	}
	// zero GPUs is a CPU run
	if e.RunCfg.NumGPUs < 0 {
		fail("run_cfg.num_gpus", "must be >= 0, got %d", e.RunCfg.NumGPUs)
	}

	if err := MetaTemplate(e.MetaTemplate); err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, inner := range merr.Errors {
				result = multierror.Append(result, fmt.Errorf("meta_template.%w", inner))
			}
		} else {
			result = multierror.Append(result, fmt.Errorf("meta_template.%w", err))
		}
	}
	return result.ErrorOrNil()
}

// MetaTemplate checks roles and the generate marker of a template.
func MetaTemplate(t types.MetaTemplate) error {
	var result *multierror.Error
	if len(t.Round) == 0 {
		return multierror.Append(result, fmt.Errorf("round: at least one turn is required"))
	}
	generate := 0
	for i, turn := range t.Round {
		field := fmt.Sprintf("round[%d]", i)
		switch turn.Role {
		case types.RoleHuman, types.RoleBot:
		default:
			result = multierror.Append(result, fmt.Errorf("%s.role: must be HUMAN or BOT, got %q", field, turn.Role))
		}
		if turn.Generate {
			generate++
			if turn.Role != types.RoleBot {
				result = multierror.Append(result, fmt.Errorf("%s.generate: only a BOT turn may generate", field))
			}
		}
	}
	if generate > 1 {
		result = multierror.Append(result, fmt.Errorf("round: %d turns marked generate, at most one allowed", generate))
	}
	return result.ErrorOrNil()
}

// Consistency returns soft findings for e.
func Consistency(e types.ModelEntry) []Warning {
	var out []Warning
	if e.MaxOutLen > 0 && e.MaxSeqLen > 0 && e.MaxOutLen >= e.MaxSeqLen {
		out = append(out, Warning{"max_out_len", fmt.Sprintf("%d leaves no room for input within max_seq_len %d", e.MaxOutLen, e.MaxSeqLen)})
	}
	if e.TokenizerKwargs.PaddingSide == types.SideRight && !e.TokenizerKwargs.UseFast {
		out = append(out, Warning{"tokenizer_kwargs.padding_side", "right padding with the slow tokenizer breaks batched generation for causal models"})
	}
	if _, ok := e.MetaTemplate.GenerateTurn(); !ok && len(e.MetaTemplate.Round) > 0 {
		out = append(out, Warning{"meta_template.round", "no turn marked generate"})
	}
	if e.ModelKwargs.TrustRemoteCode {
		out = append(out, Warning{"model_kwargs.trust_remote_code", "remote code from " + e.Path + " will be executed"})
	}
	return out
}

// Models validates every entry of f and the uniqueness of their abbrs.
func Models(f types.ModelsFile) error {
	var result *multierror.Error
	seen := make(map[string]int, len(f.Models))
	for i, e := range f.Models {
		prefix := fmt.Sprintf("models[%d]", i)
		if e.Abbr != "" {
			prefix += " (" + e.Abbr + ")"
			if j, dup := seen[e.Abbr]; dup {
				result = multierror.Append(result, fmt.Errorf("%s: abbr duplicates models[%d]", prefix, j))
			} else {
				seen[e.Abbr] = i
			}
		}
		if err := Entry(e); err != nil {
			for _, inner := range Errors(err) {
				result = multierror.Append(result, fmt.Errorf("%s.%s", prefix, inner))
			}
		}
	}
	return result.ErrorOrNil()
}

// Errors flattens a validation error into its messages.
func Errors(err error) []string {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		out := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
