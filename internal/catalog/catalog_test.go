package catalog

import (
	"reflect"
	"testing"

	"evalmodels/internal/registry"
	"evalmodels/internal/validate"
	"evalmodels/pkg/types"
)

func TestModels_ExactlyOneEntry(t *testing.T) {
	ms := Models()
	if len(ms) != 1 {
		t.Fatalf("expected exactly one built-in entry, got %d", len(ms))
	}
	if ms[0].Abbr != "internlm-chat-7b-hf" {
		t.Fatalf("abbr=%q", ms[0].Abbr)
	}
}

func TestInternLMChat7B_Fields(t *testing.T) {
	e := Models()[0]
	if e.Type != "HuggingFaceCausalLM" || e.Path != "internlm-chat-7b" || e.TokenizerPath != "internlm-chat-7b" {
		t.Fatalf("locators: %+v", e)
	}
	tk := e.TokenizerKwargs
	if tk.PaddingSide != types.SideLeft || tk.TruncationSide != types.SideLeft || tk.UseFast {
		t.Fatalf("tokenizer kwargs: %+v", tk)
	}
	if e.MaxOutLen != 100 || e.MaxSeqLen != 2048 || e.BatchSize != 8 {
		t.Fatalf("limits: out=%d seq=%d batch=%d", e.MaxOutLen, e.MaxSeqLen, e.BatchSize)
	}
	if e.MaxOutLen > e.MaxSeqLen {
		t.Fatalf("max_out_len %d exceeds max_seq_len %d", e.MaxOutLen, e.MaxSeqLen)
	}
	if !e.ModelKwargs.TrustRemoteCode || e.ModelKwargs.DeviceMap != "auto" {
		t.Fatalf("model kwargs: %+v", e.ModelKwargs)
	}
	if e.RunCfg.NumGPUs != 1 || e.RunCfg.NumProcs != 1 {
		t.Fatalf("run cfg: %+v", e.RunCfg)
	}
}

func TestInternLMChat7B_MetaTemplate(t *testing.T) {
	round := Models()[0].MetaTemplate.Round
	counts := map[types.Role]int{}
	var generators []types.Turn
	for _, turn := range round {
		counts[turn.Role]++
		if turn.Generate {
			generators = append(generators, turn)
		}
	}
	if counts[types.RoleHuman] != 1 || counts[types.RoleBot] != 1 || len(round) != 2 {
		t.Fatalf("roles: %v", counts)
	}
	if len(generators) != 1 || generators[0].Role != types.RoleBot {
		t.Fatalf("generate turns: %+v", generators)
	}
	want := []types.Turn{
		{Role: types.RoleHuman, Begin: "<|User|>:", End: "<eoh>\n"},
		{Role: types.RoleBot, Begin: "<|Bot|>:", End: "<eoa>\n", Generate: true},
	}
	if !reflect.DeepEqual(round, want) {
		t.Fatalf("round=%+v", round)
	}
}

func TestModels_ReturnsCopies(t *testing.T) {
	a := Models()
	a[0].Abbr = "changed"
	a[0].MetaTemplate.Round[0].Begin = "changed"
	b := Models()
	if b[0].Abbr != "internlm-chat-7b-hf" || b[0].MetaTemplate.Round[0].Begin != "<|User|>:" {
		t.Fatalf("built-in entry was mutated: %+v", b[0])
	}
}

func TestModels_PassValidation(t *testing.T) {
	if err := validate.Models(types.ModelsFile{Models: Models()}); err != nil {
		t.Fatalf("built-ins invalid: %v", err)
	}
}

func TestModels_RoundTrip(t *testing.T) {
	orig := types.ModelsFile{Models: Models()}
	for _, f := range []registry.Format{registry.FormatYAML, registry.FormatJSON, registry.FormatTOML} {
		b, err := registry.Encode(f, orig)
		if err != nil {
			t.Fatalf("%s encode: %v", f, err)
		}
		got, err := registry.Decode(f, b, true)
		if err != nil {
			t.Fatalf("%s decode: %v\n%s", f, err, b)
		}
		if !reflect.DeepEqual(got, orig) {
			t.Fatalf("%s round trip mismatch:\n got  %+v\n want %+v", f, got, orig)
		}
	}
}

func TestRegistry(t *testing.T) {
	r, err := Registry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("len=%d", r.Len())
	}
	if _, err := r.Get("internlm-chat-7b-hf"); err != nil {
		t.Fatalf("get: %v", err)
	}
}
