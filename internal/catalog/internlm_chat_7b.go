package catalog

import "evalmodels/pkg/types"

// internlmChatTemplate lays out InternLM chat dialogues.
var internlmChatTemplate = types.MetaTemplate{
	Round: []types.Turn{
		{Role: types.RoleHuman, Begin: "<|User|>:", End: "<eoh>\n"},
		{Role: types.RoleBot, Begin: "<|Bot|>:", End: "<eoa>\n", Generate: true},
	},
}

// internlmChat7B is the Hugging Face build of InternLM chat 7B.
var internlmChat7B = types.ModelEntry{
	Type:          "HuggingFaceCausalLM",
	Abbr:          "internlm-chat-7b-hf",
	Path:          "internlm-chat-7b",
	TokenizerPath: "internlm-chat-7b",
	TokenizerKwargs: types.TokenizerKwargs{
		PaddingSide:    types.SideLeft,
		TruncationSide: types.SideLeft,
		UseFast:        false,
	},
	MaxOutLen:    100,
	MaxSeqLen:    2048,
	BatchSize:    8,
	MetaTemplate: internlmChatTemplate,
	ModelKwargs:  types.ModelKwargs{TrustRemoteCode: true, DeviceMap: "auto"},
	RunCfg:       types.RunConfig{NumGPUs: 1, NumProcs: 1},
}

func init() {
	register(internlmChat7B)
}
