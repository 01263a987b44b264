package types

// ModelEntry parameterizes one model endpoint for an evaluation driver.
type ModelEntry struct {
	// Loader capability that instantiates the model.
	// example: HuggingFaceCausalLM
	Type string `json:"type" yaml:"type" toml:"type" example:"HuggingFaceCausalLM"`
	// Short identifier used for reporting.
	// example: internlm-chat-7b-hf
	Abbr string `json:"abbr" yaml:"abbr" toml:"abbr" example:"internlm-chat-7b-hf"`
	// Model weights locator (filesystem path or hub repository).
	// example: internlm-chat-7b
	Path string `json:"path" yaml:"path" toml:"path" example:"internlm-chat-7b"`
	// Tokenizer assets locator.
	// example: internlm-chat-7b
	TokenizerPath   string          `json:"tokenizer_path" yaml:"tokenizer_path" toml:"tokenizer_path" example:"internlm-chat-7b"`
	TokenizerKwargs TokenizerKwargs `json:"tokenizer_kwargs" yaml:"tokenizer_kwargs" toml:"tokenizer_kwargs"`
	// Maximum number of generated tokens.
	// example: 100
	MaxOutLen int `json:"max_out_len" yaml:"max_out_len" toml:"max_out_len" example:"100"`
	// Maximum context length.
	// example: 2048
	MaxSeqLen int `json:"max_seq_len" yaml:"max_seq_len" toml:"max_seq_len" example:"2048"`
	// Inference batch size.
	// example: 8
	BatchSize    int          `json:"batch_size" yaml:"batch_size" toml:"batch_size" example:"8"`
	MetaTemplate MetaTemplate `json:"meta_template" yaml:"meta_template" toml:"meta_template"`
	ModelKwargs  ModelKwargs  `json:"model_kwargs" yaml:"model_kwargs" toml:"model_kwargs"`
	RunCfg       RunConfig    `json:"run_cfg" yaml:"run_cfg" toml:"run_cfg"`
}

// TokenizerKwargs are the recognized tokenizer options.
type TokenizerKwargs struct {
	PaddingSide    Side `json:"padding_side" yaml:"padding_side" toml:"padding_side" example:"left"`
	TruncationSide Side `json:"truncation_side" yaml:"truncation_side" toml:"truncation_side" example:"left"`
	// Selects the fast (Rust) tokenizer implementation.
	UseFast bool `json:"use_fast" yaml:"use_fast" toml:"use_fast" example:"false"`
}

// MetaTemplate describes how a dialogue is laid out in the model's prompt.
type MetaTemplate struct {
	Round []Turn `json:"round" yaml:"round" toml:"round"`
}

// Turn is one role slot of a meta template round.
type Turn struct {
	Role  Role   `json:"role" yaml:"role" toml:"role" example:"BOT"`
	Begin string `json:"begin" yaml:"begin" toml:"begin" example:"<|Bot|>:"`
	End   string `json:"end" yaml:"end" toml:"end" example:"<eoa>\n"`
	// Marks the turn whose output is sampled.
	Generate bool `json:"generate,omitempty" yaml:"generate,omitempty" toml:"generate,omitempty"`
}

// ModelKwargs are passed through to the model constructor.
type ModelKwargs struct {
	TrustRemoteCode bool `json:"trust_remote_code" yaml:"trust_remote_code" toml:"trust_remote_code" example:"true"`
	// Placement strategy, e.g. auto.
	DeviceMap  string `json:"device_map" yaml:"device_map" toml:"device_map" example:"auto"`
	TorchDtype string `json:"torch_dtype,omitempty" yaml:"torch_dtype,omitempty" toml:"torch_dtype,omitempty"`
	Revision   string `json:"revision,omitempty" yaml:"revision,omitempty" toml:"revision,omitempty"`
}

// RunConfig is the resource request for one entry.
type RunConfig struct {
	NumGPUs  int `json:"num_gpus" yaml:"num_gpus" toml:"num_gpus" example:"1"`
	NumProcs int `json:"num_procs" yaml:"num_procs" toml:"num_procs" example:"1"`
}

// ModelsFile is the top-level document: an ordered list of entries.
type ModelsFile struct {
	Models []ModelEntry `json:"models" yaml:"models" toml:"models"`
}

// Clone returns a deep copy of e.
func (e ModelEntry) Clone() ModelEntry {
	out := e
	if e.MetaTemplate.Round != nil {
		out.MetaTemplate.Round = append([]Turn(nil), e.MetaTemplate.Round...)
	}
	return out
}

// GenerateTurn returns the turn marked for sampling, if any.
func (t MetaTemplate) GenerateTurn() (Turn, bool) {
	for _, turn := range t.Round {
		if turn.Generate {
			return turn, true
		}
	}
	return Turn{}, false
}

// TurnFor returns the first turn with the given role.
func (t MetaTemplate) TurnFor(role Role) (Turn, bool) {
	for _, turn := range t.Round {
		if turn.Role == role {
			return turn, true
		}
	}
	return Turn{}, false
}
