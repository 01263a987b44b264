package types

// ModelsResponse wraps the list of entries returned by GET /models.
type ModelsResponse struct {
	// Registered entries in registration order.
	Models []ModelEntry `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// Message is one dialogue turn to be laid out by a meta template.
type Message struct {
	// example: HUMAN
	Role Role `json:"role" example:"HUMAN"`
	// example: Write a haiku about the ocean.
	Content string `json:"content" example:"Write a haiku about the ocean."`
}

// RenderRequest is the body of POST /models/{abbr}/render.
type RenderRequest struct {
	Messages []Message `json:"messages"`
}

// RenderResponse carries a rendered prompt.
type RenderResponse struct {
	// example: <|User|>:hi<eoh>\n<|Bot|>:
	Prompt string `json:"prompt" example:"<|User|>:hi<eoh>\n<|Bot|>:"`
	// Stop words derived from the generate turn.
	// example: ["<eoa>"]
	Stop []string `json:"stop,omitempty" example:"[\"<eoa>\"]"`
}

// ValidateResponse is returned by POST /validate.
type ValidateResponse struct {
	Valid    bool     `json:"valid" example:"true"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// LaunchPlan is the resource request an external harness schedules for one entry.
type LaunchPlan struct {
	// example: internlm-chat-7b-hf
	Abbr string `json:"abbr" example:"internlm-chat-7b-hf"`
	// example: HuggingFaceCausalLM
	Kind string `json:"kind" example:"HuggingFaceCausalLM"`
	// example: 1
	NumGPUs int `json:"num_gpus" example:"1"`
	// example: 1
	NumProcs int `json:"num_procs" example:"1"`
	// example: auto
	DeviceMap string `json:"device_map" example:"auto"`
	// GPU slots per process, formatted for CUDA_VISIBLE_DEVICES.
	// example: ["0"]
	VisibleDevices []string `json:"visible_devices,omitempty" example:"[\"0\"]"`
	// example: 8
	BatchSize int `json:"batch_size" example:"8"`
	// Prompt budget left after reserving max_out_len.
	// example: 1948
	MaxInputLen int `json:"max_input_len" example:"1948"`
}
