// Package prompt lays a dialogue out according to a model's meta template.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"evalmodels/pkg/types"
)

var (
	ErrEmptyDialogue = errors.New("empty dialogue")
	ErrUnknownRole   = errors.New("role not in meta template")
)

// Prompt is a rendered model input.
type Prompt struct {
	Text string
	// StopWords end the sampled turn; harnesses treat them as EOS.
	StopWords []string
}

// Render wraps each message in its role's begin/end delimiters. When the
// dialogue ends on a HUMAN message and the template has a generate turn,
// that turn's begin delimiter is appended so the model continues from there.
func Render(tmpl types.MetaTemplate, dialogue []types.Message) (Prompt, error) {
	if len(dialogue) == 0 {
		return Prompt{}, ErrEmptyDialogue
	}
	var b strings.Builder
	for i, msg := range dialogue {
		turn, ok := tmpl.TurnFor(msg.Role)
		if !ok {
			return Prompt{}, fmt.Errorf("message %d: %w: %q", i, ErrUnknownRole, msg.Role)
		}
		b.WriteString(turn.Begin)
		b.WriteString(msg.Content)
		b.WriteString(turn.End)
	}
	var p Prompt
	if gen, ok := tmpl.GenerateTurn(); ok {
		if dialogue[len(dialogue)-1].Role != gen.Role {
			b.WriteString(gen.Begin)
		}
		if stop := strings.TrimSpace(gen.End); stop != "" {
			p.StopWords = []string{stop}
		}
	}
	p.Text = b.String()
	return p, nil
}

// Single renders a one-shot question.
func Single(tmpl types.MetaTemplate, question string) (Prompt, error) {
	return Render(tmpl, []types.Message{{Role: types.RoleHuman, Content: question}})
}
