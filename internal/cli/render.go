package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"evalmodels/internal/prompt"
	"evalmodels/pkg/types"
)

func newRenderCmd(a *app) *cobra.Command {
	var history []string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "render <abbr> [question]",
		Short: "Lay a dialogue out with an entry's meta template",
		Example: `  evalmodels render internlm-chat-7b-hf "What is 2+2?"
  evalmodels render internlm-chat-7b-hf -m "HUMAN:hi" -m "BOT:hello" "and now?"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := parseMessages(history)
			if err != nil {
				return err
			}
			if len(args) == 2 {
				msgs = append(msgs, types.Message{Role: types.RoleHuman, Content: args[1]})
			}
			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			e, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			p, err := prompt.Render(e.MetaTemplate, msgs)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(types.RenderResponse{Prompt: p.Text, Stop: p.StopWords})
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), p.Text)
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&history, "message", "m", nil, "Prior turn as ROLE:content (repeatable, in order)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print prompt and stop words as JSON")
	return cmd
}

// parseMessages turns ROLE:content flags into messages. Roles are case-insensitive.
func parseMessages(raw []string) ([]types.Message, error) {
	var out []types.Message
	for _, r := range raw {
		role, content, ok := strings.Cut(r, ":")
		if !ok {
			return nil, fmt.Errorf("message %q: want ROLE:content", r)
		}
		out = append(out, types.Message{Role: types.Role(strings.ToUpper(strings.TrimSpace(role))), Content: content})
	}
	return out, nil
}
