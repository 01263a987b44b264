package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"evalmodels/internal/registry"
	"evalmodels/internal/validate"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check model entry files for schema errors",
		Long: `Validate decodes each file strictly (unknown keys are errors) and checks
every entry: required fields, positive limits, tokenizer sides, loader kind
and meta-template roles. Consistency findings are printed as warnings.`,
		Example: "  evalmodels validate configs/models/*.yaml",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ok := color.New(color.FgGreen)
			bad := color.New(color.FgRed)
			warn := color.New(color.FgYellow)

			failed := 0
			for _, path := range args {
				entries, err := registry.LoadFile(path, registry.Options{Strict: true})
				if err != nil {
					failed++
					bad.Fprintf(out, "✗ %s\n", path)
					for _, msg := range validate.Errors(err) {
						fmt.Fprintf(out, "    %s\n", msg)
					}
					continue
				}
				ok.Fprintf(out, "✓ %s (%d models)\n", path, len(entries))
				for _, e := range entries {
					for _, w := range validate.Consistency(e) {
						warn.Fprintf(out, "    warning: %s: %s\n", e.Abbr, w)
					}
				}
			}
			a.log.Debug().Int("files", len(args)).Int("failed", failed).Msg("validate done")
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
}
