package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"evalmodels/internal/llm"
	"evalmodels/internal/registry"
	"evalmodels/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered model entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), reg.List())
		},
	}
}

func printTable(w io.Writer, entries []types.ModelEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	bold := color.New(color.Bold)
	bold.Fprintln(tw, "ABBR\tTYPE\tPATH\tMAX_OUT\tMAX_SEQ\tBATCH\tGPUS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			e.Abbr, e.Type, e.Path, e.MaxOutLen, e.MaxSeqLen, e.BatchSize, e.RunCfg.NumGPUs)
	}
	return tw.Flush()
}

func newShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "show <abbr>",
		Short:   "Print one model entry as a models document",
		Example: "  evalmodels show internlm-chat-7b-hf --format toml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := registry.ParseFormat(format)
			if err != nil {
				return err
			}
			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			e, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			b, err := registry.Encode(f, types.ModelsFile{Models: []types.ModelEntry{e}})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml|json|toml")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every registered entry as one models document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			if out != "" {
				if err := registry.WriteFile(out, reg.List()); err != nil {
					return err
				}
				a.log.Info().Str("path", out).Int("models", reg.Len()).Msg("exported")
				return nil
			}
			f, err := registry.ParseFormat(format)
			if err != nil {
				return err
			}
			b, err := registry.Encode(f, reg.File())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format when writing to stdout: yaml|json|toml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file; the format follows its extension")
	return cmd
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List loader kinds a model entry may reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, k := range llm.Kinds() {
				tmpl := "no"
				if k.ChatTemplate {
					tmpl = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\tmeta_template=%s\n", k.Name, k.Description, tmpl)
			}
			return tw.Flush()
		},
	}
}

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <abbr>",
		Short: "Print the resource request an entry hands to the harness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			e, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			p, err := llm.Plan(e)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}
}
