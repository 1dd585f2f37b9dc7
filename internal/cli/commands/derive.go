package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/svclint/internal/cli/output"
	"github.com/leapstack-labs/svclint/pkg/naming"
	"github.com/spf13/cobra"
)

// DeriveOptions holds options for the derive command.
type DeriveOptions struct {
	Format string
}

// NewDeriveCommand creates the derive command.
func NewDeriveCommand() *cobra.Command {
	opts := &DeriveOptions{}
	cmd := &cobra.Command{
		Use:   "derive <type>...",
		Short: "Show the identifier derived from a type name",
		Long: `Derive the expected service identifier for one or more fully qualified
type names and show every intermediate step: normalized segments, prefix,
category, path and name.`,
		Example: `  svclint derive 'Contao\CoreBundle\EventListener\BackendMenuListener'
  svclint derive --format json 'Contao\NewsBundle\EventListener\GeneratePageListener'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", formatFlagUsage())

	return cmd
}

func runDerive(cmd *cobra.Command, args []string, opts *DeriveOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	results := make([]naming.Derivation, 0, len(args))
	for _, arg := range args {
		t, err := naming.ParseTypeName(arg)
		if err != nil {
			return fmt.Errorf("invalid type name %q: %w", arg, err)
		}
		results = append(results, naming.Explain(t, cmdCtx.Rules))
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]output.DeriveOutput, 0, len(results))
		for _, d := range results {
			out = append(out, output.DeriveOutput{
				Type:       d.Type,
				Applicable: d.Applicable,
				Reason:     d.Reason,
				Identifier: d.Identifier,
				Prefix:     d.Prefix,
				Category:   d.Category,
				Path:       d.Path,
				Name:       d.Name,
			})
		}
		return r.JSON(out)
	}

	for i, d := range results {
		if i > 0 {
			r.Println("")
		}
		renderDerivation(r, d)
	}
	return nil
}

func renderDerivation(r *output.Renderer, d naming.Derivation) {
	r.Println(r.FormatHeader(d.Type))
	r.Println(r.FormatKeyValue("segments", strings.Join(d.Segments, " ")))
	if !d.Applicable {
		r.Println(r.FormatKeyValue("identifier", r.Styles().Muted.Render("not applicable ("+d.Reason+")")))
		return
	}
	r.Println(r.FormatKeyValue("prefix", d.Prefix))
	if d.Category != "" {
		r.Println(r.FormatKeyValue("category", d.Category))
	}
	if len(d.Path) > 0 {
		r.Println(r.FormatKeyValue("path", strings.Join(d.Path, ".")))
	}
	if d.Name != "" {
		r.Println(r.FormatKeyValue("name", d.Name))
	}
	r.Println(r.FormatKeyValue("identifier", r.FormatCode(d.Identifier)))
}
