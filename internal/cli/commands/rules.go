package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/svclint/internal/cli/output"
	"github.com/leapstack-labs/svclint/pkg/naming"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Format string
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the effective naming rules",
		Long: `Show the rule tables used to derive identifiers after defaults,
svclint.yaml, environment variables and flags have been applied.`,
		Example: `  svclint rules
  svclint rules --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", formatFlagUsage())

	return cmd
}

func runRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	rules := cmdCtx.Rules

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rules)
	}

	title := cases.Title(language.English)

	r.Println(r.FormatHeader("Convention"))
	r.Println(r.FormatKeyValue(title.String("vendor"), rules.Vendor))
	r.Println(r.FormatKeyValue(title.String("group suffix"), rules.GroupSuffix))
	r.Println(r.FormatKeyValue(title.String("core group"), rules.CoreGroup))
	r.Println(r.FormatKeyValue(title.String("private marker"), quoteOrNone(rules.PrivateMarker)))
	r.Println("")

	renderMappingTable(r, title.String("aliases"), rules.Aliases)
	renderMappingTable(r, title.String("renames"), rules.Renames)
	renderListTable(r, title.String("strip prefixes"), rules.StripPrefixes)
	renderListTable(r, title.String("exceptions"), rules.Exceptions)
	renderListTable(r, title.String("shared types"), rules.SharedTypes)

	return nil
}

func newTable(r *output.Renderer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	return t
}

func renderTable(r *output.Renderer, t table.Writer) {
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	r.Println("")
}

func renderMappingTable(r *output.Renderer, heading string, mappings []naming.Mapping) {
	r.Println(r.FormatHeader(heading))
	if len(mappings) == 0 {
		r.Println(r.Styles().Muted.Render("(none)"))
		r.Println("")
		return
	}

	t := newTable(r)
	t.AppendHeader(table.Row{"#", "From", "To"})
	for i, m := range mappings {
		t.AppendRow(table.Row{i + 1, m.From, dropOr(m.To)})
	}
	renderTable(r, t)
}

func renderListTable(r *output.Renderer, heading string, values []string) {
	r.Println(r.FormatHeader(heading))
	if len(values) == 0 {
		r.Println(r.Styles().Muted.Render("(none)"))
		r.Println("")
		return
	}

	t := newTable(r)
	t.AppendHeader(table.Row{"#", "Value"})
	for i, v := range values {
		t.AppendRow(table.Row{i + 1, v})
	}
	renderTable(r, t)
}

func dropOr(s string) string {
	if s == "" {
		return "(drop)"
	}
	return s
}

func quoteOrNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return `"` + s + `"`
}
