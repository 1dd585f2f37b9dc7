package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/svclint/internal/cli/output"
	"github.com/leapstack-labs/svclint/internal/state"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int
	RunID  string
	Format string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded lint runs",
		Long: `List lint runs recorded with --record (or history.enabled) and the
mismatch count of each run. Pass --run to list the findings of one run.`,
		Example: `  svclint history
  svclint history --limit 5
  svclint history --run 6f1c2a0e-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "Show the findings of this run")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", formatFlagUsage())

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	ctx := contextOf(cmd)

	store, err := cmdCtx.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var runs []*state.Run
	if opts.RunID != "" {
		run, err := store.GetRun(ctx, opts.RunID)
		if err != nil {
			return err
		}
		runs = []*state.Run{run}
	} else {
		runs, err = store.ListRuns(ctx, opts.Limit)
		if err != nil {
			return err
		}
	}

	out := output.HistoryOutput{Runs: make([]output.RunInfo, 0, len(runs))}
	for _, run := range runs {
		out.Runs = append(out.Runs, output.RunInfo{
			ID:          run.ID,
			Root:        run.Root,
			Files:       run.Files,
			Total:       run.Total,
			Status:      string(run.Status),
			StartedAt:   run.StartedAt,
			CompletedAt: run.CompletedAt,
		})
	}

	if opts.RunID != "" {
		findings, err := store.GetFindings(ctx, opts.RunID)
		if err != nil {
			return err
		}
		for _, f := range findings {
			out.Findings = append(out.Findings, output.LintFinding{
				Line:     f.Line,
				Type:     f.Type,
				Declared: f.Declared,
				Derived:  f.Derived,
				Message:  fmt.Sprintf("%s:%d %s", f.SourceFile, f.Line, f.Message()),
			})
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	if len(out.Runs) == 0 {
		r.Println("No recorded runs. Use 'svclint lint --record' to record one.")
		return nil
	}

	t := newTable(r)
	t.AppendHeader(table.Row{"Run", "Started", "Root", "Files", "Wrong IDs", "Status"})
	for _, run := range out.Runs {
		t.AppendRow(table.Row{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Root,
			strconv.Itoa(run.Files),
			strconv.Itoa(run.Total),
			statusLabel(r, run.Status),
		})
	}
	renderTable(r, t)

	for _, f := range out.Findings {
		r.Warning(f.Message)
	}
	return nil
}

func statusLabel(r *output.Renderer, status string) string {
	switch state.RunStatus(status) {
	case state.RunStatusPassed:
		return r.Styles().Success.Render(status)
	case state.RunStatusFailed:
		return r.Styles().Error.Render(status)
	default:
		return r.Styles().Muted.Render(status)
	}
}
