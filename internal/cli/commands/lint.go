package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/leapstack-labs/svclint/internal/cli/output"
	"github.com/leapstack-labs/svclint/internal/loader"
	"github.com/leapstack-labs/svclint/pkg/lint"
	"github.com/spf13/cobra"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths      []string // Files or directories overriding search_dirs
	Format     string   // Output format override
	Record     bool     // Persist the run in the history database
	ShowExempt bool     // Print the exemption set and its conflicts
	Watch      bool     // Re-run on every change until interrupted
}

// FindingsError is returned when a run found wrong identifiers.
type FindingsError struct {
	Total int
}

func (e *FindingsError) Error() string {
	return fmt.Sprintf("%d wrong service IDs in all files", e.Total)
}

// lintResult is everything one lint pass produced.
type lintResult struct {
	Docs   []*loader.Document
	Report *lint.Report
	Exempt *lint.ExemptionSet
	RunID  string
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Check service identifiers against their types",
		Long: `Check that every service identifier matches the identifier derived
from its bound type.

Runs in two passes. The first pass reads every service document and exempts
types involved in identifier conflicts. The second pass derives the expected
identifier of each remaining service and reports mismatches.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the configured search directories
  svclint lint

  # Lint a single bundle
  svclint lint vendor/contao/contao/news-bundle

  # Output as JSON and keep the run in the history
  svclint lint --format json --record

  # Re-run on every change
  svclint lint --watch`,
		// Findings are reported through the error; they are not usage errors.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", formatFlagUsage())
	cmd.Flags().BoolVar(&opts.Record, "record", false, "Record the run in the history database")
	cmd.Flags().BoolVar(&opts.ShowExempt, "show-exempt", false, "Show exempted types and the conflicts behind them")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch documents and re-run on change")

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}

	if opts.Watch {
		return watchLint(cmd, cmdCtx, opts)
	}

	res, err := lintOnce(contextOf(cmd), cmdCtx, opts)
	if err != nil {
		return err
	}
	renderLintResult(cmdCtx.Renderer, res, opts)

	if res.Report.Total > 0 {
		return &FindingsError{Total: res.Report.Total}
	}
	return nil
}

// discoverOptions returns the discovery settings; explicit paths replace
// the configured search directories.
func discoverOptions(cmdCtx *CommandContext, paths []string) loader.DiscoverOptions {
	roots := cmdCtx.Cfg.SearchDirs
	if len(paths) > 0 {
		roots = make([]string, 0, len(paths))
		for _, p := range paths {
			if abs, err := filepath.Abs(p); err == nil {
				p = abs
			}
			roots = append(roots, p)
		}
	}
	return loader.DiscoverOptions{
		Roots:        roots,
		Include:      cmdCtx.Cfg.Include,
		PathContains: cmdCtx.Cfg.PathContains,
		BaseDir:      cmdCtx.Cfg.ProjectRoot,
	}
}

// lintOnce runs discovery, both passes and optional recording.
func lintOnce(ctx context.Context, cmdCtx *CommandContext, opts *LintOptions) (*lintResult, error) {
	discover := discoverOptions(cmdCtx, opts.Paths)

	files, err := cmdCtx.Loader.Discover(discover)
	if err != nil {
		return nil, err
	}

	spinner := cmdCtx.Renderer.NewSpinner(fmt.Sprintf("Reading %d documents", len(files)))
	spinner.Start()
	docs, err := cmdCtx.Loader.LoadAll(ctx, files)
	spinner.Stop()
	if err != nil {
		return nil, err
	}

	report, exempt := lint.Run(loader.Records(docs), cmdCtx.Rules)
	cmdCtx.Logger.Debug("lint finished",
		"files", len(docs),
		"exempt", exempt.Len(),
		"total", report.Total)

	res := &lintResult{Docs: docs, Report: report, Exempt: exempt}

	if opts.Record || cmdCtx.Cfg.History.Enabled {
		runID, err := recordRun(ctx, cmdCtx, discover.Roots, res)
		if err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		res.RunID = runID
	}
	return res, nil
}

func recordRun(ctx context.Context, cmdCtx *CommandContext, roots []string, res *lintResult) (string, error) {
	store, err := cmdCtx.OpenStore()
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close() }()

	display := make([]string, 0, len(roots))
	for _, r := range roots {
		display = append(display, displayPath(cmdCtx.Cfg.ProjectRoot, r))
	}

	run, err := store.CreateRun(ctx, strings.Join(display, ","), len(res.Docs))
	if err != nil {
		return "", err
	}
	if err := store.RecordFindings(ctx, run.ID, res.Report.Findings()); err != nil {
		return "", err
	}
	if err := store.CompleteRun(ctx, run.ID, res.Report.Total); err != nil {
		return "", err
	}
	return run.ID, nil
}

func displayPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func watchLint(cmd *cobra.Command, cmdCtx *CommandContext, opts *LintOptions) error {
	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := cmdCtx.Renderer
	run := func() {
		res, err := lintOnce(ctx, cmdCtx, opts)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				r.Error(err.Error())
			}
			return
		}
		renderLintResult(r, res, opts)
	}

	run()
	r.Info("Watching for changes. Press Ctrl+C to stop.")

	return cmdCtx.Loader.Watch(ctx, discoverOptions(cmdCtx, opts.Paths), loader.DefaultDebounce, func(changed string) {
		r.Info("Change detected: " + displayPath(cmdCtx.Cfg.ProjectRoot, changed))
		run()
	})
}

func renderLintResult(r *output.Renderer, res *lintResult, opts *LintOptions) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(buildLintOutput(res, opts))
		return
	}

	for _, doc := range res.Docs {
		if !doc.HasServices {
			continue
		}
		fr := res.Report.File(doc.RelPath)
		for _, f := range findingsOf(fr) {
			r.Warning(fmt.Sprintf("%s:%d The %s service should have the ID %q but has the ID %q.",
				f.SourceFile, f.Line, f.Type, f.Derived, f.Declared))
		}
		if fr.OK() {
			r.Success(fmt.Sprintf("All service IDs are correct in the %s file.", doc.RelPath))
		} else {
			r.Error(fmt.Sprintf("%d wrong service IDs in the %s file.", fr.Count(), doc.RelPath))
		}
	}

	if opts.ShowExempt {
		renderExemptions(r, res.Exempt)
	}

	if res.RunID != "" {
		r.Info("Recorded run " + res.RunID)
	}

	if res.Report.Total > 0 {
		r.Error(fmt.Sprintf("%d wrong service IDs in all files.", res.Report.Total))
	}
}

func findingsOf(fr *lint.FileResult) []lint.Finding {
	if fr == nil {
		return nil
	}
	return fr.Findings
}

func renderExemptions(r *output.Renderer, exempt *lint.ExemptionSet) {
	r.Println("")
	r.Println(r.FormatHeader(fmt.Sprintf("Exempt types (%d)", exempt.Len())))
	for _, c := range exempt.Conflicts() {
		label := "identifier bound to several types"
		if c.Kind == lint.ConflictSharedType {
			label = "type bound under several identifiers"
		}
		r.Printf("%s %s\n", r.Styles().Bold.Render(label+":"), strings.Join(c.Identifiers, ", "))
		for _, t := range c.Types {
			r.Printf("  - %s\n", r.Styles().TypeName.Render(t))
		}
	}
	if seeded := exempt.SeededTypes(); len(seeded) > 0 {
		r.Println(r.Styles().Bold.Render("shared types:"))
		r.Printf("%s", r.FormatList(seeded))
	}
}

func buildLintOutput(res *lintResult, opts *LintOptions) output.LintOutput {
	out := output.LintOutput{
		Files: make([]output.LintFileResult, 0, len(res.Docs)),
		RunID: res.RunID,
	}

	for _, doc := range res.Docs {
		if !doc.HasServices {
			continue
		}
		out.Summary.FilesChecked++

		entry := output.LintFileResult{Path: doc.RelPath, Findings: []output.LintFinding{}}
		if fr := res.Report.File(doc.RelPath); fr != nil {
			entry.Checked = fr.Checked
			if len(fr.Skipped) > 0 {
				entry.Skipped = make(map[string]int, len(fr.Skipped))
				for reason, n := range fr.Skipped {
					entry.Skipped[string(reason)] = n
				}
			}
			for _, f := range fr.Findings {
				entry.Findings = append(entry.Findings, output.LintFinding{
					Line:     f.Line,
					Type:     f.Type,
					Declared: f.Declared,
					Derived:  f.Derived,
					Message:  f.Message(),
				})
			}
			if !fr.OK() {
				out.Summary.FilesWithFindings++
			}
		}
		out.Files = append(out.Files, entry)
	}
	out.Summary.Total = res.Report.Total

	if opts.ShowExempt {
		out.ExemptTypes = res.Exempt.Types()
		for _, c := range res.Exempt.Conflicts() {
			out.Conflicts = append(out.Conflicts, output.LintConflict{
				Kind:        string(c.Kind),
				Identifiers: c.Identifiers,
				Types:       c.Types,
				Files:       c.Files,
			})
		}
	}
	return out
}
