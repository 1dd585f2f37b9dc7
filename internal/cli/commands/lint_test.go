package commands

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/svclint/internal/cli/output"
	clitestutil "github.com/leapstack-labs/svclint/internal/cli/testutil"
)

func TestLint_Markdown(t *testing.T) {
	inProject(t)

	out, errOut, err := execute(NewLintCommand())

	var findingsErr *FindingsError
	require.True(t, errors.As(err, &findingsErr), "expected FindingsError, got %v", err)
	assert.Equal(t, 1, findingsErr.Total)
	assert.Equal(t, "1 wrong service IDs in all files", err.Error())

	assert.Contains(t, out, clitestutil.CoreServicesFile+":8 The Contao\\CoreBundle\\EventListener\\DataContainerListener service should have the ID \"contao.listener.data_container\" but has the ID \"contao.listener.wrong_name\".")
	assert.Contains(t, out, "All service IDs are correct in the "+clitestutil.NewsListenerFile+" file.")
	assert.NotContains(t, out, "tools/config.yml")

	assert.Contains(t, errOut, "1 wrong service IDs in the "+clitestutil.CoreServicesFile+" file.")
	assert.Contains(t, errOut, "1 wrong service IDs in all files.")
	clitestutil.AssertNoANSI(t, out)

	// Core file is reported before the news file.
	assert.Less(t, strings.Index(out, "DataContainerListener"), strings.Index(out, clitestutil.NewsListenerFile))
}

func TestLint_JSON(t *testing.T) {
	inProject(t)

	out, _, err := execute(NewLintCommand(), "--format", "json", "--show-exempt")
	require.Error(t, err)
	assert.NotContains(t, out, "Usage:", "findings must not print usage after the JSON document")

	var got output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, output.LintSummary{FilesChecked: 2, FilesWithFindings: 1, Total: 1}, got.Summary)
	require.Len(t, got.Files, 2)
	assert.Equal(t, clitestutil.CoreServicesFile, got.Files[0].Path)
	require.Len(t, got.Files[0].Findings, 1)
	assert.Equal(t, "contao.listener.wrong_name", got.Files[0].Findings[0].Declared)
	assert.Equal(t, "contao.listener.data_container", got.Files[0].Findings[0].Derived)
	assert.Equal(t, 1, got.Files[0].Skipped["private"])

	assert.Equal(t, []string{`Contao\NewsBundle\Feed\FeedGenerator`}, got.ExemptTypes)
	require.Len(t, got.Conflicts, 1)
	assert.Equal(t, "shared_type", got.Conflicts[0].Kind)
	assert.Equal(t, 2, got.Files[1].Skipped["exempt"])
}

func TestLint_ExplicitPath(t *testing.T) {
	root := inProject(t)

	out, _, err := execute(NewLintCommand(), filepath.Join(root, "vendor/contao/contao/news-bundle"))
	require.NoError(t, err)
	assert.Contains(t, out, "All service IDs are correct in the "+clitestutil.NewsListenerFile+" file.")
	assert.NotContains(t, out, "core-bundle")
}

func TestLint_SharedTypesFromConfig(t *testing.T) {
	root := inProject(t)
	clitestutil.WriteFile(t, root, "svclint.yaml", `rules:
  shared_types:
    - Contao\CoreBundle\EventListener\DataContainerListener
`)

	out, _, err := execute(NewLintCommand(), "--show-exempt")
	require.NoError(t, err)
	assert.Contains(t, out, "shared types:")
	assert.Contains(t, out, `Contao\CoreBundle\EventListener\DataContainerListener`)
}

func TestLint_RecordAndHistory(t *testing.T) {
	root := inProject(t)

	_, errOut, err := execute(NewLintCommand(), "--record")
	require.Error(t, err)
	assert.Contains(t, errOut, "Recorded run ")
	assert.FileExists(t, filepath.Join(root, ".svclint", "state.db"))

	out, _, err := execute(NewHistoryCommand(), "--format", "json")
	require.NoError(t, err)

	var hist output.HistoryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &hist))
	require.Len(t, hist.Runs, 1)
	run := hist.Runs[0]
	assert.Equal(t, "vendor/contao/contao", run.Root)
	assert.Equal(t, 2, run.Files)
	assert.Equal(t, 1, run.Total)
	assert.Equal(t, "failed", run.Status)

	out, _, err = execute(NewHistoryCommand(), "--run", run.ID)
	require.NoError(t, err)
	assert.Contains(t, out, run.ID)
	assert.Contains(t, out, "contao.listener.wrong_name")
}

func TestHistory_Empty(t *testing.T) {
	inProject(t)

	out, _, err := execute(NewHistoryCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "No recorded runs")
}

func TestLint_InvalidFormat(t *testing.T) {
	inProject(t)

	_, _, err := execute(NewLintCommand(), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output mode")
}

func TestLint_MissingSearchDir(t *testing.T) {
	root := inProject(t)

	_, _, err := execute(NewLintCommand(), filepath.Join(root, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read search path")
}
