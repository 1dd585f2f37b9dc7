package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/svclint/internal/cli/config"
	"github.com/leapstack-labs/svclint/pkg/naming"
)

func TestInit_WritesLoadableConfig(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Chdir(dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	out, _, err := execute(NewInitCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Created svclint.yaml")

	cfg, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "svclint.yaml"), config.GetConfigFileUsed())
	assert.Equal(t, naming.DefaultRuleTables(), cfg.Rules.ToRuleTables())
	assert.Equal(t, []string{filepath.Join(dir, config.DefaultSearchDir)}, cfg.SearchDirs)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "svclint.yaml"), []byte("verbose: true\n"), 0o600))

	_, _, err := execute(NewInitCommand(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(NewInitCommand(), "--force", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "svclint.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "group_suffix: bundle")
	assert.Contains(t, string(content), "from: subscriber")
}
