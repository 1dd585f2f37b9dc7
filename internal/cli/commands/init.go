package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/svclint/internal/cli/config"
	"github.com/leapstack-labs/svclint/internal/cli/output"
	"github.com/leapstack-labs/svclint/pkg/naming"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// initFile is the layout of a generated svclint.yaml.
type initFile struct {
	SearchDirs   []string    `yaml:"search_dirs"`
	Include      []string    `yaml:"include"`
	PathContains string      `yaml:"path_contains"`
	StatePath    string      `yaml:"state_path"`
	History      initHistory `yaml:"history"`
	Rules        initRules   `yaml:"rules"`
}

type initHistory struct {
	Enabled bool `yaml:"enabled"`
}

type initRules struct {
	Vendor        string           `yaml:"vendor"`
	GroupSuffix   string           `yaml:"group_suffix"`
	CoreGroup     string           `yaml:"core_group"`
	PrivateMarker string           `yaml:"private_marker"`
	Aliases       []naming.Mapping `yaml:"aliases"`
	Renames       []naming.Mapping `yaml:"renames"`
	StripPrefixes []string         `yaml:"strip_prefixes"`
	Exceptions    []string         `yaml:"exceptions"`
	SharedTypes   []string         `yaml:"shared_types"`
}

const initHeader = `# svclint configuration.
# Every value below is a default; remove what you do not need to change.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a svclint.yaml with the default rules",
		Long: `Write a svclint.yaml configuration file containing the default search
settings and naming rules, ready to be adjusted.`,
		Example: `  # Initialize in current directory
  svclint init

  # Force overwrite existing config
  svclint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	}

	content, err := renderInitFile()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.Success("Created " + configPath)
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Adjust search_dirs and the rules in " + config.ConfigFileNames[0])
	r.Println("  2. Run 'svclint rules' to review the effective rules")
	r.Println("  3. Run 'svclint lint' to check your service identifiers")
	return nil
}

func renderInitFile() ([]byte, error) {
	rules := naming.DefaultRuleTables()
	file := initFile{
		SearchDirs:   []string{config.DefaultSearchDir},
		Include:      []string{config.DefaultInclude},
		PathContains: config.DefaultPathContains,
		StatePath:    config.DefaultStateFile,
		Rules: initRules{
			Vendor:        rules.Vendor,
			GroupSuffix:   rules.GroupSuffix,
			CoreGroup:     rules.CoreGroup,
			PrivateMarker: rules.PrivateMarker,
			Aliases:       rules.Aliases,
			Renames:       rules.Renames,
			StripPrefixes: rules.StripPrefixes,
			Exceptions:    rules.Exceptions,
			SharedTypes:   []string{},
		},
	}

	var buf bytes.Buffer
	buf.WriteString(initHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}
