// Package config loads the svclint configuration.
//
// Values are layered with koanf: built-in defaults, then svclint.yaml, then
// SVCLINT_ environment variables, then explicitly set command line flags.
package config

import (
	"github.com/leapstack-labs/svclint/pkg/naming"
)

// Config holds all CLI configuration options.
type Config struct {
	ProjectDir   string        `koanf:"project_dir"`
	SearchDirs   []string      `koanf:"search_dirs"`
	Include      []string      `koanf:"include"`
	PathContains string        `koanf:"path_contains"`
	OutputFormat string        `koanf:"output"`
	Verbose      bool          `koanf:"verbose"`
	StatePath    string        `koanf:"state_path"`
	Concurrency  int           `koanf:"concurrency"`
	History      HistoryConfig `koanf:"history"`
	Rules        RulesConfig   `koanf:"rules"`

	// ProjectRoot is the resolved directory relative paths are anchored to.
	ProjectRoot string `koanf:"-"`
}

// HistoryConfig controls run persistence.
type HistoryConfig struct {
	// Enabled records every lint run, as if --record was passed.
	Enabled bool `koanf:"enabled"`
}

// RulesConfig mirrors naming.RuleTables in configuration form.
type RulesConfig struct {
	Vendor        string          `koanf:"vendor"`
	GroupSuffix   string          `koanf:"group_suffix"`
	CoreGroup     string          `koanf:"core_group"`
	PrivateMarker string          `koanf:"private_marker"`
	Aliases       []MappingConfig `koanf:"aliases"`
	Renames       []MappingConfig `koanf:"renames"`
	StripPrefixes []string        `koanf:"strip_prefixes"`
	Exceptions    []string        `koanf:"exceptions"`
	SharedTypes   []string        `koanf:"shared_types"`
}

// MappingConfig is one ordered alias or rename entry.
type MappingConfig struct {
	From string `koanf:"from"`
	To   string `koanf:"to"`
}

// Default configuration values.
const (
	DefaultSearchDir    = "vendor/contao/contao"
	DefaultInclude      = "*.yml"
	DefaultPathContains = "-bundle/src/Resources/config"
	DefaultStateFile    = ".svclint/state.db"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// ConfigFileNames are searched in this order.
var ConfigFileNames = []string{"svclint.yaml", "svclint.yml"}

// ToRuleTables converts the rules section into the tables used by Derive.
func (r RulesConfig) ToRuleTables() *naming.RuleTables {
	return &naming.RuleTables{
		Vendor:        r.Vendor,
		GroupSuffix:   r.GroupSuffix,
		CoreGroup:     r.CoreGroup,
		PrivateMarker: r.PrivateMarker,
		Aliases:       toMappings(r.Aliases),
		Renames:       toMappings(r.Renames),
		StripPrefixes: append([]string(nil), r.StripPrefixes...),
		Exceptions:    append([]string(nil), r.Exceptions...),
		SharedTypes:   append([]string(nil), r.SharedTypes...),
	}
}

func toMappings(in []MappingConfig) []naming.Mapping {
	out := make([]naming.Mapping, 0, len(in))
	for _, m := range in {
		out = append(out, naming.Mapping{From: m.From, To: m.To})
	}
	return out
}

// defaultRules renders naming.DefaultRuleTables as a koanf default map.
func defaultRules() map[string]interface{} {
	rt := naming.DefaultRuleTables()
	return map[string]interface{}{
		"vendor":         rt.Vendor,
		"group_suffix":   rt.GroupSuffix,
		"core_group":     rt.CoreGroup,
		"private_marker": rt.PrivateMarker,
		"aliases":        mappingsToMaps(rt.Aliases),
		"renames":        mappingsToMaps(rt.Renames),
		"strip_prefixes": rt.StripPrefixes,
		"exceptions":     rt.Exceptions,
		"shared_types":   []string{},
	}
}

func mappingsToMaps(in []naming.Mapping) []interface{} {
	out := make([]interface{}, 0, len(in))
	for _, m := range in {
		out = append(out, map[string]interface{}{"from": m.From, "to": m.To})
	}
	return out
}
