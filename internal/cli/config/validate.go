package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/leapstack-labs/svclint/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if len(c.SearchDirs) == 0 {
		errs = append(errs, fmt.Errorf("search_dirs must not be empty"))
	}
	if len(c.Include) == 0 {
		errs = append(errs, fmt.Errorf("include must not be empty"))
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative"))
	}
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks the rule tables.
func (r RulesConfig) Validate() error {
	var errs []error

	if r.Vendor == "" {
		errs = append(errs, fmt.Errorf("rules.vendor is required"))
	}
	if r.GroupSuffix == "" {
		errs = append(errs, fmt.Errorf("rules.group_suffix is required"))
	}
	if utf8.RuneCountInString(r.PrivateMarker) > 1 {
		errs = append(errs, fmt.Errorf("rules.private_marker must be a single character, got %q", r.PrivateMarker))
	}
	for i, m := range r.Aliases {
		if m.From == "" || m.To == "" {
			errs = append(errs, fmt.Errorf("rules.aliases[%d] needs both from and to", i))
		}
	}
	for i, m := range r.Renames {
		if m.From == "" {
			errs = append(errs, fmt.Errorf("rules.renames[%d] needs from", i))
		}
	}
	for i, p := range r.StripPrefixes {
		if p == "" {
			errs = append(errs, fmt.Errorf("rules.strip_prefixes[%d] is empty", i))
		}
	}

	return errors.Join(errs...)
}

// ValidateDirectories checks that every search directory exists.
func (c *Config) ValidateDirectories() error {
	for _, dir := range c.SearchDirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("search directory does not exist: %s\nHint: run from the project root or pass --search-dir", dir)
		}
	}
	return nil
}
