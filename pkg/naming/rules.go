package naming

import "strings"

// Default rule table values for the Contao naming convention.
const (
	DefaultVendor        = "contao"
	DefaultGroupSuffix   = "bundle"
	DefaultCoreGroup     = "core"
	DefaultPrivateMarker = "_"
)

// Mapping is one ordered entry of an alias or rename table.
// An empty To in a rename table drops the segment.
type Mapping struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RuleTables holds the read-only configuration consumed by Derive and by
// the convention checker. Build it once at startup and share it.
type RuleTables struct {
	// Vendor is the normalized first segment governed by the convention.
	Vendor string `json:"vendor"`
	// GroupSuffix marks the second segment as a group ("bundle" matches
	// "core_bundle"). It is compared against the normalized segment.
	GroupSuffix string `json:"group_suffix"`
	// CoreGroup is the group whose prefix collapses to the vendor token.
	CoreGroup string `json:"core_group"`
	// PrivateMarker prefixes identifiers that are never checked.
	PrivateMarker string `json:"private_marker"`

	// Aliases maps a name token to an equivalent segment.
	Aliases []Mapping `json:"aliases"`
	// Renames replaces or drops middle namespace segments.
	Renames []Mapping `json:"renames"`
	// StripPrefixes are removed from the name; the first match wins.
	StripPrefixes []string `json:"strip_prefixes"`
	// Exceptions are identifiers exempted unconditionally.
	Exceptions []string `json:"exceptions"`
	// SharedTypes are fully qualified types seeded into the exemption set.
	SharedTypes []string `json:"shared_types"`
}

// DefaultRuleTables returns the stock tables for Contao bundles.
func DefaultRuleTables() *RuleTables {
	return &RuleTables{
		Vendor:        DefaultVendor,
		GroupSuffix:   DefaultGroupSuffix,
		CoreGroup:     DefaultCoreGroup,
		PrivateMarker: DefaultPrivateMarker,
		Aliases: []Mapping{
			{From: "subscriber", To: "listener"},
		},
		Renames: []Mapping{
			{From: "event_listener", To: "listener"},
			{From: "http_kernel", To: ""},
		},
		StripPrefixes: []string{
			"contao_table_",
			"core_",
		},
		Exceptions: []string{
			// The version_400 prefix means something different in the
			// namespace than in the class name.
			"contao.migration.version_400.version_400_update",
		},
	}
}

// Alias returns the alias of seg. The first matching entry wins.
func (r *RuleTables) Alias(seg string) (string, bool) {
	return lookup(r.Aliases, seg)
}

// Rename returns the replacement for seg, which may be empty (drop).
// The first matching entry wins.
func (r *RuleTables) Rename(seg string) (string, bool) {
	return lookup(r.Renames, seg)
}

// StripPrefix removes the first matching strip prefix from name.
func (r *RuleTables) StripPrefix(name string) string {
	for _, p := range r.StripPrefixes {
		if p != "" && strings.HasPrefix(name, p) {
			return name[len(p):]
		}
	}
	return name
}

// IsException reports whether id is exempted unconditionally.
func (r *RuleTables) IsException(id string) bool {
	for _, e := range r.Exceptions {
		if e == id {
			return true
		}
	}
	return false
}

// IsPrivate reports whether id starts with the private marker.
func (r *RuleTables) IsPrivate(id string) bool {
	return r.PrivateMarker != "" && strings.HasPrefix(id, r.PrivateMarker)
}

// vendor and coreGroup return the configured tokens in normalized form, so
// "Contao" and "contao" select the same types.
func (r *RuleTables) vendor() string {
	return NormalizeSegment(r.Vendor)
}

func (r *RuleTables) coreGroup() string {
	return NormalizeSegment(r.CoreGroup)
}

// groupSuffix returns the suffix as it appears in a normalized segment.
func (r *RuleTables) groupSuffix() string {
	return "_" + Underscore(r.GroupSuffix)
}

func lookup(table []Mapping, key string) (string, bool) {
	for _, m := range table {
		if m.From == key {
			return m.To, true
		}
	}
	return "", false
}
