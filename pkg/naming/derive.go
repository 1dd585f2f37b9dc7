package naming

import "strings"

// Derivation records the intermediate values of a derivation. It is
// returned by Explain for diagnostics; Derive only exposes the identifier.
type Derivation struct {
	Type       string   `json:"type"`
	Segments   []string `json:"segments"`
	Applicable bool     `json:"applicable"`
	Reason     string   `json:"reason,omitempty"`
	Prefix     string   `json:"prefix,omitempty"`
	Category   string   `json:"category,omitempty"`
	Path       []string `json:"path,omitempty"`
	Name       string   `json:"name,omitempty"`
	Identifier string   `json:"identifier,omitempty"`
}

// Reasons reported for types outside the convention.
const (
	ReasonVendor = "first segment is not the vendor token"
	ReasonGroup  = "second segment does not carry the group suffix"
)

// Derive computes the identifier implied by t. The boolean is false when t
// lies outside the vendor/group convention.
func Derive(t TypeName, rules *RuleTables) (string, bool) {
	d := Explain(t, rules)
	return d.Identifier, d.Applicable
}

// Explain runs the derivation pipeline and returns every intermediate value.
func Explain(t TypeName, rules *RuleTables) Derivation {
	segs := Normalize(t)
	d := Derivation{Type: t.String(), Segments: segs}
	vendor := rules.vendor()

	if len(segs) == 0 || segs[0] != vendor {
		d.Reason = ReasonVendor
		return d
	}

	suffix := rules.groupSuffix()
	if len(segs) < 2 || !strings.HasSuffix(segs[1], suffix) {
		d.Reason = ReasonGroup
		return d
	}
	d.Applicable = true

	group := strings.TrimSuffix(segs[1], suffix)
	if group == rules.coreGroup() {
		d.Prefix = vendor
	} else {
		d.Prefix = vendor + "_" + group
	}

	rest := segs[2:]
	var middle []string
	if len(rest) > 0 {
		d.Name = rest[len(rest)-1]
		middle = rest[:len(rest)-1]
	}

	var kept []string
	for _, seg := range middle {
		if to, ok := rules.Rename(seg); ok {
			seg = to
		}
		if seg != "" {
			kept = append(kept, seg)
		}
	}
	if len(kept) > 0 {
		d.Category = kept[0]
		d.Path = kept[1:]
	}

	d.Name = rules.StripPrefix(d.Name)
	d.Name = pruneName(d.Name, d.Category, d.Path, rules)

	category := d.Category
	if d.Name == category {
		category = ""
	}

	parts := make([]string, 0, 4)
	for _, p := range []string{d.Prefix, category, strings.Join(d.Path, "."), d.Name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	d.Identifier = strings.Join(parts, ".")
	return d
}

// pruneName drops name tokens that repeat the vendor, the category or a path
// segment, directly or through an alias. Adjacent token pairs matching the
// category or a path segment are dropped together.
func pruneName(name, category string, path []string, rules *RuleTables) string {
	tokens := strings.Split(name, "_")
	drop := make([]bool, len(tokens))
	vendor := rules.vendor()

	inPath := func(s string) bool {
		for _, p := range path {
			if p == s {
				return true
			}
		}
		return false
	}
	echoes := func(s string) bool {
		return s != "" && (s == category || inPath(s))
	}

	for i, tok := range tokens {
		if tok == vendor || echoes(tok) {
			drop[i] = true
		} else if alias, ok := rules.Alias(tok); ok && echoes(alias) {
			drop[i] = true
		}

		if i+1 < len(tokens) && echoes(tok+"_"+tokens[i+1]) {
			drop[i] = true
			drop[i+1] = true
		}
	}

	kept := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if !drop[i] {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, "_")
}
