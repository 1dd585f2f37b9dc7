package lint

import (
	"sort"

	"github.com/leapstack-labs/svclint/pkg/naming"
)

// ConflictKind tells which corpus-wide collision exempted a type.
type ConflictKind string

const (
	// ConflictSharedIdentifier: one identifier is bound to several types.
	ConflictSharedIdentifier ConflictKind = "shared_identifier"
	// ConflictSharedType: one type is bound more than once, under the same
	// or different identifiers.
	ConflictSharedType ConflictKind = "shared_type"
)

// Conflict describes one collision found by DetectConflicts.
type Conflict struct {
	Kind        ConflictKind `json:"kind"`
	Identifiers []string     `json:"identifiers"`
	Types       []string     `json:"types"`
	Files       []string     `json:"files"`
}

// ExemptionSet is the set of types skipped by Check. It is immutable once
// returned by DetectConflicts.
type ExemptionSet struct {
	types     map[string]struct{}
	seeded    map[string]struct{}
	conflicts []Conflict
}

// Contains reports whether t is exempt.
func (e *ExemptionSet) Contains(t naming.TypeName) bool {
	if e == nil {
		return false
	}
	_, ok := e.types[t.String()]
	return ok
}

// IsSeeded reports whether t was exempted by configuration rather than by a
// corpus collision.
func (e *ExemptionSet) IsSeeded(t naming.TypeName) bool {
	if e == nil {
		return false
	}
	_, ok := e.seeded[t.String()]
	return ok
}

// Len returns the number of exempt types.
func (e *ExemptionSet) Len() int {
	if e == nil {
		return 0
	}
	return len(e.types)
}

// Types returns the exempt type names sorted.
func (e *ExemptionSet) Types() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.types))
	for t := range e.types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// SeededTypes returns the configured shared types sorted.
func (e *ExemptionSet) SeededTypes() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.seeded))
	for t := range e.seeded {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Conflicts returns the collisions in the order they were first seen.
func (e *ExemptionSet) Conflicts() []Conflict {
	if e == nil {
		return nil
	}
	out := make([]Conflict, len(e.conflicts))
	copy(out, e.conflicts)
	return out
}

// bindings accumulates distinct values in first-seen order and counts every
// binding, duplicates included.
type bindings struct {
	values []string
	files  []string
	seen   map[string]struct{}
	count  int
}

func (b *bindings) add(value, file string) {
	b.count++
	if b.seen == nil {
		b.seen = make(map[string]struct{})
	}
	if _, ok := b.seen[value]; !ok {
		b.seen[value] = struct{}{}
		b.values = append(b.values, value)
	}
	for _, f := range b.files {
		if f == file {
			return
		}
	}
	b.files = append(b.files, file)
}

// DetectConflicts scans the whole corpus and returns the exemption set.
//
// A type is exempt when its identifier is also bound to a different type, or
// when the type is bound more than once anywhere in the corpus. Seed types are
// exempt unconditionally. The resulting set does not depend on record order.
func DetectConflicts(records []ServiceRecord, seed ...naming.TypeName) *ExemptionSet {
	typesByID := make(map[string]*bindings)
	idsByType := make(map[string]*bindings)
	var idOrder, typeOrder []string

	for _, r := range records {
		typ := r.Type.String()

		b, ok := typesByID[r.Identifier]
		if !ok {
			b = &bindings{}
			typesByID[r.Identifier] = b
			idOrder = append(idOrder, r.Identifier)
		}
		b.add(typ, r.SourceFile)

		b, ok = idsByType[typ]
		if !ok {
			b = &bindings{}
			idsByType[typ] = b
			typeOrder = append(typeOrder, typ)
		}
		b.add(r.Identifier, r.SourceFile)
	}

	set := &ExemptionSet{
		types:  make(map[string]struct{}),
		seeded: make(map[string]struct{}),
	}

	for _, t := range seed {
		if t.IsZero() {
			continue
		}
		set.types[t.String()] = struct{}{}
		set.seeded[t.String()] = struct{}{}
	}

	for _, id := range idOrder {
		b := typesByID[id]
		if len(b.values) < 2 {
			continue
		}
		for _, typ := range b.values {
			set.types[typ] = struct{}{}
		}
		set.conflicts = append(set.conflicts, Conflict{
			Kind:        ConflictSharedIdentifier,
			Identifiers: []string{id},
			Types:       b.values,
			Files:       b.files,
		})
	}

	for _, typ := range typeOrder {
		b := idsByType[typ]
		if b.count < 2 {
			continue
		}
		set.types[typ] = struct{}{}
		set.conflicts = append(set.conflicts, Conflict{
			Kind:        ConflictSharedType,
			Identifiers: b.values,
			Types:       []string{typ},
			Files:       b.files,
		})
	}

	return set
}
