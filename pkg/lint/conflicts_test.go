package lint

import (
	"testing"

	"github.com/leapstack-labs/svclint/pkg/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id, typ, file string) ServiceRecord {
	return ServiceRecord{Identifier: id, Type: naming.MustParseTypeName(typ), SourceFile: file}
}

func TestDetectConflicts(t *testing.T) {
	tests := []struct {
		name       string
		records    []ServiceRecord
		wantExempt []string
		wantKinds  []ConflictKind
	}{
		{
			name: "no collisions",
			records: []ServiceRecord{
				rec("contao.listener.a", `Contao\CoreBundle\EventListener\AListener`, "services.yml"),
				rec("contao.listener.b", `Contao\CoreBundle\EventListener\BListener`, "services.yml"),
			},
			wantExempt: []string{},
		},
		{
			name: "same type under two identifiers",
			records: []ServiceRecord{
				rec("contao.session.contao_backend", `Symfony\Component\HttpFoundation\Session\Attribute\ArrayAttributeBag`, "services.yml"),
				rec("contao.session.contao_frontend", `Symfony\Component\HttpFoundation\Session\Attribute\ArrayAttributeBag`, "services.yml"),
			},
			wantExempt: []string{`Symfony\Component\HttpFoundation\Session\Attribute\ArrayAttributeBag`},
			wantKinds:  []ConflictKind{ConflictSharedType},
		},
		{
			name: "same identifier for two types",
			records: []ServiceRecord{
				rec("contao.routing.candidates", `Contao\CoreBundle\Routing\Candidates\LocaleCandidates`, "services.yml"),
				rec("contao.routing.candidates", `Contao\CoreBundle\Routing\Candidates\PageCandidates`, "routing.yml"),
			},
			wantExempt: []string{
				`Contao\CoreBundle\Routing\Candidates\LocaleCandidates`,
				`Contao\CoreBundle\Routing\Candidates\PageCandidates`,
			},
			wantKinds: []ConflictKind{ConflictSharedIdentifier},
		},
		{
			name: "type redeclared with the same identifier",
			records: []ServiceRecord{
				rec("contao.foo", `Contao\CoreBundle\Foo`, "a.yml"),
				rec("contao.foo", `Contao\CoreBundle\Foo`, "b.yml"),
			},
			wantExempt: []string{`Contao\CoreBundle\Foo`},
			wantKinds:  []ConflictKind{ConflictSharedType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := DetectConflicts(tt.records)

			assert.ElementsMatch(t, tt.wantExempt, set.Types())
			var kinds []ConflictKind
			for _, c := range set.Conflicts() {
				kinds = append(kinds, c.Kind)
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestDetectConflicts_RedeclaredServiceIsNotReported(t *testing.T) {
	records := []ServiceRecord{
		rec("contao.wrong", `Contao\CoreBundle\Cron\Cron`, "a.yml"),
		rec("contao.wrong", `Contao\CoreBundle\Cron\Cron`, "b.yml"),
	}

	set := DetectConflicts(records)
	require.True(t, set.Contains(naming.MustParseTypeName(`Contao\CoreBundle\Cron\Cron`)))

	conflicts := set.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"contao.wrong"}, conflicts[0].Identifiers)
	assert.Equal(t, []string{"a.yml", "b.yml"}, conflicts[0].Files)

	report := Check(records, naming.DefaultRuleTables(), set)
	assert.Equal(t, 0, report.Total)
}

func TestDetectConflicts_OrderIndependent(t *testing.T) {
	records := []ServiceRecord{
		rec("contao.a", `Contao\CoreBundle\A`, "a.yml"),
		rec("contao.shared", `Contao\CoreBundle\B`, "a.yml"),
		rec("contao.c", `Contao\CoreBundle\C`, "b.yml"),
		rec("contao.shared", `Contao\CoreBundle\C`, "b.yml"),
		rec("contao.a2", `Contao\CoreBundle\A`, "c.yml"),
	}
	reversed := make([]ServiceRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	forward := DetectConflicts(records)
	backward := DetectConflicts(reversed)

	assert.Equal(t, forward.Types(), backward.Types())
	assert.Equal(t, []string{`Contao\CoreBundle\A`, `Contao\CoreBundle\B`, `Contao\CoreBundle\C`}, forward.Types())
}

func TestDetectConflicts_Seed(t *testing.T) {
	shared := naming.MustParseTypeName(`Contao\CoreBundle\Csrf\MemoryTokenStorage`)

	set := DetectConflicts(nil, shared, naming.TypeName{})

	assert.True(t, set.Contains(shared))
	assert.True(t, set.IsSeeded(shared))
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, []string{shared.String()}, set.SeededTypes())
	assert.Empty(t, set.Conflicts())
}

func TestDetectConflicts_ConflictDetails(t *testing.T) {
	set := DetectConflicts([]ServiceRecord{
		rec("contao.bag", `Contao\CoreBundle\Bag`, "a.yml"),
		rec("contao.other_bag", `Contao\CoreBundle\Bag`, "b.yml"),
		rec("contao.third_bag", `Contao\CoreBundle\Bag`, "b.yml"),
	})

	conflicts := set.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"contao.bag", "contao.other_bag", "contao.third_bag"}, conflicts[0].Identifiers)
	assert.Equal(t, []string{"a.yml", "b.yml"}, conflicts[0].Files)
}

func TestExemptionSet_Nil(t *testing.T) {
	var set *ExemptionSet

	assert.False(t, set.Contains(naming.MustParseTypeName(`Contao\CoreBundle\Foo`)))
	assert.Equal(t, 0, set.Len())
	assert.Nil(t, set.Types())
	assert.Nil(t, set.Conflicts())
	assert.Nil(t, set.SeededTypes())
}
