package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleTables_Lookups(t *testing.T) {
	rules := DefaultRuleTables()

	alias, ok := rules.Alias("subscriber")
	assert.True(t, ok)
	assert.Equal(t, "listener", alias)

	_, ok = rules.Alias("listener")
	assert.False(t, ok)

	to, ok := rules.Rename("http_kernel")
	assert.True(t, ok)
	assert.Empty(t, to, "http_kernel is dropped")

	assert.Equal(t, "data_container", rules.StripPrefix("contao_table_data_container"))
	assert.Equal(t, "listener", rules.StripPrefix("core_listener"))
	assert.Equal(t, "widget", rules.StripPrefix("widget"))
}

func TestRuleTables_StripPrefixFirstMatch(t *testing.T) {
	rules := &RuleTables{StripPrefixes: []string{"", "foo_", "foo_bar_"}}

	assert.Equal(t, "bar_baz", rules.StripPrefix("foo_bar_baz"))
}

func TestRuleTables_ExceptionAndPrivate(t *testing.T) {
	rules := DefaultRuleTables()

	assert.True(t, rules.IsException("contao.migration.version_400.version_400_update"))
	assert.False(t, rules.IsException("contao.migration.version_400"))

	assert.True(t, rules.IsPrivate("_contao.helper"))
	assert.False(t, rules.IsPrivate("contao.helper"))

	rules.PrivateMarker = ""
	assert.False(t, rules.IsPrivate("_contao.helper"))
}

func TestTypeName_Accessors(t *testing.T) {
	tn := MustParseTypeName(`\Contao\CoreBundle\Cron\Cron`)

	assert.Equal(t, 4, tn.Len())
	assert.Equal(t, "Cron", tn.ShortName())
	assert.Equal(t, `Contao\CoreBundle\Cron\Cron`, tn.String())
	assert.False(t, tn.IsZero())

	segs := tn.Segments()
	segs[0] = "Changed"
	assert.Equal(t, "Contao", tn.Segments()[0], "Segments returns a copy")

	var zero TypeName
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.ShortName())

	built, err := NewTypeName("Contao", "NewsBundle", "Feed")
	assert.NoError(t, err)
	assert.Equal(t, `Contao\NewsBundle\Feed`, built.String())

	assert.Panics(t, func() { MustParseTypeName(`Contao\\Feed`) })
}
