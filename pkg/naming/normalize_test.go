package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnderscore(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BackendMenuListener", "backend_menu_listener"},
		{"HTTPKernel", "http_kernel"},
		{"Contao", "contao"},
		{"CoreBundle", "core_bundle"},
		{"Version400Update", "version400_update"},
		{"ABC", "abc"},
		{"already_snake", "already_snake"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Underscore(tt.in))
		})
	}
}

func TestNormalizeSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Version400", "version_400"},
		{"Version400Update", "version_400_update"},
		{"Version409", "version_409"},
		{"Oauth2Client", "oauth_2_client"},
		{"EventListener", "event_listener"},
		{"Listener2Foo3", "listener_2_foo3"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSegment(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	tn := MustParseTypeName(`Contao\CoreBundle\Migration\Version400\Version400Update`)

	segs := Normalize(tn)

	assert.Equal(t, []string{"contao", "core_bundle", "migration", "version_400", "version_400_update"}, segs)
	assert.Len(t, segs, tn.Len())
	for _, s := range segs {
		assert.NotEmpty(t, s)
	}
}

func TestParseTypeName(t *testing.T) {
	t.Run("leading separator", func(t *testing.T) {
		tn, err := ParseTypeName(`\Contao\CoreBundle\ContaoCoreBundle`)
		require.NoError(t, err)
		assert.Equal(t, []string{"Contao", "CoreBundle", "ContaoCoreBundle"}, tn.Segments())
		assert.Equal(t, "ContaoCoreBundle", tn.ShortName())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseTypeName("  ")
		assert.ErrorIs(t, err, ErrEmptyTypeName)
	})

	t.Run("empty segment", func(t *testing.T) {
		_, err := ParseTypeName(`Contao\\Foo`)
		assert.ErrorIs(t, err, ErrEmptySegment)
	})

	t.Run("segments are copied", func(t *testing.T) {
		tn := MustParseTypeName(`Contao\CoreBundle\Foo`)
		segs := tn.Segments()
		segs[0] = "Mutated"
		assert.Equal(t, `Contao\CoreBundle\Foo`, tn.String())
	})

	t.Run("from segments", func(t *testing.T) {
		tn, err := NewTypeName("Contao", "CoreBundle", "Csrf", "MemoryTokenStorage")
		require.NoError(t, err)
		assert.Equal(t, `Contao\CoreBundle\Csrf\MemoryTokenStorage`, tn.String())
	})
}
