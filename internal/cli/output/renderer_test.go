package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode Mode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"text", ModeText, false},
		{"markdown", ModeMarkdown, false},
		{"json", ModeJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		tty  bool
		want Mode
	}{
		{"auto tty", ModeAuto, true, ModeText},
		{"auto pipe", ModeAuto, false, ModeMarkdown},
		{"empty pipe", "", false, ModeMarkdown},
		{"text pipe", ModeText, false, ModeText},
		{"json tty", ModeJSON, true, ModeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.tty)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_MarkdownMessages(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeMarkdown, false)

	r.Success("all good")
	r.Warning("careful")
	r.Error("broken")

	assert.Equal(t, "**OK** all good\n**WARNING** careful\n", out.String())
	assert.Equal(t, "**ERROR** broken\n", errOut.String())
}

func TestRenderer_TextWithoutTTYHasNoANSI(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, false)

	r.Success("done")
	r.Println(r.Styles().Bold.Render("bold"))

	assert.NotContains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "✓ done")
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)

	require.NoError(t, r.JSON(LintSummary{FilesChecked: 2, Total: 1}))

	var got LintSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 2, got.FilesChecked)
	assert.Equal(t, 1, got.Total)
}

func TestRenderer_Format(t *testing.T) {
	md, _, _ := newTestRenderer(ModeMarkdown, false)
	assert.Equal(t, "## Rules", md.FormatHeader("Rules"))
	assert.Equal(t, "- **vendor:** contao", md.FormatKeyValue("vendor", "contao"))
	assert.Equal(t, "`contao.framework`", md.FormatCode("contao.framework"))

	text, _, _ := newTestRenderer(ModeText, false)
	assert.Equal(t, "vendor: contao", text.FormatKeyValue("vendor", "contao"))
	assert.Equal(t, "  - a\n  - b\n", text.FormatList([]string{"a", "b"}))
}

func TestSpinner_DisabledOutsideTerminal(t *testing.T) {
	r, _, errOut := newTestRenderer(ModeAuto, false)

	s := r.NewSpinner("loading")
	s.Start()
	s.Stop()
	s.Stop()

	assert.Empty(t, errOut.String())
}
