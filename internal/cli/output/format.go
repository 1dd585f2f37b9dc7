package output

import (
	"fmt"
	"strings"
)

// FormatHeader renders a section header for the effective mode.
func (r *Renderer) FormatHeader(title string) string {
	if r.EffectiveMode() == ModeMarkdown {
		return "## " + title
	}
	return r.styles.Header.Render(title)
}

// FormatKeyValue renders a "key: value" pair for the effective mode.
func (r *Renderer) FormatKeyValue(key, value string) string {
	if r.EffectiveMode() == ModeMarkdown {
		return fmt.Sprintf("- **%s:** %s", key, value)
	}
	return fmt.Sprintf("%s %s", r.styles.Muted.Render(key+":"), value)
}

// FormatCode renders an inline identifier or type name.
func (r *Renderer) FormatCode(s string) string {
	if r.EffectiveMode() == ModeMarkdown {
		return "`" + s + "`"
	}
	return r.styles.Identifier.Render(s)
}

// FormatList renders items as a bulleted list.
func (r *Renderer) FormatList(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("  - ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}
