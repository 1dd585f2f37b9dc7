// Package output renders command results for terminals, pipes and machines.
//
// The renderer picks one of three concrete modes. Terminals get styled text,
// pipes get plain markdown, and JSON is available for scripting. ModeAuto
// resolves to text or markdown depending on whether stdout is a TTY.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how output is formatted.
type Mode string

// OutputMode is kept as an alias for callers that spell the type out.
type OutputMode = Mode

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// ValidModes lists every accepted mode name.
var ValidModes = []Mode{ModeAuto, ModeText, ModeMarkdown, ModeJSON}

// ParseMode validates a mode name. Empty input means ModeAuto.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeAuto, nil
	}
	for _, m := range ValidModes {
		if Mode(s) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid output mode %q (valid: auto, text, markdown, json)", s)
}

// Renderer writes formatted output to stdout and stderr writers.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
	}

	lr := lipgloss.NewRenderer(out)
	if r.EffectiveMode() == ModeText && isTTY {
		lr.SetColorProfile(termenv.EnvColorProfile())
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}
	r.styles = newStyles(lr)
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// Mode returns the configured mode, possibly ModeAuto.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// IsTTY reports whether stdout is a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// EffectiveMode resolves ModeAuto to text or markdown.
func (r *Renderer) EffectiveMode() Mode {
	switch r.mode {
	case ModeText, ModeMarkdown, ModeJSON:
		return r.mode
	default:
		if r.isTTY {
			return ModeText
		}
		return ModeMarkdown
	}
}

// Styles returns the styles bound to this renderer.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the stdout writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the stderr writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to stdout.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to stdout.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Success prints a success line.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Printf("**OK** %s\n", msg)
		return
	}
	r.Println(r.styles.Success.Render("✓ " + msg))
}

// Warning prints a warning line.
func (r *Renderer) Warning(msg string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Printf("**WARNING** %s\n", msg)
		return
	}
	r.Println(r.styles.Warning.Render("! " + msg))
}

// Error prints an error line to stderr.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeMarkdown {
		_, _ = fmt.Fprintf(r.errOut, "**ERROR** %s\n", msg)
		return
	}
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
}

// Info prints an informational line to stderr so stdout stays parseable.
func (r *Renderer) Info(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Muted.Render(msg))
}

// JSON writes v as indented JSON to stdout.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
