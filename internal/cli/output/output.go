// Package output renders command results and diagnostics for the hql CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects how results are written.
type Mode string

// Output modes.
const (
	ModeAuto Mode = "auto"
	ModeText Mode = "text"
	ModeJSON Mode = "json"
	ModeYAML Mode = "yaml"
)

// Modes lists the accepted --output values.
var Modes = []string{string(ModeAuto), string(ModeText), string(ModeJSON), string(ModeYAML)}

// ParseMode converts a flag or config value to a Mode. The empty string is auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeText, ModeJSON, ModeYAML:
		return m, nil
	}
	return "", fmt.Errorf("unknown output format %q (want one of %s)", s, strings.Join(Modes, ", "))
}

// ColorMode controls ANSI styling.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ColorModes lists the accepted --color values.
var ColorModes = []string{string(ColorAuto), string(ColorAlways), string(ColorNever)}

// ParseColorMode converts a flag or config value to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch c := ColorMode(strings.ToLower(s)); c {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return c, nil
	}
	return "", fmt.Errorf("unknown color mode %q (want one of %s)", s, strings.Join(ColorModes, ", "))
}

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Caret   lipgloss.Style
}

func newStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Error:   lr.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("10")),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("12")),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    lr.NewStyle().Bold(true),
		Caret:   lr.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Renderer writes results to out and diagnostics to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// Option configures a Renderer.
type Option func(*rendererOptions)

type rendererOptions struct {
	color ColorMode
}

// WithColor overrides terminal color detection.
func WithColor(c ColorMode) Option {
	return func(o *rendererOptions) {
		o.color = c
	}
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode, opts ...Option) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode, opts...)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode, opts ...Option) *Renderer {
	o := rendererOptions{color: ColorAuto}
	for _, opt := range opts {
		opt(&o)
	}
	if mode == "" {
		mode = ModeAuto
	}

	lr := lipgloss.NewRenderer(out)
	lr.SetColorProfile(colorProfile(out, isTTY, o.color))

	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: newStyles(lr),
	}
}

func colorProfile(w io.Writer, isTTY bool, c ColorMode) termenv.Profile {
	switch c {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		return termenv.ANSI256
	}
	if !isTTY {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Mode returns the configured mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// EffectiveMode resolves auto to text.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the result writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the diagnostic writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to the result writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the result writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Errorf writes formatted text to the diagnostic writer.
func (r *Renderer) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.errOut, format, a...)
}

// Success prints a styled success line.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render(msg))
}

// Structured writes v as JSON or YAML according to the effective mode.
// It reports false in text mode so the caller can render its own layout.
func (r *Renderer) Structured(v any) (bool, error) {
	switch r.EffectiveMode() {
	case ModeJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case ModeYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}
