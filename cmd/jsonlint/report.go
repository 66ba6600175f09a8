package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

type outputFormat uint8

const (
	outputText outputFormat = iota
	outputJSON
)

func parseOutputFormat(name string) (outputFormat, error) {
	switch name {
	case "text":
		return outputText, nil
	case "json":
		return outputJSON, nil
	default:
		return outputText, fmt.Errorf("unknown output format %q", name)
	}
}

type colorMode uint8

const (
	colorAuto colorMode = iota
	colorAlways
	colorNever
)

func parseColorMode(name string) (colorMode, error) {
	switch name {
	case "auto":
		return colorAuto, nil
	case "always":
		return colorAlways, nil
	case "never":
		return colorNever, nil
	default:
		return colorAuto, fmt.Errorf("unknown color mode %q", name)
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type styles struct {
	ok    lipgloss.Style
	fail  lipgloss.Style
	path  lipgloss.Style
	code  lipgloss.Style
	faint lipgloss.Style
}

func newStyles(w io.Writer, mode colorMode) styles {
	r := lipgloss.NewRenderer(w)
	switch {
	case mode == colorNever, mode == colorAuto && !isTerminal(w):
		r.SetColorProfile(termenv.Ascii)
	case mode == colorAlways:
		r.SetColorProfile(termenv.ANSI256)
	}
	return styles{
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		path:  r.NewStyle().Foreground(lipgloss.Color("6")),
		code:  r.NewStyle().Foreground(lipgloss.Color("3")),
		faint: r.NewStyle().Faint(true),
	}
}

type reporter struct {
	w      io.Writer
	format outputFormat
	styles styles
}

func newReporter(w io.Writer, format outputFormat, mode colorMode) *reporter {
	return &reporter{w: w, format: format, styles: newStyles(w, mode)}
}

func (r *reporter) write(results []result) error {
	if r.format == outputJSON {
		return r.writeJSON(results)
	}
	return r.writeText(results)
}

const rootPath = "(root)"

func displayPath(p string) string {
	if p == "" {
		return rootPath
	}
	return p
}

func (r *reporter) writeText(results []result) error {
	var b strings.Builder
	valid := 0
	for _, res := range results {
		switch {
		case res.err != nil:
			fmt.Fprintf(&b, "%s %s: %v\n", r.styles.fail.Render("ERROR"), res.document, res.err)
		case len(res.violations) == 0:
			valid++
			fmt.Fprintf(&b, "%s    %s\n", r.styles.ok.Render("OK"), res.document)
		default:
			fmt.Fprintf(&b, "%s  %s\n", r.styles.fail.Render("FAIL"), res.document)
			width := 0
			for _, v := range res.violations {
				width = max(width, runewidth.StringWidth(displayPath(v.Path)))
			}
			for _, v := range res.violations {
				path := runewidth.FillRight(displayPath(v.Path), width)
				fmt.Fprintf(&b, "      %s  %s %s", r.styles.path.Render(path), r.styles.code.Render(v.Code), v.Message)
				if len(v.Expected) > 0 {
					b.WriteString(r.styles.faint.Render(" (expected: " + strings.Join(v.Expected, ", ") + ")"))
				}
				if v.Actual != "" {
					b.WriteString(r.styles.faint.Render(" (actual: " + v.Actual + ")"))
				}
				b.WriteByte('\n')
			}
		}
	}
	fmt.Fprintf(&b, "%d of %d documents valid\n", valid, len(results))
	_, err := io.WriteString(r.w, b.String())
	return err
}

type jsonViolation struct {
	Code     string   `json:"code"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Actual   string   `json:"actual,omitempty"`
}

type jsonResult struct {
	Document   string          `json:"document"`
	Valid      bool            `json:"valid"`
	Error      string          `json:"error,omitempty"`
	Violations []jsonViolation `json:"violations,omitempty"`
}

func (r *reporter) writeJSON(results []result) error {
	out := make([]jsonResult, len(results))
	for i, res := range results {
		jr := jsonResult{Document: res.document, Valid: res.valid()}
		if res.err != nil {
			jr.Error = res.err.Error()
		}
		for _, v := range res.violations {
			jr.Violations = append(jr.Violations, jsonViolation{
				Code:     v.Code,
				Path:     v.Path,
				Message:  v.Message,
				Expected: v.Expected,
				Actual:   v.Actual,
			})
		}
		out[i] = jr
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
