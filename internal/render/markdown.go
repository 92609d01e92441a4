// Package render turns review feedback into terminal output.
package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Styles accepted by Markdown. "notty" produces plain text without escapes.
var Styles = []string{"auto", "dark", "light", "notty"}

// Markdown renders feedback as styled terminal markdown wrapped at width.
// If rendering fails the text is returned unchanged.
func Markdown(text, style string, width int) string {
	if width <= 0 {
		width = 80
	}

	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
