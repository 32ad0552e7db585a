package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// terminalWidth wraps --show output; the document body is not wrapped.
const terminalWidth = 100

// showMarkdown previews a rendered body in the terminal. Anchor tags only
// make sense in the HTML document, so they are dropped first.
func showMarkdown(w io.Writer, body []byte, theme string) error {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(terminalWidth)}
	if theme == "" || theme == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(theme))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}
	out, err := renderer.Render(stripAnchors(string(body)))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func stripAnchors(md string) string {
	lines := strings.Split(md, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, `<a name="`) && strings.HasSuffix(line, `"></a>`) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
