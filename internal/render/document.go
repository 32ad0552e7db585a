package render

import (
	"fmt"
	"sort"
	"strings"
)

// Style selects the Markdeep stylesheet linked from the document header.
type Style string

const (
	StyleDefault Style = "default"
	StyleJournal Style = "journal"
	StyleAPIDoc  Style = "apidoc"
	StyleSlate   Style = "slate"
	StyleNewsmag Style = "newsmag"
	StyleWebsite Style = "website"
	StyleLatex   Style = "latex"
	StyleDark    Style = "dark"
	StyleSlides  Style = "slides"
)

const styleURL = `<link rel="stylesheet" href="https://casual-effects.com/markdeep/latest/%s.css?">`

const markdeepFooter = `<!-- Markdeep: --><style class="fallback">body{visibility:hidden;white-space:pre;font-family:monospace}</style>` +
	`<script src="markdeep.min.js" charset="utf-8"></script>` +
	`<script src="https://morgan3d.github.io/markdeep/latest/markdeep.min.js" charset="utf-8"></script>` +
	`<script>window.alreadyProcessedMarkdeep||(document.body.style.visibility="visible")</script>`

var knownStyles = map[Style]struct{}{
	StyleDefault: {}, StyleJournal: {}, StyleAPIDoc: {}, StyleSlate: {}, StyleNewsmag: {},
	StyleWebsite: {}, StyleLatex: {}, StyleDark: {}, StyleSlides: {},
}

// ParseStyle validates a style name. The empty string means journal.
func ParseStyle(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return StyleJournal, nil
	}
	s := Style(name)
	if _, ok := knownStyles[s]; !ok {
		return "", fmt.Errorf("unknown style %q (want one of %s)", name, strings.Join(StyleNames(), ", "))
	}
	return s, nil
}

// StyleNames lists the accepted style names.
func StyleNames() []string {
	names := make([]string, 0, len(knownStyles))
	for s := range knownStyles {
		names = append(names, string(s))
	}
	sort.Strings(names)
	return names
}

// Header returns the Markdeep header for the style.
func (s Style) Header() string {
	if s == StyleDefault {
		return ""
	}
	return fmt.Sprintf(styleURL, s)
}

// Document wraps a rendered Markdown body in the Markdeep header and footer.
func Document(body []byte, style Style) []byte {
	header := style.Header()
	out := make([]byte, 0, len(header)+len(body)+len(markdeepFooter)+2)
	if header != "" {
		out = append(out, header...)
		out = append(out, '\n')
	}
	out = append(out, body...)
	if len(body) > 0 && body[len(body)-1] != '\n' {
		out = append(out, '\n')
	}
	out = append(out, markdeepFooter...)
	return out
}
