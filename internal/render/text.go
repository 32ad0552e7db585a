package render

import "strings"

// docMarkdown normalises a docstring: the first line is trimmed on its own
// and the remaining lines lose their common indentation.
func docMarkdown(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	first, rest, found := strings.Cut(trimmed, "\n")
	if !found {
		return first
	}
	rest = dedentMarkdown(rest)
	if strings.TrimSpace(first) == "" {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(first + "\n" + rest)
}

// dedentMarkdown removes the indentation shared by every non-blank line.
func dedentMarkdown(src string) string {
	lines := strings.Split(src, "\n")
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespace(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return src
	}
	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			count++
			continue
		}
		break
	}
	return count
}
