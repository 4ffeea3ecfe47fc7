// Package comment turns raw declaration comments into context nodes.
package comment

import (
	"strings"

	"docmark/internal/doc"
)

type line struct {
	content string
	indent  int
}

func (l line) blank() bool {
	return strings.TrimSpace(l.content) == ""
}

// bullet reports whether the normalized content opens a list item.
func (l line) bullet() bool {
	return strings.HasPrefix(l.content, "-")
}

// Build parses the comment text of one declaration into an ordered node sequence.
func Build(raw string) []doc.Node {
	lines := split(raw)
	var nodes []doc.Node

	for i := 0; i < len(lines); {
		l := lines[i]
		switch {
		case l.blank():
			nodes = append(nodes, doc.Separator())
			for i < len(lines) && lines[i].blank() {
				i++
			}
		case l.bullet():
			var item string
			item, i = listItem(lines, i)
			nodes = append(nodes, doc.ListItem(item, l.indent))
		default:
			var text string
			text, i = textRun(lines, i)
			nodes = append(nodes, doc.Text(text, l.indent))
		}
	}
	return nodes
}

func split(raw string) []line {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var lines []line
	for _, s := range strings.Split(raw, "\n") {
		content, indent := Normalize(s, false)
		lines = append(lines, line{content: content, indent: indent})
	}

	start, end := 0, len(lines)
	for start < end && lines[start].blank() {
		start++
	}
	for end > start && lines[end-1].blank() {
		end--
	}
	return lines[start:end]
}

// listItem consumes the bullet at lines[i] plus any comma-continued lines and
// returns the merged item text with the index of the first unconsumed line.
func listItem(lines []line, i int) (string, int) {
	text := strings.Trim(strings.TrimPrefix(lines[i].content, "-"), " ")
	last := text
	i++

	for strings.HasSuffix(last, ",") && i < len(lines) {
		next := lines[i]
		if next.blank() || next.bullet() {
			break
		}
		last = strings.TrimSpace(next.content)
		text += " " + last
		i++
	}
	return text, i
}

// textRun consumes a prose line. Unindented lines absorb every following
// unindented, non-blank line, even one starting with "-"; indented lines
// stand alone.
func textRun(lines []line, i int) (string, int) {
	first := lines[i]
	i++
	if first.indent > 0 {
		return first.content, i
	}

	parts := []string{strings.Trim(first.content, " ")}
	for i < len(lines) {
		next := lines[i]
		if next.indent != 0 || next.blank() {
			break
		}
		parts = append(parts, strings.Trim(next.content, " "))
		i++
	}
	return strings.Join(parts, " "), i
}
