package generator

import (
	"strings"

	"docmark/internal/doc"
)

const fence = "```"

// bodyRenderer holds the state of one gendoc pass. groupIndent is zero outside
// a fenced code block and the opening indentation level inside one.
type bodyRenderer struct {
	sb               strings.Builder
	first            bool
	lastIndent       int
	lastWasListItem  bool
	lastWasSeparator bool
	groupIndent      int
}

// gendoc renders the comment body of r.
func gendoc(r doc.Record) string {
	br := bodyRenderer{first: true}
	for _, n := range r.Context {
		switch n.Kind {
		case doc.NodeSeparator:
			br.separator()
		case doc.NodeText:
			br.text(n)
		case doc.NodeListItem:
			br.listItem(n)
		default:
			// Unknown kinds are dropped rather than aborting the page.
			continue
		}
		br.first = false
	}
	if br.groupIndent > 0 {
		br.closeGroup()
	}
	return br.sb.String()
}

func (br *bodyRenderer) separator() {
	if br.groupIndent > 0 {
		br.sb.WriteString("\n")
	} else {
		br.sb.WriteString("\n\n")
		br.lastIndent = 0
	}
	br.lastWasSeparator = true
	br.lastWasListItem = false
}

func (br *bodyRenderer) text(n doc.Node) {
	if br.groupIndent == 0 && !br.first && !br.lastWasSeparator {
		switch {
		case n.Indent != br.lastIndent && !br.lastWasListItem:
			br.sb.WriteString("<br>\n")
		case br.lastWasListItem:
			br.sb.WriteString("\n\n")
		default:
			br.sb.WriteString(" ")
		}
	}
	br.write(n, "")
	br.lastWasListItem = false
}

func (br *bodyRenderer) listItem(n doc.Node) {
	if br.groupIndent == 0 && !br.first && !br.lastWasSeparator {
		if br.lastWasListItem {
			br.sb.WriteString("\n")
		} else {
			br.sb.WriteString("\n\n")
		}
	}
	br.write(n, "- ")
	br.lastWasListItem = true
}

// write applies the group transitions for n and then emits its text, escaped
// as prose outside a group and verbatim inside one.
func (br *bodyRenderer) write(n doc.Node, prefix string) {
	switch {
	case br.groupIndent == 0 && n.Indent > 0:
		br.sb.WriteString(fence + "\n")
		br.groupIndent = n.Indent
	case br.groupIndent > 0 && n.Indent < br.groupIndent:
		br.closeGroup()
		br.sb.WriteString("\n")
	case br.groupIndent > 0:
		br.sb.WriteString("\n")
		br.sb.WriteString(strings.Repeat("\t", n.Indent-br.groupIndent))
	}

	br.sb.WriteString(prefix)
	if br.groupIndent > 0 {
		br.sb.WriteString(n.Text)
	} else {
		br.sb.WriteString(Escape(n.Text))
	}
	br.lastIndent = n.Indent
	br.lastWasSeparator = false
}

func (br *bodyRenderer) closeGroup() {
	if !br.lastWasSeparator {
		br.sb.WriteString("\n")
	}
	br.sb.WriteString(fence + "\n")
	br.groupIndent = 0
}
