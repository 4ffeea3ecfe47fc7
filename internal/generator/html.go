package generator

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// headingIDs hands goldmark the same anchors the index links to.
type headingIDs struct {
	seen map[string]int
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{seen: make(map[string]int)}
}

func (h *headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	name := unescapeMarkdown(strings.TrimSpace(string(value)))
	n := h.seen[name]
	h.seen[name] = n + 1
	if n == 0 {
		return []byte(Anchor(name))
	}
	return []byte(fmt.Sprintf("%s-%d", Anchor(name), n))
}

func (h *headingIDs) Put(value []byte) {
	h.seen[string(value)]++
}

// unescapeMarkdown reverses the backslash escapes of Escape so heading ids are
// derived from the declaration name rather than its escaped form.
func unescapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			i++
		}
		b.WriteByte(s[i])
	}
	return html.UnescapeString(b.String())
}

func isASCIIPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}

// RenderHTML converts a rendered Markdown page into a standalone HTML document.
func RenderHTML(title string, page []byte) ([]byte, error) {
	var body bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	if err := markdownEngine.Convert(page, &body, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(title))
	out.WriteString("</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}
