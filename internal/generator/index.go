package generator

import (
	"fmt"
	"strings"

	"docmark/internal/doc"
)

const (
	nbsp = "&nbsp;"
	// typeEnumSuffix marks enums whose constants share a declared type.
	typeEnumSuffix = " (typed)"
)

// IndexBuilder accumulates the navigation index of a page. Anchors follow the
// heading-id convention of common Markdown renderers and are disambiguated by
// counting how often each name has been seen during the rendering pass.
type IndexBuilder struct {
	buf         strings.Builder
	seen        map[string]int
	indentUnits int
}

// NewIndexBuilder returns a builder that offsets each nesting level by
// indentUnits non-breaking spaces.
func NewIndexBuilder(indentUnits int) *IndexBuilder {
	if indentUnits < 0 {
		indentUnits = 0
	}
	return &IndexBuilder{seen: make(map[string]int), indentUnits: indentUnits}
}

// Push appends one index entry for r at the given nesting level and returns
// the anchor it links to.
func (b *IndexBuilder) Push(r doc.Record, level int) string {
	anchor := b.anchor(r.Name)
	label := lineCollapser.Replace(Escape(indexLabel(r)))

	b.buf.WriteString("- ")
	if level > 0 {
		b.buf.WriteString(strings.Repeat(nbsp, level*b.indentUnits))
	}
	fmt.Fprintf(&b.buf, "[%s](#%s)\n", label, anchor)
	return anchor
}

// Len reports whether anything was pushed.
func (b *IndexBuilder) Len() int { return b.buf.Len() }

func (b *IndexBuilder) String() string { return b.buf.String() }

// Reserve counts name as already used, for headings that take an anchor
// without an index entry.
func (b *IndexBuilder) Reserve(name string) {
	b.seen[name]++
}

func (b *IndexBuilder) anchor(name string) string {
	base := Anchor(name)
	n := b.seen[name]
	b.seen[name] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

var anchorReplacer = strings.NewReplacer("_", "-", " ", "-")

// Anchor derives the heading anchor of a declaration name: lower case with
// underscores and spaces turned into hyphens.
func Anchor(name string) string {
	return anchorReplacer.Replace(strings.ToLower(name))
}

func indexLabel(r doc.Record) string {
	if strings.TrimSpace(r.Code) == "" {
		return r.Name
	}

	code := skipDirectives(r.Code)
	var label string
	switch r.Kind {
	case doc.KindVar:
		label = cutBefore(code, "=")
	case doc.KindFunc:
		label = afterKeyword(code)
	case doc.KindStruct:
		label = cutBefore(code, "{")
	case doc.KindTrait:
		label = "trait " + r.Name
	case doc.KindEnum:
		label = "enum " + r.Name
	case doc.KindTypeEnum:
		label = "enum " + r.Name + typeEnumSuffix
	case doc.KindTypeAlias:
		label = cutBefore(firstLine(code), "{")
	case doc.KindStrictTypeAlias:
		label = cutBefore(cutBefore(firstLine(code), ":"), "{")
	default:
		label = r.Name
	}
	return strings.TrimSpace(label)
}

// skipDirectives drops leading directive or annotation lines such as
// "//go:noinline" that precede the declaration keyword.
func skipDirectives(code string) string {
	for {
		trimmed := strings.TrimLeft(code, " \t\n")
		if !strings.HasPrefix(trimmed, "//") && !strings.HasPrefix(trimmed, "@") && !strings.HasPrefix(trimmed, "#") {
			return trimmed
		}
		nl := strings.IndexByte(trimmed, '\n')
		if nl < 0 {
			return ""
		}
		code = trimmed[nl+1:]
	}
}

// afterKeyword returns code past its leading keyword ("func", "fn"), after
// dropping a static marker in front of it.
func afterKeyword(code string) string {
	code = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(code), staticMarker))
	if i := strings.IndexAny(code, " \t("); i > 0 {
		return strings.TrimSpace(code[i:])
	}
	return code
}

func cutBefore(s, sep string) string {
	before, _, _ := strings.Cut(s, sep)
	return before
}

func firstLine(s string) string {
	return cutBefore(s, "\n")
}
