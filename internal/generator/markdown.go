package generator

import (
	"strings"

	"docmark/internal/doc"
)

// Options tunes page rendering.
type Options struct {
	// CodeLang is the info string of fenced signature blocks.
	CodeLang string
	// IndexIndent is the number of non-breaking spaces per index nesting level.
	IndexIndent int
}

func DefaultOptions() Options {
	return Options{CodeLang: "go", IndexIndent: 4}
}

const staticMarker = "static "

// indexTitle heads the index section and owns the first anchor of its name.
const indexTitle = "Index"

type section struct {
	title string
	kinds []doc.Kind
}

// sections fixes the emission order of declaration groups.
var sections = []section{
	{title: "Variables", kinds: []doc.Kind{doc.KindVar}},
	{title: "Type Aliases", kinds: []doc.Kind{doc.KindTypeAlias}},
	{title: "Functions", kinds: []doc.Kind{doc.KindFunc}},
	{title: "Traits", kinds: []doc.Kind{doc.KindTrait}},
	{title: "Structs", kinds: []doc.Kind{doc.KindStruct, doc.KindStrictTypeAlias}},
	{title: "Enums", kinds: []doc.Kind{doc.KindEnum, doc.KindTypeEnum}},
}

func (s section) has(k doc.Kind) bool {
	for _, kind := range s.kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// MarkdownGenerator produces one Markdown page from documentation records.
type MarkdownGenerator struct {
	opts Options
}

func NewMarkdownGenerator(opts Options) *MarkdownGenerator {
	if opts.CodeLang == "" && opts.IndexIndent == 0 {
		opts = DefaultOptions()
	}
	return &MarkdownGenerator{opts: opts}
}

// Render renders records with the default options.
func Render(records []doc.Record) []byte {
	return NewMarkdownGenerator(DefaultOptions()).Render(records)
}

// Render builds the page: the index first, then every section in fixed group
// order. Records keep the order they were supplied in within each group.
// Nothing to document yields an empty page.
func (g *MarkdownGenerator) Render(records []doc.Record) []byte {
	idx := NewIndexBuilder(g.opts.IndexIndent)
	idx.Reserve(indexTitle)
	var body strings.Builder

	for _, sec := range sections {
		var members []doc.Record
		for _, r := range records {
			if sec.has(r.Kind) {
				members = append(members, r)
			}
		}
		if len(members) == 0 {
			continue
		}

		idx.Push(doc.Record{Name: sec.title}, 0)
		body.WriteString("## " + sec.title + "\n\n")
		for _, r := range members {
			g.renderRecord(&body, idx, r, 0)
		}
	}

	if idx.Len() == 0 {
		return nil
	}

	var page strings.Builder
	page.WriteString("## " + indexTitle + "\n\n")
	page.WriteString(idx.String())
	page.WriteString("\n\n")
	page.WriteString(body.String())
	return []byte(strings.TrimSpace(page.String()))
}

func (g *MarkdownGenerator) renderRecord(body *strings.Builder, idx *IndexBuilder, r doc.Record, level int) {
	idx.Push(r, level)

	agg, ok := r.Aggregate()
	if !ok {
		g.renderDeclaration(body, r.Name, r.Code, level)
		renderContext(body, r)
		return
	}

	g.renderDeclaration(body, agg.AggregateName(), agg.AggregateCode(), level)
	renderContext(body, r)
	if meta := agg.AggregateMeta(); meta != nil {
		g.renderAggregate(body, idx, meta, level+1)
	}
}

// renderDeclaration writes the heading and the fenced signature.
func (g *MarkdownGenerator) renderDeclaration(body *strings.Builder, name, code string, level int) {
	heading := "## "
	if level > 0 {
		heading = "### "
	}
	body.WriteString(heading + Escape(name) + "\n\n")

	if strings.TrimSpace(code) != "" {
		body.WriteString(fence + g.opts.CodeLang + "\n")
		body.WriteString(strings.TrimRight(code, "\n"))
		body.WriteString("\n" + fence + "\n\n")
	}
}

func renderContext(body *strings.Builder, r doc.Record) {
	if text := gendoc(r); strings.TrimSpace(text) != "" {
		body.WriteString(strings.TrimRight(text, "\n"))
		body.WriteString("\n\n")
	}
}

func (g *MarkdownGenerator) renderAggregate(body *strings.Builder, idx *IndexBuilder, meta *doc.AggregateMeta, level int) {
	if len(meta.Traits) > 0 {
		body.WriteString("**Implemented Traits**\n\n")
		for _, t := range meta.Traits {
			body.WriteString("- " + Escape(t) + "\n")
		}
		body.WriteString("\n")
	}

	for _, m := range meta.Methods {
		if isStatic(m) {
			g.renderRecord(body, idx, m, level)
		}
	}
	for _, m := range meta.Methods {
		if !isStatic(m) {
			g.renderRecord(body, idx, m, level)
		}
	}
}

// isStatic reports whether m belongs to the static-first method group.
func isStatic(m doc.Record) bool {
	return m.Static || strings.HasPrefix(skipDirectives(m.Code), staticMarker)
}
