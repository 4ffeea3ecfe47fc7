package generator

import (
	"testing"

	"docmark/internal/doc"

	"github.com/stretchr/testify/assert"
)

func TestAnchor(t *testing.T) {
	assert.Equal(t, "parse", Anchor("Parse"))
	assert.Equal(t, "max-size", Anchor("MAX_SIZE"))
	assert.Equal(t, "type-aliases", Anchor("Type Aliases"))
}

func TestIndexBuilder_DuplicateNames(t *testing.T) {
	b := NewIndexBuilder(4)

	first := b.Push(doc.Record{Name: "Parse", Kind: doc.KindFunc, Code: "func Parse()"}, 0)
	second := b.Push(doc.Record{Name: "Parse", Kind: doc.KindFunc, Code: "func (p *Parser) Parse()"}, 1)
	third := b.Push(doc.Record{Name: "Parse", Kind: doc.KindFunc, Code: "func (l *Lexer) Parse()"}, 1)

	assert.Equal(t, "parse", first)
	assert.Equal(t, "parse-1", second)
	assert.Equal(t, "parse-2", third)
	assert.Contains(t, b.String(), "(#parse)\n")
	assert.Contains(t, b.String(), "(#parse-1)\n")
}

func TestIndexBuilder_Reserve(t *testing.T) {
	b := NewIndexBuilder(4)
	b.Reserve("Index")

	assert.Equal(t, "index-1", b.Push(doc.Record{Name: "Index", Kind: doc.KindStruct, Code: "type Index struct{}"}, 0))
	assert.Equal(t, "other", b.Push(doc.Record{Name: "Other", Kind: doc.KindStruct, Code: "type Other struct{}"}, 0))
}

func TestIndexBuilder_NestingIndent(t *testing.T) {
	b := NewIndexBuilder(2)
	b.Push(doc.Record{Name: "Point", Kind: doc.KindStruct, Code: "type Point struct {\n\tX int\n}"}, 0)
	b.Push(doc.Record{Name: "Move", Kind: doc.KindFunc, Code: "func (p *Point) Move()"}, 1)

	assert.Equal(t,
		"- [type Point struct](#point)\n"+
			"- &nbsp;&nbsp;[\\(p \\*Point\\) Move\\(\\)](#move)\n",
		b.String())
}

func TestIndexLabel(t *testing.T) {
	cases := []struct {
		name   string
		record doc.Record
		want   string
	}{
		{
			name:   "synthetic header",
			record: doc.Record{Name: "Functions"},
			want:   "Functions",
		},
		{
			name:   "var up to assignment",
			record: doc.Record{Name: "Version", Kind: doc.KindVar, Code: `var Version = "1.0"`},
			want:   "var Version",
		},
		{
			name:   "var without assignment",
			record: doc.Record{Name: "Out", Kind: doc.KindVar, Code: "var Out io.Writer"},
			want:   "var Out io.Writer",
		},
		{
			name:   "func after keyword",
			record: doc.Record{Name: "Add", Kind: doc.KindFunc, Code: "fn Add(a: int, b: int): int"},
			want:   "Add(a: int, b: int): int",
		},
		{
			name:   "func skips directives",
			record: doc.Record{Name: "Tick", Kind: doc.KindFunc, Code: "//go:noinline\nfunc Tick() int64"},
			want:   "Tick() int64",
		},
		{
			name:   "static func drops marker and keyword",
			record: doc.Record{Name: "Empty", Kind: doc.KindFunc, Code: "static fn Empty(): Vec"},
			want:   "Empty(): Vec",
		},
		{
			name:   "struct up to body",
			record: doc.Record{Name: "Point", Kind: doc.KindStruct, Code: "type Point struct {\n\tX, Y int\n}"},
			want:   "type Point struct",
		},
		{
			name:   "trait",
			record: doc.Record{Name: "Shape", Kind: doc.KindTrait, Code: "type Shape interface {\n\tArea() float64\n}"},
			want:   "trait Shape",
		},
		{
			name:   "enum",
			record: doc.Record{Name: "Red", Kind: doc.KindEnum, Code: "const (\n\tRed = iota\n)"},
			want:   "enum Red",
		},
		{
			name:   "typed enum",
			record: doc.Record{Name: "Color", Kind: doc.KindTypeEnum, Code: "const (\n\tRed Color = iota\n)"},
			want:   "enum Color (typed)",
		},
		{
			name:   "type alias",
			record: doc.Record{Name: "X", Kind: doc.KindTypeAlias, Code: "X = int"},
			want:   "X = int",
		},
		{
			name:   "strict alias up to colon",
			record: doc.Record{Name: "Meters", Kind: doc.KindStrictTypeAlias, Code: "Meters: float"},
			want:   "Meters",
		},
		{
			name:   "strict alias without colon",
			record: doc.Record{Name: "Celsius", Kind: doc.KindStrictTypeAlias, Code: "type Celsius float64"},
			want:   "type Celsius float64",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, indexLabel(c.record))
		})
	}
}

func TestIndexBuilder_LabelIsSingleLine(t *testing.T) {
	b := NewIndexBuilder(4)
	b.Push(doc.Record{Name: "A", Kind: doc.KindVar, Code: "var (\n\tA = 1\n\tB = 2\n)"}, 0)
	assert.Equal(t, "- [var \\(  A](#a)\n", b.String())
}
