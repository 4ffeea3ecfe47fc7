package generator

import (
	"strings"
	"testing"

	"docmark/internal/doc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, Render(nil))
	assert.Empty(t, Render([]doc.Record{}))
}

func TestRender_Function(t *testing.T) {
	records := []doc.Record{{
		Name:    "Add",
		Kind:    doc.KindFunc,
		Code:    "fn Add(a: int, b: int): int",
		Context: []doc.Node{doc.Text("Returns the sum of a and b.", 0)},
	}}

	got := string(NewMarkdownGenerator(Options{CodeLang: "", IndexIndent: 4}).Render(records))

	want := strings.Join([]string{
		"## Index",
		"",
		"- [Functions](#functions)",
		"- [Add\\(a: int, b: int\\): int](#add)",
		"",
		"",
		"## Functions",
		"",
		"## Add",
		"",
		"```",
		"fn Add(a: int, b: int): int",
		"```",
		"",
		"Returns the sum of a and b\\.",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRender_TypeAliasWithoutBody(t *testing.T) {
	records := []doc.Record{{Name: "X", Kind: doc.KindTypeAlias, Code: "X = int"}}

	got := string(Render(records))

	assert.Contains(t, got, "- [X = int](#x)\n")
	assert.True(t, strings.HasSuffix(got, "## X\n\n```go\nX = int\n```"), got)
}

func TestRender_GroupOrder(t *testing.T) {
	records := []doc.Record{
		{Name: "Color", Kind: doc.KindTypeEnum, Code: "const (\n\tRed Color = iota\n)"},
		{Name: "Point", Kind: doc.KindStruct, Code: "type Point struct{}"},
		{Name: "Shape", Kind: doc.KindTrait, Code: "type Shape interface{}"},
		{Name: "Run", Kind: doc.KindFunc, Code: "func Run()"},
		{Name: "ID", Kind: doc.KindTypeAlias, Code: "type ID = string"},
		{Name: "Debug", Kind: doc.KindVar, Code: "var Debug bool"},
		{Name: "Celsius", Kind: doc.KindStrictTypeAlias, Code: "type Celsius float64"},
	}

	got := string(Render(records))

	order := []string{
		"## Variables", "## Debug",
		"## Type Aliases", "## ID",
		"## Functions", "## Run",
		"## Traits", "## Shape",
		"## Structs", "## Point", "## Celsius",
		"## Enums", "## Color",
	}
	last := -1
	for _, h := range order {
		i := strings.Index(got, "\n"+h+"\n")
		require.NotEqual(t, -1, i, "missing %s", h)
		assert.Greater(t, i, last, "%s out of order", h)
		last = i
	}
	assert.Contains(t, got, "- [Type Aliases](#type-aliases)\n")
}

func TestRender_DuplicateAnchors(t *testing.T) {
	records := []doc.Record{
		{Name: "Parse", Kind: doc.KindFunc, Code: "func Parse()"},
		{Name: "Parse", Kind: doc.KindFunc, Code: "func Parse2()"},
	}

	got := string(Render(records))

	first := strings.Index(got, "(#parse)")
	second := strings.Index(got, "(#parse-1)")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestRender_EscapesProseNotSignature(t *testing.T) {
	records := []doc.Record{{
		Name:    "Glob",
		Kind:    doc.KindFunc,
		Code:    "func Glob(p string) (m []string, err error) // *_[]()",
		Context: []doc.Node{doc.Text("Matches * and _ in [a](b).", 0)},
	}}

	got := string(Render(records))

	assert.Contains(t, got, "```go\nfunc Glob(p string) (m []string, err error) // *_[]()\n```")
	assert.Contains(t, got, `Matches \* and \_ in \[a\]\(b\)\.`)
}

func TestRender_AggregateWithMethods(t *testing.T) {
	records := []doc.Record{{
		Name: "Point",
		Kind: doc.KindStruct,
		Code: "type Point struct {\n\tX, Y int\n}",
		Meta: &doc.AggregateMeta{
			Traits: []string{"fmt.Stringer"},
			Methods: []doc.Record{
				{Name: "String", Kind: doc.KindFunc, Code: "func (p Point) String() string"},
				{Name: "NewPoint", Kind: doc.KindFunc, Code: "func NewPoint(x, y int) Point", Static: true},
			},
		},
	}}

	got := string(Render(records))

	assert.Contains(t, got, "**Implemented Traits**\n\n- fmt\\.Stringer\n")
	assert.Contains(t, got, "- &nbsp;&nbsp;&nbsp;&nbsp;[NewPoint\\(x, y int\\) Point](#newpoint)\n")
	assert.Contains(t, got, "### NewPoint\n")
	assert.Less(t, strings.Index(got, "### NewPoint"), strings.Index(got, "### String"))
	assert.Less(t, strings.Index(got, "(#newpoint)"), strings.Index(got, "(#string)"))
}

func TestRender_StaticMarkerPrefix(t *testing.T) {
	records := []doc.Record{{
		Name: "Vec",
		Kind: doc.KindStrictTypeAlias,
		Code: "Vec: list",
		Meta: &doc.AggregateMeta{Methods: []doc.Record{
			{Name: "Len", Kind: doc.KindFunc, Code: "fn Len(self): int"},
			{Name: "Empty", Kind: doc.KindFunc, Code: "static fn Empty(): Vec"},
		}},
	}}

	got := string(Render(records))
	assert.Less(t, strings.Index(got, "### Empty"), strings.Index(got, "### Len"))
	assert.NotContains(t, got, "Implemented Traits")
}
