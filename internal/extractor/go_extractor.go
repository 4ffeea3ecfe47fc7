package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"docmark/internal/comment"
	"docmark/internal/doc"

	sitter "github.com/smacker/go-tree-sitter"
)

// directiveRe matches tool directives such as //go:noinline or //lint:ignore.
var directiveRe = regexp.MustCompile(`^//(line |extern |export |[a-z0-9]+:[a-z0-9])`)

type goWalker struct {
	src  []byte
	path string
	file File
}

func (w *goWalker) walk(root *sitter.Node) *File {
	w.file.Path = w.path
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		switch node.Type() {
		case "package_clause":
			if id := firstChildOfType(node, "package_identifier"); id != nil {
				w.file.Package = w.content(id)
			}
		case "function_declaration", "method_declaration":
			w.function(node)
		case "type_declaration":
			w.typeDecl(node)
		case "const_declaration":
			w.constDecl(node)
		case "var_declaration":
			w.valueDecl(node, "var")
		}
	}
	return &w.file
}

func (w *goWalker) emit(node *sitter.Node, u Unit) {
	u.File = w.path
	u.Line = int(node.StartPoint().Row + 1)
	w.file.Units = append(w.file.Units, u)
}

func (w *goWalker) function(node *sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil || !exported(w.content(nameNode)) {
		return
	}

	end := node.EndByte()
	if body := node.ChildByFieldName("body"); body != nil {
		end = body.StartByte()
	}
	docText, directives := w.docComment(node)
	code := strings.TrimSpace(w.strip(node, node.StartByte(), end))
	if len(directives) > 0 {
		code = strings.Join(directives, "\n") + "\n" + code
	}

	u := Unit{Record: doc.Record{
		Name:    w.content(nameNode),
		Kind:    doc.KindFunc,
		Code:    code,
		Context: comment.Build(docText),
	}}
	if recv := node.ChildByFieldName("receiver"); recv != nil {
		u.Receiver = w.firstParamType(recv)
	} else if result := node.ChildByFieldName("result"); result != nil {
		if result.Type() == "parameter_list" {
			u.ResultType = w.firstParamType(result)
		} else {
			u.ResultType = baseTypeName(w.content(result))
		}
	}
	w.emit(node, u)
}

func (w *goWalker) typeDecl(decl *sitter.Node) {
	grouped := isGrouped(decl)
	for _, spec := range specsOf(decl, "type_spec", "type_alias") {
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil || !exported(w.content(nameNode)) {
			continue
		}

		var code, docText string
		if grouped {
			code = "type " + dedent(w.strip(spec, spec.StartByte(), spec.EndByte()))
			docText, _ = w.docComment(spec)
		} else {
			code = w.strip(decl, decl.StartByte(), decl.EndByte())
			docText, _ = w.docComment(decl)
		}

		u := Unit{Record: doc.Record{
			Name:    w.content(nameNode),
			Code:    strings.TrimSpace(code),
			Context: comment.Build(docText),
		}}
		typeNode := spec.ChildByFieldName("type")
		switch {
		case spec.Type() == "type_alias" || firstChildOfType(spec, "=") != nil:
			u.Record.Kind = doc.KindTypeAlias
		case typeNode != nil && typeNode.Type() == "struct_type":
			u.Record.Kind = doc.KindStruct
		case typeNode != nil && typeNode.Type() == "interface_type":
			u.Record.Kind = doc.KindTrait
			u.MethodNames, u.Embeds = w.interfaceElems(typeNode)
		default:
			u.Record.Kind = doc.KindStrictTypeAlias
		}
		w.emit(spec, u)
	}
}

func (w *goWalker) interfaceElems(iface *sitter.Node) (methods, embeds []string) {
	for i := 0; i < int(iface.NamedChildCount()); i++ {
		elem := iface.NamedChild(i)
		switch elem.Type() {
		case "method_elem", "method_spec":
			if name := elem.ChildByFieldName("name"); name != nil {
				methods = append(methods, w.content(name))
			}
		case "type_elem", "interface_type_name", "type_identifier", "qualified_type":
			text := strings.TrimSpace(w.content(elem))
			if !strings.ContainsAny(text, "|~") {
				embeds = append(embeds, text)
			}
		case "method_spec_list":
			m, e := w.interfaceElems(elem)
			methods = append(methods, m...)
			embeds = append(embeds, e...)
		}
	}
	return methods, embeds
}

// constDecl turns iota blocks into enums and everything else into a var group.
func (w *goWalker) constDecl(decl *sitter.Node) {
	if !w.usesIota(decl) {
		w.valueDecl(decl, "const")
		return
	}

	specs := specsOf(decl, "const_spec")
	var first string
	for _, spec := range specs {
		if name := w.exportedName(spec); name != "" {
			first = name
			break
		}
	}
	if first == "" {
		return
	}

	docText, _ := w.docComment(decl)
	u := Unit{Record: doc.Record{
		Name:    first,
		Kind:    doc.KindEnum,
		Code:    strings.TrimSpace(w.strip(decl, decl.StartByte(), decl.EndByte())),
		Context: comment.Build(docText),
	}}
	if typ := specs[0].ChildByFieldName("type"); typ != nil && exported(baseTypeName(w.content(typ))) {
		u.Record.Name = baseTypeName(w.content(typ))
		u.Record.Kind = doc.KindTypeEnum
	}
	w.emit(decl, u)
}

// valueDecl emits one Var record per declaration holding only its exported specs.
func (w *goWalker) valueDecl(decl *sitter.Node, keyword string) {
	var specs []*sitter.Node
	var name string
	for _, spec := range specsOf(decl, keyword+"_spec") {
		if n := w.exportedName(spec); n != "" {
			if name == "" {
				name = n
			}
			specs = append(specs, spec)
		}
	}
	if len(specs) == 0 {
		return
	}

	docText, _ := w.docComment(decl)
	grouped := isGrouped(decl)
	var code string
	switch {
	case !grouped:
		code = w.strip(decl, decl.StartByte(), decl.EndByte())
	case len(specs) == 1:
		code = keyword + " " + dedent(w.strip(specs[0], specs[0].StartByte(), specs[0].EndByte()))
		if strings.TrimSpace(docText) == "" {
			docText, _ = w.docComment(specs[0])
		}
	default:
		var sb strings.Builder
		sb.WriteString(keyword + " (\n")
		for _, spec := range specs {
			sb.WriteString("\t" + dedent(w.strip(spec, spec.StartByte(), spec.EndByte())) + "\n")
		}
		sb.WriteString(")")
		code = sb.String()
	}

	w.emit(decl, Unit{Record: doc.Record{
		Name:    name,
		Kind:    doc.KindVar,
		Code:    strings.TrimSpace(code),
		Context: comment.Build(docText),
	}})
}

// exportedName returns the first exported identifier declared by a spec.
func (w *goWalker) exportedName(spec *sitter.Node) string {
	for _, id := range childrenOfType(spec, "identifier") {
		if name := w.content(id); exported(name) {
			return name
		}
	}
	return ""
}

func (w *goWalker) firstParamType(list *sitter.Node) string {
	for i := 0; i < int(list.NamedChildCount()); i++ {
		p := list.NamedChild(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		if t := p.ChildByFieldName("type"); t != nil {
			return baseTypeName(w.content(t))
		}
	}
	return ""
}

// docComment collects the comment block directly above node. Directive lines
// are returned separately so they can stay with the signature.
func (w *goWalker) docComment(node *sitter.Node) (string, []string) {
	var blocks []string
	current := node
	for {
		prev := current.PrevSibling()
		if prev == nil || prev.Type() != "comment" {
			break
		}
		if current.StartPoint().Row-prev.EndPoint().Row > 1 {
			break
		}
		// A trailing comment belongs to the code on its own line.
		if before := prev.PrevSibling(); before != nil && before.EndPoint().Row == prev.StartPoint().Row {
			break
		}
		blocks = append([]string{w.content(prev)}, blocks...)
		current = prev
	}

	var lines, directives []string
	for _, block := range blocks {
		for _, l := range commentLines(block) {
			if directiveRe.MatchString(l) {
				directives = append(directives, l)
				continue
			}
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n"), directives
}

// commentLines re-expresses a comment as "//" lines.
func commentLines(block string) []string {
	if !strings.HasPrefix(block, "/*") {
		return []string{strings.TrimRight(block, " \t\r")}
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(block, "/*"), "*/")
	var out []string
	for _, l := range strings.Split(inner, "\n") {
		out = append(out, "//"+strings.TrimRight(l, " \t\r"))
	}
	return out
}

// removedMark flags the places where comments were cut out.
const removedMark = "\x00"

// strip returns src[start:end] with every comment inside node removed. Lines
// left empty by the removal are dropped; blank lines of the source are kept.
func (w *goWalker) strip(node *sitter.Node, start, end uint32) string {
	var sb strings.Builder
	pos := start
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n.StartByte() >= end || n.EndByte() <= pos {
			return
		}
		if n.Type() == "comment" {
			if n.StartByte() > pos {
				sb.Write(w.src[pos:n.StartByte()])
			}
			sb.WriteString(removedMark)
			pos = n.EndByte()
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(node)
	if pos < end {
		sb.Write(w.src[pos:end])
	}

	var out []string
	for _, l := range strings.Split(sb.String(), "\n") {
		if strings.Contains(l, removedMark) {
			l = strings.ReplaceAll(l, removedMark, "")
			if strings.TrimSpace(l) == "" {
				continue
			}
		}
		out = append(out, strings.TrimRight(l, " \t"))
	}
	return strings.Join(out, "\n")
}

func (w *goWalker) content(n *sitter.Node) string {
	return n.Content(w.src)
}

// dedent removes the tab indentation shared by every line after the first,
// which is what a spec nested in a parenthesised group carries.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	common := -1
	for _, l := range lines[1:] {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, "\t"))
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return s
	}
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) >= common {
			lines[i] = lines[i][common:]
		}
	}
	return strings.Join(lines, "\n")
}

// baseTypeName reduces "*pkg.List[T]" style type text to "List"; qualified
// names from other packages are returned untouched so they never match.
func baseTypeName(t string) string {
	t = strings.TrimSpace(t)
	t = strings.TrimLeft(t, "*")
	if i := strings.IndexByte(t, '['); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

func exported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func firstChildOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

func childrenOfType(n *sitter.Node, typ string) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == typ {
			out = append(out, c)
		}
	}
	return out
}

// specsOf returns the spec children of a declaration, looking through the
// *_spec_list wrapper newer grammar versions put around parenthesised groups.
func specsOf(decl *sitter.Node, types ...string) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		c := decl.NamedChild(i)
		if strings.HasSuffix(c.Type(), "_spec_list") {
			out = append(out, specsOf(c, types...)...)
			continue
		}
		for _, t := range types {
			if c.Type() == t {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func isGrouped(decl *sitter.Node) bool {
	if firstChildOfType(decl, "(") != nil {
		return true
	}
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		if c := decl.NamedChild(i); strings.HasSuffix(c.Type(), "_spec_list") {
			return true
		}
	}
	return false
}

func (w *goWalker) usesIota(n *sitter.Node) bool {
	if n.Type() == "iota" || (n.Type() == "identifier" && w.content(n) == "iota") {
		return true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if w.usesIota(n.Child(i)) {
			return true
		}
	}
	return false
}
