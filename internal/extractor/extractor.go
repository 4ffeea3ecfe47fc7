package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// ErrSyntax is returned for source files the parser could not read cleanly.
var ErrSyntax = errors.New("syntax error")

// Extractor parses source files and collects their exported declarations.
type Extractor struct {
	lang     *sitter.Language
	langName string
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	switch lang {
	case "go":
		return &Extractor{lang: golang.GetLanguage(), langName: lang}, nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// ExtractFromFile reads and extracts a single source file.
func (e *Extractor) ExtractFromFile(ctx context.Context, path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return e.Extract(ctx, path, src)
}

// Extract parses src and returns one Unit per exported declaration in source order.
func (e *Extractor) Extract(ctx context.Context, path string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			p := bad.StartPoint()
			return nil, fmt.Errorf("%w in %s:%d:%d", ErrSyntax, path, p.Row+1, p.Column+1)
		}
		return nil, fmt.Errorf("%w in %s", ErrSyntax, path)
	}

	w := &goWalker{src: src, path: path}
	return w.walk(root), nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && (c.HasError() || c.IsMissing()) {
			if bad := firstError(c); bad != nil {
				return bad
			}
		}
	}
	return nil
}
