package doc

import "fmt"

// NodeKind discriminates Node.
type NodeKind int

const (
	NodeSeparator NodeKind = iota
	NodeText
	NodeListItem
)

func (k NodeKind) String() string {
	switch k {
	case NodeSeparator:
		return "separator"
	case NodeText:
		return "text"
	case NodeListItem:
		return "list_item"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// MarshalText encodes the kind by name so cached and exported models stay readable.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *NodeKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "separator":
		*k = NodeSeparator
	case "text":
		*k = NodeText
	case "list_item":
		*k = NodeListItem
	default:
		return fmt.Errorf("unknown node kind %q", b)
	}
	return nil
}

// Node is one semantic unit of a parsed comment. Text is empty for separators.
// Indent is only meaningful relative to the other nodes of the same record.
type Node struct {
	Kind   NodeKind `json:"kind"`
	Text   string   `json:"text,omitempty"`
	Indent int      `json:"indent"`
}

func Separator() Node { return Node{Kind: NodeSeparator} }

func Text(s string, indent int) Node { return Node{Kind: NodeText, Text: s, Indent: indent} }

func ListItem(s string, indent int) Node { return Node{Kind: NodeListItem, Text: s, Indent: indent} }
