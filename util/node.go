package util

// NodeRef holds the keyword and arguments of an open ancestor node.
type NodeRef struct {
	Keyword string
	Args    []string
}

// Node is one logical statement of the data format: a keyword, its
// arguments, and a structural address formed by the chain of ancestor
// keywords.
type Node struct {
	Depth     int
	Keyword   string
	Args      []string
	Path      []string  // ancestor keywords, root first, ending with this node's keyword
	Ancestors []NodeRef // parallels Path[:len(Path)-1]
	Line      *Line
	File      string
}

// NodeBuilder tracks the indentation stack of one input stream and turns
// logical lines into nodes.
type NodeBuilder struct {
	file   string
	widths []int
	stack  []NodeRef
}

// NewNodeBuilder creates a node builder for one input stream.
func NewNodeBuilder(file string) *NodeBuilder {
	return &NodeBuilder{file: file}
}

// Build produces the node for a logical line, or nil for blank and
// comment-only lines, which do not alter the indentation stack.
//
// Depth is derived from a stack of indentation widths, so tabs and spaces
// both work as long as a file is self-consistent. A line indented deeper
// than one level below the deepest open node is clamped to that level.
func (b *NodeBuilder) Build(line *Line) *Node {
	words := line.Words()
	if len(words) == 0 {
		return nil
	}
	w := line.Indent
	for len(b.widths) > 0 && w <= b.widths[len(b.widths)-1] {
		b.widths = b.widths[:len(b.widths)-1]
		b.stack = b.stack[:len(b.stack)-1]
	}
	node := &Node{
		Depth:   len(b.stack),
		Keyword: words[0].Text,
		Line:    line,
		File:    b.file,
	}
	for _, tok := range words[1:] {
		node.Args = append(node.Args, tok.Text)
	}
	node.Ancestors = append([]NodeRef(nil), b.stack...)
	node.Path = make([]string, 0, len(b.stack)+1)
	for _, ref := range b.stack {
		node.Path = append(node.Path, ref.Keyword)
	}
	node.Path = append(node.Path, node.Keyword)
	b.widths = append(b.widths, w)
	b.stack = append(b.stack, NodeRef{Keyword: node.Keyword, Args: node.Args})
	return node
}
