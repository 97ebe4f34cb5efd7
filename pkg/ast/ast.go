// Package ast defines the tree of typed nodes produced from a Doxygen XML document
package ast

import (
	"strings"
)

// Position represents a position in the source file
type Position struct {
	Line   int
	Column int
	Offset int
}

// ChildKind tells element children apart from text fragments
type ChildKind int

const (
	ChildElement ChildKind = iota
	ChildText
)

func (ck ChildKind) String() string {
	switch ck {
	case ChildElement:
		return "element"
	case ChildText:
		return "text"
	default:
		return "unknown"
	}
}

// Attr is a single name/value attribute pair, kept in document order
type Attr struct {
	Name  string
	Value string
}

// Child is one entry of a node's ordered children: either an element or a text fragment
type Child struct {
	Kind ChildKind
	Text string // Text content (ChildText only)
	Node *Node  // Element (ChildElement only)
}

// IsText returns true if the child is a text fragment
func (c Child) IsText() bool {
	return c.Kind == ChildText
}

// Node represents an XML element
type Node struct {
	Name     string   // Element name (local part)
	Attrs    []Attr   // Attributes in document order
	Children []Child  // Ordered children
	Pos      Position // Position of the start tag
}

// NewNode creates an element node with the given name
func NewNode(name string, attrs ...Attr) *Node {
	return &Node{
		Name:     name,
		Attrs:    attrs,
		Children: make([]Child, 0),
	}
}

// AddChild appends an element child and returns it
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, Child{Kind: ChildElement, Node: child})
	return child
}

// AddText appends a text fragment
func (n *Node) AddText(text string) {
	n.Children = append(n.Children, Child{Kind: ChildText, Text: text})
}

// Attr returns the value of the named attribute and whether it is present
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the value of the named attribute, or "" when absent
func (n *Node) AttrOr(name string) string {
	v, _ := n.Attr(name)
	return v
}

// FindChild finds the first direct child element with the given name
func (n *Node) FindChild(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == ChildElement && c.Node.Name == name {
			return c.Node
		}
	}
	return nil
}

// FindChildren returns all direct child elements with the given name
func (n *Node) FindChildren(name string) []*Node {
	if n == nil {
		return nil
	}
	var nodes []*Node
	for _, c := range n.Children {
		if c.Kind == ChildElement && c.Node.Name == name {
			nodes = append(nodes, c.Node)
		}
	}
	return nodes
}

// FindByPath follows a chain of first-match child names
func (n *Node) FindByPath(path ...string) *Node {
	current := n
	for _, name := range path {
		current = current.FindChild(name)
		if current == nil {
			return nil
		}
	}
	return current
}

// InnerText concatenates every text fragment below the node without any markup handling
func (n *Node) InnerText() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range n.Children {
		if c.Kind == ChildText {
			b.WriteString(c.Text)
		} else {
			b.WriteString(c.Node.InnerText())
		}
	}
	return b.String()
}

// Document is a parsed XML file
type Document struct {
	Filename string
	Root     *Node
}
