/*
Package forest enumerates the parse trees of an Earley chart.

A tree is either a leaf carrying one input character, or an inner node
carrying a rule name and an ordered list of children. For an ambiguous
grammar one input may have many trees — possibly infinitely many, when
nullable rules recurse — so the enumeration is demand-driven: trees are
produced one at a time, in an order that prefers rules declared earlier in
the grammar.

The walk follows an idea described by Loup Vaillant
(http://loup-vaillant.fr/tutorials/earley-parsing/parser): a completed item
stores its beginning and its rule, with the end implicit in the state set
it sits in. Reversing that — indexing completions by their start and
storing the end — lets the walk proceed top-down from the beginning of the
input (see Chart.Transpose).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package forest

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earleybird.forest'.
func tracer() tracing.Trace {
	return tracing.Select("earleybird.forest")
}

// Node is a parse tree node: either a Leaf or an Inner node.
type Node interface {
	// Len is the number of input characters the node covers.
	Len() int
	String() string
}

// Leaf is a tree leaf, covering exactly one input character.
type Leaf rune

// Len of a leaf is 1.
func (l Leaf) Len() int { return 1 }

func (l Leaf) String() string { return string(rune(l)) }

// Inner is an internal tree node: a rule name and the ordered child trees
// derived from the rule's body symbols.
type Inner struct {
	Name     string
	Children []Node
}

// Len of an inner node is the sum of its children's lengths.
func (n *Inner) Len() int {
	length := 0
	for _, child := range n.Children {
		length += child.Len()
	}
	return length
}

// String renders the node compactly as "name { child0 child1 … }".
func (n *Inner) String() string {
	var b strings.Builder
	b.WriteString(n.Name)
	b.WriteString(" {")
	for _, child := range n.Children {
		b.WriteString(" ")
		b.WriteString(child.String())
	}
	b.WriteString(" }")
	return b.String()
}

// IndentedString renders a tree over multiple lines, children indented
// below their parent.
func IndentedString(n Node) string {
	var b strings.Builder
	indented(&b, n, 0)
	return b.String()
}

func indented(b *strings.Builder, n Node, level int) {
	b.WriteString(strings.Repeat("    ", level))
	switch node := n.(type) {
	case *Inner:
		b.WriteString(node.Name)
		b.WriteString(" {\n")
		for _, child := range node.Children {
			indented(b, child, level+1)
		}
		b.WriteString(strings.Repeat("    ", level))
		b.WriteString("}\n")
	default:
		b.WriteString(n.String())
		b.WriteString("\n")
	}
}
