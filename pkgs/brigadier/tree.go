// Package brigadier models the Brigadier command-tree: a rooted DAG of
// argument/literal/enum nodes with executable flags and named redirects,
// as published by the upstream JSON mirror, and the rewriting passes that
// turn it into a CommandMap.
//
// Every stage in this package consumes an immutable tree and returns a
// freshly built one; no Node is mutated after construction except by the
// stage that owns it.
package brigadier

import "strings"

// Node is a single command-tree node. The three variants (Argument,
// Literal, Enum) share this interface; identity among siblings is the
// name alone.
type Node interface {
	Name() string
	Executable() bool
	Children() Children
}

// Argument is a node accepting a Brigadier-parsed value, e.g.
// minecraft:entity. Construction always carries a parser; TreeBuilder
// fails with MalformedTreeError when the source JSON omits one.
type Argument struct {
	NodeName    string
	IsExecutable bool
	Parser      string
	Properties  map[string]any
	NodeChildren Children
}

func (a *Argument) Name() string       { return a.NodeName }
func (a *Argument) Executable() bool   { return a.IsExecutable }
func (a *Argument) Children() Children { return a.NodeChildren }

// Literal is a node matching a fixed token.
type Literal struct {
	NodeName     string
	IsExecutable bool
	NodeChildren Children
}

func (l *Literal) Name() string       { return l.NodeName }
func (l *Literal) Executable() bool   { return l.IsExecutable }
func (l *Literal) Children() Children { return l.NodeChildren }

// Enum is synthesised by LiteralConsolidator to collapse a group of
// sibling Literal nodes that share an identical subtree and
// executability. Name is Values joined by "|", preserving insertion
// order, and is used only for alphabetical sort among new siblings.
type Enum struct {
	Values       []string
	IsExecutable bool
	NodeChildren Children
}

func (e *Enum) Name() string       { return strings.Join(e.Values, "|") }
func (e *Enum) Executable() bool   { return e.IsExecutable }
func (e *Enum) Children() Children { return e.NodeChildren }

// Children is a tagged union of either an ordered set of child nodes or a
// redirect path (a non-empty sequence of names denoting a back-edge).
// Exactly one of Nodes/IsRedirect holds.
type Children struct {
	nodes      *nodeSet
	IsRedirect bool
	Redirect   []string
}

// NodesChildren builds a Children::Nodes value from the given nodes,
// stored in ascending lexicographic order by name.
func NodesChildren(nodes ...Node) Children {
	s := newNodeSet()
	for _, n := range nodes {
		s.Add(n)
	}
	return Children{nodes: s}
}

// RedirectChildren builds a Children::Redirect value.
func RedirectChildren(path []string) Children {
	return Children{IsRedirect: true, Redirect: path}
}

// Values returns the child nodes in ascending lexicographic order by
// name. Empty (nil) when this is a redirect.
func (c Children) Values() []Node {
	if c.nodes == nil {
		return nil
	}
	return c.nodes.Values()
}

// Len returns the number of child nodes (0 for a redirect or an empty
// Nodes set).
func (c Children) Len() int {
	if c.nodes == nil {
		return 0
	}
	return c.nodes.Len()
}

// Tree is an ordered set of top-level command nodes keyed by name.
type Tree struct {
	roots *nodeSet
}

// NewTree builds a Tree from the given top-level command nodes.
func NewTree(roots ...Node) *Tree {
	s := newNodeSet()
	for _, n := range roots {
		s.Add(n)
	}
	return &Tree{roots: s}
}

// Commands returns the top-level command nodes in ascending
// lexicographic order by name.
func (t *Tree) Commands() []Node {
	return t.roots.Values()
}
