package brigadier

import (
	"fmt"
	"strconv"
	"strings"
)

// Consolidate collapses groups of sibling Literal nodes that share an
// identical subtree and executability into a single Enum node, at every
// level of the tree. This shrinks the emitted API from N overloads to
// one overload whose parameter type is a union.
//
// Consolidation is idempotent: applying it twice yields the same tree,
// because an Enum's own canonical form depends only on its values and
// executability, never on the order Consolidate happened to visit
// siblings in.
func Consolidate(tree *Tree) *Tree {
	nodes := consolidateChildren(NodesChildren(tree.Commands()...))
	return NewTree(nodes...)
}

// consolidateChildren runs the merging procedure on one set of siblings
// and returns the rewritten nodes.
func consolidateChildren(children Children) []Node {
	if children.IsRedirect {
		// Redirects have no children set to compare; pass through whole.
		return nil
	}

	type rewritten struct {
		node   Node
		isLit  bool
		litKey string // subtreeCanon + "\x00" + executable, only set for literals
	}

	var out []rewritten
	for _, child := range children.Values() {
		newChild := consolidateNode(child)
		r := rewritten{node: newChild}
		if lit, ok := newChild.(*Literal); ok {
			r.isLit = true
			r.litKey = lit.NodeChildren.subtreeCanonKey() + "\x00" + strconv.FormatBool(lit.IsExecutable)
		}
		out = append(out, r)
	}

	// Partition literals by (subtree_canon, executable); preserve
	// first-seen (alphabetical, since siblings are name-ordered) order
	// within each partition.
	type partition struct {
		key    string
		lits   []*Literal
	}
	var partitions []*partition
	byKey := map[string]*partition{}
	var result []Node
	for _, r := range out {
		if !r.isLit {
			result = append(result, r.node)
			continue
		}
		p, ok := byKey[r.litKey]
		if !ok {
			p = &partition{key: r.litKey}
			byKey[r.litKey] = p
			partitions = append(partitions, p)
		}
		p.lits = append(p.lits, r.node.(*Literal))
	}

	for _, p := range partitions {
		if len(p.lits) == 1 {
			result = append(result, p.lits[0])
			continue
		}
		values := make([]string, len(p.lits))
		for i, l := range p.lits {
			values[i] = l.NodeName
		}
		result = append(result, &Enum{
			Values:       values,
			IsExecutable: p.lits[0].IsExecutable,
			// Sound because every member of the partition shares an
			// identical subtree up to canonical form.
			NodeChildren: p.lits[0].NodeChildren,
		})
	}

	return result
}

// consolidateNode rewrites node's children and returns the new node.
func consolidateNode(node Node) Node {
	newChildren := consolidateChildren(node.Children())
	var rebuilt Children
	if node.Children().IsRedirect {
		rebuilt = node.Children()
	} else {
		rebuilt = NodesChildren(newChildren...)
	}

	switch n := node.(type) {
	case *Argument:
		return &Argument{
			NodeName: n.NodeName, IsExecutable: n.IsExecutable,
			Parser: n.Parser, Properties: n.Properties, NodeChildren: rebuilt,
		}
	case *Enum:
		return &Enum{
			Values: n.Values, IsExecutable: n.IsExecutable, NodeChildren: rebuilt,
		}
	case *Literal:
		return &Literal{
			NodeName: n.NodeName, IsExecutable: n.IsExecutable, NodeChildren: rebuilt,
		}
	default:
		panic(fmt.Sprintf("brigadier: unknown node type %T", node))
	}
}

// subtreeCanonKey returns the canon of a Children value, used as (half
// of) the literal-merge partition key.
func (c Children) subtreeCanonKey() string {
	if c.IsRedirect {
		return redirectCanon(c.Redirect)
	}
	return nodesCanon(c.Values())
}

func redirectCanon(path []string) string {
	return "->" + strings.Join(path, ",")
}

// nodesCanon implements the Nodes-child-set branch of canon(): the
// concatenation, separated by ";", of shape(child)+"["+canon(child)+"]"
// over children in (already alphabetical) insertion order.
func nodesCanon(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = shape(n) + "[" + canon(n) + "]"
	}
	return strings.Join(parts, ";")
}

// shape is the per-child label used inside a parent's Nodes-concatenation.
// Per spec §4.2, it omits the distinguishing name for Literals (so two
// parents differing only in which literal names they carry, but with
// otherwise identical subtrees, still compare equal one level up) and
// includes it for Arguments and Enums, whose identity is load-bearing at
// every level since they are never merge candidates themselves.
func shape(n Node) string {
	switch v := n.(type) {
	case *Argument:
		return fmt.Sprintf("Arg(%s,%s,%v)", v.NodeName, v.Parser, v.IsExecutable)
	case *Enum:
		return fmt.Sprintf("En(%s,%v)", strings.Join(v.Values, "|"), v.IsExecutable)
	case *Literal:
		return fmt.Sprintf("Lit(%v)", v.IsExecutable)
	default:
		panic(fmt.Sprintf("brigadier: unknown node type %T", n))
	}
}

// canon computes the node's own canonical form: its attributes excluding
// name, plus the canonical form of its children/redirect.
func canon(n Node) string {
	switch v := n.(type) {
	case *Argument:
		return fmt.Sprintf("Arg(%s,%v):%s", v.Parser, v.IsExecutable, v.NodeChildren.subtreeCanonKey())
	case *Enum:
		return fmt.Sprintf("En(%s,%v):%s", strings.Join(v.Values, "|"), v.IsExecutable, v.NodeChildren.subtreeCanonKey())
	case *Literal:
		return fmt.Sprintf("Lit(%v):%s", v.IsExecutable, v.NodeChildren.subtreeCanonKey())
	default:
		panic(fmt.Sprintf("brigadier: unknown node type %T", n))
	}
}
