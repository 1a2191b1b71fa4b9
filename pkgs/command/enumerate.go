package command

import "github.com/forgewright/smelter/pkgs/brigadier"

// Enumerate walks a rewritten Brigadier tree (post LiteralConsolidator,
// post RedirectRewriter) and produces the CommandMap: for every top-level
// command, one Variant per distinct invocation signature the tree
// describes.
func Enumerate(tree *brigadier.Tree) *Map {
	m := NewMap()
	for _, root := range tree.Commands() {
		m.Put(root.Name(), enumerateCommand(root))
	}
	return m
}

type branchElem struct {
	node     brigadier.Node
	optional bool
}

func enumerateCommand(root brigadier.Node) []Variant {
	var variants []Variant
	var walk func(branch []branchElem)
	walk = func(branch []branchElem) {
		current := branch[len(branch)-1].node

		// Optional-suffix detection: while current has exactly one
		// executable child, fold that child into the branch as optional
		// and keep walking down the same straight-line chain. The walk
		// never starts at the command root itself, so a command's first
		// token is not made optional this way.
		for len(branch) > 1 {
			children := current.Children()
			if children.IsRedirect || children.Len() != 1 {
				break
			}
			only := children.Values()[0]
			if !only.Executable() {
				break
			}
			branch = append(branch, branchElem{node: only, optional: true})
			current = only
		}

		followedByAny := isFollowedByAnyCommand(current)
		if current.Executable() || followedByAny {
			variants = append(variants, buildVariant(branch, followedByAny))
		}

		children := current.Children()
		if !children.IsRedirect {
			for _, child := range children.Values() {
				walk(append(append([]branchElem{}, branch...), branchElem{node: child, optional: false}))
			}
		}
	}
	walk([]branchElem{{node: root, optional: false}})
	return variants
}

// isFollowedByAnyCommand reports whether n is the "any command follows"
// sentinel RedirectRewriter leaves behind under execute: a non-executable
// leaf with an empty Nodes children set.
func isFollowedByAnyCommand(n brigadier.Node) bool {
	children := n.Children()
	return !n.Executable() && !children.IsRedirect && children.Len() == 0
}

func buildVariant(branch []branchElem, followedByAny bool) Variant {
	b := NewVariantBuilder()
	for _, elem := range branch[1:] { // skip the command name itself
		appendToken(b, elem.node, elem.optional)
	}
	if followedByAny {
		b.Argument("callback", "TODO", false)
	}
	v, err := b.Done()
	if err != nil {
		// Every token here is derived from an already-validated
		// Brigadier tree; a validation failure means TreeBuilder or
		// LiteralConsolidator let an invariant slip.
		panic("command: invariant violation building variant: " + err.Error())
	}
	return v
}

func appendToken(b *VariantBuilder, n brigadier.Node, optional bool) {
	switch v := n.(type) {
	case *brigadier.Argument:
		b.Argument(v.NodeName, v.Parser, optional)
	case *brigadier.Enum:
		b.Enum(v.Values, optional)
	case *brigadier.Literal:
		b.Literal(v.NodeName, optional)
	}
}
