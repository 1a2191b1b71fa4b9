package brigadier

// RewriteRedirects resolves the "execute" command's back-edges into tree
// shape. The Brigadier JSON represents the recursive tail of
// "execute …" by a redirect back to the execute node itself; the
// emitted API instead models it as a sentinel leaf signalling "any
// command follows", so within execute's subtree:
//
//   - a Redirect whose first element is "execute" becomes a Nodes set
//     containing a single synthetic non-executable Literal "run" with
//     empty children,
//   - any other Redirect under execute becomes an empty Nodes set.
//
// Commands other than execute are passed through unchanged.
func RewriteRedirects(tree *Tree) *Tree {
	var commands []Node
	for _, cmd := range tree.Commands() {
		if cmd.Name() == "execute" {
			commands = append(commands, rewriteExecuteNode(cmd))
		} else {
			commands = append(commands, cmd)
		}
	}
	return NewTree(commands...)
}

var runSentinel = &Literal{NodeName: "run", IsExecutable: false, NodeChildren: NodesChildren()}

func rewriteExecuteNode(n Node) Node {
	children := n.Children()
	var rebuilt Children
	switch {
	case children.IsRedirect && len(children.Redirect) > 0 && children.Redirect[0] == "execute":
		rebuilt = NodesChildren(runSentinel)
	case children.IsRedirect:
		rebuilt = NodesChildren()
	default:
		var rewrittenChildren []Node
		for _, child := range children.Values() {
			rewrittenChildren = append(rewrittenChildren, rewriteExecuteNode(child))
		}
		rebuilt = NodesChildren(rewrittenChildren...)
	}

	switch v := n.(type) {
	case *Argument:
		return &Argument{NodeName: v.NodeName, IsExecutable: v.IsExecutable, Parser: v.Parser, Properties: v.Properties, NodeChildren: rebuilt}
	case *Enum:
		return &Enum{Values: v.Values, IsExecutable: v.IsExecutable, NodeChildren: rebuilt}
	case *Literal:
		return &Literal{NodeName: v.NodeName, IsExecutable: v.IsExecutable, NodeChildren: rebuilt}
	default:
		return n
	}
}
