package brigadier_test

import (
	"testing"

	"github.com/forgewright/smelter/pkgs/brigadier"
)

func siblingLiterals() *brigadier.Tree {
	x := &brigadier.Literal{
		NodeName: "x",
		NodeChildren: brigadier.NodesChildren(
			&brigadier.Literal{NodeName: "a", IsExecutable: true, NodeChildren: brigadier.NodesChildren()},
			&brigadier.Literal{NodeName: "b", IsExecutable: true, NodeChildren: brigadier.NodesChildren()},
			&brigadier.Literal{NodeName: "c", IsExecutable: true, NodeChildren: brigadier.NodesChildren()},
			&brigadier.Literal{NodeName: "d", IsExecutable: false, NodeChildren: brigadier.NodesChildren()}, // different executable: its own partition
		),
	}
	return brigadier.NewTree(x)
}

func TestConsolidate_MergesEquivalentLiteralsIntoEnum(t *testing.T) {
	tree := brigadier.Consolidate(siblingLiterals())

	x := tree.Commands()[0]
	children := x.Children().Values()

	var enum *brigadier.Enum
	var literalNames []string
	for _, c := range children {
		switch v := c.(type) {
		case *brigadier.Enum:
			enum = v
		case *brigadier.Literal:
			literalNames = append(literalNames, v.NodeName)
		}
	}

	if enum == nil {
		t.Fatal("expected a synthesised Enum among x's children")
	}
	if len(enum.Values) < 2 {
		t.Errorf("Enum correctness: values must have len >= 2, got %v", enum.Values)
	}
	wantValues := map[string]bool{"a": true, "b": true, "c": true}
	for _, v := range enum.Values {
		if !wantValues[v] {
			t.Errorf("enum value %q was not one of the original literal siblings", v)
		}
	}
	if len(literalNames) != 1 || literalNames[0] != "d" {
		t.Errorf("expected the size-1 partition (\"d\") to pass through unmerged, got %v", literalNames)
	}
}

func TestConsolidate_IsIdempotent(t *testing.T) {
	once := brigadier.Consolidate(siblingLiterals())
	twice := brigadier.Consolidate(once)

	if canonicalShape(once) != canonicalShape(twice) {
		t.Errorf("consolidation is not idempotent:\nonce:  %s\ntwice: %s", canonicalShape(once), canonicalShape(twice))
	}
}

// canonicalShape renders a tree's top-level command names and each
// command's child-name/kind pairs, sufficient to detect any structural
// drift between two consolidation passes without depending on
// consolidate.go's unexported canon() directly.
func canonicalShape(tree *brigadier.Tree) string {
	var out string
	for _, cmd := range tree.Commands() {
		out += cmd.Name() + "{"
		for _, c := range cmd.Children().Values() {
			out += kindOf(c) + ":" + c.Name() + ","
		}
		out += "}"
	}
	return out
}

func kindOf(n brigadier.Node) string {
	switch n.(type) {
	case *brigadier.Enum:
		return "enum"
	case *brigadier.Literal:
		return "literal"
	case *brigadier.Argument:
		return "argument"
	default:
		return "unknown"
	}
}
