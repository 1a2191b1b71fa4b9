package command_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/forgewright/smelter/pkgs/brigadier"
	"github.com/forgewright/smelter/pkgs/command"
)

func variants(t *testing.T, m *command.Map, name string) []command.Variant {
	t.Helper()
	return m.Variants(name)
}

// Scenario P-A-1 - bare executable.
func TestEnumerate_BareExecutable(t *testing.T) {
	tree := brigadier.NewTree(&brigadier.Literal{
		NodeName:     "seed",
		IsExecutable: true,
		NodeChildren: brigadier.NodesChildren(),
	})

	m := command.Enumerate(tree)

	got := variants(t, m, "seed")
	want := []command.Variant{{}}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("variants mismatch (-want +got):\n%s", diff)
	}
}

// Scenario P-A-2 - sibling literal merge, after consolidation.
func TestEnumerate_SiblingLiteralMerge(t *testing.T) {
	x := &brigadier.Literal{
		NodeName: "x",
		NodeChildren: brigadier.NodesChildren(
			&brigadier.Literal{NodeName: "a", IsExecutable: true, NodeChildren: brigadier.NodesChildren()},
			&brigadier.Literal{NodeName: "b", IsExecutable: true, NodeChildren: brigadier.NodesChildren()},
			&brigadier.Literal{NodeName: "c", IsExecutable: true, NodeChildren: brigadier.NodesChildren()},
		),
	}
	tree := brigadier.Consolidate(brigadier.NewTree(x))

	m := command.Enumerate(tree)
	got := variants(t, m, "x")

	if len(got) != 1 {
		t.Fatalf("expected exactly one variant, got %d: %+v", len(got), got)
	}
	tok := got[0][0]
	if tok.Kind != command.KindEnum {
		t.Fatalf("expected an enum token, got %+v", tok)
	}
	wantValues := []string{"a", "b", "c"}
	if diff := cmp.Diff(wantValues, tok.Values); diff != "" {
		t.Errorf("enum values mismatch (-want +got):\n%s", diff)
	}
	if tok.IsOptional {
		t.Error("merged literal enum should not be optional")
	}
}

// Scenario P-A-3 - optional trailing run.
func TestEnumerate_OptionalTrailingRun(t *testing.T) {
	done := &brigadier.Literal{NodeName: "done", IsExecutable: true, NodeChildren: brigadier.NodesChildren()}
	n := &brigadier.Argument{NodeName: "n", Parser: "brigadier:integer", NodeChildren: brigadier.NodesChildren(done)}
	root := &brigadier.Literal{NodeName: "t", NodeChildren: brigadier.NodesChildren(n)}

	tree := brigadier.NewTree(root)
	m := command.Enumerate(tree)
	got := variants(t, m, "t")

	if len(got) != 1 {
		t.Fatalf("expected exactly one variant, got %d: %+v", len(got), got)
	}
	v := got[0]
	if len(v) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %+v", len(v), v)
	}
	if v[0].Kind != command.KindArgument || v[0].Name != "n" || v[0].Parser != "brigadier:integer" || v[0].IsOptional {
		t.Errorf("unexpected first token: %+v", v[0])
	}
	if v[1].Kind != command.KindLiteral || v[1].Value != "done" || !v[1].IsOptional {
		t.Errorf("unexpected second token: %+v", v[1])
	}
}

// Scenario P-A-4 - execute-redirect.
func TestEnumerate_ExecuteRedirect(t *testing.T) {
	leaf := &brigadier.Literal{NodeName: "leaf", NodeChildren: brigadier.RedirectChildren([]string{"execute"})}
	execute := &brigadier.Literal{NodeName: "execute", NodeChildren: brigadier.NodesChildren(leaf)}

	tree := brigadier.RewriteRedirects(brigadier.NewTree(execute))
	m := command.Enumerate(tree)
	got := variants(t, m, "execute")

	var foundCallback bool
	for _, v := range got {
		for _, tok := range v {
			if tok.Kind == command.KindArgument && tok.Name == "callback" && tok.Parser == "TODO" {
				foundCallback = true
			}
		}
	}
	if !foundCallback {
		t.Errorf("expected a callback:TODO token among variants, got %+v", got)
	}
}
