package brigadier_test

import (
	"errors"
	"testing"

	"github.com/forgewright/smelter/pkgs/brigadier"
)

func TestBuild_SiblingOrderIsDeterministic(t *testing.T) {
	payload := []byte(`{
		"type": "root",
		"children": {
			"zebra": {"type": "literal", "executable": true},
			"apple": {"type": "literal", "executable": true},
			"mango": {"type": "literal", "executable": true}
		}
	}`)

	root, err := brigadier.LoadPayload(payload)
	if err != nil {
		t.Fatalf("LoadPayload: %v", err)
	}
	tree, err := brigadier.Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var names []string
	for _, n := range tree.Commands() {
		names = append(names, n.Name())
	}
	want := []string{"apple", "mango", "zebra"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("Commands()[%d] = %q, want %q (full: %v)", i, names[i], name, names)
		}
	}
}

func TestBuild_ArgumentWithoutParserIsMalformed(t *testing.T) {
	payload := []byte(`{"type": "root", "children": {"x": {"type": "argument"}}}`)
	root, err := brigadier.LoadPayload(payload)
	if err != nil {
		t.Fatalf("LoadPayload: %v", err)
	}

	_, err = brigadier.Build(root)
	var malformed *brigadier.MalformedTreeError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedTreeError, got %T: %v", err, err)
	}
}

func TestBuild_RootBelowTopLevelIsMalformed(t *testing.T) {
	payload := []byte(`{"type": "root", "children": {"x": {"type": "root"}}}`)
	root, err := brigadier.LoadPayload(payload)
	if err != nil {
		t.Fatalf("LoadPayload: %v", err)
	}

	_, err = brigadier.Build(root)
	var malformed *brigadier.MalformedTreeError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedTreeError, got %T: %v", err, err)
	}
}
