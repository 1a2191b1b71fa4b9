package tsemit_test

import (
	"strings"
	"testing"

	"github.com/forgewright/smelter/pkgs/command"
	"github.com/forgewright/smelter/pkgs/tsemit"
)

// Scenario P-A-1 - bare executable.
func TestEmit_BareExecutable(t *testing.T) {
	m := command.NewMap()
	m.Put("seed", []command.Variant{{}})

	out, err := tsemit.Emit(m)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	if !strings.Contains(out, "seed: {") {
		t.Errorf("expected a seed object-type entry, got:\n%s", out)
	}
	if !strings.Contains(out, "(): void;") {
		t.Errorf("expected a zero-argument signature, got:\n%s", out)
	}
	if !strings.Contains(out, `export const seed = __emitMacro("seed");`) {
		t.Errorf("expected the seed constant export, got:\n%s", out)
	}
}

// Scenario P-A-5 - dashes and keywords.
func TestEmit_DashesAndKeywords(t *testing.T) {
	m := command.NewMap()
	m.Put("function-if", []command.Variant{{}})
	m.Put("if", []command.Variant{{}})

	out, err := tsemit.Emit(m)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	if !strings.Contains(out, `"function-if": {`) {
		t.Errorf("expected quoted object key \"function-if\", got:\n%s", out)
	}
	if !strings.Contains(out, "export const functionIf = ") {
		t.Errorf("expected binding functionIf, got:\n%s", out)
	}
	if !strings.Contains(out, "  if: {") {
		t.Errorf("expected bare object key if, got:\n%s", out)
	}
	if !strings.Contains(out, "export const if_ = ") {
		t.Errorf("expected binding if_ (reserved word escaped), got:\n%s", out)
	}
}

func TestEmit_EnumAndOptionalParams(t *testing.T) {
	m := command.NewMap()
	m.Put("x", []command.Variant{{
		{Kind: command.KindEnum, Values: []string{"a", "b", "c"}},
		{Kind: command.KindLiteral, Value: "done", IsOptional: true},
	}})

	out, err := tsemit.Emit(m)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out, `opt0: "a" | "b" | "c"`) {
		t.Errorf("expected union type for merged enum, got:\n%s", out)
	}
	if !strings.Contains(out, `opt1?: "done"`) {
		t.Errorf("expected optional literal parameter opt1?, got:\n%s", out)
	}
}

func TestEmit_IsDeterministic(t *testing.T) {
	m := command.NewMap()
	m.Put("a", []command.Variant{{{Kind: command.KindArgument, Name: "n", Parser: "brigadier:integer"}}})
	m.Put("b", []command.Variant{{}})

	first, err := tsemit.Emit(m)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	second, err := tsemit.Emit(m)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if first != second {
		t.Errorf("Emit is not deterministic across identical calls:\n%s\n---\n%s", first, second)
	}
}
