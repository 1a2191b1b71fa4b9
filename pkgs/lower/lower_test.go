package lower_test

import (
	"strings"
	"testing"

	"github.com/forgewright/smelter/pkgs/jsparse"
	"github.com/forgewright/smelter/pkgs/lower"
)

// Scenario P-B-1 - wrapper directive.
func TestLower_WrapperDirective(t *testing.T) {
	program, _, err := jsparse.Parse([]byte(`function f() { "smelter say"; }`), "javascript")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	pack := lower.New(lower.Config{}).Lower(program)

	var fNames []string
	for _, fn := range pack.Functions {
		fNames = append(fNames, fn.Name)
	}

	if pack.Lookup("say_macro") == nil {
		t.Fatalf("expected a say_macro function, got %v", fNames)
	}
	body := pack.Lookup("say_macro").Body()
	if !strings.Contains(body, "$say $(tail)") {
		t.Errorf("say_macro body = %q, want to contain \"$say $(tail)\"", body)
	}

	var wrapper string
	for _, name := range fNames {
		if strings.HasPrefix(name, "f_") {
			wrapper = name
		}
	}
	if wrapper == "" {
		t.Fatalf("expected a wrapper function named f_<offset>, got %v", fNames)
	}
	wrapperBody := pack.Lookup(wrapper).Body()
	if !strings.Contains(wrapperBody, "say_macro") {
		t.Errorf("wrapper body does not tail-call say_macro: %q", wrapperBody)
	}
	if !strings.Contains(wrapperBody, "TypeError") {
		t.Errorf("wrapper body missing the non-string-argument guard: %q", wrapperBody)
	}
}

// Scenario P-B-2 - identifier + call.
func TestLower_IdentifierAndCall(t *testing.T) {
	program, _, err := jsparse.Parse([]byte(`function g(x) { h(x); }`), "javascript")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	pack := lower.New(lower.Config{}).Lower(program)

	var g string
	for _, fn := range pack.Functions {
		if strings.HasPrefix(fn.Name, "g_") {
			g = fn.Name
		}
	}
	if g == "" {
		var names []string
		for _, fn := range pack.Functions {
			names = append(names, fn.Name)
		}
		t.Fatalf("expected a function named g_<offset>, got %v", names)
	}

	body := pack.Lookup(g).Body()
	for _, want := range []string{
		"current_environment.bindings.x",
		"current_arguments append",
		"smelter:invoke",
		"smelter:pop_stack",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("g_<offset> body missing %q:\n%s", want, body)
		}
	}
}

// Property 7 - function names are unique within one compiled data pack.
func TestLower_FunctionNamesAreUnique(t *testing.T) {
	program, _, err := jsparse.Parse([]byte(`
		function a() { b(); }
		function b() { a(); }
	`), "javascript")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	pack := lower.New(lower.Config{}).Lower(program)

	seen := map[string]bool{}
	for _, fn := range pack.Functions {
		if seen[fn.Name] {
			t.Errorf("duplicate Mcfunction name %q", fn.Name)
		}
		seen[fn.Name] = true
	}
}

// Property 9 - expression ids are stable (derived from span offsets,
// so lowering the same program twice must yield identical bodies).
func TestLower_ExpressionIDsAreStable(t *testing.T) {
	source := `function g(x) { h(x); }`
	program1, _, err := jsparse.Parse([]byte(source), "javascript")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	program2, _, err := jsparse.Parse([]byte(source), "javascript")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	pack1 := lower.New(lower.Config{}).Lower(program1)
	pack2 := lower.New(lower.Config{}).Lower(program2)

	if len(pack1.Functions) != len(pack2.Functions) {
		t.Fatalf("function count differs: %d vs %d", len(pack1.Functions), len(pack2.Functions))
	}
	for i, fn := range pack1.Functions {
		other := pack2.Functions[i]
		if fn.Name != other.Name || fn.Body() != other.Body() {
			t.Errorf("lowering %q twice produced different output for function %d:\n%s\n---\n%s", source, i, fn.Body(), other.Body())
		}
	}
}
