package lower

import (
	"fmt"
	"strings"

	"github.com/forgewright/smelter/pkgs/datapack"
	"github.com/forgewright/smelter/pkgs/scriptast"
)

// lowerStatements lowers stmts into fn in order. Handled kinds are
// expression statements, variable declarations, and function
// declarations (spec §4.6); everything else, including directive
// prologue entries that reach this point, lowers to no output.
func (l *Lowerer) lowerStatements(fn *datapack.Mcfunction, stmts []scriptast.Statement) {
	for _, stmt := range stmts {
		l.lowerStatement(fn, stmt)
	}
}

func (l *Lowerer) lowerStatement(fn *datapack.Mcfunction, stmt scriptast.Statement) {
	switch s := stmt.(type) {
	case *scriptast.ExpressionStatement:
		l.lowerExpression(fn, s.Expr)
	case *scriptast.VariableDecl:
		l.lowerVariableDecl(fn, s)
	case *scriptast.FunctionDecl:
		l.lowerFunctionDeclBinding(fn, s)
	}
}

// lowerVariableDecl lowers the initializer as an expression, then
// copies its evaluation slot to the declaration's binding (or
// {undefined: true} if there is no initializer). Only identifier
// targets bind; other patterns are silently skipped.
func (l *Lowerer) lowerVariableDecl(fn *datapack.Mcfunction, decl *scriptast.VariableDecl) {
	ident, ok := decl.Target.(*scriptast.Identifier)
	if !ok {
		return
	}
	binding := "current_environment.bindings." + ident.Name
	if decl.Init == nil {
		fn.Linef("data modify storage smelter:env %s set value {undefined: true}", binding)
		return
	}
	id := l.lowerExpression(fn, decl.Init)
	fn.Linef("data modify storage smelter:env %s set from storage smelter:env %s", binding, evalPath(id))
}

// lowerFunctionDeclBinding emits the binding record spec §4.6 describes
// for a function declaration reached in statement position: the
// function itself was already lowered into its own Mcfunction during
// the pre-order sub-function collection pass.
func (l *Lowerer) lowerFunctionDeclBinding(fn *datapack.Mcfunction, decl *scriptast.FunctionDecl) {
	name := fmt.Sprintf("%s_%d", strings.ToLower(decl.Name), decl.Sp.Start)
	binding := "current_environment.bindings." + decl.Name
	fn.Linef("execute store result storage smelter:env %s.function.environment_index int 1 run scoreboard players get #stack_depth %s", binding, datapack.ScoreboardObjective)
	fn.Linef("data modify storage smelter:env %s.function.name set value %q", binding, "smelter:"+name)
}
