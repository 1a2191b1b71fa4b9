package lower

import (
	"fmt"

	"github.com/forgewright/smelter/pkgs/datapack"
	"github.com/forgewright/smelter/pkgs/scriptast"
)

// exprID returns the synthetic id spec §4.7 assigns every expression
// node: expr_<span.start>. Stable by construction, since span offsets
// never change once the source is parsed (property 9, spec §8).
func exprID(expr scriptast.Expression) string {
	return fmt.Sprintf("expr_%d", expr.Span().Start)
}

func evalPath(id string) string {
	return "current_environment.evaluations." + id
}

// lowerExpression emits the commands that place expr's evaluated value
// at current_environment.evaluations.<id>, and returns that id so the
// caller can reference it (as a call argument, a binding initializer,
// and so on).
func (l *Lowerer) lowerExpression(fn *datapack.Mcfunction, expr scriptast.Expression) string {
	id := exprID(expr)
	switch e := expr.(type) {
	case *scriptast.Identifier:
		l.lowerIdentifier(fn, e, id)
	case *scriptast.StringLiteral:
		l.lowerStringLiteral(fn, e, id)
	case *scriptast.ArrowFunctionExpr:
		l.lowerArrowReference(fn, e, id)
	case *scriptast.CallExpr:
		l.lowerCall(fn, e, id)
	}
	return id
}

func (l *Lowerer) lowerIdentifier(fn *datapack.Mcfunction, ident *scriptast.Identifier, id string) {
	binding := "current_environment.bindings." + ident.Name
	fn.Linef("execute if data storage smelter:env %s run data modify storage smelter:env %s set from storage smelter:env %s", binding, evalPath(id), binding)
	fn.Linef("data modify storage smelter:env internal.resolve_args set value {identifier: %q, expression_id: %q}", ident.Name, id)
	fn.Linef("execute store result storage smelter:env internal.resolve_args.stack_index int 1 run scoreboard players get #stack_depth %s", datapack.ScoreboardObjective)
	fn.Linef("execute unless data storage smelter:env %s run function %s with storage smelter:env internal.resolve_args", binding, datapack.FnResolve)
}

func (l *Lowerer) lowerStringLiteral(fn *datapack.Mcfunction, lit *scriptast.StringLiteral, id string) {
	fn.Linef("data modify storage smelter:env %s set value {string: %q}", evalPath(id), lit.Value)
}

func (l *Lowerer) lowerArrowReference(fn *datapack.Mcfunction, arrow *scriptast.ArrowFunctionExpr, id string) {
	name := fmt.Sprintf("anon_func_%d", arrow.Sp.Start)
	fn.Linef("execute store result storage smelter:env %s.function.environment_index int 1 run scoreboard players get #stack_depth %s", evalPath(id), datapack.ScoreboardObjective)
	fn.Linef("data modify storage smelter:env %s.function.name set value %q", evalPath(id), "smelter:"+name)
}

// lowerCall implements spec §4.7's call-expression lowering: lower the
// callee, lower each argument in source order and append it to
// current_arguments, push the caller's environment exactly once (the
// corrected, once-per-call form per the decision in DESIGN.md), invoke,
// pop the stack, and clear current_arguments for the next call.
func (l *Lowerer) lowerCall(fn *datapack.Mcfunction, call *scriptast.CallExpr, id string) {
	calleeID := l.lowerExpression(fn, call.Callee)

	var argIDs []string
	for _, arg := range call.Arguments {
		argIDs = append(argIDs, l.lowerExpression(fn, arg))
	}
	for _, argID := range argIDs {
		fn.Linef("data modify storage smelter:env current_arguments append from storage smelter:env %s", evalPath(argID))
	}

	fn.Line("data modify storage smelter:env environment_stack append from storage smelter:env current_environment")
	fn.Linef("scoreboard players add #stack_depth %s 1", datapack.ScoreboardObjective)
	fn.Linef("data modify storage smelter:env internal set from storage smelter:env %s.function", evalPath(calleeID))
	fn.Linef("function %s with storage smelter:env internal", datapack.FnInvoke)
	fn.Linef("execute store result storage smelter:env internal.stack_size int 1 run scoreboard players get #stack_depth %s", datapack.ScoreboardObjective)
	fn.Linef("function %s with storage smelter:env internal", datapack.FnPopStack)
	fn.Linef("scoreboard players remove #stack_depth %s 1", datapack.ScoreboardObjective)
	fn.Line("data modify storage smelter:env current_arguments set value []")
	fn.Linef("data modify storage smelter:env %s set from storage smelter:env current_return_value", evalPath(id))
}
