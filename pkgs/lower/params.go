package lower

import (
	"log/slog"

	"github.com/forgewright/smelter/pkgs/datapack"
	"github.com/forgewright/smelter/pkgs/scriptast"
)

// bindParameters emits the argument-binding prelude (spec §4.6): each
// identifier parameter consumes current_arguments[0] in order, binding
// {undefined: true} if the argument was omitted; a trailing rest
// parameter binds a snapshot of whatever remains. Non-identifier
// patterns are silently skipped (logged at debug level), per the
// decision recorded in DESIGN.md.
func bindParameters(logger *slog.Logger, fn *datapack.Mcfunction, params []scriptast.Pattern) {
	for _, param := range params {
		switch p := param.(type) {
		case *scriptast.Identifier:
			bindPositional(fn, p.Name)
		case *scriptast.RestElement:
			if ident, ok := p.Argument.(*scriptast.Identifier); ok {
				bindRest(fn, ident.Name)
			} else {
				logger.Debug("lower: skipping non-identifier rest pattern", "span", p.Sp)
			}
		default:
			logger.Debug("lower: skipping non-identifier parameter pattern", "span", param.Span())
		}
	}
}

func bindPositional(fn *datapack.Mcfunction, name string) {
	fn.Line("execute if data storage smelter:env current_arguments[0] run data modify storage smelter:env current_environment.bindings." + name + " set from storage smelter:env current_arguments[0]")
	fn.Line("execute unless data storage smelter:env current_arguments[0] run data modify storage smelter:env current_environment.bindings." + name + " set value {undefined: true}")
	fn.Line("data remove storage smelter:env current_arguments[0]")
}

func bindRest(fn *datapack.Mcfunction, name string) {
	fn.Line("data modify storage smelter:env current_environment.bindings." + name + " set from storage smelter:env current_arguments")
}
