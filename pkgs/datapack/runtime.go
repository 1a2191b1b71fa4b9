package datapack

// ScoreboardObjective is the scratch scoreboard every compiled pack
// registers during initialize.
const ScoreboardObjective = "smelter_internal"

// Function-reference syntax is the colon form throughout (smelter:resolve,
// smelter:pop_stack), matching the host runtime rather than the
// underscore form seen in one upstream revision. Lowered call sites
// reference these constants rather than inlining the literal.
const (
	FnInitialize = "smelter:initialize"
	FnResolve    = "smelter:resolve"
	FnInvoke     = "smelter:invoke"
	FnPopStack   = "smelter:pop_stack"
)

// AddRuntimeLibrary appends the four fixed runtime Mcfunctions to pack,
// emitted verbatim on every compile regardless of what the source
// program contains.
func AddRuntimeLibrary(pack *DataPack) {
	initialize := pack.NewFunction("initialize")
	initialize.Line("data modify storage smelter:env environment_stack set value []")
	initialize.Line("data modify storage smelter:env current_environment set value {parent: -1, bindings: {}, evaluations: {}}")
	initialize.Line("data modify storage smelter:env current_arguments set value []")
	initialize.Line("data modify storage smelter:env current_return_value set value {undefined: true}")
	initialize.Line("data modify storage smelter:env internal set value {}")
	initialize.Line("scoreboard objectives add " + ScoreboardObjective + " dummy")

	resolve := pack.NewFunction("resolve")
	resolve.Line("execute unless data storage smelter:env internal.resolve_args.cursor run data modify storage smelter:env internal.resolve_args.cursor set from storage smelter:env current_environment.parent")
	resolve.Line("execute store result score #cursor " + ScoreboardObjective + " run data get storage smelter:env internal.resolve_args.cursor")
	resolve.Line("execute if score #cursor " + ScoreboardObjective + " matches -1 run return fail")
	resolve.Macro("execute if data storage smelter:env environment_stack[$(cursor)].bindings.$(identifier) run data modify storage smelter:env current_environment.evaluations[\"$(expression_id)\"] set from storage smelter:env environment_stack[$(cursor)].bindings.$(identifier)")
	resolve.Macro("execute if data storage smelter:env environment_stack[$(cursor)].bindings.$(identifier) run return 1")
	resolve.Macro("data modify storage smelter:env internal.resolve_args.cursor set from storage smelter:env environment_stack[$(cursor)].parent")
	resolve.Line("return run function " + FnResolve + " with storage smelter:env internal.resolve_args")

	invoke := pack.NewFunction("invoke")
	invoke.Macro("data modify storage smelter:env current_environment set from storage smelter:env environment_stack[$(environment_index)]")
	invoke.Macro("return run function $(name) with storage smelter:env internal")

	popStack := pack.NewFunction("pop_stack")
	popStack.Macro("data modify storage smelter:env current_environment set from storage smelter:env environment_stack[$(stack_size)]")
	popStack.Macro("data remove storage smelter:env environment_stack[$(stack_size)]")
}
