// Package lower implements FunctionLowerer and ExpressionLowerer: the
// translation from a parsed scripting-language AST (pkgs/scriptast) to
// a compiled data pack (pkgs/datapack). Grounded on the teacher's
// planner (runtime/planner/planner.go) for the overall "walk an AST,
// accumulate output, carry a small Config" shape, generalised from Go
// event streams to scriptast trees and from execution plans to
// Mcfunctions.
package lower

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/forgewright/smelter/pkgs/datapack"
	"github.com/forgewright/smelter/pkgs/scriptast"
)

const directivePrefix = "smelter "

// Config controls lowering. Logger defaults to slog.Default() when nil.
type Config struct {
	Logger *slog.Logger
}

// Lowerer carries the in-progress data pack across the whole lowering
// pass; every Mcfunction produced, whether main or a nested function,
// is appended to the same Pack.
type Lowerer struct {
	Pack   *datapack.DataPack
	logger *slog.Logger
}

// New returns a Lowerer with a fresh runtime-library-seeded data pack.
func New(cfg Config) *Lowerer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pack := datapack.NewDataPack("smelter")
	datapack.AddRuntimeLibrary(pack)
	return &Lowerer{Pack: pack, logger: logger}
}

// Lower compiles program into l.Pack: every nested function/arrow
// definition becomes its own Mcfunction (or pair, under the directive
// override), and the top-level body becomes the distinguished "main"
// Mcfunction.
func (l *Lowerer) Lower(program *scriptast.Program) *datapack.DataPack {
	l.collectSubFunctions(program.Body)

	main := l.Pack.NewFunction("main")
	l.lowerStatements(main, program.Body)
	return l.Pack
}

// collectSubFunctions performs the pre-order walk spec §4.6 describes:
// every FunctionDecl or ArrowFunctionExpr reachable from stmts is
// lowered into its own Mcfunction(s), recursing into each one's body to
// find further nested definitions.
func (l *Lowerer) collectSubFunctions(stmts []scriptast.Statement) {
	for _, stmt := range stmts {
		l.walkStatement(stmt)
	}
}

func (l *Lowerer) walkStatement(stmt scriptast.Statement) {
	switch s := stmt.(type) {
	case *scriptast.FunctionDecl:
		l.lowerFunctionDecl(s)
	case *scriptast.ExpressionStatement:
		l.walkExpression(s.Expr)
	case *scriptast.VariableDecl:
		if s.Init != nil {
			l.walkExpression(s.Init)
		}
	}
}

func (l *Lowerer) walkExpression(expr scriptast.Expression) {
	switch e := expr.(type) {
	case *scriptast.ArrowFunctionExpr:
		l.lowerArrowFunction(e)
	case *scriptast.CallExpr:
		l.walkExpression(e.Callee)
		for _, arg := range e.Arguments {
			l.walkExpression(arg)
		}
	}
}

func (l *Lowerer) lowerFunctionDecl(decl *scriptast.FunctionDecl) {
	name := fmt.Sprintf("%s_%d", strings.ToLower(decl.Name), decl.Sp.Start)
	l.lowerFunctionBody(name, decl.Params, decl.Body)
}

func (l *Lowerer) lowerArrowFunction(arrow *scriptast.ArrowFunctionExpr) {
	name := fmt.Sprintf("anon_func_%d", arrow.Sp.Start)
	l.lowerFunctionBody(name, arrow.Params, arrow.Body)
}

// lowerFunctionBody implements the directive-override special case and,
// otherwise, normal body lowering: an argument-binding prelude followed
// by the lowered statements. Nested definitions inside body are
// collected only in the non-overridden path, since the override
// discards the regular body entirely.
func (l *Lowerer) lowerFunctionBody(name string, params []scriptast.Pattern, body *scriptast.BlockStatement) {
	if cmd, ok := leadingDirectiveCommand(body); ok {
		l.lowerDirectiveOverride(name, cmd)
		return
	}

	l.collectSubFunctions(body.Body)

	fn := l.Pack.NewFunction(name)
	bindParameters(l.logger, fn, params)
	l.lowerStatements(fn, body.Body)
}

// leadingDirectiveCommand inspects the leading directive prologue for
// one beginning with "smelter ", returning the command name that
// follows.
func leadingDirectiveCommand(body *scriptast.BlockStatement) (string, bool) {
	for _, stmt := range body.Body {
		directive, ok := stmt.(*scriptast.Directive)
		if !ok {
			break // prologue ends at the first non-directive statement
		}
		if cmd, ok := strings.CutPrefix(directive.Value, directivePrefix); ok {
			return cmd, true
		}
	}
	return "", false
}

// lowerDirectiveOverride emits the wrapper/macro pair spec §4.6
// describes in place of the function's regular body.
func (l *Lowerer) lowerDirectiveOverride(name, cmd string) {
	wrapper := l.Pack.NewFunction(name)
	wrapper.Line("execute unless data storage smelter:env current_arguments[0].string run data modify storage smelter:env current_return_value set value {throw: \"TypeError\"}")
	wrapper.Line("execute unless data storage smelter:env current_arguments[0].string run return fail")
	wrapper.Line("data modify storage smelter:env internal.tail set from storage smelter:env current_arguments[0].string")
	wrapper.Line("return run function smelter:" + cmd + "_macro with storage smelter:env internal")

	macro := l.Pack.NewFunction(cmd + "_macro")
	macro.Macro(cmd + " $(tail)")
}
