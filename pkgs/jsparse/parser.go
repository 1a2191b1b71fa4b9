package jsparse

import (
	"fmt"

	"github.com/forgewright/smelter/pkgs/script"
	"github.com/forgewright/smelter/pkgs/scriptast"
)

// Parse implements script.Parser for the subset this package covers.
// language is accepted but not branched on: the javascript and
// typescript tags both parse the same subset here, since none of the
// syntax this module lowers (spec §4.6/§4.7) is TypeScript-specific.
func Parse(source []byte, language string) (*scriptast.Program, []script.Diagnostic, error) {
	p := &parser{lex: &lexer{src: source}}
	if err := p.advance(); err != nil {
		return nil, nil, err
	}

	var body []scriptast.Statement
	for p.cur.kind != tokEOF {
		stmt, err := p.parseStatement(len(body) == 0 || lastIsDirective(body))
		if err != nil {
			return nil, p.diagnostics, err
		}
		body = append(body, stmt)
	}

	return &scriptast.Program{Body: body, Sp: scriptast.Span{Start: 0, End: len(source)}}, p.diagnostics, nil
}

func lastIsDirective(body []scriptast.Statement) bool {
	if len(body) == 0 {
		return true
	}
	_, ok := body[len(body)-1].(*scriptast.Directive)
	return ok
}

type parser struct {
	lex         *lexer
	cur         token
	diagnostics []script.Diagnostic
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) expectPunct(value string) error {
	if p.cur.kind != tokPunct || p.cur.value != value {
		return fmt.Errorf("jsparse: expected %q at offset %d, got %q", value, p.cur.start, p.cur.value)
	}
	return p.advance()
}

// parseStatement parses one statement. allowDirective is true only
// while still in a block's directive prologue: a bare string-literal
// statement there is a Directive rather than an ExpressionStatement.
func (p *parser) parseStatement(allowDirective bool) (scriptast.Statement, error) {
	start := p.cur.start

	if p.cur.kind == tokKeyword && p.cur.value == "function" {
		return p.parseFunctionDecl(start)
	}
	if p.cur.kind == tokKeyword && (p.cur.value == "var" || p.cur.value == "let" || p.cur.value == "const") {
		return p.parseVariableDecl(start)
	}
	if allowDirective && p.cur.kind == tokString {
		value := p.cur.value
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		return &scriptast.Directive{Value: value, Sp: scriptast.Span{Start: start, End: p.cur.start}}, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &scriptast.ExpressionStatement{Expr: expr, Sp: scriptast.Span{Start: start, End: p.cur.start}}, nil
}

func (p *parser) parseFunctionDecl(start int) (*scriptast.FunctionDecl, error) {
	if err := p.advance(); err != nil { // consume "function"
		return nil, err
	}
	if p.cur.kind != tokIdent {
		return nil, fmt.Errorf("jsparse: expected function name at offset %d", p.cur.start)
	}
	name := p.cur.value
	if err := p.advance(); err != nil {
		return nil, err
	}

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &scriptast.FunctionDecl{Name: name, Params: params, Body: body, Sp: scriptast.Span{Start: start, End: body.Sp.End}}, nil
}

func (p *parser) parseVariableDecl(start int) (*scriptast.VariableDecl, error) {
	if err := p.advance(); err != nil { // consume var/let/const
		return nil, err
	}
	if p.cur.kind != tokIdent {
		return nil, fmt.Errorf("jsparse: expected identifier at offset %d", p.cur.start)
	}
	target := &scriptast.Identifier{Name: p.cur.value, Sp: scriptast.Span{Start: p.cur.start, End: p.cur.start + len(p.cur.value)}}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var init scriptast.Expression
	if p.cur.kind == tokPunct && p.cur.value == "=" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var err error
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &scriptast.VariableDecl{Target: target, Init: init, Sp: scriptast.Span{Start: start, End: p.cur.start}}, nil
}

func (p *parser) parseParams() ([]scriptast.Pattern, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []scriptast.Pattern
	for !(p.cur.kind == tokPunct && p.cur.value == ")") {
		start := p.cur.start
		if p.cur.kind == tokPunct && p.cur.value == "..." {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.kind != tokIdent {
				return nil, fmt.Errorf("jsparse: expected identifier after ... at offset %d", p.cur.start)
			}
			arg := &scriptast.Identifier{Name: p.cur.value, Sp: scriptast.Span{Start: p.cur.start, End: p.cur.start + len(p.cur.value)}}
			if err := p.advance(); err != nil {
				return nil, err
			}
			params = append(params, &scriptast.RestElement{Argument: arg, Sp: scriptast.Span{Start: start, End: p.cur.start}})
		} else {
			if p.cur.kind != tokIdent {
				return nil, fmt.Errorf("jsparse: expected parameter name at offset %d", p.cur.start)
			}
			params = append(params, &scriptast.Identifier{Name: p.cur.value, Sp: scriptast.Span{Start: p.cur.start, End: p.cur.start + len(p.cur.value)}})
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if p.cur.kind == tokPunct && p.cur.value == "," {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return params, p.advance() // consume ")"
}

func (p *parser) parseBlock() (*scriptast.BlockStatement, error) {
	start := p.cur.start
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var body []scriptast.Statement
	for !(p.cur.kind == tokPunct && p.cur.value == "}") {
		if p.cur.kind == tokEOF {
			return nil, fmt.Errorf("jsparse: unterminated block starting at offset %d", start)
		}
		stmt, err := p.parseStatement(len(body) == 0 || lastIsDirective(body))
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	end := p.cur.start
	if err := p.advance(); err != nil { // consume "}"
		return nil, err
	}
	return &scriptast.BlockStatement{Body: body, Sp: scriptast.Span{Start: start, End: end}}, nil
}

// parseExpression parses a primary expression plus any trailing call
// suffixes: identifiers, string literals, and parenthesised arrow
// functions with a block body.
func (p *parser) parseExpression() (scriptast.Expression, error) {
	start := p.cur.start

	var expr scriptast.Expression
	switch {
	case p.cur.kind == tokString:
		expr = &scriptast.StringLiteral{Value: p.cur.value, Sp: scriptast.Span{Start: start, End: start + len(p.cur.value) + 2}}
		if err := p.advance(); err != nil {
			return nil, err
		}

	case p.cur.kind == tokIdent:
		name := p.cur.value
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr = &scriptast.Identifier{Name: name, Sp: scriptast.Span{Start: start, End: start + len(name)}}

	case p.cur.kind == tokPunct && p.cur.value == "(":
		arrow, err := p.tryParseArrow(start)
		if err != nil {
			return nil, err
		}
		expr = arrow

	default:
		return nil, fmt.Errorf("jsparse: unexpected token %q at offset %d", p.cur.value, start)
	}

	for p.cur.kind == tokPunct && p.cur.value == "(" {
		call, err := p.parseCallArguments(expr, start)
		if err != nil {
			return nil, err
		}
		expr = call
	}
	return expr, nil
}

func (p *parser) tryParseArrow(start int) (*scriptast.ArrowFunctionExpr, error) {
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("=>"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &scriptast.ArrowFunctionExpr{Params: params, Body: body, Sp: scriptast.Span{Start: start, End: body.Sp.End}}, nil
}

func (p *parser) parseCallArguments(callee scriptast.Expression, start int) (*scriptast.CallExpr, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []scriptast.Expression
	for !(p.cur.kind == tokPunct && p.cur.value == ")") {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.kind == tokPunct && p.cur.value == "," {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	end := p.cur.start
	if err := p.advance(); err != nil { // consume ")"
		return nil, err
	}
	return &scriptast.CallExpr{Callee: callee, Arguments: args, Sp: scriptast.Span{Start: start, End: end}}, nil
}
