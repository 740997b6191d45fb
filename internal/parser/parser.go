// Package parser builds the Ember AST from a token stream.
//
// It is a hand-written recursive-descent parser with Pratt-style operator
// precedence climbing for expressions, matching the teacher toolchain's
// preference for explicit parsers over generated ones. Parsing is an
// external collaborator of the evaluation core: it produces pkg/ast nodes
// and never touches the runtime, heap, or scope chain.
package parser

import (
	"fmt"

	emberast "github.com/cwbudde/ember/pkg/ast"
	"github.com/cwbudde/ember/internal/errors"
	"github.com/cwbudde/ember/internal/lexer"
	"github.com/cwbudde/ember/pkg/token"
)

// Parser consumes tokens from a Lexer and produces AST nodes.
type Parser struct {
	lex *lexer.Lexer

	cur  token.Token
	peek token.Token

	source string
	file   string
	errors []*errors.CompilerError
}

// New creates a Parser over source. file is used only for error messages.
func New(source, file string) *Parser {
	p := &Parser{lex: lexer.New(source), source: source, file: file}
	p.next()
	p.next()
	return p
}

// Errors returns every syntax error collected while parsing.
func (p *Parser) Errors() []*errors.CompilerError {
	return p.errors
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, errors.NewCompilerError(p.cur.Pos, msg, p.source, p.file))
}

func (p *Parser) expect(t token.Type) bool {
	if p.cur.Type == t {
		p.next()
		return true
	}
	p.errorf("expected %s, got %s (%q)", t, p.cur.Type, p.cur.Literal)
	return false
}

// ParseProgram parses the entire input as an implicit top-level sequence of
// expressions.
func ParseProgram(source, file string) (*emberast.Sequence, []*errors.CompilerError) {
	p := New(source, file)
	seq := &emberast.Sequence{}
	for p.cur.Type != token.EOF {
		n := p.parseExpression(lowest)
		if n != nil {
			seq.Children = append(seq.Children, n)
		}
		for p.cur.Type == token.SEMICOLON {
			p.next()
		}
	}
	return seq, p.errors
}

// precedence levels, lowest to highest.
const (
	lowest = iota
	orPrec
	andPrec
	equality
	comparison
	additive
	multiplicative
	unary
	call
)

var precedences = map[token.Type]int{
	token.OR:      orPrec,
	token.AND:     andPrec,
	token.EQ:      equality,
	token.NOT_EQ:  equality,
	token.LT:      comparison,
	token.GT:      comparison,
	token.LT_EQ:   comparison,
	token.GT_EQ:   comparison,
	token.PLUS:    additive,
	token.MINUS:   additive,
	token.STAR:    multiplicative,
	token.SLASH:   multiplicative,
	token.PERCENT:  multiplicative,
	token.DOT:     call,
	token.LPAREN:  call,
}

// curPrecedence reports the binding power of the token sitting at p.cur,
// which — by the invariant every parse* helper maintains — is always the
// first unconsumed token after whatever was just parsed.
func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return lowest
}

func (p *Parser) parseExpression(minPrec int) emberast.Node {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for minPrec < p.curPrecedence() {
		switch p.cur.Type {
		case token.DOT:
			p.next()
			left = p.parseMemberOrCall(left, false)
		case token.LPAREN:
			p.next()
			left = p.parseCall(left, false)
		default:
			left = p.parseInfix(left)
		}
	}
	return left
}

func (p *Parser) parsePrefix() emberast.Node {
	switch p.cur.Type {
	case token.NULL:
		n := &emberast.NullLit{}
		setPos(n, p.cur)
		p.next()
		return n
	case token.TRUE, token.FALSE:
		n := &emberast.BoolLit{Value: p.cur.Type == token.TRUE}
		setPos(n, p.cur)
		p.next()
		return n
	case token.INT:
		var v int64
		fmt.Sscanf(p.cur.Literal, "%d", &v)
		n := &emberast.IntLit{Value: v}
		setPos(n, p.cur)
		p.next()
		return n
	case token.FLOAT:
		var v float64
		fmt.Sscanf(p.cur.Literal, "%g", &v)
		n := &emberast.FloatLit{Value: v}
		setPos(n, p.cur)
		p.next()
		return n
	case token.STRING:
		n := &emberast.StringLit{Value: p.cur.Literal}
		setPos(n, p.cur)
		p.next()
		return n
	case token.IDENT:
		return p.parseIdentOrAssign()
	case token.AT:
		return p.parseSelfOrMember()
	case token.SUPER:
		return p.parseSuper()
	case token.VAR:
		return p.parseVarDecl()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.IF:
		return p.parseIf()
	case token.TRY:
		return p.parseTry()
	case token.IMPORT:
		return p.parseImport()
	case token.EXPORT:
		return p.parseExport()
	case token.LBRACE:
		return p.parseSequence()
	case token.LPAREN:
		p.next()
		n := p.parseExpression(lowest)
		p.expect(token.RPAREN)
		return n
	case token.MINUS, token.BANG:
		op := p.cur
		p.next()
		operand := p.parseExpression(unary)
		n := &emberast.UnaryOp{Op: op.Literal, Operand: operand}
		setPos(n, op)
		return n
	default:
		p.errorf("unexpected token %s (%q)", p.cur.Type, p.cur.Literal)
		p.next()
		return nil
	}
}

func (p *Parser) parseInfix(left emberast.Node) emberast.Node {
	opTok := p.cur
	prec := precedences[opTok.Type]
	p.next()
	right := p.parseExpression(prec)
	n := &emberast.BinaryOp{Op: opTok.Literal, Left: left, Right: right}
	setPos(n, opTok)
	return n
}

// parseMemberOrCall parses `.name` after a receiver, possibly followed by
// `(args)` to form a call, and `= value` to form a member assignment.
func (p *Parser) parseMemberOrCall(receiver emberast.Node, super bool) emberast.Node {
	nameTok := p.cur
	if nameTok.Type != token.IDENT && !isKeywordIdent(nameTok.Type) {
		p.errorf("expected member name, got %s", nameTok.Type)
		return receiver
	}
	p.next()

	if p.cur.Type == token.ASSIGN {
		p.next()
		value := p.parseExpression(lowest)
		n := &emberast.MemberAssign{Receiver: receiver, Super: super, Name: nameTok.Literal, Value: value}
		setPos(n, nameTok)
		return n
	}

	access := &emberast.MemberAccess{Receiver: receiver, Super: super, Name: nameTok.Literal}
	setPos(access, nameTok)

	if p.cur.Type == token.LPAREN {
		p.next()
		return p.parseCall(access, false)
	}
	return access
}

func (p *Parser) parseCall(callee emberast.Node, superCall bool) emberast.Node {
	openTok := p.cur
	args := p.parseArgs()
	n := &emberast.Call{Callee: callee, Args: args, SuperCall: superCall}
	setPos(n, openTok)
	return n
}

// parseArgs parses a parenthesised argument list. The opening paren has
// already been consumed by the caller.
func (p *Parser) parseArgs() []emberast.Node {
	var args []emberast.Node
	if p.cur.Type == token.RPAREN {
		p.next()
		return args
	}
	for {
		args = append(args, p.parseExpression(lowest))
		if p.cur.Type == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseIdentOrAssign() emberast.Node {
	tok := p.cur
	p.next()
	if p.cur.Type == token.ASSIGN {
		p.next()
		value := p.parseExpression(lowest)
		n := &emberast.Assign{Name: tok.Literal, Value: value}
		setPos(n, tok)
		return n
	}
	n := &emberast.Identifier{Name: tok.Literal}
	setPos(n, tok)
	return n
}

// parseSelfOrMember parses `@` (bare self) or `@name` (sugar for a member
// access/assignment on self).
func (p *Parser) parseSelfOrMember() emberast.Node {
	atTok := p.cur
	p.next()
	self := &emberast.SelfExpr{}
	setPos(self, atTok)

	if p.cur.Type != token.IDENT {
		return self
	}
	return p.parseMemberOrCall(self, false)
}

func (p *Parser) parseSuper() emberast.Node {
	tok := p.cur
	p.next()
	switch p.cur.Type {
	case token.DOT:
		p.next()
		return p.parseMemberOrCall(nil, true)
	case token.LPAREN:
		p.next()
		return p.parseCall(nil, true)
	default:
		n := &emberast.SuperExpr{}
		setPos(n, tok)
		return n
	}
}

func (p *Parser) parseVarDecl() emberast.Node {
	tok := p.cur
	p.next()
	if p.cur.Type != token.IDENT {
		p.errorf("expected identifier after 'var'")
		return nil
	}
	name := p.cur.Literal
	p.next()
	var init emberast.Node
	if p.cur.Type == token.ASSIGN {
		p.next()
		init = p.parseExpression(lowest)
	}
	n := &emberast.VarDecl{Name: name, Init: init}
	setPos(n, tok)
	return n
}

func (p *Parser) parseParamList() []string {
	p.expect(token.LPAREN)
	var params []string
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		params = append(params, p.cur.Literal)
		p.next()
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseFunctionDecl() emberast.Node {
	tok := p.cur
	p.next()
	name := ""
	if p.cur.Type == token.IDENT {
		name = p.cur.Literal
		p.next()
	}
	var params []string
	if p.cur.Type == token.LPAREN {
		params = p.parseParamList()
	}
	body := p.parseSequence()
	fn := &emberast.FunctionDecl{Name: name, Params: params, Body: body}
	setPos(fn, tok)

	if name == "" {
		return fn
	}
	// A named function literal at statement position sugars to `var name = ...`.
	decl := &emberast.VarDecl{Name: name, Init: fn}
	setPos(decl, tok)
	return decl
}

func (p *Parser) parseSequence() emberast.Node {
	tok := p.cur
	if !p.expect(token.LBRACE) {
		return &emberast.Sequence{}
	}
	seq := &emberast.Sequence{}
	setPos(seq, tok)
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		n := p.parseExpression(lowest)
		if n != nil {
			seq.Children = append(seq.Children, n)
		}
		for p.cur.Type == token.SEMICOLON {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return seq
}

func (p *Parser) parseClassDecl() emberast.Node {
	tok := p.cur
	p.next()
	if p.cur.Type != token.IDENT {
		p.errorf("expected class name")
		return nil
	}
	name := p.cur.Literal
	p.next()

	var super emberast.Node
	if p.cur.Type == token.COLON {
		p.next()
		super = p.parseExpression(call)
	}

	p.expect(token.LBRACE)
	var members []emberast.ClassMember
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		members = append(members, p.parseClassMember())
	}
	p.expect(token.RBRACE)

	n := &emberast.ClassDecl{Name: name, Superclass: super, Members: members}
	setPos(n, tok)
	return n
}

func (p *Parser) parseClassMember() emberast.ClassMember {
	public := true
	if p.cur.Type == token.PRIVATE {
		public = false
		p.next()
	}

	switch p.cur.Type {
	case token.INIT:
		p.next()
		var params []string
		if p.cur.Type == token.LPAREN {
			params = p.parseParamList()
		}
		body := p.parseSequence()
		return emberast.ClassMember{Kind: emberast.MemberInit, Name: "init", Params: params, Body: body, Public: public}
	case token.GET:
		p.next()
		propName := p.cur.Literal
		p.next()
		var body emberast.Node
		if p.cur.Type == token.LBRACE {
			body = p.parseSequence()
		} else if p.cur.Type == token.SEMICOLON {
			p.next()
		}
		return emberast.ClassMember{Kind: emberast.MemberGetter, Name: propName, Body: body, Public: public}
	case token.SET:
		p.next()
		propName := p.cur.Literal
		p.next()
		params := p.parseParamList()
		body := p.parseSequence()
		return emberast.ClassMember{Kind: emberast.MemberSetter, Name: propName, Params: params, Body: body, Public: public}
	case token.FUNCTION:
		p.next()
		methodName := p.cur.Literal
		p.next()
		var params []string
		if p.cur.Type == token.LPAREN {
			params = p.parseParamList()
		}
		body := p.parseSequence()
		return emberast.ClassMember{Kind: emberast.MemberMethod, Name: methodName, Params: params, Body: body, Public: public}
	default:
		p.errorf("expected class member, got %s", p.cur.Type)
		p.next()
		return emberast.ClassMember{}
	}
}

func (p *Parser) parseIf() emberast.Node {
	tok := p.cur
	var branches []emberast.IfBranch
	var elseExpr emberast.Node

	for {
		p.next() // consume 'if' or 'else if'
		p.expect(token.LPAREN)
		test := p.parseExpression(lowest)
		p.expect(token.RPAREN)
		expr := p.parseSequence()
		branches = append(branches, emberast.IfBranch{Test: test, Expr: expr})

		if p.cur.Type != token.ELSE {
			break
		}
		p.next()
		if p.cur.Type == token.IF {
			continue
		}
		elseExpr = p.parseSequence()
		break
	}

	n := &emberast.If{Branches: branches, Else: elseExpr}
	setPos(n, tok)
	return n
}

func (p *Parser) parseTry() emberast.Node {
	tok := p.cur
	p.next()
	body := p.parseSequence()

	var excepts []emberast.ExceptClause
	for p.cur.Type == token.EXCEPT {
		p.next()
		var classes []emberast.Node
		if p.cur.Type == token.LPAREN {
			p.next()
			for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
				classes = append(classes, p.parseExpression(lowest))
				if p.cur.Type == token.COMMA {
					p.next()
					continue
				}
				break
			}
			p.expect(token.RPAREN)
		} else if p.cur.Type != token.LBRACE {
			// Bare form `except Class, ... (var)`: parsing at call precedence
			// leaves a following `(var)` for the variable-name check below.
			for {
				classes = append(classes, p.parseExpression(call))
				if p.cur.Type != token.COMMA {
					break
				}
				p.next()
			}
		}
		varName := ""
		if p.cur.Type == token.LPAREN {
			p.next()
			if p.cur.Type == token.IDENT {
				varName = p.cur.Literal
				p.next()
			}
			p.expect(token.RPAREN)
		}
		clauseBody := p.parseSequence()
		excepts = append(excepts, emberast.ExceptClause{Classes: classes, VarName: varName, Body: clauseBody})
	}

	var elseExpr, finallyExpr emberast.Node
	if p.cur.Type == token.ELSE {
		p.next()
		elseExpr = p.parseSequence()
	}
	if p.cur.Type == token.FINALLY {
		p.next()
		finallyExpr = p.parseSequence()
	}

	n := &emberast.Try{Body: body, Excepts: excepts, Else: elseExpr, Finally: finallyExpr}
	setPos(n, tok)
	return n
}

func (p *Parser) parseImport() emberast.Node {
	tok := p.cur
	p.next()
	level := 0
	for p.cur.Type == token.DOT {
		level++
		p.next()
	}
	if p.cur.Type != token.IDENT {
		p.errorf("expected module name after 'import'")
		return nil
	}
	name := p.cur.Literal
	p.next()
	n := &emberast.Import{Level: level, Name: name}
	setPos(n, tok)
	return n
}

func (p *Parser) parseExport() emberast.Node {
	tok := p.cur
	p.next()
	if p.cur.Type != token.IDENT {
		p.errorf("expected identifier after 'export'")
		return nil
	}
	name := p.cur.Literal
	p.next()
	var value emberast.Node
	if p.cur.Type == token.ASSIGN {
		p.next()
		value = p.parseExpression(lowest)
	}
	n := &emberast.Export{Name: name, Value: value}
	setPos(n, tok)
	return n
}

func isKeywordIdent(t token.Type) bool {
	// Several keywords (get, set, init) are also legal member names.
	switch t {
	case token.GET, token.SET, token.INIT, token.CLASS, token.FUNCTION:
		return true
	}
	return false
}

// posSetter is implemented by every concrete AST node via its embedded
// base, letting the parser stamp source positions without a constructor
// per node type.
type posSetter interface {
	SetPos(token.Position)
}

func setPos(n emberast.Node, tok token.Token) {
	if n == nil {
		return
	}
	if ps, ok := n.(posSetter); ok {
		ps.SetPos(tok.Pos)
	}
}
