// Package parser turns a token stream into the internal/ast tree. Out of
// scope for the interpreter core proper; grounded on
// recursive-descent-plus-precedence-climbing
// idiom, trimmed to the small grammar internal/ast describes.
package parser

import (
	"fmt"

	"github.com/zombocoder/o2l/internal/ast"
	"github.com/zombocoder/o2l/internal/lexer"
	"github.com/zombocoder/o2l/internal/token"
)

type Parser struct {
	lex *lexer.Lexer
	cur token.Token
	nxt token.Token
}

func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.cur = p.lex.Next()
	p.nxt = p.lex.Next()
	return p
}

func (p *Parser) advance() {
	p.cur = p.nxt
	p.nxt = p.lex.Next()
}

func (p *Parser) pos() ast.Position {
	return ast.Position{Line: p.cur.Line, Column: p.cur.Column}
}

func (p *Parser) expect(k token.Kind, what string) token.Token {
	if p.cur.Kind != k {
		panic(&ParseError{Msg: fmt.Sprintf("expected %s at line %d, col %d, got %q", what, p.cur.Line, p.cur.Column, p.cur.Lit)})
	}
	t := p.cur
	p.advance()
	return t
}

// ParseError signals a syntax error; ParseFile recovers it and returns it
// as its error, which internal/cli reports as "o2l: syntax error in ...".
type ParseError struct{ Msg string }

func (e *ParseError) Error() string { return e.Msg }

// ParseFile parses an entire .obq source file.
func ParseFile(src string) (file *ast.File, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()
	p := New(src)
	file = p.parseFile()
	return file, nil
}

func (p *Parser) parseFile() *ast.File {
	f := &ast.File{}
	f.Position = p.pos()
	for p.cur.Kind != token.EOF {
		f.Objects = append(f.Objects, p.parseObject())
	}
	return f
}

func (p *Parser) parseObject() *ast.ObjectDecl {
	pos := p.pos()
	p.expect(token.OBJECT, "'object'")
	name := p.expect(token.IDENT, "object name").Lit
	p.expect(token.LBRACE, "'{'")
	decl := &ast.ObjectDecl{Name: name}
	decl.Position = pos
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		decl.Methods = append(decl.Methods, p.parseMethod())
	}
	p.expect(token.RBRACE, "'}'")
	return decl
}

func (p *Parser) parseMethod() *ast.MethodDecl {
	pos := p.pos()
	external := false
	if p.cur.Kind == token.EXTERNAL {
		external = true
		p.advance()
	}
	var name string
	if p.cur.Kind == token.IDENT && p.cur.Lit == "constructor" {
		// `constructor(...) { ... }` is written without the `method` keyword.
		name = p.cur.Lit
		p.advance()
	} else {
		p.expect(token.METHOD, "'method'")
		name = p.expect(token.IDENT, "method name").Lit
	}
	p.expect(token.LPAREN, "'('")
	var params []string
	for p.cur.Kind != token.RPAREN {
		params = append(params, p.expect(token.IDENT, "parameter name").Lit)
		if p.cur.Kind == token.COLON {
			p.advance()
			p.expect(token.IDENT, "parameter type")
		}
		if p.cur.Kind == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RPAREN, "')'")
	if p.cur.Kind == token.ARROW {
		p.advance()
		p.expect(token.IDENT, "return type")
	}
	body := p.parseBlock()
	m := &ast.MethodDecl{Name: name, Params: params, External: external, Body: body}
	m.Position = pos
	return m
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.pos()
	p.expect(token.LBRACE, "'{'")
	b := &ast.Block{}
	b.Position = pos
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		b.Stmts = append(b.Stmts, p.parseStmt())
	}
	p.expect(token.RBRACE, "'}'")
	return b
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Kind {
	case token.CONST:
		return p.parseVarDecl(true)
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.RETURN:
		return p.parseReturn()
	case token.THROW:
		return p.parseThrow()
	case token.TRY:
		return p.parseTry()
	case token.IDENT:
		// Disambiguate "name: T = expr" / "name = expr" from a bare
		// expression statement (e.g. a method call).
		if p.nxt.Kind == token.COLON {
			return p.parseVarDecl(false)
		}
		if p.nxt.Kind == token.ASSIGN {
			return p.parseAssign()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseVarDecl(isConst bool) *ast.VarDecl {
	pos := p.pos()
	if isConst {
		p.expect(token.CONST, "'const'")
	}
	name := p.expect(token.IDENT, "variable name").Lit
	typeName := ""
	if p.cur.Kind == token.COLON {
		p.advance()
		typeName = p.parseTypeName()
	}
	p.expect(token.ASSIGN, "'='")
	val := p.parseExpr(0)
	p.consumeSemi()
	v := &ast.VarDecl{Name: name, TypeName: typeName, Const: isConst, Value: val}
	v.Position = pos
	return v
}

// parseTypeName accepts an identifier type name, optionally with generic
// arguments (e.g. List<Int>), loosely enough to skip past it; O²L's
// declaration-time element check only needs the outer name and, for List,
// the inner element name, both of which eval reads back out of the string
// returned here.
func (p *Parser) parseTypeName() string {
	name := p.expect(token.IDENT, "type name").Lit
	if p.cur.Kind == token.LT {
		p.advance()
		name += "<" + p.expect(token.IDENT, "type parameter").Lit
		for p.cur.Kind == token.COMMA {
			p.advance()
			name += "," + p.expect(token.IDENT, "type parameter").Lit
		}
		p.expect(token.GT, "'>'")
		name += ">"
	}
	return name
}

func (p *Parser) parseAssign() *ast.Assign {
	pos := p.pos()
	name := p.expect(token.IDENT, "variable name").Lit
	p.expect(token.ASSIGN, "'='")
	val := p.parseExpr(0)
	p.consumeSemi()
	a := &ast.Assign{Name: name, Value: val}
	a.Position = pos
	return a
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	pos := p.pos()
	x := p.parseExpr(0)
	p.consumeSemi()
	s := &ast.ExprStmt{X: x}
	s.Position = pos
	return s
}

func (p *Parser) consumeSemi() {
	if p.cur.Kind == token.SEMI {
		p.advance()
	}
}

func (p *Parser) parseIf() *ast.If {
	pos := p.pos()
	p.expect(token.IF, "'if'")
	p.expect(token.LPAREN, "'('")
	cond := p.parseExpr(0)
	p.expect(token.RPAREN, "')'")
	then := p.parseBlock()
	n := &ast.If{Cond: cond, Then: then}
	n.Position = pos
	if p.cur.Kind == token.ELSE {
		p.advance()
		if p.cur.Kind == token.IF {
			n.Else = p.parseIf()
		} else {
			n.Else = p.parseBlock()
		}
	}
	return n
}

func (p *Parser) parseWhile() *ast.While {
	pos := p.pos()
	p.expect(token.WHILE, "'while'")
	p.expect(token.LPAREN, "'('")
	cond := p.parseExpr(0)
	p.expect(token.RPAREN, "')'")
	body := p.parseBlock()
	n := &ast.While{Cond: cond, Body: body}
	n.Position = pos
	return n
}

func (p *Parser) parseReturn() *ast.Return {
	pos := p.pos()
	p.expect(token.RETURN, "'return'")
	var v ast.Expr
	if p.cur.Kind != token.SEMI && p.cur.Kind != token.RBRACE {
		v = p.parseExpr(0)
	}
	p.consumeSemi()
	n := &ast.Return{Value: v}
	n.Position = pos
	return n
}

func (p *Parser) parseThrow() *ast.Throw {
	pos := p.pos()
	p.expect(token.THROW, "'throw'")
	v := p.parseExpr(0)
	p.consumeSemi()
	n := &ast.Throw{Value: v}
	n.Position = pos
	return n
}

func (p *Parser) parseTry() *ast.TryCatchFinally {
	pos := p.pos()
	p.expect(token.TRY, "'try'")
	tryBlock := p.parseBlock()
	n := &ast.TryCatchFinally{Try: tryBlock}
	n.Position = pos
	if p.cur.Kind == token.CATCH {
		p.advance()
		p.expect(token.LPAREN, "'('")
		n.CatchVar = p.expect(token.IDENT, "catch variable").Lit
		p.expect(token.RPAREN, "')'")
		n.HasCatch = true
		n.Catch = p.parseBlock()
	}
	if p.cur.Kind == token.FINALLY {
		p.advance()
		n.HasFinally = true
		n.Finally = p.parseBlock()
	}
	return n
}

// ---- Expressions: precedence-climbing ----

var precedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, "<=": 4, ">": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

func binOp(k token.Kind) (string, bool) {
	switch k {
	case token.OR:
		return "||", true
	case token.AND:
		return "&&", true
	case token.EQ:
		return "==", true
	case token.NEQ:
		return "!=", true
	case token.LT:
		return "<", true
	case token.LTE:
		return "<=", true
	case token.GT:
		return ">", true
	case token.GTE:
		return ">=", true
	case token.PLUS:
		return "+", true
	case token.MINUS:
		return "-", true
	case token.STAR:
		return "*", true
	case token.SLASH:
		return "/", true
	case token.PERCENT:
		return "%", true
	default:
		return "", false
	}
}

func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		op, ok := binOp(p.cur.Kind)
		if !ok || precedence[op] < minPrec {
			return left
		}
		pos := p.pos()
		p.advance()
		right := p.parseExpr(precedence[op] + 1)
		be := &ast.BinaryExpr{Op: op, Left: left, Right: right}
		be.Position = pos
		left = be
	}
}

func (p *Parser) parseUnary() ast.Expr {
	pos := p.pos()
	if p.cur.Kind == token.NOT || p.cur.Kind == token.MINUS {
		op := "!"
		if p.cur.Kind == token.MINUS {
			op = "-"
		}
		p.advance()
		x := p.parseUnary()
		u := &ast.UnaryExpr{Op: op, X: x}
		u.Position = pos
		return u
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.cur.Kind {
		case token.DOT:
			pos := p.pos()
			p.advance()
			method := p.expect(token.IDENT, "method name").Lit
			var args []ast.Expr
			if p.cur.Kind == token.LPAREN {
				args = p.parseArgs()
			}
			mc := &ast.MethodCall{Receiver: x, Method: method, Args: args}
			mc.Position = pos
			x = mc
		case token.LPAREN:
			// implicit-this call: ident(...) where ident is a method name
			if id, ok := x.(*ast.Identifier); ok {
				pos := p.pos()
				args := p.parseArgs()
				mc := &ast.MethodCall{Receiver: nil, Method: id.Name, Args: args}
				mc.Position = pos
				x = mc
				continue
			}
			return x
		default:
			return x
		}
	}
}

func (p *Parser) parseArgs() []ast.Expr {
	p.expect(token.LPAREN, "'('")
	var args []ast.Expr
	for p.cur.Kind != token.RPAREN {
		args = append(args, p.parseExpr(0))
		if p.cur.Kind == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RPAREN, "')'")
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.pos()
	switch p.cur.Kind {
	case token.INT:
		lit := p.cur.Lit
		p.advance()
		var v int64
		fmt.Sscanf(lit, "%d", &v)
		n := &ast.IntLit{Value: v}
		n.Position = pos
		return n
	case token.LONG:
		lit := p.cur.Lit
		p.advance()
		n := &ast.LongLit{Value: lit}
		n.Position = pos
		return n
	case token.FLOAT:
		lit := p.cur.Lit
		p.advance()
		var v float32
		fmt.Sscanf(lit, "%g", &v)
		n := &ast.FloatLit{Value: v}
		n.Position = pos
		return n
	case token.DOUBLE:
		lit := p.cur.Lit
		p.advance()
		var v float64
		fmt.Sscanf(lit, "%g", &v)
		n := &ast.DoubleLit{Value: v}
		n.Position = pos
		return n
	case token.TRUE:
		p.advance()
		n := &ast.BoolLit{Value: true}
		n.Position = pos
		return n
	case token.FALSE:
		p.advance()
		n := &ast.BoolLit{Value: false}
		n.Position = pos
		return n
	case token.CHAR:
		lit := p.cur.Lit
		p.advance()
		var b byte
		if len(lit) > 0 {
			b = lit[0]
		}
		n := &ast.CharLit{Value: b}
		n.Position = pos
		return n
	case token.TEXT:
		lit := p.cur.Lit
		p.advance()
		n := &ast.TextLit{Value: lit}
		n.Position = pos
		return n
	case token.THIS:
		p.advance()
		n := &ast.ThisExpr{}
		n.Position = pos
		return n
	case token.NEW:
		p.advance()
		name := p.expect(token.IDENT, "type name").Lit
		args := p.parseArgs()
		n := &ast.New{TypeName: name, Args: args}
		n.Position = pos
		return n
	case token.IDENT:
		name := p.cur.Lit
		p.advance()
		n := &ast.Identifier{Name: name}
		n.Position = pos
		return n
	case token.LPAREN:
		p.advance()
		x := p.parseExpr(0)
		p.expect(token.RPAREN, "')'")
		return x
	case token.LBRACKET:
		return p.parseListLit(pos)
	case token.LBRACE:
		return p.parseMapOrSetLit(pos)
	default:
		panic(&ParseError{Msg: fmt.Sprintf("unexpected token %q at line %d, col %d", p.cur.Lit, p.cur.Line, p.cur.Column)})
	}
}

func (p *Parser) parseListLit(pos ast.Position) ast.Expr {
	p.expect(token.LBRACKET, "'['")
	n := &ast.ListLit{}
	n.Position = pos
	for p.cur.Kind != token.RBRACKET {
		n.Elements = append(n.Elements, p.parseExpr(0))
		if p.cur.Kind == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RBRACKET, "']'")
	return n
}

// parseMapOrSetLit disambiguates `{k: v, ...}` (Map) from `{e1, e2, ...}`
// (Set) by looking one token past the first element for a colon.
func (p *Parser) parseMapOrSetLit(pos ast.Position) ast.Expr {
	p.expect(token.LBRACE, "'{'")
	if p.cur.Kind == token.RBRACE {
		p.advance()
		n := &ast.MapLit{}
		n.Position = pos
		return n
	}
	first := p.parseExpr(0)
	if p.cur.Kind == token.COLON {
		p.advance()
		val := p.parseExpr(0)
		n := &ast.MapLit{}
		n.Position = pos
		n.Entries = append(n.Entries, ast.MapEntryLit{Key: first, Value: val})
		for p.cur.Kind == token.COMMA {
			p.advance()
			if p.cur.Kind == token.RBRACE {
				break
			}
			k := p.parseExpr(0)
			p.expect(token.COLON, "':'")
			v := p.parseExpr(0)
			n.Entries = append(n.Entries, ast.MapEntryLit{Key: k, Value: v})
		}
		p.expect(token.RBRACE, "'}'")
		return n
	}
	n := &ast.SetLit{Elements: []ast.Expr{first}}
	n.Position = pos
	for p.cur.Kind == token.COMMA {
		p.advance()
		if p.cur.Kind == token.RBRACE {
			break
		}
		n.Elements = append(n.Elements, p.parseExpr(0))
	}
	p.expect(token.RBRACE, "'}'")
	return n
}
