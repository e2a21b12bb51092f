// Package parser turns Spool source text into the AST consumed by the
// evaluator. Every statement form begins with a distinguishing token, so the
// grammar needs no statement separators; stray semicolons are permitted.
package parser

import (
	"fmt"

	"spool/interpreter-go/pkg/ast"
)

type parser struct {
	toks []Token
	i    int
}

// Parse parses a whole program: leading imports, then statements until EOF.
func Parse(source string) (*ast.Program, error) {
	toks, err := Lex(source)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}

	var imports []*ast.ImportStatement
	for p.peek().Type == tokImport {
		p.advance()
		tok, err := p.expect(tokString, "import path string")
		if err != nil {
			return nil, err
		}
		imports = append(imports, ast.NewImportStatement(tok.Lexeme))
		p.skipSemis()
	}

	body, err := p.statementsUntil(tokEOF)
	if err != nil {
		return nil, err
	}
	return ast.NewProgram(body, imports), nil
}

// ParseStatements parses a bare statement sequence, as submitted to the REPL.
func ParseStatements(source string) ([]ast.Statement, error) {
	toks, err := Lex(source)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.statementsUntil(tokEOF)
}

func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) advance() Token {
	tok := p.toks[p.i]
	if tok.Type != tokEOF {
		p.i++
	}
	return tok
}

func (p *parser) match(tt TokenType) bool {
	if p.peek().Type == tt {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(tt TokenType, what string) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.errorAt(tok, "expected %s", what)
	}
	return p.advance(), nil
}

func (p *parser) errorAt(tok Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if tok.Type == tokEOF {
		return fmt.Errorf("line %d:%d: %s, found end of input", tok.Line, tok.Col, msg)
	}
	return fmt.Errorf("line %d:%d: %s, found %q", tok.Line, tok.Col, msg, tok.Lexeme)
}

func (p *parser) skipSemis() {
	for p.peek().Type == tokSemi {
		p.advance()
	}
}

func (p *parser) statementsUntil(end TokenType) ([]ast.Statement, error) {
	var body []ast.Statement
	p.skipSemis()
	for p.peek().Type != end {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		p.skipSemis()
	}
	p.advance()
	return body, nil
}

func (p *parser) statement() (ast.Statement, error) {
	tok := p.peek()
	switch tok.Type {
	case tokLeft:
		p.advance()
		path, err := p.path()
		if err != nil {
			return nil, err
		}
		return ast.NewMoveLeft(path), nil
	case tokRight:
		p.advance()
		path, err := p.path()
		if err != nil {
			return nil, err
		}
		return ast.NewMoveRight(path), nil
	case tokWrite:
		p.advance()
		path, err := p.path()
		if err != nil {
			return nil, err
		}
		value, err := p.value()
		if err != nil {
			return nil, err
		}
		return ast.NewWrite(path, value), nil
	case tokWriteStr:
		p.advance()
		path, err := p.path()
		if err != nil {
			return nil, err
		}
		lit, err := p.expect(tokString, "string literal")
		if err != nil {
			return nil, err
		}
		return ast.NewWriteString(path, lit.Lexeme), nil
	case tokVar:
		return p.varDecl()
	case tokTape:
		return p.tapeDecl()
	case tokStruct:
		return p.structDecl()
	case tokObj:
		return p.objDecl()
	case tokFn:
		return p.funcDecl()
	case tokIf:
		return p.ifStatement()
	case tokWhile:
		return p.whileStatement()
	case tokAccept:
		p.advance()
		return ast.NewAccept(), nil
	case tokReject:
		p.advance()
		return ast.NewReject(), nil
	case tokPrint:
		return p.printStatement()
	case tokDump:
		p.advance()
		path, err := p.path()
		if err != nil {
			return nil, err
		}
		return ast.NewDumpTape(path), nil
	case tokIdent:
		return p.call()
	case tokImport:
		return nil, p.errorAt(tok, "imports must precede all statements")
	default:
		return nil, p.errorAt(tok, "expected a statement")
	}
}

func (p *parser) varDecl() (ast.Statement, error) {
	p.advance()
	name, err := p.expect(tokIdent, "variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokAssign, "'='"); err != nil {
		return nil, err
	}
	value, err := p.value()
	if err != nil {
		return nil, err
	}
	return ast.NewVarDecl(name.Lexeme, value), nil
}

func (p *parser) tapeDecl() (ast.Statement, error) {
	p.advance()
	name, err := p.expect(tokIdent, "tape name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokAssign, "'='"); err != nil {
		return nil, err
	}
	content, err := p.expect(tokString, "tape contents string")
	if err != nil {
		return nil, err
	}
	return ast.NewTapeDecl(name.Lexeme, content.Lexeme), nil
}

func (p *parser) structDecl() (ast.Statement, error) {
	p.advance()
	name, err := p.expect(tokIdent, "struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	var fields []*ast.FieldDecl
	for p.peek().Type != tokRBrace {
		kind, err := p.paramKind()
		if err != nil {
			return nil, err
		}
		fieldName, err := p.expect(tokIdent, "field name")
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.NewFieldDecl(fieldName.Lexeme, kind))
		if !p.match(tokComma) && !p.match(tokSemi) {
			break
		}
	}
	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return ast.NewStructDecl(name.Lexeme, fields), nil
}

func (p *parser) objDecl() (ast.Statement, error) {
	p.advance()
	name, err := p.expect(tokIdent, "object name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokAssign, "'='"); err != nil {
		return nil, err
	}
	structName, err := p.expect(tokIdent, "struct name")
	if err != nil {
		return nil, err
	}
	args, err := p.argList()
	if err != nil {
		return nil, err
	}
	return ast.NewObjDecl(name.Lexeme, structName.Lexeme, args), nil
}

func (p *parser) funcDecl() (ast.Statement, error) {
	p.advance()
	name, err := p.expect(tokIdent, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	var params []*ast.Param
	for p.peek().Type != tokRParen {
		kind, err := p.paramKind()
		if err != nil {
			return nil, err
		}
		paramName, err := p.expect(tokIdent, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, ast.NewParam(paramName.Lexeme, kind))
		if !p.match(tokComma) {
			break
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewFuncDecl(name.Lexeme, params, body), nil
}

func (p *parser) paramKind() (ast.ParamKind, error) {
	switch p.peek().Type {
	case tokTape:
		p.advance()
		return ast.ParamTape, nil
	case tokVar:
		p.advance()
		return ast.ParamSymbol, nil
	default:
		return "", p.errorAt(p.peek(), "expected 'tape' or 'var'")
	}
}

func (p *parser) call() (ast.Statement, error) {
	name := p.advance()
	args, err := p.argList()
	if err != nil {
		return nil, err
	}
	return ast.NewCall(name.Lexeme, args), nil
}

func (p *parser) argList() ([]ast.Argument, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Argument
	for p.peek().Type != tokRParen {
		arg, err := p.argument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(tokComma) {
			break
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) argument() (ast.Argument, error) {
	if p.peek().Type == tokString {
		tok := p.advance()
		return ast.NewStringLit(tok.Lexeme), nil
	}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	return v.(ast.Argument), nil
}

func (p *parser) ifStatement() (ast.Statement, error) {
	p.advance()
	branch, err := p.ifBranch()
	if err != nil {
		return nil, err
	}
	branches := []*ast.IfBranch{branch}
	var elseBody *ast.Block
	for p.match(tokElse) {
		if p.match(tokIf) {
			branch, err := p.ifBranch()
			if err != nil {
				return nil, err
			}
			branches = append(branches, branch)
			continue
		}
		elseBody, err = p.block()
		if err != nil {
			return nil, err
		}
		break
	}
	return ast.NewIf(branches, elseBody), nil
}

func (p *parser) ifBranch() (*ast.IfBranch, error) {
	guard, err := p.guard()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewIfBranch(guard, body), nil
}

func (p *parser) whileStatement() (ast.Statement, error) {
	p.advance()
	guard, err := p.guard()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(guard, body), nil
}

func (p *parser) printStatement() (ast.Statement, error) {
	p.advance()
	if p.peek().Type == tokString {
		tok := p.advance()
		return ast.NewPrintString(tok.Lexeme), nil
	}
	if _, err := p.expect(tokRead, "string literal or 'read'"); err != nil {
		return nil, err
	}
	path, err := p.path()
	if err != nil {
		return nil, err
	}
	return ast.NewPrintRead(path), nil
}

func (p *parser) block() (*ast.Block, error) {
	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	body, err := p.statementsUntil(tokRBrace)
	if err != nil {
		return nil, err
	}
	return ast.NewBlock(body), nil
}

func (p *parser) path() (*ast.Path, error) {
	first, err := p.expect(tokIdent, "variable name")
	if err != nil {
		return nil, err
	}
	segments := []string{first.Lexeme}
	for p.match(tokDot) {
		seg, err := p.expect(tokIdent, "field name")
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg.Lexeme)
	}
	return ast.NewPath(segments...), nil
}

func (p *parser) value() (ast.ValueExpr, error) {
	tok := p.peek()
	switch tok.Type {
	case tokChar:
		p.advance()
		return ast.NewSymbolLit([]rune(tok.Lexeme)[0]), nil
	case tokRead:
		p.advance()
		path, err := p.path()
		if err != nil {
			return nil, err
		}
		return ast.NewRead(path), nil
	case tokIdent:
		return p.path()
	default:
		return nil, p.errorAt(tok, "expected a value")
	}
}

// Guards: not > and > or, with parentheses for grouping.

func (p *parser) guard() (ast.GuardExpr, error) {
	return p.orExpr()
}

func (p *parser) orExpr() (ast.GuardExpr, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.match(tokOr) {
		right, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewOr(left, right)
	}
	return left, nil
}

func (p *parser) andExpr() (ast.GuardExpr, error) {
	left, err := p.guardUnary()
	if err != nil {
		return nil, err
	}
	for p.match(tokAnd) {
		right, err := p.guardUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewAnd(left, right)
	}
	return left, nil
}

func (p *parser) guardUnary() (ast.GuardExpr, error) {
	tok := p.peek()
	switch tok.Type {
	case tokNot:
		p.advance()
		inner, err := p.guardUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewNot(inner), nil
	case tokTrue:
		p.advance()
		return ast.NewBoolLit(true), nil
	case tokFalse:
		p.advance()
		return ast.NewBoolLit(false), nil
	case tokEq:
		p.advance()
		left, right, err := p.valuePair()
		if err != nil {
			return nil, err
		}
		return ast.NewEq(left, right), nil
	case tokLe:
		p.advance()
		left, right, err := p.valuePair()
		if err != nil {
			return nil, err
		}
		return ast.NewLe(left, right), nil
	case tokLParen:
		p.advance()
		inner, err := p.guard()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errorAt(tok, "expected a guard expression")
	}
}

func (p *parser) valuePair() (ast.ValueExpr, ast.ValueExpr, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, nil, err
	}
	left, err := p.value()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(tokComma, "','"); err != nil {
		return nil, nil, err
	}
	right, err := p.value()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
