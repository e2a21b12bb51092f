package parser

import (
	"fmt"
	"unicode"
)

// TokenType is the kind of a lexed token.
type TokenType int

const (
	tokEOF TokenType = iota
	tokIllegal

	// Punctuation
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokComma
	tokSemi
	tokDot
	tokAssign

	// Literals & identifiers
	tokIdent
	tokChar
	tokString

	// Keywords
	tokTape
	tokVar
	tokStruct
	tokObj
	tokFn
	tokIf
	tokElse
	tokWhile
	tokNot
	tokAnd
	tokOr
	tokEq
	tokLe
	tokTrue
	tokFalse
	tokRead
	tokLeft
	tokRight
	tokWrite
	tokWriteStr
	tokPrint
	tokDump
	tokAccept
	tokReject
	tokImport
)

var keywords = map[string]TokenType{
	"tape":     tokTape,
	"var":      tokVar,
	"struct":   tokStruct,
	"obj":      tokObj,
	"fn":       tokFn,
	"if":       tokIf,
	"else":     tokElse,
	"while":    tokWhile,
	"not":      tokNot,
	"and":      tokAnd,
	"or":       tokOr,
	"eq":       tokEq,
	"le":       tokLe,
	"true":     tokTrue,
	"false":    tokFalse,
	"read":     tokRead,
	"left":     tokLeft,
	"right":    tokRight,
	"write":    tokWrite,
	"writestr": tokWriteStr,
	"print":    tokPrint,
	"dump":     tokDump,
	"accept":   tokAccept,
	"reject":   tokReject,
	"import":   tokImport,
}

// Token is one lexed unit with its source position.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

// Lex tokenizes Spool source. The only lexical errors are unterminated or
// malformed literals.
func Lex(source string) ([]Token, error) {
	l := &lexer{src: []rune(source), line: 1, col: 1}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) skipTrivia() {
	for l.pos < len(l.src) {
		r := l.peek()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) next() (Token, error) {
	l.skipTrivia()
	line, col := l.line, l.col
	if l.pos >= len(l.src) {
		return Token{Type: tokEOF, Line: line, Col: col}, nil
	}

	r := l.advance()
	switch r {
	case '{':
		return Token{Type: tokLBrace, Lexeme: "{", Line: line, Col: col}, nil
	case '}':
		return Token{Type: tokRBrace, Lexeme: "}", Line: line, Col: col}, nil
	case '(':
		return Token{Type: tokLParen, Lexeme: "(", Line: line, Col: col}, nil
	case ')':
		return Token{Type: tokRParen, Lexeme: ")", Line: line, Col: col}, nil
	case ',':
		return Token{Type: tokComma, Lexeme: ",", Line: line, Col: col}, nil
	case ';':
		return Token{Type: tokSemi, Lexeme: ";", Line: line, Col: col}, nil
	case '.':
		return Token{Type: tokDot, Lexeme: ".", Line: line, Col: col}, nil
	case '=':
		return Token{Type: tokAssign, Lexeme: "=", Line: line, Col: col}, nil
	case '\'':
		return l.charLiteral(line, col)
	case '"':
		return l.stringLiteral(line, col)
	}

	if isIdentStart(r) {
		start := l.pos - 1
		for l.pos < len(l.src) && isIdentPart(l.peek()) {
			l.advance()
		}
		lexeme := string(l.src[start:l.pos])
		if kw, ok := keywords[lexeme]; ok {
			return Token{Type: kw, Lexeme: lexeme, Line: line, Col: col}, nil
		}
		return Token{Type: tokIdent, Lexeme: lexeme, Line: line, Col: col}, nil
	}

	return Token{Type: tokIllegal, Lexeme: string(r), Line: line, Col: col},
		fmt.Errorf("line %d:%d: unexpected character %q", line, col, r)
}

func (l *lexer) charLiteral(line, col int) (Token, error) {
	if l.pos >= len(l.src) {
		return Token{}, fmt.Errorf("line %d:%d: unterminated symbol literal", line, col)
	}
	r := l.advance()
	if r == '\\' {
		esc, err := l.escape(line, col)
		if err != nil {
			return Token{}, err
		}
		r = esc
	}
	if l.pos >= len(l.src) || l.advance() != '\'' {
		return Token{}, fmt.Errorf("line %d:%d: unterminated symbol literal", line, col)
	}
	return Token{Type: tokChar, Lexeme: string(r), Line: line, Col: col}, nil
}

func (l *lexer) stringLiteral(line, col int) (Token, error) {
	var out []rune
	for {
		if l.pos >= len(l.src) {
			return Token{}, fmt.Errorf("line %d:%d: unterminated string literal", line, col)
		}
		r := l.advance()
		if r == '"' {
			return Token{Type: tokString, Lexeme: string(out), Line: line, Col: col}, nil
		}
		if r == '\\' {
			esc, err := l.escape(line, col)
			if err != nil {
				return Token{}, err
			}
			r = esc
		}
		out = append(out, r)
	}
}

func (l *lexer) escape(line, col int) (rune, error) {
	if l.pos >= len(l.src) {
		return 0, fmt.Errorf("line %d:%d: unterminated escape sequence", line, col)
	}
	r := l.advance()
	switch r {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case '\\', '\'', '"':
		return r, nil
	default:
		return 0, fmt.Errorf("line %d:%d: unknown escape sequence \\%c", line, col, r)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
