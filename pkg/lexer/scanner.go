// Package lexer turns Lox source text into a flat token stream.
package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
)

// Scanner performs lexical analysis over a complete source string. It never
// stops on a bad character: the error is reported and scanning continues.
type Scanner struct {
	source string
	diags  *driver.Diagnostics

	start   int // first byte of the lexeme being scanned
	current int // byte about to be consumed
	line    int // line of the current byte
	tokens  []ast.Token
}

// New creates a scanner; lexical errors go to diags (may be nil).
func New(source string, diags *driver.Diagnostics) *Scanner {
	return &Scanner{source: source, diags: diags, line: 1}
}

// Scan is shorthand for New(source, diags).ScanTokens().
func Scan(source string, diags *driver.Diagnostics) []ast.Token {
	return New(source, diags).ScanTokens()
}

// ScanTokens consumes the whole source. The result always ends with EOF.
func (s *Scanner) ScanTokens() []ast.Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, ast.Token{Type: ast.EOF, Lexeme: "", Line: s.line})
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(ast.LeftParen)
	case ')':
		s.addToken(ast.RightParen)
	case '{':
		s.addToken(ast.LeftBrace)
	case '}':
		s.addToken(ast.RightBrace)
	case ',':
		s.addToken(ast.Comma)
	case '.':
		s.addToken(ast.Dot)
	case ';':
		s.addToken(ast.Semicolon)
	case '?':
		s.addToken(ast.Question)
	case ':':
		s.addToken(ast.Colon)
	case '-':
		s.addToken(s.choose('=', ast.MinusEqual, ast.Minus))
	case '+':
		s.addToken(s.choose('=', ast.PlusEqual, ast.Plus))
	case '*':
		s.addToken(s.choose('=', ast.StarEqual, ast.Star))
	case '!':
		s.addToken(s.choose('=', ast.BangEqual, ast.Bang))
	case '=':
		s.addToken(s.choose('=', ast.EqualEqual, ast.Equal))
	case '<':
		s.addToken(s.choose('=', ast.LessEqual, ast.Less))
	case '>':
		s.addToken(s.choose('=', ast.GreaterEqual, ast.Greater))
	case '/':
		s.slash()
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			s.unexpected()
		}
	}
}

func (s *Scanner) slash() {
	switch {
	case s.match('/'):
		for s.peek() != '\n' && !s.isAtEnd() {
			s.advance()
		}
	case s.match('*'):
		s.blockComment()
	case s.match('='):
		s.addToken(ast.SlashEqual)
	default:
		s.addToken(ast.Slash)
	}
}

// blockComment skips a `/* ... */` comment. Comments do not nest.
func (s *Scanner) blockComment() {
	startLine := s.line
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.current += 2
			return
		}
		if s.advance() == '\n' {
			s.line++
		}
	}
	s.diags.ErrorAtLine(driver.StageLexical, startLine, "Unterminated block comment.")
}

func (s *Scanner) scanString() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.diags.ErrorAtLine(driver.StageLexical, s.line, "Unterminated string.")
		return
	}
	s.advance()

	value := s.source[s.start+1 : s.current-1]
	s.addLiteral(ast.String, value)
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	// A trailing '.' without digits is left for the parser as a Dot.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	text := s.source[s.start:s.current]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.diags.ErrorAtLine(driver.StageLexical, s.line, fmt.Sprintf("Invalid number literal '%s'.", text))
		return
	}
	s.addLiteral(ast.Number, value)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	kind, ok := ast.Keywords[text]
	if !ok {
		kind = ast.Identifier
	}
	s.addToken(kind)
}

// unexpected reports the character that started at s.start, consuming the
// rest of a multi-byte rune so it is reported once.
func (s *Scanner) unexpected() {
	r, size := utf8.DecodeRuneInString(s.source[s.start:])
	if size > 1 {
		s.current = s.start + size
	}
	s.diags.ErrorAtLine(driver.StageLexical, s.line, fmt.Sprintf("Unexpected character '%c'.", r))
}

func (s *Scanner) choose(next byte, matched, otherwise ast.TokenType) ast.TokenType {
	if s.match(next) {
		return matched
	}
	return otherwise
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) addToken(kind ast.TokenType) {
	s.addLiteral(kind, nil)
}

// addLiteral emits a token stamped with the line it started on.
func (s *Scanner) addLiteral(kind ast.TokenType, literal any) {
	text := s.source[s.start:s.current]
	line := s.line - countNewlines(text)
	s.tokens = append(s.tokens, ast.Token{Type: kind, Lexeme: text, Literal: literal, Line: line})
}

func countNewlines(text string) int {
	n := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			n++
		}
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
