package ast

import "fmt"

// TokenType identifies the lexical category of a token.
type TokenType int

const (
	// Single-character punctuation.
	LeftParen TokenType = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star
	Question
	Colon

	// One- or two-character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual
	PlusEqual
	MinusEqual
	StarEqual
	SlashEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Break
	Class
	Continue
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var tokenTypeNames = [...]string{
	LeftParen:    "LEFT_PAREN",
	RightParen:   "RIGHT_PAREN",
	LeftBrace:    "LEFT_BRACE",
	RightBrace:   "RIGHT_BRACE",
	Comma:        "COMMA",
	Dot:          "DOT",
	Minus:        "MINUS",
	Plus:         "PLUS",
	Semicolon:    "SEMICOLON",
	Slash:        "SLASH",
	Star:         "STAR",
	Question:     "QUESTION",
	Colon:        "COLON",
	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Equal:        "EQUAL",
	EqualEqual:   "EQUAL_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	PlusEqual:    "PLUS_EQUAL",
	MinusEqual:   "MINUS_EQUAL",
	StarEqual:    "STAR_EQUAL",
	SlashEqual:   "SLASH_EQUAL",
	Identifier:   "IDENTIFIER",
	String:       "STRING",
	Number:       "NUMBER",
	And:          "AND",
	Break:        "BREAK",
	Class:        "CLASS",
	Continue:     "CONTINUE",
	Else:         "ELSE",
	False:        "FALSE",
	For:          "FOR",
	Fun:          "FUN",
	If:           "IF",
	Nil:          "NIL",
	Or:           "OR",
	Return:       "RETURN",
	Super:        "SUPER",
	This:         "THIS",
	True:         "TRUE",
	Var:          "VAR",
	While:        "WHILE",
	EOF:          "EOF",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) && tokenTypeNames[t] != "" {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("token_type_%d", int(t))
}

// Keywords maps reserved words to their token types.
var Keywords = map[string]TokenType{
	"and":      And,
	"break":    Break,
	"class":    Class,
	"continue": Continue,
	"else":     Else,
	"false":    False,
	"for":      For,
	"fun":      Fun,
	"if":       If,
	"nil":      Nil,
	"or":       Or,
	"return":   Return,
	"super":    Super,
	"this":     This,
	"true":     True,
	"var":      Var,
	"while":    While,
}

// Token is a single lexeme produced by the lexer. Literal is a float64 for
// numbers, a string for strings, and nil otherwise.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
}

// NewToken builds a token without a literal, handy for synthesized nodes.
func NewToken(kind TokenType, lexeme string, line int) Token {
	return Token{Type: kind, Lexeme: lexeme, Line: line}
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
}
