package lexer_test

import (
	"reflect"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/lexer"
)

func tokenTypes(tokens []ast.Token) []ast.TokenType {
	out := make([]ast.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func describeAll(diags *driver.Diagnostics) []string {
	var out []string
	for _, diag := range diags.Items() {
		out = append(out, driver.DescribeDiagnostic(diag))
	}
	return out
}

func TestScanOperatorsMaximalMunch(t *testing.T) {
	diags := driver.NewDiagnostics()
	tokens := lexer.Scan("! != = == < <= > >= + += - -= * *= / /= ? : ( ) { } , . ;", diags)
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", describeAll(diags))
	}
	want := []ast.TokenType{
		ast.Bang, ast.BangEqual, ast.Equal, ast.EqualEqual,
		ast.Less, ast.LessEqual, ast.Greater, ast.GreaterEqual,
		ast.Plus, ast.PlusEqual, ast.Minus, ast.MinusEqual,
		ast.Star, ast.StarEqual, ast.Slash, ast.SlashEqual,
		ast.Question, ast.Colon,
		ast.LeftParen, ast.RightParen, ast.LeftBrace, ast.RightBrace,
		ast.Comma, ast.Dot, ast.Semicolon,
		ast.EOF,
	}
	if got := tokenTypes(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("token types mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	tokens := lexer.Scan("class fun var while for if else return this super nil true false and or break continue _foo bar9 classy", nil)
	want := []ast.TokenType{
		ast.Class, ast.Fun, ast.Var, ast.While, ast.For, ast.If, ast.Else, ast.Return,
		ast.This, ast.Super, ast.Nil, ast.True, ast.False, ast.And, ast.Or,
		ast.Break, ast.Continue,
		ast.Identifier, ast.Identifier, ast.Identifier,
		ast.EOF,
	}
	if got := tokenTypes(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("token types mismatch\n got: %v\nwant: %v", got, want)
	}
	if tokens[len(tokens)-2].Lexeme != "classy" {
		t.Fatalf("expected lexeme classy, got %q", tokens[len(tokens)-2].Lexeme)
	}
}

func TestScanNumbers(t *testing.T) {
	tokens := lexer.Scan("12.34 7 12.", nil)
	want := []ast.TokenType{ast.Number, ast.Number, ast.Number, ast.Dot, ast.EOF}
	if got := tokenTypes(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("token types mismatch\n got: %v\nwant: %v", got, want)
	}
	if tokens[0].Literal != 12.34 {
		t.Fatalf("expected 12.34, got %#v", tokens[0].Literal)
	}
	if tokens[1].Literal != float64(7) {
		t.Fatalf("expected 7, got %#v", tokens[1].Literal)
	}
	if tokens[2].Lexeme != "12" {
		t.Fatalf("expected trailing dot to stay separate, got lexeme %q", tokens[2].Lexeme)
	}
}

func TestScanStringsSpanLines(t *testing.T) {
	tokens := lexer.Scan("\"one\ntwo\" x", nil)
	if tokens[0].Type != ast.String || tokens[0].Literal != "one\ntwo" {
		t.Fatalf("unexpected string token %#v", tokens[0])
	}
	if tokens[0].Line != 1 {
		t.Fatalf("string should carry its starting line, got %d", tokens[0].Line)
	}
	if tokens[1].Line != 2 {
		t.Fatalf("identifier after multi-line string should be on line 2, got %d", tokens[1].Line)
	}
}

func TestScanComments(t *testing.T) {
	source := `a // line comment
/* block
comment */ b /* x */ c`
	tokens := lexer.Scan(source, nil)
	want := []ast.TokenType{ast.Identifier, ast.Identifier, ast.Identifier, ast.EOF}
	if got := tokenTypes(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("token types mismatch\n got: %v\nwant: %v", got, want)
	}
	if tokens[1].Line != 3 || tokens[2].Line != 3 {
		t.Fatalf("expected b and c on line 3, got %d and %d", tokens[1].Line, tokens[2].Line)
	}
}

func TestScanBlockCommentsDoNotNest(t *testing.T) {
	tokens := lexer.Scan("/* outer /* inner */ x */", nil)
	want := []ast.TokenType{ast.Identifier, ast.Star, ast.Slash, ast.EOF}
	if got := tokenTypes(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("token types mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestScanReportsAllErrorsAndContinues(t *testing.T) {
	diags := driver.NewDiagnostics()
	tokens := lexer.Scan("var a = 1 @ 2;\n# b\n\"open", diags)

	want := []string{
		"[line 1] Error: Unexpected character '@'.",
		"[line 2] Error: Unexpected character '#'.",
		"[line 3] Error: Unterminated string.",
	}
	if got := describeAll(diags); !reflect.DeepEqual(got, want) {
		t.Fatalf("diagnostics mismatch\n got: %v\nwant: %v", got, want)
	}
	if !diags.HasCompileErrors() {
		t.Fatalf("expected compile errors to be flagged")
	}
	// var a = 1 2 ; b EOF
	if len(tokens) != 8 {
		t.Fatalf("expected scanning to continue past errors, got %d tokens", len(tokens))
	}
	if last := tokens[len(tokens)-1]; last.Type != ast.EOF || last.Line != 3 {
		t.Fatalf("expected EOF on line 3, got %#v", last)
	}
}

func TestScanMultiByteCharacterReportedOnce(t *testing.T) {
	diags := driver.NewDiagnostics()
	lexer.Scan("a é b", diags)
	got := describeAll(diags)
	if len(got) != 1 || !strings.Contains(got[0], "'é'") {
		t.Fatalf("expected single diagnostic naming é, got %v", got)
	}
}

func TestScanEmptySourceYieldsEOF(t *testing.T) {
	tokens := lexer.Scan("", nil)
	if len(tokens) != 1 || tokens[0].Type != ast.EOF || tokens[0].Line != 1 {
		t.Fatalf("unexpected tokens %#v", tokens)
	}
}
