package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders an expression in parenthesised prefix form, e.g.
// `(* (- 123) (group 45.67))`.
func Print(expr Expr) string {
	var b strings.Builder
	printExpr(&b, expr)
	return b.String()
}

// PrintStatement renders a statement in the same prefix form.
func PrintStatement(stmt Stmt) string {
	var b strings.Builder
	printStmt(&b, stmt)
	return b.String()
}

func printExpr(b *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case nil:
		b.WriteString("<nil>")
	case *LiteralExpression:
		b.WriteString(formatLiteral(e.Value))
	case *GroupingExpression:
		parenthesize(b, "group", e.Inner)
	case *UnaryExpression:
		parenthesize(b, e.Operator.Lexeme, e.Operand)
	case *BinaryExpression:
		parenthesize(b, e.Operator.Lexeme, e.Left, e.Right)
	case *LogicalExpression:
		parenthesize(b, e.Operator.Lexeme, e.Left, e.Right)
	case *TernaryExpression:
		parenthesize(b, "?:", e.Condition, e.Then, e.Else)
	case *AssignExpression:
		parenthesize(b, "= "+e.Name.Lexeme, e.Value)
	case *VariableExpression:
		b.WriteString(e.Name.Lexeme)
	case *CallExpression:
		parenthesize(b, "call", append([]Expr{e.Callee}, e.Arguments...)...)
	case *GetExpression:
		parenthesize(b, "get "+e.Name.Lexeme, e.Object)
	case *SetExpression:
		parenthesize(b, "set "+e.Name.Lexeme, e.Object, e.Value)
	case *ThisExpression:
		b.WriteString("this")
	case *SuperExpression:
		b.WriteString("(super " + e.Method.Lexeme + ")")
	default:
		fmt.Fprintf(b, "<%s>", expr.NodeType())
	}
}

func parenthesize(b *strings.Builder, name string, exprs ...Expr) {
	b.WriteString("(")
	b.WriteString(name)
	for _, expr := range exprs {
		b.WriteString(" ")
		printExpr(b, expr)
	}
	b.WriteString(")")
}

func printStmt(b *strings.Builder, stmt Stmt) {
	switch s := stmt.(type) {
	case *ExpressionStatement:
		b.WriteString("(; ")
		printExpr(b, s.Expression)
		b.WriteString(")")
	case *VarStatement:
		b.WriteString("(var " + s.Name.Lexeme)
		if s.Initializer != nil {
			b.WriteString(" ")
			printExpr(b, s.Initializer)
		}
		b.WriteString(")")
	case *BlockStatement:
		b.WriteString("(block")
		printStmts(b, s.Statements)
		b.WriteString(")")
	case *IfStatement:
		b.WriteString("(if ")
		printExpr(b, s.Condition)
		b.WriteString(" ")
		printStmt(b, s.ThenBranch)
		if s.ElseBranch != nil {
			b.WriteString(" ")
			printStmt(b, s.ElseBranch)
		}
		b.WriteString(")")
	case *WhileStatement:
		b.WriteString("(while ")
		printExpr(b, s.Condition)
		b.WriteString(" ")
		printStmt(b, s.Body)
		if s.Increment != nil {
			b.WriteString(" ")
			printExpr(b, s.Increment)
		}
		b.WriteString(")")
	case *FunctionStatement:
		printFunction(b, "fun", s)
	case *ClassStatement:
		b.WriteString("(class " + s.Name.Lexeme)
		if s.Superclass != nil {
			b.WriteString(" < " + s.Superclass.Name.Lexeme)
		}
		for _, method := range s.Methods {
			b.WriteString(" ")
			printFunction(b, "method", method)
		}
		b.WriteString(")")
	case *ReturnStatement:
		b.WriteString("(return")
		if s.Value != nil {
			b.WriteString(" ")
			printExpr(b, s.Value)
		}
		b.WriteString(")")
	case *BreakStatement:
		b.WriteString("(break)")
	case *ContinueStatement:
		b.WriteString("(continue)")
	default:
		fmt.Fprintf(b, "<%s>", stmt.NodeType())
	}
}

func printFunction(b *strings.Builder, keyword string, fn *FunctionStatement) {
	params := make([]string, 0, len(fn.Params))
	for _, param := range fn.Params {
		params = append(params, param.Lexeme)
	}
	fmt.Fprintf(b, "(%s %s (%s)", keyword, fn.Name.Lexeme, strings.Join(params, " "))
	printStmts(b, fn.Body)
	b.WriteString(")")
}

func printStmts(b *strings.Builder, stmts []Stmt) {
	for _, stmt := range stmts {
		b.WriteString(" ")
		printStmt(b, stmt)
	}
}

func formatLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
