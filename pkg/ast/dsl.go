package ast

// Builders for hand-assembled trees, mostly used by tests. Synthesized
// tokens carry line 1.

var operatorTypes = map[string]TokenType{
	"+":   Plus,
	"-":   Minus,
	"*":   Star,
	"/":   Slash,
	"!":   Bang,
	"!=":  BangEqual,
	"==":  EqualEqual,
	">":   Greater,
	">=":  GreaterEqual,
	"<":   Less,
	"<=":  LessEqual,
	"and": And,
	"or":  Or,
}

// Op builds an operator token from its lexeme.
func Op(lexeme string) Token {
	kind, ok := operatorTypes[lexeme]
	if !ok {
		kind = Identifier
	}
	return NewToken(kind, lexeme, 1)
}

// Ident builds an identifier token.
func Ident(name string) Token {
	return NewToken(Identifier, name, 1)
}

func Num(value float64) *LiteralExpression {
	return NewLiteralExpression(value)
}

func Str(value string) *LiteralExpression {
	return NewLiteralExpression(value)
}

func Bool(value bool) *LiteralExpression {
	return NewLiteralExpression(value)
}

func NilLit() *LiteralExpression {
	return NewLiteralExpression(nil)
}

func Group(inner Expr) *GroupingExpression {
	return NewGroupingExpression(inner)
}

func Un(op string, operand Expr) *UnaryExpression {
	return NewUnaryExpression(Op(op), operand)
}

func Bin(op string, left, right Expr) *BinaryExpression {
	return NewBinaryExpression(Op(op), left, right)
}

func Logic(op string, left, right Expr) *LogicalExpression {
	return NewLogicalExpression(Op(op), left, right)
}

func Cond(condition, then, els Expr) *TernaryExpression {
	return NewTernaryExpression(NewToken(Question, "?", 1), condition, then, els)
}

func ID(name string) *VariableExpression {
	return NewVariableExpression(Ident(name))
}

func Assign(name string, value Expr) *AssignExpression {
	return NewAssignExpression(Ident(name), value)
}

func CallExpr(callee Expr, args ...Expr) *CallExpression {
	return NewCallExpression(callee, NewToken(RightParen, ")", 1), args)
}

func Get(object Expr, name string) *GetExpression {
	return NewGetExpression(object, Ident(name))
}

func Set(object Expr, name string, value Expr) *SetExpression {
	return NewSetExpression(object, Ident(name), value)
}

func ThisExpr() *ThisExpression {
	return NewThisExpression(NewToken(This, "this", 1))
}

func SuperExpr(method string) *SuperExpression {
	return NewSuperExpression(NewToken(Super, "super", 1), Ident(method))
}

func ExprStmt(expr Expr) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func VarDecl(name string, initializer Expr) *VarStatement {
	return NewVarStatement(Ident(name), initializer)
}

func Block(statements ...Stmt) *BlockStatement {
	return NewBlockStatement(statements)
}

func IfStmt(condition Expr, then, els Stmt) *IfStatement {
	return NewIfStatement(condition, then, els)
}

func WhileLoop(condition Expr, body Stmt) *WhileStatement {
	return NewWhileStatement(condition, body)
}

func Fn(name string, params []string, body ...Stmt) *FunctionStatement {
	tokens := make([]Token, 0, len(params))
	for _, param := range params {
		tokens = append(tokens, Ident(param))
	}
	return NewFunctionStatement(Ident(name), tokens, body)
}

func ClassDecl(name string, superclass string, methods ...*FunctionStatement) *ClassStatement {
	var super *VariableExpression
	if superclass != "" {
		super = ID(superclass)
	}
	return NewClassStatement(Ident(name), super, methods)
}

func Ret(value Expr) *ReturnStatement {
	return NewReturnStatement(NewToken(Return, "return", 1), value)
}

func Brk() *BreakStatement {
	return NewBreakStatement(NewToken(Break, "break", 1))
}

func Cont() *ContinueStatement {
	return NewContinueStatement(NewToken(Continue, "continue", 1))
}
