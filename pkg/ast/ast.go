package ast

type NodeType string

const (
	NodeLiteralExpression  NodeType = "LiteralExpression"
	NodeGroupingExpression NodeType = "GroupingExpression"
	NodeUnaryExpression    NodeType = "UnaryExpression"
	NodeBinaryExpression   NodeType = "BinaryExpression"
	NodeLogicalExpression  NodeType = "LogicalExpression"
	NodeTernaryExpression  NodeType = "TernaryExpression"
	NodeAssignExpression   NodeType = "AssignExpression"
	NodeVariableExpression NodeType = "VariableExpression"
	NodeCallExpression     NodeType = "CallExpression"
	NodeGetExpression      NodeType = "GetExpression"
	NodeSetExpression      NodeType = "SetExpression"
	NodeThisExpression     NodeType = "ThisExpression"
	NodeSuperExpression    NodeType = "SuperExpression"

	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeVarStatement        NodeType = "VarStatement"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileStatement      NodeType = "WhileStatement"
	NodeFunctionStatement   NodeType = "FunctionStatement"
	NodeClassStatement      NodeType = "ClassStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeContinueStatement   NodeType = "ContinueStatement"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces. Expr and Stmt are closed: only this package can
// satisfy them.

type Expr interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Stmt interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// LiteralExpression holds nil, a bool, a float64 or a string.
type LiteralExpression struct {
	nodeImpl
	expressionMarker

	Value any `json:"value"`
}

func NewLiteralExpression(value any) *LiteralExpression {
	return &LiteralExpression{nodeImpl: newNodeImpl(NodeLiteralExpression), Value: value}
}

type GroupingExpression struct {
	nodeImpl
	expressionMarker

	Inner Expr `json:"inner"`
}

func NewGroupingExpression(inner Expr) *GroupingExpression {
	return &GroupingExpression{nodeImpl: newNodeImpl(NodeGroupingExpression), Inner: inner}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator Token `json:"operator"`
	Operand  Expr  `json:"operand"`
}

func NewUnaryExpression(operator Token, operand Expr) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator Token `json:"operator"`
	Left     Expr  `json:"left"`
	Right    Expr  `json:"right"`
}

func NewBinaryExpression(operator Token, left, right Expr) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// LogicalExpression is a short-circuiting `and`/`or`.
type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator Token `json:"operator"`
	Left     Expr  `json:"left"`
	Right    Expr  `json:"right"`
}

func NewLogicalExpression(operator Token, left, right Expr) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: operator, Left: left, Right: right}
}

type TernaryExpression struct {
	nodeImpl
	expressionMarker

	Question  Token `json:"question"`
	Condition Expr  `json:"condition"`
	Then      Expr  `json:"then"`
	Else      Expr  `json:"else"`
}

func NewTernaryExpression(question Token, condition, then, els Expr) *TernaryExpression {
	return &TernaryExpression{nodeImpl: newNodeImpl(NodeTernaryExpression), Question: question, Condition: condition, Then: then, Else: els}
}

type AssignExpression struct {
	nodeImpl
	expressionMarker

	Name  Token `json:"name"`
	Value Expr  `json:"value"`
}

func NewAssignExpression(name Token, value Expr) *AssignExpression {
	return &AssignExpression{nodeImpl: newNodeImpl(NodeAssignExpression), Name: name, Value: value}
}

type VariableExpression struct {
	nodeImpl
	expressionMarker

	Name Token `json:"name"`
}

func NewVariableExpression(name Token) *VariableExpression {
	return &VariableExpression{nodeImpl: newNodeImpl(NodeVariableExpression), Name: name}
}

// CallExpression keeps the closing paren so runtime errors can point at it.
type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expr   `json:"callee"`
	Paren     Token  `json:"paren"`
	Arguments []Expr `json:"arguments"`
}

func NewCallExpression(callee Expr, paren Token, args []Expr) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Paren: paren, Arguments: args}
}

type GetExpression struct {
	nodeImpl
	expressionMarker

	Object Expr  `json:"object"`
	Name   Token `json:"name"`
}

func NewGetExpression(object Expr, name Token) *GetExpression {
	return &GetExpression{nodeImpl: newNodeImpl(NodeGetExpression), Object: object, Name: name}
}

type SetExpression struct {
	nodeImpl
	expressionMarker

	Object Expr  `json:"object"`
	Name   Token `json:"name"`
	Value  Expr  `json:"value"`
}

func NewSetExpression(object Expr, name Token, value Expr) *SetExpression {
	return &SetExpression{nodeImpl: newNodeImpl(NodeSetExpression), Object: object, Name: name, Value: value}
}

type ThisExpression struct {
	nodeImpl
	expressionMarker

	Keyword Token `json:"keyword"`
}

func NewThisExpression(keyword Token) *ThisExpression {
	return &ThisExpression{nodeImpl: newNodeImpl(NodeThisExpression), Keyword: keyword}
}

type SuperExpression struct {
	nodeImpl
	expressionMarker

	Keyword Token `json:"keyword"`
	Method  Token `json:"method"`
}

func NewSuperExpression(keyword, method Token) *SuperExpression {
	return &SuperExpression{nodeImpl: newNodeImpl(NodeSuperExpression), Keyword: keyword, Method: method}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expr `json:"expression"`
}

func NewExpressionStatement(expr Expr) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

// VarStatement declares a variable; Initializer may be nil.
type VarStatement struct {
	nodeImpl
	statementMarker

	Name        Token `json:"name"`
	Initializer Expr  `json:"initializer,omitempty"`
}

func NewVarStatement(name Token, initializer Expr) *VarStatement {
	return &VarStatement{nodeImpl: newNodeImpl(NodeVarStatement), Name: name, Initializer: initializer}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Statements []Stmt `json:"statements"`
}

func NewBlockStatement(statements []Stmt) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Statements: statements}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition  Expr `json:"condition"`
	ThenBranch Stmt `json:"thenBranch"`
	ElseBranch Stmt `json:"elseBranch,omitempty"`
}

func NewIfStatement(condition Expr, thenBranch, elseBranch Stmt) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

// WhileStatement also carries the increment of a desugared `for` loop. The
// increment runs after every iteration, including one cut short by continue.
type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expr `json:"condition"`
	Body      Stmt `json:"body"`
	Increment Expr `json:"increment,omitempty"`
}

func NewWhileStatement(condition Expr, body Stmt) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

type FunctionStatement struct {
	nodeImpl
	statementMarker

	Name   Token   `json:"name"`
	Params []Token `json:"params"`
	Body   []Stmt  `json:"body"`
}

func NewFunctionStatement(name Token, params []Token, body []Stmt) *FunctionStatement {
	return &FunctionStatement{nodeImpl: newNodeImpl(NodeFunctionStatement), Name: name, Params: params, Body: body}
}

// ClassStatement carries an optional superclass reference.
type ClassStatement struct {
	nodeImpl
	statementMarker

	Name       Token                `json:"name"`
	Superclass *VariableExpression  `json:"superclass,omitempty"`
	Methods    []*FunctionStatement `json:"methods"`
}

func NewClassStatement(name Token, superclass *VariableExpression, methods []*FunctionStatement) *ClassStatement {
	return &ClassStatement{nodeImpl: newNodeImpl(NodeClassStatement), Name: name, Superclass: superclass, Methods: methods}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Keyword Token `json:"keyword"`
	Value   Expr  `json:"value,omitempty"`
}

func NewReturnStatement(keyword Token, value Expr) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Keyword: keyword, Value: value}
}

type BreakStatement struct {
	nodeImpl
	statementMarker

	Keyword Token `json:"keyword"`
}

func NewBreakStatement(keyword Token) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement), Keyword: keyword}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker

	Keyword Token `json:"keyword"`
}

func NewContinueStatement(keyword Token) *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement), Keyword: keyword}
}
