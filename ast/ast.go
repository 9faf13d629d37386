// Package ast defines the syntax tree consumed by the translator.
//
// The tree is a closed set of variants: Stmt and Expr are sealed by
// unexported marker methods, so only the types declared here satisfy them.
// Trees are built once by the frontend and never mutated afterwards.
package ast

// Pos is a source position. The zero value means unknown.
type Pos struct {
	Line   int
	Column int
}

// Position returns the position itself, so embedding Pos satisfies Node.
func (p Pos) Position() Pos { return p }

// Node is any node in the tree.
type Node interface {
	// Kind returns the variant name, used in error messages.
	Kind() string
	Position() Pos
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Module is the root: an ordered sequence of top-level statements.
type Module struct {
	Body []Stmt
}

// Param is a function or lambda parameter.
type Param struct {
	Name    string
	Default Expr // nil when the parameter has no default value
}

// =============================================================================
// Statements
// =============================================================================

// FunctionDefinition: def name(params) -> returns: body
type FunctionDefinition struct {
	Pos
	Name    string
	Params  []*Param
	Vararg  string // name of the *args parameter, empty when absent
	Returns Expr   // nil when there is no return annotation
	Body    []Stmt
}

// ClassDefinition: class name(bases): body
type ClassDefinition struct {
	Pos
	Name  string
	Bases []Expr
	Body  []Stmt
}

// Return: return value
type Return struct {
	Pos
	Value Expr // nil for a bare return
}

// Assignment: t1 = t2 = ... = value
type Assignment struct {
	Pos
	Targets []Expr
	Value   Expr
}

// AugmentedAssignment: target op= value
type AugmentedAssignment struct {
	Pos
	Target Expr
	Op     Operator
	Value  Expr
}

// ForLoop: for target in iter: body
type ForLoop struct {
	Pos
	Target Expr
	Iter   Expr
	Body   []Stmt
}

// WhileLoop: while test: body
type WhileLoop struct {
	Pos
	Test Expr
	Body []Stmt
}

// Conditional: if test: body else: orelse
type Conditional struct {
	Pos
	Test   Expr
	Body   []Stmt
	Orelse []Stmt // empty when there is no else branch
}

// ExpressionStatement is an expression evaluated for its effect.
type ExpressionStatement struct {
	Pos
	Value Expr
}

// Pass is the empty statement.
type Pass struct {
	Pos
}

func (*FunctionDefinition) Kind() string  { return "FunctionDefinition" }
func (*ClassDefinition) Kind() string     { return "ClassDefinition" }
func (*Return) Kind() string              { return "Return" }
func (*Assignment) Kind() string          { return "Assignment" }
func (*AugmentedAssignment) Kind() string { return "AugmentedAssignment" }
func (*ForLoop) Kind() string             { return "ForLoop" }
func (*WhileLoop) Kind() string           { return "WhileLoop" }
func (*Conditional) Kind() string         { return "Conditional" }
func (*ExpressionStatement) Kind() string { return "ExpressionStatement" }
func (*Pass) Kind() string                { return "Pass" }

func (*FunctionDefinition) stmtNode()  {}
func (*ClassDefinition) stmtNode()     {}
func (*Return) stmtNode()              {}
func (*Assignment) stmtNode()          {}
func (*AugmentedAssignment) stmtNode() {}
func (*ForLoop) stmtNode()             {}
func (*WhileLoop) stmtNode()           {}
func (*Conditional) stmtNode()         {}
func (*ExpressionStatement) stmtNode() {}
func (*Pass) stmtNode()                {}

// =============================================================================
// Expressions
// =============================================================================

// BinaryOp: left op right
type BinaryOp struct {
	Pos
	Left  Expr
	Op    Operator
	Right Expr
}

// BooleanOp: v1 and v2 and ... (at least two values)
type BooleanOp struct {
	Pos
	Op     Operator
	Values []Expr
}

// Comparison: left op1 c1 op2 c2 ...
// Ops and Comparators have the same length.
type Comparison struct {
	Pos
	Left        Expr
	Ops         []Operator
	Comparators []Expr
}

// UnaryOp: op operand
type UnaryOp struct {
	Pos
	Op      UnaryOperator
	Operand Expr
}

// Lambda: lambda params: body
type Lambda struct {
	Pos
	Params []*Param
	Body   Expr
}

// Call: func(args)
type Call struct {
	Pos
	Func Expr
	Args []Expr
}

// NumericLiteral holds the decimal text of an int or float literal.
type NumericLiteral struct {
	Pos
	Value string
}

// StringLiteral holds the decoded value of a string literal.
type StringLiteral struct {
	Pos
	Value string
}

// Identifier is a bare name.
type Identifier struct {
	Pos
	Name string
}

// BooleanLiteral is True or False.
type BooleanLiteral struct {
	Pos
	Value bool
}

// NoneLiteral is None.
type NoneLiteral struct {
	Pos
}

// Attribute: value.name
type Attribute struct {
	Pos
	Value Expr
	Name  string
}

func (*BinaryOp) Kind() string       { return "BinaryOp" }
func (*BooleanOp) Kind() string      { return "BooleanOp" }
func (*Comparison) Kind() string     { return "Comparison" }
func (*UnaryOp) Kind() string        { return "UnaryOp" }
func (*Lambda) Kind() string         { return "Lambda" }
func (*Call) Kind() string           { return "Call" }
func (*NumericLiteral) Kind() string { return "NumericLiteral" }
func (*StringLiteral) Kind() string  { return "StringLiteral" }
func (*Identifier) Kind() string     { return "Identifier" }
func (*BooleanLiteral) Kind() string { return "BooleanLiteral" }
func (*NoneLiteral) Kind() string    { return "NoneLiteral" }
func (*Attribute) Kind() string      { return "Attribute" }

func (*BinaryOp) exprNode()       {}
func (*BooleanOp) exprNode()      {}
func (*Comparison) exprNode()     {}
func (*UnaryOp) exprNode()        {}
func (*Lambda) exprNode()         {}
func (*Call) exprNode()           {}
func (*NumericLiteral) exprNode() {}
func (*StringLiteral) exprNode()  {}
func (*Identifier) exprNode()     {}
func (*BooleanLiteral) exprNode() {}
func (*NoneLiteral) exprNode()    {}
func (*Attribute) exprNode()      {}
