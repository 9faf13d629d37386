package csharp

import "github.com/teranos/pysharp/ast"

// TypeLabel is the declared C# type inferred for a value.
type TypeLabel string

const (
	TypeInt     TypeLabel = "int"
	TypeString  TypeLabel = "string"
	TypeBool    TypeLabel = "bool"
	TypeDynamic TypeLabel = "dynamic"
)

// Infer derives a type label from the syntactic shape of a node.
//
// It is a single-pass heuristic, not a type checker: it never looks at
// declared types, names or values, and gives no soundness guarantee.
// A nil node (e.g. a missing return annotation) is dynamic. Infer is total.
func Infer(node ast.Node) TypeLabel {
	switch n := node.(type) {
	case nil:
		return TypeDynamic
	case *ast.NumericLiteral:
		return TypeInt
	case *ast.StringLiteral:
		return TypeString
	case *ast.Comparison:
		return TypeBool
	case *ast.Identifier, *ast.Call, *ast.BinaryOp, *ast.UnaryOp, *ast.Lambda, *ast.FunctionDefinition:
		return TypeDynamic
	case *ast.BooleanLiteral, *ast.BooleanOp:
		return TypeBool

	// Nodes wrapping a single value take the type of that value.
	case *ast.Return:
		return Infer(n.Value)
	case *ast.Assignment:
		return Infer(n.Value)
	case *ast.AugmentedAssignment:
		return Infer(n.Value)
	case *ast.ExpressionStatement:
		return Infer(n.Value)
	}
	return TypeDynamic
}
