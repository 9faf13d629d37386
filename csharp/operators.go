package csharp

import (
	"github.com/teranos/pysharp/ast"
	"github.com/teranos/pysharp/errors"
)

// operatorSymbols is the fixed operator table. Pow and FloorDiv keep their
// Python spelling; the expression emitter lowers them when MathOperators is set.
var operatorSymbols = map[ast.Operator]string{
	ast.Add:      "+",
	ast.Sub:      "-",
	ast.Mult:     "*",
	ast.Div:      "/",
	ast.Mod:      "%",
	ast.Pow:      "**",
	ast.FloorDiv: "//",
	ast.LShift:   "<<",
	ast.RShift:   ">>",
	ast.BitOr:    "|",
	ast.BitXor:   "^",
	ast.BitAnd:   "&",
	ast.Eq:       "==",
	ast.NotEq:    "!=",
	ast.Lt:       "<",
	ast.LtE:      "<=",
	ast.Gt:       ">",
	ast.GtE:      ">=",
	ast.And:      "&&",
	ast.Or:       "||",
}

var unarySymbols = map[ast.UnaryOperator]string{
	ast.Invert: "~",
	ast.Not:    "!",
	ast.UAdd:   "+",
	ast.USub:   "-",
}

// SymbolFor returns the C# symbol for an operator tag.
// Tags outside the table fail with ErrUnsupportedOperator.
func SymbolFor(op ast.Operator) (string, error) {
	if sym, ok := operatorSymbols[op]; ok {
		return sym, nil
	}
	return "", errors.UnsupportedOperator(op.String(), 0)
}

// UnarySymbolFor returns the C# symbol for a unary operator tag.
func UnarySymbolFor(op ast.UnaryOperator) (string, error) {
	if sym, ok := unarySymbols[op]; ok {
		return sym, nil
	}
	return "", errors.UnsupportedOperator(op.String(), 0)
}

// C# precedence levels, lowest first.
const (
	precLambda = iota
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPrimary
)

// precedenceOf returns the C# binding strength of a binary operator as emitted.
func precedenceOf(op ast.Operator) int {
	switch op {
	case ast.Or:
		return precOr
	case ast.And:
		return precAnd
	case ast.BitOr:
		return precBitOr
	case ast.BitXor:
		return precBitXor
	case ast.BitAnd:
		return precBitAnd
	case ast.Eq, ast.NotEq:
		return precEquality
	case ast.Lt, ast.LtE, ast.Gt, ast.GtE:
		return precRelational
	case ast.LShift, ast.RShift:
		return precShift
	case ast.Add, ast.Sub:
		return precAdditive
	default:
		return precMultiplicative
	}
}
