package pyparse

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	pyast "github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/py"

	"github.com/teranos/pysharp/ast"
	"github.com/teranos/pysharp/errors"
)

var binaryOperators = map[pyast.OperatorNumber]ast.Operator{
	pyast.Add:      ast.Add,
	pyast.Sub:      ast.Sub,
	pyast.Mult:     ast.Mult,
	pyast.Div:      ast.Div,
	pyast.Modulo:   ast.Mod,
	pyast.Pow:      ast.Pow,
	pyast.FloorDiv: ast.FloorDiv,
	pyast.LShift:   ast.LShift,
	pyast.RShift:   ast.RShift,
	pyast.BitOr:    ast.BitOr,
	pyast.BitXor:   ast.BitXor,
	pyast.BitAnd:   ast.BitAnd,
}

// Identity and membership tags are lowered even though C# has no symbol
// for them; the translator rejects them with the operator name.
var compareOperators = map[pyast.CmpOp]ast.Operator{
	pyast.Eq:    ast.Eq,
	pyast.NotEq: ast.NotEq,
	pyast.Lt:    ast.Lt,
	pyast.LtE:   ast.LtE,
	pyast.Gt:    ast.Gt,
	pyast.GtE:   ast.GtE,
	pyast.Is:    ast.Is,
	pyast.IsNot: ast.IsNot,
	pyast.In:    ast.In,
	pyast.NotIn: ast.NotIn,
}

var unaryOperators = map[pyast.UnaryOpNumber]ast.UnaryOperator{
	pyast.Invert: ast.Invert,
	pyast.Not:    ast.Not,
	pyast.UAdd:   ast.UAdd,
	pyast.USub:   ast.USub,
}

func binaryOperator(op pyast.OperatorNumber, at pyast.Ast) (ast.Operator, error) {
	if lowered, ok := binaryOperators[op]; ok {
		return lowered, nil
	}
	return 0, errors.UnsupportedOperator(fmt.Sprint(op), at.GetLineno())
}

func compareOperator(op pyast.CmpOp, at pyast.Ast) (ast.Operator, error) {
	if lowered, ok := compareOperators[op]; ok {
		return lowered, nil
	}
	return 0, errors.UnsupportedOperator(fmt.Sprint(op), at.GetLineno())
}

func unaryOperator(op pyast.UnaryOpNumber, at pyast.Ast) (ast.UnaryOperator, error) {
	if lowered, ok := unaryOperators[op]; ok {
		return lowered, nil
	}
	return 0, errors.UnsupportedOperator(fmt.Sprint(op), at.GetLineno())
}

// numberText renders a numeric constant as decimal literal text.
// Floats always carry a fraction or exponent so they stay floating point.
func numberText(n py.Object) (string, error) {
	switch v := n.(type) {
	case py.Int:
		return strconv.FormatInt(int64(v), 10), nil
	case *py.BigInt:
		return (*big.Int)(v).String(), nil
	case py.Float:
		f := float64(v)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "", errors.New("non-finite float literal")
		}
		text := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(text, ".e") {
			text += ".0"
		}
		return text, nil
	case py.Complex:
		return "", errors.New("complex literal")
	}
	return "", errors.Newf("numeric literal of type %T", n)
}
