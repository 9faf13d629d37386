package pyparse

import (
	"reflect"

	pyast "github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/py"

	"github.com/teranos/pysharp/ast"
	"github.com/teranos/pysharp/errors"
)

// kindOf names a gpython node by its Go type, e.g. "Try" or "ListComp".
func kindOf(node pyast.Ast) string {
	t := reflect.TypeOf(node)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func posOf(node pyast.Ast) ast.Pos {
	return ast.Pos{Line: node.GetLineno(), Column: node.GetColOffset()}
}

func lowerStmts(stmts []pyast.Stmt) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		lowered, err := lowerStmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered)
	}
	return out, nil
}

func lowerStmt(stmt pyast.Stmt) (ast.Stmt, error) {
	switch s := stmt.(type) {
	case *pyast.FunctionDef:
		return lowerFunctionDef(s)
	case *pyast.ClassDef:
		return lowerClassDef(s)
	case *pyast.Return:
		ret := &ast.Return{Pos: posOf(s)}
		if s.Value != nil {
			value, err := lowerExpr(s.Value)
			if err != nil {
				return nil, err
			}
			ret.Value = value
		}
		return ret, nil
	case *pyast.Assign:
		targets, err := lowerExprs(s.Targets)
		if err != nil {
			return nil, err
		}
		value, err := lowerExpr(s.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Pos: posOf(s), Targets: targets, Value: value}, nil
	case *pyast.AugAssign:
		op, err := binaryOperator(s.Op, s)
		if err != nil {
			return nil, err
		}
		target, err := lowerExpr(s.Target)
		if err != nil {
			return nil, err
		}
		value, err := lowerExpr(s.Value)
		if err != nil {
			return nil, err
		}
		return &ast.AugmentedAssignment{Pos: posOf(s), Target: target, Op: op, Value: value}, nil
	case *pyast.For:
		if len(s.Orelse) > 0 {
			return nil, errors.UnsupportedStatement("For with else clause", s.GetLineno())
		}
		target, err := lowerExpr(s.Target)
		if err != nil {
			return nil, err
		}
		iter, err := lowerExpr(s.Iter)
		if err != nil {
			return nil, err
		}
		body, err := lowerStmts(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForLoop{Pos: posOf(s), Target: target, Iter: iter, Body: body}, nil
	case *pyast.While:
		if len(s.Orelse) > 0 {
			return nil, errors.UnsupportedStatement("While with else clause", s.GetLineno())
		}
		test, err := lowerExpr(s.Test)
		if err != nil {
			return nil, err
		}
		body, err := lowerStmts(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileLoop{Pos: posOf(s), Test: test, Body: body}, nil
	case *pyast.If:
		test, err := lowerExpr(s.Test)
		if err != nil {
			return nil, err
		}
		body, err := lowerStmts(s.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := lowerStmts(s.Orelse)
		if err != nil {
			return nil, err
		}
		return &ast.Conditional{Pos: posOf(s), Test: test, Body: body, Orelse: orelse}, nil
	case *pyast.ExprStmt:
		value, err := lowerExpr(s.Value)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Pos: posOf(s), Value: value}, nil
	case *pyast.Pass:
		return &ast.Pass{Pos: posOf(s)}, nil
	}
	return nil, errors.UnsupportedStatement(kindOf(stmt), stmt.GetLineno())
}

func lowerFunctionDef(s *pyast.FunctionDef) (ast.Stmt, error) {
	if len(s.DecoratorList) > 0 {
		return nil, errors.UnsupportedStatement("decorated FunctionDef", s.GetLineno())
	}
	params, vararg, err := lowerArguments(s.Args, s)
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDefinition{
		Pos:    posOf(s),
		Name:   string(s.Name),
		Params: params,
		Vararg: vararg,
	}
	if s.Returns != nil {
		if fn.Returns, err = lowerExpr(s.Returns); err != nil {
			return nil, err
		}
	}
	if fn.Body, err = lowerStmts(s.Body); err != nil {
		return nil, err
	}
	return fn, nil
}

func lowerClassDef(s *pyast.ClassDef) (ast.Stmt, error) {
	switch {
	case len(s.DecoratorList) > 0:
		return nil, errors.UnsupportedStatement("decorated ClassDef", s.GetLineno())
	case len(s.Keywords) > 0 || s.Starargs != nil || s.Kwargs != nil:
		return nil, errors.UnsupportedStatement("ClassDef with keyword or star bases", s.GetLineno())
	}
	bases, err := lowerExprs(s.Bases)
	if err != nil {
		return nil, err
	}
	body, err := lowerStmts(s.Body)
	if err != nil {
		return nil, err
	}
	return &ast.ClassDefinition{Pos: posOf(s), Name: string(s.Name), Bases: bases, Body: body}, nil
}

// lowerArguments converts positional parameters and *args. Defaults align
// with the trailing parameters.
func lowerArguments(args *pyast.Arguments, owner pyast.Ast) ([]*ast.Param, string, error) {
	if args == nil {
		return nil, "", nil
	}
	if len(args.Kwonlyargs) > 0 || args.Kwarg != nil {
		return nil, "", errors.UnsupportedExpression("keyword-only or **kwargs parameters", owner.GetLineno())
	}

	params := make([]*ast.Param, len(args.Args))
	offset := len(args.Args) - len(args.Defaults)
	for i, a := range args.Args {
		params[i] = &ast.Param{Name: string(a.Arg)}
		if i >= offset {
			def, err := lowerExpr(args.Defaults[i-offset])
			if err != nil {
				return nil, "", err
			}
			params[i].Default = def
		}
	}

	vararg := ""
	if args.Vararg != nil {
		vararg = string(args.Vararg.Arg)
	}
	return params, vararg, nil
}

func lowerExprs(exprs []pyast.Expr) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(exprs))
	for i, e := range exprs {
		lowered, err := lowerExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = lowered
	}
	return out, nil
}

func lowerExpr(expr pyast.Expr) (ast.Expr, error) {
	switch e := expr.(type) {
	case *pyast.BinOp:
		op, err := binaryOperator(e.Op, e)
		if err != nil {
			return nil, err
		}
		left, err := lowerExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := lowerExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Pos: posOf(e), Left: left, Op: op, Right: right}, nil
	case *pyast.BoolOp:
		op := ast.And
		if e.Op == pyast.Or {
			op = ast.Or
		}
		values, err := lowerExprs(e.Values)
		if err != nil {
			return nil, err
		}
		return &ast.BooleanOp{Pos: posOf(e), Op: op, Values: values}, nil
	case *pyast.Compare:
		ops := make([]ast.Operator, len(e.Ops))
		for i, op := range e.Ops {
			lowered, err := compareOperator(op, e)
			if err != nil {
				return nil, err
			}
			ops[i] = lowered
		}
		left, err := lowerExpr(e.Left)
		if err != nil {
			return nil, err
		}
		comparators, err := lowerExprs(e.Comparators)
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Pos: posOf(e), Left: left, Ops: ops, Comparators: comparators}, nil
	case *pyast.UnaryOp:
		op, err := unaryOperator(e.Op, e)
		if err != nil {
			return nil, err
		}
		operand, err := lowerExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Pos: posOf(e), Op: op, Operand: operand}, nil
	case *pyast.Lambda:
		params, vararg, err := lowerArguments(e.Args, e)
		if err != nil {
			return nil, err
		}
		if vararg != "" {
			return nil, errors.UnsupportedExpression("Lambda with *args", e.GetLineno())
		}
		body, err := lowerExpr(e.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Pos: posOf(e), Params: params, Body: body}, nil
	case *pyast.Call:
		if len(e.Keywords) > 0 {
			return nil, errors.UnsupportedExpression("Call with keyword arguments", e.GetLineno())
		}
		if e.Starargs != nil || e.Kwargs != nil {
			return nil, errors.UnsupportedExpression("Call with star arguments", e.GetLineno())
		}
		fn, err := lowerExpr(e.Func)
		if err != nil {
			return nil, err
		}
		args, err := lowerExprs(e.Args)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Pos: posOf(e), Func: fn, Args: args}, nil
	case *pyast.Num:
		text, err := numberText(e.N)
		if err != nil {
			return nil, errors.UnsupportedExpression(err.Error(), e.GetLineno())
		}
		return &ast.NumericLiteral{Pos: posOf(e), Value: text}, nil
	case *pyast.Str:
		return &ast.StringLiteral{Pos: posOf(e), Value: string(e.S)}, nil
	case *pyast.Name:
		return &ast.Identifier{Pos: posOf(e), Name: string(e.Id)}, nil
	case *pyast.NameConstant:
		switch e.Value {
		case py.True:
			return &ast.BooleanLiteral{Pos: posOf(e), Value: true}, nil
		case py.False:
			return &ast.BooleanLiteral{Pos: posOf(e), Value: false}, nil
		}
		return &ast.NoneLiteral{Pos: posOf(e)}, nil
	case *pyast.Attribute:
		value, err := lowerExpr(e.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Attribute{Pos: posOf(e), Value: value, Name: string(e.Attr)}, nil
	}
	return nil, errors.UnsupportedExpression(kindOf(expr), expr.GetLineno())
}
