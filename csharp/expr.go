package csharp

import (
	"strconv"
	"strings"

	"github.com/teranos/pysharp/ast"
	"github.com/teranos/pysharp/errors"
)

// Emitter renders syntax tree nodes as C# text.
// It holds no state besides its options and is safe for concurrent use.
type Emitter struct {
	opts Options
}

// NewEmitter creates an emitter with the given options.
func NewEmitter(opts Options) *Emitter {
	return &Emitter{opts: opts}
}

// Options returns the options the emitter was created with.
func (em *Emitter) Options() Options {
	return em.opts
}

// Expr renders an expression as a single-line fragment without a terminator.
func (em *Emitter) Expr(e ast.Expr) (string, error) {
	text, _, err := em.expr(e)
	return text, err
}

// expr renders e and reports the C# precedence of the rendered text.
func (em *Emitter) expr(e ast.Expr) (string, int, error) {
	switch n := e.(type) {
	case *ast.BinaryOp:
		return em.binaryOp(n)
	case *ast.BooleanOp:
		return em.booleanOp(n)
	case *ast.Comparison:
		return em.comparison(n)
	case *ast.UnaryOp:
		return em.unaryOp(n)
	case *ast.Lambda:
		return em.lambda(n)
	case *ast.Call:
		return em.call(n)
	case *ast.NumericLiteral:
		return n.Value, precPrimary, nil
	case *ast.StringLiteral:
		if em.opts.EscapeStrings {
			return quoteString(n.Value), precPrimary, nil
		}
		return `"` + n.Value + `"`, precPrimary, nil
	case *ast.Identifier:
		return n.Name, precPrimary, nil
	case *ast.BooleanLiteral:
		return strconv.FormatBool(n.Value), precPrimary, nil
	case *ast.NoneLiteral:
		return "null", precPrimary, nil
	case *ast.Attribute:
		value, err := em.operand(n.Value, precPrimary, false)
		if err != nil {
			return "", 0, err
		}
		return value + "." + n.Name, precPrimary, nil
	case nil:
		return "", 0, errors.UnsupportedExpression("<missing>", 0)
	}
	return "", 0, errors.UnsupportedExpression(e.Kind(), e.Position().Line)
}

// operand renders e as an operand of an operator with the given precedence,
// parenthesizing it when Parenthesize is set and the binding would change.
// right marks the right-hand side of a left-associative operator.
func (em *Emitter) operand(e ast.Expr, parent int, right bool) (string, error) {
	text, prec, err := em.expr(e)
	if err != nil {
		return "", err
	}
	if em.opts.Parenthesize && (prec < parent || (right && prec == parent)) {
		return "(" + text + ")", nil
	}
	return text, nil
}

// group renders e as a self-contained operand regardless of options.
// Used where the emitter introduces syntax the input did not have.
func (em *Emitter) group(e ast.Expr) (string, error) {
	text, prec, err := em.expr(e)
	if err != nil {
		return "", err
	}
	if prec < precPrimary {
		return "(" + text + ")", nil
	}
	return text, nil
}

func (em *Emitter) binaryOp(n *ast.BinaryOp) (string, int, error) {
	if em.opts.MathOperators && (n.Op == ast.Pow || n.Op == ast.FloorDiv) {
		text, err := em.mathCall(n.Op, n.Left, n.Right)
		return text, precPrimary, err
	}

	sym, err := SymbolFor(n.Op)
	if err != nil {
		return "", 0, withLine(err, n)
	}
	prec := precedenceOf(n.Op)
	left, err := em.operand(n.Left, prec, false)
	if err != nil {
		return "", 0, err
	}
	right, err := em.operand(n.Right, prec, true)
	if err != nil {
		return "", 0, err
	}
	return left + " " + sym + " " + right, prec, nil
}

// mathCall lowers ** and // to System.Math calls.
func (em *Emitter) mathCall(op ast.Operator, l, r ast.Expr) (string, error) {
	if op == ast.Pow {
		left, err := em.Expr(l)
		if err != nil {
			return "", err
		}
		right, err := em.Expr(r)
		if err != nil {
			return "", err
		}
		return "Math.Pow(" + left + ", " + right + ")", nil
	}

	left, err := em.group(l)
	if err != nil {
		return "", err
	}
	right, err := em.group(r)
	if err != nil {
		return "", err
	}
	return "Math.Floor((double)" + left + " / " + right + ")", nil
}

func (em *Emitter) booleanOp(n *ast.BooleanOp) (string, int, error) {
	sym, err := SymbolFor(n.Op)
	if err != nil {
		return "", 0, withLine(err, n)
	}
	prec := precedenceOf(n.Op)
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		text, err := em.operand(v, prec, i > 0)
		if err != nil {
			return "", 0, err
		}
		parts[i] = text
	}
	return strings.Join(parts, " "+sym+" "), prec, nil
}

func (em *Emitter) comparison(n *ast.Comparison) (string, int, error) {
	if len(n.Ops) != len(n.Comparators) {
		return "", 0, errors.UnsupportedExpression("Comparison with mismatched operands", n.Line)
	}

	symbols := make([]string, len(n.Ops))
	for i, op := range n.Ops {
		sym, err := SymbolFor(op)
		if err != nil {
			return "", 0, withLine(err, n)
		}
		symbols[i] = sym
	}

	if em.opts.ExpandChains && len(n.Ops) > 1 {
		return em.expandedChain(n, symbols)
	}

	// Flat rendering: left op1 c1 op2 c2 ...
	prec := precRelational
	if len(n.Ops) > 0 {
		prec = precedenceOf(n.Ops[0])
	}
	left, err := em.operand(n.Left, prec, false)
	if err != nil {
		return "", 0, err
	}
	var sb strings.Builder
	sb.WriteString(left)
	for i, c := range n.Comparators {
		right, err := em.operand(c, precedenceOf(n.Ops[i]), true)
		if err != nil {
			return "", 0, err
		}
		sb.WriteString(" " + symbols[i] + " " + right)
	}
	return sb.String(), prec, nil
}

// expandedChain renders a < b < c as a < b && b < c.
// Middle operands appear twice in the output, so each must be repeatable.
func (em *Emitter) expandedChain(n *ast.Comparison, symbols []string) (string, int, error) {
	for _, middle := range n.Comparators[:len(n.Comparators)-1] {
		if !repeatable(middle) {
			return "", 0, errors.UnsupportedExpression("chained Comparison with side-effecting operand", n.Line)
		}
	}

	parts := make([]string, len(n.Ops))
	prev := n.Left
	for i, op := range n.Ops {
		prec := precedenceOf(op)
		left, err := em.operand(prev, prec, false)
		if err != nil {
			return "", 0, err
		}
		right, err := em.operand(n.Comparators[i], prec, true)
		if err != nil {
			return "", 0, err
		}
		parts[i] = left + " " + symbols[i] + " " + right
		prev = n.Comparators[i]
	}
	return strings.Join(parts, " && "), precAnd, nil
}

func (em *Emitter) unaryOp(n *ast.UnaryOp) (string, int, error) {
	if !em.opts.UnarySymbols {
		operand, err := em.Expr(n.Operand)
		if err != nil {
			return "", 0, err
		}
		return n.Op.String() + " " + operand, precUnary, nil
	}

	sym, err := UnarySymbolFor(n.Op)
	if err != nil {
		return "", 0, withLine(err, n)
	}
	operand, err := em.operand(n.Operand, precUnary, false)
	if err != nil {
		return "", 0, err
	}
	// "- -x" must not collapse into the decrement operator.
	if (sym == "-" || sym == "+") && (strings.HasPrefix(operand, "-") || strings.HasPrefix(operand, "+")) {
		return sym + " " + operand, precUnary, nil
	}
	return sym + operand, precUnary, nil
}

func (em *Emitter) lambda(n *ast.Lambda) (string, int, error) {
	params, err := em.params(n.Params, "")
	if err != nil {
		return "", 0, err
	}
	body, err := em.Expr(n.Body)
	if err != nil {
		return "", 0, err
	}
	return "(" + params + ") => " + body, precLambda, nil
}

func (em *Emitter) call(n *ast.Call) (string, int, error) {
	callee, err := em.operand(n.Func, precPrimary, false)
	if err != nil {
		return "", 0, err
	}
	args, err := em.exprList(n.Args)
	if err != nil {
		return "", 0, err
	}
	return ResolveBuiltin(callee) + "(" + args + ")", precPrimary, nil
}

// exprList renders expressions separated by ", ".
func (em *Emitter) exprList(exprs []ast.Expr) (string, error) {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		text, err := em.Expr(e)
		if err != nil {
			return "", err
		}
		parts[i] = text
	}
	return strings.Join(parts, ", "), nil
}

// params renders a parameter list. Every parameter is dynamic; a non-empty
// vararg becomes a trailing params array.
func (em *Emitter) params(params []*ast.Param, vararg string) (string, error) {
	parts := make([]string, 0, len(params)+1)
	for _, p := range params {
		decl := string(TypeDynamic) + " " + p.Name
		if p.Default != nil {
			def, err := em.Expr(p.Default)
			if err != nil {
				return "", err
			}
			decl += " = " + def
		}
		parts = append(parts, decl)
	}
	if vararg != "" {
		parts = append(parts, "params "+string(TypeDynamic)+"[] "+vararg)
	}
	return strings.Join(parts, ", "), nil
}

// repeatable reports whether rendering e twice evaluates the same thing
// twice without side effects: names, literals and attributes of those.
func repeatable(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Identifier, *ast.NumericLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NoneLiteral:
		return true
	case *ast.Attribute:
		return repeatable(n.Value)
	}
	return false
}

// withLine attaches the node's line to an operator error raised by the table.
func withLine(err error, n ast.Node) error {
	var unsupported *errors.UnsupportedError
	if n.Position().Line > 0 && errors.As(err, &unsupported) && unsupported.Line == 0 {
		return errors.UnsupportedOperator(unsupported.Kind, n.Position().Line)
	}
	return err
}
