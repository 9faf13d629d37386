package csharp

import (
	"strings"

	"github.com/teranos/pysharp/ast"
	"github.com/teranos/pysharp/errors"
)

// Stmt renders a statement as a complete statement or block fragment.
func (em *Emitter) Stmt(s ast.Stmt) (string, error) {
	switch n := s.(type) {
	case *ast.FunctionDefinition:
		return em.functionDef(n)
	case *ast.ClassDefinition:
		return em.classDef(n)
	case *ast.Return:
		return em.returnStmt(n)
	case *ast.Assignment:
		return em.assignment(n)
	case *ast.AugmentedAssignment:
		return em.augAssignment(n)
	case *ast.ForLoop:
		return em.forLoop(n)
	case *ast.WhileLoop:
		return em.whileLoop(n)
	case *ast.Conditional:
		return em.conditional(n)
	case *ast.ExpressionStatement:
		value, err := em.Expr(n.Value)
		if err != nil {
			return "", err
		}
		return value + ";", nil
	case *ast.Pass:
		return ";", nil
	case nil:
		return "", errors.UnsupportedStatement("<missing>", 0)
	}
	return "", errors.UnsupportedStatement(s.Kind(), s.Position().Line)
}

// Stmts renders a block: one rendering per statement, joined by newlines,
// in input order. No indentation is added.
func (em *Emitter) Stmts(stmts []ast.Stmt) (string, error) {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		text, err := em.Stmt(s)
		if err != nil {
			return "", err
		}
		parts[i] = text
	}
	return strings.Join(parts, "\n"), nil
}

func (em *Emitter) functionDef(n *ast.FunctionDefinition) (string, error) {
	params, err := em.params(n.Params, n.Vararg)
	if err != nil {
		return "", err
	}
	body, err := em.Stmts(n.Body)
	if err != nil {
		return "", err
	}
	return string(Infer(n.Returns)) + " " + n.Name + "(" + params + ") {\n" + body + "\n}", nil
}

func (em *Emitter) classDef(n *ast.ClassDefinition) (string, error) {
	bases, err := em.exprList(n.Bases)
	if err != nil {
		return "", err
	}
	body, err := em.Stmts(n.Body)
	if err != nil {
		return "", err
	}
	header := "class " + n.Name + " : " + bases
	if em.opts.OmitEmptyBases && len(n.Bases) == 0 {
		header = "class " + n.Name
	}
	return header + " {\n" + body + "\n}", nil
}

func (em *Emitter) returnStmt(n *ast.Return) (string, error) {
	if n.Value == nil {
		return "return;", nil
	}
	value, err := em.Expr(n.Value)
	if err != nil {
		return "", err
	}
	return "return " + value + ";", nil
}

func (em *Emitter) assignment(n *ast.Assignment) (string, error) {
	if len(n.Targets) == 0 {
		return "", errors.UnsupportedStatement("Assignment without target", n.Line)
	}
	typ := string(Infer(n.Value))
	first, err := em.Expr(n.Targets[0])
	if err != nil {
		return "", err
	}
	value, err := em.Expr(n.Value)
	if err != nil {
		return "", err
	}

	if !em.opts.AllTargets {
		return typ + " " + first + " = " + value + ";", nil
	}

	// Python assigns left to right; later targets copy the first, or the
	// value itself when reading the first target back would re-evaluate it.
	source := first
	if len(n.Targets) > 1 && !repeatable(n.Targets[0]) {
		if !repeatable(n.Value) {
			return "", errors.UnsupportedStatement("chained Assignment to side-effecting target", n.Line)
		}
		source = value
	}
	lines := []string{em.declare(typ, n.Targets[0], first) + " = " + value + ";"}
	for _, t := range n.Targets[1:] {
		target, err := em.Expr(t)
		if err != nil {
			return "", err
		}
		lines = append(lines, em.declare(typ, t, target)+" = "+source+";")
	}
	return strings.Join(lines, "\n"), nil
}

// declare prefixes a target with its type when the target introduces a name.
func (em *Emitter) declare(typ string, target ast.Expr, text string) string {
	if _, ok := target.(*ast.Identifier); ok {
		return typ + " " + text
	}
	return text
}

func (em *Emitter) augAssignment(n *ast.AugmentedAssignment) (string, error) {
	target, err := em.Expr(n.Target)
	if err != nil {
		return "", err
	}
	if em.opts.MathOperators && (n.Op == ast.Pow || n.Op == ast.FloorDiv) {
		value, err := em.mathCall(n.Op, n.Target, n.Value)
		if err != nil {
			return "", err
		}
		return target + " = " + value + ";", nil
	}

	sym, err := SymbolFor(n.Op)
	if err != nil {
		return "", withLine(err, n)
	}
	value, err := em.Expr(n.Value)
	if err != nil {
		return "", err
	}
	return target + " " + sym + "= " + value + ";", nil
}

func (em *Emitter) forLoop(n *ast.ForLoop) (string, error) {
	target, err := em.Expr(n.Target)
	if err != nil {
		return "", err
	}
	iter, err := em.Expr(n.Iter)
	if err != nil {
		return "", err
	}
	body, err := em.Stmts(n.Body)
	if err != nil {
		return "", err
	}
	if em.opts.ForeachLoops {
		return "foreach (var " + target + " in " + iter + ") {\n" + body + "\n}", nil
	}
	return "for (" + target + " = " + iter + ") {\n" + body + "\n}", nil
}

func (em *Emitter) whileLoop(n *ast.WhileLoop) (string, error) {
	test, err := em.Expr(n.Test)
	if err != nil {
		return "", err
	}
	body, err := em.Stmts(n.Body)
	if err != nil {
		return "", err
	}
	return "while (" + test + ") {\n" + body + "\n}", nil
}

func (em *Emitter) conditional(n *ast.Conditional) (string, error) {
	test, err := em.Expr(n.Test)
	if err != nil {
		return "", err
	}
	body, err := em.Stmts(n.Body)
	if err != nil {
		return "", err
	}
	out := "if (" + test + ") {\n\t" + body + "}\n"
	if len(n.Orelse) == 0 {
		return out, nil
	}
	orelse, err := em.Stmts(n.Orelse)
	if err != nil {
		return "", err
	}
	return out + "else {\n\t" + orelse + "}\n", nil
}
