package pyparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/pysharp/ast"
	"github.com/teranos/pysharp/csharp"
	"github.com/teranos/pysharp/errors"
)

func TestParse_Structure(t *testing.T) {
	mod, err := ParseString("x = 1\nprint(x)\n", "test.py")
	require.NoError(t, err)
	require.Len(t, mod.Body, 2)

	assign, ok := mod.Body[0].(*ast.Assignment)
	require.True(t, ok, "expected Assignment, got %T", mod.Body[0])
	assert.Equal(t, 1, assign.Line)
	require.Len(t, assign.Targets, 1)
	assert.Equal(t, "x", assign.Targets[0].(*ast.Identifier).Name)
	assert.Equal(t, "1", assign.Value.(*ast.NumericLiteral).Value)

	stmt, ok := mod.Body[1].(*ast.ExpressionStatement)
	require.True(t, ok, "expected ExpressionStatement, got %T", mod.Body[1])
	assert.Equal(t, 2, stmt.Line)
	c := stmt.Value.(*ast.Call)
	assert.Equal(t, "print", c.Func.(*ast.Identifier).Name)
	assert.Len(t, c.Args, 1)
}

func TestParse_Functions(t *testing.T) {
	src := "def add(a, b=2, *rest) -> int:\n    return a + b\n"
	mod, err := ParseString(src, "fn.py")
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)

	fn := mod.Body[0].(*ast.FunctionDefinition)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Nil(t, fn.Params[0].Default)
	assert.Equal(t, "b", fn.Params[1].Name)
	assert.Equal(t, "2", fn.Params[1].Default.(*ast.NumericLiteral).Value)
	assert.Equal(t, "rest", fn.Vararg)
	assert.Equal(t, "int", fn.Returns.(*ast.Identifier).Name)
	require.Len(t, fn.Body, 1)
	assert.Equal(t, 2, fn.Body[0].Position().Line)
}

func TestParse_Literals(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Expr
	}{
		{"1", &ast.NumericLiteral{Value: "1"}},
		{"2.5", &ast.NumericLiteral{Value: "2.5"}},
		{"1.0", &ast.NumericLiteral{Value: "1.0"}},
		{"100000000000000000000", &ast.NumericLiteral{Value: "100000000000000000000"}},
		{"'hi'", &ast.StringLiteral{Value: "hi"}},
		{`"a\nb"`, &ast.StringLiteral{Value: "a\nb"}},
		{"True", &ast.BooleanLiteral{Value: true}},
		{"False", &ast.BooleanLiteral{Value: false}},
		{"None", &ast.NoneLiteral{}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			mod, err := ParseString(tt.src+"\n", "lit.py")
			require.NoError(t, err)
			got := mod.Body[0].(*ast.ExpressionStatement).Value

			// Positions are not part of the comparison
			switch want := tt.want.(type) {
			case *ast.NumericLiteral:
				assert.Equal(t, want.Value, got.(*ast.NumericLiteral).Value)
			case *ast.StringLiteral:
				assert.Equal(t, want.Value, got.(*ast.StringLiteral).Value)
			case *ast.BooleanLiteral:
				assert.Equal(t, want.Value, got.(*ast.BooleanLiteral).Value)
			case *ast.NoneLiteral:
				assert.IsType(t, &ast.NoneLiteral{}, got)
			}
		})
	}
}

func TestParse_Translate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"integer assignment", "x = 1\n", "int x = 1;"},
		{"string assignment", "name = \"hi\"\n", `string name = "hi";`},
		{"print", "print(x)\n", "Console.WriteLine(x);"},
		{"if without else", "if a < b:\n    return a\n", "if (a < b) {\n\treturn a;}\n"},
		{"if with else", "if a:\n    x = 1\nelse:\n    x = 2\n", "if (a) {\n\tint x = 1;}\nelse {\n\tint x = 2;}\n"},
		{"function without annotation", "def f():\n    return 1\n", "dynamic f() {\nreturn 1;\n}"},
		{"function with parameters", "def add(a, b=2, *rest):\n    return a + b\n", "dynamic add(dynamic a, dynamic b = 2, params dynamic[] rest) {\nreturn a + b;\n}"},
		{"class", "class Foo(Bar):\n    pass\n", "class Foo : Bar {\n;\n}"},
		{"class without bases", "class Foo:\n    pass\n", "class Foo {\n;\n}"},
		{"augmented assignment", "x += 1\n", "x += 1;"},
		{"while", "while n > 0:\n    n -= 1\n", "while (n > 0) {\nn -= 1;\n}"},
		{"for", "for x in xs:\n    print(x)\n", "foreach (var x in xs) {\nConsole.WriteLine(x);\n}"},
		{"lambda", "f = lambda x: x * 2\n", "dynamic f = (dynamic x) => x * 2;"},
		{"not", "ok = not done\n", "dynamic ok = !done;"},
		{"and", "ok = a and b\n", "bool ok = a && b;"},
		{"negated power", "y = -x ** 2\n", "dynamic y = -Math.Pow(x, 2);"},
		{"none", "x = None\n", "dynamic x = null;"},
		{"escaped quote", "s = 'a\"b'\n", `string s = "a\"b";`},
		{"attribute target", "self.x = 1\n", "self.x = 1;"},
		{"chained assignment", "a = b = 0\n", "int a = 0;\nint b = a;"},
		{"grouping", "z = (a + b) * c\n", "dynamic z = (a + b) * c;"},
		{"chained comparison", "r = 1 < x < 10\n", "bool r = 1 < x && x < 10;"},
		{"input", "line = input()\n", "dynamic line = Console.ReadLine();"},
		{"method call", "xs.append(1)\n", "xs.append(1);"},
		{"floor division", "q = a // b\n", "dynamic q = Math.Floor((double)a / b);"},
	}

	emitter := csharp.NewEmitter(csharp.DefaultOptions())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, err := ParseString(tt.src, "t.py")
			require.NoError(t, err)
			got, err := emitter.Stmts(mod.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		class error
		kind  string
		line  int // 0 skips the check
	}{
		{"try statement", "x = 1\ny = 2\ntry:\n    pass\nexcept:\n    pass\n", errors.ErrUnsupportedStatement, "Try", 3},
		{"import", "import os\n", errors.ErrUnsupportedStatement, "Import", 1},
		{"break", "while x:\n    break\n", errors.ErrUnsupportedStatement, "Break", 2},
		{"decorator", "@dec\ndef f():\n    pass\n", errors.ErrUnsupportedStatement, "decorated FunctionDef", 0},
		{"for else", "for x in xs:\n    pass\nelse:\n    pass\n", errors.ErrUnsupportedStatement, "For with else clause", 1},
		{"list literal", "x = [1, 2]\n", errors.ErrUnsupportedExpression, "List", 1},
		{"subscript", "y = x[0]\n", errors.ErrUnsupportedExpression, "Subscript", 1},
		{"keyword argument", "f(a=1)\n", errors.ErrUnsupportedExpression, "Call with keyword arguments", 1},
		{"complex literal", "x = 1j\n", errors.ErrUnsupportedExpression, "complex literal", 1},
		{"keyword-only parameter", "def f(*, a):\n    pass\n", errors.ErrUnsupportedExpression, "keyword-only or **kwargs parameters", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src, "bad.py")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.class), "got %v", err)

			var unsupported *errors.UnsupportedError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, tt.kind, unsupported.Kind)
			if tt.line > 0 {
				assert.Equal(t, tt.line, unsupported.Line)
			}
			assert.Contains(t, err.Error(), "bad.py")
		})
	}
}

func TestParse_ChainedComparisonCallsOnce(t *testing.T) {
	mod, err := ParseString("ok = a < f() < c\n", "chain.py")
	require.NoError(t, err)

	_, err = csharp.NewEmitter(csharp.DefaultOptions()).Stmts(mod.Body)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedExpression), "got %v", err)

	var unsupported *errors.UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, 1, unsupported.Line)
}

func TestParse_OperatorsSurviveLowering(t *testing.T) {
	// is/in have no C# symbol; lowering keeps them and translation rejects them
	mod, err := ParseString("r = x is None\n", "ops.py")
	require.NoError(t, err)
	comparison := mod.Body[0].(*ast.Assignment).Value.(*ast.Comparison)
	assert.Equal(t, []ast.Operator{ast.Is}, comparison.Ops)

	_, err = csharp.NewEmitter(csharp.DefaultOptions()).Stmts(mod.Body)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedOperator))
	assert.Equal(t, "Is", errors.UnsupportedKind(err))
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := ParseString("def (:\n", "broken.py")
	require.Error(t, err)
	assert.False(t, errors.IsUnsupported(err))
	assert.Contains(t, err.Error(), "broken.py")
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.py")
	require.NoError(t, os.WriteFile(path, []byte("print(\"hello\")\n"), 0644))

	mod, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)

	_, err = ParseFile(filepath.Join(dir, "missing.py"))
	assert.Error(t, err)
}
