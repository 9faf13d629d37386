// Package pyparse turns Python source into the pysharp syntax tree.
//
// Parsing is delegated to gpython's parser; this package lowers the
// resulting tree into the closed ast variants. Constructs without an ast
// variant are rejected during lowering, with the source line, rather than
// silently dropped.
package pyparse

import (
	"io"
	"os"
	"strings"

	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"

	pyast "github.com/go-python/gpython/ast"

	"github.com/teranos/pysharp/ast"
	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/logger"
)

// Parse reads Python source from r and lowers it. The filename is only used
// in error messages.
func Parse(r io.Reader, filename string) (*ast.Module, error) {
	tree, err := parser.Parse(r, filename, py.ExecMode)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to parse %s", filename),
			"pysharp reads Python 3.4 syntax")
	}

	mod, ok := tree.(*pyast.Module)
	if !ok {
		return nil, errors.Newf("parse %s: expected module, got %T", filename, tree)
	}

	body, err := lowerStmts(mod.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}

	logger.ComponentLogger("pyparse").Debugw("Parsed module",
		logger.FieldFile, filename,
		logger.FieldCount, len(body))
	return &ast.Module{Body: body}, nil
}

// ParseString parses Python source held in memory.
func ParseString(src, filename string) (*ast.Module, error) {
	return Parse(strings.NewReader(src), filename)
}

// ParseFile parses the Python file at path.
func ParseFile(path string) (*ast.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return Parse(f, path)
}
