// Package csharp translates the pysharp syntax tree into C# source text.
//
// # Components
//
//   - operators.go: fixed operator table (tag -> symbol)
//   - infer.go: syntactic type inference over a closed label set
//   - builtins.go: renaming of well-known Python callables
//   - expr.go, stmt.go: expression and statement emitters
//   - generator.go: the translation driver and program boilerplate
//
// Translation is a pure depth-first descent. Every emitter call returns an
// owned string; there is no shared buffer and no cache, so independent trees
// can be translated concurrently with one Generator.
//
// Any node, operator or construct outside the supported set aborts the whole
// translation with an error from the errors package naming the construct.
package csharp

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/pysharp/ast"
	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/logger"
)

// Program boilerplate around the translated statements.
const (
	Prologue = "using System;\npublic class Program {\n\tpublic static void Main(string[] args) {\n"
	Epilogue = "}\n}\n"
)

// Generator is the translation driver for C#.
type Generator struct {
	emitter *Emitter
	logger  *zap.SugaredLogger
}

// NewGenerator creates a C# generator with the given options.
func NewGenerator(opts Options) *Generator {
	return &Generator{
		emitter: NewEmitter(opts),
		logger:  logger.ComponentLogger("csharp"),
	}
}

// Language returns "csharp"
func (g *Generator) Language() string {
	return "csharp"
}

// FileExtension returns "cs"
func (g *Generator) FileExtension() string {
	return "cs"
}

// Emitter returns the emitter used for statement rendering.
func (g *Generator) Emitter() *Emitter {
	return g.emitter
}

// GenerateFile translates a module into a complete C# program.
//
// Each top-level statement is rendered in order and followed by a newline;
// the result is wrapped in a static Program class with a Main entry point.
// The context is checked between top-level statements. On error no partial
// text is returned.
func (g *Generator) GenerateFile(ctx context.Context, mod *ast.Module) (string, error) {
	if mod == nil {
		return "", errors.New("nil module")
	}

	var sb strings.Builder
	sb.WriteString(Prologue)
	for i, stmt := range mod.Body {
		if err := ctx.Err(); err != nil {
			return "", errors.Wrapf(err, "translation cancelled after %d of %d statements", i, len(mod.Body))
		}
		text, err := g.emitter.Stmt(stmt)
		if err != nil {
			return "", err
		}
		if logger.ShouldOutput(logger.Verbosity, logger.OutputStatements) {
			g.logger.Debugw("Translated statement",
				"index", i,
				logger.FieldKind, stmt.Kind(),
				logger.FieldLine, stmt.Position().Line,
				logger.FieldSize, len(text))
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	sb.WriteString(Epilogue)
	return sb.String(), nil
}
