// Package codegen drives translation of Python sources into target-language files.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. Language-agnostic parsing (pyparse) lowers Python source into the closed ast tree
//  2. Language-specific generators (csharp/) render the tree as text
//
// Everything in this package works on files: single-file translation with
// atomic output, concurrent batch builds, up-to-date checks and watch mode.
//
// # Design Decisions
//
// - Output is rendered fully in memory before anything is written, and
//   written through a temp file + rename, so a failed translation never
//   leaves a partial output file behind.
// - Batch builds fail fast: the first unsupported construct cancels the
//   remaining work.
// - Generated files may carry a header line; Check ignores it when comparing.
package codegen

import (
	"context"

	"github.com/teranos/pysharp/ast"
)

// Generator defines the interface for language-specific code generators.
type Generator interface {
	// GenerateFile creates a complete output file from a parsed module
	GenerateFile(ctx context.Context, mod *ast.Module) (string, error)

	// FileExtension returns the file extension for this language (e.g., "cs")
	FileExtension() string

	// Language returns the language name (e.g., "csharp")
	Language() string
}
