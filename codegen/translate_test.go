package codegen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/pysharp/csharp"
	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/logger"
)

// writeSource creates a Python file under dir and returns its path.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTranslator(header bool) *Translator {
	return NewTranslator(csharp.NewGenerator(csharp.DefaultOptions()), header)
}

func program(body string) string {
	return csharp.Prologue + body + csharp.Epilogue
}

func TestGeneratorInterface(t *testing.T) {
	var gen Generator = csharp.NewGenerator(csharp.DefaultOptions())
	assert.Equal(t, "csharp", gen.Language())
	assert.Equal(t, "cs", gen.FileExtension())
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "// Code generated by pysharp from pkg/mod.py. DO NOT EDIT.", Header(filepath.Join("pkg", "mod.py")))
}

func TestTranslator_Render(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "prog.py", "x = 1\nprint(x)\n")

	t.Run("without header", func(t *testing.T) {
		text, err := newTranslator(false).Render(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, program("int x = 1;\nConsole.WriteLine(x);\n"), text)
	})

	t.Run("with header", func(t *testing.T) {
		text, err := newTranslator(true).Render(context.Background(), src)
		require.NoError(t, err)
		first, rest, ok := strings.Cut(text, "\n")
		require.True(t, ok)
		assert.Equal(t, Header(src), first)
		assert.Equal(t, program("int x = 1;\nConsole.WriteLine(x);\n"), rest)
	})

	t.Run("compat options", func(t *testing.T) {
		tr := NewTranslator(csharp.NewGenerator(csharp.CompatOptions()), false)
		text, err := tr.Render(context.Background(), src)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(text, csharp.Prologue))
	})
}

func TestTranslator_TranslateFile(t *testing.T) {
	t.Run("writes output file", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "prog.py", "x = 1\n")
		dst := filepath.Join(dir, "out", "nested", "prog.cs")

		require.NoError(t, newTranslator(false).TranslateFile(context.Background(), src, dst))

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, program("int x = 1;\n"), string(data))

		entries, err := os.ReadDir(filepath.Dir(dst))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp files must not be left behind")
	})

	t.Run("stdout", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "prog.py", "x = 1\n")
		var buf bytes.Buffer
		tr := newTranslator(false)
		tr.SetStdout(&buf)

		require.NoError(t, tr.TranslateFile(context.Background(), src, Stdout))
		assert.Equal(t, program("int x = 1;\n"), buf.String())
	})

	t.Run("unsupported construct leaves existing output untouched", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "prog.py", "x = 1\nif a is b:\n    pass\n")
		dst := filepath.Join(dir, "prog.cs")
		require.NoError(t, os.WriteFile(dst, []byte("previous"), 0644))

		err := newTranslator(false).TranslateFile(context.Background(), src, dst)
		require.Error(t, err)
		assert.True(t, errors.IsUnsupported(err), "got %v", err)
		assert.Contains(t, err.Error(), src)

		data, readErr := os.ReadFile(dst)
		require.NoError(t, readErr)
		assert.Equal(t, "previous", string(data))
	})

	t.Run("missing source", func(t *testing.T) {
		dir := t.TempDir()
		err := newTranslator(false).TranslateFile(context.Background(), filepath.Join(dir, "nope.py"), filepath.Join(dir, "nope.cs"))
		require.Error(t, err)
		_, statErr := os.Stat(filepath.Join(dir, "nope.cs"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("package helper", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "prog.py", "y = \"s\"\n")
		dst := filepath.Join(dir, "prog.cs")
		require.NoError(t, TranslateFile(context.Background(), csharp.NewGenerator(csharp.DefaultOptions()), src, dst))

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, program("string y = \"s\";\n"), string(data))
	})
}

func TestWriteFileAtomic_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.cs")
	require.NoError(t, writeFileAtomic(path, []byte("data")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestTranslator_LogFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Logger = zap.New(core).Sugar()
	defer func() { logger.Logger = zap.NewNop().Sugar() }()

	dir := t.TempDir()
	good := writeSource(t, dir, "good.py", "x = 1\n")
	bad := writeSource(t, dir, "bad.py", "x = 1\ny = a is b\n")
	tr := newTranslator(false)

	jobs := []Job{{Source: good, Output: filepath.Join(dir, "good.cs")}}
	_, err := tr.Build(context.Background(), jobs, 1)
	require.NoError(t, err)

	translated := logs.FilterMessage("Translated file").All()
	require.Len(t, translated, 1)
	fields := translated[0].ContextMap()
	assert.Equal(t, "codegen", translated[0].LoggerName)
	assert.Equal(t, good, fields[logger.FieldFile])
	assert.Equal(t, "codegen.build", fields[logger.FieldComponent])
	assert.NotEmpty(t, fields[logger.FieldTraceID])

	finished := logs.FilterMessage("Build finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, "ok", finished[0].ContextMap()[logger.FieldStatus])

	err = tr.TranslateFile(context.Background(), bad, filepath.Join(dir, "bad.cs"))
	require.Error(t, err)
	failed := logs.FilterMessage("Unsupported construct").All()
	require.Len(t, failed, 1)
	assert.Equal(t, bad, failed[0].ContextMap()[logger.FieldFile])
	assert.Equal(t, "Is", failed[0].ContextMap()[logger.FieldErrorType])
}
