package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/pysharp/config"
	"github.com/teranos/pysharp/csharp"
	"github.com/teranos/pysharp/errors"
)

// workspace isolates a test from real config files and returns its directory.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	t.Cleanup(config.Reset)
	return dir
}

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(args)
	statusOut = io.Discard

	err := RootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func program(body string) string {
	return csharp.Prologue + body + csharp.Epilogue
}

func TestRoot_Translate(t *testing.T) {
	dir := workspace(t)
	src := filepath.Join(dir, "hello.py")
	writeFile(t, src, "name = \"world\"\nprint(name)\n")

	t.Run("to file", func(t *testing.T) {
		dst := filepath.Join(dir, "Hello.cs")
		_, err := execute(t, src, dst)
		require.NoError(t, err)
		assert.Equal(t, program("string name = \"world\";\nConsole.WriteLine(name);\n"), readFile(t, dst))
	})

	t.Run("to stdout", func(t *testing.T) {
		out, err := execute(t, src, "-")
		require.NoError(t, err)
		assert.Equal(t, program("string name = \"world\";\nConsole.WriteLine(name);\n"), out)
	})

	t.Run("wrong argument count", func(t *testing.T) {
		_, err := execute(t, src)
		require.Error(t, err)
	})
}

func TestRoot_Compat(t *testing.T) {
	dir := workspace(t)
	src := filepath.Join(dir, "foo.py")
	writeFile(t, src, "class Foo:\n    pass\n")

	out, err := execute(t, src, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "class Foo {\n")

	out, err = execute(t, "--compat", src, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "class Foo :  {\n")
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := workspace(t)
	src := filepath.Join(dir, "a.py")
	writeFile(t, src, "x = 1\n")
	cfgPath := filepath.Join(dir, "custom.toml")
	writeFile(t, cfgPath, "[output]\nheader = true\n")

	out, err := execute(t, "--config", cfgPath, src, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "// Code generated by pysharp from ")
	assert.Contains(t, out, program("int x = 1;\n"))
}

func TestRoot_Unsupported(t *testing.T) {
	dir := workspace(t)
	src := filepath.Join(dir, "bad.py")
	writeFile(t, src, "import os\n")
	dst := filepath.Join(dir, "bad.cs")

	_, err := execute(t, src, dst)
	require.Error(t, err)
	assert.True(t, errors.IsUnsupported(err), "got %v", err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))

	lines := strings.Split(strings.TrimSuffix(FormatError(err), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Error: "), lines[0])
	assert.Equal(t, "Unsupported construct: Import", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Hint: Import is not translated"), lines[2])
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", errors.New("boom"), "Error: boom\n"},
		{"hint", errors.WithHint(errors.New("boom"), "try again"), "Error: boom\nHint: try again\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatError(tt.err))
		})
	}
}

func TestBuildAndCheck(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "src", "a.py"), "x = 1\n")
	writeFile(t, filepath.Join(dir, "src", "pkg", "b.py"), "y = 2.5\n")
	out := filepath.Join(dir, "gen")

	_, err := execute(t, "check", "src", out)
	require.Error(t, err, "missing outputs are stale")

	_, err = execute(t, "build", "src", "-o", out, "--workers", "2")
	require.NoError(t, err)
	assert.Equal(t, program("int x = 1;\n"), readFile(t, filepath.Join(out, "a.cs")))
	assert.Equal(t, program("int y = 2.5;\n"), readFile(t, filepath.Join(out, "pkg", "b.cs")))

	_, err = execute(t, "check", "src", out)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "src", "a.py"), "x = 2\n")
	stdout, err := execute(t, "check", "src", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files are out of date")
	assert.Contains(t, stdout, filepath.Join(out, "a.cs"))
}

func TestBuild_Alongside(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "src", "a.py"), "x = 1\n")

	_, err := execute(t, "build", "src")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "src", "a.cs"))
}

func TestBuild_ExtensionFromEnv(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "src", "a.py"), "x = 1\n")
	t.Setenv("PYSHARP_OUTPUT_EXTENSION", "g.cs")

	_, err := execute(t, "build", "src", "-o", "gen")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "gen", "a.g.cs"))
}

func TestConfig_Show(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, config.ProjectFileName), "[build]\nworkers = 3\n")

	out, err := execute(t, "config", "show", "--format", "json")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 3, cfg.Build.Workers)
	assert.Equal(t, config.DefaultExtension, cfg.Output.Extension)

	out, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# pysharp configuration")
	assert.Contains(t, out, "workers = 3")

	_, err = execute(t, "config", "show", "--format", "ini")
	require.Error(t, err)
}

func TestConfig_Init(t *testing.T) {
	dir := workspace(t)
	path := filepath.Join(dir, config.ProjectFileName)

	_, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init")
	require.Error(t, err, "existing file needs --force")

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.FileExists(t, path+".back1")
}

func TestVersion(t *testing.T) {
	workspace(t)

	out, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "commit_hash")

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pysharp")
	assert.Contains(t, out, "Platform:")
}
