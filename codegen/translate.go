package codegen

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/logger"
	"github.com/teranos/pysharp/pyparse"
)

// Stdout is the output path meaning "write to standard output".
const Stdout = "-"

const headerPrefix = "// Code generated by pysharp"

// Header returns the generated-file header line for a source path.
func Header(src string) string {
	return headerPrefix + " from " + filepath.ToSlash(src) + ". DO NOT EDIT."
}

// Translator renders Python files with a Generator and writes the results.
// It is safe for concurrent use as long as the Generator is.
type Translator struct {
	gen    Generator
	header bool
	stdout io.Writer
	logger *zap.SugaredLogger
}

// NewTranslator creates a translator. With header set, every output starts
// with the line returned by Header.
func NewTranslator(gen Generator, header bool) *Translator {
	return &Translator{
		gen:    gen,
		header: header,
		stdout: os.Stdout,
		logger: logger.ComponentLogger("codegen"),
	}
}

// SetStdout redirects output written to the "-" path.
func (t *Translator) SetStdout(w io.Writer) {
	t.stdout = w
}

// Generator returns the generator used for rendering.
func (t *Translator) Generator() Generator {
	return t.gen
}

// Render parses src and returns the complete output text.
func (t *Translator) Render(ctx context.Context, src string) (string, error) {
	mod, err := pyparse.ParseFile(src)
	if err != nil {
		return "", err
	}

	text, err := t.gen.GenerateFile(ctx, mod)
	if err != nil {
		return "", errors.Wrapf(err, "translate %s", src)
	}

	if t.header {
		text = Header(src) + "\n" + text
	}
	return text, nil
}

// TranslateFile translates src into dst. dst "-" writes to stdout.
// The output file is replaced atomically and only after the whole
// translation succeeded.
func (t *Translator) TranslateFile(ctx context.Context, src, dst string) error {
	log := logger.ChildLogger(t.logger, append(logger.FieldsFromContext(ctx), logger.FieldFile, src)...)

	text, err := t.Render(ctx, src)
	if err != nil {
		if errors.IsUnsupported(err) {
			log.Debugw("Unsupported construct",
				logger.FieldErrorType, errors.UnsupportedKind(err),
				logger.FieldError, err)
		}
		return err
	}

	if dst == Stdout {
		_, err := io.WriteString(t.stdout, text)
		return errors.Wrap(err, "failed to write to stdout")
	}

	if err := writeFileAtomic(dst, []byte(text)); err != nil {
		return err
	}

	log.Debugw("Translated file",
		logger.FieldOutput, dst,
		logger.FieldSize, len(text))
	return nil
}

// TranslateFile translates a single file with gen, without a header.
func TranslateFile(ctx context.Context, gen Generator, src, dst string) error {
	return NewTranslator(gen, false).TranslateFile(ctx, src, dst)
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+strings.TrimPrefix(filepath.Base(path), ".")+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file for %s", path)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err = tmp.Chmod(0644); err != nil {
		return errors.Wrapf(err, "failed to set permissions on %s", path)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "failed to move output into place at %s", path)
	}
	return nil
}
