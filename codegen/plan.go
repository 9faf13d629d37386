package codegen

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/pysharp/errors"
)

// SourceExtension is the extension of files picked up from directories.
const SourceExtension = ".py"

// Job is one source file and the path its translation is written to.
type Job struct {
	Source string
	Output string
}

// Plan maps src to translation jobs.
//
// A file source produces one job: dst "" writes next to the source,
// an existing directory receives the file under its own name, and anything
// else is used as the output path. A directory source produces one job per
// .py file in the tree (hidden directories and __pycache__ are skipped),
// mirrored under dst, or next to each source when dst is "".
func Plan(src, dst, ext string) ([]Job, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, errors.Wrapf(err, "source %s", src)
	}

	if !info.IsDir() {
		return []Job{{Source: src, Output: fileOutput(src, dst, ext)}}, nil
	}

	if dst == Stdout {
		return nil, errors.WithHint(
			errors.Newf("cannot write directory %s to stdout", src),
			"pass an output directory with -o")
	}

	var jobs []Job
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != src && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != SourceExtension {
			return nil
		}
		jobs = append(jobs, Job{Source: path, Output: treeOutput(src, dst, path, ext)})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", src)
	}
	return jobs, nil
}

func fileOutput(src, dst, ext string) string {
	switch {
	case dst == "":
		return replaceExt(src, ext)
	case dst == Stdout:
		return Stdout
	}
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		return filepath.Join(dst, replaceExt(filepath.Base(src), ext))
	}
	return dst
}

// treeOutput mirrors path, found under root, into dst.
func treeOutput(root, dst, path, ext string) string {
	if dst == "" {
		return replaceExt(path, ext)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.Join(dst, replaceExt(rel, ext))
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + strings.TrimPrefix(ext, ".")
}

func skipDir(name string) bool {
	return name == "__pycache__" || strings.HasPrefix(name, ".")
}
