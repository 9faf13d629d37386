package codegen

import (
	"context"
	"os"
	"strings"

	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/logger"
)

// CheckResult holds the result of an up-to-date check
type CheckResult struct {
	UpToDate bool
	// Differences lists output files that are stale, annotated with
	// "(missing)" or "(error: ...)" when the file could not be compared.
	Differences []string
}

// Check regenerates every job in memory and compares it with the output on
// disk. A leading header line is ignored, so toggling output.header does not
// make files stale; everything else must match byte for byte. Translation errors abort the check.
func (t *Translator) Check(ctx context.Context, jobs []Job) (*CheckResult, error) {
	var diffs []string

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if job.Output == Stdout {
			return nil, errors.Newf("cannot check %s against stdout", job.Source)
		}

		want, err := t.Render(ctx, job.Source)
		if err != nil {
			return nil, err
		}

		existing, err := os.ReadFile(job.Output)
		switch {
		case os.IsNotExist(err):
			diffs = append(diffs, job.Output+" (missing)")
		case err != nil:
			diffs = append(diffs, job.Output+" (error: "+err.Error()+")")
		case stripHeader(want) != stripHeader(string(existing)):
			diffs = append(diffs, job.Output)
		}
	}

	status := "up-to-date"
	if len(diffs) > 0 {
		status = "stale"
	}
	logger.ChildLogger(t.logger, logger.FieldsFromContext(ctx)...).Infow("Check finished",
		logger.FieldOperation, "check",
		logger.FieldStatus, status,
		logger.FieldCount, len(jobs))

	return &CheckResult{
		UpToDate:    len(diffs) == 0,
		Differences: diffs,
	}, nil
}

// stripHeader removes the generated-file header when it is the first line
// of content.
func stripHeader(content string) string {
	if !strings.HasPrefix(content, headerPrefix) {
		return content
	}
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		return content[i+1:]
	}
	return ""
}
