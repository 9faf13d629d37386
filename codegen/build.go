package codegen

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/logger"
)

// BuildResult summarizes a completed build.
type BuildResult struct {
	Translated int
	Workers    int
	Duration   time.Duration
}

// Build translates jobs with at most workers files in flight (0 = one per
// CPU). The first failure cancels the remaining jobs and is returned; files
// already written stay in place.
func (t *Translator) Build(ctx context.Context, jobs []Job, workers int) (*BuildResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger.TraceID(ctx) == "" {
		ctx = logger.WithTraceID(ctx, logger.NewTraceID())
	}
	ctx = logger.WithComponent(ctx, "codegen.build")
	log := logger.LoggerFromContext(ctx)
	start := time.Now()

	log.Infow("Build started",
		logger.FieldOperation, "build",
		logger.FieldCount, len(jobs),
		logger.FieldWorkers, workers)

	var translated atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := t.TranslateFile(gctx, job.Source, job.Output); err != nil {
				return err
			}
			translated.Add(1)
			return nil
		})
	}

	result := &BuildResult{Workers: workers}
	err := g.Wait()
	result.Translated = int(translated.Load())
	result.Duration = time.Since(start)

	if err != nil {
		log.Warnw("Build failed",
			logger.FieldStatus, "failed",
			logger.FieldCount, result.Translated,
			logger.FieldError, err)
		return result, errors.Wrapf(err, "build stopped after %d of %d files", result.Translated, len(jobs))
	}

	log.Infow("Build finished",
		logger.FieldStatus, "ok",
		logger.FieldCount, result.Translated,
		logger.FieldDurationMS, result.Duration.Milliseconds())
	return result, nil
}
