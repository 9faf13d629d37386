package codegen

import (
	"context"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/logger"
)

// DefaultDebounce is used when a Watcher is created with a zero period.
const DefaultDebounce = 200 * time.Millisecond

// WatchEvent reports one retranslation.
type WatchEvent struct {
	Job Job
	Err error
}

// Watcher retranslates Python sources when they change.
//
// Rapid successive writes (editors often write a file several times when
// saving) are coalesced: a batch is translated once no event has arrived
// for the debounce period.
type Watcher struct {
	translator     *Translator
	src, dst, ext  string
	srcIsDir       bool
	watcher        *fsnotify.Watcher
	debouncePeriod time.Duration
	command        []string
	stdout, stderr io.Writer
	events         chan WatchEvent
	logger         *zap.SugaredLogger
}

// NewWatcher watches src (a file or a directory tree) and writes
// translations the way Plan(src, dst, ext) would. execCmd, when not empty,
// runs after every batch that translated without errors; it is split with
// shell quoting rules but not run through a shell.
func NewWatcher(t *Translator, src, dst, ext string, debounce time.Duration, execCmd string) (*Watcher, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, errors.Wrapf(err, "watch source %s", src)
	}
	if dst == Stdout {
		return nil, errors.New("watch mode cannot write to stdout")
	}

	var command []string
	if execCmd != "" {
		command, err = shellquote.Split(execCmd)
		if err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "invalid --exec command %q", execCmd),
				"check the quoting of the command")
		}
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		translator:     t,
		src:            filepath.Clean(src),
		dst:            dst,
		ext:            ext,
		srcIsDir:       info.IsDir(),
		watcher:        fw,
		debouncePeriod: debounce,
		command:        command,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		events:         make(chan WatchEvent, 64),
		logger:         logger.ComponentLogger("codegen.watch"),
	}

	// Editors replace files by rename, so a single file is watched through
	// its directory.
	root := w.src
	if !w.srcIsDir {
		root = filepath.Dir(w.src)
	}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Events delivers one WatchEvent per retranslated file. Events are dropped
// when nobody reads them.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// SetOutput redirects the output of the --exec command.
func (w *Watcher) SetOutput(stdout, stderr io.Writer) {
	w.stdout = stdout
	w.stderr = stderr
}

// Run processes file system events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	pending := make(map[string]Job)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create && w.srcIsDir {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDir(info.Name()) {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warnw("Failed to watch new directory", logger.FieldFile, event.Name, logger.FieldError, err)
					}
					continue
				}
			}
			job, ok := w.jobFor(event)
			if !ok {
				continue
			}
			w.logger.Debugw("Source changed", logger.FieldFile, event.Name, "op", event.Op.String())
			pending[job.Source] = job
			if timer == nil {
				timer = time.NewTimer(w.debouncePeriod)
			} else {
				timer.Reset(w.debouncePeriod)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)

		case <-fire:
			fire = nil
			w.flush(ctx, pending)
			pending = make(map[string]Job)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// flush translates a debounced batch and runs the exec command.
func (w *Watcher) flush(ctx context.Context, batch map[string]Job) {
	ctx = logger.WithTraceID(ctx, logger.NewTraceID())
	ctx = logger.WithComponent(ctx, "codegen.watch")
	log := logger.LoggerFromContext(ctx)
	log.Debugw("Retranslating batch",
		logger.FieldOperation, "watch",
		logger.FieldCount, len(batch))
	failed := false

	for _, job := range batch {
		err := w.translator.TranslateFile(ctx, job.Source, job.Output)
		if err != nil {
			failed = true
			log.Warnw("Retranslation failed", logger.FieldFile, job.Source, logger.FieldError, err)
		}
		select {
		case w.events <- WatchEvent{Job: job, Err: err}:
		default:
		}
	}

	if failed || len(w.command) == 0 {
		return
	}

	cmd := exec.CommandContext(ctx, w.command[0], w.command[1:]...)
	cmd.Stdout = w.stdout
	cmd.Stderr = w.stderr
	if err := cmd.Run(); err != nil {
		log.Warnw("Exec command failed",
			"command", shellquote.Join(w.command...),
			logger.FieldError, err)
	}
}

// jobFor maps a write or create event to a job, or reports false when the
// event does not concern a watched source.
func (w *Watcher) jobFor(event fsnotify.Event) (Job, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return Job{}, false
	}
	path := filepath.Clean(event.Name)

	if !w.srcIsDir {
		if path != w.src {
			return Job{}, false
		}
		return Job{Source: path, Output: fileOutput(path, w.dst, w.ext)}, true
	}

	if filepath.Ext(path) != SourceExtension {
		return Job{}, false
	}
	return Job{Source: path, Output: treeOutput(w.src, w.dst, path, w.ext)}, true
}

// addTree watches root and every directory below it, except skipped ones.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		return nil
	})
}
