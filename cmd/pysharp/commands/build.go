package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/pysharp/codegen"
	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/logger"
)

var (
	buildOutput  string
	buildWorkers int
	watchOutput  string
	watchExec    string
)

// BuildCmd translates a file or a directory tree
var BuildCmd = &cobra.Command{
	Use:   "build SRC",
	Short: "Translate a file or a tree of Python files",
	Long: `Translate every .py file under SRC concurrently.

Outputs mirror the source tree under the -o directory, or are written next
to each source when -o is omitted. Hidden directories and __pycache__ are
skipped. The first file that fails to translate stops the build.

Examples:
  pysharp build src -o gen           # src/a/b.py -> gen/a/b.cs
  pysharp build src                  # src/a/b.py -> src/a/b.cs
  pysharp build src -o gen --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

// CheckCmd verifies that generated files are up to date
var CheckCmd = &cobra.Command{
	Use:   "check SRC [OUT]",
	Short: "Check if translated files are up to date",
	Long: `Translate SRC in memory and compare the result with the files on disk,
ignoring generated-file header lines. OUT is resolved like build's -o.

Exit codes:
  0 - Outputs are up to date
  1 - Outputs are stale or missing, or the check failed

Examples:
  pysharp check src gen
  pysharp check hello.py Hello.cs`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCheck,
}

// WatchCmd retranslates sources when they change
var WatchCmd = &cobra.Command{
	Use:   "watch SRC",
	Short: "Retranslate Python files when they change",
	Long: `Watch SRC (a file or a directory tree) and retranslate changed files.

Changes are debounced (watch.debounce_ms). After every batch that translated
without errors, --exec runs the given command; it is split like a shell
would split it but is not run by a shell.

Examples:
  pysharp watch src -o gen
  pysharp watch hello.py -o Hello.cs --exec "dotnet run"`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	BuildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output file or directory (default: next to each source)")
	BuildCmd.Flags().IntVar(&buildWorkers, "workers", 0, "Files translated concurrently (default: build.workers, 0 = one per CPU)")

	WatchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output file or directory (default: next to each source)")
	WatchCmd.Flags().StringVar(&watchExec, "exec", "", "Command to run after each successful retranslation (default: watch.exec)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jobs, err := codegen.Plan(args[0], buildOutput, cfg.Output.Extension)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		printWarning("No .py files found in %s", args[0])
		return nil
	}

	workers := cfg.Build.Workers
	if cmd.Flags().Changed("workers") {
		workers = buildWorkers
	}

	result, err := newTranslator(cmd, cfg).Build(cmd.Context(), jobs, workers)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		printStatus(logger.OutputProgress, "Translated %s -> %s", job.Source, job.Output)
	}
	printStatus(logger.OutputTiming, "Build took %s with %d workers", result.Duration.Round(time.Millisecond), result.Workers)
	printSuccess("Translated %d files", result.Translated)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dst := ""
	if len(args) == 2 {
		dst = args[1]
	}
	jobs, err := codegen.Plan(args[0], dst, cfg.Output.Extension)
	if err != nil {
		return err
	}

	result, err := newTranslator(cmd, cfg).Check(cmd.Context(), jobs)
	if err != nil {
		return errors.Wrap(err, "check failed")
	}

	if result.UpToDate {
		printSuccess("%d files are up to date", len(jobs))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Stale files:")
	for _, file := range result.Differences {
		fmt.Fprintf(out, "  - %s\n", file)
	}
	return errors.WithHint(
		errors.Newf("%d of %d files are out of date", len(result.Differences), len(jobs)),
		"run 'pysharp build' to update them")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	execCmd := cfg.Watch.Exec
	if cmd.Flags().Changed("exec") {
		execCmd = watchExec
	}
	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond

	w, err := codegen.NewWatcher(newTranslator(cmd, cfg), args[0], watchOutput, cfg.Output.Extension, debounce, execCmd)
	if err != nil {
		return err
	}
	defer w.Close()
	w.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	ctx := cmd.Context()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-w.Events():
				if ev.Err != nil {
					printWarning("%s: %v", ev.Job.Source, ev.Err)
					continue
				}
				printSuccess("Translated %s -> %s", ev.Job.Source, ev.Job.Output)
			}
		}
	}()

	printStatus(logger.OutputUserStatus, "Watching %s (Ctrl+C to stop)", args[0])
	return w.Run(ctx)
}
