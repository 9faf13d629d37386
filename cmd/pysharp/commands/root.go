// Package commands implements the pysharp command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/pysharp/codegen"
	"github.com/teranos/pysharp/config"
	"github.com/teranos/pysharp/csharp"
	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/logger"
)

var (
	configFile string
	compat     bool
	logJSON    bool
	verbosity  int
)

// RootCmd translates a single Python file and hosts the subcommands.
var RootCmd = &cobra.Command{
	Use:   "pysharp INPUT OUTPUT",
	Short: "Translate Python source to C#",
	Long: `pysharp translates a subset of Python into a C# program.

Top-level statements become the body of Program.Main. Functions, classes,
loops, conditionals, assignments and expressions are translated; any other
construct stops the translation with an error naming it and its line.

OUTPUT "-" writes the program to stdout. The output file is only replaced
when the whole translation succeeded.

Configuration sources (in order of precedence):
  1. Command line flags
  2. Environment variables (PYSHARP_* prefix)
  3. Project config (nearest pysharp.toml, or --config FILE)
  4. User config (~/.pysharp/config.toml)
  5. Default values

Examples:
  pysharp hello.py Hello.cs          # Translate one file
  pysharp hello.py -                 # Print the program
  pysharp --compat hello.py out.cs   # Reproduce legacy output
  pysharp build src -o gen           # Translate a tree
  pysharp watch src -o gen           # Retranslate on change`,
	Args:              cobra.ExactArgs(2),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runTranslate,
}

func init() {
	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Read configuration from FILE instead of pysharp.toml")
	RootCmd.PersistentFlags().BoolVar(&compat, "compat", false, "Reproduce the legacy translation output")
	RootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON on stderr")

	RootCmd.AddCommand(BuildCmd)
	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(ConfigCmd)
	RootCmd.AddCommand(VersionCmd)
}

// setup initializes logging and loads configuration before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if err := logger.Initialize(logJSON, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	config.Reset()
	if configFile != "" {
		config.SetConfigFile(configFile)
	}
	if cmd.Flags().Changed("compat") {
		config.Set("translate.compat", compat)
	}
	return nil
}

// loadConfig loads the configuration and reports where it came from.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	for _, file := range config.FilesUsed() {
		printStatus(logger.OutputConfig, "Using config %s", file)
	}
	printStatus(logger.OutputOptions, "Verbosity %s: %s", logger.LevelName(verbosity), logger.VerbosityDescription(verbosity))
	printStatus(logger.OutputOptions, "Translation options: %+v", cfg.Translate.Options())
	return cfg, nil
}

// newTranslator builds the C# translator described by cfg.
func newTranslator(cmd *cobra.Command, cfg *config.Config) *codegen.Translator {
	t := codegen.NewTranslator(csharp.NewGenerator(cfg.Translate.Options()), cfg.Output.Header)
	t.SetStdout(cmd.OutOrStdout())
	return t
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, dst := args[0], args[1]
	if err := newTranslator(cmd, cfg).TranslateFile(cmd.Context(), src, dst); err != nil {
		return err
	}
	if dst != codegen.Stdout {
		printStatus(logger.OutputProgress, "Translated %s -> %s", src, dst)
	}
	return nil
}
