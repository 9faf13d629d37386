package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/pysharp/config"
)

// ConfigCmd inspects and initializes configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pysharp configuration",
	Long: `Display and initialize pysharp configuration.

Examples:
  pysharp config show                 # Show the effective configuration
  pysharp config show --format json   # Same, as JSON
  pysharp config init                 # Write pysharp.toml with the defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  "Display the configuration after merging every source",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write a configuration file with the defaults",
	Long: `Write the default configuration to PATH (default: ./pysharp.toml).

An existing file is only replaced with --force; the previous version is
kept as PATH.back1 (older copies rotate to .back2 and .back3).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var (
	configFormat string
	configForce  bool
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", config.FormatTOML, "Output format: toml, yaml, json")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := config.Render(cfg, configFormat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if configFormat != config.FormatJSON {
		fmt.Fprintln(out, "# pysharp configuration")
	}
	_, err = out.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectFileName
	if len(args) == 1 {
		path = args[0]
	}

	if err := config.WriteDefault(path, configForce); err != nil {
		return err
	}
	printSuccess("Wrote %s", path)
	return nil
}
