// Package config loads pysharp settings with viper.
//
// Precedence, lowest to highest: built-in defaults, ~/.pysharp/config.toml,
// the nearest pysharp.toml found walking up from the working directory (or
// the file given with --config), PYSHARP_* environment variables, and
// values set from command-line flags.
package config

import "github.com/teranos/pysharp/csharp"

// Config is the complete pysharp configuration
type Config struct {
	// Requires is a semver constraint on the pysharp binary, e.g. ">= 1.2"
	Requires string `mapstructure:"requires" toml:"requires,omitempty" yaml:"requires,omitempty" json:"requires,omitempty"`

	Translate TranslateConfig `mapstructure:"translate" toml:"translate" yaml:"translate" json:"translate"`
	Output    OutputConfig    `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Build     BuildConfig     `mapstructure:"build" toml:"build" yaml:"build" json:"build"`
	Watch     WatchConfig     `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
}

// TranslateConfig selects how Python constructs without an exact C#
// counterpart are rendered.
//
// Compat picks the preset (legacy output when true, valid C# otherwise).
// Each remaining field overrides one option of the preset; nil keeps it.
type TranslateConfig struct {
	Compat         bool  `mapstructure:"compat" toml:"compat" yaml:"compat" json:"compat"`
	UnarySymbols   *bool `mapstructure:"unary_symbols" toml:"unary_symbols,omitempty" yaml:"unary_symbols,omitempty" json:"unary_symbols,omitempty"`
	EscapeStrings  *bool `mapstructure:"escape_strings" toml:"escape_strings,omitempty" yaml:"escape_strings,omitempty" json:"escape_strings,omitempty"`
	OmitEmptyBases *bool `mapstructure:"omit_empty_bases" toml:"omit_empty_bases,omitempty" yaml:"omit_empty_bases,omitempty" json:"omit_empty_bases,omitempty"`
	AllTargets     *bool `mapstructure:"all_targets" toml:"all_targets,omitempty" yaml:"all_targets,omitempty" json:"all_targets,omitempty"`
	ForeachLoops   *bool `mapstructure:"foreach_loops" toml:"foreach_loops,omitempty" yaml:"foreach_loops,omitempty" json:"foreach_loops,omitempty"`
	ExpandChains   *bool `mapstructure:"expand_chains" toml:"expand_chains,omitempty" yaml:"expand_chains,omitempty" json:"expand_chains,omitempty"`
	MathOperators  *bool `mapstructure:"math_operators" toml:"math_operators,omitempty" yaml:"math_operators,omitempty" json:"math_operators,omitempty"`
	Parenthesize   *bool `mapstructure:"parenthesize" toml:"parenthesize,omitempty" yaml:"parenthesize,omitempty" json:"parenthesize,omitempty"`
}

// OutputConfig controls generated files
type OutputConfig struct {
	// Header prepends a "Code generated ... DO NOT EDIT." line
	Header bool `mapstructure:"header" toml:"header" yaml:"header" json:"header"`
	// Extension of generated files, without the dot
	Extension string `mapstructure:"extension" toml:"extension" yaml:"extension" json:"extension"`
}

// BuildConfig controls batch translation
type BuildConfig struct {
	// Workers is the number of files translated concurrently (0 = one per CPU)
	Workers int `mapstructure:"workers" toml:"workers" yaml:"workers" json:"workers"`
}

// WatchConfig controls watch mode
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
	// Exec runs after every successful retranslation, split like a shell would
	Exec string `mapstructure:"exec" toml:"exec,omitempty" yaml:"exec,omitempty" json:"exec,omitempty"`
}

// Options resolves the translation options: the preset picked by Compat,
// then every explicit override.
func (t TranslateConfig) Options() csharp.Options {
	opts := csharp.DefaultOptions()
	if t.Compat {
		opts = csharp.CompatOptions()
	}

	override := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	override(&opts.UnarySymbols, t.UnarySymbols)
	override(&opts.EscapeStrings, t.EscapeStrings)
	override(&opts.OmitEmptyBases, t.OmitEmptyBases)
	override(&opts.AllTargets, t.AllTargets)
	override(&opts.ForeachLoops, t.ForeachLoops)
	override(&opts.ExpandChains, t.ExpandChains)
	override(&opts.MathOperators, t.MathOperators)
	override(&opts.Parenthesize, t.Parenthesize)
	return opts
}
