package config

import "github.com/spf13/viper"

const (
	// ProjectFileName is searched for from the working directory upwards
	ProjectFileName = "pysharp.toml"
	// EnvPrefix prefixes every environment override, e.g. PYSHARP_TRANSLATE_COMPAT
	EnvPrefix = "PYSHARP"

	DefaultExtension  = "cs"
	DefaultDebounceMS = 200

	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// optionKeys are the per-option overrides; they have no default so an
// unset key leaves the preset untouched.
var optionKeys = []string{
	"translate.unary_symbols",
	"translate.escape_strings",
	"translate.omit_empty_bases",
	"translate.all_targets",
	"translate.foreach_loops",
	"translate.expand_chains",
	"translate.math_operators",
	"translate.parenthesize",
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("requires", "")

	v.SetDefault("translate.compat", false)

	v.SetDefault("output.header", false)
	v.SetDefault("output.extension", DefaultExtension)

	v.SetDefault("build.workers", 0) // one per CPU

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
	v.SetDefault("watch.exec", "")
}

// BindEnvVars binds keys without defaults so PYSHARP_* variables reach Unmarshal.
func BindEnvVars(v *viper.Viper) {
	for _, key := range optionKeys {
		_ = v.BindEnv(key)
	}
}
