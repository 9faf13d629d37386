package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Results, errors with hints, final status
//	1 (-v)      - + Per-file progress, config file in use
//	2 (-vv)     - + Timing, resolved translation options
//	3 (-vvv)    - + Per-statement translation trace

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Translated output, check differences
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress // Per-file progress ("translated a.py -> a.cs")
	OutputConfig   // Config file in use

	// Level 2 (-vv) - Detailed
	OutputTiming  // Build and translation timing
	OutputOptions // Resolved translation options

	// Level 3 (-vvv) - Trace
	OutputStatements // Per-statement translation
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress: VerbosityInfo,
	OutputConfig:   VerbosityInfo,

	OutputTiming:  VerbosityDebug,
	OutputOptions: VerbosityDebug,

	OutputStatements: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "results and errors only"
	case VerbosityInfo:
		return "results, errors, progress, and config file"
	case VerbosityDebug:
		return "above + timing and resolved options"
	case VerbosityTrace:
		return "above + per-statement translation"
	default:
		if verbosity > VerbosityTrace {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}
