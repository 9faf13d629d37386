package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/logger"
)

// statusOut receives status lines; stdout is reserved for translated code
// and command results.
var statusOut io.Writer = os.Stderr

// printStatus prints an informational line when the verbosity allows category.
func printStatus(category logger.OutputCategory, format string, args ...interface{}) {
	if !logger.ShouldOutput(verbosity, category) {
		return
	}
	fmt.Fprint(statusOut, pterm.Info.Sprintfln(format, args...))
}

func printSuccess(format string, args ...interface{}) {
	fmt.Fprint(statusOut, pterm.Success.Sprintfln(format, args...))
}

func printWarning(format string, args ...interface{}) {
	fmt.Fprint(statusOut, pterm.Warning.Sprintfln(format, args...))
}

// FormatError renders a command failure for the terminal: the message, the
// construct that stopped a translation, and any hints.
func FormatError(err error) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %v\n", err)
	if errors.IsUnsupported(err) {
		fmt.Fprintf(&sb, "Unsupported construct: %s\n", errors.UnsupportedKind(err))
	}
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(&sb, "Hint: %s\n", hint)
	}
	return sb.String()
}
