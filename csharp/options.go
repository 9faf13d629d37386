package csharp

// Options selects how known fidelity gaps between Python and C# are rendered.
// Each field is one gap; a false value reproduces the legacy rendering.
type Options struct {
	// UnarySymbols renders unary operators as C# symbols (-x, !x, ~x)
	// instead of their tag names ("USub x").
	UnarySymbols bool

	// EscapeStrings escapes quotes, backslashes and control characters in
	// string literals instead of copying the value between quotes verbatim.
	EscapeStrings bool

	// OmitEmptyBases drops the " : " base-list separator for classes
	// without bases.
	OmitEmptyBases bool

	// AllTargets honors every target of a chained assignment (a = b = 1)
	// instead of only the first, and assigns to non-identifier targets
	// without a declaration type.
	AllTargets bool

	// ForeachLoops lowers "for x in xs" to "foreach (var x in xs)" instead
	// of the placeholder "for (x = xs)".
	ForeachLoops bool

	// ExpandChains renders a < b < c as "a < b && b < c" instead of a flat
	// token sequence.
	ExpandChains bool

	// MathOperators lowers ** to Math.Pow and // to Math.Floor instead of
	// emitting the Python symbols verbatim.
	MathOperators bool

	// Parenthesize wraps nested operands whose C# precedence is lower than
	// their context requires.
	Parenthesize bool
}

// DefaultOptions resolves every gap toward valid C#.
func DefaultOptions() Options {
	return Options{
		UnarySymbols:   true,
		EscapeStrings:  true,
		OmitEmptyBases: true,
		AllTargets:     true,
		ForeachLoops:   true,
		ExpandChains:   true,
		MathOperators:  true,
		Parenthesize:   true,
	}
}

// CompatOptions turns every fix off, so each legacy rendering quirk comes
// back. Statement layout and whitespace follow this generator, not the
// legacy tool.
func CompatOptions() Options {
	return Options{}
}
