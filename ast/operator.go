package ast

// Operator tags a binary, boolean or comparison operator.
// The tag is opaque; the translator maps it to a target symbol.
type Operator int

const (
	// Arithmetic
	Add Operator = iota + 1
	Sub
	Mult
	Div
	Mod
	Pow
	FloorDiv

	// Bitwise
	LShift
	RShift
	BitOr
	BitXor
	BitAnd

	// Comparison
	Eq
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn

	// Boolean
	And
	Or
)

var operatorNames = map[Operator]string{
	Add:      "Add",
	Sub:      "Sub",
	Mult:     "Mult",
	Div:      "Div",
	Mod:      "Mod",
	Pow:      "Pow",
	FloorDiv: "FloorDiv",
	LShift:   "LShift",
	RShift:   "RShift",
	BitOr:    "BitOr",
	BitXor:   "BitXor",
	BitAnd:   "BitAnd",
	Eq:       "Eq",
	NotEq:    "NotEq",
	Lt:       "Lt",
	LtE:      "LtE",
	Gt:       "Gt",
	GtE:      "GtE",
	Is:       "Is",
	IsNot:    "IsNot",
	In:       "In",
	NotIn:    "NotIn",
	And:      "And",
	Or:       "Or",
}

// String returns the tag name, e.g. "Add".
func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return "Operator(?)"
}

// UnaryOperator tags a unary operator.
type UnaryOperator int

const (
	Invert UnaryOperator = iota + 1
	Not
	UAdd
	USub
)

// String returns the tag name, e.g. "USub".
func (op UnaryOperator) String() string {
	switch op {
	case Invert:
		return "Invert"
	case Not:
		return "Not"
	case UAdd:
		return "UAdd"
	case USub:
		return "USub"
	}
	return "UnaryOperator(?)"
}
