package csharp

// builtins renames well-known Python callables to their C# equivalents.
var builtins = map[string]string{
	"print": "Console.WriteLine",
	"input": "Console.ReadLine",
}

// ResolveBuiltin maps a callee name to its C# equivalent, or returns it unchanged.
// Arity and argument types are not checked.
func ResolveBuiltin(name string) string {
	if resolved, ok := builtins[name]; ok {
		return resolved
	}
	return name
}
