// Package symtab tracks declared names across nested lexical scopes.
//
// DESIGN PHILOSOPHY:
// The table records three things per name: what kind of thing it is
// (variable, parameter, function), an opaque type tag, and which scope owns
// it. There is no type inference; the tag is whatever the front end chose
// to record, "unknown" by default.
//
// Scopes form a tree (global at the root, one child per function), managed
// through a Stack that the parser pushes and pops as it walks definitions.
package symtab

import "fmt"

// SymbolKind classifies a table entry.
type SymbolKind int

const (
	// KindVariable is a name first bound by assignment.
	KindVariable SymbolKind = iota

	// KindParameter is a function parameter.
	KindParameter

	// KindFunction is a name bound by a def statement.
	KindFunction
)

func (k SymbolKind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindParameter:
		return "parameter"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// SymbolEntry is one declared name.
type SymbolEntry struct {
	// Name is the identifier as written.
	Name string

	// Kind classifies the entry.
	Kind SymbolKind

	// Type is an opaque type tag such as "float" or "function". No pass
	// validates it; "unknown" means nothing was recorded.
	Type string

	// ScopeName names the owning scope, e.g. "global" or "func foo".
	ScopeName string

	// Offset is a slot position reserved for later code generation stages.
	// -1 until something assigns it.
	Offset int
}

// String renders the entry for scope listings:
// "parameter a: unknown (scope func f)".
func (e *SymbolEntry) String() string {
	return fmt.Sprintf("%s %s: %s (scope %s)", e.Kind, e.Name, e.Type, e.ScopeName)
}
