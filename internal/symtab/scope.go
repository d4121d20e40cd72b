package symtab

import (
	"errors"
	"fmt"
	"strings"
)

// RedefinedError reports a name declared twice in the same scope. It is a
// distinct type because the parser surfaces it differently from plain
// syntax errors: the program is well-formed, the declaration is not.
type RedefinedError struct {
	Name  string
	Scope string
}

func (e *RedefinedError) Error() string {
	return fmt.Sprintf("symbol %q redeclared in scope %q", e.Name, e.Scope)
}

// Scope is one lexical scope: a name table plus a link to its parent.
//
// The parent link is an integer handle into the owning Stack's arena, not a
// pointer. See Stack for why.
type Scope struct {
	// Name labels the scope: "global" for the root, "func <name>" for
	// function scopes.
	Name string

	// Parent is the arena handle of the enclosing scope, -1 at the root.
	Parent int

	// entries maps names to their table entries; names keeps insertion
	// order so listings are deterministic.
	entries map[string]*SymbolEntry
	names   []string
}

// LookupLocal finds a name in this scope only, nil when absent. Parent
// scopes are deliberately not consulted, which is what makes shadowing in
// nested scopes legal.
func (s *Scope) LookupLocal(name string) *SymbolEntry {
	return s.entries[name]
}

// Entries returns the scope's entries in declaration order.
func (s *Scope) Entries() []*SymbolEntry {
	out := make([]*SymbolEntry, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.entries[name])
	}
	return out
}

// Len returns the number of names declared in this scope.
func (s *Scope) Len() int {
	return len(s.entries)
}

// define inserts a new entry, failing on a duplicate in this scope.
func (s *Scope) define(name string, kind SymbolKind, typ string) (*SymbolEntry, error) {
	if _, ok := s.entries[name]; ok {
		return nil, &RedefinedError{Name: name, Scope: s.Name}
	}
	entry := &SymbolEntry{
		Name:      name,
		Kind:      kind,
		Type:      typ,
		ScopeName: s.Name,
		Offset:    -1,
	}
	s.entries[name] = entry
	s.names = append(s.names, name)
	return entry, nil
}

// Stack manages the live scope chain during parsing.
//
// DESIGN CHOICE: Scopes live in an arena ([]*Scope) owned by the Stack, and
// both the parent links and the stack itself are integer handles into that
// arena rather than pointers. Two things fall out of this:
//  1. Popped scopes are not lost. The arena keeps every scope ever created,
//     so after parsing the whole scope tree can still be listed, function
//     scopes included.
//  2. Ownership is unambiguous: nothing outside the Stack can splice a
//     scope into a second tree or keep it alive past its table.
type Stack struct {
	scopes []*Scope // arena; a scope's handle is its index, stable for life
	stack  []int    // handles of the open scopes, innermost last
}

// NewStack creates an empty scope stack. No scope is open until Push.
func NewStack() *Stack {
	return &Stack{}
}

// Push opens a new scope named name as a child of the current scope (or as
// a root when the stack is empty) and returns its arena handle.
func (st *Stack) Push(name string) int {
	parent := -1
	if len(st.stack) > 0 {
		parent = st.stack[len(st.stack)-1]
	}
	scope := &Scope{
		Name:    name,
		Parent:  parent,
		entries: make(map[string]*SymbolEntry),
	}
	handle := len(st.scopes)
	st.scopes = append(st.scopes, scope)
	st.stack = append(st.stack, handle)
	return handle
}

// Pop closes the current scope and returns it. The scope stays in the
// arena; only the stack shrinks.
func (st *Stack) Pop() (*Scope, error) {
	if len(st.stack) == 0 {
		return nil, errors.New("pop on empty scope stack")
	}
	handle := st.stack[len(st.stack)-1]
	st.stack = st.stack[:len(st.stack)-1]
	return st.scopes[handle], nil
}

// Current returns the innermost open scope, nil when none is open.
func (st *Stack) Current() *Scope {
	if len(st.stack) == 0 {
		return nil
	}
	return st.scopes[st.stack[len(st.stack)-1]]
}

// Depth returns the number of open scopes.
func (st *Stack) Depth() int {
	return len(st.stack)
}

// Define declares a name in the current scope. Redeclaring a name already
// present in the SAME scope returns a *RedefinedError; the same name in an
// enclosing scope is fine (shadowing).
func (st *Stack) Define(name string, kind SymbolKind, typ string) (*SymbolEntry, error) {
	current := st.Current()
	if current == nil {
		return nil, errors.New("define with no open scope")
	}
	return current.define(name, kind, typ)
}

// Lookup resolves a name starting at the current scope and walking parent
// handles outward. Returns nil when the name is nowhere in the chain.
func (st *Stack) Lookup(name string) *SymbolEntry {
	if len(st.stack) == 0 {
		return nil
	}
	for handle := st.stack[len(st.stack)-1]; handle >= 0; {
		scope := st.scopes[handle]
		if entry := scope.LookupLocal(name); entry != nil {
			return entry
		}
		handle = scope.Parent
	}
	return nil
}

// LookupLocal resolves a name in the current scope only.
func (st *Stack) LookupLocal(name string) *SymbolEntry {
	current := st.Current()
	if current == nil {
		return nil
	}
	return current.LookupLocal(name)
}

// Scopes returns the arena: every scope ever pushed, in creation order,
// popped ones included. Callers must treat the slice as read-only.
func (st *Stack) Scopes() []*Scope {
	return st.scopes
}

// DebugString renders every scope in the arena with its entries, indented
// by nesting depth:
//
//	scope global (2 symbols)
//	  variable x: unknown (scope global)
//	  function f: function (scope global)
//	  scope func f (1 symbols)
//	    parameter a: unknown (scope func f)
func (st *Stack) DebugString() string {
	var sb strings.Builder
	for handle, scope := range st.scopes {
		depth := st.depthOf(handle)
		pad := strings.Repeat("  ", depth)
		fmt.Fprintf(&sb, "%sscope %s (%d symbols)\n", pad, scope.Name, scope.Len())
		for _, entry := range scope.Entries() {
			sb.WriteString(pad + "  " + entry.String() + "\n")
		}
	}
	return sb.String()
}

func (st *Stack) depthOf(handle int) int {
	depth := 0
	for parent := st.scopes[handle].Parent; parent >= 0; parent = st.scopes[parent].Parent {
		depth++
	}
	return depth
}
