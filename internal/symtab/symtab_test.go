package symtab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStack_PushPop(t *testing.T) {
	st := NewStack()
	require.Equal(t, 0, st.Depth())
	require.Nil(t, st.Current())

	global := st.Push("global")
	require.Equal(t, 0, global)
	require.Equal(t, 1, st.Depth())
	require.Equal(t, "global", st.Current().Name)
	require.Equal(t, -1, st.Current().Parent)

	child := st.Push("func f")
	require.Equal(t, 1, child)
	require.Equal(t, global, st.Current().Parent)

	scope, err := st.Pop()
	require.NoError(t, err)
	require.Equal(t, "func f", scope.Name)
	require.Equal(t, "global", st.Current().Name)
}

func TestStack_PopEmpty(t *testing.T) {
	st := NewStack()
	_, err := st.Pop()
	require.Error(t, err)
}

func TestStack_DefineAndLookup(t *testing.T) {
	st := NewStack()
	st.Push("global")

	entry, err := st.Define("x", KindVariable, "unknown")
	require.NoError(t, err)
	require.Equal(t, "x", entry.Name)
	require.Equal(t, KindVariable, entry.Kind)
	require.Equal(t, "global", entry.ScopeName)
	require.Equal(t, -1, entry.Offset)

	require.Equal(t, entry, st.Lookup("x"))
	require.Nil(t, st.Lookup("y"))
}

func TestStack_DefineWithoutScope(t *testing.T) {
	st := NewStack()
	_, err := st.Define("x", KindVariable, "unknown")
	require.Error(t, err)
}

func TestStack_RedefinitionInSameScope(t *testing.T) {
	st := NewStack()
	st.Push("func f")

	_, err := st.Define("a", KindParameter, "unknown")
	require.NoError(t, err)

	_, err = st.Define("a", KindParameter, "unknown")
	require.Error(t, err)

	var redef *RedefinedError
	require.True(t, errors.As(err, &redef))
	require.Equal(t, "a", redef.Name)
	require.Equal(t, "func f", redef.Scope)
}

func TestStack_ShadowingInNestedScope(t *testing.T) {
	st := NewStack()
	st.Push("global")
	outer, err := st.Define("x", KindVariable, "unknown")
	require.NoError(t, err)

	st.Push("func f")
	inner, err := st.Define("x", KindParameter, "unknown")
	require.NoError(t, err)

	// Lookup from the inner scope finds the shadowing entry.
	require.Equal(t, inner, st.Lookup("x"))
	require.Equal(t, inner, st.LookupLocal("x"))

	_, err = st.Pop()
	require.NoError(t, err)
	require.Equal(t, outer, st.Lookup("x"))
}

func TestStack_LookupWalksParentChain(t *testing.T) {
	st := NewStack()
	st.Push("global")
	entry, err := st.Define("g", KindFunction, "function")
	require.NoError(t, err)

	st.Push("func outer")
	st.Push("func inner")

	require.Equal(t, entry, st.Lookup("g"))
	require.Nil(t, st.LookupLocal("g"))
}

func TestStack_ArenaKeepsPoppedScopes(t *testing.T) {
	st := NewStack()
	st.Push("global")
	st.Push("func f")
	_, err := st.Define("a", KindParameter, "unknown")
	require.NoError(t, err)

	_, err = st.Pop()
	require.NoError(t, err)

	// The popped scope is still listed, entries intact.
	scopes := st.Scopes()
	require.Len(t, scopes, 2)
	require.Equal(t, "func f", scopes[1].Name)
	require.NotNil(t, scopes[1].LookupLocal("a"))
}

func TestScope_EntriesKeepDeclarationOrder(t *testing.T) {
	st := NewStack()
	st.Push("global")

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := st.Define(name, KindVariable, "unknown")
		require.NoError(t, err)
	}

	entries := st.Current().Entries()
	require.Len(t, entries, 3)
	require.Equal(t, "zeta", entries[0].Name)
	require.Equal(t, "alpha", entries[1].Name)
	require.Equal(t, "mid", entries[2].Name)
}

func TestStack_DebugString(t *testing.T) {
	st := NewStack()
	st.Push("global")
	_, err := st.Define("f", KindFunction, "function")
	require.NoError(t, err)

	st.Push("func f")
	_, err = st.Define("a", KindParameter, "unknown")
	require.NoError(t, err)
	_, err = st.Pop()
	require.NoError(t, err)

	out := st.DebugString()
	require.Contains(t, out, "scope global (1 symbols)")
	require.Contains(t, out, "  function f: function (scope global)")
	require.Contains(t, out, "  scope func f (1 symbols)")
	require.Contains(t, out, "    parameter a: unknown (scope func f)")
}

func TestSymbolKind_String(t *testing.T) {
	require.Equal(t, "variable", KindVariable.String())
	require.Equal(t, "parameter", KindParameter.String())
	require.Equal(t, "function", KindFunction.String())
}
