package typeindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derecord/derecord/internal/jast"
)

func iface(name string, extends []string, methods ...string) *jast.Declaration {
	decl := &jast.Declaration{
		Kind:    jast.KindInterface,
		Name:    name,
		Extends: extends,
	}
	for _, m := range methods {
		decl.Members = append(decl.Members, &jast.Method{
			ReturnType: jast.TypeRef{Name: "int"},
			Name:       m,
		})
	}
	return decl
}

func unitOf(decls ...*jast.Declaration) *jast.CompilationUnit {
	return &jast.CompilationUnit{Decls: decls}
}

func TestDeclaresNoArgMethodDirect(t *testing.T) {
	idx := New(unitOf(iface("Powered", nil, "power")))
	record := &jast.Declaration{Kind: jast.KindRecord, Name: "Vehicle", Implements: []string{"Powered"}}

	assert.True(t, idx.DeclaresNoArgMethod(record, "power"))
	assert.False(t, idx.DeclaresNoArgMethod(record, "model"))
}

func TestDeclaresNoArgMethodTransitive(t *testing.T) {
	idx := New(unitOf(
		iface("Engine", nil, "power"),
		iface("Powered", []string{"Engine"}),
	))
	record := &jast.Declaration{Kind: jast.KindRecord, Name: "Vehicle", Implements: []string{"Powered"}}

	assert.True(t, idx.DeclaresNoArgMethod(record, "power"))
}

func TestDeclaresNoArgMethodIgnoresArityMismatch(t *testing.T) {
	powered := iface("Powered", nil)
	powered.Members = append(powered.Members, &jast.Method{
		ReturnType: jast.TypeRef{Name: "int"},
		Name:       "power",
		Params:     []jast.Param{{Type: jast.TypeRef{Name: "int"}, Name: "scale"}},
	})
	idx := New(unitOf(powered))
	record := &jast.Declaration{Kind: jast.KindRecord, Name: "Vehicle", Implements: []string{"Powered"}}

	assert.False(t, idx.DeclaresNoArgMethod(record, "power"))
}

func TestDeclaresNoArgMethodExcludesSelf(t *testing.T) {
	// A pathological input where the declaration lists itself as a
	// capability must not count its own members.
	self := iface("Vehicle", nil, "power")
	idx := New(unitOf(self))
	record := &jast.Declaration{Kind: jast.KindRecord, Name: "Vehicle", Implements: []string{"Vehicle"}}

	assert.False(t, idx.DeclaresNoArgMethod(record, "power"))
}

func TestDeclaresNoArgMethodCycleSafe(t *testing.T) {
	idx := New(unitOf(
		iface("A", []string{"B"}),
		iface("B", []string{"A"}, "power"),
	))
	record := &jast.Declaration{Kind: jast.KindRecord, Name: "Vehicle", Implements: []string{"A"}}

	assert.True(t, idx.DeclaresNoArgMethod(record, "power"))
	assert.False(t, idx.DeclaresNoArgMethod(record, "model"))
}

func TestDeclaresNoArgMethodCycleKeepsLaterQueriesCorrect(t *testing.T) {
	// Machine extends [Engine, Powered] and Engine extends Machine. The
	// first query enters through Machine, so Engine's exploration is cut by
	// the visited set before Powered is reached; a negative cached for
	// Engine at that point would wrongly stick for the second query.
	idx := New(unitOf(
		iface("Machine", []string{"Engine", "Powered"}),
		iface("Engine", []string{"Machine"}),
		iface("Powered", nil, "power"),
	))
	viaMachine := &jast.Declaration{Kind: jast.KindRecord, Name: "Car", Implements: []string{"Machine"}}
	viaEngine := &jast.Declaration{Kind: jast.KindRecord, Name: "Truck", Implements: []string{"Engine"}}

	assert.True(t, idx.DeclaresNoArgMethod(viaMachine, "power"))
	assert.True(t, idx.DeclaresNoArgMethod(viaEngine, "power"))
}

func TestDeclaresNoArgMethodUnknownInterface(t *testing.T) {
	idx := New(unitOf())
	record := &jast.Declaration{Kind: jast.KindRecord, Name: "Vehicle", Implements: []string{"Mystery"}}

	assert.False(t, idx.DeclaresNoArgMethod(record, "power"))
}

func TestLookup(t *testing.T) {
	powered := iface("Powered", nil, "power")
	idx := New(unitOf(powered))

	got, ok := idx.Lookup("Powered")
	require.True(t, ok)
	assert.Same(t, powered, got)

	_, ok = idx.Lookup("Missing")
	assert.False(t, ok)
}
