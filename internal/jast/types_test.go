package jast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRefIsPrimitive(t *testing.T) {
	assert.True(t, TypeRef{Name: "int"}.IsPrimitive())
	assert.True(t, TypeRef{Name: "boolean"}.IsPrimitive())
	assert.False(t, TypeRef{Name: "Integer"}.IsPrimitive())
	assert.False(t, TypeRef{Name: "String"}.IsPrimitive())
}

func TestAddImportKeepsSortedOrder(t *testing.T) {
	unit := &CompilationUnit{}
	unit.AddImport("java.util.Objects")
	unit.AddImport("java.io.Serializable")
	unit.AddImport("java.util.List")
	unit.AddImport("java.util.Objects") // duplicate

	assert.Equal(t, []string{
		"java.io.Serializable",
		"java.util.List",
		"java.util.Objects",
	}, unit.Imports)
}

func TestCloneIsDeep(t *testing.T) {
	ctor := &Constructor{Name: "Vehicle", Body: []string{"this.model = model;"}}
	decl := &Declaration{
		Kind:       KindRecord,
		Name:       "Vehicle",
		Components: []Component{{Name: "model", Type: TypeRef{Name: "String"}}},
		Members:    []Member{ctor},
	}

	clone := decl.Clone()
	require.Len(t, clone.Members, 1)
	cloned := clone.Members[0].(*Constructor)
	assert.NotSame(t, ctor, cloned)

	cloned.Body[0] = "mutated"
	clone.Components[0].Name = "mutated"
	assert.Equal(t, "this.model = model;", ctor.Body[0])
	assert.Equal(t, "model", decl.Components[0].Name)
}
