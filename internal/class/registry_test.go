package class

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellumlabs/vellum/internal/morph"
)

func makeTestClasses() []Class {
	return []Class{
		{ID: "C02", Role: RoleAuxiliary, Members: []string{"cd"}},
		{ID: "C01", Role: RoleCoreControl, Members: []string{"ab", "abd"}, Hazardous: true},
	}
}

func TestNewRegistry_FreezesSortedTable(t *testing.T) {
	reg, err := NewRegistry(makeTestClasses())
	require.NoError(t, err)

	classes := reg.Classes()
	require.Len(t, classes, 2)
	assert.Equal(t, "C01", classes[0].ID, "classes sorted by id")
	assert.Equal(t, []string{"ab", "abd"}, classes[0].Members)

	c, ok := reg.Class("C01")
	require.True(t, ok)
	assert.True(t, c.Hazardous)
}

func TestNewRegistry_RejectsInvalidTables(t *testing.T) {
	testCases := []struct {
		name    string
		classes []Class
	}{
		{"empty class", []Class{{ID: "C01", Role: RoleAuxiliary}}},
		{"unknown role", []Class{{ID: "C01", Role: "SORCERY", Members: []string{"x"}}}},
		{"reserved id", []Class{{ID: UnknownClassID, Role: RoleAuxiliary, Members: []string{"x"}}}},
		{"duplicate id", []Class{
			{ID: "C01", Role: RoleAuxiliary, Members: []string{"x"}},
			{ID: "C01", Role: RoleAuxiliary, Members: []string{"y"}},
		}},
		{"token in two classes", []Class{
			{ID: "C01", Role: RoleAuxiliary, Members: []string{"x"}},
			{ID: "C02", Role: RoleAuxiliary, Members: []string{"x"}},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry(tc.classes)
			assert.Error(t, err)
		})
	}
}

func TestAssign_KnownAndUnknown(t *testing.T) {
	reg, err := NewRegistry(makeTestClasses())
	require.NoError(t, err)

	known := reg.AssignText("ab")
	assert.Equal(t, "C01", known.ClassID)
	assert.Equal(t, RoleCoreControl, known.Role)
	assert.False(t, known.Unknown)

	unknown := reg.AssignText("zzz")
	assert.Equal(t, UnknownClassID, unknown.ClassID)
	assert.True(t, unknown.Unknown, "unmapped tokens are tagged, never dropped")
}

func TestAssign_UnresolvedDecompositionIsUnknown(t *testing.T) {
	reg, err := NewRegistry(makeTestClasses())
	require.NoError(t, err)

	rules := morph.NewRules([]string{"a"}, []string{"d"})
	d, err := rules.Decompose("a*d")
	require.NoError(t, err)

	a := reg.Assign(d)
	assert.True(t, a.Unknown)
}

func TestAssign_ResolvedDecomposition(t *testing.T) {
	reg, err := NewRegistry(makeTestClasses())
	require.NoError(t, err)

	rules := morph.NewRules([]string{"a"}, []string{"d"})
	d, err := rules.Decompose("abd")
	require.NoError(t, err)

	a := reg.Assign(d)
	assert.Equal(t, "C01", a.ClassID)
}
