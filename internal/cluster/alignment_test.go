package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign_IdenticalPartitions(t *testing.T) {
	u := []int{0, 0, 1, 1, 2, 2}

	a, err := Align(u, u)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, a.AdjustedRand, 1e-9)
	assert.InDelta(t, 1.0, a.AdjustedMI, 1e-9)
}

func TestAlign_LabelRenamingDoesNotMatter(t *testing.T) {
	// Same partition, permuted label values.
	u := []int{0, 0, 1, 1, 2, 2}
	v := []int{7, 7, 3, 3, 5, 5}

	a, err := Align(u, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, a.AdjustedRand, 1e-9)
	assert.InDelta(t, 1.0, a.AdjustedMI, 1e-9)
}

func TestAlign_IndependentPartitionsNearZero(t *testing.T) {
	// Fully crossed design: knowing u tells nothing about v. Both
	// chance-adjusted scores land at or below zero.
	u := []int{0, 0, 0, 0, 1, 1, 1, 1}
	v := []int{0, 1, 0, 1, 0, 1, 0, 1}

	a, err := Align(u, v)
	require.NoError(t, err)
	assert.Less(t, a.AdjustedRand, 0.05)
	assert.Less(t, a.AdjustedMI, 0.05)
}

func TestAlign_Symmetric(t *testing.T) {
	u := []int{0, 0, 1, 1, 2, 2, 0, 1}
	v := []int{0, 1, 1, 1, 2, 0, 0, 2}

	ab, err := Align(u, v)
	require.NoError(t, err)
	ba, err := Align(v, u)
	require.NoError(t, err)
	assert.InDelta(t, ab.AdjustedRand, ba.AdjustedRand, 1e-9)
	assert.InDelta(t, ab.AdjustedMI, ba.AdjustedMI, 1e-9)
}

func TestAlign_PartialAgreementBetweenExtremes(t *testing.T) {
	u := []int{0, 0, 0, 1, 1, 1}
	v := []int{0, 0, 1, 1, 1, 1} // one entity moved across the boundary

	a, err := Align(u, v)
	require.NoError(t, err)
	assert.Greater(t, a.AdjustedRand, 0.0)
	assert.Less(t, a.AdjustedRand, 1.0)
	assert.Greater(t, a.AdjustedMI, 0.0)
	assert.Less(t, a.AdjustedMI, 1.0)
}

func TestAlign_InputErrors(t *testing.T) {
	_, err := Align([]int{0, 1}, []int{0})
	assert.Error(t, err)

	_, err = Align(nil, nil)
	assert.Error(t, err)
}
