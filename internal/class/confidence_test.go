package class

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaim_HappyPath(t *testing.T) {
	c := NewClaim("claim-1", "strict mode discriminates records")
	assert.Equal(t, ConfidenceProposed, c.Confidence)

	require.NoError(t, c.Transition(ConfidenceValidated))
	require.NoError(t, c.Transition(ConfidenceLocked))
	assert.True(t, c.Terminal())
	assert.Equal(t, []Confidence{ConfidenceProposed, ConfidenceValidated, ConfidenceLocked}, c.Log)
}

func TestClaim_Refutation(t *testing.T) {
	c := NewClaim("claim-2", "union mode is informative")
	require.NoError(t, c.Transition(ConfidenceRefuted))
	assert.True(t, c.Terminal())
}

func TestClaim_InvalidTransitions(t *testing.T) {
	testCases := []struct {
		name string
		walk []Confidence
		to   Confidence
	}{
		{"skip validation", nil, ConfidenceLocked},
		{"leave locked", []Confidence{ConfidenceValidated, ConfidenceLocked}, ConfidenceRefuted},
		{"revive refuted", []Confidence{ConfidenceRefuted}, ConfidenceValidated},
		{"self transition", nil, ConfidenceProposed},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClaim("claim", "x")
			for _, step := range tc.walk {
				require.NoError(t, c.Transition(step))
			}
			err := c.Transition(tc.to)
			require.Error(t, err)
			assert.True(t, IsInvalidTransition(err))
		})
	}
}
