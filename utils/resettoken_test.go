package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	raw, selector, verifierHash, err := GenerateResetToken()
	require.NoError(t, err)

	gotSelector, verifier, err := SplitResetToken(raw)
	require.NoError(t, err)
	assert.Equal(t, selector, gotSelector)
	assert.Len(t, selector, selectorBytes*2)
	assert.Len(t, verifier, verifierBytes*2)

	// The raw verifier must never equal what gets stored.
	assert.NotEqual(t, verifier, verifierHash)
	assert.True(t, VerifyResetVerifier(verifier, verifierHash))
}

func TestGenerateResetTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		_, selector, _, err := GenerateResetToken()
		require.NoError(t, err)
		require.False(t, seen[selector], "selector collision")
		seen[selector] = true
	}
}

func TestSplitResetTokenMalformed(t *testing.T) {
	valid, _, _, err := GenerateResetToken()
	require.NoError(t, err)
	selector, verifier, err := SplitResetToken(valid)
	require.NoError(t, err)

	cases := []string{
		"",
		"notatoken",
		selector,
		selector + ".",
		"." + verifier,
		selector + "." + verifier[:10],
		selector[:10] + "." + verifier,
		selector + "." + verifier + "00",
	}
	for _, raw := range cases {
		_, _, err := SplitResetToken(raw)
		assert.ErrorIs(t, err, ErrMalformedResetToken, "raw=%q", raw)
	}
}

func TestVerifyResetVerifierRejectsWrongInput(t *testing.T) {
	_, _, verifierHash, err := GenerateResetToken()
	require.NoError(t, err)

	assert.False(t, VerifyResetVerifier(strings.Repeat("a", verifierBytes*2), verifierHash))
	assert.False(t, VerifyResetVerifier("", verifierHash))
}
