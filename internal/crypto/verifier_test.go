// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifierHasher_HashDeterministic(t *testing.T) {
	h := NewVerifierHasher()
	verifier := testKey(0x21)

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, VerifierSaltLen)

	assert.Equal(t, h.Hash(verifier, salt), h.Hash(verifier, salt))
}

func TestVerifierHasher_SaltChangesHash(t *testing.T) {
	h := NewVerifierHasher()
	verifier := testKey(0x22)

	saltA, err := h.GenerateSalt()
	require.NoError(t, err)
	saltB, err := h.GenerateSalt()
	require.NoError(t, err)

	assert.NotEqual(t, saltA, saltB)
	assert.NotEqual(t, h.Hash(verifier, saltA), h.Hash(verifier, saltB))
}

func TestVerifierHasher_Compare(t *testing.T) {
	h := NewVerifierHasher()
	verifier := testKey(0x23)

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	stored := h.Hash(verifier, salt)

	assert.True(t, h.Compare(verifier, salt, stored))
	assert.False(t, h.Compare(testKey(0x24), salt, stored))
	assert.False(t, h.Compare(verifier, salt, stored[:16]))
}

func TestVerifierHasher_CompareDecoy_AlwaysFalse(t *testing.T) {
	h := NewVerifierHasher()

	assert.False(t, h.CompareDecoy(testKey(0x25)))
	assert.False(t, h.CompareDecoy(nil))
}
