// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapUnwrapAccountKey_RoundTrip(t *testing.T) {
	accountKey, err := NewAccountKey()
	require.NoError(t, err)
	require.Len(t, accountKey, AccountKeyLen)

	wrapKey := testKey(0x11)

	env, err := WrapAccountKey(accountKey, wrapKey, "alice")
	require.NoError(t, err)

	unwrapped, err := UnwrapAccountKey(env, wrapKey, "alice")
	require.NoError(t, err)
	assert.Equal(t, accountKey, unwrapped)
}

func TestUnwrapAccountKey_WrongIdentifierFails(t *testing.T) {
	accountKey, err := NewAccountKey()
	require.NoError(t, err)
	wrapKey := testKey(0x12)

	env, err := WrapAccountKey(accountKey, wrapKey, "alice")
	require.NoError(t, err)

	// Envelope re-bound to another account must not open even with the key.
	_, err = UnwrapAccountKey(env, wrapKey, "mallory")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestUnwrapAccountKey_WrongWrapKeyFails(t *testing.T) {
	accountKey, err := NewAccountKey()
	require.NoError(t, err)

	env, err := WrapAccountKey(accountKey, testKey(0x13), "alice")
	require.NoError(t, err)

	_, err = UnwrapAccountKey(env, testKey(0x14), "alice")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestNewAccountKey_Random(t *testing.T) {
	first, err := NewAccountKey()
	require.NoError(t, err)
	second, err := NewAccountKey()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSealOpenBlob_RoundTrip(t *testing.T) {
	accountKey := testKey(0x15)

	env, err := SealBlob(accountKey, "notes", []byte(`{"title":"hi"}`))
	require.NoError(t, err)

	plaintext, err := OpenBlob(accountKey, "notes", env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"hi"}`, string(plaintext))

	// Sealed for one name, resubmitted under another: must fail.
	_, err = OpenBlob(accountKey, "diary", env)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

// Blob AAD binds the stable name, never the identifier: a blob sealed before
// an identifier rotation must stay decryptable afterwards with the same
// account key.
func TestBlobAAD_IndependentOfIdentifier(t *testing.T) {
	accountKey := testKey(0x16)

	env, err := SealBlob(accountKey, "vault", []byte("pre-rotation contents"))
	require.NoError(t, err)

	// Identifier changes leave the blob binding untouched.
	assert.Equal(t, BlobAAD("vault"), []byte("zerovault:v1:blob:vault"))

	plaintext, err := OpenBlob(accountKey, "vault", env)
	require.NoError(t, err)
	assert.Equal(t, []byte("pre-rotation contents"), plaintext)
}

func TestAccountKeyAAD_Shape(t *testing.T) {
	assert.Equal(t, []byte("zerovault:v1:account-key:user:alice"), AccountKeyAAD("alice"))
}
