// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/zerovault/zerovault/internal/crypto"
	"github.com/zerovault/zerovault/models"
)

// ErrVaultLocked is returned by Vault operations that need the account key
// before Enroll or Unlock has run.
var ErrVaultLocked = errors.New("vault is locked")

// Vault owns the client-side key hierarchy on top of [Client]. After Enroll
// or Unlock it holds the plaintext account key in memory; Put and Get seal
// and open blob payloads with it so the server only ever sees envelopes.
//
// Vault is not safe for concurrent use with Enroll, Unlock or RotatePassword.
type Vault struct {
	api *Client

	identifier string
	accountKey []byte
	kdf        models.KDFParams
}

// NewVault wraps api in a locked vault.
func NewVault(api *Client) *Vault {
	return &Vault{api: api}
}

// Unlocked reports whether the vault currently holds a usable account key.
func (v *Vault) Unlocked() bool {
	return len(v.accountKey) == crypto.AccountKeyLen
}

// Enroll creates a new account from a password. It derives the verifier and
// wrap key locally, generates and wraps a fresh account key, and registers
// the result with the server. On success the vault is unlocked.
func (v *Vault) Enroll(ctx context.Context, identifier, password string, params models.KDFParams) error {
	if err := crypto.ValidateKDFParams(params); err != nil {
		return fmt.Errorf("enroll: %w", err)
	}

	master, err := crypto.DeriveMasterSecret(password, identifier, params)
	if err != nil {
		return fmt.Errorf("enroll derive master secret: %w", err)
	}

	accountKey, err := crypto.NewAccountKey()
	if err != nil {
		return fmt.Errorf("enroll generate account key: %w", err)
	}

	wrapped, err := crypto.WrapAccountKey(accountKey, crypto.DeriveWrapKey(master), identifier)
	if err != nil {
		return fmt.Errorf("enroll wrap account key: %w", err)
	}

	verifier := crypto.DeriveVerifier(master)

	_, err = v.api.Register(ctx, models.RegisterRequest{
		Identifier:        identifier,
		KDFParams:         params,
		Verifier:          verifier,
		WrappedAccountKey: wrapped,
	})
	if err != nil {
		return err
	}

	// registration does not open a session; verify immediately so the vault
	// comes back holding a usable bearer token
	if _, err = v.api.Verify(ctx, models.VerifyRequest{Identifier: identifier, Verifier: verifier}); err != nil {
		return err
	}

	v.identifier = identifier
	v.accountKey = accountKey
	v.kdf = params
	return nil
}

// Unlock authenticates an existing account and recovers the account key. It
// first fetches the stored KDF descriptor, re-derives the verifier with it,
// then verifies and unwraps the returned account key with the locally derived
// wrap key. A server that returns a tampered envelope fails the unwrap, so a
// successful Unlock proves the key material round-tripped intact.
func (v *Vault) Unlock(ctx context.Context, identifier, password string) error {
	params, err := v.api.Params(ctx, identifier)
	if err != nil {
		return err
	}

	master, err := crypto.DeriveMasterSecret(password, identifier, params)
	if err != nil {
		return fmt.Errorf("unlock derive master secret: %w", err)
	}

	verified, err := v.api.Verify(ctx, models.VerifyRequest{
		Identifier: identifier,
		Verifier:   crypto.DeriveVerifier(master),
	})
	if err != nil {
		return err
	}

	accountKey, err := crypto.UnwrapAccountKey(verified.WrappedAccountKey, crypto.DeriveWrapKey(master), identifier)
	if err != nil {
		return fmt.Errorf("unlock account key: %w", err)
	}

	v.identifier = identifier
	v.accountKey = accountKey
	v.kdf = params
	return nil
}

// RotatePassword re-derives credentials from newPassword (and optionally a
// new identifier), re-wraps the existing account key under the new wrap key,
// and submits both to the server. Stored blobs are untouched: they are sealed
// under the account key, which survives the rotation.
func (v *Vault) RotatePassword(ctx context.Context, newIdentifier, newPassword string) error {
	if !v.Unlocked() {
		return ErrVaultLocked
	}

	identifier := v.identifier
	if newIdentifier != "" {
		identifier = newIdentifier
	}

	master, err := crypto.DeriveMasterSecret(newPassword, identifier, v.kdf)
	if err != nil {
		return fmt.Errorf("rotate derive master secret: %w", err)
	}

	wrapped, err := crypto.WrapAccountKey(v.accountKey, crypto.DeriveWrapKey(master), identifier)
	if err != nil {
		return fmt.Errorf("rotate wrap account key: %w", err)
	}

	req := models.RotateRequest{
		Verifier:          crypto.DeriveVerifier(master),
		WrappedAccountKey: wrapped,
	}
	if newIdentifier != "" {
		req.Identifier = newIdentifier
	}

	if err = v.api.Rotate(ctx, req); err != nil {
		return err
	}

	v.identifier = identifier
	return nil
}

// Put seals plaintext under the account key and upserts it as name.
func (v *Vault) Put(ctx context.Context, name string, plaintext []byte, version int64) (models.UpsertBlobResponse, error) {
	if !v.Unlocked() {
		return models.UpsertBlobResponse{}, ErrVaultLocked
	}

	env, err := crypto.SealBlob(v.accountKey, name, plaintext)
	if err != nil {
		return models.UpsertBlobResponse{}, fmt.Errorf("seal blob %q: %w", name, err)
	}

	return v.api.UpsertBlob(ctx, name, env, version)
}

// Get fetches the blob stored under name and opens it with the account key.
func (v *Vault) Get(ctx context.Context, name string) ([]byte, error) {
	if !v.Unlocked() {
		return nil, ErrVaultLocked
	}

	blob, err := v.api.GetBlob(ctx, name)
	if err != nil {
		return nil, err
	}

	plaintext, err := crypto.OpenBlob(v.accountKey, name, blob.Envelope)
	if err != nil {
		return nil, fmt.Errorf("open blob %q: %w", name, err)
	}

	return plaintext, nil
}

// List fetches one metadata page. The envelope contents never leave the
// server during a listing.
func (v *Vault) List(ctx context.Context, limit, offset int64) (models.BlobPage, error) {
	return v.api.ListBlobs(ctx, limit, offset)
}

// Delete removes the blob stored under name.
func (v *Vault) Delete(ctx context.Context, name string) error {
	return v.api.DeleteBlob(ctx, name)
}
