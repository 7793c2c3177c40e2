// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/zerovault/zerovault/internal/crypto"
	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/internal/session"
	"github.com/zerovault/zerovault/internal/store"
	"github.com/zerovault/zerovault/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, the two-step params/verify flow, and credential
// rotation using an AccountRepository for persistence, a VerifierHasher for
// the server-side slow hash, and a session.Manager for bearer tokens.
type authService struct {
	// accounts is the data-access layer used to create and look up accounts.
	accounts store.AccountRepository

	// sessions issues and validates bearer tokens for verified accounts.
	sessions session.Manager

	// hasher applies the server-side slow hash over submitted verifiers.
	// Its parameters are fixed and independent of any client descriptor.
	hasher *crypto.VerifierHasher

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repository
// and session manager.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(accounts store.AccountRepository, sessions session.Manager, logger *logger.Logger) AuthService {
	return &authService{
		accounts: accounts,
		sessions: sessions,
		hasher:   crypto.NewVerifierHasher(),
		logger:   logger,
	}
}

// Params returns the stored KDF descriptor for the identifier.
//
// The endpoint behind this method is unauthenticated by design: the caller
// needs the cost parameters before it can derive anything. An absent account
// is folded into ErrUnauthorized; disclosing the parameters of an existing
// identifier is the accepted information leak of the two-step flow.
func (a *authService) Params(ctx context.Context, identifier string) (models.KDFParams, error) {
	log := logger.FromContext(ctx)

	if identifier == "" {
		log.Error().Str("func", "Params").Msg("empty identifier provided")
		return models.KDFParams{}, ErrInvalidDataProvided
	}

	account, err := a.accounts.FindAccountByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNoAccountWasFound) {
			return models.KDFParams{}, ErrUnauthorized
		}
		log.Err(err).Str("func", "Params").Msg("account lookup failed")
		return models.KDFParams{}, fmt.Errorf("account lookup failed: %w", err)
	}

	return account.KDF, nil
}

// Register creates a new account.
//
// It validates the identifier, the KDF descriptor against the enforced cost
// floors, and the wrapped-account-key envelope shape, then slow-hashes the
// submitted verifier under a fresh server-side salt and persists the record.
//
// Returns the persisted account (with server-assigned AccountID and
// CreatedAt) or:
//   - ErrInvalidDataProvided if a required field is missing or malformed.
//   - ErrInvalidKDFParams if the descriptor is unsupported or below the floor.
//   - A wrapped storage error if persistence fails (duplicate identifier —
//     see store.ErrIdentifierAlreadyExists).
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	if req.Identifier == "" || len(req.Verifier) == 0 {
		log.Error().Str("func", "Register").Msg("missing identifier or verifier")
		return models.Account{}, ErrInvalidDataProvided
	}

	if err := crypto.ValidateKDFParams(req.KDFParams); err != nil {
		log.Error().Str("func", "Register").Str("kdf", req.KDFParams.Type).Msg("kdf descriptor rejected")
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidKDFParams, err)
	}

	if err := req.WrappedAccountKey.Validate(); err != nil {
		log.Error().Str("func", "Register").Msg("malformed wrapped account key")
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	salt, err := a.hasher.GenerateSalt()
	if err != nil {
		log.Err(err).Str("func", "Register").Msg("salt generation failed")
		return models.Account{}, fmt.Errorf("salt generation failed: %w", err)
	}

	account := models.Account{
		Identifier:        req.Identifier,
		KDF:               req.KDFParams,
		VerifierHash:      a.hasher.Hash(req.Verifier, salt),
		VerifierSalt:      salt,
		WrappedAccountKey: req.WrappedAccountKey,
	}

	created, err := a.accounts.CreateAccount(ctx, account)
	if err != nil {
		log.Err(err).Str("func", "Register").Str("identifier", req.Identifier).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	return created, nil
}

// Verify authenticates an account by its re-derived verifier.
//
// The miss path burns an equivalent hash over the submitted verifier, so a
// nonexistent identifier and a wrong verifier are indistinguishable in both
// timing and response shape: each returns bare ErrUnauthorized.
func (a *authService) Verify(ctx context.Context, req models.VerifyRequest) (models.VerifyResponse, error) {
	log := logger.FromContext(ctx)

	if req.Identifier == "" || len(req.Verifier) == 0 {
		log.Error().Str("func", "Verify").Msg("missing identifier or verifier")
		return models.VerifyResponse{}, ErrInvalidDataProvided
	}

	account, err := a.accounts.FindAccountByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, store.ErrNoAccountWasFound) {
			a.hasher.CompareDecoy(req.Verifier)
			return models.VerifyResponse{}, ErrUnauthorized
		}
		log.Err(err).Str("func", "Verify").Msg("account lookup failed")
		return models.VerifyResponse{}, fmt.Errorf("account lookup failed: %w", err)
	}

	if !a.hasher.Compare(req.Verifier, account.VerifierSalt, account.VerifierHash) {
		return models.VerifyResponse{}, ErrUnauthorized
	}

	token, err := a.sessions.Issue(ctx, account.AccountID)
	if err != nil {
		log.Err(err).Str("func", "Verify").Int64("accountID", account.AccountID).Msg("token issuance failed")
		return models.VerifyResponse{}, fmt.Errorf("token issuance failed: %w", err)
	}

	return models.VerifyResponse{
		Token:             token,
		WrappedAccountKey: account.WrappedAccountKey,
		KDFParams:         account.KDF,
	}, nil
}

// Rotate replaces the credentials of the authenticated account.
//
// The new verifier gets its own fresh server salt and slow hash; the
// repository swaps hash, salt, wrapped key and (when non-empty) identifier in
// one atomic statement. Blob envelopes are never rewritten: their AAD binds
// the stable blob name, not the identifier, which is what makes an
// identifier change non-destructive.
//
// Returns nil on success or:
//   - ErrInvalidDataProvided if the verifier or envelope is malformed.
//   - A wrapped storage error on identifier collision
//     (store.ErrIdentifierAlreadyExists) or a vanished account
//     (store.ErrNoAccountWasFound).
func (a *authService) Rotate(ctx context.Context, accountID int64, req models.RotateRequest) error {
	log := logger.FromContext(ctx)

	if len(req.Verifier) == 0 {
		log.Error().Str("func", "Rotate").Msg("missing verifier")
		return ErrInvalidDataProvided
	}

	if err := req.WrappedAccountKey.Validate(); err != nil {
		log.Error().Str("func", "Rotate").Msg("malformed wrapped account key")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	salt, err := a.hasher.GenerateSalt()
	if err != nil {
		log.Err(err).Str("func", "Rotate").Msg("salt generation failed")
		return fmt.Errorf("salt generation failed: %w", err)
	}

	hash := a.hasher.Hash(req.Verifier, salt)
	if err := a.accounts.RotateCredentials(ctx, accountID, req.Identifier, hash, salt, req.WrappedAccountKey); err != nil {
		log.Err(err).Str("func", "Rotate").Int64("accountID", accountID).Msg("credential rotation failed")
		return fmt.Errorf("credential rotation failed: %w", err)
	}

	return nil
}
