// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package client

import (
	"context"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerovault/zerovault/internal/config"
	handlerhttp "github.com/zerovault/zerovault/internal/handler/http"
	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/internal/service"
	"github.com/zerovault/zerovault/internal/session"
	"github.com/zerovault/zerovault/internal/store"
	"github.com/zerovault/zerovault/models"
)

// memAccounts is a map-backed AccountRepository for end-to-end tests.
type memAccounts struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{nextID: 1, byID: make(map[int64]models.Account)}
}

func (m *memAccounts) CreateAccount(_ context.Context, account models.Account) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.byID {
		if existing.Identifier == account.Identifier {
			return models.Account{}, store.ErrIdentifierAlreadyExists
		}
	}

	account.AccountID = m.nextID
	m.nextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	m.byID[account.AccountID] = account
	return account, nil
}

func (m *memAccounts) FindAccountByIdentifier(_ context.Context, identifier string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, account := range m.byID {
		if account.Identifier == identifier {
			return account, nil
		}
	}
	return models.Account{}, store.ErrNoAccountWasFound
}

func (m *memAccounts) FindAccountByID(_ context.Context, accountID int64) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.byID[accountID]
	if !ok {
		return models.Account{}, store.ErrNoAccountWasFound
	}
	return account, nil
}

func (m *memAccounts) RotateCredentials(_ context.Context, accountID int64, newIdentifier string, verifierHash, verifierSalt []byte, wrappedKey models.Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.byID[accountID]
	if !ok {
		return store.ErrNoAccountWasFound
	}
	if newIdentifier != "" {
		for id, existing := range m.byID {
			if id != accountID && existing.Identifier == newIdentifier {
				return store.ErrIdentifierAlreadyExists
			}
		}
		account.Identifier = newIdentifier
	}
	account.VerifierHash = verifierHash
	account.VerifierSalt = verifierSalt
	account.WrappedAccountKey = wrappedKey
	account.UpdatedAt = time.Now()
	m.byID[accountID] = account
	return nil
}

// memBlobs is a map-backed BlobRepository keyed by (account, name).
type memBlobs struct {
	mu     sync.Mutex
	nextID int64
	blobs  map[int64]map[string]models.Blob
}

func newMemBlobs() *memBlobs {
	return &memBlobs{nextID: 1, blobs: make(map[int64]map[string]models.Blob)}
}

func (m *memBlobs) UpsertBlob(_ context.Context, blob models.Blob) (models.Blob, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.blobs[blob.AccountID] == nil {
		m.blobs[blob.AccountID] = make(map[string]models.Blob)
	}

	now := time.Now()
	existing, ok := m.blobs[blob.AccountID][blob.Name]
	if ok {
		blob.BlobID = existing.BlobID
		blob.CreatedAt = existing.CreatedAt
	} else {
		blob.BlobID = m.nextID
		m.nextID++
		blob.CreatedAt = now
	}
	blob.UpdatedAt = now
	m.blobs[blob.AccountID][blob.Name] = blob
	return blob, !ok, nil
}

func (m *memBlobs) GetBlob(_ context.Context, accountID int64, name string) (models.Blob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	blob, ok := m.blobs[accountID][name]
	if !ok {
		return models.Blob{}, store.ErrBlobNotFound
	}
	return blob, nil
}

func (m *memBlobs) ListBlobs(_ context.Context, accountID int64, limit, offset int64) ([]models.BlobSummary, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.blobs[accountID]))
	for name := range m.blobs[accountID] {
		names = append(names, name)
	}
	sort.Strings(names)

	if offset >= int64(len(names)) {
		return nil, false, nil
	}
	names = names[offset:]

	more := int64(len(names)) > limit
	if more {
		names = names[:limit]
	}

	summaries := make([]models.BlobSummary, 0, len(names))
	for _, name := range names {
		blob := m.blobs[accountID][name]
		summaries = append(summaries, models.BlobSummary{Name: blob.Name, Version: blob.Version, UpdatedAt: blob.UpdatedAt})
	}
	return summaries, more, nil
}

func (m *memBlobs) DeleteBlob(_ context.Context, accountID int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blobs[accountID][name]; !ok {
		return store.ErrBlobNotFound
	}
	delete(m.blobs[accountID], name)
	return nil
}

// newTestServer stands up the full HTTP stack over in-memory repositories and
// returns a client configured against it.
func newTestServer(t *testing.T) (*Client, func()) {
	t.Helper()

	log := logger.Nop()
	repos := &store.Repositories{Accounts: newMemAccounts(), Blobs: newMemBlobs()}
	sessions := session.NewMemoryManager(time.Hour)
	services := service.NewServices(repos, sessions, log)
	router := handlerhttp.NewHandler(services, sessions, log).Init()

	srv := httptest.NewServer(router)

	cfg := config.ClientConfig{}
	cfg.Server.Address = srv.URL
	cfg.Server.RequestTimeout = 10 * time.Second

	api, err := NewClient(cfg, log)
	require.NoError(t, err)

	return api, srv.Close
}

func testKDFParams() models.KDFParams {
	return models.KDFParams{
		Type:        models.KDFArgon2id,
		Iterations:  2,
		MemoryKiB:   19 * 1024,
		Parallelism: 1,
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "plain host and port", address: "localhost:8080"},
		{name: "full url", address: "http://localhost:8080/"},
		{name: "empty address", address: "", wantErr: true},
		{name: "missing host", address: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.ClientConfig{}
			cfg.Server.Address = tt.address
			cfg.Server.RequestTimeout = time.Second

			_, err := NewClient(cfg, logger.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVault_EnrollUnlockRoundTrip(t *testing.T) {
	api, closeServer := newTestServer(t)
	defer closeServer()

	ctx := context.Background()
	password := "correct horse battery staple"
	plaintext := []byte(`{"title":"hi"}`)

	vault := NewVault(api)
	require.NoError(t, vault.Enroll(ctx, "alice", password, testKDFParams()))
	assert.True(t, vault.Unlocked())

	saved, err := vault.Put(ctx, "notes", plaintext, 1)
	require.NoError(t, err)
	assert.Equal(t, "notes", saved.Name)
	assert.Equal(t, int64(1), saved.Version)

	// a fresh vault with only the password must recover the same plaintext
	second, closeSecond := newVaultAgainst(t, api)
	defer closeSecond()
	require.NoError(t, second.Unlock(ctx, "alice", password))

	got, err := second.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

// newVaultAgainst builds a second, independent client against the same server
// so unlock paths cannot reuse state cached in the first client.
func newVaultAgainst(t *testing.T, api *Client) (*Vault, func()) {
	t.Helper()

	cfg := config.ClientConfig{}
	cfg.Server.Address = api.client.BaseURL
	cfg.Server.RequestTimeout = 10 * time.Second

	fresh, err := NewClient(cfg, logger.Nop())
	require.NoError(t, err)
	return NewVault(fresh), func() {}
}

func TestVault_UnlockWrongPassword(t *testing.T) {
	api, closeServer := newTestServer(t)
	defer closeServer()

	ctx := context.Background()
	vault := NewVault(api)
	require.NoError(t, vault.Enroll(ctx, "alice", "correct horse battery staple", testKDFParams()))

	locked, closeLocked := newVaultAgainst(t, api)
	defer closeLocked()

	err := locked.Unlock(ctx, "alice", "incorrect horse")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, locked.Unlocked())
}

func TestVault_UnlockUnknownIdentifier(t *testing.T) {
	api, closeServer := newTestServer(t)
	defer closeServer()

	vault := NewVault(api)
	err := vault.Unlock(context.Background(), "nobody", "whatever")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVault_RotateKeepsBlobsReadable(t *testing.T) {
	api, closeServer := newTestServer(t)
	defer closeServer()

	ctx := context.Background()
	oldPassword := "correct horse battery staple"
	newPassword := "battery staple horse correct"
	plaintext := []byte(`{"title":"hi"}`)

	vault := NewVault(api)
	require.NoError(t, vault.Enroll(ctx, "alice", oldPassword, testKDFParams()))
	_, err := vault.Put(ctx, "notes", plaintext, 1)
	require.NoError(t, err)

	require.NoError(t, vault.RotatePassword(ctx, "", newPassword))

	// the rotating vault keeps working without touching the blob
	got, err := vault.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	// a fresh unlock with the new password reads the same, untouched envelope
	fresh, closeFresh := newVaultAgainst(t, api)
	defer closeFresh()
	require.NoError(t, fresh.Unlock(ctx, "alice", newPassword))

	got, err = fresh.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	// the old password is dead
	stale, closeStale := newVaultAgainst(t, api)
	defer closeStale()
	err = stale.Unlock(ctx, "alice", oldPassword)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVault_RotateIdentifier(t *testing.T) {
	api, closeServer := newTestServer(t)
	defer closeServer()

	ctx := context.Background()
	password := "correct horse battery staple"
	plaintext := []byte(`{"title":"hi"}`)

	vault := NewVault(api)
	require.NoError(t, vault.Enroll(ctx, "alice", password, testKDFParams()))
	_, err := vault.Put(ctx, "notes", plaintext, 1)
	require.NoError(t, err)

	require.NoError(t, vault.RotatePassword(ctx, "alice@example.com", password))

	fresh, closeFresh := newVaultAgainst(t, api)
	defer closeFresh()
	require.NoError(t, fresh.Unlock(ctx, "alice@example.com", password))

	got, err := fresh.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	// the old handle no longer resolves
	stale, closeStale := newVaultAgainst(t, api)
	defer closeStale()
	err = stale.Unlock(ctx, "alice", password)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVault_ListAndDelete(t *testing.T) {
	api, closeServer := newTestServer(t)
	defer closeServer()

	ctx := context.Background()
	vault := NewVault(api)
	require.NoError(t, vault.Enroll(ctx, "alice", "correct horse battery staple", testKDFParams()))

	for _, name := range []string{"bank", "mail", "notes"} {
		_, err := vault.Put(ctx, name, []byte("payload for "+name), 1)
		require.NoError(t, err)
	}

	page, err := vault.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "bank", page.Items[0].Name)
	assert.Equal(t, "mail", page.Items[1].Name)
	require.NotNil(t, page.NextOffset)
	assert.Equal(t, int64(2), *page.NextOffset)

	page, err = vault.List(ctx, 2, *page.NextOffset)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "notes", page.Items[0].Name)
	assert.Nil(t, page.NextOffset)

	require.NoError(t, vault.Delete(ctx, "mail"))

	_, err = vault.Get(ctx, "mail")
	assert.ErrorIs(t, err, ErrNotFound)

	err = vault.Delete(ctx, "mail")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVault_LockedOperationsFail(t *testing.T) {
	api, closeServer := newTestServer(t)
	defer closeServer()

	ctx := context.Background()
	vault := NewVault(api)

	_, err := vault.Put(ctx, "notes", []byte("x"), 1)
	assert.ErrorIs(t, err, ErrVaultLocked)

	_, err = vault.Get(ctx, "notes")
	assert.ErrorIs(t, err, ErrVaultLocked)

	assert.ErrorIs(t, vault.RotatePassword(ctx, "", "new"), ErrVaultLocked)
}

func TestVault_EnrollDuplicateIdentifier(t *testing.T) {
	api, closeServer := newTestServer(t)
	defer closeServer()

	ctx := context.Background()
	password := "correct horse battery staple"

	require.NoError(t, NewVault(api).Enroll(ctx, "alice", password, testKDFParams()))

	again, closeAgain := newVaultAgainst(t, api)
	defer closeAgain()
	err := again.Enroll(ctx, "alice", password, testKDFParams())
	assert.ErrorIs(t, err, ErrConflict)
}
