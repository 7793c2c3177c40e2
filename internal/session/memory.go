package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// tokenEntropyBytes is the random length of an in-memory session token
// (256 bits, hex-encoded on the wire).
const tokenEntropyBytes = 32

// memoryEntry holds one live session.
type memoryEntry struct {
	accountID int64
	expiresAt time.Time
}

// MemoryManager is the stateful Manager implementation: a token→identity map
// of cryptographically random values, looked up on every authenticated
// request. Entries are never persisted; a restart logs everyone out.
//
// Validation is far more frequent than issuance, so the table is guarded by
// a sync.RWMutex and Validate takes only the read lock.
type MemoryManager struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryManager constructs a MemoryManager whose sessions expire ttl after
// issuance.
func NewMemoryManager(ttl time.Duration) *MemoryManager {
	return &MemoryManager{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue implements [Manager]. The token is 32 bytes from the OS CSPRNG,
// hex-encoded.
func (m *MemoryManager) Issue(_ context.Context, accountID int64) (string, error) {
	raw := make([]byte, tokenEntropyBytes)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("generating session token failed: %w", err)
	}
	token := hex.EncodeToString(raw)

	m.mu.Lock()
	m.sessions[token] = memoryEntry{
		accountID: accountID,
		expiresAt: m.now().Add(m.ttl),
	}
	m.mu.Unlock()

	return token, nil
}

// Validate implements [Manager]. Unknown and expired tokens are both
// ErrInvalidSession; expired entries are left for the janitor (Prune) so the
// hot path never takes the write lock.
func (m *MemoryManager) Validate(_ context.Context, token string) (int64, error) {
	m.mu.RLock()
	entry, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok || m.now().After(entry.expiresAt) {
		return 0, ErrInvalidSession
	}

	return entry.accountID, nil
}

// Revoke implements [Manager]. Revoking an unknown token is not an error.
func (m *MemoryManager) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()

	return nil
}

// Prune drops all expired entries and returns how many were removed. The
// janitor worker calls this periodically.
func (m *MemoryManager) Prune() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, entry := range m.sessions {
		if now.After(entry.expiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}

	return removed
}

// Len reports the number of live (possibly expired but not yet pruned)
// sessions.
func (m *MemoryManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
