package session

import (
	"sync"

	"ideaboard-core/internal/domain"
)

// Vault is the secure persistent store for the session: the token pair plus
// a minimal user profile snapshot. The on-device implementation (keychain,
// keystore) lives outside this module; the core only depends on this
// interface.
type Vault interface {
	Save(session domain.Session) error
	Load() (domain.Session, error)
	Clear() error
}

// MemoryVault is the in-memory Vault used by tests and the CLI.
type MemoryVault struct {
	mu      sync.Mutex
	session domain.Session
}

// NewMemoryVault creates an empty vault.
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{}
}

func (v *MemoryVault) Save(session domain.Session) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.session = session.Clone()
	return nil
}

func (v *MemoryVault) Load() (domain.Session, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.Clone(), nil
}

func (v *MemoryVault) Clear() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.session = domain.Session{}
	return nil
}
