package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/carteira-app/carteira-backend/internal/domain"
)

const (
	// SnapshotKey is the fixed blob key the whole account table lives under
	SnapshotKey = "carteira:accounts"
	// SchemaVersion tags snapshots written by this version of the engine.
	// A version read from storage is preserved as-is across rewrites.
	SchemaVersion = "1.0"
)

// snapshot is the persisted shape: the full account table, the active
// account id and the schema version tag, serialized as one JSON blob.
type snapshot struct {
	SchemaVersion   string                     `json:"schemaVersion"`
	ActiveAccountID *uuid.UUID                 `json:"activeAccountId,omitempty"`
	Accounts        map[string]*domain.Account `json:"accounts"`
}

// Repository implements domain.AccountRepository over a BlobStore. The
// snapshot is read once at construction and held in memory; every mutation
// rewrites the whole blob. Mutations apply in memory before the write, so a
// failed write leaves memory ahead of storage until the next successful one.
type Repository struct {
	blobs domain.BlobStore
	mu    sync.RWMutex
	snap  *snapshot
}

// NewRepository creates a Repository, loading any existing snapshot
func NewRepository(ctx context.Context, blobs domain.BlobStore) (*Repository, error) {
	raw, ok, err := blobs.Get(ctx, SnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}

	snap := &snapshot{
		SchemaVersion: SchemaVersion,
		Accounts:      make(map[string]*domain.Account),
	}
	if ok {
		if err := json.Unmarshal(raw, snap); err != nil {
			return nil, fmt.Errorf("failed to decode ledger snapshot: %w", err)
		}
		if snap.Accounts == nil {
			snap.Accounts = make(map[string]*domain.Account)
		}
	}

	return &Repository{blobs: blobs, snap: snap}, nil
}

// persist rewrites the whole snapshot. Must be called with the lock held.
func (r *Repository) persist() error {
	raw, err := json.Marshal(r.snap)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}
	if err := r.blobs.Set(context.Background(), SnapshotKey, raw); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}
	return nil
}

// Create adds a new account. A persistence failure is returned alongside the
// created account; the in-memory table keeps the account either way.
func (r *Repository) Create(account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.snap.Accounts[account.ID.String()]; exists {
		return nil, domain.ErrAccountExists
	}

	r.snap.Accounts[account.ID.String()] = account
	if err := r.persist(); err != nil {
		return account, err
	}
	return account, nil
}

// GetByID retrieves an account by its identifier
func (r *Repository) GetByID(id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.snap.Accounts[id.String()]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// GetByEmail retrieves an account by email. Account ids are derived from the
// normalized email, so this is a direct lookup.
func (r *Repository) GetByEmail(email string) (*domain.Account, error) {
	return r.GetByID(domain.AccountIDForEmail(email))
}

// Update persists the current state of an already-registered account
func (r *Repository) Update(account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.snap.Accounts[account.ID.String()]; !ok {
		return domain.ErrAccountNotFound
	}
	r.snap.Accounts[account.ID.String()] = account
	return r.persist()
}

// ActiveAccount returns the account the current session points at, or nil
func (r *Repository) ActiveAccount() *domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.snap.ActiveAccountID == nil {
		return nil
	}
	return r.snap.Accounts[r.snap.ActiveAccountID.String()]
}

// SetActive points the session at the given account, or clears it with nil
func (r *Repository) SetActive(id *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != nil {
		if _, ok := r.snap.Accounts[id.String()]; !ok {
			return domain.ErrAccountNotFound
		}
	}
	r.snap.ActiveAccountID = id
	return r.persist()
}
