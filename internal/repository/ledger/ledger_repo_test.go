package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carteira-app/carteira-backend/internal/domain"
	"github.com/carteira-app/carteira-backend/internal/testutil"
)

func TestRepository_FreshSnapshot(t *testing.T) {
	blobs := testutil.NewMockBlobStore()

	repo, err := NewRepository(context.Background(), blobs)
	require.NoError(t, err)

	assert.Nil(t, repo.ActiveAccount())
	_, err = repo.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRepository_CreatePersistsWholeSnapshot(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	repo, err := NewRepository(context.Background(), blobs)
	require.NoError(t, err)

	account := testutil.NewTestAccount("Ana", "ana@example.com")
	_, err = repo.Create(account)
	require.NoError(t, err)
	assert.Equal(t, 1, blobs.SetCalls)

	var snap snapshot
	require.NoError(t, json.Unmarshal(blobs.Blobs[SnapshotKey], &snap))
	assert.Equal(t, SchemaVersion, snap.SchemaVersion)
	require.Contains(t, snap.Accounts, account.ID.String())
	assert.Equal(t, "ana@example.com", snap.Accounts[account.ID.String()].Email)
}

func TestRepository_CreateDuplicate(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	repo, err := NewRepository(context.Background(), blobs)
	require.NoError(t, err)

	account := testutil.NewTestAccount("Ana", "ana@example.com")
	_, err = repo.Create(account)
	require.NoError(t, err)

	_, err = repo.Create(testutil.NewTestAccount("Other", "ana@example.com"))
	assert.ErrorIs(t, err, domain.ErrAccountExists)
}

func TestRepository_ReloadRoundTrip(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	repo, err := NewRepository(context.Background(), blobs)
	require.NoError(t, err)

	account := testutil.NewTestAccount("Ana", "ana@example.com")
	_, err = repo.Create(account)
	require.NoError(t, err)
	id := account.ID
	require.NoError(t, repo.SetActive(&id))

	// A new repository over the same store sees the same state
	reloaded, err := NewRepository(context.Background(), blobs)
	require.NoError(t, err)

	active := reloaded.ActiveAccount()
	require.NotNil(t, active)
	assert.Equal(t, account.ID, active.ID)
	assert.Equal(t, domain.DefaultCategories, active.Categories)
}

func TestRepository_PreservesForeignSchemaVersion(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	raw, err := json.Marshal(map[string]interface{}{
		"schemaVersion": "0.9",
		"accounts":      map[string]interface{}{},
	})
	require.NoError(t, err)
	require.NoError(t, blobs.Set(context.Background(), SnapshotKey, raw))

	repo, err := NewRepository(context.Background(), blobs)
	require.NoError(t, err)

	_, err = repo.Create(testutil.NewTestAccount("Ana", "ana@example.com"))
	require.NoError(t, err)

	var snap snapshot
	require.NoError(t, json.Unmarshal(blobs.Blobs[SnapshotKey], &snap))
	assert.Equal(t, "0.9", snap.SchemaVersion)
}

func TestRepository_PersistenceFailureLeavesMemoryAhead(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	repo, err := NewRepository(context.Background(), blobs)
	require.NoError(t, err)

	blobs.SetErr = errors.New("quota exceeded")

	account := testutil.NewTestAccount("Ana", "ana@example.com")
	created, err := repo.Create(account)
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
	require.NotNil(t, created)

	// Applied but not durable: the in-memory table has the account while
	// the store does not
	got, err := repo.GetByEmail("ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.Empty(t, blobs.Blobs)
}

func TestRepository_SetActiveUnknownAccount(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	repo, err := NewRepository(context.Background(), blobs)
	require.NoError(t, err)

	id := domain.AccountIDForEmail("ghost@example.com")
	assert.ErrorIs(t, repo.SetActive(&id), domain.ErrAccountNotFound)
}

func TestRepository_GetByEmailNormalizes(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	repo, err := NewRepository(context.Background(), blobs)
	require.NoError(t, err)

	_, err = repo.Create(testutil.NewTestAccount("Ana", "ana@example.com"))
	require.NoError(t, err)

	got, err := repo.GetByEmail("  ANA@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
}
