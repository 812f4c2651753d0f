package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "mcc.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.TokenStore().Set(ctx, domain.KeyDeveloperToken, "kept"))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var applied int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)

	val, ok, err := second.TokenStore().Get(ctx, domain.KeyDeveloperToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", val)
}

func TestTokenStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	tokens := setupTestStore(t).TokenStore()

	_, ok, err := tokens.Get(ctx, domain.KeyGoogleAccounts)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tokens.Set(ctx, domain.KeyGoogleAccounts, `[{"email":"a@x.com"}]`))
	val, ok, err := tokens.Get(ctx, domain.KeyGoogleAccounts)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"email":"a@x.com"}]`, val)

	require.NoError(t, tokens.Set(ctx, domain.KeyGoogleAccounts, "[]"))
	val, _, _ = tokens.Get(ctx, domain.KeyGoogleAccounts)
	assert.Equal(t, "[]", val)

	require.NoError(t, tokens.Remove(ctx, domain.KeyGoogleAccounts))
	_, ok, err = tokens.Get(ctx, domain.KeyGoogleAccounts)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStore_EmptyValueIsPresent(t *testing.T) {
	ctx := context.Background()
	tokens := setupTestStore(t).TokenStore()

	require.NoError(t, tokens.Set(ctx, domain.KeyLastSelectedAccount, ""))
	val, ok, err := tokens.Get(ctx, domain.KeyLastSelectedAccount)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, val)
}

func TestTokenStore_RemoveMissing(t *testing.T) {
	tokens := setupTestStore(t).TokenStore()
	assert.NoError(t, tokens.Remove(context.Background(), "missing"))
}

func TestGrantStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	grants := setupTestStore(t).GrantStore()

	require.NoError(t, grants.Save(ctx, domain.Grant{
		ID:           "g1",
		Email:        "a@x.com",
		RefreshToken: "refresh-1",
		Scopes:       []string{"scope-a", "scope-b"},
	}))

	got, err := grants.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "g1", got.ID)
	assert.Equal(t, "refresh-1", got.RefreshToken)
	assert.Equal(t, []string{"scope-a", "scope-b"}, got.Scopes)
	assert.False(t, got.CreatedAt.IsZero())
	assert.True(t, got.HasRefreshToken())
}

func TestGrantStore_SaveReplacesByEmail(t *testing.T) {
	ctx := context.Background()
	grants := setupTestStore(t).GrantStore()
	require.NoError(t, grants.Save(ctx, domain.Grant{ID: "g1", Email: "a@x.com", RefreshToken: "r1"}))

	require.NoError(t, grants.Save(ctx, domain.Grant{ID: "g2", Email: "a@x.com", RefreshToken: "r2"}))

	got, err := grants.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "g1", got.ID, "existing id is kept")
	assert.Equal(t, "r2", got.RefreshToken)

	all, err := grants.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGrantStore_SaveRequiresIDAndEmail(t *testing.T) {
	grants := setupTestStore(t).GrantStore()
	err := grants.Save(context.Background(), domain.Grant{Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGrantStore_GetMissing(t *testing.T) {
	grants := setupTestStore(t).GrantStore()
	_, err := grants.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGrantStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	grants := setupTestStore(t).GrantStore()
	require.NoError(t, grants.Save(ctx, domain.Grant{ID: "g1", Email: "a@x.com", RefreshToken: "r1"}))
	require.NoError(t, grants.Save(ctx, domain.Grant{ID: "g2", Email: "b@x.com", RefreshToken: "r2"}))

	all, err := grants.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, grants.Delete(ctx, "a@x.com"))
	all, err = grants.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b@x.com", all[0].Email)
}

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_second.up.sql":    {Data: []byte("SELECT 2;")},
		"001_initial.up.sql":   {Data: []byte("SELECT 1;")},
		"001_initial.down.sql": {Data: []byte("SELECT 0;")},
		"notes.up.sql":         {Data: []byte("SELECT 3;")},
		"010_tenth.up.sql":     {Data: []byte("SELECT 10;")},
	}

	pending, err := pendingMigrations(fsys, map[int]bool{1: true})
	require.NoError(t, err)

	assert.Equal(t, []migration{
		{version: 2, file: "002_second.up.sql"},
		{version: 10, file: "010_tenth.up.sql"},
	}, pending)
}
