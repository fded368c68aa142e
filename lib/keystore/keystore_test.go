package keystore

import (
	"context"
	configlibsql "linkedin-dashboard/lib/configutil/libsql"
	"linkedin-dashboard/lib/keystore/db"
	"linkedin-dashboard/lib/rapidapi"
	"linkedin-dashboard/lib/telemetry"
	"linkedin-dashboard/lib/testutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setup(t testing.TB) *Store {
	res := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "keystore",
		DbSchema: db.Schema,
	})
	return New(res.DB, &telemetry.Recorder{})
}

func TestGetSetRemove(t *testing.T) {
	ctx := context.Background()
	store := setup(t)

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "a", "1"))
	value, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "1", value)

	require.NoError(t, store.Set(ctx, "a", "2"))
	value, err = store.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "2", value)

	require.NoError(t, store.Remove(ctx, "a"))
	_, err = store.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)

	// removing twice is fine
	require.NoError(t, store.Remove(ctx, "a"))
}

func TestSetEmptyRemoves(t *testing.T) {
	ctx := context.Background()
	store := setup(t)

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "a", ""))
	_, err := store.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCredential(t *testing.T) {
	ctx := context.Background()
	store := setup(t)

	var provider rapidapi.CredentialProvider = store
	key, err := provider.Credential(ctx)
	require.NoError(t, err)
	require.Equal(t, "", key)

	require.NoError(t, store.SetCredential(ctx, "secret"))
	key, err = provider.Credential(ctx)
	require.NoError(t, err)
	require.Equal(t, "secret", key)

	stored, err := store.Get(ctx, CredentialKey)
	require.NoError(t, err)
	require.Equal(t, "secret", stored)

	require.NoError(t, store.ClearCredential(ctx))
	key, err = provider.Credential(ctx)
	require.NoError(t, err)
	require.Equal(t, "", key)
}

func TestPersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keystore.db")

	store, err := Open(configlibsql.Struct{File: path}, nil)
	require.NoError(t, err)
	require.NoError(t, store.SetCredential(ctx, "secret"))
	require.NoError(t, store.Close())

	store, err = Open(configlibsql.Struct{File: path}, nil)
	require.NoError(t, err)
	defer store.Close()
	key, err := store.Credential(ctx)
	require.NoError(t, err)
	require.Equal(t, "secret", key)
}

func TestBrokenDatabaseReported(t *testing.T) {
	ctx := context.Background()
	recorder := &telemetry.Recorder{}
	store, err := Open(configlibsql.Struct{File: ":memory:"}, recorder)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Get(ctx, "a")
	require.Error(t, err)
	require.Equal(t, []string{"keystore: get"}, recorder.Broken)
}
