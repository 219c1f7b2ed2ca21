package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/parentcopilot/internal/profile"
)

func newTestDB(t *testing.T, dsn string) *DB {
	t.Helper()
	driver, err := NewDB(&profile.Profile{DSN: dsn})
	require.NoError(t, err)
	return driver.(*DB)
}

func TestKV(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, filepath.Join(t.TempDir(), "kv.db"))
	defer db.Close()

	t.Run("MissingKey", func(t *testing.T) {
		value, ok, err := db.GetValue(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, value)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, db.SetValue(ctx, "k", []byte(`{"a":1}`)))
		value, ok, err := db.GetValue(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"a":1}`, string(value))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, db.SetValue(ctx, "k", []byte(`[1,2]`)))
		value, ok, err := db.GetValue(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[1,2]`, string(value))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, db.DeleteValue(ctx, "k"))
		require.NoError(t, db.DeleteValue(ctx, "k"))
		_, ok, err := db.GetValue(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestKV_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "reopen.db")

	first := newTestDB(t, dsn)
	require.NoError(t, first.SetValue(ctx, "children", []byte(`[]`)))
	require.NoError(t, first.Close())

	second := newTestDB(t, dsn)
	defer second.Close()
	value, ok, err := second.GetValue(ctx, "children")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(value))
}

func TestNewDB_RequiresDSN(t *testing.T) {
	_, err := NewDB(&profile.Profile{})
	assert.Error(t, err)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
