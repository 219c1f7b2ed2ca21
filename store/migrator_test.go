package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/parentcopilot/internal/profile"
	"github.com/hrygo/parentcopilot/internal/version"
	"github.com/hrygo/parentcopilot/store"
	"github.com/hrygo/parentcopilot/store/db/memory"
)

func TestCheckDataVersion(t *testing.T) {
	ctx := context.Background()
	prof := &profile.Profile{Mode: "prod"}

	t.Run("stamps a fresh store", func(t *testing.T) {
		st := store.New(memory.NewDB(), prof)
		require.NoError(t, st.CheckDataVersion(ctx))
		assert.Equal(t, version.Version, store.Load(ctx, st, store.KeyDataVersion, ""))
	})

	t.Run("accepts data from an older release", func(t *testing.T) {
		st := store.New(memory.NewDB(), prof)
		require.NoError(t, store.Save(ctx, st, store.KeyDataVersion, "0.0.1"))
		require.NoError(t, st.CheckDataVersion(ctx))
		assert.Equal(t, version.Version, store.Load(ctx, st, store.KeyDataVersion, ""))
	})

	t.Run("leaves a current stamp alone", func(t *testing.T) {
		st := store.New(memory.NewDB(), prof)
		require.NoError(t, store.Save(ctx, st, store.KeyDataVersion, version.Version))
		require.NoError(t, st.CheckDataVersion(ctx))
		assert.Equal(t, version.Version, store.Load(ctx, st, store.KeyDataVersion, ""))
	})

	t.Run("rejects data from a newer release", func(t *testing.T) {
		st := store.New(memory.NewDB(), prof)
		require.NoError(t, store.Save(ctx, st, store.KeyDataVersion, "99.0.0"))
		assert.Error(t, st.CheckDataVersion(ctx))
	})
}
