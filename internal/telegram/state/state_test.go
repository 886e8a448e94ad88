package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewCacheStorage(time.Minute, time.Minute)

	_, ok, err := storage.Get(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	st := &ChatState{
		UserID: 42,
		ChatID: 100,
		SeedID: "seed-1",
		Phase:  PhaseElaborating,
	}
	require.NoError(t, storage.Set(ctx, st))

	got, ok, err := storage.Get(ctx, 42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "seed-1", got.SeedID)
	assert.Equal(t, PhaseElaborating, got.Phase)

	require.NoError(t, storage.Delete(ctx, 42))
	_, ok, err = storage.Get(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheStorageExpiry(t *testing.T) {
	ctx := context.Background()
	storage := NewCacheStorage(10*time.Millisecond, time.Minute)

	require.NoError(t, storage.Set(ctx, &ChatState{UserID: 7, Phase: PhaseIdle}))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := storage.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManagerGetReturnsIdleStateWhenMissing(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewCacheStorage(time.Minute, time.Minute))

	st, err := mgr.Get(ctx, 1, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.UserID)
	assert.Equal(t, int64(200), st.ChatID)
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.False(t, st.CreatedAt.IsZero())
}

func TestManagerSaveAndReset(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewCacheStorage(time.Minute, time.Minute))

	st, err := mgr.Get(ctx, 5, 300)
	require.NoError(t, err)

	st.Phase = PhaseChoosingSeed
	require.NoError(t, mgr.Save(ctx, st))
	assert.False(t, st.UpdatedAt.IsZero())

	got, err := mgr.Get(ctx, 5, 300)
	require.NoError(t, err)
	assert.Equal(t, PhaseChoosingSeed, got.Phase)

	require.NoError(t, mgr.Reset(ctx, 5))
	fresh, err := mgr.Get(ctx, 5, 300)
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, fresh.Phase)
}
