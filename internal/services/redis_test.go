package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fablestream/pkg/scene"
	"fablestream/pkg/state"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(mr.Addr(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	ws := state.Apply(state.New(), &scene.SceneRecord{
		LocationID:    "cavern_entrance",
		LocationName:  "Cavern Entrance",
		NarrationText: "You stand at a cavern mouth.",
		MusicMood:     scene.MoodEntrance,
		Exits:         []scene.Exit{{Direction: scene.In, TargetLocationID: "cavern_hall"}},
	}, time.Now().UTC())

	require.NoError(t, store.SaveWorldState(ctx, ws.ID, ws))

	loaded, err := store.LoadWorldState(ctx, ws.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, ws.ID, loaded.ID)
	require.NotNil(t, loaded.CurrentScene)
	assert.Equal(t, "cavern_entrance", loaded.CurrentScene.LocationID)
	assert.True(t, loaded.VisitedLocationIDs["cavern_entrance"])
	assert.Len(t, loaded.ConversationLog, 1)
}

func TestRedisStoreMissingStateIsNilNil(t *testing.T) {
	store, _ := newTestStore(t)

	ws := state.New()
	loaded, err := store.LoadWorldState(context.Background(), ws.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded, "absent state is not an error")
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ws := state.New()
	require.NoError(t, store.SaveWorldState(ctx, ws.ID, ws))
	require.NoError(t, store.DeleteWorldState(ctx, ws.ID))

	loaded, err := store.LoadWorldState(ctx, ws.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

// Stored values are zstd frames, not raw JSON.
func TestRedisStoreCompressesSnapshots(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	ws := state.New()
	require.NoError(t, store.SaveWorldState(ctx, ws.ID, ws))

	stored, err := mr.Get("worldstate:" + ws.ID.String())
	require.NoError(t, err)
	assert.NotContains(t, stored, `"id"`, "snapshot should not be stored as plain JSON")

	decoder, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer decoder.Close()
	plain, err := decoder.DecodeAll([]byte(stored), nil)
	require.NoError(t, err)
	assert.Contains(t, string(plain), ws.ID.String())
}

func TestRedisStoreSetsTTL(t *testing.T) {
	store, mr := newTestStore(t)

	ws := state.New()
	require.NoError(t, store.SaveWorldState(context.Background(), ws.ID, ws))
	assert.Greater(t, mr.TTL("worldstate:"+ws.ID.String()), time.Duration(0))
}
