package session

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/datatalks/config"
	"github.com/spacesedan/datatalks/internal/clients"
	"github.com/spacesedan/datatalks/internal/models"
)

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	state, err := store.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, ViewState{}, state)
}

func TestMemoryStoreLoadReturnsCopy(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()
	_, err := store.Update(ctx, "id", func(v *ViewState) {
		v.Results = []models.AnalysisResult{{Comment: "a"}}
	})
	require.NoError(t, err)

	state, err := store.Load(ctx, "id")
	require.NoError(t, err)
	state.Results[0].Comment = "mutated"

	again, err := store.Load(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, "a", again.Results[0].Comment)
}

func TestMemoryStoreUpdateReturnsSavedState(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	got, err := store.Update(ctx, "id", func(v *ViewState) { v.Input = "first" })
	require.NoError(t, err)
	assert.Equal(t, "first", got.Input)

	got, err = store.Update(ctx, "id", func(v *ViewState) { v.Input += " second" })
	require.NoError(t, err)
	assert.Equal(t, "first second", got.Input)
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()
	_, err := store.Update(ctx, "id", func(v *ViewState) { v.Input = "x" })
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		state, err := store.Load(ctx, "id")
		return err == nil && state.Input == ""
	}, time.Second, 10*time.Millisecond)
}

func TestTTLSeconds(t *testing.T) {
	assert.Equal(t, int64(7200), ttlSeconds(2*time.Hour))
	assert.Equal(t, int64(1), ttlSeconds(10*time.Millisecond))
	assert.Equal(t, "datatalks:session:abc", sessionKey("abc"))
}

func newValkeyTestClient(t *testing.T) *clients.ValkeyClient {
	t.Helper()
	addr := os.Getenv("VALKEY_TEST_ADDRESS")
	if addr == "" {
		t.Skip("VALKEY_TEST_ADDRESS not set")
	}

	vc, err := clients.NewValkeyClient(config.ValkeyConfig{InitAddress: addr})
	require.NoError(t, err)
	t.Cleanup(vc.Close)
	return vc
}

func TestValkeyStoreRoundTrip(t *testing.T) {
	store := NewValkeyStore(newValkeyTestClient(t), time.Minute)
	ctx := context.Background()

	missing, err := store.Load(ctx, "missing-"+time.Now().Format(time.RFC3339Nano))
	require.NoError(t, err)
	assert.False(t, missing.HasResults())

	id := "roundtrip-" + time.Now().Format(time.RFC3339Nano)
	results := []models.AnalysisResult{{Comment: "good", Sentiment: "positive", Score: 0.5}}
	_, err = store.Update(ctx, id, func(v *ViewState) {
		v.Input = "good\nbad"
		v.Results = results
		v.Notice = NoticeManualFailed
	})
	require.NoError(t, err)

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, results, got.Results)
	assert.Equal(t, "good\nbad", got.Input)
	assert.Equal(t, NoticeManualFailed, got.Notice)
}

func TestValkeyStoreConcurrentUpdatesFromTwoReplicas(t *testing.T) {
	vc := newValkeyTestClient(t)
	replicas := []*ValkeyStore{NewValkeyStore(vc, time.Minute), NewValkeyStore(vc, time.Minute)}
	ctx := context.Background()
	id := "concurrent-" + time.Now().Format(time.RFC3339Nano)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(store *ValkeyStore) {
			defer wg.Done()
			_, err := store.Update(ctx, id, func(v *ViewState) { v.Input += "x" })
			assert.NoError(t, err)
		}(replicas[i%2])
	}
	wg.Wait()

	got, err := replicas[0].Load(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Input, 10)
}
