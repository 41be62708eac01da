package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsphere/coaching/pkg/internal/live/redis"
	"github.com/fitsphere/coaching/pkg/internal/models"
)

func setupTestRepository(t *testing.T) *redis.Repository {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	repo, err := redis.NewRepository(redis.Config{
		URI: "redis://" + mr.Addr(),
	})
	require.NoError(t, err)

	return repo
}

func TestNewRepository(t *testing.T) {
	t.Run("RejectsBadURI", func(t *testing.T) {
		_, err := redis.NewRepository(redis.Config{URI: "not-a-uri"})
		assert.Error(t, err)
	})

	t.Run("RejectsUnreachableServer", func(t *testing.T) {
		_, err := redis.NewRepository(redis.Config{URI: "redis://127.0.0.1:1"})
		assert.Error(t, err)
	})
}

func TestRoomsOverRedis(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	room, err := repo.JoinRoom(ctx, 1, "Alice", models.RoleUser)
	require.NoError(t, err)
	require.Len(t, room.Participants, 1)
	assert.Equal(t, "active", room.Status)

	// Idempotent across the round trip through the serialized blob.
	room, err = repo.JoinRoom(ctx, 1, "Alice", models.RoleUser)
	require.NoError(t, err)
	assert.Len(t, room.Participants, 1)

	room, err = repo.JoinRoom(ctx, 1, "Bob", models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, room.Participants, 2)

	room, err = repo.LeaveRoom(ctx, 1, "Bob", models.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Len(t, room.Participants, 1)

	room, err = repo.LeaveRoom(ctx, 1, "Alice", models.RoleUser)
	require.NoError(t, err)
	assert.Nil(t, room)

	room, err = repo.GetRoom(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, room, "emptied room key must be deleted, not stored empty")
}

func TestConnectionsOverRedis(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	state, err := repo.GetConnection(ctx, 5)
	require.NoError(t, err)
	assert.False(t, state.Admin.Connected)
	assert.False(t, state.User.Connected)

	stale := time.Now().UnixMilli() - 16_000
	_, err = repo.SetConnection(ctx, 5, models.RoleAdmin, true, "Bob", stale)
	require.NoError(t, err)

	state, err = repo.GetConnection(ctx, 5)
	require.NoError(t, err)
	assert.False(t, state.Admin.Connected)
	assert.Equal(t, "Bob", state.Admin.Name)
	assert.Equal(t, stale, state.Admin.LastSeen)

	_, err = repo.SetConnection(ctx, 5, models.RoleUser, true, "Alice", 0)
	require.NoError(t, err)

	state, err = repo.GetConnection(ctx, 5)
	require.NoError(t, err)
	assert.True(t, state.User.Connected)

	require.NoError(t, repo.ClearConnection(ctx, 5, models.RoleUser))

	state, err = repo.GetConnection(ctx, 5)
	require.NoError(t, err)
	assert.False(t, state.User.Connected)

	require.NoError(t, repo.ClearConnection(ctx, 6, models.RoleAdmin))
}

func TestSignalingOverRedis(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	offer, err := repo.GetOffer(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, offer)

	payload := json.RawMessage(`{"type":"offer","sdp":"v=0"}`)
	require.NoError(t, repo.PutOffer(ctx, 9, models.RoleAdmin, payload))

	offer, err = repo.GetOffer(ctx, 9)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(offer))

	answer, err := repo.GetAnswer(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, answer)

	require.NoError(t, repo.PutAnswer(ctx, 9, models.RoleUser, json.RawMessage(`{"type":"answer"}`)))

	answer, err = repo.GetAnswer(ctx, 9)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"answer"}`, string(answer))

	require.NoError(t, repo.AddIceCandidate(ctx, 9, models.RoleAdmin, json.RawMessage(`{"candidate":"a"}`)))
	require.NoError(t, repo.AddIceCandidate(ctx, 9, models.RoleUser, json.RawMessage(`{"candidate":"b"}`)))

	candidates, err := repo.ListIceCandidates(ctx, 9)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, models.RoleAdmin, candidates[0].Role)
	assert.JSONEq(t, `{"candidate":"b"}`, string(candidates[1].Candidate))
}
