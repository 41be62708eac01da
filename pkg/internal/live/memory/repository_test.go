package memory_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsphere/coaching/pkg/internal/live/memory"
	"github.com/fitsphere/coaching/pkg/internal/models"
)

func TestPresenceRegistry(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()

	t.Run("JoinIsIdempotent", func(t *testing.T) {
		room, err := repo.JoinRoom(ctx, 1, "Alice", models.RoleUser)
		require.NoError(t, err)
		assert.Len(t, room.Participants, 1)

		room, err = repo.JoinRoom(ctx, 1, "Alice", models.RoleUser)
		require.NoError(t, err)
		assert.Len(t, room.Participants, 1, "re-join with same name and role must not duplicate")

		// Same name under the other role is a distinct participant.
		room, err = repo.JoinRoom(ctx, 1, "Alice", models.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, room.Participants, 2)
	})

	t.Run("LeaveDeletesEmptyRoom", func(t *testing.T) {
		_, err := repo.LeaveRoom(ctx, 1, "Alice", models.RoleAdmin)
		require.NoError(t, err)

		room, err := repo.LeaveRoom(ctx, 1, "Alice", models.RoleUser)
		require.NoError(t, err)
		assert.Nil(t, room, "room entry must vanish with its last participant")

		room, err = repo.GetRoom(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, room)
	})

	t.Run("AbsenceIsNotAnError", func(t *testing.T) {
		room, err := repo.GetRoom(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, room)

		room, err = repo.LeaveRoom(ctx, 404, "Nobody", models.RoleUser)
		require.NoError(t, err)
		assert.Nil(t, room)
	})

	t.Run("RoomIsCreatedLazily", func(t *testing.T) {
		before := time.Now()
		room, err := repo.JoinRoom(ctx, 2, "Bob", models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, uint(2), room.MeetingID)
		assert.Equal(t, "active", room.Status)
		assert.False(t, room.StartedAt.Before(before.Add(-time.Second)))
		assert.Equal(t, models.RoleAdmin, room.Participants[0].Role)
	})
}

func TestConnectionLiveness(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()

	t.Run("DefaultShapeForUnknownMeeting", func(t *testing.T) {
		state, err := repo.GetConnection(ctx, 99)
		require.NoError(t, err)
		assert.False(t, state.Admin.Connected)
		assert.False(t, state.User.Connected)
		assert.Zero(t, state.Admin.LastSeen)
	})

	t.Run("WriteTouchesOnlyNamedSlot", func(t *testing.T) {
		now := time.Now().UnixMilli()
		state, err := repo.SetConnection(ctx, 7, models.RoleAdmin, true, "Bob", now)
		require.NoError(t, err)
		assert.True(t, state.Admin.Connected)
		assert.Equal(t, "Bob", state.Admin.Name)
		assert.False(t, state.User.Connected)
		assert.Zero(t, state.User.LastSeen)
	})

	t.Run("StaleHeartbeatReadsDisconnected", func(t *testing.T) {
		t0 := time.Now().UnixMilli() - 16_000
		_, err := repo.SetConnection(ctx, 8, models.RoleAdmin, true, "Bob", t0)
		require.NoError(t, err)

		state, err := repo.GetConnection(ctx, 8)
		require.NoError(t, err)
		assert.False(t, state.Admin.Connected, "raw true flag must be overridden by the staleness sweep")
		assert.Equal(t, "Bob", state.Admin.Name)
		assert.Equal(t, t0, state.Admin.LastSeen)
	})

	t.Run("FreshHeartbeatStaysConnected", func(t *testing.T) {
		_, err := repo.SetConnection(ctx, 9, models.RoleUser, true, "Alice", 0)
		require.NoError(t, err)

		state, err := repo.GetConnection(ctx, 9)
		require.NoError(t, err)
		assert.True(t, state.User.Connected)
	})

	t.Run("ClearForcesDisconnect", func(t *testing.T) {
		_, err := repo.SetConnection(ctx, 10, models.RoleUser, true, "Alice", 0)
		require.NoError(t, err)

		require.NoError(t, repo.ClearConnection(ctx, 10, models.RoleUser))

		state, err := repo.GetConnection(ctx, 10)
		require.NoError(t, err)
		assert.False(t, state.User.Connected)
		assert.NotZero(t, state.User.LastSeen)

		// Clearing a meeting nobody heartbeated is a no-op, not an error.
		require.NoError(t, repo.ClearConnection(ctx, 11, models.RoleAdmin))
	})
}

func TestSignalingRelay(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()

	t.Run("AbsentPayloadsAreNull", func(t *testing.T) {
		offer, err := repo.GetOffer(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, offer)

		answer, err := repo.GetAnswer(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, answer)

		candidates, err := repo.ListIceCandidates(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("OfferRoundTripsByteForByte", func(t *testing.T) {
		payload := json.RawMessage(`{"type":"offer","sdp":"v=0\r\no=- 46117 2 IN IP4 127.0.0.1"}`)
		require.NoError(t, repo.PutOffer(ctx, 2, models.RoleAdmin, payload))

		offer, err := repo.GetOffer(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []byte(payload), []byte(offer))
	})

	t.Run("LastWriteWins", func(t *testing.T) {
		require.NoError(t, repo.PutAnswer(ctx, 3, models.RoleUser, json.RawMessage(`{"sdp":"first"}`)))
		require.NoError(t, repo.PutAnswer(ctx, 3, models.RoleUser, json.RawMessage(`{"sdp":"second"}`)))

		answer, err := repo.GetAnswer(ctx, 3)
		require.NoError(t, err)
		assert.JSONEq(t, `{"sdp":"second"}`, string(answer))
	})

	t.Run("CandidatesAccumulateInOrder", func(t *testing.T) {
		require.NoError(t, repo.AddIceCandidate(ctx, 4, models.RoleAdmin, json.RawMessage(`{"candidate":"a"}`)))
		require.NoError(t, repo.AddIceCandidate(ctx, 4, models.RoleUser, json.RawMessage(`{"candidate":"b"}`)))
		require.NoError(t, repo.AddIceCandidate(ctx, 4, models.RoleAdmin, json.RawMessage(`{"candidate":"c"}`)))

		candidates, err := repo.ListIceCandidates(ctx, 4)
		require.NoError(t, err)
		require.Len(t, candidates, 3)
		assert.Equal(t, models.RoleAdmin, candidates[0].Role)
		assert.Equal(t, models.RoleUser, candidates[1].Role)
		assert.JSONEq(t, `{"candidate":"c"}`, string(candidates[2].Candidate))
		assert.NotZero(t, candidates[0].Timestamp)
	})
}
