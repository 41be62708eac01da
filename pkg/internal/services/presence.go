package services

import (
	"context"

	"github.com/fitsphere/coaching/pkg/internal/live"
	"github.com/fitsphere/coaching/pkg/internal/models"
)

// Presence is room-level, not network-level: it records who is viewing the
// meeting, while the liveness tracker answers whether their client is still
// alive.

func JoinMeetingRoom(ctx context.Context, meetingID uint, name string, role models.AccountRole) (*models.MeetingRoom, error) {
	room, err := live.C.JoinRoom(ctx, meetingID, name, role)
	if err != nil {
		return nil, err
	}

	BroadcastCommand(models.UnifiedCommand{
		Action: models.CommandRoomJoin,
		Payload: map[string]any{
			"meeting_id": meetingID,
			"name":       name,
			"role":       role,
			"room":       room,
		},
	})

	return room, nil
}

func LeaveMeetingRoom(ctx context.Context, meetingID uint, name string, role models.AccountRole) (*models.MeetingRoom, error) {
	room, err := live.C.LeaveRoom(ctx, meetingID, name, role)
	if err != nil {
		return nil, err
	}

	BroadcastCommand(models.UnifiedCommand{
		Action: models.CommandRoomLeave,
		Payload: map[string]any{
			"meeting_id": meetingID,
			"name":       name,
			"role":       role,
			"room":       room,
		},
	})

	return room, nil
}

// GetMeetingRoom never fails on absence; a nil room with zero participants
// is the normal state of an idle meeting.
func GetMeetingRoom(ctx context.Context, meetingID uint) (*models.MeetingRoom, error) {
	return live.C.GetRoom(ctx, meetingID)
}
