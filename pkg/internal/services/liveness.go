package services

import (
	"context"

	"github.com/fitsphere/coaching/pkg/internal/live"
	"github.com/fitsphere/coaching/pkg/internal/models"
)

func SetConnectionStatus(ctx context.Context, meetingID uint, role models.AccountRole, connected bool, name string, atMillis int64) (models.ConnectionState, error) {
	state, err := live.C.SetConnection(ctx, meetingID, role, connected, name, atMillis)
	if err != nil {
		return state, err
	}

	BroadcastCommand(models.UnifiedCommand{
		Action: models.CommandConnection,
		Payload: map[string]any{
			"meeting_id": meetingID,
			"state":      state,
		},
	})

	return state, nil
}

func GetConnectionStatus(ctx context.Context, meetingID uint) (models.ConnectionState, error) {
	return live.C.GetConnection(ctx, meetingID)
}

func ClearConnectionStatus(ctx context.Context, meetingID uint, role models.AccountRole) error {
	return live.C.ClearConnection(ctx, meetingID, role)
}
