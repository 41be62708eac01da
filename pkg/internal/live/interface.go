// Package live defines the process-wide store for meeting-room coordination
// state: presence, connection liveness, and WebRTC signaling. The state is
// volatile and best-effort, so absence is always a valid default, never an
// error; only the backends decide where it physically lives.
package live

import (
	"context"
	"encoding/json"

	"github.com/fitsphere/coaching/pkg/internal/models"
)

// Repository is implemented by the memory backend (single-instance
// deployments) and the redis backend (shared state for horizontal scale).
// All entries are created lazily on first write; reads of unknown meeting
// ids return the documented default shapes.
type Repository interface {
	// Presence registry. JoinRoom is idempotent on (name, role); LeaveRoom
	// deletes the whole entry once the last participant is gone and returns
	// nil. GetRoom returns nil for unknown meetings.
	JoinRoom(ctx context.Context, meetingID uint, name string, role models.AccountRole) (*models.MeetingRoom, error)
	LeaveRoom(ctx context.Context, meetingID uint, name string, role models.AccountRole) (*models.MeetingRoom, error)
	GetRoom(ctx context.Context, meetingID uint) (*models.MeetingRoom, error)

	// Connection liveness. SetConnection overwrites only the named role's
	// slot and sweeps both; GetConnection sweeps before returning and yields
	// the all-disconnected shape for unknown meetings; ClearConnection is a
	// no-op when no entry exists.
	SetConnection(ctx context.Context, meetingID uint, role models.AccountRole, connected bool, name string, atMillis int64) (models.ConnectionState, error)
	GetConnection(ctx context.Context, meetingID uint) (models.ConnectionState, error)
	ClearConnection(ctx context.Context, meetingID uint, role models.AccountRole) error

	// Signaling relay. Offers and answers are last-write-wins; reads return
	// nil payloads until something was posted. Candidates accumulate without
	// any consumption protocol.
	PutOffer(ctx context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error
	GetOffer(ctx context.Context, meetingID uint) (json.RawMessage, error)
	PutAnswer(ctx context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error
	GetAnswer(ctx context.Context, meetingID uint) (json.RawMessage, error)
	AddIceCandidate(ctx context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error
	ListIceCandidates(ctx context.Context, meetingID uint) ([]models.IceCandidate, error)
}
