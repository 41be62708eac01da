// Package memory keeps all meeting coordination state in mutex-guarded maps.
// This is the default backend: correct for a single server process, lost on
// restart, and deliberately free of any eviction beyond empty-room deletion.
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/fitsphere/coaching/pkg/internal/models"
)

type Repository struct {
	mu sync.Mutex

	rooms       map[uint]*models.MeetingRoom
	connections map[uint]*models.ConnectionState
	signaling   map[uint]*models.SignalingState
}

func NewRepository() *Repository {
	return &Repository{
		rooms:       make(map[uint]*models.MeetingRoom),
		connections: make(map[uint]*models.ConnectionState),
		signaling:   make(map[uint]*models.SignalingState),
	}
}

func (r *Repository) JoinRoom(_ context.Context, meetingID uint, name string, role models.AccountRole) (*models.MeetingRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[meetingID]
	if !ok {
		room = &models.MeetingRoom{
			MeetingID: meetingID,
			Status:    "active",
			StartedAt: time.Now(),
		}
		r.rooms[meetingID] = room
	}

	for _, participant := range room.Participants {
		if participant.Name == name && participant.Role == role {
			return snapshotRoom(room), nil
		}
	}

	room.Participants = append(room.Participants, models.RoomParticipant{
		Name:     name,
		Role:     role,
		JoinedAt: time.Now(),
	})

	return snapshotRoom(room), nil
}

func (r *Repository) LeaveRoom(_ context.Context, meetingID uint, name string, role models.AccountRole) (*models.MeetingRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[meetingID]
	if !ok {
		return nil, nil
	}

	remaining := room.Participants[:0]
	for _, participant := range room.Participants {
		if participant.Name == name && participant.Role == role {
			continue
		}
		remaining = append(remaining, participant)
	}
	room.Participants = remaining

	if len(room.Participants) == 0 {
		delete(r.rooms, meetingID)
		return nil, nil
	}

	return snapshotRoom(room), nil
}

func (r *Repository) GetRoom(_ context.Context, meetingID uint) (*models.MeetingRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[meetingID]
	if !ok {
		return nil, nil
	}

	return snapshotRoom(room), nil
}

func (r *Repository) SetConnection(_ context.Context, meetingID uint, role models.AccountRole, connected bool, name string, atMillis int64) (models.ConnectionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.connections[meetingID]
	if !ok {
		state = &models.ConnectionState{}
		r.connections[meetingID] = state
	}

	if atMillis <= 0 {
		atMillis = time.Now().UnixMilli()
	}

	slot := state.Slot(role)
	slot.Connected = connected
	slot.Name = name
	slot.LastSeen = atMillis

	state.Sweep(time.Now().UnixMilli())

	return *state, nil
}

func (r *Repository) GetConnection(_ context.Context, meetingID uint) (models.ConnectionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.connections[meetingID]
	if !ok {
		return models.ConnectionState{}, nil
	}

	state.Sweep(time.Now().UnixMilli())

	return *state, nil
}

func (r *Repository) ClearConnection(_ context.Context, meetingID uint, role models.AccountRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.connections[meetingID]
	if !ok {
		return nil
	}

	slot := state.Slot(role)
	slot.Connected = false
	slot.LastSeen = time.Now().UnixMilli()

	return nil
}

func (r *Repository) PutOffer(_ context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.signalingEntry(meetingID)
	entry.Offer = payload
	markPoster(entry, role)

	return nil
}

func (r *Repository) GetOffer(_ context.Context, meetingID uint) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.signaling[meetingID]
	if !ok {
		return nil, nil
	}

	return entry.Offer, nil
}

func (r *Repository) PutAnswer(_ context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.signalingEntry(meetingID)
	entry.Answer = payload
	markPoster(entry, role)

	return nil
}

func (r *Repository) GetAnswer(_ context.Context, meetingID uint) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.signaling[meetingID]
	if !ok {
		return nil, nil
	}

	return entry.Answer, nil
}

func (r *Repository) AddIceCandidate(_ context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.signalingEntry(meetingID)
	entry.Candidates = append(entry.Candidates, models.IceCandidate{
		Candidate: payload,
		Role:      role,
		Timestamp: time.Now().UnixMilli(),
	})

	return nil
}

func (r *Repository) ListIceCandidates(_ context.Context, meetingID uint) ([]models.IceCandidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.signaling[meetingID]
	if !ok {
		return []models.IceCandidate{}, nil
	}

	out := make([]models.IceCandidate, len(entry.Candidates))
	copy(out, entry.Candidates)

	return out, nil
}

func (r *Repository) signalingEntry(meetingID uint) *models.SignalingState {
	entry, ok := r.signaling[meetingID]
	if !ok {
		entry = &models.SignalingState{Candidates: []models.IceCandidate{}}
		r.signaling[meetingID] = entry
	}
	return entry
}

func markPoster(entry *models.SignalingState, role models.AccountRole) {
	if role == models.RoleAdmin {
		entry.AdminConnected = true
	} else {
		entry.UserConnected = true
	}
}

// snapshotRoom copies the participant list so callers never alias the map's
// backing storage outside the lock.
func snapshotRoom(room *models.MeetingRoom) *models.MeetingRoom {
	out := *room
	out.Participants = make([]models.RoomParticipant, len(room.Participants))
	copy(out.Participants, room.Participants)
	return &out
}
