// Package redis mirrors the memory backend onto a shared Redis/Valkey
// instance so multiple server processes see the same coordination state.
// Entries are JSON blobs keyed per meeting and concern; concurrent writers
// are last-write-wins, the same guarantee the memory backend gives.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/fitsphere/coaching/pkg/internal/models"
)

type Config struct {
	URI       string
	KeyPrefix string
	// TTL of zero keeps entries forever, matching the memory backend's
	// no-eviction behavior. Deployments that accept divergence may set one.
	TTL time.Duration
}

type Repository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRepository(cfg Config) (*Repository, error) {
	opt, err := redis.ParseURL(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("unable to parse redis uri: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "coaching:"
	}

	return &Repository{
		client:    client,
		keyPrefix: prefix,
		ttl:       cfg.TTL,
	}, nil
}

func (r *Repository) roomKey(meetingID uint) string {
	return fmt.Sprintf("%sroom:%d", r.keyPrefix, meetingID)
}

func (r *Repository) connectionKey(meetingID uint) string {
	return fmt.Sprintf("%sconn:%d", r.keyPrefix, meetingID)
}

func (r *Repository) signalingKey(meetingID uint) string {
	return fmt.Sprintf("%srtc:%d", r.keyPrefix, meetingID)
}

func (r *Repository) load(ctx context.Context, key string, out any) (bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}

	if err := jsoniter.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository) store(ctx context.Context, key string, value any) error {
	raw, err := jsoniter.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, r.ttl).Err()
}

func (r *Repository) JoinRoom(ctx context.Context, meetingID uint, name string, role models.AccountRole) (*models.MeetingRoom, error) {
	var room models.MeetingRoom
	found, err := r.load(ctx, r.roomKey(meetingID), &room)
	if err != nil {
		return nil, err
	}
	if !found {
		room = models.MeetingRoom{
			MeetingID: meetingID,
			Status:    "active",
			StartedAt: time.Now(),
		}
	}

	present := false
	for _, participant := range room.Participants {
		if participant.Name == name && participant.Role == role {
			present = true
			break
		}
	}
	if !present {
		room.Participants = append(room.Participants, models.RoomParticipant{
			Name:     name,
			Role:     role,
			JoinedAt: time.Now(),
		})
	}

	if err := r.store(ctx, r.roomKey(meetingID), room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *Repository) LeaveRoom(ctx context.Context, meetingID uint, name string, role models.AccountRole) (*models.MeetingRoom, error) {
	var room models.MeetingRoom
	found, err := r.load(ctx, r.roomKey(meetingID), &room)
	if err != nil || !found {
		return nil, err
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
		if err := r.client.Del(ctx, r.roomKey(meetingID)).Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := r.store(ctx, r.roomKey(meetingID), room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *Repository) GetRoom(ctx context.Context, meetingID uint) (*models.MeetingRoom, error) {
	var room models.MeetingRoom
	found, err := r.load(ctx, r.roomKey(meetingID), &room)
	if err != nil || !found {
		return nil, err
	}
	return &room, nil
}

func (r *Repository) SetConnection(ctx context.Context, meetingID uint, role models.AccountRole, connected bool, name string, atMillis int64) (models.ConnectionState, error) {
	var state models.ConnectionState
	if _, err := r.load(ctx, r.connectionKey(meetingID), &state); err != nil {
		return state, err
	}

	if atMillis <= 0 {
		atMillis = time.Now().UnixMilli()
	}

	slot := state.Slot(role)
	slot.Connected = connected
	slot.Name = name
	slot.LastSeen = atMillis

	state.Sweep(time.Now().UnixMilli())

	if err := r.store(ctx, r.connectionKey(meetingID), state); err != nil {
		return state, err
	}
	return state, nil
}

func (r *Repository) GetConnection(ctx context.Context, meetingID uint) (models.ConnectionState, error) {
	var state models.ConnectionState
	found, err := r.load(ctx, r.connectionKey(meetingID), &state)
	if err != nil || !found {
		return state, err
	}

	state.Sweep(time.Now().UnixMilli())

	return state, nil
}

func (r *Repository) ClearConnection(ctx context.Context, meetingID uint, role models.AccountRole) error {
	var state models.ConnectionState
	found, err := r.load(ctx, r.connectionKey(meetingID), &state)
	if err != nil || !found {
		return err
	}

	slot := state.Slot(role)
	slot.Connected = false
	slot.LastSeen = time.Now().UnixMilli()

	return r.store(ctx, r.connectionKey(meetingID), state)
}

func (r *Repository) PutOffer(ctx context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error {
	return r.updateSignaling(ctx, meetingID, func(entry *models.SignalingState) {
		entry.Offer = payload
		markPoster(entry, role)
	})
}

func (r *Repository) GetOffer(ctx context.Context, meetingID uint) (json.RawMessage, error) {
	var entry models.SignalingState
	found, err := r.load(ctx, r.signalingKey(meetingID), &entry)
	if err != nil || !found {
		return nil, err
	}
	return entry.Offer, nil
}

func (r *Repository) PutAnswer(ctx context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error {
	return r.updateSignaling(ctx, meetingID, func(entry *models.SignalingState) {
		entry.Answer = payload
		markPoster(entry, role)
	})
}

func (r *Repository) GetAnswer(ctx context.Context, meetingID uint) (json.RawMessage, error) {
	var entry models.SignalingState
	found, err := r.load(ctx, r.signalingKey(meetingID), &entry)
	if err != nil || !found {
		return nil, err
	}
	return entry.Answer, nil
}

func (r *Repository) AddIceCandidate(ctx context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error {
	return r.updateSignaling(ctx, meetingID, func(entry *models.SignalingState) {
		entry.Candidates = append(entry.Candidates, models.IceCandidate{
			Candidate: payload,
			Role:      role,
			Timestamp: time.Now().UnixMilli(),
		})
	})
}

func (r *Repository) ListIceCandidates(ctx context.Context, meetingID uint) ([]models.IceCandidate, error) {
	var entry models.SignalingState
	found, err := r.load(ctx, r.signalingKey(meetingID), &entry)
	if err != nil {
		return nil, err
	}
	if !found || entry.Candidates == nil {
		return []models.IceCandidate{}, nil
	}
	return entry.Candidates, nil
}

func (r *Repository) updateSignaling(ctx context.Context, meetingID uint, mutate func(entry *models.SignalingState)) error {
	entry := models.SignalingState{Candidates: []models.IceCandidate{}}
	if _, err := r.load(ctx, r.signalingKey(meetingID), &entry); err != nil {
		return err
	}

	mutate(&entry)

	return r.store(ctx, r.signalingKey(meetingID), entry)
}

func markPoster(entry *models.SignalingState, role models.AccountRole) {
	if role == models.RoleAdmin {
		entry.AdminConnected = true
	} else {
		entry.UserConnected = true
	}
}
