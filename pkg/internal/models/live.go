package models

import (
	"encoding/json"
	"time"
)

// ConnectionStaleMillis is the heartbeat staleness threshold. A connection
// slot whose last_seen is older than this is reported disconnected no matter
// what flag was stored; the sweep runs on every read and write instead of a
// background timer.
const ConnectionStaleMillis int64 = 15_000

type RoomParticipant struct {
	Name     string      `json:"name"`
	Role     AccountRole `json:"role"`
	JoinedAt time.Time   `json:"joined_at"`
}

// MeetingRoom is the volatile presence entry for one meeting. It exists only
// while at least one participant has an active join recorded.
type MeetingRoom struct {
	MeetingID    uint              `json:"meeting_id"`
	Status       string            `json:"status"`
	StartedAt    time.Time         `json:"started_at"`
	Participants []RoomParticipant `json:"participants"`
}

type ConnectionSlot struct {
	Connected bool   `json:"connected"`
	Name      string `json:"name"`
	LastSeen  int64  `json:"last_seen"`
}

// ConnectionState holds exactly two heartbeat slots, one per role.
type ConnectionState struct {
	Admin ConnectionSlot `json:"admin"`
	User  ConnectionSlot `json:"user"`
}

func (v *ConnectionState) Slot(role AccountRole) *ConnectionSlot {
	if role == RoleAdmin {
		return &v.Admin
	}
	return &v.User
}

// Sweep derives staleness at the given instant, mutating stored state: any
// slot not seen within ConnectionStaleMillis is forced disconnected.
func (v *ConnectionState) Sweep(nowMillis int64) {
	if nowMillis-v.Admin.LastSeen > ConnectionStaleMillis {
		v.Admin.Connected = false
	}
	if nowMillis-v.User.LastSeen > ConnectionStaleMillis {
		v.User.Connected = false
	}
}

type IceCandidate struct {
	Candidate json.RawMessage `json:"candidate"`
	Role      AccountRole     `json:"role"`
	Timestamp int64           `json:"timestamp"`
}

// SignalingState is the store-and-forward mailbox for one meeting's peer
// negotiation. Offer and answer are opaque payloads; the relay never parses
// session descriptions.
type SignalingState struct {
	Offer          json.RawMessage `json:"offer,omitempty"`
	Answer         json.RawMessage `json:"answer,omitempty"`
	Candidates     []IceCandidate  `json:"candidates"`
	AdminConnected bool            `json:"admin_connected"`
	UserConnected  bool            `json:"user_connected"`
}
