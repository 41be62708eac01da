package services

import (
	"context"
	"encoding/json"

	"github.com/fitsphere/coaching/pkg/internal/live"
	"github.com/fitsphere/coaching/pkg/internal/models"
)

// The signaling relay stores whatever the browsers hand it; payloads are
// relayed byte-for-byte and never validated server-side.

func PostSignalingOffer(ctx context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error {
	return live.C.PutOffer(ctx, meetingID, role, payload)
}

func GetSignalingOffer(ctx context.Context, meetingID uint) (json.RawMessage, error) {
	return live.C.GetOffer(ctx, meetingID)
}

func PostSignalingAnswer(ctx context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error {
	return live.C.PutAnswer(ctx, meetingID, role, payload)
}

func GetSignalingAnswer(ctx context.Context, meetingID uint) (json.RawMessage, error) {
	return live.C.GetAnswer(ctx, meetingID)
}

func PostIceCandidate(ctx context.Context, meetingID uint, role models.AccountRole, payload json.RawMessage) error {
	return live.C.AddIceCandidate(ctx, meetingID, role, payload)
}

// ListIceCandidates returns the full accumulated list; consumers de-dup by
// position or timestamp, there is no ack protocol.
func ListIceCandidates(ctx context.Context, meetingID uint) ([]models.IceCandidate, error) {
	return live.C.ListIceCandidates(ctx, meetingID)
}
