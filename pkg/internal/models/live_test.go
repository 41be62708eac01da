package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitsphere/coaching/pkg/internal/models"
)

func TestParseAccountRole(t *testing.T) {
	cases := []struct {
		input string
		want  models.AccountRole
		ok    bool
	}{
		{"ADMIN", models.RoleAdmin, true},
		{"admin", models.RoleAdmin, true},
		{" Admin ", models.RoleAdmin, true},
		{"USER", models.RoleUser, true},
		{"user", models.RoleUser, true},
		{"guest", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		role, ok := models.ParseAccountRole(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		assert.Equal(t, tc.want, role, "input %q", tc.input)
	}
}

func TestParseMeetingStatus(t *testing.T) {
	for _, input := range []string{"COMPLETE", "Complete", "complete"} {
		status, ok := models.ParseMeetingStatus(input)
		assert.True(t, ok, "input %q", input)
		assert.Equal(t, models.MeetingStatusComplete, status)
	}

	_, ok := models.ParseMeetingStatus("done")
	assert.False(t, ok)

	status, ok := models.ParseMeetingStatus(" Cancel ")
	assert.True(t, ok)
	assert.Equal(t, models.MeetingStatusCancel, status)
}

func TestConnectionStateSweep(t *testing.T) {
	t0 := time.Now().UnixMilli()

	state := models.ConnectionState{
		Admin: models.ConnectionSlot{Connected: true, Name: "Bob", LastSeen: t0},
		User:  models.ConnectionSlot{Connected: true, Name: "Alice", LastSeen: t0},
	}

	// Within the threshold both stay up.
	state.Sweep(t0 + models.ConnectionStaleMillis)
	assert.True(t, state.Admin.Connected)
	assert.True(t, state.User.Connected)

	// One millisecond past the threshold the slot is derived disconnected
	// even though the stored flag was true.
	state.Admin.Connected = true
	state.Sweep(t0 + models.ConnectionStaleMillis + 1)
	assert.False(t, state.Admin.Connected)
	assert.False(t, state.User.Connected)

	// The name and heartbeat survive the sweep; only the flag is derived.
	assert.Equal(t, "Bob", state.Admin.Name)
	assert.Equal(t, t0, state.Admin.LastSeen)
}

func TestConnectionStateSlot(t *testing.T) {
	var state models.ConnectionState
	state.Slot(models.RoleAdmin).Name = "trainer"
	state.Slot(models.RoleUser).Name = "client"

	assert.Equal(t, "trainer", state.Admin.Name)
	assert.Equal(t, "client", state.User.Name)
}
