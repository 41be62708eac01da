package models

import jsoniter "github.com/json-iterator/go"

const (
	CommandRoomJoin   = "meetings.room.join"
	CommandRoomLeave  = "meetings.room.leave"
	CommandConnection = "meetings.connection"
)

type UnifiedCommand struct {
	Action  string `json:"w"`
	Message string `json:"m,omitempty"`
	Payload any    `json:"p,omitempty"`
}

func (v UnifiedCommand) Marshal() []byte {
	data, _ := jsoniter.Marshal(v)
	return data
}

func UnifiedCommandFromError(err error) UnifiedCommand {
	return UnifiedCommand{
		Action:  "error",
		Message: err.Error(),
	}
}
