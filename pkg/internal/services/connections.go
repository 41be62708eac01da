package services

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/samber/lo"

	"github.com/fitsphere/coaching/pkg/internal/models"
)

var (
	wsMutex sync.Mutex
	wsConn  = make(map[uint][]*websocket.Conn)
)

func ClientRegister(user models.Account, conn *websocket.Conn) {
	wsMutex.Lock()
	defer wsMutex.Unlock()

	wsConn[user.ID] = append(wsConn[user.ID], conn)
}

func ClientUnregister(user models.Account, conn *websocket.Conn) {
	wsMutex.Lock()
	defer wsMutex.Unlock()

	wsConn[user.ID] = lo.Filter(wsConn[user.ID], func(item *websocket.Conn, idx int) bool {
		return item != conn
	})
	if len(wsConn[user.ID]) == 0 {
		delete(wsConn, user.ID)
	}
}

func CheckOnline(user models.Account) bool {
	wsMutex.Lock()
	defer wsMutex.Unlock()

	return len(wsConn[user.ID]) > 0
}

func PushCommand(userId uint, task models.UnifiedCommand) {
	wsMutex.Lock()
	defer wsMutex.Unlock()

	for _, conn := range wsConn[userId] {
		_ = conn.WriteMessage(websocket.TextMessage, task.Marshal())
	}
}

// BroadcastCommand fans a live-coordination event out to every connected
// client. The deployment is single-trainer scale, so room events are not
// filtered per meeting.
func BroadcastCommand(task models.UnifiedCommand) {
	wsMutex.Lock()
	defer wsMutex.Unlock()

	raw := task.Marshal()
	for _, conns := range wsConn {
		for _, conn := range conns {
			_ = conn.WriteMessage(websocket.TextMessage, raw)
		}
	}
}

func DealCommand(task models.UnifiedCommand, user models.Account) *models.UnifiedCommand {
	switch task.Action {
	case "ping":
		return &models.UnifiedCommand{Action: "pong"}
	default:
		return &models.UnifiedCommand{
			Action:  "error",
			Message: "command not found",
		}
	}
}
