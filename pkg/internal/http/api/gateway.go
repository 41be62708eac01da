package api

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/fitsphere/coaching/pkg/internal/models"
	"github.com/fitsphere/coaching/pkg/internal/services"
)

// unifiedGateway streams live-coordination events (room joins, leaves,
// connection changes) to clients that keep a socket open instead of polling.
func unifiedGateway(c *websocket.Conn) {
	user := c.Locals("user").(models.Account)

	// Push connection
	services.ClientRegister(user, c)

	// Event loop
	var task models.UnifiedCommand

	var messageType int
	var packet []byte
	var err error

	for {
		if messageType, packet, err = c.ReadMessage(); err != nil {
			break
		} else if err := jsoniter.Unmarshal(packet, &task); err != nil {
			_ = c.WriteMessage(messageType, models.UnifiedCommandFromError(
				fiber.NewError(fiber.StatusBadRequest, "unable to unmarshal your command, requires json request"),
			).Marshal())
			continue
		}

		if message := services.DealCommand(task, user); message != nil {
			if err = c.WriteMessage(messageType, message.Marshal()); err != nil {
				break
			}
		}
	}

	// Pop connection
	services.ClientUnregister(user, c)
}
