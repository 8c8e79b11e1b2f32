package server

import (
	"log/slog"

	"soulverse/internal/middleware"
	"soulverse/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketCommentsHandler streams comment events to the connection. Plain HTTP
// requests are rejected with 426.
// @Summary Comment event feed
// @Description Websocket stream of comment_created, comment_liked and comment_unliked events
// @Tags comments
// @Success 101
// @Failure 426 {object} models.ErrorResponse
// @Router /ws/comments [get]
func (s *Server) WebSocketCommentsHandler() fiber.Handler {
	upgrade := websocket.New(func(conn *websocket.Conn) {
		if s.hub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(conn)
		if err != nil {
			middleware.Logger.Warn("comment feed registration failed", slog.String("error", err.Error()))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})

	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return models.RespondWithError(c, fiber.StatusUpgradeRequired,
				models.NewValidationError("WebSocket upgrade required"))
		}
		return upgrade(c)
	}
}
