package server

import (
	"context"
	"log/slog"

	"soulverse/internal/middleware"
	"soulverse/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// publishCommentEvent delivers an event to every feed subscriber. With Redis the
// local hub receives it back through its subscription; without Redis, or when the
// publish fails, it is broadcast locally only.
func (s *Server) publishCommentEvent(ctx context.Context, eventType string, payload fiber.Map) {
	event := notifications.NewEvent(eventType, payload)
	message, err := event.Encode()
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to marshal event",
			slog.String("type", eventType), slog.String("error", err.Error()))
		return
	}

	if s.notifier.Enabled() {
		err := s.notifier.PublishCommentEvent(ctx, message)
		if err == nil {
			return
		}
		middleware.Logger.WarnContext(ctx, "failed to publish event",
			slog.String("type", eventType), slog.String("error", err.Error()))
	}
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
}

// publishLikeEvent announces a like change with the comment's current like count.
func (s *Server) publishLikeEvent(c *fiber.Ctx, eventType string, commentID, userID uint) {
	ctx := c.UserContext()
	payload := fiber.Map{
		"commentId": commentID,
		"userId":    userID,
	}
	if count, err := s.commentSvc().LikesCount(ctx, commentID); err == nil {
		payload["likesCount"] = count
	}
	s.publishCommentEvent(ctx, eventType, payload)
}
