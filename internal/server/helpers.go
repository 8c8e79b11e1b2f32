package server

import (
	"errors"
	"log/slog"
	"strconv"

	"soulverse/internal/middleware"
	"soulverse/internal/models"
	"soulverse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters. A zero Limit means no limit.
type Pagination struct {
	Limit  int
	Offset int
}

// parsePagination reads optional limit and offset query parameters. On malformed
// values it writes a 400 JSON response and returns errResponseWritten.
func parsePagination(c *fiber.Ctx) (Pagination, error) {
	var p Pagination
	for _, q := range []struct {
		name string
		dst  *int
	}{{"limit", &p.Limit}, {"offset", &p.Offset}} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid "+q.name))
			return Pagination{}, errResponseWritten
		}
		*q.dst = n
	}
	if p.Limit > service.MaxListLimit {
		p.Limit = service.MaxListLimit
	}
	return p, nil
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps a service error onto its HTTP status. Internal causes are
// logged here and never sent to the client.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()), slog.String("error", err.Error()))
	}
	return models.RespondWithError(c, status, err)
}

func (s *Server) profileSvc() *service.ProfileService {
	if s.profileService == nil {
		s.profileService = service.NewProfileService(s.profileRepo)
	}
	return s.profileService
}

func (s *Server) commentSvc() *service.CommentService {
	if s.commentService == nil {
		s.commentService = service.NewCommentService(s.commentRepo, s.profileRepo, s.likeRepo)
	}
	return s.commentService
}
