package server

import (
	"soulverse/internal/models"
	"soulverse/internal/notifications"
	"soulverse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// likeRequest is the body of the like and unlike endpoints.
type likeRequest struct {
	UserID uint `json:"userId"`
}

// parseLikeRequest reads the optional body. A missing userId is reported by the
// service after the comment check.
func parseLikeRequest(c *fiber.Ctx) (likeRequest, error) {
	var req likeRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := c.BodyParser(&req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
		return req, errResponseWritten
	}
	return req, nil
}

// ListComments godoc
// @Summary List comments
// @Description Comments with like counts, filtered to those tagged for every requested personality system
// @Tags comments
// @Produce json
// @Param sort query string false "recent for newest first; most liked first otherwise"
// @Param personalities query string false "Comma separated systems: mbti, enneagram, zodiac"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Router /comments [get]
func (s *Server) ListComments(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return nil
	}

	comments, err := s.commentSvc().ListComments(c.UserContext(), service.ListCommentsInput{
		Sort:          c.Query("sort"),
		Personalities: c.Query("personalities"),
		Limit:         page.Limit,
		Offset:        page.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment godoc
// @Summary Create a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param request body service.CreateCommentInput true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Router /comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req service.CreateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentSvc().CreateComment(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishCommentEvent(c.UserContext(), notifications.EventCommentCreated, fiber.Map{
		"comment": created,
	})

	return c.Status(fiber.StatusCreated).JSON(created)
}

// LikeComment godoc
// @Summary Like a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body object{userId=int} true "Profile liking the comment"
// @Success 200 {object} models.CommentLike
// @Failure 400 {object} models.ErrorResponse
// @Router /comments/{id}/like [put]
func (s *Server) LikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	req, err := parseLikeRequest(c)
	if err != nil {
		return nil
	}

	like, err := s.commentSvc().LikeComment(c.UserContext(), service.LikeCommentInput{
		CommentID: commentID,
		UserID:    req.UserID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishLikeEvent(c, notifications.EventCommentLiked, commentID, req.UserID)

	return c.JSON(like)
}

// UnlikeComment godoc
// @Summary Remove a like from a comment
// @Tags comments
// @Accept json
// @Param id path int true "Comment ID"
// @Param request body object{userId=int} true "Profile removing the like"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Router /comments/{id}/unlike [put]
func (s *Server) UnlikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	req, err := parseLikeRequest(c)
	if err != nil {
		return nil
	}

	if err := s.commentSvc().UnlikeComment(c.UserContext(), service.LikeCommentInput{
		CommentID: commentID,
		UserID:    req.UserID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	s.publishLikeEvent(c, notifications.EventCommentUnliked, commentID, req.UserID)

	return c.SendStatus(fiber.StatusNoContent)
}
