package server

import (
	"soulverse/internal/models"
	"soulverse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListProfiles godoc
// @Summary List profiles
// @Description Get every profile ordered by id
// @Tags profiles
// @Produce json
// @Success 200 {array} models.Profile
// @Failure 500 {object} models.ErrorResponse
// @Router /profiles [get]
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileSvc().ListProfiles(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profiles)
}

// CreateProfile godoc
// @Summary Create a profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body service.CreateProfileInput true "Profile fields"
// @Success 201 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profiles [post]
func (s *Server) CreateProfile(c *fiber.Ctx) error {
	var req service.CreateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileSvc().CreateProfile(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// GetProfile godoc
// @Summary Get a profile
// @Tags profiles
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /profiles/{id} [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.profileSvc().GetProfile(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}
