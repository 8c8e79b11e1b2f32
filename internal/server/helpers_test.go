package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"soulverse/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		want       Pagination
		wantStatus int
	}{
		{"Empty", "", Pagination{}, http.StatusOK},
		{"Both", "?limit=10&offset=20", Pagination{Limit: 10, Offset: 20}, http.StatusOK},
		{"Capped", "?limit=5000", Pagination{Limit: 100}, http.StatusOK},
		{"Negative Offset", "?offset=-3", Pagination{}, http.StatusBadRequest},
		{"Garbage Limit", "?limit=ten", Pagination{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Pagination
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				p, err := parsePagination(c)
				if err != nil {
					assert.ErrorIs(t, err, errResponseWritten)
					return nil
				}
				got = p
				return c.SendStatus(http.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"Validation", models.NewValidationError("User not found"), http.StatusBadRequest, "User not found"},
		{"Not Found", models.NewNotFoundError("Profile"), http.StatusNotFound, "Profile not found"},
		{"Internal Hides Cause", models.NewInternalError(errors.New("pq: secret")), http.StatusInternalServerError, "Internal server error"},
		{"Plain Error", errors.New("surprise"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondServiceError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assertErrorBody(t, resp, tt.wantStatus, tt.wantBody)
		})
	}
}
