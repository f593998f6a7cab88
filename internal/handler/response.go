package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-backend/internal/validation"
)

// storageTimeout bounds every store call made on behalf of a request.
const storageTimeout = 5 * time.Second

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid body"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{
		"error":  "validation failed",
		"detail": validation.AsViolations(err),
	})
}

// internalError never echoes the underlying failure; callers log it.
func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
