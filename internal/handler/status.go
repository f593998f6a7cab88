package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-backend/internal/model"
	"github.com/iliyamo/portfolio-backend/internal/repository"
	"github.com/iliyamo/portfolio-backend/internal/validation"
)

// StatusHandler serves the status check endpoints.
type StatusHandler struct {
	Repo repository.StatusRepository
	Log  *slog.Logger
}

// NewStatusHandler panics if repo is nil.
func NewStatusHandler(repo repository.StatusRepository, log *slog.Logger) *StatusHandler {
	if repo == nil {
		panic("nil repository passed to NewStatusHandler")
	}
	return &StatusHandler{Repo: repo, Log: log}
}

// Create handles POST /status.
func (h *StatusHandler) Create(c echo.Context) error {
	var req validation.StatusInput
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	rec := model.NewStatusCheck(*req.ClientName)

	ctx, cancel := context.WithTimeout(c.Request().Context(), storageTimeout)
	defer cancel()
	if err := h.Repo.Insert(ctx, &rec); err != nil {
		h.Log.Error("insert status check failed", "error", err)
		return internalError(c)
	}
	return c.JSON(http.StatusOK, rec)
}

// List handles GET /status. At most 1000 records are returned.
func (h *StatusHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), storageTimeout)
	defer cancel()

	items, err := h.Repo.List(ctx, repository.StatusListLimit)
	if err != nil {
		h.Log.Error("list status checks failed", "error", err)
		return internalError(c)
	}
	if items == nil {
		items = []model.StatusCheck{}
	}
	return c.JSON(http.StatusOK, items)
}
