package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-backend/internal/model"
	"github.com/iliyamo/portfolio-backend/internal/queue"
	"github.com/iliyamo/portfolio-backend/internal/repository"
	"github.com/iliyamo/portfolio-backend/internal/validation"
)

const contactThanks = "Thank you for reaching out. I'll get back to you soon."

// ContactHandler serves the contact form and its admin listing.
type ContactHandler struct {
	Repo   repository.ContactRepository
	Events queue.Publisher
	Log    *slog.Logger
}

// NewContactHandler panics if repo is nil. A nil events publisher drops
// events.
func NewContactHandler(repo repository.ContactRepository, events queue.Publisher, log *slog.Logger) *ContactHandler {
	if repo == nil {
		panic("nil repository passed to NewContactHandler")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &ContactHandler{Repo: repo, Events: events, Log: log}
}

type contactResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type adminListResp struct {
	Contacts []model.ContactSubmission `json:"contacts"`
	Total    int                       `json:"total"`
}

// Submit handles POST /contact: validate, store, announce.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req validation.ContactInput
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	rec := model.NewContactSubmission(*req.Name, *req.Email, *req.Message)

	ctx, cancel := context.WithTimeout(c.Request().Context(), storageTimeout)
	defer cancel()
	if err := h.Repo.Insert(ctx, &rec); err != nil {
		h.Log.Error("error processing contact form", "error", err)
		return internalError(c)
	}
	h.Log.Info("contact form submitted", "email", rec.Email, "id", rec.ID)

	if err := h.Events.PublishContactSubmitted(ctx, queue.NewContactSubmittedEvent(rec)); err != nil {
		h.Log.Warn("publish contact event failed", "id", rec.ID, "error", err)
	}

	return c.JSON(http.StatusOK, contactResp{Success: true, Message: contactThanks, ID: rec.ID})
}

// AdminList handles GET /admin/contacts: the 100 most recent submissions,
// newest first.
func (h *ContactHandler) AdminList(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), storageTimeout)
	defer cancel()

	items, err := h.Repo.ListRecent(ctx, repository.ContactListLimit)
	if err != nil {
		h.Log.Error("error fetching contact submissions", "error", err)
		return internalError(c)
	}
	if items == nil {
		items = []model.ContactSubmission{}
	}
	return c.JSON(http.StatusOK, adminListResp{Contacts: items, Total: len(items)})
}
