// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"unicode/utf8"

	"github.com/iliyamo/portfolio-backend/internal/model"
)

const previewRunes = 80

// ContactSubmittedEvent is published after a contact submission has been
// stored. It carries enough for a notifier to alert the site owner without
// reading the store.
type ContactSubmittedEvent struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Preview      string `json:"preview"`
	MessageChars int    `json:"message_chars"`
	SubmittedAt  string `json:"submitted_at"`
}

// NewContactSubmittedEvent derives the event from a stored submission.
func NewContactSubmittedEvent(s model.ContactSubmission) ContactSubmittedEvent {
	preview := s.Message
	if utf8.RuneCountInString(preview) > previewRunes {
		preview = string([]rune(preview)[:previewRunes]) + "…"
	}
	return ContactSubmittedEvent{
		ID:           s.ID,
		Name:         s.Name,
		Email:        s.Email,
		Preview:      preview,
		MessageChars: utf8.RuneCountInString(s.Message),
		SubmittedAt:  model.FormatTime(s.SubmittedAt),
	}
}
