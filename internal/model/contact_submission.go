package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ContactStatusNew is the lifecycle tag every submission starts with.
const ContactStatusNew = "new"

// ContactSubmission is a message left through the portfolio contact form.
// This struct corresponds to a document in the `contact_submissions`
// collection.
//
// Fields:
//
//	ID          – random UUID v4 assigned at construction.
//	Name        – sender name, 1 to 100 characters.
//	Email       – sender address.
//	Message     – body, 10 to 1000 characters.
//	SubmittedAt – server UTC time at construction; listings sort on it.
//	Status      – free-text lifecycle tag, "new" on creation.
//	IPAddress   – optional request metadata, nil unless supplied.
//	UserAgent   – optional request metadata, nil unless supplied.
type ContactSubmission struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Message     string    `json:"message" bson:"message"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submittedAt"`
	Status      string    `json:"status" bson:"status"`
	IPAddress   *string   `json:"ipAddress" bson:"ipAddress"`
	UserAgent   *string   `json:"userAgent" bson:"userAgent"`
}

// NewContactSubmission builds a submission from already validated fields.
// IPAddress and UserAgent stay nil.
func NewContactSubmission(name, email, message string) ContactSubmission {
	return ContactSubmission{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       email,
		Message:     message,
		SubmittedAt: Now(),
		Status:      ContactStatusNew,
	}
}

// MarshalJSON writes SubmittedAt in TimeLayout so listings sort as strings.
func (c ContactSubmission) MarshalJSON() ([]byte, error) {
	type plain ContactSubmission
	return json.Marshal(struct {
		plain
		SubmittedAt string `json:"submittedAt"`
	}{plain(c), FormatTime(c.SubmittedAt)})
}

func (c *ContactSubmission) UnmarshalJSON(b []byte) error {
	type plain ContactSubmission
	aux := struct {
		*plain
		SubmittedAt string `json:"submittedAt"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	t, err := ParseTime(aux.SubmittedAt)
	if err != nil {
		return err
	}
	c.SubmittedAt = t
	return nil
}
