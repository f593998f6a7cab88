package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StatusCheck records that a client pinged the service.  Records are
// immutable once created and live in the `status_checks` collection.
//
// Fields:
//
//	ID         – random UUID v4 assigned at construction.
//	ClientName – free text supplied by the caller.
//	Timestamp  – server UTC time at construction, millisecond precision.
type StatusCheck struct {
	ID         string    `json:"id" bson:"id"`
	ClientName string    `json:"client_name" bson:"client_name"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// NewStatusCheck builds a fully populated StatusCheck for clientName.
func NewStatusCheck(clientName string) StatusCheck {
	return StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  Now(),
	}
}

// MarshalJSON writes Timestamp in TimeLayout.
func (s StatusCheck) MarshalJSON() ([]byte, error) {
	type plain StatusCheck
	return json.Marshal(struct {
		plain
		Timestamp string `json:"timestamp"`
	}{plain(s), FormatTime(s.Timestamp)})
}

func (s *StatusCheck) UnmarshalJSON(b []byte) error {
	type plain StatusCheck
	aux := struct {
		*plain
		Timestamp string `json:"timestamp"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	t, err := ParseTime(aux.Timestamp)
	if err != nil {
		return err
	}
	s.Timestamp = t
	return nil
}
