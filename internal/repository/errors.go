// Package repository defines error types that are reused across the store
// backends. These sentinel values allow handlers to tell storage failures
// apart from client input errors.
package repository

import "errors"

// ErrNotAcknowledged is returned when the backend accepted the call but did
// not confirm that the record was written. Handlers treat it as a server
// error.
var ErrNotAcknowledged = errors.New("write not acknowledged")

// ErrUnknownDriver is returned when a store is requested for a driver name
// that has no backend.
var ErrUnknownDriver = errors.New("unknown store driver")
