// Package api is the REST backend client: entity types, CRUD operations,
// and the transport chain that attaches credentials to outgoing requests
// and translates failures on the way back.
package api

import (
	"errors"
	"fmt"
)

// ErrTransport marks a failure where no response reached the client.
var ErrTransport = errors.New("request could not be completed")

// BackendError is a response received with a failing HTTP status. Message
// is the user-facing translation from the fixed status table.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// statusMessage maps an HTTP status to its user-facing message. Unknown
// statuses echo the code in a generic message.
func statusMessage(status int) string {
	switch status {
	case 400:
		return "Invalid request"
	case 401:
		return "Not authorized"
	case 403:
		return "Access denied"
	case 404:
		return "Resource not found"
	case 500:
		return "Internal server error"
	default:
		return fmt.Sprintf("Request failed with status %d", status)
	}
}
