package app

import "strings"

// ValidationError carries the ordered list of field violations for a
// rejected create or update. Handlers return the full list to the client.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}
