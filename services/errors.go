package services

import "fmt"

// ValidationError marks a report that is missing or malformed a required
// field. Controllers map it to a 400 response.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid required field: %s", e.Field)
}
