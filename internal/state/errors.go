package state

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an update or delete names an ID that is
	// not in the collection. The state is left unchanged.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned when an add supplies an ID already present.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalid is returned when a required field is missing.
	ErrInvalid = errors.New("invalid")
	// ErrMalformedImport is returned when an import payload is not a well-formed list.
	ErrMalformedImport = errors.New("malformed import")
	// ErrLoginFailed is returned when no identity matches the login identifier.
	ErrLoginFailed = errors.New("login failed")
)

// ValidationError lists the required fields missing from an entity.
type ValidationError struct {
	Kind   string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.Kind, strings.Join(e.Fields, ", "))
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *ValidationError) Unwrap() error { return ErrInvalid }

// required returns a ValidationError naming every empty field, or nil.
func required(kind string, fields ...[2]string) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			missing = append(missing, f[0])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, Fields: missing}
}
