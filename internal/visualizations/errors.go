package visualizations

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates the requested record is not in the store.
var ErrNotFound = errors.New("visualization not found")

// ErrUnsupportedContentType indicates a content type the parser cannot take.
var ErrUnsupportedContentType = errors.New("unsupported content type")

// ParseError indicates the payload bytes could not be decoded at all.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return "parse error: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError carries every missing or invalid field found in a
// payload. Fields are accumulated, not short-circuited, so a caller sees
// all problems in one round trip.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid payload: " + strings.Join(e.Fields, "; ")
}
