package models

import (
	"errors"
	"fmt"
)

// InvalidInputError is returned when user input cannot be used as given.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// NewInvalidInputError creates a new InvalidInputError.
func NewInvalidInputError(input, reason string) *InvalidInputError {
	return &InvalidInputError{Input: input, Reason: reason}
}

// TransportError is returned when the GraphQL endpoint answers with a non-2xx status.
// Body holds the raw response body.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("query failed with status code %d: %s", e.StatusCode, e.Body)
}

// DataShapeError is returned when the GraphQL response does not have the expected shape.
type DataShapeError struct {
	Path   string
	Reason string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("unexpected response shape at %s: %s", e.Path, e.Reason)
}

// NewDataShapeError creates a new DataShapeError.
func NewDataShapeError(path, reason string) *DataShapeError {
	return &DataShapeError{Path: path, Reason: reason}
}

// PublishFailure is returned when issue creation does not answer 201 Created.
type PublishFailure struct {
	StatusCode int
	Message    string
}

func (e *PublishFailure) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("failed to create issue: status code %d", e.StatusCode)
	}
	return fmt.Sprintf("failed to create issue: status code %d: %s", e.StatusCode, e.Message)
}

// IsInvalidInput checks if an error is or wraps an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// IsTransportError checks if an error is or wraps a TransportError.
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsDataShapeError checks if an error is or wraps a DataShapeError.
func IsDataShapeError(err error) bool {
	var target *DataShapeError
	return errors.As(err, &target)
}

// IsPublishFailure checks if an error is or wraps a PublishFailure.
func IsPublishFailure(err error) bool {
	var target *PublishFailure
	return errors.As(err, &target)
}
