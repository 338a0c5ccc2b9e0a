package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrRootExists is returned when a second parentless article is created.
	ErrRootExists = errors.New("a root article already exists")
	// ErrSlugConflict is returned when a url path collides with an existing one while inserting.
	ErrSlugConflict = errors.New("conflicting slug under the same parent")
	// ErrNoCurrentRevision is returned when an attachment has no file to serve.
	ErrNoCurrentRevision = errors.New("attachment has no current revision")
	// ErrUsernameTaken is returned when a username belongs to another user.
	ErrUsernameTaken = errors.New("a user with that username already exists")
	// ErrGroupNameTaken is returned when a group name belongs to another group.
	ErrGroupNameTaken = errors.New("group with this name already exists")
	// ErrTagExists is returned when a tag with the same name or slug exists.
	ErrTagExists = errors.New("tag with this name already exists")
	// ErrInvalidCredentials is returned when a username and password do not match an active user.
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
)

// ValidationError carries user-facing messages per input field and for the
// input as a whole.
type ValidationError struct {
	Fields   map[string][]string
	NonField []string
}

// NewFieldError returns a ValidationError with a single field message.
func NewFieldError(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, msg)
	return e
}

// NewNonFieldError returns a ValidationError with a single non-field message.
func NewNonFieldError(msg string) *ValidationError {
	return &ValidationError{NonField: []string{msg}}
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether no message has been added.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0 && len(e.NonField) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields)+len(e.NonField))
	parts = append(parts, e.NonField...)

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], " "))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
