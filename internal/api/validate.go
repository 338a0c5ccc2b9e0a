package api

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/emrgen/wiki/internal/service"
	"github.com/emrgen/wiki/internal/slug"
	"github.com/go-playground/validator/v10"
)

const (
	msgRequired = "This field is required."
	msgNull     = "This field may not be null."
	msgBlank    = "This field may not be blank."
	msgEmail    = "Enter a valid email address."
	msgUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	msgSlug     = "Enter a valid “slug” consisting of letters, numbers, underscores or hyphens."
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	validate        = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.Valid(fl.Field().String())
	})
	return v
}

// fieldErrors collects request validation messages per field.
type fieldErrors struct {
	verr service.ValidationError
}

// present checks a required field, recording an error when it is missing
// or null. Nullable fields pass with allowNull.
func (f *fieldErrors) present(field string, set, valid, allowNull bool) bool {
	switch {
	case !set:
		f.verr.Add(field, msgRequired)
		return false
	case !valid && !allowNull:
		f.verr.Add(field, msgNull)
		return false
	}
	return true
}

// notNull records an error for a field sent as null.
func (f *fieldErrors) notNull(field string, set, valid bool) bool {
	if set && !valid {
		f.verr.Add(field, msgNull)
		return false
	}
	return true
}

// check runs validator tags against a string value.
func (f *fieldErrors) check(field, value, tags string) {
	err := validate.Var(value, tags)
	if err == nil {
		return
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		f.verr.Add(field, err.Error())
		return
	}

	for _, fe := range errs {
		f.verr.Add(field, message(fe))
	}
}

// text validates a non-blank string field.
func (f *fieldErrors) text(field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		f.verr.Add(field, msgBlank)
		return
	}
	f.check(field, value, fmt.Sprintf("max=%d", max))
}

func (f *fieldErrors) err() error {
	if f.verr.Empty() {
		return nil
	}
	verr := f.verr
	return &verr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgBlank
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "email":
		return msgEmail
	case "username":
		return msgUsername
	case "slug":
		return msgSlug
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}
