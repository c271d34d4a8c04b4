// Package validation checks form input before anything is sent to the remote API.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/util"

	"github.com/go-playground/validator/v10"
)

// MsgRequiredFields is the form-level message for any missing required field.
const MsgRequiredFields = "Please fill all the fields"

var passwordPattern = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,}$`)

// Error is a validation failure. It never reaches the network.
type Error struct {
	Message string            // Form-level message, shown to the user
	Fields  map[string]string // Field name (json) -> message
}

func (e *Error) Error() string {
	return "validation failed: " + e.Message
}

// Field returns the message for a single field, or "".
func (e *Error) Field(name string) string {
	return e.Fields[name]
}

// NewFormError builds a form-scoped Error with no field detail.
func NewFormError(msg string) *Error {
	return &Error{Message: msg, Fields: map[string]string{}}
}

// NewFieldError builds an Error scoped to one field.
func NewFieldError(field, msg string) *Error {
	return &Error{Message: msg, Fields: map[string]string{field: msg}}
}

// IsValidationError reports whether err is (or wraps) a *Error.
func IsValidationError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

// Validator wraps go-playground/validator with the date and password rules
// used by the forms.
type Validator struct {
	validate *validator.Validate
	clock    util.Clock
}

// New creates a Validator. Dates are compared with the clock's current UTC day.
func New(clock util.Clock) *Validator {
	if clock == nil {
		clock = util.NewRealClock()
	}
	v := &Validator{validate: validator.New(), clock: clock}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// Registration can only fail on a duplicate tag, which would be a programming error.
	_ = v.validate.RegisterValidation("notfuture", v.notFuture)
	_ = v.validate.RegisterValidation("notpast", v.notPast)
	_ = v.validate.RegisterValidation("password", strongPassword)
	return v
}

// Struct validates s using its `validate` tags.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Error{Fields: make(map[string]string, len(fieldErrs))}
	missing := false
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = true
		}
		if _, seen := out.Fields[fe.Field()]; !seen {
			out.Fields[fe.Field()] = message(fe)
		}
		if out.Message == "" && fe.Tag() != "required" {
			out.Message = message(fe)
		}
	}
	// Missing fields win over range errors, the form reports them first.
	if missing || out.Message == "" {
		out.Message = MsgRequiredFields
	}
	return out
}

func (v *Validator) notFuture(fl validator.FieldLevel) bool {
	d, err := domain.Date(fl.Field().String()).Time()
	if err != nil {
		return false
	}
	return !d.After(util.Today(v.clock))
}

func (v *Validator) notPast(fl validator.FieldLevel) bool {
	d, err := domain.Date(fl.Field().String()).Time()
	if err != nil {
		return false
	}
	return !d.Before(util.Today(v.clock))
}

// strongPassword requires 8+ characters with a lower and upper case letter,
// a digit and one of @$!%*?&.
func strongPassword(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	return passwordPattern.MatchString(p) &&
		strings.ContainsAny(p, "abcdefghijklmnopqrstuvwxyz") &&
		strings.ContainsAny(p, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") &&
		strings.ContainsAny(p, "0123456789") &&
		strings.ContainsAny(p, "@$!%*?&")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		if fe.Param() == "0" {
			return fmt.Sprintf("%s cannot be negative", fe.Field())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	case "email":
		return "email must be a valid email address"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must contain only numeric characters", fe.Field())
	case "notfuture":
		return "Cannot select future dates"
	case "notpast":
		return "Cannot select past dates"
	case "password":
		return "Password must contain at least 8 characters, one uppercase letter, one lowercase letter, and one special symbol"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
