// Package validation checks user input before it reaches the service layer.
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/msomdec/users-api/internal/domain"
)

const (
	MsgRequired       = "must not be null or empty"
	MsgNameLength     = "must be between 3 and 50 characters"
	MsgPasswordLength = "must be between 3 and 20 characters"
	MsgTrim           = "Field cannot have blank spaces at the beginning or at and"
	MsgInvalidEmail   = "Invalid email"
)

// FieldError is a single violated rule on a named field.
type FieldError struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// rule returns a violation message, or "" when the value passes.
type rule func(value string) string

// ValidateUser checks every field of req and returns the violations in field
// order (name, email, password). A missing or empty field reports only the
// required violation; otherwise each failed rule is reported in turn.
func ValidateUser(req domain.UserRequest) []FieldError {
	var errs []FieldError
	errs = check(errs, "name", req.Name, length(3, 50, MsgNameLength), trimmed)
	errs = check(errs, "email", req.Email, trimmed, email)
	errs = check(errs, "password", req.Password, length(3, 20, MsgPasswordLength), trimmed)
	return errs
}

func check(errs []FieldError, field string, value *string, rules ...rule) []FieldError {
	if value == nil || *value == "" {
		return append(errs, FieldError{FieldName: field, Message: MsgRequired})
	}
	for _, r := range rules {
		if msg := r(*value); msg != "" {
			errs = append(errs, FieldError{FieldName: field, Message: msg})
		}
	}
	return errs
}

func length(lo, hi int, msg string) rule {
	return func(value string) string {
		n := utf8.RuneCountInString(value)
		if n < lo || n > hi {
			return msg
		}
		return ""
	}
}

func trimmed(value string) string {
	if strings.TrimFunc(value, unicode.IsSpace) != value {
		return MsgTrim
	}
	return ""
}

func email(value string) string {
	if err := validate.Var(value, "email"); err != nil {
		return MsgInvalidEmail
	}
	return ""
}
