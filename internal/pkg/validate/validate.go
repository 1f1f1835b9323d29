// Package validate holds the field rules applied before any create or
// update is persisted. Each entry point returns the full ordered list of
// violation messages; an empty list means the candidate is valid.
package validate

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

type UserPayload struct {
	FirstName    string `validate:"required"`
	LastName     string `validate:"required"`
	EmailAddress string `validate:"required,email"`
	Password     string `validate:"required"`
}

type CoursePayload struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	UserID      uint   `validate:"required"`
}

var userMessages = map[string]string{
	"FirstName|required":    "First name is required",
	"LastName|required":     "Last name is required",
	"EmailAddress|required": "Email address is required",
	"EmailAddress|email":    "Email address must be a valid email",
	"Password|required":     "Password is required",
}

var courseMessages = map[string]string{
	"Title|required":       "Title is required",
	"Description|required": "Description is required",
	"UserID|required":      "User ID is required",
}

func User(payload UserPayload) []string {
	return collect(v.Struct(payload), userMessages)
}

func Course(payload CoursePayload) []string {
	return collect(v.Struct(payload), courseMessages)
}

// collect maps validator field errors to human-readable messages,
// preserving field declaration order.
func collect(err error, messages map[string]string) []string {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	var out []string
	for _, fe := range fieldErrs {
		if msg, ok := messages[fe.Field()+"|"+fe.Tag()]; ok {
			out = append(out, msg)
			continue
		}
		out = append(out, fe.Error())
	}
	return out
}
