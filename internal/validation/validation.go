package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Error carries the first failing rule as a user-facing message.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Messages maps "Field.tag" (e.g. "Name.min") to the message shown to the
// user when that rule fails.
type Messages map[string]string

// Struct validates s using its `validate` tags and reports only the first
// violation.
func Struct(s any, messages Messages) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	first := fieldErrs[0]
	msg, ok := messages[first.Field()+"."+first.Tag()]
	if !ok {
		msg = fmt.Sprintf("%s is invalid", first.Field())
	}
	return &Error{Field: first.Field(), Message: msg}
}

// IsValidationError reports whether err came from Struct.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
