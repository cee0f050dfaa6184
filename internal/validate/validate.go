// Package validate produces the field-level error lists that ride in the
// data slot of a 422 response.
package validate

import "github.com/go-playground/validator/v10"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var v = validator.New()

// Field checks value against a validator rule set ("required,min=2", ...) and
// returns a FieldError carrying the given message when it fails.
func Field(field, value, rules, message string) *FieldError {
	if err := v.Var(value, rules); err != nil {
		return &FieldError{Field: field, Message: message}
	}
	return nil
}
