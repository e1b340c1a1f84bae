package timeblock

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// fieldRules mirrors Fields with the text bounds expressed as validator tags.
type fieldRules struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=1000"`
}

var validate = validator.New()

// Validate checks title, description and interval bounds.
// Fields are normalized before checking, so a title made of spaces is empty.
func Validate(f Fields) error {
	f = f.normalize()

	rules := fieldRules{Title: f.Title}
	if f.Description != nil {
		rules.Description = *f.Description
	}

	if err := validate.Struct(rules); err != nil {
		var valErrs validator.ValidationErrors
		if !errors.As(err, &valErrs) {
			return fmt.Errorf("validating fields: %w", err)
		}
		switch valErrs[0].Field() {
		case "Title":
			return ErrInvalidTitle
		default:
			return ErrInvalidDescription
		}
	}

	return ValidateInterval(f.Start, f.End)
}

// ValidateInterval returns ErrInvalidInterval unless start < end and both
// lie within [MinInstant, MaxInstant].
func ValidateInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return ErrInvalidInterval
	}
	if start.Before(MinInstant) || end.After(MaxInstant) {
		return ErrInvalidInterval
	}
	return nil
}
