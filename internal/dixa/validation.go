package dixa

import (
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

// validate runs the rules of v and classifies any failure as a validation error.
func validate(v validation.Validatable) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrValidation, err)
	}
	return nil
}

// validationError returns a validation error with the given message.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errors.ErrValidation, fmt.Sprintf(format, args...))
}

// oneOf is a rule that accepts only the given string values.
// Unlike validation.In it also rejects the empty string, and reports the offending value.
func oneOf(name string, accepted ...string) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if slices.Contains(accepted, s) {
			return nil
		}
		return validation.NewError(
			"validation_one_of",
			fmt.Sprintf("invalid %s value '%s', accepted values are: %s", name, s, strings.Join(accepted, ", ")),
		)
	})
}
