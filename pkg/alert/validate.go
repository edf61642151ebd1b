package alert

import (
	"fmt"

	"github.com/dd0wney/cluso-gac/pkg/validation"
)

// Validate checks a single record against its struct tags
func Validate(a Alert) error {
	if err := validation.Struct(a); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAlert, err)
	}
	return nil
}
