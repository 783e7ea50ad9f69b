package animation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the request's structural constraints: an object is set, the type is present,
// the ID is non-negative and an optional frame range satisfies 0 <= Start <= End.
// Type support is not checked here; see AnimationType.Supported.
//
// Returns:
//   - error: nil, or an error wrapping ErrInvalidRequest that lists each failing field
func (r Request) Validate() error {
	if r.Object == nil {
		return fmt.Errorf("%w: Object: required", ErrInvalidRequest)
	}

	if err := validate.Struct(r); err != nil {
		var validatorErrs validator.ValidationErrors
		if !errors.As(err, &validatorErrs) {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}

		fields := make([]string, 0, len(validatorErrs))
		for _, validatorErr := range validatorErrs {
			fields = append(fields, validatorErr.Namespace()+": "+validatorErr.Tag())
		}
		sort.Strings(fields)
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(fields, ", "))
	}

	return nil
}
