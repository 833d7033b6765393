package filterbank

import (
	"errors"
	"fmt"
)

// ErrParameter is returned when an input violates a documented constraint.
// All validation failures wrap this sentinel, so callers can match any of
// them with errors.Is(err, ErrParameter).
var ErrParameter = errors.New("filterbank: invalid parameter")

func paramErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrParameter}, args...)...)
}
