package morph

import (
	"errors"
	"fmt"
)

// InvalidTokenError is the hard failure for malformed input at
// decomposition. Empty or all-whitespace text is not a token; it fails
// fast rather than flowing downstream as data.
type InvalidTokenError struct {
	Text string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token: %q is empty or whitespace", e.Text)
}

// IsInvalidToken reports whether err is an InvalidTokenError.
// Uses errors.As to handle wrapped errors.
func IsInvalidToken(err error) bool {
	var ite *InvalidTokenError
	return errors.As(err, &ite)
}
