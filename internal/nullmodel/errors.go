package nullmodel

import (
	"errors"
	"fmt"
)

// SurrogateGenerationError is the hard failure for a surrogate that does
// not satisfy its required statistical invariant within tolerance. It
// aborts the validator run for that test; no partial p-value is returned.
type SurrogateGenerationError struct {
	Scheme    string
	Invariant string
	Detail    string
}

func (e *SurrogateGenerationError) Error() string {
	return fmt.Sprintf("surrogate generation failed (%s): invariant %s violated: %s",
		e.Scheme, e.Invariant, e.Detail)
}

// IsSurrogateGeneration reports whether err is a SurrogateGenerationError.
// Uses errors.As to handle wrapped errors.
func IsSurrogateGeneration(err error) bool {
	var sge *SurrogateGenerationError
	return errors.As(err, &sge)
}
