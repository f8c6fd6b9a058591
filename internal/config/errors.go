package config

import (
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	cuetoken "cuelang.org/go/cue/token"
)

// Load error codes.
const (
	ErrCodeNotFound  = "CONFIG_NOT_FOUND"
	ErrCodeScanError = "CONFIG_SCAN_ERROR"
	ErrCodeNoFiles   = "CONFIG_NO_FILES"
	ErrCodeCompile   = "CONFIG_COMPILE_ERROR"
)

// LoadError represents an error that occurred during config loading.
type LoadError struct {
	Code    string
	Message string
	Pos     cuetoken.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// formatCUEError converts a CUE error into a LoadError with position
// information when the CUE SDK provides it.
func formatCUEError(err error) *LoadError {
	le := &LoadError{Code: ErrCodeCompile, Message: err.Error()}
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		le.Pos = errs[0].Position()
		le.Message = errs[0].Error()
	}
	return le
}
