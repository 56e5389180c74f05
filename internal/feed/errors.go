package feed

import (
	"errors"
	"fmt"
)

// ErrOracleUnavailable signals that an AI oracle is not configured or its
// credential is missing. Every consumer treats it as "degrade, don't fail".
var ErrOracleUnavailable = errors.New("oracle unavailable")

// OracleError wraps a failure of one AI oracle stage. It exists so the
// fail-open and fail-soft branches in the validator and enricher are explicit
// code paths rather than blanket error swallowing.
type OracleError struct {
	Stage string
	Err   error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s: %v", e.Stage, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }

// NewOracleError tags err with the oracle stage it came from.
func NewOracleError(stage string, err error) *OracleError {
	return &OracleError{Stage: stage, Err: err}
}
