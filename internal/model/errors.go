package model

import (
	"errors"
	"fmt"
)

// ErrInsufficientContent is the single fatal pipeline error: the extracted
// text was empty or below MinContentLength. Every other stage failure is
// absorbed into that stage's default signal.
var ErrInsufficientContent = errors.New("insufficient text content for analysis")

// StageError records a non-fatal collaborator failure. The orchestrator
// matches on the stage name and substitutes the documented default signal
// instead of propagating the error.
type StageError struct {
	Stage SignalName
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps a collaborator failure with its stage name
func NewStageError(stage SignalName, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
