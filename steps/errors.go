package steps

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedDocmap = errors.New("steps: malformed docmap")
	ErrMissingStep     = errors.New("steps: step not found")
	ErrStepCycle       = errors.New("steps: step chain revisits a step")
)

// MalformedDocmapError captures structural defects in a docmap document.
type MalformedDocmapError struct {
	Reason string
	Cause  error
}

func (e *MalformedDocmapError) Error() string {
	if e == nil {
		return ErrMalformedDocmap.Error()
	}
	reason := strings.TrimSpace(e.Reason)
	switch {
	case reason != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", ErrMalformedDocmap.Error(), reason, e.Cause)
	case reason != "":
		return fmt.Sprintf("%s: %s", ErrMalformedDocmap.Error(), reason)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", ErrMalformedDocmap.Error(), e.Cause)
	}
	return ErrMalformedDocmap.Error()
}

func (e *MalformedDocmapError) Unwrap() error {
	return ErrMalformedDocmap
}

// MissingStepError captures an unresolvable step identifier.
type MissingStepError struct {
	ID string
}

func (e *MissingStepError) Error() string {
	if e == nil || strings.TrimSpace(e.ID) == "" {
		return ErrMissingStep.Error()
	}
	return fmt.Sprintf("%s: id=%s", ErrMissingStep.Error(), e.ID)
}

func (e *MissingStepError) Unwrap() error {
	return ErrMissingStep
}

// StepCycleError captures a step chain that revisits an earlier step id
// before terminating.
type StepCycleError struct {
	ID string
}

func (e *StepCycleError) Error() string {
	if e == nil || strings.TrimSpace(e.ID) == "" {
		return ErrStepCycle.Error()
	}
	return fmt.Sprintf("%s: id=%s", ErrStepCycle.Error(), e.ID)
}

func (e *StepCycleError) Unwrap() error {
	return ErrStepCycle
}
