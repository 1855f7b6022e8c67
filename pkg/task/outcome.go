package task

import (
	"errors"
	"fmt"

	"github.com/adrianliechti/wingman-research/pkg/report"
)

var (
	ErrValidation = errors.New("invalid research request")
	ErrSubmission = errors.New("research submission failed")
	ErrTransport  = errors.New("research status request failed")
	ErrJob        = errors.New("research task failed")
	ErrTimeout    = errors.New("research task timed out")
	ErrCancelled  = errors.New("research task cancelled")
)

// Outcome is the terminal result of one research task.
// It is one of Success, Failure, TimedOut or Cancelled.
type Outcome interface {
	outcome()
}

type Success struct {
	Report *report.Report

	// Raw is the unparsed result text.
	Raw string
}

type FailureKind string

const (
	FailureValidation FailureKind = "validation"
	FailureSubmission FailureKind = "submission"
	FailureTransport  FailureKind = "transport"
	FailureJob        FailureKind = "job"
)

type Failure struct {
	Kind   FailureKind
	Reason string

	Err error
}

type TimedOut struct {
	Attempts int
}

type Cancelled struct {
	Err error
}

func (Success) outcome()   {}
func (Failure) outcome()   {}
func (TimedOut) outcome()  {}
func (Cancelled) outcome() {}

func (f Failure) Error() string {
	return f.Reason
}

func (f Failure) Unwrap() []error {
	errs := []error{f.sentinel()}

	if f.Err != nil {
		errs = append(errs, f.Err)
	}

	return errs
}

func (f Failure) sentinel() error {
	switch f.Kind {
	case FailureValidation:
		return ErrValidation
	case FailureSubmission:
		return ErrSubmission
	case FailureTransport:
		return ErrTransport
	default:
		return ErrJob
	}
}

// Err maps an outcome to an error, or nil on success.
func Err(o Outcome) error {
	switch v := o.(type) {
	case Success:
		return nil

	case Failure:
		return v

	case TimedOut:
		return fmt.Errorf("%w after %d attempts", ErrTimeout, v.Attempts)

	case Cancelled:
		if v.Err != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, v.Err)
		}

		return ErrCancelled

	default:
		return fmt.Errorf("unknown outcome %T", o)
	}
}
