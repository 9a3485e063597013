package sim

import (
	"errors"
	"fmt"

	"autoresolve-sim/internal/action"
	"autoresolve-sim/internal/battle"
)

// Setup contract violations.
var (
	ErrNoForces     = errors.New("battle has no units")
	ErrNoOpposition = errors.New("battle needs at least two teams with formations")
	ErrNoHandler    = errors.New("no handler registered")
)

// ErrorKind classifies a failed step.
type ErrorKind int

const (
	// KindSetup means the battle was malformed before the loop started.
	KindSetup ErrorKind = iota
	// KindHandler means a phase or action handler failed mid battle.
	KindHandler
)

func (k ErrorKind) String() string {
	if k == KindSetup {
		return "setup"
	}
	return "handler"
}

// StepError is returned when a phase step aborts the battle.
type StepError struct {
	Phase battle.Phase
	Kind  ErrorKind
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failure in %s phase: %v", e.Kind, e.Phase, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// OutcomeStatus says what happened to a queued action.
type OutcomeStatus int

const (
	Resolved OutcomeStatus = iota
	Skipped
)

func (s OutcomeStatus) String() string {
	if s == Resolved {
		return "resolved"
	}
	return "skipped"
}

// ActionOutcome is the result of processing one action.
type ActionOutcome struct {
	Action action.Action
	Status OutcomeStatus
	// Reason explains a skip.
	Reason string
}

func resolved(a action.Action) ActionOutcome { return ActionOutcome{Action: a, Status: Resolved} }

func skipped(a action.Action, reason string) ActionOutcome {
	return ActionOutcome{Action: a, Status: Skipped, Reason: reason}
}

// ErrAlreadyRun is returned when a Manager is asked to simulate twice.
var ErrAlreadyRun = errors.New("manager already ran its battle")

// asStepError keeps an existing StepError and wraps anything else as a
// handler failure in phase p.
func asStepError(p battle.Phase, err error) error {
	var se *StepError
	if errors.As(err, &se) {
		return err
	}
	return &StepError{Phase: p, Kind: KindHandler, Err: err}
}
