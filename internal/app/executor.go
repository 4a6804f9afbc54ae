package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/artofday/internal/platform/logging"
)

// Operations run as five ordered steps. A step only runs when every earlier
// step succeeded, so nothing is archived unless it was verified first:
//
//	validate  check inputs and preconditions
//	perform   do the work (archive lookup, collection search, fallback)
//	verify    reject results that cannot be displayed
//	archive   persist the verified result; may return the stored value
//	respond   shape the result for the caller

// ExecutionStep names a step of an Operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

func stepError(step ExecutionStep, message string, cause error) error {
	return &ExecutionError{Step: step, Message: message, Cause: cause}
}

// Executor runs Operations and logs each step.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates a new executor with the given logger.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation defines the functions for each step. Nil steps are skipped;
// a skipped Verify passes the performed value through unchanged when P and V
// are the same type, otherwise V's zero value.
type Operation[I, P, V, O any] struct {
	// Name identifies this operation for logging.
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)

	// Archive persists the verified value and returns what was stored,
	// which replaces the verified value for Respond.
	Archive func(ctx context.Context, input I, verified V) (V, error)

	Respond func(ctx context.Context, input I, verified V) (O, error)
}

// Execute runs op for input. Errors from Validate through Archive are wrapped
// in an ExecutionError naming the step; Respond errors are returned as is.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var zero O

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	fail := func(step ExecutionStep, message string, err error) (O, error) {
		level := slog.LevelError
		if step == StepValidate {
			level = slog.LevelWarn
		}

		logger.Log(ctx, level, string(step)+" failed", slog.Any("error", err))

		return zero, stepError(step, message, err)
	}

	if op.Validate != nil {
		if err := op.Validate(ctx, input); err != nil {
			return fail(StepValidate, "input validation failed", err)
		}
	}

	var performed P

	if op.Perform != nil {
		var err error

		performed, err = op.Perform(ctx, input)
		if err != nil {
			return fail(StepPerform, "operation failed", err)
		}
	}

	var verified V

	if op.Verify != nil {
		var err error

		verified, err = op.Verify(ctx, input, performed)
		if err != nil {
			return fail(StepVerify, "verification failed", err)
		}
	} else if v, ok := any(performed).(V); ok {
		verified = v
	}

	if op.Archive != nil {
		stored, err := op.Archive(ctx, input, verified)
		if err != nil {
			return fail(StepArchive, "state persistence failed", err)
		}

		verified = stored
	}

	var result O

	if op.Respond != nil {
		var err error

		result, err = op.Respond(ctx, input, verified)
		if err != nil {
			logger.WarnContext(ctx, "respond failed", slog.Any("error", err))

			return zero, err
		}
	} else if r, ok := any(verified).(O); ok {
		result = r
	}

	logger.DebugContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
