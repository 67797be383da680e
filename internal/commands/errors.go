package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors returned by Handler.Execute.
const (
	TextCodeValidationFailed = "COMMAND_VALIDATION_FAILED"
	TextCodeContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	TextCodeContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	TextCodeContextError     = "COMMAND_CONTEXT_ERROR"
	TextCodeExecutionFailed  = "COMMAND_EXECUTION_FAILED"
)

type failureKind int

const (
	failureValidation failureKind = iota
	failureContext
	failureExecution
)

// categorise tags err with a command category and text code. Errors already
// categorised upstream (generator, i18n) pass through with their codes intact.
func categorise(kind failureKind, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if kind == failureExecution && isContextErr(err) {
		kind = failureContext
	}

	category, message, code := goerrors.CategoryCommand, "command execution failed", TextCodeExecutionFailed
	switch kind {
	case failureValidation:
		category, message, code = goerrors.CategoryValidation, "command validation failed", TextCodeValidationFailed
	case failureContext:
		switch {
		case errors.Is(err, context.Canceled):
			message, code = "command execution cancelled", TextCodeContextCanceled
		case errors.Is(err, context.DeadlineExceeded):
			message, code = "command execution deadline exceeded", TextCodeContextTimeout
		default:
			message, code = "command context error", TextCodeContextError
		}
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
