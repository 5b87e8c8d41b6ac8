package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors so callers can match a
// failure class without string comparison.
const (
	CodeValidationFailed = "LEXICON_VALIDATION_FAILED"
	CodeCanceled         = "LEXICON_CANCELED"
	CodeDeadlineExceeded = "LEXICON_DEADLINE_EXCEEDED"
	CodeContextFailed    = "LEXICON_CONTEXT_FAILED"
	CodeExecutionFailed  = "LEXICON_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message rejected").
		WithTextCode(CodeValidationFailed)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	message, code := "command context failed", CodeContextFailed
	switch {
	case errors.Is(err, context.Canceled):
		message, code = "command canceled", CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		message, code = "command deadline exceeded", CodeDeadlineExceeded
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(CodeExecutionFailed)
}
