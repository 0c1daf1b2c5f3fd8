package commands

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidationFailed = "DOCS_COMMAND_VALIDATION_FAILED"
	codeCanceled         = "DOCS_COMMAND_CANCELED"
	codeTimeout          = "DOCS_COMMAND_TIMEOUT"
	codeContextError     = "DOCS_COMMAND_CONTEXT_ERROR"
	codeExecutionFailed  = "DOCS_COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "authoring command validation failed").
		WithTextCode(codeValidationFailed)
}

// wrapContextError distinguishes cancellation from deadline expiry so hosts
// can tell a user abort from a slow store.
func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch err {
	case context.Canceled:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "authoring command canceled").
			WithTextCode(codeCanceled)
	case context.DeadlineExceeded:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "authoring command timed out").
			WithTextCode(codeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "authoring command context error").
			WithTextCode(codeContextError)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "authoring command failed").
		WithTextCode(codeExecutionFailed)
}
