package cli

import (
	"errors"
	"fmt"

	designErrors "mercator-hq/folio/pkg/design/errors"
)

// Exit codes returned by the folio binary.
const (
	ExitOK      = 0
	ExitError   = 1
	ExitRefused = 2
)

// ErrRefused marks a command whose request was refused by the rules rather
// than failing.
var ErrRefused = errors.New("refused")

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode returns the exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var violations designErrors.Violations
	if errors.As(err, &violations) && len(violations) > 0 {
		return ExitRefused
	}
	if errors.Is(err, ErrRefused) {
		return ExitRefused
	}
	return ExitError
}
