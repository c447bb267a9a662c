package dgmux

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Class markers. Concrete error types below report membership through
// errors.Is so handlers can match a whole family at once.
var (
	// Any error caused by malformed user input: bad arguments, missing
	// arguments, unparseable values.
	ErrUserInput = errors.New("user input error")

	// Any error caused by a failed pre-invocation check: permissions,
	// guild-only restrictions, custom checks.
	ErrCheckFailure = errors.New("check failure")
)

var (
	// A guild-only command was invoked from a direct message.
	ErrNoPrivateMessage error = checkError("this command cannot be used in private messages")

	// The invoked command is registered but switched off.
	ErrDisabledCommand = errors.New("command is disabled")
)

// checkError is a fixed-text error belonging to the ErrCheckFailure class.
type checkError string

func (e checkError) Error() string { return string(e) }

func (e checkError) Is(target error) bool { return target == ErrCheckFailure }

// CommandNotFoundError reports that the first token after the prefix did not
// resolve to any registered command.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("command %q is not found", e.Name)
}

// BadArgumentError reports that an argument was present but could not be
// converted or failed validation. Belongs to the ErrUserInput class.
type BadArgumentError struct {
	Param   string
	Message string
}

func (e *BadArgumentError) Error() string {
	if e.Param == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (parameter: %s)", e.Message, e.Param)
}

func (e *BadArgumentError) Is(target error) bool { return target == ErrUserInput }

// MissingRequiredArgumentError reports that a required argument was not
// supplied at all. Belongs to the ErrUserInput class.
type MissingRequiredArgumentError struct {
	Param string
}

func (e *MissingRequiredArgumentError) Error() string {
	return fmt.Sprintf("%s is a required argument that is missing", e.Param)
}

func (e *MissingRequiredArgumentError) Is(target error) bool { return target == ErrUserInput }

// MissingPermissionsError reports that the invoking user lacks permissions
// required by the command. Belongs to the ErrCheckFailure class.
type MissingPermissionsError struct {
	Missing []string
}

func (e *MissingPermissionsError) Error() string {
	return fmt.Sprintf("you are missing %s permission(s) to run this command", strings.Join(e.Missing, ", "))
}

func (e *MissingPermissionsError) Is(target error) bool { return target == ErrCheckFailure }

// BotMissingPermissionsError reports that the bot itself lacks permissions
// required to execute the command. Belongs to the ErrCheckFailure class.
type BotMissingPermissionsError struct {
	Missing []string
}

func (e *BotMissingPermissionsError) Error() string {
	return fmt.Sprintf("bot requires %s permission(s) to run this command", strings.Join(e.Missing, ", "))
}

func (e *BotMissingPermissionsError) Is(target error) bool { return target == ErrCheckFailure }

// CommandOnCooldownError reports that the per-user rate limit of the command
// has been hit.
type CommandOnCooldownError struct {
	RetryAfter time.Duration
}

func (e *CommandOnCooldownError) Error() string {
	return fmt.Sprintf("you are on cooldown, try again in %.2fs", e.RetryAfter.Seconds())
}

// CommandInvokeError wraps an error raised inside a command body. Errors that
// are already part of this package's taxonomy are never wrapped; everything
// else the run function returns ends up inside one of these.
type CommandInvokeError struct {
	Command *Command
	Err     error
}

func (e *CommandInvokeError) Error() string {
	if e.Command == nil {
		return fmt.Sprintf("command raised an error: %v", e.Err)
	}
	return fmt.Sprintf("command %q raised an error: %v", e.Command.QualifiedName(), e.Err)
}

func (e *CommandInvokeError) Unwrap() error { return e.Err }

// IsCommandError reports whether err belongs to the dispatch error taxonomy,
// either directly or somewhere down its wrap chain.
func IsCommandError(err error) bool {
	var (
		notFound  *CommandNotFoundError
		onCooldwn *CommandOnCooldownError
		invoke    *CommandInvokeError
	)
	switch {
	case errors.As(err, &notFound),
		errors.As(err, &onCooldwn),
		errors.As(err, &invoke):
		return true
	case errors.Is(err, ErrUserInput),
		errors.Is(err, ErrCheckFailure),
		errors.Is(err, ErrDisabledCommand):
		return true
	}
	return false
}
