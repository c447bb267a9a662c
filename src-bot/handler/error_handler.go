package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"squire/dgmux"
	"squire/src-bot/api"
	"squire/src-bot/utils"
)

// ErrorHandler wires the command error dispatcher into the muxer. Every
// dispatch error lands here exactly once and gets at most one user-facing
// message, at most one log line, and at most one re-dispatch (unknown
// commands get retried as a tag lookup).
func ErrorHandler(as *utils.AppState) {
	as.Mux.OnError = errorHandler(as)
}

func errorHandler(as *utils.AppState) func(ctx *dgmux.Ctx, err error) error {
	return func(ctx *dgmux.Ctx, err error) error {
		kind, rerr := handleCommandError(as, ctx, err)
		go func() {
			as.MetricChans.CommandError <- kind
		}()
		return rerr
	}
}

// handleCommandError sorts one dispatch error into its branch. It returns
// the error kind for the metrics collector and the error to hand back to
// the muxer's default logging, nil once the error is fully dealt with.
func handleCommandError(as *utils.AppState, ctx *dgmux.Ctx, err error) (string, error) {
	// a command with its own error hook owns its failures
	if ctx.Command != nil && ctx.Command.OnError != nil {
		slog.Debug("command has a local error handler, ignoring", "command", ctx.Command.QualifiedName())
		return "locally_handled", nil
	}

	var (
		notFound   *dgmux.CommandNotFoundError
		badArg     *dgmux.BadArgumentError
		botMissing *dgmux.BotMissingPermissionsError
		usrMissing *dgmux.MissingPermissionsError
		onCooldown *dgmux.CommandOnCooldownError
		invokeErr  *dgmux.CommandInvokeError
	)
	switch {
	case errors.As(err, &notFound):
		if ctx.InvokedFromErrorHandler {
			// a tag lookup spawned from here came up unknown too, let the
			// muxer log it instead of looping
			return "command_not_found", err
		}
		if verification := as.Config.GetVerificationChannelID(); verification != "" && ctx.ChannelID() == verification {
			return "command_not_found", nil
		}
		return "command_not_found", tryGetTag(as, ctx)

	case errors.As(err, &badArg):
		sendOrWarn(ctx, fmt.Sprintf("Bad argument: %s\n", badArg))
		invokeHelp(as, ctx)
		return "bad_argument", nil

	case errors.Is(err, dgmux.ErrUserInput):
		sendOrWarn(ctx, "Something about your input seems off. Check the arguments:")
		invokeHelp(as, ctx)
		return "user_input", nil

	case errors.Is(err, dgmux.ErrNoPrivateMessage):
		sendOrWarn(ctx, "Sorry, this command can't be used in a private message!")
		return "no_private_message", nil

	case errors.As(err, &botMissing):
		sendOrWarn(ctx, "Sorry, it looks like I don't have the permissions I need to do that.")
		slog.Warn("bot is missing permissions to execute command",
			"command", commandName(ctx), "missing", botMissing.Missing)
		return "bot_missing_permissions", nil

	case errors.As(err, &usrMissing):
		slog.Debug("user is missing permissions to invoke command",
			"command", commandName(ctx), "author", authorName(ctx), "missing", usrMissing.Missing)
		return "missing_permissions", nil

	case errors.Is(err, dgmux.ErrCheckFailure),
		errors.Is(err, dgmux.ErrDisabledCommand),
		errors.As(err, &onCooldown):
		slog.Debug("command invocation blocked",
			"command", commandName(ctx), "author", authorName(ctx), "error", err)
		return "check_failure", nil

	case errors.As(err, &invokeErr):
		var rcErr *api.ResponseCodeError
		if errors.As(invokeErr.Err, &rcErr) {
			handleAPIError(ctx, rcErr)
			return "api_error", nil
		}
		sendOrWarn(ctx, fmt.Sprintf("Sorry, an unexpected error occurred. Please let us know!\n\n```%s```", invokeErr))
		return "invoke_error", invokeErr.Err

	default:
		return "unhandled", err
	}
}

// tryGetTag reinterprets an unknown command as a tag lookup, the invocation
// token becoming the tag name. An unknown tag (any site API error, really)
// stays silent.
func tryGetTag(as *utils.AppState, ctx *dgmux.Ctx) error {
	tagsGet := as.Mux.Get("tags get")
	if tagsGet == nil {
		return nil
	}
	ctx.InvokedFromErrorHandler = true
	err := ctx.Invoke(tagsGet, ctx.InvokedWith)
	var rcErr *api.ResponseCodeError
	if err != nil && !errors.As(err, &rcErr) {
		return err
	}
	return nil
}

// invokeHelp replays the help command for whatever just failed, the whole
// overview when no command resolved.
func invokeHelp(as *utils.AppState, ctx *dgmux.Ctx) {
	helpCmd := as.Mux.Get("help")
	if helpCmd == nil {
		return
	}
	var args []string
	if cmd := ctx.Command; cmd != nil {
		if parent := cmd.Parent(); parent != nil {
			args = []string{parent.Name, cmd.Name}
		} else {
			args = []string{cmd.Name}
		}
	}
	if err := ctx.Invoke(helpCmd, args...); err != nil {
		slog.Warn("can't replay help", "command", commandName(ctx), "error", err)
	}
}

func handleAPIError(ctx *dgmux.Ctx, rcErr *api.ResponseCodeError) {
	switch {
	case rcErr.Status == http.StatusNotFound:
		sendOrWarn(ctx, "There does not seem to be anything matching your query.")
	case rcErr.Status == http.StatusBadRequest:
		slog.Debug("site API gave bad request on command",
			"command", commandName(ctx), "response", rcErr.ResponseJSON)
		sendOrWarn(ctx, "According to the API, your request is malformed.")
	case rcErr.Status >= 500 && rcErr.Status < 600:
		sendOrWarn(ctx, "Sorry, there seems to be an internal issue with the API.")
	default:
		sendOrWarn(ctx, fmt.Sprintf("Got an unexpected status code from the API (`%d`).", rcErr.Status))
	}
}

func sendOrWarn(ctx *dgmux.Ctx, content string) {
	if err := ctx.Send(content); err != nil {
		slog.Warn("can't respond", "handler", "error_handler", "error", err)
	}
}

func commandName(ctx *dgmux.Ctx) string {
	if ctx.Command == nil {
		return ctx.InvokedWith
	}
	return ctx.Command.QualifiedName()
}

func authorName(ctx *dgmux.Ctx) string {
	if ctx.Author() == nil {
		return "unknown"
	}
	return ctx.Author().Username
}
