// Package dgmux multiplexes classic prefix-style message commands on top of
// a discordgo session: one MessageCreate handler tokenizes the input,
// resolves a command (descending through subcommand groups), runs the
// pre-invocation checks, and routes whatever goes wrong to a pluggable
// error hook. Errors raised inside a command body are wrapped in
// CommandInvokeError unless they already belong to the taxonomy in
// errors.go, mirroring how chat command frameworks usually report them.
package dgmux

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

type Mux struct {
	prefix    string
	commands  map[string]*Command
	roots     []*Command
	cooldowns *cooldownMap

	// Global error hook. Receives every dispatch error; returning a non-nil
	// error falls back to the default handling (an error-level log line).
	OnError func(ctx *Ctx, err error) error
	// Observers for metrics wiring. Both optional.
	OnInvoke func(ctx *Ctx)
	OnSend   func(elapsed time.Duration)
}

func New(prefix string) *Mux {
	mx := &Mux{
		prefix:    prefix,
		commands:  make(map[string]*Command),
		cooldowns: newCooldownMap(),
	}
	mx.Register(newHelpCommand(mx))
	return mx
}

func (mx *Mux) Prefix() string { return mx.prefix }

// Register adds root commands (and their subcommand trees) to the mux.
// Re-registering a name overwrites the previous owner.
func (mx *Mux) Register(cmds ...*Command) {
	for _, cmd := range cmds {
		if cmd == nil || cmd.Name == "" {
			slog.Warn("refusing to register a command without a name")
			continue
		}
		cmd.link(nil)
		if _, ok := mx.commands[cmd.Name]; ok {
			slog.Warn("command already registered, overwriting", "name", cmd.Name)
			for idx, root := range mx.roots {
				if root.Name == cmd.Name {
					mx.roots[idx] = cmd
					break
				}
			}
		} else {
			mx.roots = append(mx.roots, cmd)
		}
		mx.commands[cmd.Name] = cmd
		for _, alias := range cmd.Aliases {
			mx.commands[alias] = cmd
		}
	}
}

// Get resolves a full invocation path like "tags get" to a command, through
// names and aliases. Nil when any token fails to resolve.
func (mx *Mux) Get(path string) *Command {
	fields := strings.Fields(path)
	if len(fields) == 0 {
		return nil
	}
	cmd := mx.commands[fields[0]]
	for _, token := range fields[1:] {
		if cmd == nil {
			return nil
		}
		cmd = cmd.findSub(token)
	}
	return cmd
}

// Walk visits every root command in registration order.
func (mx *Mux) Walk(fn func(cmd *Command)) {
	for _, cmd := range mx.roots {
		fn(cmd)
	}
}

// Handle is the discordgo MessageCreate handler.
func (mx *Mux) Handle(s *discordgo.Session, m *discordgo.MessageCreate) {
	var botID string
	if s.State != nil && s.State.User != nil {
		botID = s.State.User.ID
	}
	mx.Dispatch(s, botID, m)
}

// Dispatch resolves and runs the command a message names. Split out from
// Handle so tests can drive it with a fake Session.
func (mx *Mux) Dispatch(s Session, botID string, m *discordgo.MessageCreate) {
	if m == nil || m.Author == nil || m.Author.Bot || m.Author.ID == botID {
		return
	}
	if !strings.HasPrefix(m.Content, mx.prefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(m.Content, mx.prefix))
	if len(fields) == 0 {
		return
	}
	invoked, args := fields[0], fields[1:]

	ctx := &Ctx{
		S:           s,
		Mux:         mx,
		Message:     m,
		Prefix:      mx.prefix,
		InvokedWith: invoked,
		BotID:       botID,
	}

	cmd, rest := mx.resolve(invoked, args)
	if cmd == nil {
		mx.routeError(ctx, &CommandNotFoundError{Name: invoked})
		return
	}
	ctx.Command = cmd
	ctx.Args = rest
	if mx.OnInvoke != nil {
		mx.OnInvoke(ctx)
	}

	if err := mx.runChecks(ctx); err != nil {
		mx.routeError(ctx, err)
		return
	}

	if cmd.Run == nil {
		// bare group invocation, steer toward help
		if len(rest) == 0 {
			mx.routeError(ctx, &MissingRequiredArgumentError{Param: cmd.paramName(0)})
		} else {
			mx.routeError(ctx, &BadArgumentError{
				Param:   "subcommand",
				Message: fmt.Sprintf("no subcommand named %q", rest[0]),
			})
		}
		return
	}
	if len(rest) < cmd.MinArgs {
		mx.routeError(ctx, &MissingRequiredArgumentError{Param: cmd.paramName(len(rest))})
		return
	}

	if err := cmd.Run(ctx); err != nil {
		if !IsCommandError(err) {
			err = &CommandInvokeError{Command: cmd, Err: err}
		}
		mx.routeError(ctx, err)
	}
}

// resolve walks the invocation token and as many following arguments as
// match subcommand names, returning the resolved command and the leftover
// arguments.
func (mx *Mux) resolve(invoked string, args []string) (*Command, []string) {
	cmd := mx.commands[invoked]
	if cmd == nil {
		return nil, args
	}
	for len(args) > 0 && len(cmd.Subcommands) > 0 {
		sub := cmd.findSub(args[0])
		if sub == nil {
			break
		}
		cmd = sub
		args = args[1:]
	}
	return cmd, args
}

// runChecks runs the built-in pipeline, then the command's own checks. The
// first failure wins: disabled, guild-only, user permissions, bot
// permissions, cooldown, custom checks.
func (mx *Mux) runChecks(ctx *Ctx) error {
	cmd := ctx.Command
	if cmd.Disabled {
		return ErrDisabledCommand
	}
	if cmd.GuildOnly && ctx.GuildID() == "" {
		return ErrNoPrivateMessage
	}
	if cmd.RequiredPermissions != 0 && ctx.GuildID() != "" {
		perms, err := ctx.S.UserChannelPermissions(ctx.Author().ID, ctx.ChannelID())
		switch {
		case err != nil:
			// can't verify, let the command through
			slog.Debug("can't resolve user permissions", "command", cmd.QualifiedName(), "error", err)
		case cmd.RequiredPermissions&^perms != 0:
			return &MissingPermissionsError{Missing: PermissionNames(cmd.RequiredPermissions &^ perms)}
		}
	}
	if cmd.BotPermissions != 0 && ctx.GuildID() != "" && ctx.BotID != "" {
		perms, err := ctx.S.UserChannelPermissions(ctx.BotID, ctx.ChannelID())
		switch {
		case err != nil:
			slog.Debug("can't resolve bot permissions", "command", cmd.QualifiedName(), "error", err)
		case cmd.BotPermissions&^perms != 0:
			return &BotMissingPermissionsError{Missing: PermissionNames(cmd.BotPermissions &^ perms)}
		}
	}
	if cmd.Cooldown.enabled() {
		key := cmd.QualifiedName() + ":" + ctx.Author().ID
		if retryAfter := mx.cooldowns.take(key, cmd.Cooldown, time.Now()); retryAfter > 0 {
			return &CommandOnCooldownError{RetryAfter: retryAfter}
		}
	}
	for _, check := range cmd.Checks {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}

// routeError runs the command's local hook when it has one, then the global
// hook. Whatever neither of them consumes ends up in the log.
func (mx *Mux) routeError(ctx *Ctx, err error) {
	if ctx.Command != nil && ctx.Command.OnError != nil {
		ctx.Command.OnError(ctx, err)
	}
	if mx.OnError == nil {
		mx.logUnhandled(ctx, err)
		return
	}
	if rerr := mx.OnError(ctx, err); rerr != nil {
		mx.logUnhandled(ctx, rerr)
	}
}

func (mx *Mux) logUnhandled(ctx *Ctx, err error) {
	author := "unknown"
	if ctx.Author() != nil {
		author = ctx.Author().Username
	}
	slog.Error("command error", "invoked_with", ctx.InvokedWith, "author", author, "error", err.Error())
}
